package page

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/sitepress/blog"
	"github.com/eringen/sitepress/views"
)

// CanonicalURL is the absolute detail page address of p.
func CanonicalURL(site views.SiteConfig, p blog.Post) string {
	return views.AbsURL(site.URL, p.Link())
}

// ApplyMetadata points the head at post. Each field is set independently and
// absent fields are skipped; applying the same post twice gives the same head.
func (rd *Renderer) ApplyMetadata(ctx context.Context, h *Head, post blog.Post) error {
	if h == nil {
		return nil
	}
	canonical := CanonicalURL(rd.Site, post)
	image := views.AbsURL(rd.Site.URL, post.Image)

	h.Title.Set(post.SEOTitle)
	h.Description.Set(post.SEODesc)
	h.OGTitle.Set(post.SEOTitle)
	h.OGDescription.Set(post.SEODesc)
	h.OGImage.Set(image)
	h.OGURL.Set(canonical)
	h.OGType.Set("article")
	h.Canonical.Set(canonical)

	width, height := "", ""
	if rd.Images != nil && post.Image != "" {
		if w, ht, ok := rd.Images(post.Image); ok {
			width, height = strconv.Itoa(w), strconv.Itoa(ht)
		}
	}
	h.OGImageWidth.Set(width)
	h.OGImageHeight.Set(height)

	if h.StructuredData != nil {
		doc := ArticleJSONLD(rd.Site, post)
		if err := h.StructuredData.Fill(ctx, templ.Raw(doc)); err != nil {
			return err
		}
	}
	return nil
}

func (h *Head) setNotFound(site views.SiteConfig) {
	if h == nil {
		return
	}
	h.Title.Set("Post not found | " + site.Name)
}

// ArticleJSONLD returns the Schema.org Article record for post. The post has a
// single date, used for both published and modified.
func ArticleJSONLD(site views.SiteConfig, post blog.Post) string {
	canonical := CanonicalURL(site, post)
	org := map[string]interface{}{
		"@type": "Organization",
		"name":  site.Name,
		"url":   views.BuildURL(site.URL),
	}
	publisher := map[string]interface{}{
		"@type": "Organization",
		"name":  site.Name,
		"url":   views.BuildURL(site.URL),
	}
	if site.Logo != "" {
		publisher["logo"] = map[string]string{
			"@type": "ImageObject",
			"url":   views.AbsURL(site.URL, site.Logo),
		}
	}
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "Article",
		"headline":      post.Title,
		"description":   post.SEODesc,
		"datePublished": post.Date,
		"dateModified":  post.Date,
		"author":        org,
		"publisher":     publisher,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   canonical,
		},
	}
	if post.Image != "" {
		data["image"] = views.AbsURL(site.URL, post.Image)
	}
	if post.CategoryLabel != "" {
		data["articleSection"] = post.CategoryLabel
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
