package sitepress

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/sitepress/blog"
	"github.com/eringen/sitepress/page"
	"github.com/eringen/sitepress/views"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// buildSitemap lists the blog index and one entry per distinct slug.
func (a *App) buildSitemap(posts []blog.Post) sitemapURLSet {
	site := a.Config.Site
	urls := []sitemapURL{
		{Loc: views.BuildURL(site.URL, "blog")},
	}
	seen := make(map[string]struct{}, len(posts))
	for _, p := range posts {
		if _, dup := seen[p.Slug]; dup {
			continue
		}
		seen[p.Slug] = struct{}{}
		urls = append(urls, sitemapURL{
			Loc:     page.CanonicalURL(site, p),
			LastMod: p.Date,
		})
	}
	return sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
}

func (a *App) renderSitemap(c echo.Context, posts []blog.Post) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}
	return xml.NewEncoder(c.Response()).Encode(a.buildSitemap(posts))
}
