package page_test

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eringen/sitepress/blog"
	"github.com/eringen/sitepress/page"
	"github.com/eringen/sitepress/views"
)

var site = views.SiteConfig{
	Name:        "Brightline Studio",
	URL:         "https://brightline.example",
	Description: "Web design and IT support for small businesses.",
	Logo:        "/public/logo.png",
	Author:      views.Author{Name: "Brightline Team", Role: "Web Design & IT", Bio: "We build fast sites."},
}

func posts() []blog.Post {
	return []blog.Post{
		{Slug: "does-your-small-business-need-a-website", Title: "Need a Website?", TitleHTML: `Need a <span>Website</span>?`, Excerpt: "Yes.", Category: "web-design", CategoryLabel: "Web Design", Date: "2025-02-03", ReadTime: "6 min read", Featured: true, Image: "https://img.example/a.jpg", SEOTitle: "SEO Need a Website", SEODesc: "Why you need one.", Body: "<p>Body <em>one</em></p>"},
		{Slug: "local-seo-checklist", Title: "Local SEO", TitleHTML: "Local SEO", Category: "seo", CategoryLabel: "SEO", Date: "2025-01-21", SEOTitle: "Local SEO", SEODesc: "Checklist", Image: "/public/img/seo.jpg", Body: "<p>two</p>"},
		{Slug: "email-marketing-on-a-budget", Title: "Email Marketing", TitleHTML: "Email Marketing", Category: "marketing", CategoryLabel: "Marketing", Date: "2025-01-09", Body: "<p>three</p>"},
		{Slug: "backups-that-actually-work", Title: "Backups", TitleHTML: "Backups", Category: "it-support", CategoryLabel: "IT Support", Date: "2024-12-16", Body: "<p>four</p>"},
		{Slug: "mobile-first-design", Title: "Mobile First", TitleHTML: "Mobile First", Category: "web-design", CategoryLabel: "Web Design", Date: "2024-11-27", Body: "<p>five</p>"},
	}
}

func newRenderer(p []blog.Post) *page.Renderer {
	return &page.Renderer{Repo: blog.NewMemoryRepository(p), Site: site}
}

func cardCount(html string) int {
	return strings.Count(html, `<article class="blog-card"`)
}

func TestRenderIndex(t *testing.T) {
	rd := newRenderer(posts())
	b := page.ListingBindings(page.NewHead(site, "https://brightline.example/blog/"))

	require.NoError(t, rd.RenderIndex(context.Background(), b, ""))

	require.True(t, b.Featured.Filled())
	require.Contains(t, b.Featured.String(), `Need a <span>Website</span>?`)

	grid := b.Grid.String()
	require.Equal(t, 4, cardCount(grid))
	require.NotContains(t, grid, "does-your-small-business-need-a-website")
	order := []string{"local-seo-checklist", "email-marketing-on-a-budget", "backups-that-actually-work", "mobile-first-design"}
	last := -1
	for _, slug := range order {
		idx := strings.Index(grid, "slug="+slug)
		require.Greater(t, idx, last, "grid order broken at %s", slug)
		last = idx
	}

	filters := b.Filters.String()
	require.Contains(t, filters, ">All</a>")
	require.Contains(t, filters, "IT Support")
	require.Equal(t, 1, strings.Count(filters, " active "))
}

func TestRenderListingCategory(t *testing.T) {
	rd := newRenderer(posts())
	b := page.ListingBindings(nil)

	require.NoError(t, rd.RenderListing(context.Background(), b, "marketing"))
	require.Equal(t, 1, cardCount(b.Grid.String()))
	require.Contains(t, b.Grid.String(), "Email Marketing")
	require.False(t, b.Featured.Filled())
}

func TestRenderListingEmptyCategory(t *testing.T) {
	rd := newRenderer(posts())
	b := page.ListingBindings(nil)

	require.NoError(t, rd.RenderListing(context.Background(), b, "podcasts"))
	require.Equal(t, 0, cardCount(b.Grid.String()))
	require.Contains(t, b.Grid.String(), "No posts in this category yet.")
}

func TestRenderFeaturedNone(t *testing.T) {
	p := posts()
	p[0].Featured = false
	rd := newRenderer(p)
	b := page.ListingBindings(nil)

	require.NoError(t, rd.RenderFeatured(context.Background(), b))
	require.False(t, b.Featured.Filled())
	require.Empty(t, b.Featured.String())
}

func TestAbsentRegionsAreSkipped(t *testing.T) {
	rd := newRenderer(posts())
	ctx := context.Background()

	empty := &page.Bindings{}
	require.NoError(t, rd.RenderIndex(ctx, empty, "all"))
	_, err := rd.RenderPost(ctx, empty, "local-seo-checklist")
	require.NoError(t, err)
	_, err = rd.RenderPost(ctx, empty, "missing")
	require.True(t, errors.Is(err, blog.ErrNotFound))

	gridOnly := &page.Bindings{Grid: page.NewRegion()}
	require.NoError(t, rd.RenderIndex(ctx, gridOnly, "all"))
	require.Equal(t, 4, cardCount(gridOnly.Grid.String()))
}

func TestRenderPost(t *testing.T) {
	rd := newRenderer(posts())
	b := page.PostBindings(page.NewHead(site, ""))

	post, err := rd.RenderPost(context.Background(), b, "does-your-small-business-need-a-website")
	require.NoError(t, err)
	require.Equal(t, posts()[0], post)

	require.Equal(t, `Need a <span>Website</span>?`, b.Title.String())
	require.Contains(t, b.Meta.String(), "Web Design")
	require.Contains(t, b.Meta.String(), "6 min read")
	require.Contains(t, b.Meta.String(), "February 3, 2025")
	require.Equal(t, "Yes.", b.Excerpt.String())
	require.Contains(t, b.Author.String(), "Brightline Team")
	require.Equal(t, "<p>Body <em>one</em></p>", b.Body.String())

	related := b.Related.String()
	require.Equal(t, 3, cardCount(related))
	require.NotContains(t, related, "slug=does-your-small-business-need-a-website")
}

func TestRenderPostNotFound(t *testing.T) {
	rd := newRenderer(posts())
	b := page.PostBindings(page.NewHead(site, ""))

	_, err := rd.RenderPost(context.Background(), b, "nonexistent-slug")
	require.True(t, errors.Is(err, blog.ErrNotFound))
	require.Contains(t, b.Body.String(), "Post not found")
	require.Contains(t, b.Body.String(), `href="/blog/"`)
	require.False(t, b.Related.Filled())
	require.Empty(t, b.Head.StructuredData.String())
}

func TestRelatedSeeded(t *testing.T) {
	render := func() string {
		rd := newRenderer(posts())
		rd.Rand = rand.New(rand.NewPCG(42, 1))
		b := &page.Bindings{Related: page.NewRegion()}
		require.NoError(t, rd.RenderRelated(context.Background(), b, posts()[2]))
		return b.Related.String()
	}
	require.Equal(t, render(), render())
}

type noShuffle struct{}

func (noShuffle) Shuffle(int, func(i, j int)) {}

func TestRelatedInjectedShuffler(t *testing.T) {
	rd := newRenderer(posts())
	rd.Rand = noShuffle{}
	b := &page.Bindings{Related: page.NewRegion()}
	require.NoError(t, rd.RenderRelated(context.Background(), b, posts()[0]))

	html := b.Related.String()
	require.Equal(t, 3, cardCount(html))
	require.Less(t, strings.Index(html, "local-seo-checklist"), strings.Index(html, "email-marketing-on-a-budget"))
	require.Less(t, strings.Index(html, "email-marketing-on-a-budget"), strings.Index(html, "backups-that-actually-work"))
	require.NotContains(t, html, "mobile-first-design")
}

func TestApplyMetadata(t *testing.T) {
	rd := newRenderer(posts())
	rd.Images = func(src string) (int, int, bool) {
		if src == "/public/img/seo.jpg" {
			return 1200, 630, true
		}
		return 0, 0, false
	}
	h := page.NewHead(site, "https://brightline.example/blog/")
	require.NoError(t, rd.ApplyMetadata(context.Background(), h, posts()[1]))

	tags := h.Tags()
	require.Equal(t, "Local SEO", tags.Title)
	require.Equal(t, "Checklist", tags.Description)
	require.Equal(t, "Local SEO", tags.OGTitle)
	require.Equal(t, "Checklist", tags.OGDescription)
	require.Equal(t, "https://brightline.example/public/img/seo.jpg", tags.OGImage)
	require.Equal(t, "1200", tags.OGImageWidth)
	require.Equal(t, "630", tags.OGImageHeight)
	require.Equal(t, "article", tags.OGType)
	require.Equal(t, "https://brightline.example/blog/post/?slug=local-seo-checklist", tags.Canonical)
	require.Equal(t, tags.Canonical, tags.OGURL)

	var ld map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(tags.StructuredData), &ld))
	require.Equal(t, "Article", ld["@type"])
	require.Equal(t, "Local SEO", ld["headline"])
	require.Equal(t, "Checklist", ld["description"])
	require.Equal(t, "2025-01-21", ld["datePublished"])
	require.Equal(t, ld["datePublished"], ld["dateModified"])
	require.Equal(t, "https://brightline.example/public/img/seo.jpg", ld["image"])
	entity := ld["mainEntityOfPage"].(map[string]interface{})
	require.Equal(t, tags.Canonical, entity["@id"])
	require.Equal(t, "Brightline Studio", ld["author"].(map[string]interface{})["name"])
	require.Equal(t, "Brightline Studio", ld["publisher"].(map[string]interface{})["name"])
}

func TestApplyMetadataIdempotent(t *testing.T) {
	rd := newRenderer(posts())
	ctx := context.Background()
	h := page.NewHead(site, "")

	require.NoError(t, rd.ApplyMetadata(ctx, h, posts()[0]))
	first := h.Tags()
	require.NoError(t, rd.ApplyMetadata(ctx, h, posts()[0]))
	require.Equal(t, first, h.Tags())

	// A different post in between must not leak into the final state.
	require.NoError(t, rd.ApplyMetadata(ctx, h, posts()[1]))
	require.NoError(t, rd.ApplyMetadata(ctx, h, posts()[0]))
	require.Equal(t, first, h.Tags())
}

func TestApplyMetadataMissingFields(t *testing.T) {
	rd := newRenderer(posts())
	h := page.NewHead(site, "")
	h.Description = nil
	h.Canonical = nil
	h.StructuredData = nil

	require.NoError(t, rd.ApplyMetadata(context.Background(), h, posts()[0]))
	tags := h.Tags()
	require.Empty(t, tags.Description)
	require.Empty(t, tags.Canonical)
	require.Empty(t, tags.StructuredData)
	require.Equal(t, "SEO Need a Website", tags.OGTitle)
	require.Equal(t, "Why you need one.", tags.OGDescription)
	require.Equal(t, "https://img.example/a.jpg", tags.OGImage)

	require.NoError(t, rd.ApplyMetadata(context.Background(), nil, posts()[0]))
}

func TestDocuments(t *testing.T) {
	rd := newRenderer(posts())
	ctx := context.Background()

	lb := page.ListingBindings(page.NewHead(site, "https://brightline.example/blog/"))
	require.NoError(t, rd.RenderIndex(ctx, lb, "all"))
	var sb strings.Builder
	require.NoError(t, page.ListingDocument(site, lb).Render(ctx, &sb))
	require.Contains(t, sb.String(), `<div id="blog-grid"`)
	require.Contains(t, sb.String(), `<link rel="canonical" href="https://brightline.example/blog/"/>`)

	pb := page.PostBindings(page.NewHead(site, ""))
	_, err := rd.RenderPost(ctx, pb, "local-seo-checklist")
	require.NoError(t, err)
	sb.Reset()
	require.NoError(t, page.PostDocument(site, pb).Render(ctx, &sb))
	html := sb.String()
	require.Contains(t, html, `<script type="application/ld+json">`)
	require.Contains(t, html, `<meta property="og:type" content="article"/>`)
	require.Contains(t, html, `<p>two</p>`)
}
