package views

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/sitepress/blog"
)

// Layout wraps main in the document shell and writes the head metadata.
func Layout(site SiteConfig, head HeadTags, main templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		title := head.Title
		if title == "" {
			title = site.Name
		}
		hw.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>`,
			`<meta name="viewport" content="width=device-width, initial-scale=1"/>`,
			`<title>`, esc(title), `</title>`)
		meta := func(attr, key, value string) {
			if value != "" {
				hw.raw(`<meta `, attr, `="`, key, `" content="`, esc(value), `"/>`)
			}
		}
		meta("name", "description", head.Description)
		meta("property", "og:type", head.OGType)
		meta("property", "og:site_name", site.Name)
		meta("property", "og:title", head.OGTitle)
		meta("property", "og:description", head.OGDescription)
		meta("property", "og:url", head.OGURL)
		meta("property", "og:image", head.OGImage)
		meta("property", "og:image:width", head.OGImageWidth)
		meta("property", "og:image:height", head.OGImageHeight)
		meta("name", "twitter:card", head.TwitterCard)
		meta("name", "twitter:site", site.Twitter)
		if head.Canonical != "" {
			hw.raw(`<link rel="canonical" href="`, href(head.Canonical), `"/>`)
		}
		hw.raw(`<link rel="alternate" type="application/rss+xml" title="`, esc(site.Name),
			`" href="/feed.xml"/>`,
			`<link rel="icon" href="/favicon.svg" type="image/svg+xml"/>`,
			`<link rel="stylesheet" href="/public/styles.css"/>`,
			`<script src="/public/htmx.min.js" defer></script>`)
		if head.StructuredData != "" {
			hw.raw(`<script type="application/ld+json">`, head.StructuredData, `</script>`)
		}
		hw.raw(`</head><body>`)
		hw.component(ctx, header(site))
		hw.raw(`<main>`)
		hw.component(ctx, main)
		hw.raw(`</main>`)
		hw.component(ctx, footer(site))
		hw.raw(`</body></html>`)
		return hw.err
	})
}

func header(site SiteConfig) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<header class="site-header"><a href="/" class="logo">`, esc(site.Name), `</a>`,
			`<nav class="nav-links"><a href="`, blog.ListingPath, `">Blog</a></nav></header>`)
		return hw.err
	})
}

func footer(site SiteConfig) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<footer class="site-footer"><p>&copy; `, strconv.Itoa(time.Now().Year()), ` `, esc(site.Name), `</p></footer>`)
		return hw.err
	})
}

// ListingMain lays out the blog index regions.
func ListingMain(featured, filters, grid templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<section class="blog-hero"><h1>Insights &amp; Articles</h1>`,
			`<p>Practical advice on websites, marketing and IT for small businesses.</p></section>`,
			`<section id="featured-post" class="featured-section">`)
		hw.component(ctx, featured)
		hw.raw(`</section><section class="blog-section">`)
		hw.component(ctx, ListingPartial(filters, grid))
		hw.raw(`</section>`)
		return hw.err
	})
}

// ListingPartial is the part of the index swapped when a filter is picked.
func ListingPartial(filters, grid templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<div id="blog-listing"><div id="category-filters">`)
		hw.component(ctx, filters)
		hw.raw(`</div><div id="blog-grid" class="blog-grid">`)
		hw.component(ctx, grid)
		hw.raw(`</div></div>`)
		return hw.err
	})
}

// ArticleMain lays out the post detail regions.
func ArticleMain(title, meta, excerpt, author, body, related templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<article class="post"><header class="post-header">`,
			`<a href="`, blog.ListingPath, `" class="post-back">&larr; All articles</a>`,
			`<div id="post-meta" class="post-meta">`)
		hw.component(ctx, meta)
		hw.raw(`</div><h1 id="post-title" class="post-title">`)
		hw.component(ctx, title)
		hw.raw(`</h1><p id="post-excerpt" class="post-excerpt">`)
		hw.component(ctx, excerpt)
		hw.raw(`</p><div id="post-author">`)
		hw.component(ctx, author)
		hw.raw(`</div></header><div id="post-body" class="post-body">`)
		hw.component(ctx, body)
		hw.raw(`</div></article><section class="related-section"><h2>Related articles</h2>`,
			`<div id="related-posts" class="blog-grid">`)
		hw.component(ctx, related)
		hw.raw(`</div></section>`)
		return hw.err
	})
}

// ErrorPage renders a full page for server-side errors.
func ErrorPage(site SiteConfig, code int, message string) templ.Component {
	main := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<section class="error-page"><h1>`, strconv.Itoa(code), `</h1><p>`, esc(message), `</p>`,
			`<a href="/" class="btn btn-primary">Go home</a></section>`)
		return hw.err
	})
	return Layout(site, HeadTags{Title: message + " | " + site.Name}, main)
}
