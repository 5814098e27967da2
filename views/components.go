package views

import (
	"context"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"github.com/eringen/sitepress/blog"
)

// Card renders the summary card used by both the grid and related posts.
func Card(p blog.Post) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		link := href(p.Link())
		hw.raw(`<article class="blog-card" data-category="`, esc(p.Category), `">`)
		if p.Image != "" {
			hw.raw(`<a href="`, link, `" class="blog-card-image"><img src="`, href(p.Image),
				`" alt="`, esc(p.Title), `" loading="lazy" decoding="async"/></a>`)
		}
		hw.raw(`<div class="blog-card-content">`,
			`<span class="blog-card-category">`, esc(p.CategoryLabel), `</span>`,
			`<h3 class="blog-card-title"><a href="`, link, `">`, esc(p.Title), `</a></h3>`,
			`<p class="blog-card-excerpt">`, esc(p.Excerpt), `</p>`,
			`<div class="blog-card-footer">`,
			`<time datetime="`, esc(p.Date), `">`, esc(blog.FormatDate(p.Date)), `</time>`,
			`<a href="`, link, `" class="blog-card-link">Read article &rarr;</a>`,
			`</div></div></article>`)
		return hw.err
	})
}

// Grid renders the post grid, or the empty-category placeholder when posts is empty.
func Grid(posts []blog.Post) templ.Component {
	if len(posts) == 0 {
		return EmptyGrid()
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		for _, p := range posts {
			hw.component(ctx, Card(p))
		}
		return hw.err
	})
}

// EmptyGrid is shown instead of an empty grid.
func EmptyGrid() templ.Component {
	return templ.Raw(`<div class="blog-empty"><p>No posts in this category yet.</p>` +
		`<a href="` + blog.ListingPath + `" class="blog-empty-link">View all posts</a></div>`)
}

// Featured renders the large featured-post card.
func Featured(p blog.Post) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		link := href(p.Link())
		hw.raw(`<article class="featured-post">`)
		if p.Image != "" {
			hw.raw(`<a href="`, link, `" class="featured-post-image"><img src="`, href(p.Image),
				`" alt="`, esc(p.Title), `" fetchpriority="high" decoding="async"/></a>`)
		}
		hw.raw(`<div class="featured-post-content">`,
			`<span class="featured-badge">Featured</span>`,
			`<span class="blog-card-category">`, esc(p.CategoryLabel), `</span>`,
			`<h2 class="featured-post-title"><a href="`, link, `">`, p.TitleHTML, `</a></h2>`,
			`<p class="featured-post-excerpt">`, esc(p.Excerpt), `</p>`,
			`<div class="featured-post-meta">`,
			`<time datetime="`, esc(p.Date), `">`, esc(blog.FormatDate(p.Date)), `</time>`)
		if p.ReadTime != "" {
			hw.raw(`<span class="meta-sep">&middot;</span><span>`, esc(p.ReadTime), `</span>`)
		}
		hw.raw(`</div><a href="`, link, `" class="btn btn-primary">Read article</a></div></article>`)
		return hw.err
	})
}

// Filters renders the category filter control group with "all" first.
// Links carry hx-get so HTMX can swap just the grid.
func Filters(categories []blog.Category, active string) templ.Component {
	if active == "" {
		active = blog.AllCategories
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<nav class="blog-filters" aria-label="Categories">`)
		all := append([]blog.Category{{Key: blog.AllCategories, Label: "All"}}, categories...)
		for _, c := range all {
			q := url.Values{"category": {c.Key}}
			target := blog.ListingPath + "?" + q.Encode()
			q.Set("partial", "grid")
			partial := blog.ListingPath + "?" + q.Encode()
			hw.raw(`<a href="`, href(target), `" hx-get="`, href(partial),
				`" hx-target="#blog-listing" hx-swap="outerHTML" hx-push-url="`, href(target), `" class="`, FilterClass(c.Key == active),
				`" data-category="`, esc(c.Key), `">`, esc(c.Label), `</a>`)
		}
		hw.raw(`</nav>`)
		return hw.err
	})
}

// PostTitle renders the detail heading from the trusted title markup.
func PostTitle(p blog.Post) templ.Component {
	return templ.Raw(p.TitleHTML)
}

// PostMeta renders "Category · read time · date".
func PostMeta(p blog.Post) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<span class="post-category">`, esc(p.CategoryLabel), `</span>`)
		if p.ReadTime != "" {
			hw.raw(`<span class="meta-sep">&middot;</span><span class="post-read-time">`, esc(p.ReadTime), `</span>`)
		}
		hw.raw(`<span class="meta-sep">&middot;</span><time datetime="`, esc(p.Date), `">`,
			esc(blog.FormatDate(p.Date)), `</time>`)
		return hw.err
	})
}

// PostExcerpt renders the lead paragraph.
func PostExcerpt(p blog.Post) templ.Component {
	return templ.Raw(esc(p.Excerpt))
}

// AuthorBlock renders the site-wide byline.
func AuthorBlock(a Author) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<div class="author-card">`)
		if a.Avatar != "" {
			hw.raw(`<img class="author-avatar" src="`, href(a.Avatar), `" alt="`, esc(a.Name), `" width="64" height="64"/>`)
		}
		hw.raw(`<div class="author-info"><span class="author-name">`, esc(a.Name), `</span>`)
		if a.Role != "" {
			hw.raw(`<span class="author-role">`, esc(a.Role), `</span>`)
		}
		if a.Bio != "" {
			hw.raw(`<p class="author-bio">`, esc(a.Bio), `</p>`)
		}
		hw.raw(`</div></div>`)
		return hw.err
	})
}

// PostContent renders the body verbatim. Bodies are trusted site content.
func PostContent(p blog.Post) templ.Component {
	return templ.Raw(p.Body)
}

// NotFound is the detail view fallback for an unknown slug.
func NotFound() templ.Component {
	return templ.Raw(`<div class="post-not-found"><h2>Post not found</h2>` +
		`<p>The article you are looking for does not exist or has been moved.</p>` +
		`<a href="` + blog.ListingPath + `" class="btn btn-primary">&larr; Back to the blog</a></div>`)
}

// RelatedPosts renders the related-post cards.
func RelatedPosts(posts []blog.Post) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		for _, p := range posts {
			hw.component(ctx, Card(p))
		}
		return hw.err
	})
}
