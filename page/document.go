package page

import (
	"github.com/a-h/templ"

	"github.com/eringen/sitepress/views"
)

// ListingDocument assembles the blog index page from its bindings.
func ListingDocument(site views.SiteConfig, b *Bindings) templ.Component {
	return views.Layout(site, b.Head.Tags(),
		views.ListingMain(b.Featured.Component(), b.Filters.Component(), b.Grid.Component()))
}

// ListingFragment is the filters+grid fragment returned to HTMX requests.
func ListingFragment(b *Bindings) templ.Component {
	return views.ListingPartial(b.Filters.Component(), b.Grid.Component())
}

// PostDocument assembles the post detail page from its bindings.
func PostDocument(site views.SiteConfig, b *Bindings) templ.Component {
	return views.Layout(site, b.Head.Tags(), views.ArticleMain(
		b.Title.Component(),
		b.Meta.Component(),
		b.Excerpt.Component(),
		b.Author.Component(),
		b.Body.Component(),
		b.Related.Component(),
	))
}
