package views

// SiteConfig holds the site-wide identity shared by every page.
// Handlers pass it to the components so nothing is hardcoded.
type SiteConfig struct {
	Name        string `mapstructure:"name"`        // organization / site name
	URL         string `mapstructure:"url"`         // canonical base URL, no trailing slash
	Description string `mapstructure:"description"` // default meta description
	Logo        string `mapstructure:"logo"`        // publisher logo for JSON-LD
	Twitter     string `mapstructure:"twitter"`     // twitter:site handle
	Author      Author `mapstructure:"author"`
}

// Author is the fixed byline shown under every post.
type Author struct {
	Name   string `mapstructure:"name"`
	Role   string `mapstructure:"role"`
	Bio    string `mapstructure:"bio"`
	Avatar string `mapstructure:"avatar"`
}

// HeadTags carries the <head> metadata of a page. Empty fields are omitted.
type HeadTags struct {
	Title          string
	Description    string
	Canonical      string
	OGTitle        string
	OGDescription  string
	OGImage        string
	OGImageWidth   string
	OGImageHeight  string
	OGURL          string
	OGType         string // "website" or "article"
	TwitterCard    string
	StructuredData string // JSON-LD document
}
