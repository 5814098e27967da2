// Package page renders blog views into explicit page regions. A renderer only
// touches the regions it is given; a nil region is an absent target and the
// step that would fill it is skipped.
package page

import (
	"bytes"
	"context"

	"github.com/a-h/templ"

	"github.com/eringen/sitepress/views"
)

// Region is a slot of a page that a renderer fills with markup.
type Region struct {
	buf    bytes.Buffer
	filled bool
}

// NewRegion returns an empty region.
func NewRegion() *Region {
	return &Region{}
}

// Fill replaces the region content with the rendered component.
func (r *Region) Fill(ctx context.Context, cmp templ.Component) error {
	r.buf.Reset()
	r.filled = true
	return cmp.Render(ctx, &r.buf)
}

// Filled reports whether a renderer has written to the region.
func (r *Region) Filled() bool {
	return r != nil && r.filled
}

// String returns the region markup.
func (r *Region) String() string {
	if r == nil {
		return ""
	}
	return r.buf.String()
}

// Component returns the region markup as a component. Safe on a nil region.
func (r *Region) Component() templ.Component {
	if r == nil {
		return templ.NopComponent
	}
	return templ.Raw(r.buf.String())
}

// Field is a head element whose value renderers overwrite.
type Field struct {
	Value string
}

// Set overwrites the field value. Safe on a nil field.
func (f *Field) Set(v string) {
	if f != nil {
		f.Value = v
	}
}

func (f *Field) get() string {
	if f == nil {
		return ""
	}
	return f.Value
}

// Head holds the page metadata targets.
type Head struct {
	Title          *Field
	Description    *Field
	Canonical      *Field
	OGTitle        *Field
	OGDescription  *Field
	OGImage        *Field
	OGImageWidth   *Field
	OGImageHeight  *Field
	OGURL          *Field
	OGType         *Field
	TwitterCard    *Field
	StructuredData *Region
}

// NewHead returns a head with every target present, seeded with site defaults.
func NewHead(site views.SiteConfig, canonical string) *Head {
	return &Head{
		Title:          &Field{Value: site.Name},
		Description:    &Field{Value: site.Description},
		Canonical:      &Field{Value: canonical},
		OGTitle:        &Field{Value: site.Name},
		OGDescription:  &Field{Value: site.Description},
		OGImage:        &Field{Value: views.AbsURL(site.URL, site.Logo)},
		OGImageWidth:   &Field{},
		OGImageHeight:  &Field{},
		OGURL:          &Field{Value: canonical},
		OGType:         &Field{Value: "website"},
		TwitterCard:    &Field{Value: "summary_large_image"},
		StructuredData: NewRegion(),
	}
}

// Tags flattens the head into the values the layout writes.
func (h *Head) Tags() views.HeadTags {
	if h == nil {
		return views.HeadTags{}
	}
	return views.HeadTags{
		Title:          h.Title.get(),
		Description:    h.Description.get(),
		Canonical:      h.Canonical.get(),
		OGTitle:        h.OGTitle.get(),
		OGDescription:  h.OGDescription.get(),
		OGImage:        h.OGImage.get(),
		OGImageWidth:   h.OGImageWidth.get(),
		OGImageHeight:  h.OGImageHeight.get(),
		OGURL:          h.OGURL.get(),
		OGType:         h.OGType.get(),
		TwitterCard:    h.TwitterCard.get(),
		StructuredData: h.StructuredData.String(),
	}
}

// Bindings are the render targets of one page. Any of them may be nil.
type Bindings struct {
	Featured *Region
	Filters  *Region
	Grid     *Region

	Title   *Region
	Meta    *Region
	Excerpt *Region
	Author  *Region
	Body    *Region
	Related *Region

	Head *Head
}

// ListingBindings returns the targets of the blog index page.
func ListingBindings(head *Head) *Bindings {
	return &Bindings{
		Featured: NewRegion(),
		Filters:  NewRegion(),
		Grid:     NewRegion(),
		Head:     head,
	}
}

// PostBindings returns the targets of the post detail page.
func PostBindings(head *Head) *Bindings {
	return &Bindings{
		Title:   NewRegion(),
		Meta:    NewRegion(),
		Excerpt: NewRegion(),
		Author:  NewRegion(),
		Body:    NewRegion(),
		Related: NewRegion(),
		Head:    head,
	}
}
