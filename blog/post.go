// Package blog holds the post model and the read-only content repository the
// renderers query. The post list is loaded once and never mutated.
package blog

import (
	"errors"
	"net/url"
	"time"
)

// AllCategories is the filter value that selects every category.
const AllCategories = "all"

// ErrNotFound is returned when no post has the requested slug.
var ErrNotFound = errors.New("blog: post not found")

// Post is one article of the site blog.
type Post struct {
	Slug          string
	Title         string
	TitleHTML     string // trusted inline markup, rendered as-is
	Excerpt       string
	Category      string
	CategoryLabel string
	Date          string // YYYY-MM-DD
	ReadTime      string
	Featured      bool
	Image         string
	SEOTitle      string
	SEODesc       string
	Body          string // trusted markup, rendered as-is
}

// Link returns the detail page address of the post.
func (p Post) Link() string {
	return PostPath + "?" + url.Values{"slug": {p.Slug}}.Encode()
}

// PostPath is the detail page path; the post is selected by the slug query parameter.
const PostPath = "/blog/post/"

// ListingPath is the listing page path.
const ListingPath = "/blog/"

// Category is a category key with its display label.
type Category struct {
	Key   string
	Label string
}

const dateLayout = "2006-01-02"

// ParseDate interprets an ISO date at midday of that calendar day. The value is
// kept in UTC: a local zone may skip the day entirely (Pacific/Apia, 2011-12-30).
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, err
	}
	return t.Add(12 * time.Hour), nil
}

// FormatDate renders an ISO date as e.g. "February 3, 2025". Unparsable input is
// returned unchanged.
func FormatDate(date string) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format("January 2, 2006")
}
