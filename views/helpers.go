package views

import (
	"context"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/a-h/templ"
)

// BuildURL joins path segments onto a base URL, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// AbsURL resolves ref (absolute, root-relative or relative) against base.
func AbsURL(base, ref string) string {
	if ref == "" {
		return ""
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if r.IsAbs() {
		return r.String()
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	if !strings.HasSuffix(b.Path, "/") {
		b.Path += "/"
	}
	return b.ResolveReference(r).String()
}

// FilterClass returns CSS classes for a category filter pill, with active variant.
func FilterClass(active bool) string {
	base := "filter-btn inline-flex items-center rounded-full border border-slate-300 px-4 py-1.5 text-sm font-medium transition hover:border-indigo-500"
	if active {
		base += " active bg-indigo-600 border-indigo-600 text-white"
	}
	return base
}

func esc(s string) string {
	return templ.EscapeString(s)
}

func href(s string) string {
	return esc(string(templ.URL(s)))
}

// htmlWriter writes markup fragments and keeps the first error.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (hw *htmlWriter) raw(parts ...string) {
	for _, p := range parts {
		if hw.err != nil {
			return
		}
		_, hw.err = io.WriteString(hw.w, p)
	}
}

func (hw *htmlWriter) component(ctx context.Context, cmp templ.Component) {
	if hw.err != nil || cmp == nil {
		return
	}
	hw.err = cmp.Render(ctx, hw.w)
}
