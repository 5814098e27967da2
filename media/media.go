// Package media reads cover image dimensions for og:image:width/height.
package media

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "golang.org/x/image/webp"
)

// Size is the pixel size of an image.
type Size struct {
	Width  int
	Height int
}

// Probe decodes only the header of the image file at path.
func Probe(path string) (Size, error) {
	f, err := os.Open(path)
	if err != nil {
		return Size{}, err
	}
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Size{}, fmt.Errorf("media: decode %s: %w", filepath.Base(path), err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Size{}, fmt.Errorf("media: %s image %s has no size", format, filepath.Base(path))
	}
	return Size{Width: cfg.Width, Height: cfg.Height}, nil
}

// Sizer resolves site-local image URLs (under URLPrefix) to files in Dir and
// remembers the result per URL. External images are never fetched.
type Sizer struct {
	Dir       string
	URLPrefix string // e.g. "/public/"

	mu    sync.RWMutex
	cache map[string]probeResult
}

type probeResult struct {
	size Size
	ok   bool
}

// NewSizer returns a Sizer serving files under dir at prefix.
func NewSizer(dir, prefix string) *Sizer {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &Sizer{Dir: dir, URLPrefix: prefix, cache: make(map[string]probeResult)}
}

// Size reports the dimensions of the image at src when it is a readable local file.
func (s *Sizer) Size(src string) (width, height int, ok bool) {
	s.mu.RLock()
	r, hit := s.cache[src]
	s.mu.RUnlock()
	if hit {
		return r.size.Width, r.size.Height, r.ok
	}

	r = s.probe(src)
	s.mu.Lock()
	s.cache[src] = r
	s.mu.Unlock()
	return r.size.Width, r.size.Height, r.ok
}

func (s *Sizer) probe(src string) probeResult {
	rel, found := strings.CutPrefix(src, s.URLPrefix)
	if !found || rel == "" {
		return probeResult{}
	}
	clean := filepath.Clean(filepath.FromSlash(rel))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
		return probeResult{}
	}
	size, err := Probe(filepath.Join(s.Dir, clean))
	if err != nil {
		return probeResult{}
	}
	return probeResult{size: size, ok: true}
}
