// Package content loads the blog post list from a YAML artifact or a directory
// of Markdown files, validates it and fills in derived fields.
package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/eringen/sitepress/blog"
)

//go:embed posts.yaml
var defaultPosts []byte

// record is the on-disk shape of a post, shared by YAML files and front matter.
type record struct {
	Slug          string `yaml:"slug" validate:"required,slug"`
	Title         string `yaml:"title" validate:"required"`
	TitleHTML     string `yaml:"titleHtml"`
	Excerpt       string `yaml:"excerpt"`
	Category      string `yaml:"category" validate:"required"`
	CategoryLabel string `yaml:"categoryLabel"`
	Date          string `yaml:"date" validate:"required,datetime=2006-01-02"`
	ReadTime      string `yaml:"readTime"`
	Featured      bool   `yaml:"featured"`
	Image         string `yaml:"image" validate:"omitempty,url|startswith=/"`
	SEOTitle      string `yaml:"seoTitle"`
	SEODesc       string `yaml:"seoDesc"`
	Body          string `yaml:"body"`
}

type document struct {
	Posts []record `yaml:"posts"`
}

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
)

var titleCaser = cases.Title(language.English)

// Load reads posts from path: a .yaml/.yml file, a directory of .md files, or the
// bundled sample content when path is empty. Warnings go to log.
func Load(path string, log *zap.Logger) ([]blog.Post, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var (
		recs []record
		err  error
	)
	switch {
	case path == "":
		recs, err = decodeYAML(defaultPosts)
	default:
		var info os.FileInfo
		info, err = os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("content: %w", err)
		}
		if info.IsDir() {
			recs, err = readMarkdownDir(path)
		} else {
			recs, err = readYAMLFile(path)
		}
	}
	if err != nil {
		return nil, err
	}

	posts := make([]blog.Post, 0, len(recs))
	for i, r := range recs {
		if err := validateRecord(r); err != nil {
			return nil, fmt.Errorf("content: post %d (%q): %w", i, r.Slug, err)
		}
		posts = append(posts, r.post())
	}

	report := Inspect(posts)
	for _, slug := range report.DuplicateSlugs {
		log.Warn("duplicate slug, lookups return the first post", zap.String("slug", slug))
	}
	if len(report.Featured) > 1 {
		log.Warn("several featured posts, only the first takes the featured slot",
			zap.Strings("featured", report.Featured))
	}
	log.Info("content loaded", zap.Int("posts", len(posts)), zap.String("source", sourceName(path)))
	return posts, nil
}

func sourceName(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}

func readYAMLFile(path string) ([]record, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", path, err)
	}
	recs, err := decodeYAML(b)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return recs, nil
}

func decodeYAML(b []byte) ([]record, error) {
	var doc document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("content: decode yaml: %w", err)
	}
	return doc.Posts, nil
}

// readMarkdownDir loads every .md file of dir in file-name order. Front matter
// carries the post fields; the Markdown body becomes the post body.
func readMarkdownDir(dir string) ([]record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("content: read dir %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".md") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	recs := make([]record, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("content: read %s: %w", path, err)
		}
		var r record
		rest, err := frontmatter.Parse(bytes.NewReader(b), &r)
		if err != nil {
			return nil, fmt.Errorf("content: front matter %s: %w", path, err)
		}
		if r.Slug == "" {
			r.Slug = strings.TrimSuffix(name, filepath.Ext(name))
		}
		var out bytes.Buffer
		if err := md.Convert(rest, &out); err != nil {
			return nil, fmt.Errorf("content: markdown %s: %w", path, err)
		}
		r.Body = out.String()
		recs = append(recs, r)
	}
	return recs, nil
}

func (r record) post() blog.Post {
	p := blog.Post{
		Slug:          r.Slug,
		Title:         r.Title,
		TitleHTML:     r.TitleHTML,
		Excerpt:       r.Excerpt,
		Category:      r.Category,
		CategoryLabel: r.CategoryLabel,
		Date:          r.Date,
		ReadTime:      r.ReadTime,
		Featured:      r.Featured,
		Image:         r.Image,
		SEOTitle:      r.SEOTitle,
		SEODesc:       r.SEODesc,
		Body:          r.Body,
	}
	if p.CategoryLabel == "" {
		p.CategoryLabel = CategoryLabel(p.Category)
	}
	if p.TitleHTML == "" {
		p.TitleHTML = html.EscapeString(p.Title)
	}
	if p.SEOTitle == "" {
		p.SEOTitle = p.Title
	}
	if p.SEODesc == "" {
		p.SEODesc = p.Excerpt
	}
	return p
}

// CategoryLabel turns a category key like "it-support" into "It Support".
func CategoryLabel(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool { return r == '-' || r == '_' })
	return titleCaser.String(strings.Join(words, " "))
}

// Report summarises questionable but accepted content.
type Report struct {
	DuplicateSlugs []string
	Featured       []string
}

// Inspect reports duplicate slugs and every featured post.
func Inspect(posts []blog.Post) Report {
	var r Report
	seen := make(map[string]int)
	for _, p := range posts {
		seen[p.Slug]++
		if seen[p.Slug] == 2 {
			r.DuplicateSlugs = append(r.DuplicateSlugs, p.Slug)
		}
		if p.Featured {
			r.Featured = append(r.Featured, p.Slug)
		}
	}
	return r
}
