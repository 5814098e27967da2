// Package scaffold creates a starter sitepress site: a config file, sample
// content and a .env example, rendered from embedded text/template files.
package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Templates contains all scaffold template files.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

// Data holds the template variables passed to every scaffold template.
type Data struct {
	ProjectName string
	Slug        string // ProjectName as a post slug
	SiteName    string
	SiteURL     string
}

// NewData derives template data from the target directory name.
func NewData(dir string) Data {
	name := filepath.Base(filepath.Clean(dir))
	return Data{
		ProjectName: name,
		Slug:        Slugify(name),
		SiteName:    cases.Title(language.English).String(strings.NewReplacer("-", " ", "_", " ").Replace(name)),
		SiteURL:     "http://localhost:3000",
	}
}

// Generate writes the rendered templates under dir, which must not exist yet.
// It returns the created file paths.
func Generate(dir string, data Data) ([]string, error) {
	if _, err := os.Stat(dir); err == nil {
		return nil, fmt.Errorf("directory %q already exists", dir)
	}

	const root = "templates"
	var created []string
	err := fs.WalkDir(Templates, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		outPath := strings.TrimSuffix(filepath.Join(dir, relPath), ".tmpl")
		if filepath.Base(outPath) == "dotenv" {
			outPath = filepath.Join(filepath.Dir(outPath), ".env.example")
		}

		if d.IsDir() {
			return os.MkdirAll(outPath, 0o755)
		}

		src, err := Templates.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		tmpl, err := template.New(filepath.Base(path)).Option("missingkey=error").Parse(string(src))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		defer f.Close()
		if err := tmpl.Execute(f, data); err != nil {
			return fmt.Errorf("execute template %s: %w", path, err)
		}
		created = append(created, outPath)
		return nil
	})
	if err != nil {
		return created, err
	}
	return created, nil
}

// Slugify converts a name to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
