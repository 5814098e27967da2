package sitepress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/eringen/sitepress/blog"
)

// Store is a read-only post repository on a SQLite database. The post list is
// written once by Seed; position keeps the original list order, so duplicate
// slugs and the featured slot resolve exactly as they do in memory.
type Store struct {
	db *sql.DB
}

var _ blog.Repository = (*Store)(nil)

// NewStore opens the SQLite database at dsn and ensures the schema exists.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA busy_timeout=5000;`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    position INTEGER PRIMARY KEY,
    slug TEXT NOT NULL,
    title TEXT NOT NULL,
    title_html TEXT NOT NULL,
    excerpt TEXT NOT NULL,
    category TEXT NOT NULL,
    category_label TEXT NOT NULL,
    date TEXT NOT NULL,
    read_time TEXT NOT NULL,
    featured INTEGER NOT NULL DEFAULT 0,
    image TEXT NOT NULL,
    seo_title TEXT NOT NULL,
    seo_desc TEXT NOT NULL,
    body TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS posts_slug ON posts (slug);
CREATE INDEX IF NOT EXISTS posts_category ON posts (category);
`)
	return err
}

// Seed replaces the stored posts with posts, keeping their order.
func (s *Store) Seed(ctx context.Context, posts []blog.Post) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM posts`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO posts
(position, slug, title, title_html, excerpt, category, category_label, date, read_time, featured, image, seo_title, seo_desc, body)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, p := range posts {
		featured := 0
		if p.Featured {
			featured = 1
		}
		if _, err := stmt.ExecContext(ctx, i, p.Slug, p.Title, p.TitleHTML, p.Excerpt, p.Category,
			p.CategoryLabel, p.Date, p.ReadTime, featured, p.Image, p.SEOTitle, p.SEODesc, p.Body); err != nil {
			return fmt.Errorf("insert %q: %w", p.Slug, err)
		}
	}
	return tx.Commit()
}

const postColumns = `slug, title, title_html, excerpt, category, category_label, date, read_time, featured, image, seo_title, seo_desc, body`

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (blog.Post, error) {
	var p blog.Post
	var featured int
	err := row.Scan(&p.Slug, &p.Title, &p.TitleHTML, &p.Excerpt, &p.Category, &p.CategoryLabel,
		&p.Date, &p.ReadTime, &featured, &p.Image, &p.SEOTitle, &p.SEODesc, &p.Body)
	p.Featured = featured == 1
	return p, err
}

func (s *Store) queryPosts(ctx context.Context, query string, args ...any) ([]blog.Post, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []blog.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// List returns every post in seed order.
func (s *Store) List(ctx context.Context) ([]blog.Post, error) {
	return s.queryPosts(ctx, `SELECT `+postColumns+` FROM posts ORDER BY position`)
}

// FindBySlug returns the first post with slug, or blog.ErrNotFound.
func (s *Store) FindBySlug(ctx context.Context, slug string) (blog.Post, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE slug = ? ORDER BY position LIMIT 1`, slug)
	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return blog.Post{}, blog.ErrNotFound
	}
	if err != nil {
		return blog.Post{}, err
	}
	return p, nil
}

// firstFeatured excludes the post holding the featured slot.
const firstFeatured = `position IS NOT (SELECT MIN(position) FROM posts WHERE featured = 1)`

// ListByCategory returns the grid posts for category ("" or "all" for every category).
func (s *Store) ListByCategory(ctx context.Context, category string) ([]blog.Post, error) {
	if category == "" || category == blog.AllCategories {
		return s.queryPosts(ctx, `SELECT `+postColumns+` FROM posts WHERE `+firstFeatured+` ORDER BY position`)
	}
	return s.queryPosts(ctx, `SELECT `+postColumns+` FROM posts WHERE `+firstFeatured+` AND category = ? ORDER BY position`, category)
}

// ListFeatured returns the featured posts in seed order.
func (s *Store) ListFeatured(ctx context.Context) ([]blog.Post, error) {
	return s.queryPosts(ctx, `SELECT `+postColumns+` FROM posts WHERE featured = 1 ORDER BY position`)
}

// Categories returns the distinct categories in first-appearance order.
func (s *Store) Categories(ctx context.Context) ([]blog.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT category, category_label FROM posts
WHERE position IN (SELECT MIN(position) FROM posts GROUP BY category)
ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []blog.Category
	for rows.Next() {
		var c blog.Category
		if err := rows.Scan(&c.Key, &c.Label); err != nil {
			return nil, err
		}
		if c.Label == "" {
			c.Label = c.Key
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// Count returns the number of stored posts.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&n)
	return n, err
}
