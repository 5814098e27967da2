package sitepress

import (
	"context"
	"sync"
	"time"

	"github.com/eringen/sitepress/blog"
)

// PostCache is an in-memory snapshot of a repository's posts and categories with
// a TTL. Reads are served from the snapshot with the same rules as blog.MemoryRepository.
type PostCache struct {
	mu         sync.RWMutex
	posts      []blog.Post
	categories []blog.Category
	fetched    time.Time
	ttl        time.Duration
	source     blog.Repository
}

var _ blog.Repository = (*PostCache)(nil)

// NewPostCache creates a PostCache over source.
func NewPostCache(source blog.Repository, ttl time.Duration) *PostCache {
	return &PostCache{source: source, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.categories = nil
	c.mu.Unlock()
}

func (c *PostCache) load(ctx context.Context) error {
	if c.valid() {
		return nil
	}
	posts, err := c.source.List(ctx)
	if err != nil {
		return err
	}
	categories, err := c.source.Categories(ctx)
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []blog.Post{}
	}
	c.posts = posts
	c.categories = categories
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns the cached snapshot after ensuring it is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) ensureLoaded(ctx context.Context) ([]blog.Post, []blog.Category, error) {
	c.mu.RLock()
	if c.valid() {
		posts, categories := c.posts, c.categories
		c.mu.RUnlock()
		return posts, categories, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx); err != nil {
		return nil, nil, err
	}
	return c.posts, c.categories, nil
}

// List returns every post in source order. The result is a copy.
func (c *PostCache) List(ctx context.Context) ([]blog.Post, error) {
	posts, _, err := c.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]blog.Post, len(posts))
	copy(out, posts)
	return out, nil
}

// FindBySlug returns the first cached post with slug, or blog.ErrNotFound.
func (c *PostCache) FindBySlug(ctx context.Context, slug string) (blog.Post, error) {
	posts, _, err := c.ensureLoaded(ctx)
	if err != nil {
		return blog.Post{}, err
	}
	return blog.FindBySlug(posts, slug)
}

// ListByCategory returns the grid posts for category.
func (c *PostCache) ListByCategory(ctx context.Context, category string) ([]blog.Post, error) {
	posts, _, err := c.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}
	return blog.FilterGrid(posts, category), nil
}

// ListFeatured returns the featured posts.
func (c *PostCache) ListFeatured(ctx context.Context) ([]blog.Post, error) {
	posts, _, err := c.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}
	return blog.FilterFeatured(posts), nil
}

// Categories returns the cached category list.
func (c *PostCache) Categories(ctx context.Context) ([]blog.Category, error) {
	_, categories, err := c.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]blog.Category, len(categories))
	copy(out, categories)
	return out, nil
}
