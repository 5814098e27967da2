package blog

import "context"

// Repository is the read-only view of the post list used by the renderers.
type Repository interface {
	// List returns every post in insertion order.
	List(ctx context.Context) ([]Post, error)
	// FindBySlug returns the first post with the slug, or ErrNotFound.
	FindBySlug(ctx context.Context, slug string) (Post, error)
	// ListByCategory returns the grid posts for a filter value.
	ListByCategory(ctx context.Context, category string) ([]Post, error)
	// ListFeatured returns every post flagged featured, in insertion order.
	ListFeatured(ctx context.Context) ([]Post, error)
	// Categories returns the distinct categories in first-appearance order.
	Categories(ctx context.Context) ([]Category, error)
}

// MemoryRepository serves a fixed slice of posts.
type MemoryRepository struct {
	posts []Post
}

// NewMemoryRepository copies posts into a new repository.
func NewMemoryRepository(posts []Post) *MemoryRepository {
	cp := make([]Post, len(posts))
	copy(cp, posts)
	return &MemoryRepository{posts: cp}
}

func (r *MemoryRepository) List(context.Context) ([]Post, error) {
	out := make([]Post, len(r.posts))
	copy(out, r.posts)
	return out, nil
}

func (r *MemoryRepository) FindBySlug(_ context.Context, slug string) (Post, error) {
	return FindBySlug(r.posts, slug)
}

func (r *MemoryRepository) ListByCategory(_ context.Context, category string) ([]Post, error) {
	return FilterGrid(r.posts, category), nil
}

func (r *MemoryRepository) ListFeatured(context.Context) ([]Post, error) {
	return FilterFeatured(r.posts), nil
}

func (r *MemoryRepository) Categories(context.Context) ([]Category, error) {
	return CollectCategories(r.posts), nil
}

// FindBySlug returns the first post in posts with the slug.
func FindBySlug(posts []Post, slug string) (Post, error) {
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Post{}, ErrNotFound
}

// FeaturedIndex returns the index of the first featured post, or -1.
func FeaturedIndex(posts []Post) int {
	for i, p := range posts {
		if p.Featured {
			return i
		}
	}
	return -1
}

// FilterGrid returns the grid entries for category: every post except the one
// occupying the featured slot, restricted to the category unless it is "all" or
// empty. Later featured posts are ordinary entries. Order is preserved.
func FilterGrid(posts []Post, category string) []Post {
	featured := FeaturedIndex(posts)
	all := category == "" || category == AllCategories
	out := make([]Post, 0, len(posts))
	for i, p := range posts {
		if i == featured {
			continue
		}
		if all || p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// FilterFeatured returns the posts flagged featured.
func FilterFeatured(posts []Post) []Post {
	var out []Post
	for _, p := range posts {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// CollectCategories lists distinct categories in first-appearance order, labelled
// by the first post that uses them.
func CollectCategories(posts []Post) []Category {
	seen := make(map[string]struct{})
	var out []Category
	for _, p := range posts {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		label := p.CategoryLabel
		if label == "" {
			label = p.Category
		}
		out = append(out, Category{Key: p.Category, Label: label})
	}
	return out
}
