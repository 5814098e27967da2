package page

import (
	"context"
	"errors"
	"fmt"

	"github.com/a-h/templ"

	"github.com/eringen/sitepress/blog"
	"github.com/eringen/sitepress/views"
)

// ImageSizer reports the pixel size of a cover image when it can be determined.
type ImageSizer func(src string) (width, height int, ok bool)

// Renderer produces the blog views from a repository.
type Renderer struct {
	Repo   blog.Repository
	Site   views.SiteConfig
	Rand   blog.Shuffler // nil uses blog.DefaultShuffler
	Images ImageSizer    // optional
}

// fill renders cmp into r unless the target is absent.
func fill(ctx context.Context, r *Region, cmp templ.Component) error {
	if r == nil {
		return nil
	}
	return r.Fill(ctx, cmp)
}

// RenderListing fills the filter group and the grid for category.
func (rd *Renderer) RenderListing(ctx context.Context, b *Bindings, category string) error {
	if b.Filters == nil && b.Grid == nil {
		return nil
	}
	if category == "" {
		category = blog.AllCategories
	}
	if b.Filters != nil {
		cats, err := rd.Repo.Categories(ctx)
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		if err := fill(ctx, b.Filters, views.Filters(cats, category)); err != nil {
			return err
		}
	}
	if b.Grid != nil {
		posts, err := rd.Repo.ListByCategory(ctx, category)
		if err != nil {
			return fmt.Errorf("list posts: %w", err)
		}
		if err := fill(ctx, b.Grid, views.Grid(posts)); err != nil {
			return err
		}
	}
	return nil
}

// RenderFeatured fills the featured slot with the first featured post. With no
// featured post the slot is left as it was.
func (rd *Renderer) RenderFeatured(ctx context.Context, b *Bindings) error {
	if b.Featured == nil {
		return nil
	}
	featured, err := rd.Repo.ListFeatured(ctx)
	if err != nil {
		return fmt.Errorf("list featured: %w", err)
	}
	if len(featured) == 0 {
		return nil
	}
	return fill(ctx, b.Featured, views.Featured(featured[0]))
}

// RenderDetail fills the detail regions for slug. On a miss it renders the
// not-found state and returns blog.ErrNotFound.
func (rd *Renderer) RenderDetail(ctx context.Context, b *Bindings, slug string) (blog.Post, error) {
	post, err := rd.Repo.FindBySlug(ctx, slug)
	if errors.Is(err, blog.ErrNotFound) {
		if err := rd.renderNotFound(ctx, b); err != nil {
			return blog.Post{}, err
		}
		return blog.Post{}, blog.ErrNotFound
	}
	if err != nil {
		return blog.Post{}, fmt.Errorf("find post: %w", err)
	}

	steps := []struct {
		region *Region
		cmp    templ.Component
	}{
		{b.Title, views.PostTitle(post)},
		{b.Meta, views.PostMeta(post)},
		{b.Excerpt, views.PostExcerpt(post)},
		{b.Author, views.AuthorBlock(rd.Site.Author)},
		{b.Body, views.PostContent(post)},
	}
	for _, s := range steps {
		if err := fill(ctx, s.region, s.cmp); err != nil {
			return blog.Post{}, err
		}
	}
	return post, nil
}

func (rd *Renderer) renderNotFound(ctx context.Context, b *Bindings) error {
	if err := fill(ctx, b.Title, templ.Raw("Post not found")); err != nil {
		return err
	}
	if err := fill(ctx, b.Body, views.NotFound()); err != nil {
		return err
	}
	b.Head.setNotFound(rd.Site)
	return nil
}

// RenderRelated fills the related-posts region with a random sample of other posts.
func (rd *Renderer) RenderRelated(ctx context.Context, b *Bindings, current blog.Post) error {
	if b.Related == nil {
		return nil
	}
	posts, err := rd.Repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list posts: %w", err)
	}
	related := blog.Related(posts, current, rd.Rand, blog.RelatedCount)
	return fill(ctx, b.Related, views.RelatedPosts(related))
}

// RenderPost renders a full detail page: the post, its related posts and its
// metadata. A miss renders the not-found state and returns blog.ErrNotFound.
func (rd *Renderer) RenderPost(ctx context.Context, b *Bindings, slug string) (blog.Post, error) {
	post, err := rd.RenderDetail(ctx, b, slug)
	if err != nil {
		return post, err
	}
	if err := rd.RenderRelated(ctx, b, post); err != nil {
		return post, err
	}
	if err := rd.ApplyMetadata(ctx, b.Head, post); err != nil {
		return post, err
	}
	return post, nil
}

// RenderIndex renders the listing page: featured slot, filters and grid.
func (rd *Renderer) RenderIndex(ctx context.Context, b *Bindings, category string) error {
	if err := rd.RenderFeatured(ctx, b); err != nil {
		return err
	}
	return rd.RenderListing(ctx, b, category)
}
