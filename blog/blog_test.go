package blog_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/require"

	"github.com/eringen/sitepress/blog"
)

func fixture() []blog.Post {
	return []blog.Post{
		{Slug: "does-your-small-business-need-a-website", Title: "Does Your Small Business Need a Website?", Category: "web-design", CategoryLabel: "Web Design", Date: "2025-02-03", Featured: true},
		{Slug: "local-seo-basics", Title: "Local SEO Basics", Category: "seo", CategoryLabel: "SEO", Date: "2025-01-20"},
		{Slug: "email-marketing-on-a-budget", Title: "Email Marketing on a Budget", Category: "marketing", CategoryLabel: "Marketing", Date: "2025-01-11"},
		{Slug: "backups-that-actually-work", Title: "Backups That Actually Work", Category: "it-support", CategoryLabel: "IT Support", Date: "2024-12-18"},
		{Slug: "mobile-first-design", Title: "Mobile-First Design", Category: "web-design", CategoryLabel: "Web Design", Date: "2024-11-30"},
	}
}

func slugs(posts []blog.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Slug
	}
	return out
}

func TestListAllExcludesFeaturedInOrder(t *testing.T) {
	repo := blog.NewMemoryRepository(fixture())
	got, err := repo.ListByCategory(context.Background(), blog.AllCategories)
	require.NoError(t, err)
	require.Equal(t, []string{
		"local-seo-basics",
		"email-marketing-on-a-budget",
		"backups-that-actually-work",
		"mobile-first-design",
	}, slugs(got))

	empty, err := repo.ListByCategory(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, slugs(got), slugs(empty))
}

func TestListByCategory(t *testing.T) {
	repo := blog.NewMemoryRepository(fixture())
	ctx := context.Background()

	for _, c := range blog.CollectCategories(fixture()) {
		got, err := repo.ListByCategory(ctx, c.Key)
		require.NoError(t, err)
		for _, p := range got {
			require.Equal(t, c.Key, p.Category)
			require.False(t, p.Slug == "does-your-small-business-need-a-website", "featured post leaked into %s", c.Key)
		}
	}

	marketing, err := repo.ListByCategory(ctx, "marketing")
	require.NoError(t, err)
	require.Equal(t, []string{"email-marketing-on-a-budget"}, slugs(marketing))

	web, err := repo.ListByCategory(ctx, "web-design")
	require.NoError(t, err)
	require.Equal(t, []string{"mobile-first-design"}, slugs(web))

	none, err := repo.ListByCategory(ctx, "podcasts")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestCategoryMatchIsExact(t *testing.T) {
	repo := blog.NewMemoryRepository(fixture())
	got, err := repo.ListByCategory(context.Background(), "Marketing")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestFirstFeaturedWins(t *testing.T) {
	posts := fixture()
	posts[3].Featured = true

	featured := blog.FilterFeatured(posts)
	require.Len(t, featured, 2)
	require.Equal(t, 0, blog.FeaturedIndex(posts))

	grid := blog.FilterGrid(posts, blog.AllCategories)
	require.Contains(t, slugs(grid), "backups-that-actually-work")
	require.NotContains(t, slugs(grid), "does-your-small-business-need-a-website")
}

func TestNoFeaturedPost(t *testing.T) {
	posts := fixture()
	posts[0].Featured = false
	require.Equal(t, -1, blog.FeaturedIndex(posts))
	require.Empty(t, blog.FilterFeatured(posts))
	require.Len(t, blog.FilterGrid(posts, blog.AllCategories), len(posts))
}

func TestFindBySlug(t *testing.T) {
	repo := blog.NewMemoryRepository(fixture())
	ctx := context.Background()
	for _, want := range fixture() {
		got, err := repo.FindBySlug(ctx, want.Slug)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := repo.FindBySlug(ctx, "nonexistent-slug")
	require.True(t, errors.Is(err, blog.ErrNotFound))
}

func TestFindBySlugDuplicateReturnsFirst(t *testing.T) {
	posts := append(fixture(), blog.Post{Slug: "local-seo-basics", Title: "Shadow"})
	got, err := blog.FindBySlug(posts, "local-seo-basics")
	require.NoError(t, err)
	require.Equal(t, "Local SEO Basics", got.Title)
}

func TestRepositoryDoesNotAliasInput(t *testing.T) {
	posts := fixture()
	repo := blog.NewMemoryRepository(posts)
	posts[1].Title = "changed"

	got, err := repo.FindBySlug(context.Background(), "local-seo-basics")
	require.NoError(t, err)
	require.Equal(t, "Local SEO Basics", got.Title)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	list[0].Title = "changed again"
	again, _ := repo.List(context.Background())
	require.Equal(t, "Does Your Small Business Need a Website?", again[0].Title)
}

func TestCategories(t *testing.T) {
	got := blog.CollectCategories(fixture())
	require.Equal(t, []blog.Category{
		{Key: "web-design", Label: "Web Design"},
		{Key: "seo", Label: "SEO"},
		{Key: "marketing", Label: "Marketing"},
		{Key: "it-support", Label: "IT Support"},
	}, got)
}

func TestRelatedSizeAndExclusion(t *testing.T) {
	posts := fixture()
	for i := 0; i < 50; i++ {
		current := posts[i%len(posts)]
		got := blog.Related(posts, current, nil, blog.RelatedCount)
		require.Len(t, got, 3)
		seen := map[string]bool{}
		for _, p := range got {
			require.NotEqual(t, current.Slug, p.Slug)
			require.False(t, seen[p.Slug], "duplicate related post %s", p.Slug)
			seen[p.Slug] = true
		}
	}
}

func TestRelatedSmallPool(t *testing.T) {
	posts := fixture()[:3]
	got := blog.Related(posts, posts[0], nil, blog.RelatedCount)
	require.Len(t, got, 2)

	single := fixture()[:1]
	require.Empty(t, blog.Related(single, single[0], nil, blog.RelatedCount))
}

func TestRelatedSeededIsDeterministic(t *testing.T) {
	posts := fixture()
	a := blog.Related(posts, posts[0], rand.New(rand.NewPCG(7, 11)), blog.RelatedCount)
	b := blog.Related(posts, posts[0], rand.New(rand.NewPCG(7, 11)), blog.RelatedCount)
	require.Equal(t, slugs(a), slugs(b))
}

type identityShuffler struct{}

func (identityShuffler) Shuffle(int, func(i, j int)) {}

type reverseShuffler struct{}

func (reverseShuffler) Shuffle(n int, swap func(i, j int)) {
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}

func TestRelatedUsesInjectedShuffler(t *testing.T) {
	posts := fixture()
	got := blog.Related(posts, posts[1], identityShuffler{}, blog.RelatedCount)
	require.Equal(t, []string{
		"does-your-small-business-need-a-website",
		"email-marketing-on-a-budget",
		"backups-that-actually-work",
	}, slugs(got))

	got = blog.Related(posts, posts[1], reverseShuffler{}, blog.RelatedCount)
	require.Equal(t, []string{
		"mobile-first-design",
		"backups-that-actually-work",
		"email-marketing-on-a-budget",
	}, slugs(got))
}

func TestFormatDateAcrossZones(t *testing.T) {
	orig := time.Local
	t.Cleanup(func() { time.Local = orig })

	zones := []*time.Location{
		time.UTC,
		time.FixedZone("UTC-11", -11*3600),
		time.FixedZone("UTC+14", 14*3600),
		time.FixedZone("UTC-03:30", -(3*3600 + 1800)),
	}
	for _, z := range zones {
		time.Local = z
		require.Equal(t, "February 3, 2025", blog.FormatDate("2025-02-03"), "zone %s", z)
		require.Equal(t, "December 31, 2024", blog.FormatDate("2024-12-31"), "zone %s", z)
	}
}

func TestFormatDateSkippedLocalDay(t *testing.T) {
	orig := time.Local
	t.Cleanup(func() { time.Local = orig })

	apia, err := time.LoadLocation("Pacific/Apia")
	require.NoError(t, err)
	time.Local = apia

	require.Equal(t, "December 30, 2011", blog.FormatDate("2011-12-30"))
	require.Equal(t, "December 31, 2011", blog.FormatDate("2011-12-31"))

	d, err := blog.ParseDate("2011-12-30")
	require.NoError(t, err)
	require.Equal(t, 12, d.Hour())
	require.Equal(t, 30, d.Day())
}

func TestFormatDateInvalid(t *testing.T) {
	require.Equal(t, "soon", blog.FormatDate("soon"))
	require.Equal(t, "", blog.FormatDate(""))
}

func TestPostLink(t *testing.T) {
	p := blog.Post{Slug: "local-seo-basics"}
	require.Equal(t, "/blog/post/?slug=local-seo-basics", p.Link())
}
