// Package sitepress serves an agency blog: a listing with a featured post and
// category filters, post detail pages with related posts and SEO metadata, plus
// a sitemap and an RSS feed. Content is loaded once at startup and never changes.
package sitepress

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/sitepress/blog"
	"github.com/eringen/sitepress/content"
	"github.com/eringen/sitepress/media"
	"github.com/eringen/sitepress/page"
)

// App is the central sitepress application. It wires together the content,
// repository, renderer, handlers and middleware.
type App struct {
	Config   Config
	Echo     *echo.Echo
	Log      *zap.Logger
	Repo     blog.Repository
	Renderer *page.Renderer

	store        *Store
	limiter      *RequestLimiter
	posts        []blog.Post
	shuffler     blog.Shuffler
	customRoutes []func(*App)
}

// New loads the content, builds the configured repository and registers the
// middleware and routes. The server is not started.
func New(cfg Config, log *zap.Logger, opts ...Option) (*App, error) {
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	a := &App{
		Config: cfg,
		Echo:   e,
		Log:    log,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.posts == nil {
		posts, err := content.Load(cfg.ContentPath, log)
		if err != nil {
			return nil, fmt.Errorf("sitepress: load content: %w", err)
		}
		a.posts = posts
	}

	repo, err := a.openRepository(context.Background())
	if err != nil {
		return nil, err
	}
	a.Repo = repo

	sizer := media.NewSizer(cfg.StaticDir, "/public/")
	a.Renderer = &page.Renderer{
		Repo:   a.Repo,
		Site:   cfg.Site,
		Rand:   a.shuffler,
		Images: sizer.Size,
	}

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return a, nil
}

func (a *App) openRepository(ctx context.Context) (blog.Repository, error) {
	switch a.Config.Store {
	case StoreSQLite:
		dsn := a.Config.DSN
		if dsn == "" {
			dsn = memoryDSN()
		}
		store, err := NewStore(dsn)
		if err != nil {
			return nil, fmt.Errorf("sitepress: init store: %w", err)
		}
		if err := store.Seed(ctx, a.posts); err != nil {
			store.Close()
			return nil, fmt.Errorf("sitepress: seed store: %w", err)
		}
		a.store = store
		a.Log.Info("sqlite store ready", zap.Int("posts", len(a.posts)), zap.Duration("cache_ttl", a.Config.CacheTTL))
		if a.Config.CacheTTL < 0 {
			return store, nil
		}
		return NewPostCache(store, a.Config.CacheTTL), nil
	default:
		return blog.NewMemoryRepository(a.posts), nil
	}
}

// memoryDSN names a fresh shared-cache in-memory database. The name is unique per
// call so two Apps in one process never seed over each other.
func memoryDSN() string {
	return "file:sitepress-" + uuid.NewString() + "?mode=memory&cache=shared"
}

// Start serves HTTP until ctx is cancelled, then shuts down gracefully within
// Config.ShutdownTTL.
func (a *App) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.Log.Info("listening", zap.String("addr", a.Config.Addr), zap.String("url", a.Config.Site.URL))
		if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownTTL)
	defer cancel()
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("sitepress: shutdown: %w", err)
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.Config.StaticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/healthz", a.handleHealth)

	e.GET("/", handleHomeRedirect)
	e.GET(blog.ListingPath, a.handleBlog)
	e.GET(blog.PostPath, a.handlePost)
	e.GET("/blog/:slug/", handleSlugRedirect)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.limiter != nil {
		a.limiter.Close()
	}
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}
