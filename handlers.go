package sitepress

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/sitepress/blog"
	"github.com/eringen/sitepress/page"
	"github.com/eringen/sitepress/views"
)

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

func handleHomeRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, blog.ListingPath)
}

// handleSlugRedirect maps /blog/:slug/ onto the canonical query address.
func handleSlugRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, blog.Post{Slug: c.Param("slug")}.Link())
}

func (a *App) handleBlog(c echo.Context) error {
	ctx := c.Request().Context()
	category := c.QueryParam("category")

	if isHTMX(c) && c.QueryParam("partial") == "grid" {
		b := &page.Bindings{Filters: page.NewRegion(), Grid: page.NewRegion()}
		if err := a.Renderer.RenderListing(ctx, b, category); err != nil {
			return err
		}
		return Render(c, page.ListingFragment(b))
	}

	head := page.NewHead(a.Config.Site, views.BuildURL(a.Config.Site.URL, "blog"))
	b := page.ListingBindings(head)
	if err := a.Renderer.RenderIndex(ctx, b, category); err != nil {
		return err
	}
	return Render(c, page.ListingDocument(a.Config.Site, b))
}

func (a *App) handlePost(c echo.Context) error {
	slug := c.QueryParam("slug")
	b := page.PostBindings(page.NewHead(a.Config.Site, ""))
	_, err := a.Renderer.RenderPost(c.Request().Context(), b, slug)
	if errors.Is(err, blog.ErrNotFound) {
		a.Log.Debug("post not found", zap.String("slug", slug))
		return RenderStatus(c, http.StatusNotFound, page.PostDocument(a.Config.Site, b))
	}
	if err != nil {
		return err
	}
	return Render(c, page.PostDocument(a.Config.Site, b))
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Repo.List(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Repo.List(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func (a *App) handleRobots(c echo.Context) error {
	var b strings.Builder
	b.WriteString("User-agent: *\nAllow: /\n\n")
	b.WriteString("Sitemap: " + a.Config.Site.URL + "/sitemap.xml\n")
	return c.String(http.StatusOK, b.String())
}

type healthResponse struct {
	Status string `json:"status"`
	Posts  int    `json:"posts"`
}

func (a *App) handleHealth(c echo.Context) error {
	posts, err := a.Repo.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, healthResponse{Status: "ok", Posts: len(posts)})
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.ErrorPage(a.Config.Site, http.StatusNotFound, "Page not found"))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Log.Error("server error",
			zap.Error(err),
			zap.String("method", c.Request().Method),
			zap.String("uri", c.Request().RequestURI),
			zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)))
		_ = RenderStatus(c, code, views.ErrorPage(a.Config.Site, code, "Something went wrong"))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
