package sitepress

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/sitepress/blog"
	"github.com/eringen/sitepress/page"
	"github.com/eringen/sitepress/views"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Category    string `xml:"category,omitempty"`
	PubDate     string `xml:"pubDate,omitempty"`
	GUID        string `xml:"guid"`
}

func (a *App) buildFeed(posts []blog.Post) rssXML {
	site := a.Config.Site
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		pubDate := ""
		if t, err := blog.ParseDate(p.Date); err == nil {
			pubDate = t.Format(time.RFC1123Z)
		}
		postURL := page.CanonicalURL(site, p)
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        postURL,
			Description: p.Excerpt,
			Category:    p.CategoryLabel,
			PubDate:     pubDate,
			GUID:        postURL,
		})
	}
	return rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       site.Name,
			Link:        views.BuildURL(site.URL, "blog"),
			Description: site.Description,
			Items:       items,
		},
	}
}

func (a *App) renderRSS(c echo.Context, posts []blog.Post) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}
	return xml.NewEncoder(c.Response()).Encode(a.buildFeed(posts))
}
