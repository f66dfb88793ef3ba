package handler

import (
	"net/http"

	"github.com/collegescope/internal/db"
	"github.com/collegescope/internal/model"
	"github.com/collegescope/internal/seo"
	"github.com/collegescope/internal/slug"
	"github.com/gin-gonic/gin"
)

const newsPerPage = 10

type newsCard struct {
	Item model.NewsItem
	Href string
}

func newsCardViews(items []model.NewsItem) []newsCard {
	cards := make([]newsCard, 0, len(items))
	for _, item := range items {
		cards = append(cards, newsCard{
			Item: item,
			Href: "/news/" + slug.Segment(&item),
		})
	}
	return cards
}

// ShowNewsList renders the news index, newest first.
func (a *API) ShowNewsList(c *gin.Context) {
	pageNum := parsePositiveInt(c.DefaultQuery("page", "1"), 1)

	page, err := a.upstream.News(c.Request.Context(), pageNum, newsPerPage)
	if err != nil {
		c.Error(err)
		a.renderHTML(c, http.StatusInternalServerError, "news_list.html", gin.H{
			"title": "News",
			"error": "Could not load news right now. Please try again.",
		})
		return
	}

	hasMore := pageNum*newsPerPage < page.TotalCount
	if page.TotalCount == 0 {
		hasMore = len(page.Items) == newsPerPage
	}

	a.renderHTML(c, http.StatusOK, "news_list.html", gin.H{
		"title":    "Latest News",
		"news":     newsCardViews(page.Items),
		"page":     pageNum,
		"hasMore":  hasMore,
		"nextPage": pageNum + 1,
	})
}

// LoadMoreNews returns news cards for infinite scroll via HTMX.
func (a *API) LoadMoreNews(c *gin.Context) {
	pageNum := parsePositiveInt(c.DefaultQuery("page", "1"), 1)
	if pageNum < 2 {
		c.String(http.StatusBadRequest, "")
		return
	}

	page, err := a.upstream.News(c.Request.Context(), pageNum, newsPerPage)
	if err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, "")
		return
	}

	hasMore := pageNum*newsPerPage < page.TotalCount
	if page.TotalCount == 0 {
		hasMore = len(page.Items) == newsPerPage
	}

	a.renderHTML(c, http.StatusOK, "news_cards.html", gin.H{
		"news":     newsCardViews(page.Items),
		"hasMore":  hasMore,
		"nextPage": pageNum + 1,
	})
}

// ShowNewsDetail renders one news item.
func (a *API) ShowNewsDetail(c *gin.Context) {
	segment := c.Param("segment")

	res, err := slug.Resolve(segment, func(id uint) (*model.NewsItem, error) {
		return a.upstream.NewsByID(c.Request.Context(), id)
	})
	if err != nil {
		c.Error(err)
		a.renderNotFound(c)
		return
	}
	if res.Outcome == slug.Redirect {
		c.Redirect(http.StatusMovedPermanently, redirectTarget("news", res.Canonical, "", c.Request.URL.RawQuery))
		return
	}

	item := res.Entity

	content, err := renderMarkdown(item.Content)
	if err != nil {
		c.Error(err)
		content = sanitizeHTML(item.Content)
	}

	pageViews, uniqueVisitors := a.recordView(c, db.KindNews, item.ID)

	meta := seo.NewsMeta(item, a.cfg.SiteBaseURL)
	a.renderHTML(c, http.StatusOK, "news_detail.html", gin.H{
		"title":          meta.Title,
		"meta":           meta,
		"jsonld":         seo.NewsJSONLD(item, a.cfg.SiteBaseURL),
		"news":           item,
		"content":        content,
		"pageViews":      pageViews,
		"uniqueVisitors": uniqueVisitors,
	})
}
