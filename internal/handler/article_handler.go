package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/collegescope/internal/db"
	"github.com/collegescope/internal/model"
	"github.com/collegescope/internal/seo"
	"github.com/collegescope/internal/slug"
	"github.com/gin-gonic/gin"
)

const articlesPerPage = 10

type articleCard struct {
	Article model.Article
	Href    string
}

func articleCardViews(articles []model.Article) []articleCard {
	cards := make([]articleCard, 0, len(articles))
	for _, article := range articles {
		cards = append(cards, articleCard{
			Article: article,
			Href:    "/articles/" + slug.Segment(&article),
		})
	}
	return cards
}

func categoryQueryParams(category string) string {
	if strings.TrimSpace(category) == "" {
		return ""
	}
	return "&" + url.Values{"category": {category}}.Encode()
}

// ShowArticleList renders the editorial article index.
func (a *API) ShowArticleList(c *gin.Context) {
	pageNum := parsePositiveInt(c.DefaultQuery("page", "1"), 1)
	category := strings.TrimSpace(c.Query("category"))

	page, err := a.upstream.Articles(c.Request.Context(), pageNum, articlesPerPage, category)
	if err != nil {
		c.Error(err)
		a.renderHTML(c, http.StatusInternalServerError, "article_list.html", gin.H{
			"title": "Articles",
			"error": "Could not load articles right now. Please try again.",
		})
		return
	}

	hasMore := pageNum*articlesPerPage < page.TotalCount
	if page.TotalCount == 0 {
		hasMore = len(page.Items) == articlesPerPage
	}

	a.renderHTML(c, http.StatusOK, "article_list.html", gin.H{
		"title":       "Articles",
		"articles":    articleCardViews(page.Items),
		"category":    category,
		"page":        pageNum,
		"hasMore":     hasMore,
		"nextPage":    pageNum + 1,
		"queryParams": categoryQueryParams(category),
	})
}

// LoadMoreArticles returns article cards for infinite scroll via HTMX.
func (a *API) LoadMoreArticles(c *gin.Context) {
	pageNum := parsePositiveInt(c.DefaultQuery("page", "1"), 1)
	if pageNum < 2 {
		c.String(http.StatusBadRequest, "")
		return
	}

	category := strings.TrimSpace(c.Query("category"))
	page, err := a.upstream.Articles(c.Request.Context(), pageNum, articlesPerPage, category)
	if err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, "")
		return
	}

	hasMore := pageNum*articlesPerPage < page.TotalCount
	if page.TotalCount == 0 {
		hasMore = len(page.Items) == articlesPerPage
	}

	a.renderHTML(c, http.StatusOK, "article_cards.html", gin.H{
		"articles":    articleCardViews(page.Items),
		"hasMore":     hasMore,
		"nextPage":    pageNum + 1,
		"queryParams": categoryQueryParams(category),
	})
}

// ShowArticleDetail renders one article with its markdown body.
func (a *API) ShowArticleDetail(c *gin.Context) {
	segment := c.Param("segment")

	res, err := slug.Resolve(segment, func(id uint) (*model.Article, error) {
		return a.upstream.ArticleByID(c.Request.Context(), id)
	})
	if err != nil {
		c.Error(err)
		a.renderNotFound(c)
		return
	}
	if res.Outcome == slug.Redirect {
		c.Redirect(http.StatusMovedPermanently, redirectTarget("articles", res.Canonical, "", c.Request.URL.RawQuery))
		return
	}

	article := res.Entity

	content, err := renderMarkdown(article.Content)
	if err != nil {
		c.Error(err)
		a.renderHTML(c, http.StatusInternalServerError, "article_detail.html", gin.H{
			"title": article.Title,
			"error": "Could not render this article.",
		})
		return
	}

	pageViews, uniqueVisitors := a.recordView(c, db.KindArticle, article.ID)

	meta := seo.ArticleMeta(article, a.cfg.SiteBaseURL)
	a.renderHTML(c, http.StatusOK, "article_detail.html", gin.H{
		"title":          meta.Title,
		"meta":           meta,
		"jsonld":         seo.ArticleJSONLD(article, a.cfg.SiteBaseURL),
		"article":        article,
		"content":        content,
		"pageViews":      pageViews,
		"uniqueVisitors": uniqueVisitors,
	})
}
