package handler

import (
	"net/http"

	"github.com/collegescope/internal/db"
	"github.com/collegescope/internal/model"
	"github.com/collegescope/internal/upstream"
	"github.com/gin-gonic/gin"
)

const (
	featuredColleges = 8
	homeNewsItems    = 6
	popularColleges  = 4
)

// ShowHome renders the landing page: featured colleges, latest news, and
// the locally computed popular rail.
func (a *API) ShowHome(c *gin.Context) {
	ctx := c.Request.Context()

	colleges, err := a.upstream.Colleges(ctx, 1, featuredColleges, upstream.CollegeFilter{})
	if err != nil {
		c.Error(err)
		a.renderHTML(c, http.StatusInternalServerError, "home.html", gin.H{
			"title": "Find your college",
			"error": "Could not load colleges right now. Please try again.",
		})
		return
	}

	// Secondary rails degrade to empty rather than failing the page.
	var news []newsCard
	if page, newsErr := a.upstream.News(ctx, 1, homeNewsItems); newsErr == nil {
		news = newsCardViews(page.Items)
	} else {
		c.Error(newsErr)
	}

	a.renderHTML(c, http.StatusOK, "home.html", gin.H{
		"title":    "Find your college",
		"colleges": cardViews(colleges.Items),
		"news":     news,
		"popular":  a.popularColleges(c),
	})
}

// popularColleges hydrates the most viewed colleges from analytics. Stale
// ids (deleted upstream) are dropped silently.
func (a *API) popularColleges(c *gin.Context) []collegeCard {
	if a.analytics == nil {
		return nil
	}

	top, err := a.analytics.TopEntities(db.KindCollege, popularColleges)
	if err != nil {
		c.Error(err)
		return nil
	}

	cards := make([]collegeCard, 0, len(top))
	for _, stat := range top {
		college, fetchErr := a.upstream.CollegeByID(c.Request.Context(), stat.EntityID)
		if fetchErr != nil {
			continue
		}
		cards = append(cards, cardViews([]model.College{*college})...)
	}
	return cards
}
