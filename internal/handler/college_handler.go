package handler

import (
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/collegescope/internal/db"
	"github.com/collegescope/internal/listing"
	"github.com/collegescope/internal/model"
	"github.com/collegescope/internal/seo"
	"github.com/collegescope/internal/slug"
	"github.com/collegescope/internal/upstream"
	"github.com/gin-gonic/gin"
)

const collegesPerPage = 12

// collegeSections maps a detail sub-path to the capability flag that must
// be set for the sub-page to exist.
var collegeSections = map[string]func(*model.College) bool{
	"courses":    func(c *model.College) bool { return c.Flags.HasCourses },
	"cutoffs":    func(c *model.College) bool { return c.Flags.HasCutoffs },
	"highlights": func(c *model.College) bool { return c.Flags.HasHighlights },
	"placements": func(c *model.College) bool { return c.Flags.HasPlacements },
}

func collegeFilterFromQuery(c *gin.Context) upstream.CollegeFilter {
	return upstream.CollegeFilter{
		Search:    strings.TrimSpace(c.Query("search")),
		State:     strings.TrimSpace(c.Query("state")),
		Ownership: strings.TrimSpace(c.Query("ownership")),
		Stream:    strings.TrimSpace(c.Query("stream")),
	}
}

func collegeQueryParams(filter upstream.CollegeFilter) string {
	q := filter.Query()
	if q == "" {
		return ""
	}
	return "&" + q
}

func hasMorePages(page listing.Page[model.College], pageNum, perPage int) bool {
	if page.TotalCount > 0 {
		return pageNum*perPage < page.TotalCount
	}
	return len(page.Items) == perPage
}

// ShowCollegeList renders the filterable college catalog.
func (a *API) ShowCollegeList(c *gin.Context) {
	pageNum := parsePositiveInt(c.DefaultQuery("page", "1"), 1)
	filter := collegeFilterFromQuery(c)

	page, err := a.upstream.Colleges(c.Request.Context(), pageNum, collegesPerPage, filter)
	if err != nil {
		c.Error(err)
		a.renderHTML(c, http.StatusInternalServerError, "college_list.html", gin.H{
			"title": "Colleges",
			"error": "Could not load colleges right now. Please try again.",
		})
		return
	}

	a.renderHTML(c, http.StatusOK, "college_list.html", gin.H{
		"title":       "Colleges",
		"colleges":    cardViews(page.Items),
		"filter":      filter,
		"page":        pageNum,
		"hasMore":     hasMorePages(page, pageNum, collegesPerPage),
		"nextPage":    pageNum + 1,
		"queryParams": collegeQueryParams(filter),
		"totalCount":  page.TotalCount,
	})
}

// LoadMoreColleges returns college cards for infinite scroll via HTMX.
func (a *API) LoadMoreColleges(c *gin.Context) {
	pageNum := parsePositiveInt(c.DefaultQuery("page", "1"), 1)
	if pageNum < 2 {
		c.String(http.StatusBadRequest, "")
		return
	}

	filter := collegeFilterFromQuery(c)
	page, err := a.upstream.Colleges(c.Request.Context(), pageNum, collegesPerPage, filter)
	if err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, "")
		return
	}

	a.renderHTML(c, http.StatusOK, "college_cards.html", gin.H{
		"colleges":    cardViews(page.Items),
		"hasMore":     hasMorePages(page, pageNum, collegesPerPage),
		"nextPage":    pageNum + 1,
		"queryParams": collegeQueryParams(filter),
	})
}

// collegeCard is the view model for one card in a listing grid.
type collegeCard struct {
	College model.College
	Href    string
}

func cardViews(colleges []model.College) []collegeCard {
	cards := make([]collegeCard, 0, len(colleges))
	for _, college := range colleges {
		cards = append(cards, collegeCard{
			College: college,
			Href:    "/colleges/" + slug.Segment(&college),
		})
	}
	return cards
}

// ShowCollegeDetail renders the main college page.
func (a *API) ShowCollegeDetail(c *gin.Context) {
	a.renderCollegePage(c, "")
}

// ShowCollegeSection renders one capability-gated sub-page.
func (a *API) ShowCollegeSection(c *gin.Context) {
	a.renderCollegePage(c, c.Param("section"))
}

func (a *API) renderCollegePage(c *gin.Context, section string) {
	segment := c.Param("segment")

	res, err := slug.Resolve(segment, func(id uint) (*model.College, error) {
		return a.upstream.CollegeByID(c.Request.Context(), id)
	})
	if err != nil {
		// Malformed, missing, and upstream-down all collapse to 404 for
		// the user; the gin error log keeps the distinction.
		c.Error(err)
		a.renderNotFound(c)
		return
	}
	if res.Outcome == slug.Redirect {
		c.Redirect(http.StatusMovedPermanently, redirectTarget("colleges", res.Canonical, section, c.Request.URL.RawQuery))
		return
	}

	college := res.Entity

	var sectionBody template.HTML
	if section != "" {
		allowed, known := collegeSections[section]
		if !known || !allowed(college) {
			a.renderNotFound(c)
			return
		}
		sectionBody = a.collegeSectionBody(college, section)
	}

	pageViews, uniqueVisitors := a.recordView(c, db.KindCollege, college.ID)

	meta := seo.CollegeMeta(college, a.cfg.SiteBaseURL)
	a.renderHTML(c, http.StatusOK, "college_detail.html", gin.H{
		"title":          meta.Title,
		"meta":           meta,
		"jsonld":         seo.CollegeJSONLD(college, a.cfg.SiteBaseURL),
		"breadcrumbs":    a.collegeBreadcrumbs(college),
		"college":        college,
		"description":    sanitizeHTML(college.Description),
		"section":        section,
		"sectionBody":    sectionBody,
		"canonicalHref":  "/colleges/" + res.Canonical,
		"pageViews":      pageViews,
		"uniqueVisitors": uniqueVisitors,
	})
}

func (a *API) collegeSectionBody(college *model.College, section string) template.HTML {
	switch section {
	case "cutoffs":
		return sanitizeHTML(college.CutoffsHTML)
	case "highlights":
		return sanitizeHTML(college.Highlights)
	case "placements":
		return sanitizeHTML(college.Placements)
	default:
		// The courses section renders from structured data, not rich text.
		return ""
	}
}

func (a *API) collegeBreadcrumbs(college *model.College) template.JS {
	return seo.BreadcrumbJSONLD([]seo.Breadcrumb{
		{Name: "Home", URL: seo.CanonicalURL(a.cfg.SiteBaseURL)},
		{Name: "Colleges", URL: seo.CanonicalURL(a.cfg.SiteBaseURL, "colleges")},
		{Name: college.Name, URL: seo.CanonicalURL(a.cfg.SiteBaseURL, "colleges", slug.Segment(college))},
	})
}

// recordView counts a detail-page view. Analytics failures are logged and
// otherwise ignored.
func (a *API) recordView(c *gin.Context, kind db.EntityKind, entityID uint) (uint64, uint64) {
	if a.analytics == nil {
		return 0, 0
	}

	visitorID := a.ensureVisitorID(c)
	stats, err := a.analytics.RecordView(kind, entityID, visitorID, time.Now().UTC())
	if err != nil {
		c.Error(err)
		return 0, 0
	}
	return stats.PageViews, stats.UniqueVisitors
}
