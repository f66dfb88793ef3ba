package handler

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/collegescope/internal/db"
	"github.com/collegescope/internal/model"
	"github.com/collegescope/internal/seo"
	"github.com/collegescope/internal/slug"
	"github.com/collegescope/internal/upstream"
	"github.com/gin-gonic/gin"
)

const examsPerPage = 12

var examSections = map[string]func(*model.Exam) bool{
	"syllabus": func(e *model.Exam) bool { return e.HasSyllabus },
	"pattern":  func(e *model.Exam) bool { return e.HasPattern },
}

func examFilterFromQuery(c *gin.Context) upstream.ExamFilter {
	return upstream.ExamFilter{
		Search: strings.TrimSpace(c.Query("search")),
		Level:  strings.TrimSpace(c.Query("level")),
		Stream: strings.TrimSpace(c.Query("stream")),
	}
}

func examQueryParams(filter upstream.ExamFilter) string {
	q := filter.Query()
	if q == "" {
		return ""
	}
	return "&" + q
}

type examCard struct {
	Exam model.Exam
	Href string
}

func examCardViews(exams []model.Exam) []examCard {
	cards := make([]examCard, 0, len(exams))
	for _, exam := range exams {
		cards = append(cards, examCard{
			Exam: exam,
			Href: "/exams/" + slug.Segment(&exam),
		})
	}
	return cards
}

// ShowExamList renders the filterable exam catalog.
func (a *API) ShowExamList(c *gin.Context) {
	pageNum := parsePositiveInt(c.DefaultQuery("page", "1"), 1)
	filter := examFilterFromQuery(c)

	page, err := a.upstream.Exams(c.Request.Context(), pageNum, examsPerPage, filter)
	if err != nil {
		c.Error(err)
		a.renderHTML(c, http.StatusInternalServerError, "exam_list.html", gin.H{
			"title": "Exams",
			"error": "Could not load exams right now. Please try again.",
		})
		return
	}

	hasMore := pageNum*examsPerPage < page.TotalCount
	if page.TotalCount == 0 {
		hasMore = len(page.Items) == examsPerPage
	}

	a.renderHTML(c, http.StatusOK, "exam_list.html", gin.H{
		"title":       "Entrance Exams",
		"exams":       examCardViews(page.Items),
		"filter":      filter,
		"page":        pageNum,
		"hasMore":     hasMore,
		"nextPage":    pageNum + 1,
		"queryParams": examQueryParams(filter),
	})
}

// LoadMoreExams returns exam cards for infinite scroll via HTMX.
func (a *API) LoadMoreExams(c *gin.Context) {
	pageNum := parsePositiveInt(c.DefaultQuery("page", "1"), 1)
	if pageNum < 2 {
		c.String(http.StatusBadRequest, "")
		return
	}

	filter := examFilterFromQuery(c)
	page, err := a.upstream.Exams(c.Request.Context(), pageNum, examsPerPage, filter)
	if err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, "")
		return
	}

	hasMore := pageNum*examsPerPage < page.TotalCount
	if page.TotalCount == 0 {
		hasMore = len(page.Items) == examsPerPage
	}

	a.renderHTML(c, http.StatusOK, "exam_cards.html", gin.H{
		"exams":       examCardViews(page.Items),
		"hasMore":     hasMore,
		"nextPage":    pageNum + 1,
		"queryParams": examQueryParams(filter),
	})
}

// ShowExamDetail renders the main exam page.
func (a *API) ShowExamDetail(c *gin.Context) {
	a.renderExamPage(c, "")
}

// ShowExamSection renders a capability-gated exam sub-page.
func (a *API) ShowExamSection(c *gin.Context) {
	a.renderExamPage(c, c.Param("section"))
}

func (a *API) renderExamPage(c *gin.Context, section string) {
	segment := c.Param("segment")

	res, err := slug.Resolve(segment, func(id uint) (*model.Exam, error) {
		return a.upstream.ExamByID(c.Request.Context(), id)
	})
	if err != nil {
		c.Error(err)
		a.renderNotFound(c)
		return
	}
	if res.Outcome == slug.Redirect {
		c.Redirect(http.StatusMovedPermanently, redirectTarget("exams", res.Canonical, section, c.Request.URL.RawQuery))
		return
	}

	exam := res.Entity

	var sectionBody template.HTML
	if section != "" {
		allowed, known := examSections[section]
		if !known || !allowed(exam) {
			a.renderNotFound(c)
			return
		}
		if section == "syllabus" {
			sectionBody = sanitizeHTML(exam.SyllabusHTML)
		} else {
			sectionBody = sanitizeHTML(exam.PatternHTML)
		}
	}

	pageViews, uniqueVisitors := a.recordView(c, db.KindExam, exam.ID)

	meta := seo.ExamMeta(exam, a.cfg.SiteBaseURL)
	a.renderHTML(c, http.StatusOK, "exam_detail.html", gin.H{
		"title":          meta.Title,
		"meta":           meta,
		"exam":           exam,
		"description":    sanitizeHTML(exam.Description),
		"section":        section,
		"sectionBody":    sectionBody,
		"canonicalHref":  "/exams/" + res.Canonical,
		"pageViews":      pageViews,
		"uniqueVisitors": uniqueVisitors,
	})
}
