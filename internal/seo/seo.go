// Package seo builds page metadata and schema.org JSON-LD payloads for the
// server-rendered templates.
package seo

import (
	"encoding/json"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/collegescope/internal/model"
	"github.com/collegescope/internal/slug"
)

const descriptionLimit = 160

// Meta is the per-page head metadata handed to templates.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	OGImage     string
}

// CanonicalURL joins the site base with path segments, keeping exactly one
// slash between parts.
func CanonicalURL(base string, parts ...string) string {
	url := strings.TrimRight(base, "/")
	for _, part := range parts {
		trimmed := strings.Trim(part, "/")
		if trimmed == "" {
			continue
		}
		url += "/" + trimmed
	}
	return url
}

// Describe trims free text into a description-sized single line.
func Describe(text string) string {
	plain := strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(plain) <= descriptionLimit {
		return plain
	}
	runes := []rune(plain)
	return strings.TrimSpace(string(runes[:descriptionLimit-1])) + "…"
}

// CollegeMeta builds head metadata for a college detail page.
func CollegeMeta(c *model.College, siteBaseURL string) Meta {
	title := c.Name
	if c.City != "" {
		title += ", " + c.City
	}
	description := c.Summary
	if strings.TrimSpace(description) == "" {
		description = c.Name + ": courses, cutoffs, placements and admission details."
	}
	return Meta{
		Title:       title,
		Description: Describe(description),
		Canonical:   CanonicalURL(siteBaseURL, "colleges", slug.Segment(c)),
		OGImage:     c.BannerURL,
	}
}

// ExamMeta builds head metadata for an exam detail page.
func ExamMeta(e *model.Exam, siteBaseURL string) Meta {
	description := e.Summary
	if strings.TrimSpace(description) == "" {
		description = e.Name + ": dates, eligibility, syllabus and pattern."
	}
	return Meta{
		Title:       e.Name,
		Description: Describe(description),
		Canonical:   CanonicalURL(siteBaseURL, "exams", slug.Segment(e)),
	}
}

// ArticleMeta builds head metadata for an article page.
func ArticleMeta(a *model.Article, siteBaseURL string) Meta {
	return Meta{
		Title:       a.Title,
		Description: Describe(a.Summary),
		Canonical:   CanonicalURL(siteBaseURL, "articles", slug.Segment(a)),
		OGImage:     a.CoverURL,
	}
}

// NewsMeta builds head metadata for a news page.
func NewsMeta(n *model.NewsItem, siteBaseURL string) Meta {
	return Meta{
		Title:       n.Title,
		Description: Describe(n.Summary),
		Canonical:   CanonicalURL(siteBaseURL, "news", slug.Segment(n)),
		OGImage:     n.CoverURL,
	}
}

type postalAddress struct {
	Type            string `json:"@type"`
	AddressLocality string `json:"addressLocality,omitempty"`
	AddressRegion   string `json:"addressRegion,omitempty"`
	AddressCountry  string `json:"addressCountry"`
}

type collegeLD struct {
	Context string         `json:"@context"`
	Type    string         `json:"@type"`
	Name    string         `json:"name"`
	URL     string         `json:"url"`
	Logo    string         `json:"logo,omitempty"`
	Address *postalAddress `json:"address,omitempty"`
}

type articleLD struct {
	Context       string `json:"@context"`
	Type          string `json:"@type"`
	Headline      string `json:"headline"`
	Author        string `json:"author,omitempty"`
	Image         string `json:"image,omitempty"`
	DatePublished string `json:"datePublished,omitempty"`
	DateModified  string `json:"dateModified,omitempty"`
	URL           string `json:"url"`
}

// marshalLD returns the payload as template.JS so the ld+json script body
// is emitted verbatim instead of being re-escaped as a JS string.
func marshalLD(v any) template.JS {
	body, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return template.JS(body)
}

// CollegeJSONLD renders schema.org CollegeOrUniversity structured data.
func CollegeJSONLD(c *model.College, siteBaseURL string) template.JS {
	ld := collegeLD{
		Context: "https://schema.org",
		Type:    "CollegeOrUniversity",
		Name:    c.Name,
		URL:     CanonicalURL(siteBaseURL, "colleges", slug.Segment(c)),
		Logo:    c.LogoURL,
	}
	if c.City != "" || c.State != "" {
		ld.Address = &postalAddress{
			Type:            "PostalAddress",
			AddressLocality: c.City,
			AddressRegion:   c.State,
			AddressCountry:  "IN",
		}
	}
	return marshalLD(ld)
}

// ArticleJSONLD renders schema.org Article structured data.
func ArticleJSONLD(a *model.Article, siteBaseURL string) template.JS {
	return marshalLD(articleLD{
		Context:       "https://schema.org",
		Type:          "Article",
		Headline:      a.Title,
		Author:        a.Author,
		Image:         a.CoverURL,
		DatePublished: a.PublishedAt,
		DateModified:  a.UpdatedAt,
		URL:           CanonicalURL(siteBaseURL, "articles", slug.Segment(a)),
	})
}

// NewsJSONLD renders schema.org NewsArticle structured data.
func NewsJSONLD(n *model.NewsItem, siteBaseURL string) template.JS {
	return marshalLD(articleLD{
		Context:       "https://schema.org",
		Type:          "NewsArticle",
		Headline:      n.Title,
		Image:         n.CoverURL,
		DatePublished: n.PublishedAt,
		URL:           CanonicalURL(siteBaseURL, "news", slug.Segment(n)),
	})
}

type breadcrumbItemLD struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item"`
}

type breadcrumbLD struct {
	Context string             `json:"@context"`
	Type    string             `json:"@type"`
	Items   []breadcrumbItemLD `json:"itemListElement"`
}

// Breadcrumb is one crumb of a breadcrumb trail.
type Breadcrumb struct {
	Name string
	URL  string
}

// BreadcrumbJSONLD renders schema.org BreadcrumbList structured data.
func BreadcrumbJSONLD(crumbs []Breadcrumb) template.JS {
	ld := breadcrumbLD{Context: "https://schema.org", Type: "BreadcrumbList"}
	for i, crumb := range crumbs {
		ld.Items = append(ld.Items, breadcrumbItemLD{
			Type:     "ListItem",
			Position: i + 1,
			Name:     crumb.Name,
			Item:     crumb.URL,
		})
	}
	return marshalLD(ld)
}
