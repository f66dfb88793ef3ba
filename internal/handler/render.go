package handler

import (
	"bytes"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(goldmarkhtml.WithHardWraps(), goldmarkhtml.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// renderMarkdown converts upstream markdown to sanitized HTML.
func renderMarkdown(content string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes())), nil
}

// sanitizeHTML cleans upstream rich text before it reaches a template.
// Every description/cutoff/highlight blob goes through here; nothing from
// the upstream API is trusted as-is.
func sanitizeHTML(content string) template.HTML {
	return template.HTML(sanitizer.Sanitize(content))
}

func (a *API) renderHTML(c *gin.Context, status int, name string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	if _, exists := payload["siteName"]; !exists {
		payload["siteName"] = "CollegeScope"
	}
	if _, exists := payload["siteBaseURL"]; !exists {
		payload["siteBaseURL"] = a.cfg.SiteBaseURL
	}
	if _, exists := payload["year"]; !exists {
		payload["year"] = time.Now().Year()
	}

	c.HTML(status, name, payload)
}

// renderNotFound serves the generic 404 page. All resolution failures end
// here; the user never learns whether the URL was malformed or the entity
// is gone.
func (a *API) renderNotFound(c *gin.Context) {
	a.renderHTML(c, http.StatusNotFound, "not_found.html", gin.H{
		"title": "Page not found",
	})
	c.Abort()
}

// NotFound handles unmatched routes.
func (a *API) NotFound(c *gin.Context) {
	a.renderNotFound(c)
}
