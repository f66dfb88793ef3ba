package model

import "strings"

// Article is an editorial piece (admission guides, rankings explainers and
// the like). The body arrives as markdown and is rendered server-side.
type Article struct {
	ID          uint     `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Author      string   `json:"author"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	CoverURL    string   `json:"cover_url"`
	Summary     string   `json:"summary"`
	Content     string   `json:"content"`
	PublishedAt string   `json:"published_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// EntityID implements slug resolution.
func (a *Article) EntityID() uint { return a.ID }

// SlugSource prefers the upstream slug field and falls back to the title.
func (a *Article) SlugSource() string {
	if strings.TrimSpace(a.Slug) != "" {
		return a.Slug
	}
	return a.Title
}
