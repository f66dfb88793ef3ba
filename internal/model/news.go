package model

import "strings"

// NewsItem is a short time-sensitive update (result declarations, date
// changes, counselling rounds).
type NewsItem struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Source      string `json:"source"`
	CoverURL    string `json:"cover_url"`
	Summary     string `json:"summary"`
	Content     string `json:"content"`
	PublishedAt string `json:"published_at"`
}

// EntityID implements slug resolution.
func (n *NewsItem) EntityID() uint { return n.ID }

// SlugSource prefers the upstream slug field and falls back to the title.
func (n *NewsItem) SlugSource() string {
	if strings.TrimSpace(n.Slug) != "" {
		return n.Slug
	}
	return n.Title
}
