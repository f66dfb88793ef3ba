package model

import "strings"

// ContentFlags are the upstream capability booleans that decide which
// college sub-pages exist. A false or absent flag means the sub-page 404s.
type ContentFlags struct {
	HasHighlights bool `json:"has_highlights"`
	HasCourses    bool `json:"has_courses"`
	HasCutoffs    bool `json:"has_cutoffs"`
	HasPlacements bool `json:"has_placements"`
}

// College is one institution as returned by the upstream API. Nothing here
// is persisted locally; the struct is rebuilt from JSON on every request.
type College struct {
	ID           uint         `json:"id"`
	Name         string       `json:"name"`
	Slug         string       `json:"slug"`
	City         string       `json:"city"`
	State        string       `json:"state"`
	Ownership    string       `json:"ownership"`
	ApprovedBy   string       `json:"approved_by"`
	Established  int          `json:"established"`
	Rating       float64      `json:"rating"`
	LogoURL      string       `json:"logo_url"`
	BannerURL    string       `json:"banner_url"`
	Website      string       `json:"website"`
	Summary      string       `json:"summary"`
	Description  string       `json:"description"`
	Streams      []string     `json:"streams"`
	Flags        ContentFlags `json:"content_flags"`
	Courses      []Course     `json:"courses"`
	Highlights   string       `json:"highlights"`
	CutoffsHTML  string       `json:"cutoffs"`
	Placements   string       `json:"placements"`
}

// EntityID implements slug resolution.
func (c *College) EntityID() uint { return c.ID }

// SlugSource prefers the upstream slug field and falls back to the name.
func (c *College) SlugSource() string {
	if strings.TrimSpace(c.Slug) != "" {
		return c.Slug
	}
	return c.Name
}

// Course is a program offered by a college.
type Course struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Degree   string `json:"degree"`
	Duration string `json:"duration"`
	Mode     string `json:"mode"`
	Fees     string `json:"fees"`
	Seats    int    `json:"seats"`
}
