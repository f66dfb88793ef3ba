package model

import "strings"

// Exam is an entrance or qualifying exam as returned by the upstream API.
type Exam struct {
	ID              uint     `json:"id"`
	Name            string   `json:"name"`
	ShortName       string   `json:"short_name"`
	Slug            string   `json:"slug"`
	Level           string   `json:"level"`
	Mode            string   `json:"mode"`
	Frequency       string   `json:"frequency"`
	ConductedBy     string   `json:"conducted_by"`
	ApplicationOpen string   `json:"application_open"`
	ExamDate        string   `json:"exam_date"`
	Streams         []string `json:"streams"`
	Summary         string   `json:"summary"`
	Description     string   `json:"description"`
	SyllabusHTML    string   `json:"syllabus"`
	PatternHTML     string   `json:"pattern"`
	HasSyllabus     bool     `json:"has_syllabus"`
	HasPattern      bool     `json:"has_pattern"`
}

// EntityID implements slug resolution.
func (e *Exam) EntityID() uint { return e.ID }

// SlugSource prefers the upstream slug field and falls back to the name.
func (e *Exam) SlugSource() string {
	if strings.TrimSpace(e.Slug) != "" {
		return e.Slug
	}
	return e.Name
}
