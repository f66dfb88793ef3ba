package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/collegescope/internal/listing"
	"github.com/collegescope/internal/model"
	"github.com/collegescope/internal/upstream"
)

type fakeCatalog struct {
	colleges [][]model.College
	exams    [][]model.Exam
	examErr  error
}

func (f *fakeCatalog) Colleges(ctx context.Context, page, pageSize int, filter upstream.CollegeFilter) (listing.Page[model.College], error) {
	if page > len(f.colleges) {
		return listing.Page[model.College]{}, nil
	}
	return listing.Page[model.College]{Items: f.colleges[page-1]}, nil
}

func (f *fakeCatalog) Exams(ctx context.Context, page, pageSize int, filter upstream.ExamFilter) (listing.Page[model.Exam], error) {
	if f.examErr != nil {
		return listing.Page[model.Exam]{}, f.examErr
	}
	if page > len(f.exams) {
		return listing.Page[model.Exam]{}, nil
	}
	return listing.Page[model.Exam]{Items: f.exams[page-1]}, nil
}

func fullCollegePage(from int) []model.College {
	items := make([]model.College, 0, listing.DefaultPageSize)
	for i := 0; i < listing.DefaultPageSize; i++ {
		items = append(items, model.College{ID: uint(from + i), Name: "College"})
	}
	return items
}

func TestBuildURLsWalksBothCatalogs(t *testing.T) {
	catalog := &fakeCatalog{
		colleges: [][]model.College{
			fullCollegePage(1),
			{{ID: 101, Name: "IIT Delhi"}},
		},
		exams: [][]model.Exam{
			{{ID: 7, Name: "JEE Advanced"}},
		},
	}

	svc := NewSitemapService(catalog, "https://www.collegescope.in/")
	urls, err := svc.BuildURLs(context.Background())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	// 5 static pages + 17 colleges + 1 exam.
	if len(urls) != 23 {
		t.Fatalf("expected 23 urls, got %d", len(urls))
	}

	joined := strings.Join(urls, "\n")
	if !strings.Contains(joined, "https://www.collegescope.in/colleges/iit-delhi-101") {
		t.Fatalf("expected canonical college url, got:\n%s", joined)
	}
	if !strings.Contains(joined, "https://www.collegescope.in/exams/jee-advanced-7") {
		t.Fatalf("expected canonical exam url, got:\n%s", joined)
	}
}

func TestBuildURLsPropagatesWalkFailure(t *testing.T) {
	catalog := &fakeCatalog{
		colleges: [][]model.College{{{ID: 1, Name: "A"}}},
		examErr:  errors.New("upstream down"),
	}

	svc := NewSitemapService(catalog, "https://www.collegescope.in")
	if _, err := svc.BuildURLs(context.Background()); err == nil {
		t.Fatal("expected walk failure to propagate")
	}
}

func TestBuildXMLWrapsURLSet(t *testing.T) {
	catalog := &fakeCatalog{
		colleges: [][]model.College{{{ID: 1, Name: "Anna University"}}},
		exams:    [][]model.Exam{{}},
	}

	svc := NewSitemapService(catalog, "https://www.collegescope.in")
	body, err := svc.BuildXML(context.Background())
	if err != nil {
		t.Fatalf("build xml failed: %v", err)
	}

	out := string(body)
	if !strings.Contains(out, "<urlset") || !strings.Contains(out, "sitemaps.org") {
		t.Fatalf("expected urlset envelope, got:\n%s", out)
	}
	if !strings.Contains(out, "<loc>https://www.collegescope.in/colleges/anna-university-1</loc>") {
		t.Fatalf("expected college loc entry, got:\n%s", out)
	}
}
