package service

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/collegescope/internal/listing"
	"github.com/collegescope/internal/model"
	"github.com/collegescope/internal/slug"
	"github.com/collegescope/internal/upstream"
)

// catalogLister is the slice of the upstream client the sitemap needs.
type catalogLister interface {
	Colleges(ctx context.Context, page, pageSize int, filter upstream.CollegeFilter) (listing.Page[model.College], error)
	Exams(ctx context.Context, page, pageSize int, filter upstream.ExamFilter) (listing.Page[model.Exam], error)
}

// SitemapService walks the full college and exam catalogs and emits their
// canonical URLs. Each build drains a fresh incremental fetcher per
// catalog, so a partially failed walk never leaks into the next one.
type SitemapService struct {
	upstream    catalogLister
	siteBaseURL string
}

// NewSitemapService returns a sitemap builder rooted at siteBaseURL.
func NewSitemapService(lister catalogLister, siteBaseURL string) *SitemapService {
	return &SitemapService{
		upstream:    lister,
		siteBaseURL: strings.TrimRight(siteBaseURL, "/"),
	}
}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// BuildURLs collects every canonical URL the site serves: the static
// listing pages plus one detail URL per college and exam.
func (s *SitemapService) BuildURLs(ctx context.Context) ([]string, error) {
	urls := []string{
		s.siteBaseURL + "/",
		s.siteBaseURL + "/colleges",
		s.siteBaseURL + "/exams",
		s.siteBaseURL + "/articles",
		s.siteBaseURL + "/news",
	}

	colleges := listing.NewFetcher(
		func(ctx context.Context, page, pageSize int) (listing.Page[model.College], error) {
			return s.upstream.Colleges(ctx, page, pageSize, upstream.CollegeFilter{})
		},
		func(c model.College) uint { return c.ID },
	)
	if err := colleges.Drain(ctx); err != nil {
		return nil, fmt.Errorf("walk college catalog: %w", err)
	}
	for i := range colleges.Items() {
		college := colleges.Items()[i]
		urls = append(urls, s.siteBaseURL+"/colleges/"+slug.Segment(&college))
	}

	exams := listing.NewFetcher(
		func(ctx context.Context, page, pageSize int) (listing.Page[model.Exam], error) {
			return s.upstream.Exams(ctx, page, pageSize, upstream.ExamFilter{})
		},
		func(e model.Exam) uint { return e.ID },
	)
	if err := exams.Drain(ctx); err != nil {
		return nil, fmt.Errorf("walk exam catalog: %w", err)
	}
	for i := range exams.Items() {
		exam := exams.Items()[i]
		urls = append(urls, s.siteBaseURL+"/exams/"+slug.Segment(&exam))
	}

	return urls, nil
}

// BuildXML renders the sitemap as an XML document.
func (s *SitemapService) BuildXML(ctx context.Context) ([]byte, error) {
	urls, err := s.BuildURLs(ctx)
	if err != nil {
		return nil, err
	}

	set := urlSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, u := range urls {
		set.URLs = append(set.URLs, sitemapURL{Loc: u})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
