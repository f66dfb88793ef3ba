// Package upstream is the typed client for the content API every page is
// rendered from. It is the only component in the repository that performs
// network I/O.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/collegescope/internal/listing"
	"github.com/collegescope/internal/model"
)

// ErrNotFound is returned for upstream 404s so callers can collapse the
// request into their own not-found handling.
var ErrNotFound = errors.New("upstream entity not found")

const maxResponseBytes = 4 << 20

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the upstream REST API with bearer auth and a fixed
// request timeout. All methods are safe for concurrent use.
type Client struct {
	baseURL string
	token   string
	http    httpDoer
}

// NewClient builds a client for the given API root. The timeout applies
// per request; an expired timeout surfaces as an ordinary fetch error.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 12 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:   strings.TrimSpace(token),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetHTTPClient swaps the transport, mainly for tests.
func (c *Client) SetHTTPClient(doer httpDoer) {
	if doer == nil {
		c.http = &http.Client{Timeout: 12 * time.Second}
		return
	}
	c.http = doer
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dst any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "collegescope/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("upstream %s returned %s", path, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// pagedResponse is the wire shape of every collection endpoint.
type pagedResponse[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"total_count"`
}

func encodeNonBlank(values url.Values) string {
	q := url.Values{}
	for key, vs := range values {
		for _, v := range vs {
			if strings.TrimSpace(v) != "" {
				q.Add(key, v)
			}
		}
	}
	return q.Encode()
}

func listQuery(page, pageSize int, extra url.Values) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))
	for key, values := range extra {
		for _, v := range values {
			if strings.TrimSpace(v) != "" {
				q.Add(key, v)
			}
		}
	}
	return q
}

// CollegeByID fetches one college.
func (c *Client) CollegeByID(ctx context.Context, id uint) (*model.College, error) {
	var college model.College
	if err := c.get(ctx, fmt.Sprintf("/colleges/%d", id), nil, &college); err != nil {
		return nil, err
	}
	return &college, nil
}

// ExamByID fetches one exam.
func (c *Client) ExamByID(ctx context.Context, id uint) (*model.Exam, error) {
	var exam model.Exam
	if err := c.get(ctx, fmt.Sprintf("/exams/%d", id), nil, &exam); err != nil {
		return nil, err
	}
	return &exam, nil
}

// ArticleByID fetches one article.
func (c *Client) ArticleByID(ctx context.Context, id uint) (*model.Article, error) {
	var article model.Article
	if err := c.get(ctx, fmt.Sprintf("/articles/%d", id), nil, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// NewsByID fetches one news item.
func (c *Client) NewsByID(ctx context.Context, id uint) (*model.NewsItem, error) {
	var item model.NewsItem
	if err := c.get(ctx, fmt.Sprintf("/news/%d", id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// CollegeFilter narrows college listings. Zero values pass through
// unfiltered.
type CollegeFilter struct {
	Search    string
	State     string
	Ownership string
	Stream    string
}

func (f CollegeFilter) values() url.Values {
	q := url.Values{}
	q.Set("search", f.Search)
	q.Set("state", f.State)
	q.Set("ownership", f.Ownership)
	q.Set("stream", f.Stream)
	return q
}

// Query encodes the non-blank filter fields for propagation into page
// links and load-more URLs.
func (f CollegeFilter) Query() string {
	return encodeNonBlank(f.values())
}

// Colleges fetches one page of the college catalog.
func (c *Client) Colleges(ctx context.Context, page, pageSize int, filter CollegeFilter) (listing.Page[model.College], error) {
	var resp pagedResponse[model.College]
	if err := c.get(ctx, "/colleges", listQuery(page, pageSize, filter.values()), &resp); err != nil {
		return listing.Page[model.College]{}, err
	}
	return listing.Page[model.College]{Items: resp.Items, TotalCount: resp.TotalCount}, nil
}

// ExamFilter narrows exam listings.
type ExamFilter struct {
	Search string
	Level  string
	Stream string
}

func (f ExamFilter) values() url.Values {
	q := url.Values{}
	q.Set("search", f.Search)
	q.Set("level", f.Level)
	q.Set("stream", f.Stream)
	return q
}

// Query encodes the non-blank filter fields for propagation into page
// links and load-more URLs.
func (f ExamFilter) Query() string {
	return encodeNonBlank(f.values())
}

// Exams fetches one page of the exam catalog.
func (c *Client) Exams(ctx context.Context, page, pageSize int, filter ExamFilter) (listing.Page[model.Exam], error) {
	var resp pagedResponse[model.Exam]
	if err := c.get(ctx, "/exams", listQuery(page, pageSize, filter.values()), &resp); err != nil {
		return listing.Page[model.Exam]{}, err
	}
	return listing.Page[model.Exam]{Items: resp.Items, TotalCount: resp.TotalCount}, nil
}

// Articles fetches one page of editorial articles, optionally scoped to a
// category.
func (c *Client) Articles(ctx context.Context, page, pageSize int, category string) (listing.Page[model.Article], error) {
	extra := url.Values{}
	extra.Set("category", category)

	var resp pagedResponse[model.Article]
	if err := c.get(ctx, "/articles", listQuery(page, pageSize, extra), &resp); err != nil {
		return listing.Page[model.Article]{}, err
	}
	return listing.Page[model.Article]{Items: resp.Items, TotalCount: resp.TotalCount}, nil
}

// News fetches one page of news items, newest first.
func (c *Client) News(ctx context.Context, page, pageSize int) (listing.Page[model.NewsItem], error) {
	var resp pagedResponse[model.NewsItem]
	if err := c.get(ctx, "/news", listQuery(page, pageSize, nil), &resp); err != nil {
		return listing.Page[model.NewsItem]{}, err
	}
	return listing.Page[model.NewsItem]{Items: resp.Items, TotalCount: resp.TotalCount}, nil
}
