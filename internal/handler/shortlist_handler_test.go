package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/collegescope/internal/config"
	"github.com/collegescope/internal/db"
	"github.com/collegescope/internal/handler"
	"github.com/collegescope/internal/model"
	"github.com/collegescope/internal/router"
	"github.com/collegescope/internal/upstream"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sessionClient replays cookies between requests so session state survives.
type sessionClient struct {
	router  *gin.Engine
	cookies []*http.Cookie
}

func (s *sessionClient) do(method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	for _, cookie := range s.cookies {
		req.AddCookie(cookie)
	}
	s.router.ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		replaced := false
		for i, existing := range s.cookies {
			if existing.Name == cookie.Name {
				s.cookies[i] = cookie
				replaced = true
				break
			}
		}
		if !replaced {
			s.cookies = append(s.cookies, cookie)
		}
	}
	return w
}

func decodeToggle(t *testing.T, w *httptest.ResponseRecorder) (bool, int) {
	t.Helper()

	var body struct {
		Shortlisted bool `json:"shortlisted"`
		Count       int  `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode toggle response: %v", err)
	}
	return body.Shortlisted, body.Count
}

func TestToggleShortlistRoundTrip(t *testing.T) {
	college := model.College{ID: 101, Name: "IIT Delhi"}
	client := &sessionClient{router: newTestRouter(t, collegeUpstream(t, college))}

	w := client.do(http.MethodPost, "/shortlist/101")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if on, count := decodeToggle(t, w); !on || count != 1 {
		t.Fatalf("expected shortlisted=true count=1, got %v %d", on, count)
	}

	w = client.do(http.MethodGet, "/shortlist")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for shortlist page, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "IIT Delhi") {
		t.Fatal("expected shortlisted college on the page")
	}

	w = client.do(http.MethodPost, "/shortlist/101")
	if on, count := decodeToggle(t, w); on || count != 0 {
		t.Fatalf("expected shortlisted=false count=0 after second toggle, got %v %d", on, count)
	}

	w = client.do(http.MethodGet, "/shortlist")
	if strings.Contains(w.Body.String(), "IIT Delhi") {
		t.Fatal("removed college must not render")
	}
}

func TestToggleShortlistRejectsBadID(t *testing.T) {
	client := &sessionClient{router: newTestRouter(t, collegeUpstream(t, model.College{ID: 1}))}

	for _, path := range []string{"/shortlist/0", "/shortlist/abc"} {
		w := client.do(http.MethodPost, path)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %q, got %d", path, w.Code)
		}
	}
}

func TestShowShortlistDropsUnresolvableIDs(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/colleges/101", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.College{ID: 101, Name: "IIT Delhi"})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	client := &sessionClient{router: newTestRouter(t, mux)}

	client.do(http.MethodPost, "/shortlist/101")
	client.do(http.MethodPost, "/shortlist/999")

	w := client.do(http.MethodGet, "/shortlist")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "IIT Delhi") {
		t.Fatal("expected resolvable college on the page")
	}
	if strings.Contains(body, "999") {
		t.Fatal("unresolvable id must be dropped")
	}
}

func TestSitemapListsCanonicalCatalogURLs(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/colleges", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"items": []model.College{{ID: 101, Name: "IIT Delhi"}},
		})
	})
	mux.HandleFunc("/exams", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"items": []model.Exam{{ID: 7, Name: "JEE Advanced"}},
		})
	})
	r := newTestRouter(t, mux)

	w := doGet(r, "/sitemap.xml")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/xml") {
		t.Fatalf("unexpected content type %q", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, "https://www.collegescope.in/colleges/iit-delhi-101") {
		t.Fatal("expected canonical college URL in sitemap")
	}
	if !strings.Contains(body, "https://www.collegescope.in/exams/jee-advanced-7") {
		t.Fatal("expected canonical exam URL in sitemap")
	}
}

func TestSitemapUnavailableWhenUpstreamFails(t *testing.T) {
	r := newTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	w := doGet(r, "/sitemap.xml")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestDetailViewRecordsAnalytics(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := gdb.AutoMigrate(&db.EntityStatistic{}, &db.EntityVisit{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	srv := httptest.NewServer(collegeUpstream(t, model.College{ID: 101, Name: "IIT Delhi"}))
	t.Cleanup(srv.Close)

	cfg := config.AppConfig{
		UpstreamBaseURL: srv.URL,
		UpstreamToken:   "test-token",
		SessionSecret:   "test-secret",
		SiteBaseURL:     "https://www.collegescope.in",
		TemplateGlob:    "../../web/template/*.html",
	}
	api := handler.NewAPI(cfg, upstream.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamToken, 0), gdb)
	client := &sessionClient{router: router.SetupRouter(api, cfg)}

	for i := 0; i < 2; i++ {
		w := client.do(http.MethodGet, "/colleges/iit-delhi-101")
		if w.Code != http.StatusOK {
			t.Fatalf("request %d failed with %d", i, w.Code)
		}
	}

	var stat db.EntityStatistic
	if err := gdb.Where("entity_kind = ? AND entity_id = ?", db.KindCollege, 101).First(&stat).Error; err != nil {
		t.Fatalf("expected a statistics row: %v", err)
	}
	if stat.PageViews != 2 {
		t.Fatalf("expected 2 page views, got %d", stat.PageViews)
	}
	if stat.UniqueVisitors != 1 {
		t.Fatalf("repeat visit with the same cookie must not add a visitor, got %d", stat.UniqueVisitors)
	}
}
