package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"folio/internal/adapters/filesystem"
	"folio/internal/domain"
	"folio/internal/markdown"
	"folio/internal/metrics"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type countingRecorder struct {
	metrics.NoopRecorder
	notFound int
}

func (c *countingRecorder) IncNavigationNotFound() { c.notFound++ }

func writeBlog(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return root
}

var blog = map[string]string{
	"first.md":          "---\ntitle: First\ndate: 2024-01-01\ntags: [Go, Testing]\n---\n\n## Intro\n\nHello.\n",
	"nested/second.mdx": "---\ntitle: Second\ndate: 2024-02-01\ntags: [Go]\n---\n\nWorld.\n",
	"wip.md":            "---\ntitle: Draft\ndate: 2024-03-01\ndraft: true\ntags: [Secret]\n---\n\nWIP.\n",
}

func setupServer(t *testing.T, files map[string]string, opts ...Option) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := filesystem.NewRepository(writeBlog(t, files), filesystem.WithLogger(logger))
	opts = append([]Option{WithLogger(logger), WithAuthors(repo), WithRenderer(markdown.New())}, opts...)
	return NewServer(":0", repo, opts...)
}

func get(t *testing.T, s *Server, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("failed to decode %s response: %v", target, err)
		}
	}
	return w, env
}

func TestHealth(t *testing.T) {
	s := setupServer(t, blog)
	w, _ := get(t, s, "/health")
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "healthy") {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestListPosts(t *testing.T) {
	s := setupServer(t, blog)

	w, env := get(t, s, "/api/posts")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var page domain.Page
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if page.TotalPosts != 2 {
		t.Fatalf("expected 2 published posts, got %d", page.TotalPosts)
	}
	if page.Posts[0].Slug != "nested/second" || page.Posts[1].Slug != "first" {
		t.Errorf("expected newest first, got %s, %s", page.Posts[0].Slug, page.Posts[1].Slug)
	}
}

func TestListPosts_Errors(t *testing.T) {
	s := setupServer(t, blog)

	tests := []struct {
		target string
		status int
	}{
		{"/api/posts?page=9", http.StatusNotFound},
		{"/api/posts?page=0", http.StatusBadRequest},
		{"/api/posts?page=abc", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w, env := get(t, s, tt.target)
			if w.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, w.Code)
			}
			if env.Success || env.Error == "" {
				t.Errorf("expected error envelope, got %+v", env)
			}
		})
	}
}

func TestGetPost(t *testing.T) {
	s := setupServer(t, blog)

	w, env := get(t, s, "/api/posts/first")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var detail struct {
		Entry      domain.Entry      `json:"entry"`
		Navigation domain.Navigation `json:"navigation"`
		Toc        []domain.Toc      `json:"toc"`
	}
	if err := json.Unmarshal(env.Data, &detail); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if detail.Entry.Title != "First" {
		t.Errorf("expected First, got %s", detail.Entry.Title)
	}
	if detail.Navigation.Next != nil {
		t.Errorf("oldest post should have no next, got %s", detail.Navigation.Next.Slug)
	}
	if detail.Navigation.Prev == nil || detail.Navigation.Prev.Slug != "nested/second" {
		t.Errorf("expected prev nested/second, got %+v", detail.Navigation.Prev)
	}
	if len(detail.Toc) != 1 || detail.Toc[0].Value != "Intro" {
		t.Errorf("expected one toc heading, got %+v", detail.Toc)
	}
}

func TestGetPost_NestedSlug(t *testing.T) {
	s := setupServer(t, blog)
	w, _ := get(t, s, "/api/posts/nested/second")
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}

func TestGetPost_NotFound(t *testing.T) {
	rec := &countingRecorder{}
	s := setupServer(t, blog, WithMetrics(rec, nil))

	for _, target := range []string{"/api/posts/missing", "/api/posts/wip"} {
		w, _ := get(t, s, target)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s: expected status 404, got %d", target, w.Code)
		}
	}
	if rec.notFound != 2 {
		t.Errorf("expected 2 not-found lookups recorded, got %d", rec.notFound)
	}
}

func TestGetPost_MissingAuthor(t *testing.T) {
	rec := &countingRecorder{}
	s := setupServer(t, map[string]string{
		"ghost.md": "---\ntitle: Ghost\ndate: 2024-01-01\nauthors: [Ghost Writer]\n---\n\nBoo.\n",
	}, WithMetrics(rec, nil))

	w, env := get(t, s, "/api/posts/ghost")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
	if !strings.Contains(env.Error, "author not found: Ghost Writer") {
		t.Errorf("unexpected error %q", env.Error)
	}
	if rec.notFound != 0 {
		t.Errorf("missing author must not count as a missing post, got %d", rec.notFound)
	}
}

func TestGetPost_DateFormat(t *testing.T) {
	s := setupServer(t, blog)
	w, _ := get(t, s, "/api/posts/first")
	if !strings.Contains(w.Body.String(), `"date":"2024-01-01"`) {
		t.Errorf("expected ISO date in %s", w.Body.String())
	}
}

func TestTags(t *testing.T) {
	s := setupServer(t, blog)

	w, env := get(t, s, "/api/tags")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var tags []domain.TagCount
	if err := json.Unmarshal(env.Data, &tags); err != nil {
		t.Fatalf("decode tags: %v", err)
	}
	counts := map[string]int{}
	for _, tc := range tags {
		counts[tc.Slug] = tc.Count
	}
	if counts["go"] != 2 || counts["testing"] != 1 {
		t.Errorf("unexpected counts %v", counts)
	}
	if _, ok := counts["secret"]; ok {
		t.Error("draft tags must not be listed")
	}
}

func TestTagPosts(t *testing.T) {
	s := setupServer(t, blog)

	w, env := get(t, s, "/api/tags/go")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var view struct {
		Tag  string      `json:"tag"`
		Page domain.Page `json:"page"`
	}
	if err := json.Unmarshal(env.Data, &view); err != nil {
		t.Fatalf("decode tag view: %v", err)
	}
	if view.Tag != "Go" || view.Page.TotalPosts != 2 {
		t.Errorf("unexpected tag view %+v", view)
	}

	if w, _ := get(t, s, "/api/tags/secret"); w.Code != http.StatusNotFound {
		t.Errorf("draft-only tag: expected 404, got %d", w.Code)
	}
}

func TestSearch(t *testing.T) {
	s := setupServer(t, blog)

	w, env := get(t, s, "/api/search?q=second")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var results []struct {
		Entry domain.Entry `json:"entry"`
	}
	if err := json.Unmarshal(env.Data, &results); err != nil {
		t.Fatalf("decode results: %v", err)
	}
	if len(results) != 1 || results[0].Entry.Slug != "nested/second" {
		t.Errorf("unexpected results %+v", results)
	}

	if w, _ := get(t, s, "/api/search"); w.Code != http.StatusBadRequest {
		t.Errorf("missing query: expected 400, got %d", w.Code)
	}
}

func TestMalformedContent(t *testing.T) {
	files := map[string]string{
		"ok.md":     "---\ntitle: OK\ndate: 2024-01-01\n---\n",
		"broken.md": "---\ndate: 2024-01-02\n---\n",
	}
	s := setupServer(t, files)

	w, env := get(t, s, "/api/posts")
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status 422, got %d", w.Code)
	}
	if !strings.Contains(env.Error, "title") {
		t.Errorf("expected error naming the title field, got %q", env.Error)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prom.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)
	s := setupServer(t, blog, WithMetrics(rec, reg))

	get(t, s, "/api/posts/missing")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "folio_navigation_not_found_total 1") {
		t.Errorf("expected not-found counter in output:\n%s", w.Body.String())
	}
}

func TestShutdown(t *testing.T) {
	s := setupServer(t, blog)
	done := make(chan error, 1)
	go func() { done <- s.Start() }()

	time.Sleep(50 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if err := <-done; err != nil {
		t.Errorf("Start returned %v after shutdown", err)
	}
}
