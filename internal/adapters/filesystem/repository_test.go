package filesystem

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"folio/internal/domain"
)

func setupTestBlog(t *testing.T, files map[string]string) (string, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "folio-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	for rel, content := range files {
		path := filepath.Join(tmpDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}

	cleanup := func() {
		os.RemoveAll(tmpDir)
	}

	return tmpDir, cleanup
}

func post(title, date string, extra ...string) string {
	var b strings.Builder
	b.WriteString("---\n")
	if title != "" {
		b.WriteString("title: " + title + "\n")
	}
	if date != "" {
		b.WriteString("date: " + date + "\n")
	}
	for _, line := range extra {
		b.WriteString(line + "\n")
	}
	b.WriteString("---\n\nSome body text here.\n")
	return b.String()
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScan(t *testing.T) {
	root, cleanup := setupTestBlog(t, map[string]string{
		"a.md":              post("A", "2024-01-01"),
		"nested/b.mdx":      post("B", "2024-01-02"),
		"nested/notes.txt":  "ignored",
		".drafts/hidden.md": post("Hidden", "2024-01-03"),
		"upper.MD":          post("Upper", "2024-01-04"),
	})
	defer cleanup()

	paths, err := Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	want := []string{filepath.Join(root, "a.md"), filepath.Join(root, "nested", "b.mdx")}
	if len(paths) != len(want) {
		t.Fatalf("expected %v, got %v", want, paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], paths[i])
		}
	}
}

func TestScan_MissingRoot(t *testing.T) {
	_, err := Scan(context.Background(), filepath.Join(os.TempDir(), "folio-does-not-exist"))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestScan_EmptyRoot(t *testing.T) {
	root, cleanup := setupTestBlog(t, nil)
	defer cleanup()

	paths, err := Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("expected no paths, got %v", paths)
	}
}

func TestLoadEntry_DerivedFields(t *testing.T) {
	root, cleanup := setupTestBlog(t, map[string]string{
		"guides/setup.mdx": post("Setup Guide", "2024-05-01T10:30:00Z",
			"tags: [go, tooling]",
			"draft: true",
			"summary: How to set up",
			"lastmod: 2024-06-01",
			"authors: [Jane Doe]"),
	})
	defer cleanup()

	repo := NewRepository(root, WithLogger(quietLogger()))
	e, err := repo.LoadEntry(context.Background(), "guides/setup.mdx")
	if err != nil {
		t.Fatalf("LoadEntry failed: %v", err)
	}

	if e.Slug != "guides/setup" || e.URL != "guides/setup" {
		t.Errorf("expected slug and url guides/setup, got %s / %s", e.Slug, e.URL)
	}
	if e.FilePath != filepath.Join(root, "guides", "setup.mdx") {
		t.Errorf("expected absolute file path, got %s", e.FilePath)
	}
	if e.FileName != "setup.mdx" {
		t.Errorf("expected file name setup.mdx, got %s", e.FileName)
	}
	if e.Date.String() != "2024-05-01" {
		t.Errorf("expected normalized date, got %s", e.Date)
	}
	if e.LastMod == nil || e.LastMod.String() != "2024-06-01" {
		t.Errorf("expected lastmod 2024-06-01, got %v", e.LastMod)
	}
	if !e.Draft || len(e.Tags) != 2 || e.Summary != "How to set up" {
		t.Errorf("unexpected front matter fields: %+v", e)
	}
	if len(e.Authors) != 1 || e.Authors[0] != "Jane Doe" {
		t.Errorf("expected authors [Jane Doe], got %v", e.Authors)
	}
	if e.ReadingTime.Words != 4 || e.ReadingTime.Text != "1 min read" {
		t.Errorf("unexpected reading time: %+v", e.ReadingTime)
	}
}

func TestLoadEntry_Defaults(t *testing.T) {
	root, cleanup := setupTestBlog(t, map[string]string{"a.md": post("A", "2024-01-01")})
	defer cleanup()

	e, err := NewRepository(root).LoadEntry(context.Background(), "a.md")
	if err != nil {
		t.Fatalf("LoadEntry failed: %v", err)
	}
	if e.Draft {
		t.Error("draft should default to false")
	}
	if e.Tags == nil || len(e.Tags) != 0 {
		t.Errorf("tags should default to empty, got %v", e.Tags)
	}
}

func TestLoadEntry_Malformed(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantField string
	}{
		{"missing title", post("", "2024-01-01"), "title"},
		{"missing date", post("A", ""), "date"},
		{"bad date", post("A", "someday"), "date"},
		{"no front matter", "just text\n", "title"},
		{"tags wrong type", post("A", "2024-01-01", "tags: {a: b}"), "tags"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, cleanup := setupTestBlog(t, map[string]string{"x.md": tt.content})
			defer cleanup()

			_, err := NewRepository(root).LoadEntry(context.Background(), "x.md")
			if !errors.Is(err, domain.ErrMalformedContent) {
				t.Fatalf("expected ErrMalformedContent, got %v", err)
			}
			var mce *domain.MalformedContentError
			if !errors.As(err, &mce) {
				t.Fatalf("expected *MalformedContentError, got %T", err)
			}
			if mce.Field != tt.wantField {
				t.Errorf("expected field %s, got %s", tt.wantField, mce.Field)
			}
		})
	}
}

func TestLoadEntry_Strict(t *testing.T) {
	root, cleanup := setupTestBlog(t, map[string]string{
		"a.md": post("A", "2024-01-01", "mood: happy"),
	})
	defer cleanup()

	if _, err := NewRepository(root, WithLogger(quietLogger())).LoadEntry(context.Background(), "a.md"); err != nil {
		t.Errorf("unknown keys should only warn by default, got %v", err)
	}

	_, err := NewRepository(root, WithStrict(true)).LoadEntry(context.Background(), "a.md")
	if !errors.Is(err, domain.ErrMalformedContent) {
		t.Errorf("expected strict mode to reject unknown keys, got %v", err)
	}
}

func TestLoadIndex(t *testing.T) {
	root, cleanup := setupTestBlog(t, map[string]string{
		"old.md":    post("Old", "2023-01-01"),
		"new.md":    post("New", "2024-01-01"),
		"mid.mdx":   post("Mid", "2023-06-01"),
		"broken.md": post("", "2023-06-01"),
	})
	defer cleanup()

	t.Run("fail policy aborts", func(t *testing.T) {
		_, err := NewRepository(root).LoadIndex(context.Background())
		if !errors.Is(err, domain.ErrMalformedContent) {
			t.Errorf("expected ErrMalformedContent, got %v", err)
		}
	})

	t.Run("skip policy drops file", func(t *testing.T) {
		repo := NewRepository(root, WithPolicy(PolicySkip), WithLogger(quietLogger()))
		entries, err := repo.LoadIndex(context.Background())
		if err != nil {
			t.Fatalf("LoadIndex failed: %v", err)
		}
		want := []string{"new", "mid", "old"}
		if len(entries) != len(want) {
			t.Fatalf("expected %d entries, got %d", len(want), len(entries))
		}
		for i, slug := range want {
			if entries[i].Slug != slug {
				t.Errorf("position %d: expected %s, got %s", i, slug, entries[i].Slug)
			}
		}
	})
}

func TestLoadIndex_DuplicateSlug(t *testing.T) {
	root, cleanup := setupTestBlog(t, map[string]string{
		"a.md":  post("A", "2024-01-01"),
		"a.mdx": post("A again", "2024-01-02"),
	})
	defer cleanup()

	_, err := NewRepository(root).LoadIndex(context.Background())
	var mce *domain.MalformedContentError
	if !errors.As(err, &mce) || mce.Field != "slug" {
		t.Errorf("expected duplicate slug error, got %v", err)
	}
}

func TestLoadEntry_Deterministic(t *testing.T) {
	root, cleanup := setupTestBlog(t, map[string]string{"a.md": post("A", "2024-01-01", "tags: [x, y]")})
	defer cleanup()

	repo := NewRepository(root)
	first, err := repo.LoadEntry(context.Background(), "a.md")
	if err != nil {
		t.Fatalf("LoadEntry failed: %v", err)
	}
	second, err := repo.LoadEntry(context.Background(), filepath.Join(root, "a.md"))
	if err != nil {
		t.Fatalf("LoadEntry failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical entries, got %+v and %+v", first, second)
	}
}

func TestReadBody(t *testing.T) {
	root, cleanup := setupTestBlog(t, map[string]string{"a.md": post("A", "2024-01-01")})
	defer cleanup()

	repo := NewRepository(root)
	body, err := repo.ReadBody(context.Background(), "a.md")
	if err != nil {
		t.Fatalf("ReadBody failed: %v", err)
	}
	if strings.Contains(string(body), "title:") {
		t.Errorf("body should not contain front matter: %q", body)
	}

	if _, err := repo.ReadBody(context.Background(), "../etc/passwd"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for path outside root, got %v", err)
	}
}

func TestReadSource(t *testing.T) {
	root, cleanup := setupTestBlog(t, map[string]string{"a.md": post("A", "2024-01-01")})
	defer cleanup()

	repo := NewRepository(root)
	source, err := repo.ReadSource(context.Background(), filepath.Join(root, "a.md"))
	if err != nil {
		t.Fatalf("ReadSource failed: %v", err)
	}
	if !strings.HasPrefix(string(source), "---\ntitle: A") {
		t.Errorf("expected front matter kept, got %q", source)
	}

	if _, err := repo.ReadSource(context.Background(), "../etc/passwd"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for path outside root, got %v", err)
	}
	if _, err := repo.ReadSource(context.Background(), "missing.md"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing file, got %v", err)
	}
}

func TestResolveAuthor(t *testing.T) {
	root, cleanup := setupTestBlog(t, map[string]string{
		"authors/jane_doe.md": "---\nname: Jane Doe\noccupation: Engineer\ngithub: https://github.com/jane\n---\nBio\n",
		"authors/anon.md":     "---\noccupation: Ghost\n---\n",
	})
	defer cleanup()

	repo := NewRepository(filepath.Join(root, "blog"), WithAuthorsDir(filepath.Join(root, "authors")))

	a, err := repo.ResolveAuthor(context.Background(), "Jane Doe")
	if err != nil {
		t.Fatalf("ResolveAuthor failed: %v", err)
	}
	if a.Key != "jane_doe" || a.Occupation != "Engineer" || a.GitHub == "" {
		t.Errorf("unexpected author: %+v", a)
	}

	anon, err := repo.ResolveAuthor(context.Background(), "anon")
	if err != nil {
		t.Fatalf("ResolveAuthor failed: %v", err)
	}
	if anon.Name != "anon" {
		t.Errorf("expected fallback name anon, got %s", anon.Name)
	}

	if _, err := repo.ResolveAuthor(context.Background(), "Nobody"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestParsePolicy(t *testing.T) {
	if p, err := ParsePolicy("SKIP"); err != nil || p != PolicySkip {
		t.Errorf("expected skip, got %v %v", p, err)
	}
	if p, err := ParsePolicy(""); err != nil || p != PolicyFail {
		t.Errorf("expected fail default, got %v %v", p, err)
	}
	if _, err := ParsePolicy("ignore"); err == nil {
		t.Error("expected error for unknown policy")
	}
}
