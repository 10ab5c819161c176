package markdown

import (
	"strings"
	"testing"
)

func TestToc(t *testing.T) {
	body := []byte("# Intro\n\nText.\n\n## Getting `go` running\n\n### Deep *dive*\n\n## Intro\n")

	toc := New().Toc(body)
	if len(toc) != 4 {
		t.Fatalf("expected 4 headings, got %d: %+v", len(toc), toc)
	}

	tests := []struct {
		value string
		depth int
		url   string
	}{
		{"Intro", 1, "#intro"},
		{"Getting go running", 2, "#getting-go-running"},
		{"Deep dive", 3, "#deep-dive"},
		{"Intro", 2, "#intro-1"},
	}
	for i, tt := range tests {
		if toc[i].Value != tt.value {
			t.Errorf("heading %d: expected value %q, got %q", i, tt.value, toc[i].Value)
		}
		if toc[i].Depth != tt.depth {
			t.Errorf("heading %d: expected depth %d, got %d", i, tt.depth, toc[i].Depth)
		}
		if toc[i].URL != tt.url {
			t.Errorf("heading %d: expected url %q, got %q", i, tt.url, toc[i].URL)
		}
	}
}

func TestTocEmpty(t *testing.T) {
	if toc := New().Toc([]byte("no headings here")); len(toc) != 0 {
		t.Errorf("expected empty toc, got %+v", toc)
	}
}

func TestHTML(t *testing.T) {
	out, err := New().HTML([]byte("## Hello\n\n~~gone~~"))
	if err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, `<h2 id="hello">Hello</h2>`) {
		t.Errorf("expected heading with id, got %s", s)
	}
	if !strings.Contains(s, "<del>gone</del>") {
		t.Errorf("expected strikethrough, got %s", s)
	}
}
