package domain

import (
	"slices"
	"testing"
)

func TestTags(t *testing.T) {
	t.Run("excludes draft only tags", func(t *testing.T) {
		got := Tags(sampleEntries(t))
		want := []string{"go", "web"}
		if !slices.Equal(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("tags are case sensitive", func(t *testing.T) {
		entries := []Entry{{Tags: []string{"Go"}}, {Tags: []string{"go"}}}
		if got := Tags(entries); len(got) != 2 {
			t.Errorf("expected 2 distinct tags, got %v", got)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := Tags(nil); len(got) != 0 {
			t.Errorf("expected no tags, got %v", got)
		}
	})
}

func TestTagCounts(t *testing.T) {
	counts := TagCounts(sampleEntries(t))
	if len(counts) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(counts))
	}
	if counts["go"] != 2 || counts["web"] != 1 {
		t.Errorf("unexpected counts %v", counts)
	}
	if _, ok := counts["rust"]; ok {
		t.Error("draft-only tag should not be counted")
	}
}

func TestTagCountList(t *testing.T) {
	t.Run("groups case variants by slug", func(t *testing.T) {
		entries := []Entry{
			{Slug: "newest", Tags: []string{"Go"}},
			{Slug: "middle", Tags: []string{"go", "Web Dev"}},
			{Slug: "oldest", Tags: []string{"GO", "go", "web dev"}},
			{Slug: "wip", Tags: []string{"Go", "Secret"}, Draft: true},
		}
		list := TagCountList(entries)
		if len(list) != 2 {
			t.Fatalf("expected 2 tags, got %+v", list)
		}
		if list[0] != (TagCount{Tag: "Go", Slug: "go", Count: 3}) {
			t.Errorf("unexpected go tag %+v", list[0])
		}
		if list[1] != (TagCount{Tag: "Web Dev", Slug: "web-dev", Count: 2}) {
			t.Errorf("unexpected web dev tag %+v", list[1])
		}
		// Counts agree with the tag view
		for _, tc := range list {
			if n := len(FilterByTag(entries, tc.Slug)); n != tc.Count {
				t.Errorf("%s: count %d but %d posts match", tc.Slug, tc.Count, n)
			}
		}
	})

	t.Run("sorted by tag then by count", func(t *testing.T) {
		entries := []Entry{
			{Tags: []string{"web", "ai"}},
			{Tags: []string{"web", "ai"}},
			{Tags: []string{"web", "ai", "go"}},
		}
		list := TagCountList(entries)
		if list[0].Tag != "ai" || list[2].Tag != "web" {
			t.Errorf("expected list sorted by tag, got %+v", list)
		}
		ByCount(list)
		if list[0].Tag != "ai" || list[1].Tag != "web" || list[2].Tag != "go" {
			t.Errorf("expected list sorted by count, got %+v", list)
		}
	})
}

func TestFilterByTag(t *testing.T) {
	entries := []Entry{
		{Slug: "one", Tags: []string{"Web Dev"}},
		{Slug: "two", Tags: []string{"go"}},
		{Slug: "three", Tags: []string{"web dev"}, Draft: true},
	}

	got := FilterByTag(entries, "web-dev")
	if len(got) != 1 || got[0].Slug != "one" {
		t.Errorf("expected [one], got %+v", got)
	}
}

func TestTagSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"golang", "golang"},
		{"Web Dev", "web-dev"},
	}
	for _, tt := range tests {
		if got := TagSlug(tt.in); got != tt.want {
			t.Errorf("TagSlug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
