package domain

import (
	"slices"
	"strings"

	"github.com/goliatone/go-slug"
)

// TagCount pairs a tag with the number of published posts carrying it.
type TagCount struct {
	Tag   string `json:"tag"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// TagSlug returns the URL form of a tag ("Web Dev" -> "web-dev").
func TagSlug(tag string) string {
	if s, err := slug.Normalize(tag); err == nil && s != "" {
		return s
	}
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(tag)), " ", "-")
}

// Tags returns the distinct tags of non-draft entries, sorted.
// Tags are compared exactly; "Go" and "go" are different tags.
func Tags(entries []Entry) []string {
	seen := make(map[string]struct{})
	for _, e := range entries {
		if e.Draft {
			continue
		}
		for _, t := range e.Tags {
			seen[t] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// TagCounts counts published posts per tag slug. A post tagged both
// "Go" and "go" counts once.
func TagCounts(entries []Entry) map[string]int {
	counts := make(map[string]int)
	for _, e := range entries {
		if e.Draft {
			continue
		}
		seen := make(map[string]struct{}, len(e.Tags))
		for _, t := range e.Tags {
			s := TagSlug(t)
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			counts[s]++
		}
	}
	return counts
}

// TagCountList groups the tags of published entries by slug, sorted by tag.
// Each group is displayed as written on the first entry carrying it, so
// with newest-first input it matches the tag view.
func TagCountList(entries []Entry) []TagCount {
	counts := TagCounts(entries)
	out := make([]TagCount, 0, len(counts))
	seen := make(map[string]struct{}, len(counts))
	for _, e := range entries {
		if e.Draft {
			continue
		}
		for _, t := range e.Tags {
			s := TagSlug(t)
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, TagCount{Tag: t, Slug: s, Count: counts[s]})
		}
	}
	slices.SortFunc(out, func(a, b TagCount) int {
		if c := strings.Compare(a.Tag, b.Tag); c != 0 {
			return c
		}
		return strings.Compare(a.Slug, b.Slug)
	})
	return out
}

// ByCount orders tag counts most used first, ties by tag.
func ByCount(counts []TagCount) {
	slices.SortStableFunc(counts, func(a, b TagCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Tag, b.Tag)
	})
}

// FilterByTag keeps the published entries tagged with tag, matched by slug form.
func FilterByTag(entries []Entry, tag string) []Entry {
	var out []Entry
	for _, e := range entries {
		if !e.Draft && e.HasTag(tag) {
			out = append(out, e)
		}
	}
	return out
}
