package domain

import (
	"slices"
	"strings"
	"time"
)

// Navigation holds the neighbours of a post in date-descending order.
// Prev is the newer neighbour, Next the older one; either may be nil.
type Navigation struct {
	Prev *Entry `json:"prev"`
	Next *Entry `json:"next"`
}

// SortByDateDesc orders entries newest first. Equal dates fall back to slug
// ascending so the order is stable across scans.
func SortByDateDesc(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if c := b.Date.Compare(a.Date.Time); c != 0 {
			return c
		}
		return strings.Compare(a.Slug, b.Slug)
	})
}

// Published filters out drafts, preserving order.
func Published(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !e.Draft {
			out = append(out, e)
		}
	}
	return out
}

// Navigate finds slug in a sorted entry list and returns its neighbours.
func Navigate(entries []Entry, slug string) (Navigation, error) {
	for i := range entries {
		if entries[i].Slug == slug {
			return neighbours(entries, i), nil
		}
	}
	return Navigation{}, &NotFoundError{Kind: "slug", Key: slug}
}

func neighbours(entries []Entry, i int) Navigation {
	var nav Navigation
	if i > 0 {
		prev := entries[i-1]
		nav.Prev = &prev
	}
	if i < len(entries)-1 {
		next := entries[i+1]
		nav.Next = &next
	}
	return nav
}

// Index is an immutable, sorted view over a set of entries with slug lookup.
type Index struct {
	entries []Entry
	bySlug  map[string]int
	BuiltAt time.Time
}

// NewIndex copies and sorts entries.
func NewIndex(entries []Entry) *Index {
	sorted := slices.Clone(entries)
	SortByDateDesc(sorted)
	bySlug := make(map[string]int, len(sorted))
	for i, e := range sorted {
		bySlug[e.Slug] = i
	}
	return &Index{entries: sorted, bySlug: bySlug, BuiltAt: time.Now()}
}

// Entries returns the sorted entries. Callers must not modify the slice.
func (x *Index) Entries() []Entry {
	return x.entries
}

// Len returns the number of entries including drafts.
func (x *Index) Len() int {
	return len(x.entries)
}

// Lookup returns the entry for slug.
func (x *Index) Lookup(slug string) (Entry, bool) {
	i, ok := x.bySlug[slug]
	if !ok {
		return Entry{}, false
	}
	return x.entries[i], true
}

// Navigate is Navigate with a map lookup instead of a scan.
func (x *Index) Navigate(slug string) (Navigation, error) {
	i, ok := x.bySlug[slug]
	if !ok {
		return Navigation{}, &NotFoundError{Kind: "slug", Key: slug}
	}
	return neighbours(x.entries, i), nil
}

// Published returns a new index without drafts.
func (x *Index) Published() *Index {
	return NewIndex(Published(x.entries))
}

// SyncStats holds statistics from a cache sync
type SyncStats struct {
	EntriesAdded   int
	EntriesUpdated int
	EntriesDeleted int
	EntriesReused  int
	FilesScanned   int
	Skipped        int
	Duration       time.Duration
}
