package domain

import (
	"errors"
	"fmt"
	"testing"
)

func entriesN(n int) []Entry {
	out := make([]Entry, n)
	for i := range out {
		out[i] = Entry{Slug: fmt.Sprintf("post-%02d", i)}
	}
	return out
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 5, 0},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{12, 5, 3},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.size); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.size, got, tt.want)
		}
	}
}

func TestPaginate(t *testing.T) {
	entries := entriesN(12)

	t.Run("last page is partial", func(t *testing.T) {
		p, err := Paginate(entries, 3, 5)
		if err != nil {
			t.Fatalf("Paginate failed: %v", err)
		}
		if len(p.Posts) != 2 {
			t.Errorf("expected 2 posts, got %d", len(p.Posts))
		}
		if p.TotalPages != 3 || p.HasNext() || !p.HasPrev() {
			t.Errorf("unexpected page metadata: %+v", p)
		}
	})

	t.Run("default page size", func(t *testing.T) {
		p, err := Paginate(entries, 1, 0)
		if err != nil {
			t.Fatalf("Paginate failed: %v", err)
		}
		if p.PageSize != PostsPerPage || len(p.Posts) != PostsPerPage {
			t.Errorf("expected %d posts, got %d", PostsPerPage, len(p.Posts))
		}
	})

	t.Run("out of range", func(t *testing.T) {
		for _, page := range []int{0, 4, -1} {
			if _, err := Paginate(entries, page, 5); !errors.Is(err, ErrNotFound) {
				t.Errorf("page %d: expected ErrNotFound, got %v", page, err)
			}
		}
	})

	t.Run("empty listing", func(t *testing.T) {
		p, err := Paginate(nil, 1, 5)
		if err != nil {
			t.Fatalf("Paginate failed: %v", err)
		}
		if p.TotalPages != 0 || len(p.Posts) != 0 {
			t.Errorf("expected empty page, got %+v", p)
		}
	})
}
