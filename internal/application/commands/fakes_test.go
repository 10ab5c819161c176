package commands

import (
	"context"
	"fmt"
	"slices"
	"testing"

	"folio/internal/domain"
)

// fakeRepo is an in-memory ports.ContentRepository
type fakeRepo struct {
	entries []domain.Entry
	bodies  map[string]string
	err     error
	loads   int
}

func (f *fakeRepo) Root() string { return "/blog" }

func (f *fakeRepo) Scan(ctx context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	paths := make([]string, 0, len(f.entries))
	for _, e := range f.entries {
		paths = append(paths, e.FilePath)
	}
	slices.Sort(paths)
	return paths, nil
}

func (f *fakeRepo) LoadEntry(ctx context.Context, path string) (domain.Entry, error) {
	for _, e := range f.entries {
		if e.FilePath == path {
			return e, nil
		}
	}
	return domain.Entry{}, &domain.NotFoundError{Kind: "content file", Key: path}
}

func (f *fakeRepo) LoadIndex(ctx context.Context) ([]domain.Entry, error) {
	f.loads++
	if f.err != nil {
		return nil, f.err
	}
	out := slices.Clone(f.entries)
	domain.SortByDateDesc(out)
	return out, nil
}

func (f *fakeRepo) ReadSource(ctx context.Context, path string) ([]byte, error) {
	return f.ReadBody(ctx, path)
}

func (f *fakeRepo) ReadBody(ctx context.Context, path string) ([]byte, error) {
	body, ok := f.bodies[path]
	if !ok {
		return nil, &domain.NotFoundError{Kind: "content file", Key: path}
	}
	return []byte(body), nil
}

// fakeAuthors resolves from a fixed map
type fakeAuthors map[string]domain.Author

func (f fakeAuthors) ResolveAuthor(ctx context.Context, name string) (domain.Author, error) {
	a, ok := f[domain.AuthorKey(name)]
	if !ok {
		return domain.Author{}, &domain.NotFoundError{Kind: "author", Key: name}
	}
	return a, nil
}

func entry(t *testing.T, slug, date string, tags ...string) domain.Entry {
	t.Helper()
	d, err := domain.ParseDate(date)
	if err != nil {
		t.Fatalf("bad fixture date %s: %v", date, err)
	}
	if tags == nil {
		tags = []string{}
	}
	return domain.Entry{
		Title:    fmt.Sprintf("Post %s", slug),
		Slug:     slug,
		URL:      slug,
		FilePath: "/blog/" + slug + ".md",
		FileName: slug + ".md",
		Date:     d,
		Tags:     tags,
	}
}

func draft(e domain.Entry) domain.Entry {
	e.Draft = true
	return e
}
