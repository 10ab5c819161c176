package ports

import (
	"context"

	"folio/internal/domain"
)

// ContentRepository defines read access to the blog content tree
type ContentRepository interface {
	// Root returns the absolute content root
	Root() string

	// Scan lists the absolute paths of all content files
	Scan(ctx context.Context) ([]string, error)

	// LoadEntry parses one content file into an entry. Relative paths
	// resolve against Root.
	LoadEntry(ctx context.Context, path string) (domain.Entry, error)

	// LoadIndex builds entries for every content file, newest first.
	// Drafts are included; callers filter with domain.Published.
	LoadIndex(ctx context.Context) ([]domain.Entry, error)

	// ReadBody returns the markdown body of a content file without its front matter
	ReadBody(ctx context.Context, path string) ([]byte, error)

	// ReadSource returns the raw bytes of a content file, front matter included
	ReadSource(ctx context.Context, path string) ([]byte, error)
}

// AuthorResolver looks up author profiles referenced from front matter
type AuthorResolver interface {
	ResolveAuthor(ctx context.Context, name string) (domain.Author, error)
}
