package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"folio/internal/application"
	"folio/internal/domain"
	"folio/internal/ports"
)

// PostDetail is everything a post page shows
type PostDetail struct {
	Entry      domain.Entry      `json:"entry"`
	Navigation domain.Navigation `json:"navigation"`
	Authors    []domain.Author   `json:"authors"`
	Toc        []domain.Toc      `json:"toc"`
	Body       string            `json:"body,omitempty"`
	HTML       string            `json:"html,omitempty"`
}

// ShowPostCommand loads a post with its neighbours, authors and table of contents
type ShowPostCommand struct {
	repo          ports.ContentRepository
	authors       ports.AuthorResolver
	renderer      ports.MarkdownRenderer
	Slug          string
	IncludeDrafts bool
	WithBody      bool
	WithHTML      bool
}

// NewShowPostCommand creates a new ShowPostCommand. authors and renderer may be nil.
func NewShowPostCommand(repo ports.ContentRepository, authors ports.AuthorResolver, renderer ports.MarkdownRenderer, slug string) *ShowPostCommand {
	return &ShowPostCommand{
		repo:     repo,
		authors:  authors,
		renderer: renderer,
		Slug:     slug,
	}
}

// NormalizeSlug trims slashes and a leading "blog/" so URLs can be pasted as slugs
func NormalizeSlug(slug string) string {
	slug = strings.Trim(strings.TrimSpace(slug), "/")
	return strings.TrimPrefix(slug, "blog/")
}

// Validate checks the slug
func (c *ShowPostCommand) Validate() error {
	return application.ValidateRequired("slug", NormalizeSlug(c.Slug))
}

// Execute runs the show post command
func (c *ShowPostCommand) Execute(ctx context.Context) (*PostDetail, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	slug := NormalizeSlug(c.Slug)

	idx, err := loadIndex(ctx, c.repo, c.IncludeDrafts)
	if err != nil {
		return nil, err
	}

	entry, ok := idx.Lookup(slug)
	if !ok {
		return nil, &domain.NotFoundError{Kind: "slug", Key: slug}
	}
	nav, err := idx.Navigate(slug)
	if err != nil {
		return nil, err
	}

	detail := &PostDetail{Entry: entry, Navigation: nav}

	if c.authors != nil {
		detail.Authors, err = ResolveAuthors(ctx, c.authors, entry.Authors)
		if err != nil {
			return nil, err
		}
	}

	if c.renderer != nil || c.WithBody {
		body, err := c.repo.ReadBody(ctx, entry.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read body of %s: %w", slug, err)
		}
		if c.WithBody {
			detail.Body = string(body)
		}
		if c.renderer != nil {
			detail.Toc = c.renderer.Toc(body)
			if c.WithHTML {
				html, err := c.renderer.HTML(body)
				if err != nil {
					return nil, err
				}
				detail.HTML = string(html)
			}
		}
	}

	return detail, nil
}

// ResolveAuthors resolves each author name to its profile. A named author
// without a profile is a NotFound error. A post without authors gets the
// "default" profile if one exists.
func ResolveAuthors(ctx context.Context, resolver ports.AuthorResolver, names []string) ([]domain.Author, error) {
	if len(names) == 0 {
		a, err := resolver.ResolveAuthor(ctx, "default")
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return []domain.Author{a}, nil
	}

	authors := make([]domain.Author, 0, len(names))
	for _, n := range names {
		a, err := resolver.ResolveAuthor(ctx, n)
		if err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}
	return authors, nil
}
