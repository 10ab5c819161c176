package commands

import (
	"context"

	"folio/internal/application"
	"folio/internal/domain"
	"folio/internal/ports"
)

// loadIndex builds the index and applies the draft view
func loadIndex(ctx context.Context, repo ports.ContentRepository, includeDrafts bool) (*domain.Index, error) {
	entries, err := repo.LoadIndex(ctx)
	if err != nil {
		return nil, err
	}
	if !includeDrafts {
		entries = domain.Published(entries)
	}
	return domain.NewIndex(entries), nil
}

// ListPostsCommand lists one page of posts, newest first
type ListPostsCommand struct {
	repo          ports.ContentRepository
	Page          int
	PageSize      int
	IncludeDrafts bool
}

// NewListPostsCommand creates a new ListPostsCommand
func NewListPostsCommand(repo ports.ContentRepository, page, pageSize int) *ListPostsCommand {
	return &ListPostsCommand{
		repo:     repo,
		Page:     page,
		PageSize: pageSize,
	}
}

// Validate checks the requested page
func (c *ListPostsCommand) Validate() error {
	if err := application.ValidatePage("page", c.Page); err != nil {
		return err
	}
	return application.ValidatePageSize("pageSize", c.PageSize)
}

// Execute runs the list posts command
func (c *ListPostsCommand) Execute(ctx context.Context) (domain.Page, error) {
	if err := c.Validate(); err != nil {
		return domain.Page{}, err
	}

	idx, err := loadIndex(ctx, c.repo, c.IncludeDrafts)
	if err != nil {
		return domain.Page{}, err
	}

	return domain.Paginate(idx.Entries(), c.Page, c.PageSize)
}

// ListAllCommand returns every post without pagination
type ListAllCommand struct {
	repo          ports.ContentRepository
	IncludeDrafts bool
}

// NewListAllCommand creates a new ListAllCommand
func NewListAllCommand(repo ports.ContentRepository, includeDrafts bool) *ListAllCommand {
	return &ListAllCommand{repo: repo, IncludeDrafts: includeDrafts}
}

// Execute runs the list all command
func (c *ListAllCommand) Execute(ctx context.Context) ([]domain.Entry, error) {
	idx, err := loadIndex(ctx, c.repo, c.IncludeDrafts)
	if err != nil {
		return nil, err
	}
	return idx.Entries(), nil
}
