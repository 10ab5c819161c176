package commands

import (
	"context"

	"folio/internal/application"
	"folio/internal/domain"
	"folio/internal/ports"
)

// ListTagsCommand lists the tags of published posts with their counts
type ListTagsCommand struct {
	repo ports.ContentRepository
}

// NewListTagsCommand creates a new ListTagsCommand
func NewListTagsCommand(repo ports.ContentRepository) *ListTagsCommand {
	return &ListTagsCommand{repo: repo}
}

// Execute runs the list tags command. Results are sorted by tag.
func (c *ListTagsCommand) Execute(ctx context.Context) ([]domain.TagCount, error) {
	idx, err := loadIndex(ctx, c.repo, false)
	if err != nil {
		return nil, err
	}
	return domain.TagCountList(idx.Entries()), nil
}

// TagView is one page of the posts carrying a tag
type TagView struct {
	Tag  string      `json:"tag"`
	Slug string      `json:"slug"`
	Page domain.Page `json:"page"`
}

// TagPostsCommand lists published posts carrying a tag
type TagPostsCommand struct {
	repo     ports.ContentRepository
	Tag      string
	Page     int
	PageSize int
}

// NewTagPostsCommand creates a new TagPostsCommand
func NewTagPostsCommand(repo ports.ContentRepository, tag string, page, pageSize int) *TagPostsCommand {
	return &TagPostsCommand{
		repo:     repo,
		Tag:      tag,
		Page:     page,
		PageSize: pageSize,
	}
}

// Validate checks the tag and page
func (c *TagPostsCommand) Validate() error {
	if err := application.ValidateRequired("tag", c.Tag); err != nil {
		return err
	}
	if err := application.ValidatePage("page", c.Page); err != nil {
		return err
	}
	return application.ValidatePageSize("pageSize", c.PageSize)
}

// Execute runs the tag posts command. A tag no published post carries is not found.
func (c *TagPostsCommand) Execute(ctx context.Context) (*TagView, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	idx, err := loadIndex(ctx, c.repo, false)
	if err != nil {
		return nil, err
	}

	tagged := domain.FilterByTag(idx.Entries(), c.Tag)
	if len(tagged) == 0 {
		return nil, &domain.NotFoundError{Kind: "tag", Key: c.Tag}
	}

	page, err := domain.Paginate(tagged, c.Page, c.PageSize)
	if err != nil {
		return nil, err
	}

	// Display the tag as written on the first matching post
	display := c.Tag
	for _, t := range tagged[0].Tags {
		if domain.TagSlug(t) == domain.TagSlug(c.Tag) {
			display = t
			break
		}
	}

	return &TagView{Tag: display, Slug: domain.TagSlug(c.Tag), Page: page}, nil
}
