package filesystem

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/frontmatter"

	"folio/internal/domain"
)

type authorFrontMatter struct {
	Name       string `yaml:"name"`
	Avatar     string `yaml:"avatar"`
	Occupation string `yaml:"occupation"`
	Company    string `yaml:"company"`
	Email      string `yaml:"email"`
	LinkedIn   string `yaml:"linkedin"`
	GitHub     string `yaml:"github"`
}

// ResolveAuthor reads <authors>/<key>.md, where key is the lowercased name
// with spaces replaced by underscores. A profile without a name keeps the
// name it was referenced by.
func (r *Repository) ResolveAuthor(ctx context.Context, name string) (domain.Author, error) {
	if err := ctx.Err(); err != nil {
		return domain.Author{}, err
	}
	key := domain.AuthorKey(name)
	if r.authorsDir == "" || key == "" {
		return domain.Author{}, &domain.NotFoundError{Kind: "author", Key: name}
	}

	path := filepath.Join(r.authorsDir, key+".md")
	source, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Author{}, &domain.NotFoundError{Kind: "author", Key: name}
		}
		return domain.Author{}, fmt.Errorf("failed to read author %s: %w", name, err)
	}

	var meta authorFrontMatter
	if _, err := frontmatter.Parse(bytes.NewReader(source), &meta); err != nil {
		return domain.Author{}, &domain.MalformedContentError{Path: path, Reason: err.Error()}
	}

	author := domain.Author{
		Key:        key,
		Name:       meta.Name,
		Avatar:     meta.Avatar,
		Occupation: meta.Occupation,
		Company:    meta.Company,
		Email:      meta.Email,
		LinkedIn:   meta.LinkedIn,
		GitHub:     meta.GitHub,
	}
	if author.Name == "" {
		author.Name = name
	}
	return author, nil
}
