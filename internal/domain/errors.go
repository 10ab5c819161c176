package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the content pipeline
var (
	ErrNotFound         = errors.New("not found")
	ErrMalformedContent = errors.New("malformed content")
)

// NotFoundError reports a missing content root, slug, tag or page
type NotFoundError struct {
	Kind string // "content root", "slug", "tag", "page", "author"
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// MalformedContentError reports a content file whose front matter cannot be indexed
type MalformedContentError struct {
	Path   string
	Field  string
	Reason string
}

func (e *MalformedContentError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed content %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("malformed content %s: %s %s", e.Path, e.Field, e.Reason)
}

func (e *MalformedContentError) Is(target error) bool {
	return target == ErrMalformedContent
}
