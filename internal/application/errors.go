package application

import (
	"fmt"

	"folio/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrNotFound         = domain.ErrNotFound
	ErrMalformedContent = domain.ErrMalformedContent
)

// Typed errors shared with adapters
type (
	NotFoundError         = domain.NotFoundError
	MalformedContentError = domain.MalformedContentError
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
