package application

import (
	"fmt"
	"strings"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// ValidatePage checks a 1-based page number
func ValidatePage(fieldName string, page int) error {
	if page < 1 {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must be at least 1, got: %d", formatFieldName(fieldName), page),
		}
	}
	return nil
}

// ValidatePageSize accepts zero (use the default) or a positive size
func ValidatePageSize(fieldName string, size int) error {
	if size < 0 {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s cannot be negative, got: %d", formatFieldName(fieldName), size),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "pageSize" -> "page size")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"pageSize": "page size",
		"slug":     "slug",
		"tag":      "tag",
		"query":    "search query",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}
