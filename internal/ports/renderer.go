package ports

import "folio/internal/domain"

// MarkdownRenderer turns post bodies into HTML and tables of contents
type MarkdownRenderer interface {
	HTML(body []byte) ([]byte, error)
	Toc(body []byte) []domain.Toc
}
