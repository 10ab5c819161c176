// Package markdown renders post bodies and extracts their table of contents.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"folio/internal/domain"
)

// Engine wraps a goldmark instance configured for blog posts. It is safe for
// concurrent use.
type Engine struct {
	md goldmark.Markdown
}

// New returns an engine with GFM, footnotes and auto heading IDs enabled.
func New() *Engine {
	return &Engine{md: goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Footnote),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)}
}

// HTML renders body to HTML.
func (e *Engine) HTML(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.md.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}
	return buf.Bytes(), nil
}

// Toc lists the headings of body in document order. URL is the "#id"
// anchor goldmark assigns to the heading.
func (e *Engine) Toc(body []byte) []domain.Toc {
	doc := e.md.Parser().Parse(text.NewReader(body))

	var toc []domain.Toc
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		item := domain.Toc{Value: headingText(h, body), Depth: h.Level}
		if id, ok := h.AttributeString("id"); ok {
			switch v := id.(type) {
			case []byte:
				item.URL = "#" + string(v)
			case string:
				item.URL = "#" + v
			}
		}
		toc = append(toc, item)
		return ast.WalkSkipChildren, nil
	})
	return toc
}

func headingText(h ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(h, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
