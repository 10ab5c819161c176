package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"folio/internal/adapters/tui/styles"
	"folio/internal/application"
)

var titleCaser = cases.Title(language.English)

// TagHeading title-cases a tag for headings ("machine-learning" -> "Machine-Learning")
func TagHeading(tag string) string {
	return titleCaser.String(tag)
}

// RenderKeyHelp formats a key binding as help text (key + description)
func RenderKeyHelp(b key.Binding) string {
	help := b.Help()
	return fmt.Sprintf("%s %s",
		styles.HelpKey.Render(help.Key),
		styles.HelpDesc.Render(help.Desc),
	)
}

// RenderHelpLine renders multiple key bindings as a help line separated by bullets
func RenderHelpLine(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		parts = append(parts, RenderKeyHelp(b))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage renders a message with appropriate styling based on isError
func RenderMessage(message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

// RenderTags renders tags as "#go #testing"
func RenderTags(tags []string) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = styles.Tag.Render("#" + application.TagSlug(t))
	}
	return strings.Join(parts, " ")
}

// RenderEntryLine renders one post row: date, title, reading time and tags.
// The first case-insensitive occurrence of query in the title is highlighted.
func RenderEntryLine(e application.Entry, selected bool, query string) string {
	title := e.Title
	if e.Draft {
		title += " (draft)"
	}

	if selected {
		return styles.PostSelected.Render(fmt.Sprintf("%s  %s", e.Date, title))
	}

	titleStyle := styles.PostTitle
	if e.Draft {
		titleStyle = styles.Draft
	}
	line := styles.PostDate.Render(e.Date.String()) + "  " + highlight(title, query, titleStyle)
	line += "  " + styles.MutedText.Render(e.ReadingTime.Text)
	if len(e.Tags) > 0 {
		line += "  " + RenderTags(e.Tags)
	}
	return line
}

func highlight(text, query string, base lipgloss.Style) string {
	q := strings.TrimSpace(query)
	if q == "" {
		return base.Render(text)
	}
	i := strings.Index(strings.ToLower(text), strings.ToLower(q))
	// Lowercasing can change byte lengths outside ASCII
	if i < 0 || len(strings.ToLower(text)) != len(text) {
		return base.Render(text)
	}
	end := i + len(q)
	return base.Render(text[:i]) + styles.SearchMatch.Render(text[i:end]) + base.Render(text[end:])
}

// RenderStatusBar renders a one-line status bar: left-aligned label, muted detail
func RenderStatusBar(label, detail string) string {
	out := styles.StatusBar.Render(label)
	if detail != "" {
		out += " " + styles.StatusText.Render(detail)
	}
	return out
}

// ViewBuilder helps construct view output with consistent formatting
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates a new view builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Title adds a title section
func (v *ViewBuilder) Title(title string) *ViewBuilder {
	v.b.WriteString(styles.Title.Render(title))
	v.b.WriteString("\n")
	return v
}

// Subtitle adds a subtitle section
func (v *ViewBuilder) Subtitle(subtitle string) *ViewBuilder {
	v.b.WriteString(styles.Subtitle.Render(subtitle))
	v.b.WriteString("\n\n")
	return v
}

// Section adds a section heading
func (v *ViewBuilder) Section(name string) *ViewBuilder {
	v.b.WriteString(styles.Section.Render(name))
	v.b.WriteString("\n")
	return v
}

// Line adds a line of text
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteString("\n")
	return v
}

// BlankLine adds a blank line
func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteString("\n")
	return v
}

// Muted adds muted text followed by a newline
func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	v.b.WriteString(styles.MutedText.Render(text))
	v.b.WriteString("\n")
	return v
}

// Message adds a message if non-empty, with appropriate error/success styling
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	v.b.WriteString("\n")
	v.b.WriteString(RenderMessage(message, isError))
	v.b.WriteString("\n")
	return v
}

// Help adds a help line with key bindings
func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	v.b.WriteString("\n")
	v.b.WriteString(RenderHelpLine(bindings...))
	return v
}

// String returns the built view string wrapped in the app style
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}
