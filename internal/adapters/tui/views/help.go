package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"folio/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init satisfies tea.Model
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, send(BackMsg{})
		}
	}
	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("folio help"))
	b.WriteString("\n")

	section(&b, "Posts",
		"j / k / ↑ / ↓", "Move up/down",
		"h / l / ← / →", "Previous/next page",
		"Enter", "Open post",
		"/", "Search titles, summaries and tags",
		"t", "Browse tags",
		"Esc", "Clear search or tag filter",
		"r", "Reload content",
	)
	section(&b, "Post",
		"[ / ]", "Newer/older post",
		"Esc", "Back to list",
	)
	section(&b, "Anywhere",
		"y", "Copy post URL",
		"e", "Edit post source in $EDITOR",
		"o", "Open post in web browser",
		"?", "Toggle help",
		"q / Ctrl+C", "Quit",
	)

	b.WriteString("\n")
	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func section(b *strings.Builder, name string, pairs ...string) {
	b.WriteString("\n")
	b.WriteString(styles.InputLabel.Render(name))
	b.WriteString("\n")
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(helpLine(pairs[i], pairs[i+1]))
	}
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if n := len([]rune(s)); n < length {
		return s + strings.Repeat(" ", length-n)
	}
	return s
}
