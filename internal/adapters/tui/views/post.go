package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"folio/internal/adapters/tui/styles"
	"folio/internal/application/commands"
	"folio/internal/ports"
)

// PostKeyMap defines key bindings for the post detail view
type PostKeyMap struct {
	Prev    key.Binding
	Next    key.Binding
	Copy    key.Binding
	Edit    key.Binding
	Browser key.Binding
	Back    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var PostKeys = PostKeyMap{
	Prev: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "newer"),
	),
	Next: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "older"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy url"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Browser: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "browser"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "backspace"),
		key.WithHelp("esc", "back"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type postLoadedMsg struct {
	detail *commands.PostDetail
}

// PostModel shows one post with its authors, contents and neighbours
type PostModel struct {
	ViewState
	repo          ports.ContentRepository
	authors       ports.AuthorResolver
	renderer      ports.MarkdownRenderer
	includeDrafts bool

	detail *commands.PostDetail
}

// NewPostModel creates the detail view. authors and renderer may be nil.
func NewPostModel(repo ports.ContentRepository, authors ports.AuthorResolver, renderer ports.MarkdownRenderer, includeDrafts bool) *PostModel {
	return &PostModel{
		repo:          repo,
		authors:       authors,
		renderer:      renderer,
		includeDrafts: includeDrafts,
	}
}

// Load fetches slug
func (m *PostModel) Load(slug string) tea.Cmd {
	m.ClearMessage()
	return func() tea.Msg {
		cmd := commands.NewShowPostCommand(m.repo, m.authors, m.renderer, slug)
		cmd.IncludeDrafts = m.includeDrafts
		detail, err := cmd.Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return postLoadedMsg{detail}
	}
}

// Slug returns the slug of the post on screen
func (m *PostModel) Slug() string {
	if m.detail == nil {
		return ""
	}
	return m.detail.Entry.Slug
}

// Init satisfies tea.Model
func (m *PostModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the post detail view
func (m *PostModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case postLoadedMsg:
		m.detail = msg.detail
		return m, nil

	case errMsg:
		m.SetError(msg.err)
		return m, nil

	case FlashMsg:
		m.SetMessage(msg.Text, msg.IsErr)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()
		switch {
		case key.Matches(msg, PostKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, PostKeys.Back):
			return m, send(BackMsg{})
		case key.Matches(msg, PostKeys.Help):
			return m, send(SwitchToHelpMsg{})
		}

		if m.detail == nil {
			return m, nil
		}
		e := m.detail.Entry
		nav := m.detail.Navigation

		switch {
		case key.Matches(msg, PostKeys.Prev):
			if nav.Prev == nil {
				m.SetMessage("No newer post", false)
				return m, nil
			}
			return m, send(SwitchToPostMsg{Slug: nav.Prev.Slug})
		case key.Matches(msg, PostKeys.Next):
			if nav.Next == nil {
				m.SetMessage("No older post", false)
				return m, nil
			}
			return m, send(SwitchToPostMsg{Slug: nav.Next.Slug})
		case key.Matches(msg, PostKeys.Copy):
			return m, send(CopyURLMsg{Slug: e.Slug})
		case key.Matches(msg, PostKeys.Edit):
			return m, send(OpenEditorMsg{Path: e.FilePath})
		case key.Matches(msg, PostKeys.Browser):
			return m, send(OpenBrowserMsg{Slug: e.Slug})
		}
	}

	return m, nil
}

// View renders the post detail view
func (m *PostModel) View() string {
	if m.detail == nil {
		if m.Message != "" {
			return NewViewBuilder().Message(m.Message, m.MessageErr).Help(PostKeys.Back, PostKeys.Quit).String()
		}
		return styles.App.Render("Loading...")
	}

	d := m.detail
	e := d.Entry
	v := NewViewBuilder().Title(e.Title)

	meta := []string{e.Date.Long(), e.ReadingTime.Text}
	if e.LastMod != nil {
		meta = append(meta, "updated "+e.LastMod.Long())
	}
	if e.Draft {
		meta = append(meta, styles.Draft.Render("draft"))
	}
	v.Subtitle(strings.Join(meta, " · "))

	if len(d.Authors) > 0 {
		names := make([]string, len(d.Authors))
		for i, a := range d.Authors {
			names[i] = a.Name
			if a.Occupation != "" {
				names[i] += styles.MutedText.Render(" (" + a.Occupation + ")")
			}
		}
		v.Line("By " + strings.Join(names, ", "))
	}
	if len(e.Tags) > 0 {
		v.Line(RenderTags(e.Tags))
	}
	v.Muted(e.URL)

	if e.Summary != "" {
		v.BlankLine().Line(styles.Summary.Render(e.Summary))
	}

	if len(d.Toc) > 0 {
		v.BlankLine().Section("Contents")
		for _, h := range d.Toc {
			v.Line(strings.Repeat("  ", max(h.Depth-1, 1)) + h.Value)
		}
	}

	v.BlankLine()
	if p := d.Navigation.Prev; p != nil {
		v.Line(fmt.Sprintf("%s %s", styles.HelpKey.Render("["), styles.NavLink.Render(p.Title)))
	}
	if n := d.Navigation.Next; n != nil {
		v.Line(fmt.Sprintf("%s %s", styles.HelpKey.Render("]"), styles.NavLink.Render(n.Title)))
	}

	v.Message(m.Message, m.MessageErr)

	return v.Help(
		PostKeys.Prev, PostKeys.Next, PostKeys.Copy, PostKeys.Edit,
		PostKeys.Browser, PostKeys.Back,
	).String()
}
