package views

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"folio/internal/adapters/tui/styles"
	"folio/internal/application"
	"folio/internal/application/commands"
	"folio/internal/ports"
)

// TagsKeyMap defines key bindings for the tag list
type TagsKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Open key.Binding
	Sort key.Binding
	Back key.Binding
	Quit key.Binding
}

var TagsKeys = TagsKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "show posts"),
	),
	Sort: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sort by name/count"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "t"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type tagsLoadedMsg struct {
	tags []application.TagCount
}

// TagsModel lists published tags with their post counts
type TagsModel struct {
	ViewState
	repo    ports.ContentRepository
	tags    []application.TagCount
	byCount bool
	loaded  bool
	pager   *Paginator
}

// NewTagsModel creates the tag list
func NewTagsModel(repo ports.ContentRepository) *TagsModel {
	return &TagsModel{
		repo:  repo,
		pager: NewPaginator(15),
	}
}

// Load reads tag counts
func (m *TagsModel) Load() tea.Cmd {
	return func() tea.Msg {
		tags, err := commands.NewListTagsCommand(m.repo).Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return tagsLoadedMsg{tags}
	}
}

// Selected returns the tag under the cursor
func (m *TagsModel) Selected() (application.TagCount, bool) {
	i := m.pager.Cursor()
	if i < 0 || i >= len(m.tags) {
		return application.TagCount{}, false
	}
	return m.tags[i], true
}

func (m *TagsModel) sort() {
	if m.byCount {
		application.ByCount(m.tags)
		return
	}
	slices.SortFunc(m.tags, func(a, b application.TagCount) int {
		return strings.Compare(a.Tag, b.Tag)
	})
}

// Init satisfies tea.Model
func (m *TagsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the tag list
func (m *TagsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tagsLoadedMsg:
		m.tags = msg.tags
		m.loaded = true
		m.sort()
		m.pager.SetTotal(len(m.tags))
		return m, nil

	case errMsg:
		m.loaded = true
		m.SetError(msg.err)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()
		switch {
		case key.Matches(msg, TagsKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, TagsKeys.Back):
			return m, send(BackMsg{})
		case key.Matches(msg, TagsKeys.Up):
			m.pager.CursorUp()
		case key.Matches(msg, TagsKeys.Down):
			m.pager.CursorDown()
		case key.Matches(msg, TagsKeys.Sort):
			selected, ok := m.Selected()
			m.byCount = !m.byCount
			m.sort()
			if ok {
				for i, t := range m.tags {
					if t.Tag == selected.Tag {
						m.pager.SetCursor(i)
						break
					}
				}
			}
		case key.Matches(msg, TagsKeys.Open):
			if t, ok := m.Selected(); ok {
				return m, send(SwitchToPostsMsg{Tag: t.Tag})
			}
		}
	}

	return m, nil
}

// View renders the tag list
func (m *TagsModel) View() string {
	if !m.loaded {
		return styles.App.Render("Loading...")
	}

	order := "by name"
	if m.byCount {
		order = "by count"
	}
	v := NewViewBuilder().Title("Tags").Subtitle(fmt.Sprintf("%d tags, %s", len(m.tags), order))

	if len(m.tags) == 0 {
		v.Muted("No tags")
	} else {
		start, end := m.pager.VisibleRange()
		for i := start; i < end; i++ {
			t := m.tags[i]
			text := fmt.Sprintf("%-24s %3d", TagHeading(t.Tag), t.Count)
			if i == m.pager.Cursor() {
				v.Line(styles.PostSelected.Render(text))
			} else {
				v.Line(styles.Tag.Render(text))
			}
		}
		if m.pager.TotalPages() > 1 {
			v.BlankLine().Muted(m.pager.Label())
		}
	}

	v.Message(m.Message, m.MessageErr)
	return v.Help(TagsKeys.Down, TagsKeys.Open, TagsKeys.Sort, TagsKeys.Back, TagsKeys.Quit).String()
}
