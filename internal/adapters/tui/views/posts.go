package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"folio/internal/adapters/tui/styles"
	"folio/internal/application"
	"folio/internal/application/commands"
	"folio/internal/ports"
)

// PostsKeyMap defines key bindings for the post list
type PostsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Open     key.Binding
	Search   key.Binding
	Tags     key.Binding
	Copy     key.Binding
	Edit     key.Binding
	Browser  key.Binding
	Reload   key.Binding
	Clear    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var PostsKeys = PostsKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right", "pgdown"),
		key.WithHelp("l/→", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("h", "left", "pgup"),
		key.WithHelp("h/←", "prev page"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Tags: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "tags"),
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
		key.WithHelp("o", "open in browser"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Clear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear filter"),
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

// PostsModel lists posts newest first, one page at a time, with an
// optional tag filter and inline search
type PostsModel struct {
	ViewState
	repo          ports.ContentRepository
	title         string
	includeDrafts bool

	all     []application.Entry
	visible []application.Entry
	loaded  bool

	tag       string
	query     string
	searching bool
	input     textinput.Model

	pager *Paginator
}

// NewPostsModel creates the post list. pageSize comes from site.posts_per_page.
func NewPostsModel(repo ports.ContentRepository, title string, pageSize int, includeDrafts bool) *PostsModel {
	input := textinput.New()
	input.Placeholder = "Search posts..."
	input.Prompt = "/ "

	return &PostsModel{
		repo:          repo,
		title:         title,
		includeDrafts: includeDrafts,
		input:         input,
		pager:         NewPaginator(pageSize),
	}
}

// Init loads the posts
func (m *PostsModel) Init() tea.Cmd {
	return m.load
}

// Reload re-reads the content tree
func (m *PostsModel) Reload() tea.Cmd {
	return m.load
}

func (m *PostsModel) load() tea.Msg {
	entries, err := commands.NewListAllCommand(m.repo, m.includeDrafts).Execute(context.Background())
	if err != nil {
		return errMsg{err}
	}
	return postsLoadedMsg{entries}
}

// SetTag filters the list to posts carrying tag; empty clears the filter
func (m *PostsModel) SetTag(tag string) {
	m.tag = tag
	m.query = ""
	m.input.SetValue("")
	m.pager.Reset()
	m.refilter()
}

// Tag returns the active tag filter
func (m *PostsModel) Tag() string {
	return m.tag
}

// Entries returns every loaded post, unfiltered
func (m *PostsModel) Entries() []application.Entry {
	return m.all
}

// Selected returns the post under the cursor
func (m *PostsModel) Selected() (application.Entry, bool) {
	i := m.pager.Cursor()
	if i < 0 || i >= len(m.visible) {
		return application.Entry{}, false
	}
	return m.visible[i], true
}

// Select moves the cursor to slug if it is visible
func (m *PostsModel) Select(slug string) {
	for i, e := range m.visible {
		if e.Slug == slug {
			m.pager.SetCursor(i)
			return
		}
	}
}

func (m *PostsModel) refilter() {
	base := m.all
	if m.tag != "" {
		base = application.FilterByTag(base, m.tag)
	}

	if q := strings.TrimSpace(m.query); len(q) >= 2 {
		results := commands.Search(base, q)
		base = make([]application.Entry, len(results))
		for i, r := range results {
			base[i] = r.Entry
		}
	}

	m.visible = base
	m.pager.SetTotal(len(base))
}

// Update handles messages for the post list
func (m *PostsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case postsLoadedMsg:
		m.all = msg.entries
		m.loaded = true
		m.refilter()
		return m, nil

	case errMsg:
		m.loaded = true
		m.SetError(msg.err)
		return m, nil

	case FlashMsg:
		m.SetMessage(msg.Text, msg.IsErr)
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		m.ClearMessage()
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *PostsModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.input.Blur()
		m.input.SetValue("")
		m.query = ""
		m.pager.Reset()
		m.refilter()
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.query {
		m.query = m.input.Value()
		m.pager.Reset()
		m.refilter()
	}
	return m, cmd
}

func (m *PostsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, PostsKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, PostsKeys.Up):
		m.pager.CursorUp()

	case key.Matches(msg, PostsKeys.Down):
		m.pager.CursorDown()

	case key.Matches(msg, PostsKeys.NextPage):
		m.pager.NextPage()

	case key.Matches(msg, PostsKeys.PrevPage):
		m.pager.PrevPage()

	case key.Matches(msg, PostsKeys.Search):
		m.searching = true
		m.input.SetValue(m.query)
		return m, m.input.Focus()

	case key.Matches(msg, PostsKeys.Clear):
		if m.query != "" {
			m.query = ""
			m.input.SetValue("")
			m.pager.Reset()
			m.refilter()
		} else if m.tag != "" {
			m.SetTag("")
		}

	case key.Matches(msg, PostsKeys.Reload):
		return m, m.Reload()

	case key.Matches(msg, PostsKeys.Tags):
		return m, send(SwitchToTagsMsg{})

	case key.Matches(msg, PostsKeys.Help):
		return m, send(SwitchToHelpMsg{})

	case key.Matches(msg, PostsKeys.Open):
		if e, ok := m.Selected(); ok {
			return m, send(SwitchToPostMsg{Slug: e.Slug})
		}

	case key.Matches(msg, PostsKeys.Copy):
		if e, ok := m.Selected(); ok {
			return m, send(CopyURLMsg{Slug: e.Slug})
		}

	case key.Matches(msg, PostsKeys.Edit):
		if e, ok := m.Selected(); ok {
			return m, send(OpenEditorMsg{Path: e.FilePath})
		}

	case key.Matches(msg, PostsKeys.Browser):
		if e, ok := m.Selected(); ok {
			return m, send(OpenBrowserMsg{Slug: e.Slug})
		}
	}

	return m, nil
}

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// View renders the post list
func (m *PostsModel) View() string {
	if !m.loaded {
		return styles.App.Render("Loading...")
	}

	v := NewViewBuilder().Title(m.title)

	switch {
	case m.tag != "":
		v.Subtitle(fmt.Sprintf("Posts tagged %s (%d)", TagHeading(m.tag), len(m.visible)))
	default:
		v.Subtitle(fmt.Sprintf("%d posts", len(m.visible)))
	}

	if m.searching || m.query != "" {
		v.Line(styles.InputFocused.Render(m.input.View())).BlankLine()
	}

	if len(m.visible) == 0 {
		if m.query != "" {
			v.Muted("No results found")
		} else {
			v.Muted("No posts")
		}
	} else {
		start, end := m.pager.VisibleRange()
		for i := start; i < end; i++ {
			v.Line(RenderEntryLine(m.visible[i], i == m.pager.Cursor(), m.query))
		}
		v.BlankLine().Line(RenderStatusBar(m.pager.Label(), m.statusDetail()))
	}

	v.Message(m.Message, m.MessageErr)

	if m.searching {
		return v.Help(SearchKeys.Confirm, SearchKeys.Cancel).String()
	}
	return v.Help(
		PostsKeys.Down, PostsKeys.NextPage, PostsKeys.Open, PostsKeys.Search,
		PostsKeys.Tags, PostsKeys.Copy, PostsKeys.Help, PostsKeys.Quit,
	).String()
}

func (m *PostsModel) statusDetail() string {
	var parts []string
	if m.tag != "" {
		parts = append(parts, "#"+application.TagSlug(m.tag))
	}
	if q := strings.TrimSpace(m.query); q != "" {
		parts = append(parts, fmt.Sprintf("%q", q))
	}
	return strings.Join(parts, " ")
}

// SearchKeyMap describes the keys active while typing a query
type SearchKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

var SearchKeys = SearchKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "keep results"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}
