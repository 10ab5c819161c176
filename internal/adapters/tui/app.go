package tui

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"folio/internal/adapters/tui/views"
	"folio/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewPosts ViewState = iota
	ViewPost
	ViewTags
	ViewHelp
)

// Options configures the browser
type Options struct {
	Title         string
	PageSize      int
	IncludeDrafts bool
}

// writeClipboard is replaced in tests
var writeClipboard = clipboard.WriteAll

// App is the main TUI application model
type App struct {
	editor  ports.EditorOpener
	browser ports.BrowserOpener

	state    ViewState
	previous ViewState
	posts    *views.PostsModel
	post     *views.PostModel
	tags     *views.TagsModel
	help     *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application. authors, renderer, ed and br may be nil.
func NewApp(repo ports.ContentRepository, authors ports.AuthorResolver, renderer ports.MarkdownRenderer,
	ed ports.EditorOpener, br ports.BrowserOpener, opts Options) *App {
	if opts.Title == "" {
		opts.Title = "folio"
	}
	return &App{
		editor:  ed,
		browser: br,
		state:   ViewPosts,
		posts:   views.NewPostsModel(repo, opts.Title, opts.PageSize, opts.IncludeDrafts),
		post:    views.NewPostModel(repo, authors, renderer, opts.IncludeDrafts),
		tags:    views.NewTagsModel(repo),
		help:    views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.posts.Init()
}

// State returns the active view
func (a *App) State() ViewState {
	return a.state
}

func (a *App) switchTo(s ViewState) {
	if a.state != s {
		a.previous = a.state
	}
	a.state = s
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.posts.SetSize(msg.Width, msg.Height)
		a.post.SetSize(msg.Width, msg.Height)
		a.tags.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToPostsMsg:
		a.posts.SetTag(msg.Tag)
		a.switchTo(ViewPosts)
		return a, nil

	case views.SwitchToPostMsg:
		a.switchTo(ViewPost)
		return a, a.post.Load(msg.Slug)

	case views.SwitchToTagsMsg:
		a.switchTo(ViewTags)
		return a, a.tags.Load()

	case views.SwitchToHelpMsg:
		a.switchTo(ViewHelp)
		return a, nil

	case views.BackMsg:
		return a, a.back()

	// Actions
	case views.CopyURLMsg:
		return a, a.copyURL(msg.Slug)

	case views.OpenBrowserMsg:
		return a, a.openBrowser(msg.Slug)

	case views.OpenEditorMsg:
		return a, a.openEditor(msg.Path)

	case editorFinishedMsg:
		if msg.err != nil {
			return a.delegate(views.FlashMsg{Text: msg.err.Error(), IsErr: true})
		}
		cmds := []tea.Cmd{a.posts.Reload()}
		if a.state == ViewPost {
			cmds = append(cmds, a.post.Load(a.post.Slug()))
		}
		return a, tea.Batch(cmds...)
	}

	return a.delegate(msg)
}

// delegate passes msg to the current view
func (a *App) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.state {
	case ViewPosts:
		_, cmd = a.posts.Update(msg)
	case ViewPost:
		_, cmd = a.post.Update(msg)
	case ViewTags:
		_, cmd = a.tags.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}
	return a, cmd
}

func (a *App) back() tea.Cmd {
	switch a.state {
	case ViewHelp:
		a.state = a.previous
	case ViewPost:
		a.posts.Select(a.post.Slug())
		a.state = ViewPosts
	default:
		a.state = ViewPosts
	}
	return nil
}

func (a *App) postURL(slug string) string {
	if a.browser == nil {
		return "/blog/" + slug
	}
	return a.browser.URL(slug)
}

func (a *App) copyURL(slug string) tea.Cmd {
	url := a.postURL(slug)
	return func() tea.Msg {
		if err := writeClipboard(url); err != nil {
			return views.FlashMsg{Text: "clipboard: " + err.Error(), IsErr: true}
		}
		return views.FlashMsg{Text: "Copied " + url}
	}
}

func (a *App) openBrowser(slug string) tea.Cmd {
	if a.browser == nil {
		return nil
	}
	return func() tea.Msg {
		if err := a.browser.OpenPost(slug); err != nil {
			return views.FlashMsg{Text: err.Error(), IsErr: true}
		}
		return views.FlashMsg{Text: "Opened " + a.browser.URL(slug)}
	}
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewPost:
		return a.post.View()
	case ViewTags:
		return a.tags.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.posts.View()
	}
}
