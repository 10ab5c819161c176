package views

import "folio/internal/application"

// Messages for view switching
type SwitchToPostsMsg struct {
	// Tag filters the list when set
	Tag string
}

type SwitchToPostMsg struct {
	Slug string
}

type SwitchToTagsMsg struct{}

type SwitchToHelpMsg struct{}

// BackMsg returns to the previous view
type BackMsg struct{}

// Actions the app performs on behalf of a view
type OpenEditorMsg struct {
	Path string
}

type OpenBrowserMsg struct {
	Slug string
}

type CopyURLMsg struct {
	Slug string
}

// FlashMsg shows a transient message in the active view
type FlashMsg struct {
	Text  string
	IsErr bool
}

type postsLoadedMsg struct {
	entries []application.Entry
}

type errMsg struct {
	err error
}
