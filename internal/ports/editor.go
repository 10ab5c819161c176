package ports

import "os/exec"

// EditorOpener defines the interface for opening post sources in an external editor
type EditorOpener interface {
	// OpenFile opens the file in the configured editor, or $VISUAL/$EDITOR
	OpenFile(path string) error

	// Command returns an exec.Cmd for opening a file in the editor
	// This is useful for integrating with bubbletea's ExecProcess
	Command(path string) (*exec.Cmd, error)
}
