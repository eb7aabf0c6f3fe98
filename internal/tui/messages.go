package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/resumind/internal/database/repository"
	"github.com/jask/resumind/internal/prefs"
)

type StatusMsg struct {
	Text  string
	IsErr bool
}

// InboxMsg carries feedback documents the watcher saw land in the inbox.
type InboxMsg struct {
	Paths []string
}

type resumesLoadedMsg struct {
	resumes []repository.Resume
	err     error
}

type detailLoadedMsg struct {
	resume  repository.Resume
	preview bool
	refresh bool
	err     error
}

type uploadDoneMsg struct {
	resume repository.Resume
	err    error
}

type deletedMsg struct {
	id  string
	err error
}

type themeSavedMsg struct {
	theme prefs.Theme
	err   error
}

type importedMsg struct {
	count int
	errs  []error
}

func StatusCmd(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text} }
}

func ErrorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		if err == nil {
			return StatusMsg{}
		}
		return StatusMsg{Text: err.Error(), IsErr: true}
	}
}
