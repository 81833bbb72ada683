package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/gifgrid/internal/domain"
	"github.com/mmcdole/gifgrid/internal/search"
)

// Command factories for async operations

// SearchCmd executes a search request. The response carries the request so
// the controller can discard it if a newer one was issued meanwhile.
func SearchCmd(client domain.SearchClient, req search.Request, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		return SearchResultMsg{Response: search.Fetch(context.Background(), client, req, timeout)}
	}
}

// OpenCmd opens a gif in the external viewer
func OpenCmd(opener domain.Opener, gif domain.Gif) tea.Cmd {
	return func() tea.Msg {
		if err := opener.Open(gif.BestURL()); err != nil {
			return ErrMsg{Err: err, Context: "opening gif"}
		}
		return OpenedMsg{Title: gif.DisplayTitle()}
	}
}

// CopyCmd copies text to the clipboard
func CopyCmd(copyFn func(string) error, text, what string) tea.Cmd {
	return func() tea.Msg {
		if err := copyFn(text); err != nil {
			return ErrMsg{Err: err, Context: "copying " + what}
		}
		return CopiedMsg{What: what}
	}
}

// ListenDueCmd returns a command that waits for the next debounced term
func ListenDueCmd(n *DueNotifier) tea.Cmd {
	return func() tea.Msg {
		select {
		case term := <-n.ch:
			return SearchDueMsg{Term: term}
		case <-n.done:
			return nil
		}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
