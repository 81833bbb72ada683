package tui

import "github.com/mmcdole/gifgrid/internal/search"

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// SearchDueMsg signals that the debounce window for Term has elapsed
type SearchDueMsg struct {
	Term string
}

// SearchResultMsg carries the outcome of a search request
type SearchResultMsg struct {
	Response search.Response
}

// OpenedMsg signals that a gif was handed to the viewer
type OpenedMsg struct {
	Title string
}

// CopiedMsg signals that text was copied to the clipboard
type CopiedMsg struct {
	What string
}

// TickMsg is a general tick message for animations
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
