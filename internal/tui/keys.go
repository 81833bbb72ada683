package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the application key bindings that apply outside the
// search input's text editing
type KeyMap struct {
	// Focus
	FocusSearch key.Binding
	FocusGrid   key.Binding
	Submit      key.Binding

	// Actions
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
	Escape    key.Binding
	Filter    key.Binding
	Open      key.Binding
	LoadMore  key.Binding
	Copy      key.Binding
	CopyPage  key.Binding
	CopyLink  key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		FocusSearch: key.NewBinding(
			key.WithKeys("s", "i", "tab"),
			key.WithHelp("s/tab", "search"),
		),
		FocusGrid: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab/↓", "results"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search now"),
		),

		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel/clear"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", "o"),
			key.WithHelp("enter", "open"),
		),
		LoadMore: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "load more"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy gif url"),
		),
		CopyPage: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "copy giphy page"),
		),
		CopyLink: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "copy search link"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
