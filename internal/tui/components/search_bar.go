package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/gifgrid/internal/search"
	"github.com/mmcdole/gifgrid/internal/tui/styles"
)

// MaxSuggestions is how many recent terms the search bar offers at once
const MaxSuggestions = 5

// SearchBar is the search input with recent-term suggestions
type SearchBar struct {
	input       textinput.Model
	recent      []string
	suggestions []string
	selected    int // -1 = no suggestion highlighted
	width       int
}

// NewSearchBar creates a new search bar
func NewSearchBar() SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search GIFs..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "🔍 "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return SearchBar{
		input:    ti,
		selected: -1,
	}
}

// Focus focuses the input
func (s *SearchBar) Focus() tea.Cmd {
	return s.input.Focus()
}

// Blur removes focus from the input
func (s *SearchBar) Blur() {
	s.input.Blur()
}

// Focused returns true if the input has focus
func (s SearchBar) Focused() bool {
	return s.input.Focused()
}

// Value returns the current term as typed
func (s SearchBar) Value() string {
	return s.input.Value()
}

// SetValue replaces the term and moves the cursor to the end
func (s *SearchBar) SetValue(v string) {
	s.input.SetValue(v)
	s.input.CursorEnd()
	s.refreshSuggestions()
}

// SetRecent sets the recent terms suggestions are drawn from
func (s *SearchBar) SetRecent(terms []string) {
	s.recent = terms
	s.refreshSuggestions()
}

// Suggestions returns the suggestions for the current term
func (s SearchBar) Suggestions() []string {
	return s.suggestions
}

// Selected returns the highlighted suggestion, or "" when none is highlighted
func (s SearchBar) Selected() string {
	if s.selected < 0 || s.selected >= len(s.suggestions) {
		return ""
	}
	return s.suggestions[s.selected]
}

// SetWidth updates the component width
func (s *SearchBar) SetWidth(width int) {
	s.width = width
	// border + padding + prompt
	s.input.Width = max(width-4-lipgloss.Width(s.input.Prompt)-1, 10)
}

// Height returns the rendered height including suggestions
func (s SearchBar) Height() int {
	return lipgloss.Height(s.View())
}

func (s *SearchBar) refreshSuggestions() {
	s.suggestions = search.Suggest(s.input.Value(), s.recent, MaxSuggestions)
	s.selected = -1
}

// Update handles messages. The bool result reports whether the term changed.
func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd, bool) {
	if !s.input.Focused() {
		return s, nil, false
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, SearchBarKeys.Accept):
			choice := s.Selected()
			if choice == "" && len(s.suggestions) > 0 {
				choice = s.suggestions[0]
			}
			if choice == "" || choice == s.input.Value() {
				return s, nil, false
			}
			s.SetValue(choice)
			return s, nil, true

		case key.Matches(msg, SearchBarKeys.Next):
			if len(s.suggestions) > 0 {
				s.selected = (s.selected + 1) % len(s.suggestions)
			}
			return s, nil, false

		case key.Matches(msg, SearchBarKeys.Prev):
			if len(s.suggestions) > 0 {
				s.selected--
				if s.selected < 0 {
					s.selected = len(s.suggestions) - 1
				}
			}
			return s, nil, false
		}
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	changed := s.input.Value() != before
	if changed {
		s.refreshSuggestions()
	}
	return s, cmd, changed
}

// View renders the input box and, when focused, the suggestion list
func (s SearchBar) View() string {
	box := styles.SearchBarStyle
	if s.input.Focused() {
		box = styles.SearchBarFocusedStyle
	}
	if s.width > 2 {
		box = box.Width(s.width - 2)
	}
	view := box.Render(s.input.View())

	if !s.input.Focused() || len(s.suggestions) == 0 {
		return view
	}

	lines := make([]string, 0, len(s.suggestions))
	for i, term := range s.suggestions {
		style := styles.SuggestionStyle
		if i == s.selected {
			style = styles.SuggestionSelectedStyle
		}
		lines = append(lines, style.Render("↺ "+styles.Truncate(term, max(s.width-6, 1))))
	}
	return view + "\n" + strings.Join(lines, "\n")
}
