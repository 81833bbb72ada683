package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/gifgrid/internal/tui/components"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.ForceQuit) {
		return m.quit()
	}

	if m.State == StateHelp {
		m.State = StateBrowsing
		return m, nil
	}

	if m.Focus == FocusSearch {
		return m.handleSearchKey(msg)
	}
	return m.handleGridKey(msg)
}

// handleSearchKey handles keys while the search input has focus. Printable
// keys always edit the term.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Escape):
		if m.SearchBar.Value() != "" {
			m.SearchBar.SetValue("")
			m.onTermChange("")
			m.updateLayout()
			return m, nil
		}
		if !m.Grid.IsEmpty() {
			cmd := m.setFocus(FocusGrid)
			return m, cmd
		}
		return m, nil

	case key.Matches(msg, Keys.Submit):
		if choice := m.SearchBar.Selected(); choice != "" {
			m.SearchBar.SetValue(choice)
			m.Controller.OnTermChange(choice)
		}
		cmd := m.submit()
		if cmd == nil {
			return m, nil
		}
		focusCmd := m.setFocus(FocusGrid)
		return m, tea.Batch(cmd, focusCmd)

	case key.Matches(msg, Keys.FocusGrid) && !(msg.String() == "tab" && len(m.SearchBar.Suggestions()) > 0):
		cmd := m.setFocus(FocusGrid)
		return m, cmd
	}

	var cmd tea.Cmd
	var changed bool
	m.SearchBar, cmd, changed = m.SearchBar.Update(msg)
	if changed {
		m.onTermChange(m.SearchBar.Value())
	}
	m.updateLayout()
	return m, cmd
}

// handleGridKey handles keys while the result grid has focus
func (m Model) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Filter typing swallows everything
	if m.Grid.IsFilterTyping() {
		var cmd tea.Cmd
		m.Grid, cmd = m.Grid.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m.quit()

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.FocusSearch):
		cmd := m.setFocus(FocusSearch)
		return m, cmd

	case key.Matches(msg, Keys.Filter):
		m.Grid.ToggleFilter()
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.Grid.IsFiltering() {
			m.Grid.ClearFilter()
			return m, nil
		}
		cmd := m.setFocus(FocusSearch)
		return m, cmd

	case key.Matches(msg, Keys.Open):
		gif := m.Grid.Selected()
		if gif == nil {
			return m, nil
		}
		if m.Opener == nil {
			return m.setStatus("No viewer configured", true)
		}
		return m, OpenCmd(m.Opener, *gif)

	case key.Matches(msg, Keys.LoadMore):
		cmd := m.loadMore()
		return m, cmd

	case key.Matches(msg, Keys.Copy):
		if gif := m.Grid.Selected(); gif != nil {
			return m, CopyCmd(m.copyFn, gif.BestURL(), "gif url")
		}
		return m, nil

	case key.Matches(msg, Keys.CopyPage):
		if gif := m.Grid.Selected(); gif != nil && gif.PageURL != "" {
			return m, CopyCmd(m.copyFn, gif.PageURL, "giphy page")
		}
		return m, nil

	case key.Matches(msg, Keys.CopyLink):
		if m.Controller.State().Committed == "" {
			return m, nil
		}
		return m, CopyCmd(m.copyFn, m.ShareLink(), "search link")
	}

	// Moving down from the last row continues into the next page
	wasLastRow := m.Grid.AtLastRow()
	var cmd tea.Cmd
	m.Grid, cmd = m.Grid.Update(msg)
	if key.Matches(msg, components.GridKeys.Down) && wasLastRow && !m.Grid.IsFiltering() {
		moreCmd := m.loadMore()
		return m, tea.Batch(cmd, moreCmd)
	}
	return m, cmd
}
