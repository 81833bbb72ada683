package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/gifgrid/internal/search"
	"github.com/mmcdole/gifgrid/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	state := m.Controller.State()

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.SearchBar.View(),
		m.Grid.View(),
		m.renderResultLine(state),
		m.renderLoadMore(state),
		m.renderFooter(state),
	)
}

// renderResultLine renders the error line, or a summary of the results
func (m Model) renderResultLine(s search.State) string {
	if s.Err != "" {
		return styles.ErrorStyle.Render("✗ " + s.Err)
	}
	if s.Committed == "" || len(s.Items) == 0 {
		return " "
	}

	summary := fmt.Sprintf("%d GIFs for %q", len(s.Items), s.Committed)
	if s.Cursor.Page > 1 {
		summary += fmt.Sprintf(" · page %d", s.Cursor.Page)
	}
	return styles.DimStyle.Render(styles.Truncate(summary, m.Width))
}

// renderLoadMore renders the load more control, or a blank line when there
// is nothing more to load
func (m Model) renderLoadMore(s search.State) string {
	var control string
	switch loadMoreControl(s) {
	case controlHidden:
		return " "
	case controlDisabled:
		control = styles.ControlDisabledStyle.Render("Loading…")
	case controlEnabled:
		control = styles.ControlStyle.Render("Load more (m)")
	}
	return lipgloss.PlaceHorizontal(m.Width, lipgloss.Center, control)
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter(s search.State) string {
	// Left side: spinner + status when loading or status message active
	var left string
	if s.Loading && s.Inflight != nil {
		statusText := fmt.Sprintf("Searching %q...", s.Inflight.Term)
		if !s.Inflight.IsFirstPage() {
			statusText = fmt.Sprintf("Loading page %d...", s.Inflight.Page)
		}
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render(statusText)
	} else if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	}

	// Center section: hints for the focused component
	var center string
	if m.Focus == FocusSearch {
		center = hint("enter", "search") + "  " + hint("tab", "results")
	} else if m.Grid.IsFiltering() {
		center = hint("esc", "clear filter")
	} else {
		center = hint("enter", "open") + "  " + hint("y", "copy") + "  " + hint("/", "filter")
	}

	right := hint("?", "help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	totalContent := leftWidth + centerWidth + rightWidth
	if totalContent >= m.Width {
		// Not enough space - just left + right
		gap := max(m.Width-leftWidth-rightWidth, 0)
		return left + strings.Repeat(" ", gap) + right
	}

	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

func hint(k, desc string) string {
	return styles.AccentStyle.Render(k) + styles.DimStyle.Render(" "+desc)
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
SEARCH                          RESULTS
  type       Search as you type    h/j/k/l    Move
  enter      Search now            g/G        First/last
  tab        Accept suggestion     PgUp/PgDn  Scroll page
  C-n/C-p    Cycle suggestions     enter/o    Open in viewer
  esc        Clear term            m          Load more
                                   /          Filter loaded GIFs
OTHER                              y          Copy GIF URL
  s/tab      Focus search          Y          Copy GIPHY page
  ?          This help             L          Copy search link
  q/C-c      Quit

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(styles.BadgeStyle.Render("gifgrid")+"\n"+help))
}

// RenderSpinner renders a loading spinner
func RenderSpinner(frame int) string {
	frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return styles.SpinnerStyle.Render(frames[frame%len(frames)])
}
