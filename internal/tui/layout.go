package tui

import "github.com/mmcdole/gifgrid/internal/tui/components"

// Lines below the grid: result line, load more control, footer
const ChromeHeight = 3

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	m.SearchBar.SetWidth(m.Width)
	gridHeight := m.Height - m.SearchBar.Height() - ChromeHeight
	m.Grid.SetSize(m.Width, max(gridHeight, components.TileHeight))
}
