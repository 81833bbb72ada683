package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/gifgrid/internal/domain"
	"github.com/mmcdole/gifgrid/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// Layout constants for grid tiles
const (
	// Border adds 1 char on each side
	BorderWidth  = 2
	BorderHeight = 2

	// Padding inside the border (Padding(0,1) = 1 left + 1 right)
	HorizontalPadding = 2

	// Lines of text inside a tile: title, dimensions, id
	TileLines = 3

	TileHeight = TileLines + BorderHeight

	// Space between tiles in a row
	TileGap = 1

	MinTileWidth     = 12
	DefaultTileWidth = 26
)

// gifSource adapts a result list to fuzzy.Source
type gifSource []domain.Gif

func (s gifSource) String(i int) string { return s[i].DisplayTitle() }
func (s gifSource) Len() int            { return len(s) }

// Grid renders search results as rows of tiles
type Grid struct {
	items        []domain.Gif
	placeholders int
	frame        int // animation frame for placeholders

	// Selection (cursor indexes the visible list)
	cursor    int
	offsetRow int

	// Dimensions
	width       int
	height      int
	tileWidth   int
	columns     int // 0 = fit to width
	focused     bool
	emptyNotice string

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	matches      fuzzy.Matches
}

// NewGrid creates a new grid. columns <= 0 fits as many tiles as the width allows.
func NewGrid(tileWidth, columns int) Grid {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	if tileWidth <= 0 {
		tileWidth = DefaultTileWidth
	}
	return Grid{
		filterInput: ti,
		tileWidth:   max(tileWidth, MinTileWidth),
		columns:     columns,
	}
}

// SetItems replaces the result list. reset moves the cursor to the first tile
// and clears the filter; otherwise the selection is kept.
func (g *Grid) SetItems(items []domain.Gif, reset bool) {
	g.items = items
	if reset {
		g.cursor = 0
		g.offsetRow = 0
		g.clearFilter()
		return
	}
	if g.filterActive {
		g.applyFilter(false)
	}
	g.clampCursor()
}

// Items returns the full result list
func (g Grid) Items() []domain.Gif {
	return g.items
}

// SetPlaceholders sets how many loading tiles follow the items
func (g *Grid) SetPlaceholders(n, frame int) {
	g.placeholders = max(n, 0)
	g.frame = frame
}

// SetEmptyNotice sets the text shown when there is nothing to display
func (g *Grid) SetEmptyNotice(notice string) {
	g.emptyNotice = notice
}

// SetSize updates the component dimensions
func (g *Grid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.filterInput.Width = max(width-10, 10)
	g.ensureVisible()
}

// SetFocused sets the focus state
func (g *Grid) SetFocused(focused bool) {
	g.focused = focused
	if !focused {
		g.filterInput.Blur()
	}
}

// IsFocused returns the focus state
func (g Grid) IsFocused() bool {
	return g.focused
}

// Columns returns the number of tiles per row
func (g Grid) Columns() int {
	if g.columns > 0 {
		return g.columns
	}
	return max(1, (g.width+TileGap)/(g.tileWidth+TileGap))
}

// visibleRows returns how many tile rows fit
func (g Grid) visibleRows() int {
	h := g.height
	if g.filterActive {
		h--
	}
	return max(1, h/TileHeight)
}

// Cursor returns the cursor position in the visible list
func (g Grid) Cursor() int {
	return g.cursor
}

// SetCursor sets the cursor position
func (g *Grid) SetCursor(pos int) {
	g.cursor = pos
	g.clampCursor()
}

// Selected returns the gif under the cursor
func (g Grid) Selected() *domain.Gif {
	count := g.visibleCount()
	if count == 0 || g.cursor >= count {
		return nil
	}
	gif := g.items[g.mapIndex(g.cursor)]
	return &gif
}

// AtLastRow reports whether the cursor is on the last row of the visible list
func (g Grid) AtLastRow() bool {
	count := g.visibleCount()
	if count == 0 {
		return true
	}
	cols := g.Columns()
	return g.cursor/cols == (count-1)/cols
}

// visibleCount returns the number of items after filtering
func (g Grid) visibleCount() int {
	if g.filterActive && g.filterQuery != "" {
		return len(g.matches)
	}
	return len(g.items)
}

// mapIndex maps a visible index to an index in items
func (g Grid) mapIndex(i int) int {
	if g.filterActive && g.filterQuery != "" {
		return g.matches[i].Index
	}
	return i
}

func (g *Grid) clampCursor() {
	count := g.visibleCount()
	if g.cursor >= count {
		g.cursor = count - 1
	}
	if g.cursor < 0 {
		g.cursor = 0
	}
	g.ensureVisible()
}

// ensureVisible scrolls so the cursor's row is on screen
func (g *Grid) ensureVisible() {
	cols := g.Columns()
	rows := g.visibleRows()
	row := g.cursor / cols
	if row < g.offsetRow {
		g.offsetRow = row
	}
	if row >= g.offsetRow+rows {
		g.offsetRow = row - rows + 1
	}
}

// ToggleFilter activates the filter input
func (g *Grid) ToggleFilter() {
	g.filterActive = true
	g.filterInput.Focus()
	g.ensureVisible()
}

// IsFiltering returns true if filter mode is active
func (g Grid) IsFiltering() bool {
	return g.filterActive
}

// IsFilterTyping returns true if the filter input has focus
func (g Grid) IsFilterTyping() bool {
	return g.filterActive && g.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (g *Grid) ClearFilter() {
	g.clearFilter()
}

func (g *Grid) clearFilter() {
	g.filterActive = false
	g.filterQuery = ""
	g.matches = nil
	g.filterInput.SetValue("")
	g.filterInput.Blur()
	g.clampCursor()
}

// applyFilter matches titles against the filter query
func (g *Grid) applyFilter(resetCursor bool) {
	g.filterQuery = g.filterInput.Value()
	if g.filterQuery == "" {
		g.matches = nil
	} else {
		g.matches = fuzzy.FindFrom(g.filterQuery, gifSource(g.items))
	}
	if resetCursor {
		g.cursor = 0
		g.offsetRow = 0
	}
	g.clampCursor()
}

// Init initializes the component
func (g Grid) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (g Grid) Update(msg tea.Msg) (Grid, tea.Cmd) {
	if !g.focused {
		return g, nil
	}

	// Filter typing mode
	if g.IsFilterTyping() {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "esc":
				g.clearFilter()
				return g, nil
			case "enter":
				// Accept filter, blur input to allow navigation
				g.filterInput.Blur()
				return g, nil
			case "backspace":
				if g.filterInput.Value() == "" {
					g.clearFilter()
					return g, nil
				}
			}
		}

		var cmd tea.Cmd
		g.filterInput, cmd = g.filterInput.Update(msg)
		g.applyFilter(true)
		return g, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return g, nil
	}

	if g.filterActive {
		switch {
		case key.Matches(keyMsg, GridKeys.Escape):
			g.clearFilter()
			return g, nil
		case key.Matches(keyMsg, GridKeys.Filter):
			g.filterInput.Focus()
			return g, nil
		}
	}

	count := g.visibleCount()
	if count == 0 {
		return g, nil
	}
	cols := g.Columns()
	page := g.visibleRows() * cols

	switch {
	case key.Matches(keyMsg, GridKeys.Right):
		if g.cursor < count-1 {
			g.cursor++
		}
	case key.Matches(keyMsg, GridKeys.Left):
		if g.cursor > 0 {
			g.cursor--
		}
	case key.Matches(keyMsg, GridKeys.Down):
		if g.cursor+cols < count {
			g.cursor += cols
		} else if !g.AtLastRow() {
			g.cursor = count - 1
		}
	case key.Matches(keyMsg, GridKeys.Up):
		if g.cursor-cols >= 0 {
			g.cursor -= cols
		}
	case key.Matches(keyMsg, GridKeys.Home):
		g.cursor = 0
	case key.Matches(keyMsg, GridKeys.End):
		g.cursor = count - 1
	case key.Matches(keyMsg, GridKeys.PageDown):
		g.cursor = min(g.cursor+page, count-1)
	case key.Matches(keyMsg, GridKeys.PageUp):
		g.cursor = max(g.cursor-page, 0)
	}
	g.ensureVisible()

	return g, nil
}

// View renders the grid
func (g Grid) View() string {
	content := g.renderTiles()
	if g.filterActive {
		content = lipgloss.JoinVertical(lipgloss.Left, content, g.renderFilterBar())
	}
	return lipgloss.NewStyle().Width(g.width).Height(g.height).MaxHeight(g.height).Render(content)
}

func (g Grid) renderTiles() string {
	count := g.visibleCount()
	placeholders := g.placeholders
	if g.filterActive && g.filterQuery != "" {
		placeholders = 0
	}
	total := count + placeholders

	if total == 0 {
		notice := g.emptyNotice
		if g.filterActive && g.filterQuery != "" {
			notice = "No matches"
		}
		return styles.DimStyle.Render(notice)
	}

	cols := g.Columns()
	rows := g.visibleRows()
	start := g.offsetRow * cols
	end := min(start+rows*cols, total)

	var lines []string
	for rowStart := start; rowStart < end; rowStart += cols {
		tiles := make([]string, 0, cols)
		for i := rowStart; i < min(rowStart+cols, end); i++ {
			if i > rowStart {
				tiles = append(tiles, strings.Repeat(" ", TileGap))
			}
			if i < count {
				tiles = append(tiles, g.renderTile(g.items[g.mapIndex(i)], i, i == g.cursor))
			} else {
				tiles = append(tiles, g.renderPlaceholder(i))
			}
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}
	return strings.Join(lines, "\n")
}

func (g Grid) renderTile(gif domain.Gif, visibleIdx int, selected bool) string {
	inner := g.tileWidth - BorderWidth - HorizontalPadding

	style := styles.TileStyle
	titleStyle := styles.SubtitleStyle
	if selected && g.focused {
		style = styles.TileSelectedStyle
		titleStyle = styles.TitleStyle
	}

	title := styles.Truncate(gif.DisplayTitle(), inner)
	if g.filterActive && g.filterQuery != "" {
		title = highlight(title, g.matches[visibleIdx].MatchedIndexes, titleStyle)
	} else {
		title = titleStyle.Render(title)
	}

	dims := gif.Dimensions()
	if dims == "" {
		dims = "–"
	}

	body := strings.Join([]string{
		title,
		styles.DimStyle.Render(styles.Truncate(dims, inner)),
		styles.DimStyle.Render(styles.Truncate(gif.ID, inner)),
	}, "\n")

	return style.Width(g.tileWidth - BorderWidth).Render(body)
}

// renderPlaceholder renders a loading tile with a moving shimmer
func (g Grid) renderPlaceholder(i int) string {
	inner := g.tileWidth - BorderWidth - HorizontalPadding
	pos := (g.frame + i) % max(inner, 1)

	lines := make([]string, TileLines)
	for l := range lines {
		bar := []rune(strings.Repeat("░", inner))
		if inner > 0 {
			bar[(pos+l)%inner] = '▒'
		}
		lines[l] = string(bar)
	}
	return styles.PlaceholderTileStyle.Width(g.tileWidth - BorderWidth).Render(strings.Join(lines, "\n"))
}

// highlight renders matched characters of s with the match style
func highlight(s string, matched []int, base lipgloss.Style) string {
	set := make(map[int]bool, len(matched))
	for _, i := range matched {
		set[i] = true
	}
	var b strings.Builder
	for i, r := range s {
		if set[i] {
			b.WriteString(styles.MatchHighlightStyle.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

// IsEmpty returns true if there are no items
func (g Grid) IsEmpty() bool {
	return len(g.items) == 0
}

// renderFilterBar renders the filter input bar
func (g Grid) renderFilterBar() string {
	input := g.filterInput.View()

	countStr := ""
	if g.filterQuery != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", len(g.matches), len(g.items)))
	}
	return input + countStr
}
