package components

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/gifgrid/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGifs(n int) []domain.Gif {
	items := make([]domain.Gif, n)
	for i := range items {
		items[i] = domain.Gif{ID: fmt.Sprintf("g%d", i), Title: fmt.Sprintf("gif %d", i)}
	}
	return items
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestGrid(items []domain.Gif) Grid {
	g := NewGrid(0, 4)
	g.SetSize(120, 2*TileHeight)
	g.SetFocused(true)
	g.SetItems(items, true)
	return g
}

func sendKeys(g Grid, keys ...tea.KeyMsg) Grid {
	for _, k := range keys {
		g, _ = g.Update(k)
	}
	return g
}

func TestGrid_Columns(t *testing.T) {
	g := NewGrid(26, 0)
	g.SetSize(120, 20)
	assert.Equal(t, 4, g.Columns())

	g.SetSize(10, 20)
	assert.Equal(t, 1, g.Columns())

	fixed := NewGrid(26, 3)
	fixed.SetSize(200, 20)
	assert.Equal(t, 3, fixed.Columns())
}

func TestGrid_Navigation(t *testing.T) {
	g := newTestGrid(testGifs(10))

	g = sendKeys(g, keyRunes("l"), keyRunes("l"))
	assert.Equal(t, 2, g.Cursor())

	g = sendKeys(g, keyRunes("j"))
	assert.Equal(t, 6, g.Cursor())
	assert.False(t, g.AtLastRow())

	// Partial last row: moving down lands on the last tile
	g = sendKeys(g, keyRunes("j"))
	assert.Equal(t, 9, g.Cursor())
	assert.True(t, g.AtLastRow())

	g = sendKeys(g, keyRunes("k"))
	assert.Equal(t, 5, g.Cursor())

	g = sendKeys(g, keyRunes("g"))
	assert.Equal(t, 0, g.Cursor())

	g = sendKeys(g, keyRunes("G"))
	assert.Equal(t, 9, g.Cursor())

	sel := g.Selected()
	require.NotNil(t, sel)
	assert.Equal(t, "g9", sel.ID)
}

func TestGrid_IgnoresKeysWhenUnfocused(t *testing.T) {
	g := newTestGrid(testGifs(10))
	g.SetFocused(false)

	g = sendKeys(g, keyRunes("l"))
	assert.Equal(t, 0, g.Cursor())
}

func TestGrid_SetItemsKeepsSelectionOnAppend(t *testing.T) {
	g := newTestGrid(testGifs(8))
	g.SetCursor(5)

	g.SetItems(testGifs(16), false)
	assert.Equal(t, 5, g.Cursor())

	g.SetItems(testGifs(3), true)
	assert.Equal(t, 0, g.Cursor())
}

func TestGrid_Filter(t *testing.T) {
	g := newTestGrid(testGifs(12))

	g.ToggleFilter()
	require.True(t, g.IsFilterTyping())

	g = sendKeys(g, keyRunes("1"), keyRunes("1"))
	sel := g.Selected()
	require.NotNil(t, sel)
	assert.Equal(t, "g11", sel.ID)
	assert.True(t, g.AtLastRow())

	// Enter keeps the filter but returns keys to navigation
	g = sendKeys(g, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, g.IsFiltering())
	assert.False(t, g.IsFilterTyping())

	// The full list is untouched
	assert.Len(t, g.Items(), 12)

	g = sendKeys(g, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, g.IsFiltering())
	assert.Equal(t, 0, g.Cursor())
}

func TestGrid_FilterWithoutMatches(t *testing.T) {
	g := newTestGrid(testGifs(4))
	g.ToggleFilter()
	g = sendKeys(g, keyRunes("zzz"))

	assert.Nil(t, g.Selected())
	assert.Contains(t, g.View(), "No matches")
}

func TestGrid_ViewShowsNoticeAndPlaceholders(t *testing.T) {
	g := newTestGrid(nil)
	g.SetEmptyNotice("Start typing to search GIPHY")
	assert.True(t, g.IsEmpty())
	assert.Contains(t, g.View(), "Start typing to search GIPHY")

	g.SetPlaceholders(4, 0)
	assert.NotContains(t, g.View(), "Start typing")

	g.SetItems(testGifs(2), true)
	g.SetPlaceholders(0, 0)
	view := g.View()
	assert.Contains(t, view, "gif 0")
	assert.Contains(t, view, "gif 1")
}
