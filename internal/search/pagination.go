package search

import (
	"fmt"
	"math"
)

// Cursor identifies one window of results. For cursors produced by a
// Strategy, Offset = (Page-1) * PageSize.
type Cursor struct {
	Page   int
	Offset int
}

// Strategy advances a cursor through result windows. A controller uses one
// strategy for its whole lifetime; page- and offset-based cursors are never
// mixed within a session.
type Strategy interface {
	Name() string
	First() Cursor
	At(page int) Cursor
	Next(c Cursor) Cursor
}

// Strategy names accepted by NewStrategy
const (
	StrategyPage   = "page"
	StrategyOffset = "offset"
)

// NewStrategy returns the named strategy for the given page size
func NewStrategy(name string, pageSize int) (Strategy, error) {
	if pageSize < 1 {
		return nil, fmt.Errorf("page size must be at least 1, got %d", pageSize)
	}
	switch name {
	case StrategyPage, "":
		return PageStrategy{PageSize: pageSize}, nil
	case StrategyOffset:
		return OffsetStrategy{PageSize: pageSize}, nil
	default:
		return nil, fmt.Errorf("unknown pagination strategy %q", name)
	}
}

// PageStrategy tracks a 1-based page number and derives the offset from it
type PageStrategy struct {
	PageSize int
}

func (s PageStrategy) Name() string { return StrategyPage }

func (s PageStrategy) First() Cursor { return s.At(1) }

func (s PageStrategy) At(page int) Cursor {
	page = clampPage(page, s.PageSize)
	return Cursor{Page: page, Offset: (page - 1) * s.PageSize}
}

func (s PageStrategy) Next(c Cursor) Cursor { return s.At(c.Page + 1) }

// OffsetStrategy tracks a 0-based element offset and derives the page from it
type OffsetStrategy struct {
	PageSize int
}

func (s OffsetStrategy) Name() string { return StrategyOffset }

func (s OffsetStrategy) First() Cursor { return s.atOffset(0) }

func (s OffsetStrategy) At(page int) Cursor {
	page = clampPage(page, s.PageSize)
	return s.atOffset((page - 1) * s.PageSize)
}

func (s OffsetStrategy) Next(c Cursor) Cursor { return s.atOffset(c.Offset + s.PageSize) }

func (s OffsetStrategy) atOffset(offset int) Cursor {
	offset = min(max(offset, 0), (maxPage(s.PageSize)-1)*s.PageSize)
	return Cursor{Page: offset/s.PageSize + 1, Offset: offset}
}

// maxPage is the largest page whose offset, and the offset after it, fit in an int
func maxPage(pageSize int) int {
	return math.MaxInt/max(pageSize, 1) - 1
}

func clampPage(page, pageSize int) int {
	return min(max(page, 1), maxPage(pageSize))
}
