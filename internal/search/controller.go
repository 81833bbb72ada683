package search

import (
	"log/slog"
	"strings"

	"github.com/mmcdole/gifgrid/internal/domain"
)

// ErrorMessage is the single user-facing failure message
const ErrorMessage = "Couldn't load GIFs. Check your connection and try again."

// Request is one search the caller must execute and feed back through Apply.
// Seq identifies the request; only the latest issued Seq is ever applied.
type Request struct {
	Seq   uint64
	Term  string
	Limit int
	Cursor
}

// Query converts the request to a provider query
func (r Request) Query() domain.SearchQuery {
	return domain.SearchQuery{Term: r.Term, Limit: r.Limit, Offset: r.Offset}
}

// IsFirstPage reports whether a successful response replaces the result list
func (r Request) IsFirstPage() bool {
	return r.Offset == 0
}

// Response is the outcome of executing a Request
type Response struct {
	Request Request
	Page    *domain.SearchPage
	Err     error
}

// State is a snapshot of the controller for rendering
type State struct {
	Term      string       // What the user typed, recorded immediately
	Committed string       // Term the result list belongs to
	Cursor    Cursor       // Last applied window of Committed
	Items     []domain.Gif // Result list in arrival order
	HasMore   bool
	Loading   bool
	Err       string
	PageSize  int
	Inflight  *Request // Outstanding request, nil when idle
}

// CanLoadMore reports whether a next window exists for the list on screen.
// It is false while the typed term differs from the one the list belongs to.
func (s State) CanLoadMore() bool {
	return s.HasMore && s.Inflight == nil && s.Committed != "" &&
		strings.TrimSpace(s.Term) == s.Committed
}

// Controller owns the query state, result list and request lifecycle flags.
// It performs no I/O and is not safe for concurrent use; drive it from a
// single event loop.
type Controller struct {
	pageSize int
	strategy Strategy
	logger   *slog.Logger

	term      string
	committed string
	cursor    Cursor
	items     []domain.Gif
	index     map[string]int // Gif ID -> position in items
	hasMore   bool
	err       string

	seq      uint64
	inflight *Request
}

// NewController creates a controller with a fixed page size and strategy
func NewController(pageSize int, strategy Strategy, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if strategy == nil {
		strategy = PageStrategy{PageSize: pageSize}
	}
	return &Controller{
		pageSize: pageSize,
		strategy: strategy,
		logger:   logger,
		cursor:   strategy.First(),
		index:    make(map[string]int),
	}
}

// OnTermChange records the typed term. A blank term clears the result list
// immediately and returns false; otherwise it returns true and the caller
// must schedule a debounced Commit for the term.
func (c *Controller) OnTermChange(term string) bool {
	c.term = term
	if isBlank(term) {
		c.reset()
		return false
	}
	return true
}

// Commit starts a first-page search for term. It refuses terms that are blank
// or no longer the most recently typed one.
func (c *Controller) Commit(term string) (Request, bool) {
	if isBlank(term) || term != c.term {
		return Request{}, false
	}
	return c.issue(term, c.strategy.First()), true
}

// Restore seeds the controller from a saved link and starts a search for
// that page directly.
func (c *Controller) Restore(term string, page int) (Request, bool) {
	c.term = term
	c.reset()
	if isBlank(term) {
		return Request{}, false
	}
	return c.issue(term, c.strategy.At(page)), true
}

// LoadMore starts a search for the window after the last applied one. It is a
// no-op unless State().CanLoadMore holds.
func (c *Controller) LoadMore() (Request, bool) {
	if !c.State().CanLoadMore() {
		return Request{}, false
	}
	return c.issue(c.committed, c.strategy.Next(c.cursor)), true
}

// Apply applies a response if it answers the latest issued request. Stale
// responses are discarded and Apply returns false.
func (c *Controller) Apply(resp Response) bool {
	if c.inflight == nil || resp.Request.Seq != c.inflight.Seq {
		c.logger.Debug("discarding stale search response",
			"seq", resp.Request.Seq,
			"term", resp.Request.Term,
		)
		return false
	}

	req := *c.inflight
	c.inflight = nil

	if resp.Err != nil || resp.Page == nil {
		c.err = ErrorMessage
		c.logger.Warn("search failed", "term", req.Term, "page", req.Page, "error", resp.Err)
		return true
	}

	if req.IsFirstPage() {
		c.items = nil
		c.index = make(map[string]int)
	}
	for _, gif := range resp.Page.Items {
		c.upsert(gif)
	}

	c.committed = req.Term
	c.cursor = req.Cursor
	c.hasMore = resp.Page.TotalCount > req.Offset+c.pageSize

	c.logger.Debug("search applied",
		"term", req.Term,
		"page", req.Page,
		"offset", req.Offset,
		"received", len(resp.Page.Items),
		"total", resp.Page.TotalCount,
		"items", len(c.items),
		"hasMore", c.hasMore,
	)
	return true
}

// State returns a snapshot of the controller
func (c *Controller) State() State {
	s := State{
		Term:      c.term,
		Committed: c.committed,
		Cursor:    c.cursor,
		Items:     append([]domain.Gif(nil), c.items...),
		HasMore:   c.hasMore,
		Loading:   c.inflight != nil,
		Err:       c.err,
		PageSize:  c.pageSize,
	}
	if c.inflight != nil {
		req := *c.inflight
		s.Inflight = &req
	}
	return s
}

// Loading reports whether a request is outstanding
func (c *Controller) Loading() bool {
	return c.inflight != nil
}

// HasMore reports whether more windows exist beyond the last applied one
func (c *Controller) HasMore() bool {
	return c.hasMore
}

// issue tags a new request with the next sequence number and marks it in flight
func (c *Controller) issue(term string, cursor Cursor) Request {
	c.seq++
	req := Request{
		Seq:    c.seq,
		Term:   strings.TrimSpace(term),
		Limit:  c.pageSize,
		Cursor: cursor,
	}
	c.inflight = &req
	c.err = ""

	c.logger.Debug("search issued", "seq", req.Seq, "term", req.Term, "page", req.Page, "offset", req.Offset)
	return req
}

// reset empties the result list and abandons any outstanding request
func (c *Controller) reset() {
	c.items = nil
	c.index = make(map[string]int)
	c.committed = ""
	c.cursor = c.strategy.First()
	c.hasMore = false
	c.err = ""
	c.inflight = nil
}

// upsert appends gif, or replaces the earlier entry with the same ID in place
func (c *Controller) upsert(gif domain.Gif) {
	if i, ok := c.index[gif.ID]; ok {
		c.items[i] = gif
		return
	}
	c.index[gif.ID] = len(c.items)
	c.items = append(c.items, gif)
}

func isBlank(term string) bool {
	return strings.TrimSpace(term) == ""
}
