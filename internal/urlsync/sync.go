package urlsync

import (
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/mmcdole/gifgrid/internal/domain"
)

const (
	Scheme = "gifgrid"
	Host   = "search"

	paramTerm = "q"
	paramPage = "page"
)

// Sync mirrors a term and page into a Location. It knows nothing about the
// search controller; it only marshals the two values.
type Sync struct {
	loc domain.Location
}

// New creates a Sync over loc
func New(loc domain.Location) *Sync {
	return &Sync{loc: loc}
}

// Read returns the term and page currently in the location.
// A missing term reads as "", a missing or malformed page as 1.
func (s *Sync) Read() (string, int) {
	return ParseLink(s.loc.Href())
}

// Write replaces the location with a link for term and page
func (s *Sync) Write(term string, page int) {
	href := Link(term, page)
	if s.loc.Href() == href {
		return
	}
	s.loc.Replace(href)
}

// Link builds the shareable link for term and page. Pages below 1 are
// written as 1. Output is deterministic for a given input.
func Link(term string, page int) string {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set(paramTerm, term)
	q.Set(paramPage, strconv.Itoa(page))

	u := url.URL{Scheme: Scheme, Host: Host, RawQuery: q.Encode()}
	return u.String()
}

// ParseLink extracts the term and page from href. It accepts a full link or
// a bare query string ("q=cat&page=2").
func ParseLink(href string) (string, int) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", 1
	}

	raw := href
	if u, err := url.Parse(href); err == nil && (u.Scheme != "" || u.RawQuery != "") {
		raw = u.RawQuery
	} else if i := strings.IndexByte(href, '?'); i >= 0 {
		raw = href[i+1:]
	}

	// Malformed pairs are skipped; the well-formed ones are still returned
	values, _ := url.ParseQuery(raw)

	page, err := strconv.Atoi(values.Get(paramPage))
	if err != nil || page < 1 {
		page = 1
	}
	return values.Get(paramTerm), page
}

// MemoryLocation is a Location held in memory
type MemoryLocation struct {
	mu   sync.RWMutex
	href string
	n    int
}

// NewMemoryLocation creates a MemoryLocation starting at href
func NewMemoryLocation(href string) *MemoryLocation {
	return &MemoryLocation{href: href}
}

func (m *MemoryLocation) Href() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.href
}

func (m *MemoryLocation) Replace(href string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.href = href
	m.n++
}

// Replacements returns how many times Replace was called
func (m *MemoryLocation) Replacements() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.n
}
