package domain

import "context"

// SearchQuery is one window of a provider search
type SearchQuery struct {
	Term   string
	Limit  int
	Offset int
}

// SearchPage is a provider response for one SearchQuery
type SearchPage struct {
	Items      []Gif
	TotalCount int // Total matches reported by the provider
	Count      int // Items the provider says it returned
	Offset     int // Offset the provider says it served
}

// SearchClient performs a single search request against the provider.
// Any failure is reported as an error wrapping ErrSearchFailed.
type SearchClient interface {
	Search(ctx context.Context, query SearchQuery) (*SearchPage, error)
}
