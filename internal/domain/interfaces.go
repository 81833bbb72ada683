package domain

// Location is process-wide address state holding the shareable link of the
// current search. Replace overwrites the address without adding history.
type Location interface {
	Href() string
	Replace(href string)
}

// HistoryStore keeps recently committed search terms (terms only, never results)
type HistoryStore interface {
	RecentTerms() []string
	AddRecentTerm(term string) error
}

// Opener opens a media URL outside the terminal
type Opener interface {
	Open(url string) error
}
