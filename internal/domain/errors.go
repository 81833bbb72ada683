package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrSearchFailed covers transport failures, non-success statuses and
	// malformed responses alike
	ErrSearchFailed = errors.New("search request failed")

	// ErrMissingAPIKey indicates no provider API key is configured
	ErrMissingAPIKey = errors.New("giphy API key is not configured")
)
