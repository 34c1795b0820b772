// Package search abstracts web search backends behind a single interface
// with provider failover, result caching, and rate limiting.
package search

import "context"

// Result is a single item returned by a search backend.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Provider executes a query against one backend.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, count int) ([]Result, error)
}

const (
	defaultResultCount = 5
	maxResultCount     = 10
)
