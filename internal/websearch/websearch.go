// Package websearch abstracts the web search used to seed name extraction.
package websearch

import "context"

// Result is one search hit: its page title and snippet text.
type Result struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Provider performs a region-scoped text search and returns results in
// ranking order.
type Provider interface {
	Search(ctx context.Context, query, region string, maxResults int) ([]Result, error)
}
