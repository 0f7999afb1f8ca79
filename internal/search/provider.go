// Package search runs trend queries against a web search provider and filters the hits
// down to recent, usable evidence.
package search

import (
	"context"

	"github.com/jonathan/trend-resolver/internal/types"
)

// Request is one provider call.
type Request struct {
	Query string
	// Limit is the number of raw hits wanted; providers may return fewer
	Limit int
	// MaxAgeDays lets providers that support it restrict results server-side; 0 means no restriction
	MaxAgeDays int
}

// Provider is a web search backend. Results may leave PublishedAt nil when the
// provider does not know the date.
type Provider interface {
	Name() string
	Search(ctx context.Context, req Request) ([]types.SearchResult, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, req Request) ([]types.SearchResult, error)

// Name implements Provider.
func (f ProviderFunc) Name() string { return "func" }

// Search implements Provider.
func (f ProviderFunc) Search(ctx context.Context, req Request) ([]types.SearchResult, error) {
	return f(ctx, req)
}
