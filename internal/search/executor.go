package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/jonathan/trend-resolver/internal/fetch"
	"github.com/jonathan/trend-resolver/internal/types"
)

// Defaults for the executor.
const (
	DefaultMaxAgeDays = 30
	DefaultPacing     = 500 * time.Millisecond
	minQueryLength    = 3
)

var markupStoplist = map[string]struct{}{
	"html":    {},
	"doctype": {},
	"meta":    {},
	"charset": {},
}

// Mode bounds how many queries run and how many results each may keep.
type Mode struct {
	Name string
	// MaxQueries limits the queries run; 0 runs all of them
	MaxQueries int
	MaxResults int
}

var (
	// TestMode is the cheap relevance probe used by the manual and model tiers
	TestMode = Mode{Name: "test", MaxQueries: 2, MaxResults: 3}
	// FinalMode is the exhaustive pass for confirmed candidates
	FinalMode = Mode{Name: "final", MaxQueries: 0, MaxResults: 5}
)

// DateResolver infers a publication date for a result URL, or returns nil.
type DateResolver func(ctx context.Context, url string) *time.Time

// QueryError records one failed provider call.
type QueryError struct {
	Query string
	Cause error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("search %q failed: %v", e.Query, e.Cause)
}

func (e *QueryError) Unwrap() error {
	return e.Cause
}

// Executor runs queries one at a time against a Provider with a fixed pacing delay.
type Executor struct {
	Provider   Provider
	MaxAgeDays int
	// ResolveDate fills in missing publication dates; nil leaves them unknown
	ResolveDate DateResolver
	Logger      *zap.Logger

	limiter *rate.Limiter
	now     func() time.Time
}

// NewExecutor creates an executor. A non-positive pacing disables the delay.
func NewExecutor(provider Provider, pacing time.Duration, maxAgeDays int, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxAgeDays <= 0 {
		maxAgeDays = DefaultMaxAgeDays
	}
	limit := rate.Inf
	if pacing > 0 {
		limit = rate.Every(pacing)
	}
	return &Executor{
		Provider:   provider,
		MaxAgeDays: maxAgeDays,
		Logger:     logger,
		limiter:    rate.NewLimiter(limit, 1),
		now:        time.Now,
	}
}

// WithPageDates makes the executor fetch result pages to infer unknown publication dates.
func (e *Executor) WithPageDates(opts *fetch.Options) *Executor {
	e.ResolveDate = func(ctx context.Context, url string) *time.Time {
		return fetch.PublishedAt(ctx, url, opts)
	}
	return e
}

// Run executes queries in order under mode and concatenates their results, each tagged
// with the query that produced it. Failed queries contribute zero results; their errors
// are joined into the returned error while the results gathered so far stay valid.
func (e *Executor) Run(ctx context.Context, queries []types.Query, mode Mode) ([]types.SearchResult, error) {
	if mode.MaxQueries > 0 && len(queries) > mode.MaxQueries {
		queries = queries[:mode.MaxQueries]
	}

	var (
		all  []types.SearchResult
		errs []error
	)
	for _, q := range queries {
		results, err := e.Search(ctx, q.Text, mode.MaxResults)
		if err != nil {
			e.Logger.Warn("search query failed", zap.String("query", q.Text), zap.String("mode", mode.Name), zap.Error(err))
			errs = append(errs, &QueryError{Query: q.Text, Cause: err})
			if ctx.Err() != nil {
				break
			}
			continue
		}
		all = append(all, results...)
	}
	return all, errors.Join(errs...)
}

// Search runs a single query: it asks the provider for twice maxResults hits, keeps those
// with an unknown date or one inside the age window, and truncates to maxResults.
// Skipped queries return no results and no error.
func (e *Executor) Search(ctx context.Context, query string, maxResults int) ([]types.SearchResult, error) {
	if Skippable(query) {
		e.Logger.Debug("skipping query", zap.String("query", query))
		return nil, nil
	}
	if maxResults <= 0 {
		return nil, nil
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	raw, err := e.Provider.Search(ctx, Request{Query: query, Limit: maxResults * 2, MaxAgeDays: e.MaxAgeDays})
	if err != nil {
		return nil, err
	}

	cutoff := e.now().AddDate(0, 0, -e.MaxAgeDays)
	kept := make([]types.SearchResult, 0, maxResults)
	for _, r := range raw {
		if !r.Valid() {
			continue
		}
		if r.PublishedAt == nil && e.ResolveDate != nil {
			r.PublishedAt = e.ResolveDate(ctx, r.URL)
		}
		if r.PublishedAt != nil && r.PublishedAt.Before(cutoff) {
			continue
		}
		r.Query = query
		kept = append(kept, r)
		if len(kept) == maxResults {
			break
		}
	}

	e.Logger.Debug("search complete",
		zap.String("query", query),
		zap.String("provider", e.Provider.Name()),
		zap.Int("raw", len(raw)),
		zap.Int("kept", len(kept)))
	return kept, nil
}

// Skippable reports whether a query is shorter than minQueryLength characters or a markup artifact.
func Skippable(query string) bool {
	q := strings.TrimSpace(query)
	if utf8.RuneCountInString(q) < minQueryLength {
		return true
	}
	_, stop := markupStoplist[strings.ToLower(q)]
	return stop
}
