package search

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jonathan/trend-resolver/internal/types"
)

var fixedNow = time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) *time.Time {
	t := fixedNow.AddDate(0, 0, -n)
	return &t
}

type recordingProvider struct {
	calls []Request
	fn    func(req Request) ([]types.SearchResult, error)
}

func (p *recordingProvider) Name() string { return "recording" }

func (p *recordingProvider) Search(_ context.Context, req Request) ([]types.SearchResult, error) {
	p.calls = append(p.calls, req)
	return p.fn(req)
}

func newTestExecutor(t *testing.T, p Provider) *Executor {
	e := NewExecutor(p, 0, 30, zaptest.NewLogger(t))
	e.now = func() time.Time { return fixedNow }
	return e
}

func manyResults(query string, n int) []types.SearchResult {
	out := make([]types.SearchResult, n)
	for i := range out {
		out[i] = types.SearchResult{Title: fmt.Sprintf("%s %d", query, i), URL: fmt.Sprintf("https://example.com/%d", i)}
	}
	return out
}

func TestSearch_RequestsDoubleAndTruncates(t *testing.T) {
	p := &recordingProvider{fn: func(req Request) ([]types.SearchResult, error) {
		return manyResults(req.Query, req.Limit), nil
	}}
	e := newTestExecutor(t, p)

	got, err := e.Search(context.Background(), "Barbie movie", 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	require.Len(t, p.calls, 1)
	assert.Equal(t, 6, p.calls[0].Limit)
	assert.Equal(t, 30, p.calls[0].MaxAgeDays)
	for _, r := range got {
		assert.Equal(t, "Barbie movie", r.Query)
	}
}

func TestSearch_AgeFilterKeepsUnknownDates(t *testing.T) {
	p := &recordingProvider{fn: func(Request) ([]types.SearchResult, error) {
		return []types.SearchResult{
			{Title: "old", URL: "https://a.example/old", PublishedAt: daysAgo(45)},
			{Title: "undated", URL: "https://a.example/undated"},
			{Title: "fresh", URL: "https://a.example/fresh", PublishedAt: daysAgo(2)},
			{Title: "edge", URL: "https://a.example/edge", PublishedAt: daysAgo(30)},
			{Title: "no url"},
		}, nil
	}}
	e := newTestExecutor(t, p)

	got, err := e.Search(context.Background(), "Wicked trailer", 5)
	require.NoError(t, err)

	var titles []string
	for _, r := range got {
		titles = append(titles, r.Title)
	}
	assert.Equal(t, []string{"undated", "fresh", "edge"}, titles)
}

func TestSearch_ResolvesMissingDates(t *testing.T) {
	p := &recordingProvider{fn: func(Request) ([]types.SearchResult, error) {
		return []types.SearchResult{
			{Title: "stale", URL: "https://a.example/stale"},
			{Title: "recent", URL: "https://a.example/recent"},
		}, nil
	}}
	e := newTestExecutor(t, p)
	e.ResolveDate = func(_ context.Context, url string) *time.Time {
		if url == "https://a.example/stale" {
			return daysAgo(400)
		}
		return nil
	}

	got, err := e.Search(context.Background(), "Dune review", 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "recent", got[0].Title)
}

func TestSearch_SkipsShortAndMarkupQueries(t *testing.T) {
	p := &recordingProvider{fn: func(Request) ([]types.SearchResult, error) {
		t.Fatal("provider must not be called")
		return nil, nil
	}}
	e := newTestExecutor(t, p)

	for _, q := range []string{"", "ab", "  x ", "HTML", "doctype", "Meta", "charset"} {
		got, err := e.Search(context.Background(), q, 5)
		assert.NoError(t, err, q)
		assert.Empty(t, got, q)
	}
}

func TestRun_TestModeUsesTwoQueries(t *testing.T) {
	p := &recordingProvider{fn: func(req Request) ([]types.SearchResult, error) {
		return manyResults(req.Query, req.Limit), nil
	}}
	e := newTestExecutor(t, p)
	queries := []types.Query{{Text: "q one"}, {Text: "q two"}, {Text: "q three"}}

	got, err := e.Run(context.Background(), queries, TestMode)
	require.NoError(t, err)
	assert.Len(t, p.calls, 2)
	assert.Len(t, got, 6)
	assert.Equal(t, "q one", got[0].Query)
	assert.Equal(t, "q two", got[5].Query)
}

func TestRun_FinalModeUsesAllQueries(t *testing.T) {
	p := &recordingProvider{fn: func(req Request) ([]types.SearchResult, error) {
		return manyResults(req.Query, req.Limit), nil
	}}
	e := newTestExecutor(t, p)
	queries := []types.Query{{Text: "q one"}, {Text: "q two"}, {Text: "q three"}}

	got, err := e.Run(context.Background(), queries, FinalMode)
	require.NoError(t, err)
	assert.Len(t, p.calls, 3)
	assert.Len(t, got, 15)
	assert.Equal(t, 10, p.calls[0].Limit)
}

func TestRun_FailedQueryIsZeroResults(t *testing.T) {
	boom := errors.New("connection reset")
	p := &recordingProvider{fn: func(req Request) ([]types.SearchResult, error) {
		if req.Query == "bad query" {
			return nil, boom
		}
		return manyResults(req.Query, 1), nil
	}}
	e := newTestExecutor(t, p)

	got, err := e.Run(context.Background(), []types.Query{{Text: "bad query"}, {Text: "good query"}}, TestMode)
	assert.Len(t, got, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	var qErr *QueryError
	require.ErrorAs(t, err, &qErr)
	assert.Equal(t, "bad query", qErr.Query)
}

func TestRun_Pacing(t *testing.T) {
	p := &recordingProvider{fn: func(Request) ([]types.SearchResult, error) { return nil, nil }}
	e := NewExecutor(p, 40*time.Millisecond, 30, zaptest.NewLogger(t))

	start := time.Now()
	_, err := e.Run(context.Background(), []types.Query{{Text: "one q"}, {Text: "two q"}, {Text: "three q"}}, FinalMode)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 75*time.Millisecond)
}

func TestRun_CancelledContextStops(t *testing.T) {
	p := &recordingProvider{fn: func(Request) ([]types.SearchResult, error) { return nil, nil }}
	e := NewExecutor(p, time.Hour, 30, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	_, _ = e.Search(ctx, "first call", 1) // consumes the burst token
	cancel()

	_, err := e.Run(ctx, []types.Query{{Text: "one q"}, {Text: "two q"}}, FinalMode)
	require.Error(t, err)
	assert.Len(t, p.calls, 1)
}

func TestSkippable(t *testing.T) {
	assert.True(t, Skippable("go"))
	assert.True(t, Skippable("日本"), "length is counted in characters")
	assert.True(t, Skippable("é!"))
	assert.False(t, Skippable("君の名"))
	assert.True(t, Skippable(" html "))
	assert.False(t, Skippable("Her"))
	assert.False(t, Skippable("html5 movie"))
}
