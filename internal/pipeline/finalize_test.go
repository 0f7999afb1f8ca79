package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jonathan/trend-resolver/internal/types"
)

type fakeResolver struct {
	ids   map[string]string
	err   error
	asked []string
}

func (f *fakeResolver) Resolve(_ context.Context, title string) (string, bool, error) {
	f.asked = append(f.asked, title)
	if f.err != nil {
		return "", false, f.err
	}
	id, ok := f.ids[title]
	return id, ok, nil
}

type fakePersister struct {
	err     error
	records []types.PersistableRecord
}

func (f *fakePersister) Persist(_ context.Context, _ string, records []types.PersistableRecord) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.records = append(f.records, records...)
	return len(records), nil
}

func finishedRun() *Run {
	run := newTestRun("Deadpool & Wolverine", "Weekend Blockbuster", "Super Bowl 2025")
	results := []types.SearchResult{
		{Title: "Deadpool & Wolverine (2024)", URL: "https://www.imdb.com/title/tt6263850/", Query: "Deadpool & Wolverine movie"},
		{Title: "Deadpool & Wolverine review", URL: "https://example.com/review", Query: "Deadpool & Wolverine review"},
	}
	run.markEntertainment("Deadpool & Wolverine", types.TierManual)
	run.FinalResults["Deadpool & Wolverine"] = results
	run.FinalClassifications["Deadpool & Wolverine"] = types.Classification{
		IsEntertainment: true, Confidence: 0.95, ContentType: types.ContentMovie, SpecificContent: "Deadpool & Wolverine",
	}

	run.markEntertainment("Weekend Blockbuster", types.TierManual)
	run.FinalResults["Weekend Blockbuster"] = results[:1]
	run.FinalClassifications["Weekend Blockbuster"] = types.Classification{
		IsEntertainment: true, Confidence: 0.6, ContentType: types.ContentEntertainmentNews,
	}

	run.markNonEntertainment("Super Bowl 2025")
	run.ManualClassifications["Super Bowl 2025"] = types.Classification{ContentType: types.ContentOther, Confidence: 0.9}
	return run
}

func TestFinalize_ResolvesAndPersists(t *testing.T) {
	resolver := &fakeResolver{ids: map[string]string{"Deadpool & Wolverine": "tt6263850"}}
	persister := &fakePersister{}
	f := NewFinalizer(resolver, persister, zaptest.NewLogger(t))

	report := f.Finalize(context.Background(), finishedRun())

	assert.Equal(t, []string{"Deadpool & Wolverine"}, resolver.asked)
	assert.Equal(t, map[string]string{"Deadpool & Wolverine": "tt6263850"}, report.CanonicalIDs)
	assert.Equal(t, 3, report.Saved)
	require.Len(t, persister.records, 3)
	assert.Equal(t, "tt6263850", persister.records[0].IMDbID)
	assert.Equal(t, "Deadpool & Wolverine movie", persister.records[0].SearchQuery)
	assert.Empty(t, persister.records[2].IMDbID)
	assert.Len(t, report.Results, 3)
}

func TestFinalize_RecordsResultAge(t *testing.T) {
	now := time.Date(2024, 7, 28, 9, 0, 0, 0, time.UTC)
	published := now.Add(-50 * time.Hour)
	run := finishedRun()
	run.FinalResults["Deadpool & Wolverine"][1].PublishedAt = &published

	f := NewFinalizer(nil, nil, zaptest.NewLogger(t))
	f.Now = func() time.Time { return now }
	report := f.Finalize(context.Background(), run)

	require.Len(t, report.Records, 3)
	assert.Equal(t, -1, report.Records[0].DaysOld)
	assert.Equal(t, 2, report.Records[1].DaysOld)
}

func TestFinalize_PersistenceFailureSavesZero(t *testing.T) {
	persister := &fakePersister{err: errors.New("disk full")}
	f := NewFinalizer(nil, persister, zaptest.NewLogger(t))
	run := finishedRun()

	report := f.Finalize(context.Background(), run)

	assert.Equal(t, 0, report.Saved)
	assert.Len(t, report.Records, 3)
	assert.Len(t, report.Results, 3)
	failures := run.FailuresOf(KindPersistenceFailure)
	require.Len(t, failures, 1)
	assert.EqualError(t, failures[0].Cause, "disk full")
	assert.Equal(t, 1, report.Summary.Failures[KindPersistenceFailure])
}

func TestFinalize_ResolverErrorKeepsRecords(t *testing.T) {
	resolver := &fakeResolver{err: errors.New("timeout")}
	persister := &fakePersister{}
	f := NewFinalizer(resolver, persister, zaptest.NewLogger(t))
	run := finishedRun()

	report := f.Finalize(context.Background(), run)

	assert.Empty(t, report.CanonicalIDs)
	assert.Equal(t, 3, report.Saved)
	assert.Len(t, run.FailuresOf(KindSourceUnavailable), 1)
}

func TestFinalize_NothingToSave(t *testing.T) {
	persister := &fakePersister{}
	run := newTestRun("Super Bowl 2025")
	run.markNonEntertainment("Super Bowl 2025")

	report := NewFinalizer(nil, persister, nil).Finalize(context.Background(), run)

	assert.Zero(t, report.Saved)
	assert.Empty(t, report.Records)
	assert.Empty(t, persister.records)
}
