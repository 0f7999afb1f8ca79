package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/trend-resolver/internal/types"
)

// Resolver looks up a canonical identifier for a title. ok is false when nothing matched.
type Resolver interface {
	Resolve(ctx context.Context, title string) (id string, ok bool, err error)
}

// Persister stores one batch of records and returns how many were stored.
type Persister interface {
	Persist(ctx context.Context, runID string, records []types.PersistableRecord) (int, error)
}

// Report is the outcome of finalizing a run.
type Report struct {
	RunID   string
	Results []types.ClassifiedTrend
	// CanonicalIDs maps trend text to its resolved identifier
	CanonicalIDs map[string]string
	Records      []types.PersistableRecord
	Saved        int
	Summary      Summary
}

// Finalizer performs identifier resolution and persistence after a run completes.
// Either collaborator may be nil.
type Finalizer struct {
	Resolver  Resolver
	Persister Persister
	Logger    *zap.Logger
	// Now is the reference time for result ages
	Now func() time.Time
}

// NewFinalizer creates a finalizer.
func NewFinalizer(resolver Resolver, persister Persister, logger *zap.Logger) *Finalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Finalizer{Resolver: resolver, Persister: persister, Logger: logger, Now: time.Now}
}

// Finalize resolves identifiers for entertainment trends that name a specific title and
// persists one record per final search result. A persistence failure is recorded on the
// run and reported as zero saved; the in-memory results are always returned.
func (f *Finalizer) Finalize(ctx context.Context, run *Run) *Report {
	report := &Report{
		RunID:        run.ID,
		Results:      run.Results(),
		CanonicalIDs: make(map[string]string),
	}

	now := time.Now()
	if f.Now != nil {
		now = f.Now()
	}
	for _, t := range report.Results {
		if !t.FinalClassification.IsEntertainment {
			continue
		}
		id := f.resolve(ctx, run, t)
		if id != "" {
			report.CanonicalIDs[t.Candidate.Text] = id
		}
		report.Records = append(report.Records, types.RecordsFor(t, id, now)...)
	}

	report.Saved = f.persist(ctx, run, report.Records)
	report.Summary = run.Summarize()
	return report
}

func (f *Finalizer) resolve(ctx context.Context, run *Run, t types.ClassifiedTrend) string {
	title := t.FinalClassification.SpecificContent
	if f.Resolver == nil || title == "" {
		return ""
	}
	id, ok, err := f.Resolver.Resolve(ctx, title)
	if err != nil {
		f.Logger.Warn("identifier resolution failed", zap.String("trend", t.Candidate.Text),
			zap.String("title", title), zap.Error(err))
		run.fail(KindSourceUnavailable, StateDone, t.Candidate.Text, fmt.Errorf("resolve %q: %w", title, err))
		return ""
	}
	if !ok {
		f.Logger.Debug("no identifier found", zap.String("title", title))
		return ""
	}
	return id
}

func (f *Finalizer) persist(ctx context.Context, run *Run, records []types.PersistableRecord) int {
	if f.Persister == nil || len(records) == 0 {
		return 0
	}
	saved, err := f.Persister.Persist(ctx, run.ID, records)
	if err != nil {
		f.Logger.Error("persist failed", zap.String("run_id", run.ID), zap.Int("records", len(records)), zap.Error(err))
		run.fail(KindPersistenceFailure, StateDone, "", err)
		return 0
	}
	f.Logger.Info("records saved", zap.String("run_id", run.ID), zap.Int("saved", saved))
	return saved
}
