package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/trend-resolver/internal/aggregate"
	"github.com/jonathan/trend-resolver/internal/fetch"
	"github.com/jonathan/trend-resolver/internal/queries"
	"github.com/jonathan/trend-resolver/internal/search"
	"github.com/jonathan/trend-resolver/internal/types"
)

// Searcher runs a query set under a search mode. Results stay valid when err is non-nil.
type Searcher interface {
	Run(ctx context.Context, qs []types.Query, mode search.Mode) ([]types.SearchResult, error)
}

// QueryGenerator produces model-assisted queries for an escalated candidate.
type QueryGenerator interface {
	Generate(ctx context.Context, c types.TrendCandidate) ([]types.Query, error)
}

// Classifier judges a candidate from its evidence. The classification is always usable,
// even when err reports a recovered model failure.
type Classifier interface {
	Classify(ctx context.Context, c types.TrendCandidate, results []types.SearchResult) (types.Classification, error)
}

// ArticleScraper fetches article text for enrichment; "" means nothing usable.
type ArticleScraper interface {
	ScrapeArticle(ctx context.Context, link string, maxLength int) string
}

// ProgressEvent is emitted after every state completes.
type ProgressEvent struct {
	RunID   string         `json:"run_id"`
	State   State          `json:"state"`
	Next    State          `json:"next"`
	Message string         `json:"message"`
	Counts  map[string]int `json:"counts,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Orchestrator drives a Run through the state machine, one state at a time over the
// whole batch. Every collaborator call is sequential.
type Orchestrator struct {
	Searcher     Searcher
	ModelQueries QueryGenerator
	Classifier   Classifier
	// Scraper enriches escalated candidates before model query generation; optional
	Scraper       ArticleScraper
	ArticleLength int
	Logger        *zap.Logger
	OnProgress    ProgressCallback
}

// New creates an orchestrator. scraper may be nil.
func New(searcher Searcher, modelQueries QueryGenerator, classifier Classifier, scraper ArticleScraper, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		Searcher:      searcher,
		ModelQueries:  modelQueries,
		Classifier:    classifier,
		Scraper:       scraper,
		ArticleLength: fetch.DefaultArticleLength,
		Logger:        logger,
	}
}

// Resolve aggregates raw batches (in source priority order) and runs the pipeline to
// completion, returning one ClassifiedTrend per candidate.
func (o *Orchestrator) Resolve(ctx context.Context, batches ...[]types.RawTrendRecord) []types.ClassifiedTrend {
	return o.Run(ctx, batches...).Results()
}

// Run executes a full pipeline run and returns the finished accumulator.
// No collaborator failure aborts the run; failures are recorded on Run.Failures.
func (o *Orchestrator) Run(ctx context.Context, batches ...[]types.RawTrendRecord) *Run {
	run := NewRun(uuid.NewString())
	run.SetCandidates(aggregate.Candidates(batches...))
	o.execute(ctx, run)
	return run
}

// RunCandidates runs already-built candidates, skipping source aggregation. Duplicate
// texts are dropped, first occurrence wins.
func (o *Orchestrator) RunCandidates(ctx context.Context, candidates []types.TrendCandidate) *Run {
	run := NewRun(uuid.NewString())
	seen := make(map[string]struct{}, len(candidates))
	unique := make([]types.TrendCandidate, 0, len(candidates))
	for _, c := range candidates {
		if _, dup := seen[c.Text]; dup || c.Text == "" {
			continue
		}
		seen[c.Text] = struct{}{}
		unique = append(unique, c)
	}
	run.SetCandidates(unique)
	o.execute(ctx, run)
	return run
}

func (o *Orchestrator) execute(ctx context.Context, run *Run) {
	o.Logger.Info("pipeline started", zap.String("run_id", run.ID), zap.Int("candidates", len(run.Candidates)))
	for run.State != StateDone {
		o.step(ctx, run)
		run.History = append(run.History, run.State)
		next := NextState(run)
		o.emit(run, next)
		run.State = next
	}
	s := run.Summarize()
	o.Logger.Info("pipeline finished",
		zap.String("run_id", run.ID),
		zap.Int("entertainment", s.Entertainment),
		zap.Int("non_entertainment", s.NonEntertainment),
		zap.Int("failures", len(run.Failures)))
}

func (o *Orchestrator) step(ctx context.Context, run *Run) {
	switch run.State {
	case StateAggregate:
		// candidates are installed before the loop starts
	case StateGenerateManualQueries:
		o.generateManualQueries(run)
	case StateTestManualQueries:
		o.testQueries(ctx, run, run.State, candidateTexts(run), run.ManualQueries, run.ManualResults)
	case StateClassifyManual:
		o.classifyManual(ctx, run)
	case StateGenerateModelQueries:
		o.generateModelQueries(ctx, run)
	case StateTestModelQueries:
		o.testQueries(ctx, run, run.State, append([]string(nil), run.NonEntertainment...), run.ModelQueries, run.ModelResults)
	case StateClassifyModel:
		o.classifyModel(ctx, run)
	case StateExecuteFinalSearches:
		o.executeFinalSearches(ctx, run)
	case StateClassifyFinal:
		o.classifyFinal(ctx, run)
	}
}

func candidateTexts(run *Run) []string {
	out := make([]string, len(run.Candidates))
	for i, c := range run.Candidates {
		out[i] = c.Text
	}
	return out
}

func (o *Orchestrator) generateManualQueries(run *Run) {
	for _, c := range run.Candidates {
		qs := queries.Manual(c)
		run.ManualQueries[c.Text] = qs
		if len(qs) == 0 {
			run.ManualResults[c.Text] = nil
		}
	}
}

// testQueries runs the cheap probe search for each trend that has queries.
func (o *Orchestrator) testQueries(ctx context.Context, run *Run, state State, texts []string, qs map[string][]types.Query, into map[string][]types.SearchResult) {
	for _, text := range texts {
		tq := qs[text]
		if len(tq) == 0 {
			into[text] = nil
			continue
		}
		results, err := o.Searcher.Run(ctx, tq, search.TestMode)
		if err != nil {
			o.Logger.Warn("test search failed", zap.String("trend", text), zap.String("state", string(state)), zap.Error(err))
			run.fail(KindSourceUnavailable, state, text, err)
		}
		into[text] = results
		o.Logger.Debug("test search", zap.String("trend", text), zap.Int("results", len(results)))
	}
}

// classify runs the classifier and records recovered failures and empty evidence.
func (o *Orchestrator) classify(ctx context.Context, run *Run, state State, text string, results []types.SearchResult) types.Classification {
	c, _ := run.Candidate(text)
	if len(results) == 0 {
		run.EvidenceGaps = append(run.EvidenceGaps, EvidenceGap{State: state, Trend: text})
	}
	cls, err := o.Classifier.Classify(ctx, c, results)
	if err != nil {
		kind := kindOf(err)
		o.Logger.Warn("classification recovered", zap.String("trend", text), zap.String("state", string(state)),
			zap.String("kind", string(kind)), zap.Error(err))
		run.fail(kind, state, text, err)
	}
	return cls
}

func (o *Orchestrator) classifyManual(ctx context.Context, run *Run) {
	for _, c := range run.Candidates {
		cls := o.classify(ctx, run, StateClassifyManual, c.Text, run.ManualResults[c.Text])
		run.ManualClassifications[c.Text] = cls
		if cls.IsEntertainment {
			run.markEntertainment(c.Text, types.TierManual)
		} else {
			run.markNonEntertainment(c.Text)
		}
	}
}

func (o *Orchestrator) generateModelQueries(ctx context.Context, run *Run) {
	for _, text := range run.NonEntertainment {
		c := o.enrich(ctx, run, text)
		if o.ModelQueries == nil {
			run.ModelQueries[text] = nil
			continue
		}
		qs, err := o.ModelQueries.Generate(ctx, c)
		if err != nil {
			o.Logger.Warn("model query generation failed", zap.String("trend", text), zap.Error(err))
			run.fail(kindOf(err), StateGenerateModelQueries, text, err)
			qs = nil
		}
		run.ModelQueries[text] = qs
	}
}

// enrich attaches scraped article text to an escalated candidate.
func (o *Orchestrator) enrich(ctx context.Context, run *Run, text string) types.TrendCandidate {
	c, _ := run.Candidate(text)
	if o.Scraper == nil || c.ArticleContent != "" || c.SourceURL == "" || c.Origin == types.OriginGoogleTrends {
		return c
	}
	article := o.Scraper.ScrapeArticle(ctx, c.SourceURL, o.ArticleLength)
	if article == "" {
		return c
	}
	c = c.WithArticle(article)
	run.replaceCandidate(c)
	o.Logger.Debug("candidate enriched", zap.String("trend", text), zap.Int("chars", len(article)))
	return c
}

func (o *Orchestrator) classifyModel(ctx context.Context, run *Run) {
	// iterate over a copy: upgrades shrink NonEntertainment
	for _, text := range append([]string(nil), run.NonEntertainment...) {
		cls := o.classify(ctx, run, StateClassifyModel, text, run.ModelResults[text])
		run.ModelClassifications[text] = cls
		if cls.IsEntertainment {
			run.markEntertainment(text, types.TierModel)
		}
	}
}

func (o *Orchestrator) executeFinalSearches(ctx context.Context, run *Run) {
	for _, text := range run.Entertainment {
		qs := run.FinalQueries(text)
		results, err := o.Searcher.Run(ctx, qs, search.FinalMode)
		if err != nil {
			o.Logger.Warn("final search failed", zap.String("trend", text), zap.Error(err))
			run.fail(KindSourceUnavailable, StateExecuteFinalSearches, text, err)
		}
		if results == nil {
			results = []types.SearchResult{}
		}
		run.FinalResults[text] = results
	}
}

func (o *Orchestrator) classifyFinal(ctx context.Context, run *Run) {
	for _, text := range run.Entertainment {
		run.FinalClassifications[text] = o.classify(ctx, run, StateClassifyFinal, text, run.FinalResults[text])
	}
}

func (o *Orchestrator) emit(run *Run, next State) {
	msg := fmt.Sprintf("%s complete: %d entertainment, %d non-entertainment",
		run.State, len(run.Entertainment), len(run.NonEntertainment))
	o.Logger.Info("state complete", zap.String("run_id", run.ID), zap.String("state", string(run.State)), zap.String("next", string(next)))
	if o.OnProgress == nil {
		return
	}
	o.OnProgress(ProgressEvent{
		RunID:   run.ID,
		State:   run.State,
		Next:    next,
		Message: msg,
		Counts: map[string]int{
			"candidates":        len(run.Candidates),
			"entertainment":     len(run.Entertainment),
			"non_entertainment": len(run.NonEntertainment),
			"no_evidence":       len(run.EvidenceGaps),
			"failures":          len(run.Failures),
		},
	})
}
