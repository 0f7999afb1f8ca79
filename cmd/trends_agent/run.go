package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/trend-resolver/internal/db"
	"github.com/jonathan/trend-resolver/internal/observability"
	"github.com/jonathan/trend-resolver/internal/pipeline"
	"github.com/jonathan/trend-resolver/internal/resolve"
	"github.com/jonathan/trend-resolver/internal/sources"
)

var (
	noSave     bool
	jsonOutput bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Harvest trends, classify them and store the evidence",
	Long: `Fetches trending topics from the configured sources, runs each candidate through
test searches and classification (escalating to model-generated queries when the manual
pass is inconclusive), executes final searches for entertainment trends, resolves canonical
identifiers and persists one record per final search result.`,
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "Skip persistence and only print the report")
	runCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
	runCmd.Flags().StringSliceVar(&sourceNames, "sources", nil, "Trend sources (google_trends, tmdb, reddit, twitter)")
	addSearchFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := appConfig

	srcs, err := newSources(cfg, logger)
	if err != nil {
		return err
	}
	batches := sources.Harvest(ctx, srcs, logger)

	orchestrator, closeFn, err := newOrchestrator(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	var store db.Store
	if !noSave {
		store, err = db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer func() { _ = store.Close() }()
	}

	run := orchestrator.Run(ctx, batches...)
	report := finalize(ctx, run, cfg.OMDbAPIKey, store)

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintReport(report)
	return nil
}

// finalize resolves identifiers and persists the run, recording its bookkeeping row
// when a store is available.
func finalize(ctx context.Context, run *pipeline.Run, omdbKey string, store db.Store) *pipeline.Report {
	var resolver pipeline.Resolver
	if omdbKey != "" {
		resolver = resolve.NewOMDb(omdbKey, logger)
	}
	var persister pipeline.Persister
	if store != nil {
		persister = store
		if err := store.CreateRun(ctx, run.ID, len(run.Candidates)); err != nil {
			logger.Warn("failed to record run", zap.String("run_id", run.ID), zap.Error(err))
		}
	}

	report := pipeline.NewFinalizer(resolver, persister, logger).Finalize(ctx, run)

	if store != nil {
		status := db.RunStatusCompleted
		if len(run.FailuresOf(pipeline.KindPersistenceFailure)) > 0 {
			status = db.RunStatusFailed
		}
		counts := db.RunCounts{
			Entertainment:    report.Summary.Entertainment,
			NonEntertainment: report.Summary.NonEntertainment,
			Saved:            report.Saved,
		}
		if err := store.CompleteRun(ctx, run.ID, status, counts); err != nil {
			logger.Warn("failed to complete run", zap.String("run_id", run.ID), zap.Error(err))
		}
	}
	return report
}
