package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/trend-resolver/internal/classify"
	"github.com/jonathan/trend-resolver/internal/config"
	"github.com/jonathan/trend-resolver/internal/fetch"
	"github.com/jonathan/trend-resolver/internal/llm"
	"github.com/jonathan/trend-resolver/internal/observability"
	"github.com/jonathan/trend-resolver/internal/pipeline"
	"github.com/jonathan/trend-resolver/internal/queries"
	"github.com/jonathan/trend-resolver/internal/search"
	"github.com/jonathan/trend-resolver/internal/sources"
)

// Per-command flags shared by run and classify.
var (
	searchProvider string
	maxAgeDays     int
	resolveDates   bool
	sourceNames    []string
)

func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&searchProvider, "search", "", "Search provider: google or duckduckgo")
	cmd.Flags().IntVar(&maxAgeDays, "max-age", 0, "Drop search results older than this many days")
	cmd.Flags().BoolVar(&resolveDates, "resolve-dates", false, "Fetch result pages to infer missing publication dates")
}

// applyCommandFlags copies explicitly set per-command flags onto the config.
func applyCommandFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("search") {
		cfg.SearchProvider = searchProvider
	}
	if flags.Changed("max-age") {
		cfg.MaxAgeDays = maxAgeDays
	}
	if flags.Changed("resolve-dates") {
		cfg.ResolveDates = resolveDates
	}
	if flags.Changed("sources") {
		cfg.Sources = sourceNames
	}
}

// newLLMClient returns nil when no API key is configured; every model path then
// falls back to its deterministic branch.
func newLLMClient(ctx context.Context, cfg config.Config) (llm.Client, error) {
	if cfg.APIKey == "" {
		logger.Warn("no Gemini API key, using keyword classification only")
		return nil, nil
	}
	llmCfg := llm.DefaultConfig()
	if cfg.Model != "" {
		llmCfg = llmCfg.WithModel(llm.TierStandard, cfg.Model)
	}
	if cfg.Temperature > 0 {
		llmCfg.Temperature = cfg.Temperature
	}
	return llm.NewClient(ctx, llmCfg, cfg.APIKey)
}

func newSearchProvider(ctx context.Context, cfg config.Config) (search.Provider, error) {
	if cfg.UsesGoogleSearch() {
		return search.NewGoogleProvider(ctx, cfg.GoogleSearchAPIKey, cfg.GoogleSearchCX)
	}
	if cfg.SearchProvider == config.SearchGoogle {
		logger.Warn("google custom search not configured, using duckduckgo")
	}
	return search.NewDuckDuckGoProvider(), nil
}

// newOrchestrator wires the pipeline collaborators. The returned close func releases the model client.
func newOrchestrator(ctx context.Context, cfg config.Config) (*pipeline.Orchestrator, func(), error) {
	provider, err := newSearchProvider(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	executor := search.NewExecutor(provider, cfg.Pacing(), cfg.MaxAgeDays, logger)
	if cfg.ResolveDates {
		executor = executor.WithPageDates(fetch.DefaultOptions())
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create llm client: %w", err)
	}
	closeFn := func() {}
	var generator pipeline.QueryGenerator
	if client != nil {
		closeFn = func() { _ = client.Close() }
		generator = queries.NewModelGenerator(client, logger)
	}

	o := pipeline.New(executor, generator, classify.New(client, logger), fetch.NewScraper(logger), logger)
	o.ArticleLength = cfg.ArticleLength
	if verbose {
		printer := observability.NewPrinter(rootCmd.OutOrStdout())
		o.OnProgress = printer.PrintProgress
	}
	return o, closeFn, nil
}

func newSources(cfg config.Config, log *zap.Logger) ([]sources.Source, error) {
	var out []sources.Source
	for _, name := range cfg.Sources {
		switch strings.ToLower(name) {
		case config.SourceGoogleTrends:
			out = append(out, sources.NewGoogleTrends(log))
		case config.SourceTMDB:
			out = append(out, sources.NewTMDB(cfg.TMDBAPIKey, log))
		case config.SourceReddit:
			out = append(out, sources.NewReddit())
		case config.SourceTwitter:
			out = append(out, sources.NewTrends24())
		default:
			return nil, fmt.Errorf("unknown source %q", name)
		}
	}
	return out, nil
}
