package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/trend-resolver/internal/observability"
	"github.com/jonathan/trend-resolver/internal/types"
)

var (
	trendContext string
	trendLink    string
	contentType  string
)

var classifyCmd = &cobra.Command{
	Use:   "classify <trend>",
	Short: "Classify a single trend without storing anything",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		candidate := candidateFromArgs(args)

		orchestrator, closeFn, err := newOrchestrator(ctx, appConfig)
		if err != nil {
			return err
		}
		defer closeFn()

		run := orchestrator.RunCandidates(ctx, []types.TrendCandidate{candidate})
		results := run.Results()
		if len(results) == 0 {
			return fmt.Errorf("trend %q produced no result", candidate.Text)
		}

		printer := observability.NewPrinter(cmd.OutOrStdout())
		printer.PrintClassification(results[0])
		for _, f := range run.Failures {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", f)
		}
		return nil
	},
}

func init() {
	addCandidateFlags(classifyCmd)
	addSearchFlags(classifyCmd)
	rootCmd.AddCommand(classifyCmd)
}

func addCandidateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&trendContext, "context", "", "Context line shown alongside the trend")
	cmd.Flags().StringVar(&trendLink, "link", "", "Source link for article enrichment")
	cmd.Flags().StringVar(&contentType, "content-type", "", "Content type hint (movie, tv)")
}

func candidateFromArgs(args []string) types.TrendCandidate {
	return types.TrendCandidate{
		Text:            strings.TrimSpace(strings.Join(args, " ")),
		Origin:          types.OriginFallback,
		Context:         trendContext,
		SourceURL:       trendLink,
		ContentTypeHint: contentType,
	}
}
