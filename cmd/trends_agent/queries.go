package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/trend-resolver/internal/llm"
	"github.com/jonathan/trend-resolver/internal/observability"
	"github.com/jonathan/trend-resolver/internal/queries"
)

var withModel bool

var queriesCmd = &cobra.Command{
	Use:   "queries <trend>",
	Short: "Print the search queries generated for a trend",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		candidate := candidateFromArgs(args)
		printer := observability.NewPrinter(cmd.OutOrStdout())
		printer.PrintQueries(candidate.Text, queries.Manual(candidate))

		if !withModel {
			return nil
		}
		ctx := cmd.Context()
		client, err := newLLMClient(ctx, appConfig)
		if err != nil {
			return err
		}
		if client == nil {
			return &llm.Error{Kind: llm.ErrNotConfigured, Message: "--model requires a Gemini API key"}
		}
		defer func() { _ = client.Close() }()

		generated, err := queries.NewModelGenerator(client, logger).Generate(ctx, candidate)
		if err != nil {
			return err
		}
		printer.PrintQueries(candidate.Text+" (model)", generated)
		return nil
	},
}

func init() {
	addCandidateFlags(queriesCmd)
	queriesCmd.Flags().BoolVar(&withModel, "model", false, "Also generate model queries")
	rootCmd.AddCommand(queriesCmd)
}
