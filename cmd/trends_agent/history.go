package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/trend-resolver/internal/db"
	"github.com/jonathan/trend-resolver/internal/observability"
)

var (
	historyKeyword string
	historyRunID   string
	historyLimit   int
	listRuns       bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show stored trend evidence or past runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		store, err := db.Open(ctx, appConfig.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer func() { _ = store.Close() }()

		printer := observability.NewPrinter(cmd.OutOrStdout())
		if listRuns {
			runs, err := store.Runs(ctx, historyLimit)
			if err != nil {
				return err
			}
			printer.PrintRuns(runs)
			return nil
		}

		rows, err := store.History(ctx, db.HistoryFilter{
			Keyword: historyKeyword,
			RunID:   historyRunID,
			Limit:   historyLimit,
		})
		if err != nil {
			return err
		}
		printer.PrintHistory(rows)
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVarP(&historyKeyword, "keyword", "k", "", "Only rows whose trend contains this keyword")
	historyCmd.Flags().StringVar(&historyRunID, "run", "", "Only rows from this run")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", db.DefaultHistoryLimit, "Maximum rows to show")
	historyCmd.Flags().BoolVar(&listRuns, "runs", false, "List runs instead of trend rows")
	rootCmd.AddCommand(historyCmd)
}
