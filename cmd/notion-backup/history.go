package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"garnet-hq/notion-backup/pkg/config"
	"garnet-hq/notion-backup/pkg/history"
)

var historyFlags struct {
	limit int
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent backup runs from the local history ledger",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyFlags.limit, "limit", "n", 20, "maximum number of runs to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		return fmt.Errorf("history is not enabled in the configuration")
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	runs, err := store.ListRuns(ctx, historyFlags.limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet")
		return nil
	}

	for _, run := range runs {
		status := "✓"
		if !run.Succeeded {
			status = "✗"
		}
		fmt.Printf("%s %s  %s  databases=%d failures=%d records=%d\n",
			status,
			run.StartedAt.Format(time.RFC3339),
			run.RunID,
			run.Databases,
			run.Failures,
			run.TotalRecords,
		)
	}
	return nil
}
