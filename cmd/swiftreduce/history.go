package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"swiftreduce/internal/cache"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past reduction runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of runs to show (0 for all)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if !cfg.Cache.Enabled {
		fmt.Println("session history is disabled (cache.enabled: false)")
		return nil
	}

	store, err := cache.Open(cfg.Cache.Path)
	if err != nil {
		return fmt.Errorf("opening session history: %w", err)
	}
	defer store.Close()

	runs, err := store.ListRuns(historyLimit)
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}

	fmt.Printf("%-20s %10s %10s %8s %8s  %s\n", "started", "bytes", "->bytes", "args", "->args", "outcome")
	for _, r := range runs {
		fmt.Printf("%-20s %10d %10d %8d %8d  %s\n",
			time.Unix(r.StartedAt, 0).Format(time.RFC3339),
			r.InitialByteSize, r.FinalByteSize, r.InitialArgCount, r.FinalArgCount, r.Outcome)
	}
	return nil
}
