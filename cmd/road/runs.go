package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/road-remembers/internal/platform/tui"
	"github.com/vovakirdan/road-remembers/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsBest  bool
	flagRunsTUI   bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show archived runs",
	Long: `Display archived runs, newest first or longest first.

Examples:
  road runs
  road runs --best --limit 5
  road runs --tui`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsBest, "best", false, "Sort by distance instead of date")
	runsCmd.Flags().BoolVar(&flagRunsTUI, "tui", false, "Browse runs interactively")
}

func runRuns(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run archive: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	order := tui.RunsRecent
	if flagRunsBest {
		order = tui.RunsBest
	}

	if flagRunsTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunRunsBoard(store, order, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	ctx := context.Background()
	var runs []storage.RunEntry
	if flagRunsBest {
		runs, err = store.BestRuns(ctx, flagRunsLimit)
	} else {
		runs, err = store.RecentRuns(ctx, flagRunsLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Println(order.String())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs archived yet.")
		fmt.Println()
		fmt.Println("Run 'road play' to leave the first memory.")
		return
	}

	fmt.Printf("  %-4s  %-10s  %-4s  %-4s  %-6s  %-8s  %s\n", "#", "Distance", "Aid", "Duty", "Hunger", "Mood", "Date")
	fmt.Printf("  %-4s  %-10s  %-4s  %-4s  %-6s  %-8s  %s\n", "--", "--------", "---", "----", "------", "----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-10s  %-4d  %-4d  %-6d  %-8s  %s\n",
			i+1, fmt.Sprintf("%d m", int(r.Distance)), r.Carrying, r.Discipline, r.Hunger, r.Mood,
			r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	if stats, err := store.Stats(ctx); err == nil && stats.Runs > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Longest: %d m  Total: %d m\n", stats.Runs, int(stats.BestDistance), int(stats.TotalDistance))
	}
}
