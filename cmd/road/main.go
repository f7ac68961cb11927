// road is a terminal endless runner where the road remembers your choices.
//
// Usage:
//
//	road play               - Walk the road in this terminal
//	road serve              - Start SSH server for remote play
//	road runs               - Show archived runs
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible roads
//	--db <path>     - Set run archive path (default: ~/.road/runs.db)
//	--verbose       - Log debug output
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "road",
	Short: "The Road That Remembers - a terminal endless runner",
	Long: `The Road That Remembers is a three-lane endless runner for the terminal.
What you choose on the road changes how fast you walk and what the road becomes.

Available commands:
  play     - Walk the road
  serve    - Start SSH server for remote play
  runs     - View archived runs

Examples:
  road play
  road play --difficulty hard --seed 42
  road serve --ssh :2222
  road runs --best`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.road/runs.db", "Path to run archive database")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Log debug output")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
}
