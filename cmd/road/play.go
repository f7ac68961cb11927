package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/time/rate"

	"github.com/vovakirdan/road-remembers/internal/config"
	"github.com/vovakirdan/road-remembers/internal/core"
	"github.com/vovakirdan/road-remembers/internal/platform/tui"
	"github.com/vovakirdan/road-remembers/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Walk the road",
	Long: `Start a run in this terminal.

Controls:
  Any key    - Wake (start screen)
  Left/A     - Shift one lane left
  Right/D    - Shift one lane right
  P          - Pause
  Ctrl+S     - Save a screenshot to ~/.road/screenshots
  Q/Ctrl+C   - Quit

Difficulty options:
  normal - The road hardens over 10000 m of travel
  easy   - The road hardens over twice the distance
  hard   - Start halfway up the difficulty ramp
  fixed  - No progression, stays at config's initial level

Remote sync reads ROAD_SUPABASE_URL, ROAD_SUPABASE_KEY and ROAD_SYNC_TIMEOUT
from the environment or a .env file. Without them runs are archived locally only.

Examples:
  road play
  road play --difficulty easy
  road play --seed 42
  road play --config ./my-road.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom road config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, _ []string) {
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q\n", flagDifficulty)
		os.Exit(1)
	}

	roadCfg, err := loadRoadConfig(flagConfig, flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var logOut io.Writer = io.Discard
	if f, logErr := openLogFile(); logErr == nil {
		defer f.Close()
		logOut = f
	}
	logger := newLogger(logOut, "road")

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run archive: %v\n", err)
		// Continue without storage - the road still works
		store = nil
	}

	sink := tui.NewSink(store, loadSyncEnv(logger), logger, rate.Inf, 0)

	runErr := tui.Run(roadCfg, cfg, sink)

	// Drain pending syncs before the archive closes
	sink.Close()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
