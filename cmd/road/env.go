package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/vovakirdan/road-remembers/internal/config"
)

// newLogger builds the CLI logger writing to w.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// openLogFile opens ~/.road/road.log for append. The terminal belongs to the
// game while it runs, so play logs go there instead of stderr.
func openLogFile() (io.WriteCloser, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".road")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "road.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}

// loadSyncEnv reads remote sync settings from .env and the process environment.
// Problems are logged and fall back to the placeholder, leaving the remote sink off.
func loadSyncEnv(logger *log.Logger) config.SyncEnv {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("could not load .env file", "error", err)
	}

	v := viper.New()
	v.AutomaticEnv()

	env, err := config.LoadSyncEnv(v)
	if err != nil {
		logger.Warn("remote sync disabled", "reason", err)
	}
	return env
}

// loadRoadConfig resolves the game config and applies the difficulty preset.
func loadRoadConfig(path, difficulty string) (config.RoadConfig, error) {
	cfg, err := config.LoadRoad(path)
	if err != nil {
		return cfg, err
	}
	config.ApplyRoadPreset(&cfg, config.ParsePreset(difficulty))
	return cfg, nil
}
