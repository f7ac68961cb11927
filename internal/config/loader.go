package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadRoad loads the road configuration.
// Search order: customPath -> ~/.road/configs/road.yaml -> ./configs/road.yaml -> embedded default.
// Files are decoded over the defaults, so a file only needs the keys it changes.
func LoadRoad(customPath string) (RoadConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RoadConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseRoad(data)
		if err != nil {
			return RoadConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("road.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseRoad(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/road.yaml"); err == nil {
		if cfg, err := parseRoad(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseRoad(defaultRoadYAML)
	if err != nil {
		return DefaultRoadConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseRoad decodes YAML over the hardcoded defaults and validates the result.
func parseRoad(data []byte) (RoadConfig, error) {
	cfg := DefaultRoadConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RoadConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return RoadConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".road", "configs", filename)
}

// Validate reports configuration values the simulation cannot run with.
func (c RoadConfig) Validate() error {
	var errs []error

	if c.Physics.BaseSpeed <= 0 {
		errs = append(errs, errors.New("physics.base_speed must be positive"))
	}
	if c.Physics.MinSpeedFactor <= 0 {
		errs = append(errs, errors.New("physics.min_speed_factor must be positive"))
	}
	if c.Physics.MaxSpeedFactor < c.Physics.MinSpeedFactor {
		errs = append(errs, errors.New("physics.max_speed_factor must not be below min_speed_factor"))
	}
	if c.Physics.LateralSmoothing <= 0 || c.Physics.LateralSmoothing > 1 {
		errs = append(errs, errors.New("physics.lateral_smoothing must be in (0, 1]"))
	}
	if c.World.SpawnDistance <= 0 {
		errs = append(errs, errors.New("world.spawn_distance must be positive"))
	}
	if c.World.VisibilityDepth <= 0 {
		errs = append(errs, errors.New("world.visibility_depth must be positive"))
	}
	if c.World.TrailMargin < 0 {
		errs = append(errs, errors.New("world.trail_margin must not be negative"))
	}
	if c.World.ZoneHalfWidth <= 0 {
		errs = append(errs, errors.New("world.zone_half_width must be positive"))
	}
	// Segments closer than the zone width could be in zone together.
	if 2*c.World.ZoneHalfWidth > c.World.SpawnDistance {
		errs = append(errs, errors.New("world.spawn_distance must be at least twice zone_half_width"))
	}
	if c.Difficulty.RampDistance <= 0 {
		errs = append(errs, errors.New("difficulty.ramp_distance must be positive"))
	}
	if c.Timing.GlitchMS < 0 || c.Timing.PromptLifetimeMS < 0 {
		errs = append(errs, errors.New("timing values must not be negative"))
	}
	switch c.Sync.Mode {
	case SyncModeThreshold, SyncModeModulus:
	default:
		errs = append(errs, fmt.Errorf("sync.mode %q is not one of %q, %q", c.Sync.Mode, SyncModeThreshold, SyncModeModulus))
	}
	if c.Sync.Interval <= 0 {
		errs = append(errs, errors.New("sync.interval must be positive"))
	}

	return errors.Join(errs...)
}

// ApplyRoadPreset modifies the config based on a difficulty preset.
func ApplyRoadPreset(cfg *RoadConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	// Easy stretches the ramp so the second obstacle arrives later
	if preset == DifficultyEasy {
		cfg.Difficulty.RampDistance *= 2
	}
}
