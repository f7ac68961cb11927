// Package config provides YAML-based road configuration loading and
// difficulty management.
package config

import "time"

// RoadConfig contains all tunables for the road simulation.
type RoadConfig struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	World      WorldConfig      `yaml:"world"`
	Generation GenerationConfig `yaml:"generation"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Timing     TimingConfig     `yaml:"timing"`
	Sync       SyncConfig       `yaml:"sync"`
}

// PhysicsConfig defines speed and motion integration parameters.
type PhysicsConfig struct {
	BaseSpeed            float64 `yaml:"base_speed"`
	MinSpeedFactor       float64 `yaml:"min_speed_factor"` // Floor as a multiple of base speed
	MaxSpeedFactor       float64 `yaml:"max_speed_factor"` // Ceiling as a multiple of base speed
	DeltaScale           float64 `yaml:"delta_scale"`      // Speed units per elapsed millisecond
	ZScale               float64 `yaml:"z_scale"`          // World z advanced per unit of distance
	LateralSmoothing     float64 `yaml:"lateral_smoothing"`
	CarryingSpeedFactor  float64 `yaml:"carrying_speed_factor"`
	HungerSpeedFactor    float64 `yaml:"hunger_speed_factor"`
	CollisionSpeedFactor float64 `yaml:"collision_speed_factor"`
}

// MinSpeed returns the absolute speed floor.
func (p PhysicsConfig) MinSpeed() float64 {
	return p.BaseSpeed * p.MinSpeedFactor
}

// MaxSpeed returns the absolute speed ceiling.
func (p PhysicsConfig) MaxSpeed() float64 {
	return p.BaseSpeed * p.MaxSpeedFactor
}

// WorldConfig defines road geometry in world units.
type WorldConfig struct {
	LaneWidth       float64 `yaml:"lane_width"`
	VisibilityDepth float64 `yaml:"visibility_depth"`
	SpawnDistance   float64 `yaml:"spawn_distance"`
	TrailMargin     float64 `yaml:"trail_margin"`
	ZoneHalfWidth   float64 `yaml:"zone_half_width"`
	PlayerOffset    float64 `yaml:"player_offset"`
}

// GenerationConfig defines segment content probabilities.
type GenerationConfig struct {
	NarrativeThreshold   float64 `yaml:"narrative_threshold"`    // Narrative when a uniform draw exceeds this
	ObstacleBaseChance   float64 `yaml:"obstacle_base_chance"`   // Obstacle chance before difficulty is added
	DoubleObstacleLevel  float64 `yaml:"double_obstacle_level"`  // Difficulty above which a second obstacle may appear
	DoubleObstacleChance float64 `yaml:"double_obstacle_chance"` // Chance of the second obstacle
}

// DifficultyConfig defines the distance-driven difficulty ramp.
type DifficultyConfig struct {
	Enabled      bool    `yaml:"enabled"`
	InitialLevel float64 `yaml:"initial_level"` // Level at distance 0
	Cap          float64 `yaml:"cap"`           // Level never exceeds this
	RampDistance float64 `yaml:"ramp_distance"` // Distance over which the level grows by 1.0
}

// TimingConfig defines real-time presentation delays.
type TimingConfig struct {
	GlitchMS         int `yaml:"glitch_ms"`
	PromptLifetimeMS int `yaml:"prompt_lifetime_ms"`
}

// GlitchDuration returns the GLITCH phase length.
func (t TimingConfig) GlitchDuration() time.Duration {
	return time.Duration(t.GlitchMS) * time.Millisecond
}

// PromptLifetime returns how long a feedback prompt stays visible.
func (t TimingConfig) PromptLifetime() time.Duration {
	return time.Duration(t.PromptLifetimeMS) * time.Millisecond
}

// Sync trigger modes.
const (
	SyncModeThreshold = "threshold" // Once per crossed multiple of Interval
	SyncModeModulus   = "modulus"   // distance % Interval < Window
)

// SyncConfig defines when memory snapshots are forwarded to the persistence sink.
type SyncConfig struct {
	Mode     string  `yaml:"mode"`
	Interval float64 `yaml:"interval"`
	Window   float64 `yaml:"window"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyHard:
		return 0.5
	default:
		return 0.0
	}
}
