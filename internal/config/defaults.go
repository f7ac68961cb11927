package config

import (
	_ "embed"
)

//go:embed defaults/road.yaml
var defaultRoadYAML []byte

// DefaultRoadConfig returns the default road configuration.
func DefaultRoadConfig() RoadConfig {
	return RoadConfig{
		Physics: PhysicsConfig{
			BaseSpeed:            0.8,
			MinSpeedFactor:       0.1,
			MaxSpeedFactor:       3.0,
			DeltaScale:           0.05,
			ZScale:               20,
			LateralSmoothing:     0.15,
			CarryingSpeedFactor:  0.95,
			HungerSpeedFactor:    1.05,
			CollisionSpeedFactor: 0.5,
		},
		World: WorldConfig{
			LaneWidth:       33,
			VisibilityDepth: 4000,
			SpawnDistance:   300,
			TrailMargin:     200,
			ZoneHalfWidth:   50,
			PlayerOffset:    100,
		},
		Generation: GenerationConfig{
			NarrativeThreshold:   0.7,
			ObstacleBaseChance:   0.3,
			DoubleObstacleLevel:  0.5,
			DoubleObstacleChance: 0.5,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Cap:          0.8,
			RampDistance: 10000,
		},
		Timing: TimingConfig{
			GlitchMS:         200,
			PromptLifetimeMS: 2000,
		},
		Sync: SyncConfig{
			Mode:     SyncModeThreshold,
			Interval: 500,
			Window:   10,
		},
	}
}
