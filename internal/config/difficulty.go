package config

import "math"

// DifficultyRamp calculates the generation difficulty level from distance traveled.
type DifficultyRamp struct {
	cfg DifficultyConfig
}

// NewDifficultyRamp creates a new difficulty ramp.
func NewDifficultyRamp(cfg DifficultyConfig) *DifficultyRamp {
	return &DifficultyRamp{cfg: cfg}
}

// Level returns the current difficulty level for the given distance.
// The level is monotonic in distance and never exceeds the cap.
func (d *DifficultyRamp) Level(distance float64) float64 {
	level := d.cfg.InitialLevel
	if d.cfg.Enabled {
		rampAt := d.cfg.RampDistance
		if rampAt <= 0 {
			rampAt = 1 // Prevent division by zero
		}
		level += math.Max(0, distance) / rampAt
	}
	return clampF(level, 0.0, d.cfg.Cap)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
