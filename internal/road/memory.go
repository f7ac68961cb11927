package road

import (
	"github.com/vovakirdan/road-remembers/internal/config"
	"github.com/vovakirdan/road-remembers/internal/core"
)

// moodMargin is how far one counter must lead the other to change the mood.
const moodMargin = 5

// MemoryState accumulates the player's choices and travel.
// Counters and distance never decrease; CurrentSpeed stays within the configured clamp.
type MemoryState struct {
	CarryingCount    int
	DisciplineCount  int
	HungerCount      int
	DistanceTraveled float64
	CurrentSpeed     float64
}

// NewMemoryState returns a fresh state moving at base speed.
func NewMemoryState(physics config.PhysicsConfig) MemoryState {
	return MemoryState{CurrentSpeed: physics.BaseSpeed}
}

// Travel adds distance. Non-positive amounts are ignored.
func (m *MemoryState) Travel(distance float64) {
	if distance > 0 {
		m.DistanceTraveled += distance
	}
}

// ApplyCollision halves speed (or whatever the collision factor says).
func (m *MemoryState) ApplyCollision(physics config.PhysicsConfig) {
	m.scaleSpeed(physics.CollisionSpeedFactor, physics)
}

// ApplyChoice records a narrative choice and applies its speed rule.
func (m *MemoryState) ApplyChoice(theme Theme, physics config.PhysicsConfig) {
	switch theme {
	case ThemeCarrying:
		m.CarryingCount++
		m.scaleSpeed(physics.CarryingSpeedFactor, physics) // Burden slows
	case ThemeDiscipline:
		m.DisciplineCount++
	case ThemeHunger:
		m.HungerCount++
		m.scaleSpeed(physics.HungerSpeedFactor, physics) // Drive speeds up
	}
}

// scaleSpeed multiplies speed and clamps it.
func (m *MemoryState) scaleSpeed(factor float64, physics config.PhysicsConfig) {
	m.CurrentSpeed = core.ClampF(m.CurrentSpeed*factor, physics.MinSpeed(), physics.MaxSpeed())
}

// MoodFor derives the environment from which counter dominates.
func MoodFor(m MemoryState) Environment {
	switch {
	case m.HungerCount > m.CarryingCount+moodMargin:
		return EnvStorm
	case m.CarryingCount > m.HungerCount+moodMargin:
		return EnvRuins
	default:
		return EnvOrchard
	}
}
