package road

import (
	"math"
	"time"

	"github.com/vovakirdan/road-remembers/internal/config"
	"github.com/vovakirdan/road-remembers/internal/core"
)

// Clock turns host frame timestamps into elapsed milliseconds.
// The first reading after creation or Reset yields 0.
type Clock struct {
	last    time.Time
	started bool
}

// Delta returns milliseconds since the previous reading.
// Timestamps that go backwards yield 0.
func (c *Clock) Delta(now time.Time) float64 {
	if !c.started {
		c.last = now
		c.started = true
		return 0
	}
	elapsed := now.Sub(c.last)
	c.last = now
	if elapsed <= 0 {
		return 0
	}
	return float64(elapsed) / float64(time.Millisecond)
}

// Reset forgets the previous reading so frozen time is never counted.
func (c *Clock) Reset() {
	c.started = false
}

// Player is the avatar's lane selection and lateral offset.
type Player struct {
	// Lane is the lane the avatar is visually nearest to. TargetLane is canonical.
	Lane       int
	TargetLane int
	X          float64
}

// NewPlayer returns a player centered in the middle lane.
func NewPlayer() Player {
	return Player{Lane: 1, TargetLane: 1}
}

// Shift moves the target lane by dir (negative = left), clamped to the road.
func (p *Player) Shift(dir int) {
	switch {
	case dir < 0:
		p.TargetLane--
	case dir > 0:
		p.TargetLane++
	}
	p.TargetLane = core.Clamp(p.TargetLane, 0, LaneCount-1)
}

// Integrator advances scroll, distance and lateral position per tick.
// Scaling is linear in delta, so large deltas are not physically exact; that is accepted.
type Integrator struct {
	physics   config.PhysicsConfig
	laneWidth float64
}

// NewIntegrator creates an integrator.
func NewIntegrator(physics config.PhysicsConfig, world config.WorldConfig) Integrator {
	return Integrator{physics: physics, laneWidth: world.LaneWidth}
}

// Step integrates one tick of deltaMs and returns the new global z.
func (in Integrator) Step(deltaMs float64, mem *MemoryState, player *Player, globalZ float64) float64 {
	globalZ = in.Scroll(deltaMs, mem, globalZ)
	in.Steer(player)
	return globalZ
}

// Scroll advances distance and global z by deltaMs at the current speed.
func (in Integrator) Scroll(deltaMs float64, mem *MemoryState, globalZ float64) float64 {
	if deltaMs < 0 {
		deltaMs = 0
	}

	speed := mem.CurrentSpeed * deltaMs * in.physics.DeltaScale
	globalZ += speed * in.physics.ZScale
	mem.Travel(speed)
	return globalZ
}

// Steer eases the lateral offset toward the target lane. Applied once per tick.
func (in Integrator) Steer(player *Player) {
	targetX := float64(player.TargetLane-1) * in.laneWidth
	player.X += (targetX - player.X) * in.physics.LateralSmoothing

	if in.laneWidth > 0 {
		player.Lane = core.Clamp(int(math.Round(player.X/in.laneWidth))+1, 0, LaneCount-1)
	}
}

// MaxStep returns the longest delta in ms that scrolls at most maxZ at the current speed.
// With no motion or no limit it is unbounded.
func (in Integrator) MaxStep(mem MemoryState, maxZ float64) float64 {
	perMs := mem.CurrentSpeed * in.physics.DeltaScale * in.physics.ZScale
	if perMs <= 0 || maxZ <= 0 {
		return math.Inf(1)
	}
	return maxZ / perMs
}
