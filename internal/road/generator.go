package road

import (
	"github.com/google/uuid"

	"github.com/vovakirdan/road-remembers/internal/config"
)

// Generator procedurally produces road segments.
// It is a pure function of its inputs plus the random source.
type Generator struct {
	rng   RandomSource
	cfg   config.GenerationConfig
	ramp  *config.DifficultyRamp
	pool  []NarrativeTexts
	newID func() string
}

// NewGenerator creates a generator drawing narrative triples from pool.
// An empty pool falls back to NarrativePool.
func NewGenerator(rng RandomSource, cfg config.GenerationConfig, ramp *config.DifficultyRamp, pool []NarrativeTexts) *Generator {
	if len(pool) == 0 {
		pool = NarrativePool
	}
	return &Generator{
		rng:   rng,
		cfg:   cfg,
		ramp:  ramp,
		pool:  pool,
		newID: uuid.NewString,
	}
}

// SetIDSource replaces the segment identifier source.
func (g *Generator) SetIDSource(fn func() string) {
	if fn != nil {
		g.newID = fn
	}
}

// Difficulty returns the generation difficulty for the given memory state.
func (g *Generator) Difficulty(mem MemoryState) float64 {
	return g.ramp.Level(mem.DistanceTraveled)
}

// Generate creates one segment at forward position z.
func (g *Generator) Generate(z float64, mem MemoryState, env Environment) *Segment {
	difficulty := g.Difficulty(mem)

	seg := &Segment{
		ID:  g.newID(),
		Z:   z,
		Env: env,
	}

	// Narrative choice
	if g.rng.Float64() > g.cfg.NarrativeThreshold {
		texts := Choice(g.rng, g.pool)
		for lane, theme := range laneThemes {
			seg.Lanes[lane] = Lane{Kind: LanePrompt, Text: texts.at(lane), Theme: theme}
		}
		return seg
	}

	// Obstacle; chance above 1.0 simply always hits
	if g.rng.Float64() < g.cfg.ObstacleBaseChance+difficulty {
		first := g.rng.Intn(LaneCount)
		seg.Lanes[first] = Lane{Kind: LaneObstacle}

		if difficulty > g.cfg.DoubleObstacleLevel && g.rng.Float64() < g.cfg.DoubleObstacleChance {
			seg.Lanes[(first+1)%LaneCount] = Lane{Kind: LaneObstacle}
		}
	}

	return seg
}
