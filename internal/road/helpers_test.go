package road

import (
	"fmt"
	"math"

	"github.com/vovakirdan/road-remembers/internal/config"
)

// scriptedSource replays fixed draws so tests can force generation branches.
type scriptedSource struct {
	floats []float64
	ints   []int
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		panic("scriptedSource: out of floats")
	}
	f := s.floats[0]
	s.floats = s.floats[1:]
	return f
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.ints) == 0 {
		panic("scriptedSource: out of ints")
	}
	i := s.ints[0]
	s.ints = s.ints[1:]
	return i % n
}

// recordingSink keeps every synced record.
type recordingSink struct {
	records []SyncRecord
	synced  []MemoryState
}

func (r *recordingSink) Sync(rec SyncRecord) {
	r.records = append(r.records, rec)
	r.synced = append(r.synced, rec.Memory)
}

// counterIDs returns a deterministic ID source.
func counterIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("seg-%d", n)
	}
}

// counterRunIDs returns a deterministic run ID source.
func counterRunIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("run-%d", n)
	}
}

func testConfig() config.RoadConfig {
	return config.DefaultRoadConfig()
}

func newTestGenerator(rng RandomSource) *Generator {
	cfg := testConfig()
	g := NewGenerator(rng, cfg.Generation, config.NewDifficultyRamp(cfg.Difficulty), nil)
	g.SetIDSource(counterIDs())
	return g
}

func newTestController(seed int64, sink Sink) *Controller {
	c := NewController(Options{
		Config: testConfig(),
		Random: NewSeededSource(seed),
		Sink:   sink,
		RunID:  counterRunIDs(),
	})
	c.Generator().SetIDSource(counterIDs())
	return c
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
