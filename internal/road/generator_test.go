package road

import (
	"testing"

	"github.com/vovakirdan/road-remembers/internal/config"
)

func countKind(seg *Segment, kind LaneKind) int {
	n := 0
	for _, l := range seg.Lanes {
		if l.Kind == kind {
			n++
		}
	}
	return n
}

func TestGenerateSingleObstacle(t *testing.T) {
	// Not narrative (0.5 <= 0.7), obstacle (0.1 < 0.3), lane 2
	src := &scriptedSource{floats: []float64{0.5, 0.1}, ints: []int{2}}
	gen := newTestGenerator(src)
	mem := NewMemoryState(testConfig().Physics)

	seg := gen.Generate(1234, mem, EnvRuins)

	if countKind(seg, LaneObstacle) != 1 {
		t.Fatalf("expected exactly one obstacle, got lanes %+v", seg.Lanes)
	}
	if seg.Lanes[2].Kind != LaneObstacle {
		t.Errorf("obstacle should be in lane 2, got lanes %+v", seg.Lanes)
	}
	if seg.Z != 1234 {
		t.Errorf("Z = %v, expected 1234", seg.Z)
	}
	if seg.Env != EnvRuins {
		t.Errorf("Env = %v, expected ruins", seg.Env)
	}
	if seg.Processed() {
		t.Error("new segment should not be processed")
	}
	if seg.ID == "" {
		t.Error("segment should have an ID")
	}
}

func TestGenerateNarrative(t *testing.T) {
	src := &scriptedSource{floats: []float64{0.95}, ints: []int{1}}
	gen := newTestGenerator(src)

	seg := gen.Generate(300, MemoryState{}, EnvOrchard)

	want := NarrativePool[1]
	expected := [LaneCount]Lane{
		{Kind: LanePrompt, Text: want.Left, Theme: ThemeCarrying},
		{Kind: LanePrompt, Text: want.Center, Theme: ThemeDiscipline},
		{Kind: LanePrompt, Text: want.Right, Theme: ThemeHunger},
	}
	if seg.Lanes != expected {
		t.Errorf("Lanes = %+v, expected %+v", seg.Lanes, expected)
	}
}

func TestGenerateEmpty(t *testing.T) {
	src := &scriptedSource{floats: []float64{0.2, 0.9}}
	gen := newTestGenerator(src)

	seg := gen.Generate(300, MemoryState{}, EnvOrchard)

	if !seg.IsEmpty() {
		t.Errorf("expected empty segment, got %+v", seg.Lanes)
	}
}

func TestGenerateDoubleObstacle(t *testing.T) {
	tests := []struct {
		name      string
		distance  float64
		floats    []float64
		obstacles int
	}{
		{"high difficulty, coin succeeds", 7000, []float64{0.2, 0.1, 0.3}, 2},
		{"high difficulty, coin fails", 7000, []float64{0.2, 0.1, 0.9}, 1},
		{"low difficulty never doubles", 1000, []float64{0.2, 0.1}, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src := &scriptedSource{floats: tc.floats, ints: []int{2}}
			gen := newTestGenerator(src)

			seg := gen.Generate(300, MemoryState{DistanceTraveled: tc.distance}, EnvOrchard)

			if got := countKind(seg, LaneObstacle); got != tc.obstacles {
				t.Errorf("obstacles = %d, expected %d", got, tc.obstacles)
			}
			if tc.obstacles == 2 && seg.Lanes[0].Kind != LaneObstacle {
				t.Errorf("second obstacle should wrap to lane 0, got %+v", seg.Lanes)
			}
			if len(src.floats) != 0 {
				t.Errorf("unused draws left: %v", src.floats)
			}
		})
	}
}

func TestGenerateDifficultyRaisesObstacleChance(t *testing.T) {
	// 0.5 misses at difficulty 0 but hits at difficulty 0.3
	src := &scriptedSource{floats: []float64{0.2, 0.5}, ints: []int{0}}
	gen := newTestGenerator(src)

	seg := gen.Generate(300, MemoryState{DistanceTraveled: 3000}, EnvOrchard)
	if countKind(seg, LaneObstacle) != 1 {
		t.Errorf("expected obstacle at difficulty 0.3, got %+v", seg.Lanes)
	}
}

func TestGenerateFixedDifficulty(t *testing.T) {
	cfg := testConfig()
	cfg.Difficulty.Enabled = false
	src := &scriptedSource{floats: []float64{0.2, 0.5}}
	gen := NewGenerator(src, cfg.Generation, config.NewDifficultyRamp(cfg.Difficulty), nil)

	seg := gen.Generate(300, MemoryState{DistanceTraveled: 9000}, EnvOrchard)
	if !seg.IsEmpty() {
		t.Errorf("fixed difficulty 0 should not raise obstacle chance, got %+v", seg.Lanes)
	}
}

func TestGenerateDistribution(t *testing.T) {
	gen := newTestGenerator(NewSeededSource(99))
	mem := MemoryState{}

	const n = 20000
	narrative, obstacle := 0, 0
	for i := 0; i < n; i++ {
		seg := gen.Generate(float64(i), mem, EnvOrchard)
		switch {
		case countKind(seg, LanePrompt) > 0:
			narrative++
		case countKind(seg, LaneObstacle) > 0:
			obstacle++
		}
	}

	// 30% narrative; 70% * 30% = 21% obstacle at difficulty 0
	if frac := float64(narrative) / n; frac < 0.28 || frac > 0.32 {
		t.Errorf("narrative fraction = %.3f, expected about 0.30", frac)
	}
	if frac := float64(obstacle) / n; frac < 0.19 || frac > 0.23 {
		t.Errorf("obstacle fraction = %.3f, expected about 0.21", frac)
	}
}
