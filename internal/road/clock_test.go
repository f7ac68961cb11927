package road

import (
	"math"
	"testing"
	"time"
)

func TestClockDelta(t *testing.T) {
	var c Clock
	t0 := time.Unix(1000, 0)

	if d := c.Delta(t0); d != 0 {
		t.Errorf("first Delta = %v, expected 0", d)
	}
	if d := c.Delta(t0.Add(16 * time.Millisecond)); d != 16 {
		t.Errorf("Delta = %v, expected 16", d)
	}
	if d := c.Delta(t0); d != 0 {
		t.Errorf("backwards Delta = %v, expected 0", d)
	}

	c.Reset()
	if d := c.Delta(t0.Add(time.Hour)); d != 0 {
		t.Errorf("Delta after Reset = %v, expected 0", d)
	}
}

func TestIntegratorStep(t *testing.T) {
	cfg := testConfig()
	in := NewIntegrator(cfg.Physics, cfg.World)
	mem := NewMemoryState(cfg.Physics)
	player := NewPlayer()

	// 0.8 * 100 * 0.05 = 4 units of speed, 80 units of z
	z := in.Step(100, &mem, &player, 10)

	if !approxEqual(z, 90) {
		t.Errorf("globalZ = %v, expected 90", z)
	}
	if !approxEqual(mem.DistanceTraveled, 4) {
		t.Errorf("DistanceTraveled = %v, expected 4", mem.DistanceTraveled)
	}
}

func TestIntegratorZeroDelta(t *testing.T) {
	cfg := testConfig()
	in := NewIntegrator(cfg.Physics, cfg.World)
	mem := NewMemoryState(cfg.Physics)
	player := NewPlayer()

	if z := in.Step(0, &mem, &player, 0); z != 0 {
		t.Errorf("globalZ = %v, expected 0", z)
	}
	if z := in.Step(-50, &mem, &player, 0); z != 0 {
		t.Errorf("negative delta moved z to %v", z)
	}
	if mem.DistanceTraveled != 0 {
		t.Errorf("DistanceTraveled = %v, expected 0", mem.DistanceTraveled)
	}
}

func TestIntegratorLateralSmoothing(t *testing.T) {
	cfg := testConfig()
	in := NewIntegrator(cfg.Physics, cfg.World)
	mem := NewMemoryState(cfg.Physics)
	player := NewPlayer()
	player.Shift(1)

	in.Step(16, &mem, &player, 0)
	// 0 + (33 - 0) * 0.15
	if !approxEqual(player.X, 4.95) {
		t.Errorf("X = %v, expected 4.95", player.X)
	}
	if player.Lane != 1 {
		t.Errorf("visual lane = %d, expected still 1", player.Lane)
	}

	for i := 0; i < 100; i++ {
		in.Step(16, &mem, &player, 0)
	}
	if player.Lane != 2 {
		t.Errorf("visual lane = %d, expected 2 after settling", player.Lane)
	}
	if player.X > cfg.World.LaneWidth+1e-9 {
		t.Errorf("X overshot: %v", player.X)
	}
}

func TestPlayerShiftClamps(t *testing.T) {
	p := NewPlayer()

	p.Shift(-1)
	p.Shift(-1)
	p.Shift(-1)
	if p.TargetLane != 0 {
		t.Errorf("TargetLane = %d, expected 0", p.TargetLane)
	}

	for i := 0; i < 5; i++ {
		p.Shift(1)
	}
	if p.TargetLane != 2 {
		t.Errorf("TargetLane = %d, expected 2", p.TargetLane)
	}

	p.Shift(0)
	if p.TargetLane != 2 {
		t.Errorf("Shift(0) moved the player to %d", p.TargetLane)
	}
}

func TestTransition(t *testing.T) {
	t0 := time.Unix(0, 0)
	tr := NewTransition(PhaseRunning, t0, 200*time.Millisecond)

	if !tr.Pending() {
		t.Fatal("new transition should be pending")
	}
	if tr.Fire(t0.Add(199 * time.Millisecond)) {
		t.Error("transition fired early")
	}
	if !tr.Fire(t0.Add(200 * time.Millisecond)) {
		t.Error("transition should fire when due")
	}
	if tr.Fire(t0.Add(time.Second)) {
		t.Error("transition fired twice")
	}
	if tr.Cancel() {
		t.Error("Cancel after fire should report false")
	}
}

func TestTransitionCancel(t *testing.T) {
	t0 := time.Unix(0, 0)
	tr := NewTransition(PhaseRunning, t0, time.Millisecond)

	if !tr.Cancel() {
		t.Error("Cancel should succeed on a pending transition")
	}
	if tr.Fire(t0.Add(time.Second)) {
		t.Error("canceled transition fired")
	}

	var none *Transition
	if none.Pending() || none.Cancel() || none.Fire(t0) {
		t.Error("nil transition should be inert")
	}
}

func TestPhaseString(t *testing.T) {
	tests := map[Phase]string{
		PhaseStart:   "START",
		PhaseRunning: "RUNNING",
		PhaseGlitch:  "GLITCH",
		Phase(42):    "UNKNOWN",
	}
	for p, want := range tests {
		if got := p.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, expected %q", int(p), got, want)
		}
	}
}

func TestIntegratorMaxStep(t *testing.T) {
	cfg := testConfig()
	in := NewIntegrator(cfg.Physics, cfg.World)

	// 0.8 speed scrolls 0.8 z per ms
	mem := MemoryState{CurrentSpeed: 0.8}
	if got := in.MaxStep(mem, 50); !approxEqual(got, 62.5) {
		t.Errorf("MaxStep = %v, expected 62.5", got)
	}
	if got := in.MaxStep(MemoryState{}, 50); !math.IsInf(got, 1) {
		t.Errorf("MaxStep at rest = %v, expected +Inf", got)
	}
}
