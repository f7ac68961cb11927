package road

// PlayerView is the published player position.
type PlayerView struct {
	X          float64
	TargetLane int
}

// SegmentView is the published form of a segment.
type SegmentView struct {
	ID    string
	Z     float64
	Lanes [LaneCount]Lane
	Env   Environment
}

// Snapshot is the presentation-facing copy of the simulation state.
// It shares nothing mutable with the controller.
type Snapshot struct {
	Phase       Phase
	Paused      bool
	GlobalZ     float64
	Player      PlayerView
	Segments    []SegmentView
	Memory      MemoryState
	Prompt      *Prompt
	Environment Environment
	Ticks       uint64
}

// Snapshot publishes the current state for rendering.
func (c *Controller) Snapshot() Snapshot {
	segs := c.window.Segments()
	views := make([]SegmentView, len(segs))
	for i, s := range segs {
		views[i] = SegmentView{ID: s.ID, Z: s.Z, Lanes: s.Lanes, Env: s.Env}
	}

	var prompt *Prompt
	if c.prompt != nil {
		p := *c.prompt
		prompt = &p
	}

	return Snapshot{
		Phase:       c.phase,
		Paused:      c.paused,
		GlobalZ:     c.globalZ,
		Player:      PlayerView{X: c.player.X, TargetLane: c.player.TargetLane},
		Segments:    views,
		Memory:      c.memory,
		Prompt:      prompt,
		Environment: c.env,
		Ticks:       c.ticks,
	}
}
