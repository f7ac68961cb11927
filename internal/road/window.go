package road

import "github.com/vovakirdan/road-remembers/internal/config"

// SegmentWindow holds the live segments ordered by ascending z.
// It spawns ahead of the visibility horizon and evicts behind the trailing margin.
type SegmentWindow struct {
	segments []*Segment
	gen      *Generator
	world    config.WorldConfig
}

// NewSegmentWindow creates an empty window.
func NewSegmentWindow(gen *Generator, world config.WorldConfig) *SegmentWindow {
	return &SegmentWindow{
		segments: make([]*Segment, 0, 32),
		gen:      gen,
		world:    world,
	}
}

// Reset drops all segments.
func (w *SegmentWindow) Reset() {
	w.segments = w.segments[:0]
}

// Segments returns the live segments. The slice is owned by the window.
func (w *SegmentWindow) Segments() []*Segment {
	return w.segments
}

// Len returns the number of live segments.
func (w *SegmentWindow) Len() int {
	return len(w.segments)
}

// frontZ returns the z of the frontmost segment, or globalZ when empty.
func (w *SegmentWindow) frontZ(globalZ float64) float64 {
	if len(w.segments) == 0 {
		return globalZ
	}
	return w.segments[len(w.segments)-1].Z
}

// Spawn appends segments until coverage reaches globalZ + visibility depth.
// Returns the number of segments spawned. A non-positive spawn distance spawns nothing.
func (w *SegmentWindow) Spawn(globalZ float64, mem MemoryState, env Environment) int {
	if w.world.SpawnDistance <= 0 {
		return 0
	}

	front := w.frontZ(globalZ)

	// Everything between front and the trailing margin would be evicted unseen
	if front < globalZ-w.world.TrailMargin {
		front = globalZ
	}

	spawned := 0
	for front < globalZ+w.world.VisibilityDepth {
		seg := w.gen.Generate(front+w.world.SpawnDistance, mem, env)
		w.segments = append(w.segments, seg)
		front = seg.Z
		spawned++
	}
	return spawned
}

// Evict removes segments at or behind globalZ - trail margin.
// Returns the number of segments removed.
func (w *SegmentWindow) Evict(globalZ float64) int {
	cutoff := globalZ - w.world.TrailMargin

	kept := w.segments[:0]
	for _, s := range w.segments {
		if s.Z > cutoff {
			kept = append(kept, s)
		}
	}
	removed := len(w.segments) - len(kept)

	// Drop references held past the new length
	for i := len(kept); i < len(w.segments); i++ {
		w.segments[i] = nil
	}
	w.segments = kept
	return removed
}

// Advance spawns then evicts for the given scroll position.
func (w *SegmentWindow) Advance(globalZ float64, mem MemoryState, env Environment) {
	w.Spawn(globalZ, mem, env)
	w.Evict(globalZ)
}
