// Package road implements the world simulation of The Road That Remembers:
// segment generation, scroll integration, lane interaction detection and the
// memory rules that tie choices to speed and mood.
package road

import (
	"math"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/vovakirdan/road-remembers/internal/config"
	"github.com/vovakirdan/road-remembers/internal/core"
)

// SyncRecord is one memory snapshot handed to a Sink.
// Every record of a run carries the same RunID; later records supersede earlier ones.
type SyncRecord struct {
	RunID  string
	Memory MemoryState
	Final  bool // Sent by Close, the last record of the run
}

// Sink receives memory snapshots for persistence.
// Sync must not block; failures are the sink's concern.
type Sink interface {
	Sync(rec SyncRecord)
}

// NopSink discards snapshots.
type NopSink struct{}

// Sync implements Sink.
func (NopSink) Sync(SyncRecord) {}

// NewRunID returns a time-ordered run identifier.
func NewRunID() string {
	return ulid.Make().String()
}

// Options configures a Controller.
type Options struct {
	Config config.RoadConfig
	Random RandomSource     // Defaults to a system source
	Sink   Sink             // Defaults to NopSink
	Pool   []NarrativeTexts // Defaults to NarrativePool
	RunID  func() string    // Defaults to NewRunID
}

// StepResult is returned by Tick.
type StepResult struct {
	Phase        Phase
	Interactions []Interaction
	NewPrompt    *Prompt // Set when this tick produced feedback
	Resumed      bool    // GLITCH reverted to RUNNING this tick
}

// Controller owns the whole simulation state and advances it one host frame at a time.
// It is not safe for concurrent use; the host drives it from a single loop.
type Controller struct {
	cfg        config.RoadConfig
	sink       Sink
	newRunID   func() string
	gen        *Generator
	window     *SegmentWindow
	integrator Integrator
	clock      Clock

	phase   Phase
	paused  bool
	revert  *Transition
	memory  MemoryState
	player  Player
	globalZ float64
	env     Environment
	prompt  *Prompt

	runID     string
	promptSeq uint64
	syncMark  float64 // Last synced multiple of the sync interval
	ticks     uint64
	closed    bool
}

// NewController creates a controller in the START phase.
func NewController(opts Options) *Controller {
	if opts.Random == nil {
		opts.Random = NewSystemSource()
	}
	if opts.Sink == nil {
		opts.Sink = NopSink{}
	}
	if opts.RunID == nil {
		opts.RunID = NewRunID
	}

	ramp := config.NewDifficultyRamp(opts.Config.Difficulty)
	gen := NewGenerator(opts.Random, opts.Config.Generation, ramp, opts.Pool)

	c := &Controller{
		cfg:        opts.Config,
		sink:       opts.Sink,
		newRunID:   opts.RunID,
		gen:        gen,
		window:     NewSegmentWindow(gen, opts.Config.World),
		integrator: NewIntegrator(opts.Config.Physics, opts.Config.World),
	}
	c.Reset()
	return c
}

// Generator exposes the segment generator, e.g. to install an ID source.
func (c *Controller) Generator() *Generator {
	return c.gen
}

// Reset returns to a fresh START state and cancels any pending transition.
// The next run gets a new run ID.
func (c *Controller) Reset() {
	c.revert.Cancel()
	c.runID = c.newRunID()
	c.revert = nil
	c.phase = PhaseStart
	c.paused = false
	c.memory = NewMemoryState(c.cfg.Physics)
	c.player = NewPlayer()
	c.globalZ = 0
	c.env = EnvOrchard
	c.prompt = nil
	c.syncMark = 0
	c.ticks = 0
	c.closed = false
	c.clock.Reset()
	c.window.Reset()
}

// Close tears the session down: the pending revert is canceled and the final
// memory state is forwarded to the sink once. Later calls do nothing.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.revert.Cancel()
	if c.memory.DistanceTraveled > 0 {
		c.sink.Sync(SyncRecord{RunID: c.runID, Memory: c.memory, Final: true})
	}
}

// Wake starts the run. Returns false unless the controller was in START.
func (c *Controller) Wake() bool {
	if c.phase != PhaseStart {
		return false
	}
	c.phase = PhaseRunning
	c.clock.Reset()
	return true
}

// Move shifts the target lane by one in dir's direction.
// Only honored while running and not paused.
func (c *Controller) Move(dir int) bool {
	if c.phase != PhaseRunning || c.paused {
		return false
	}
	c.player.Shift(dir)
	return true
}

// TogglePause pauses or resumes ticking. Ignored on the start screen.
func (c *Controller) TogglePause() {
	if c.phase == PhaseStart {
		return
	}
	c.paused = !c.paused
	if !c.paused {
		c.clock.Reset()
	}
}

// Apply feeds one frame of input into the controller.
func (c *Controller) Apply(in core.InputFrame) {
	if c.phase == PhaseStart {
		// Any key wakes, and that key does nothing else
		for _, n := range in.Actions {
			if n > 0 {
				c.Wake()
				return
			}
		}
		return
	}

	if in.Has(core.ActionPause) {
		c.TogglePause()
	}
	for i := 0; i < in.Count(core.ActionLeft); i++ {
		c.Move(-1)
	}
	for i := 0; i < in.Count(core.ActionRight); i++ {
		c.Move(1)
	}
}

// Tick advances the simulation to host time now.
func (c *Controller) Tick(now time.Time) StepResult {
	result := StepResult{}

	if c.phase == PhaseStart || c.paused || c.closed {
		result.Phase = c.phase
		return result
	}

	if c.phase == PhaseGlitch {
		if !c.revert.Fire(now) {
			result.Phase = c.phase
			return result
		}
		// Simulated time stays frozen across the glitch
		c.phase = PhaseRunning
		c.revert = nil
		c.clock.Reset()
		result.Resumed = true
	}

	c.ticks++
	c.integrator.Steer(&c.player)

	// Large deltas are split so no step scrolls past the interaction zone
	remaining := c.clock.Delta(now)
	for {
		step := math.Min(remaining, c.integrator.MaxStep(c.memory, c.cfg.World.ZoneHalfWidth))
		remaining -= step

		// 1. Integrate motion
		c.globalZ = c.integrator.Scroll(step, &c.memory, c.globalZ)

		// 2. Keep the window covered out to the horizon
		c.window.Spawn(c.globalZ, c.memory, c.env)

		// 3. Detect interactions at the player's fixed offset
		playerZ := c.globalZ + c.cfg.World.PlayerOffset
		hits := Detect(c.window.Segments(), playerZ, c.player.TargetLane, c.cfg.World.ZoneHalfWidth)

		// 4. Apply effects
		for _, hit := range hits {
			switch hit.Kind {
			case InteractionCollision:
				c.collide(now)
			case InteractionChoice:
				c.choose(hit.Theme, hit.Text)
			}
			result.NewPrompt = c.prompt
		}
		result.Interactions = append(result.Interactions, hits...)

		// A collision freezes time, so the rest of the delta is dropped
		if c.phase != PhaseRunning || remaining <= 0 {
			break
		}
	}

	// 5. Evict after detection so a hit segment survives its own tick
	c.window.Evict(c.globalZ)

	result.Phase = c.phase
	return result
}

// collide applies an obstacle hit.
func (c *Controller) collide(now time.Time) {
	c.memory.ApplyCollision(c.cfg.Physics)
	c.setPrompt(RejectionText, PromptHarm)

	c.phase = PhaseGlitch
	c.revert.Cancel()
	c.revert = NewTransition(PhaseRunning, now, c.cfg.Timing.GlitchDuration())
}

// choose applies a narrative choice.
func (c *Controller) choose(theme Theme, text string) {
	c.setPrompt(text, PromptEcho)
	c.memory.ApplyChoice(theme, c.cfg.Physics)
	c.env = MoodFor(c.memory)

	if c.shouldSync() {
		c.sink.Sync(SyncRecord{RunID: c.runID, Memory: c.memory})
	}
}

// shouldSync decides whether the current choice forwards a snapshot.
func (c *Controller) shouldSync() bool {
	interval := c.cfg.Sync.Interval
	distance := c.memory.DistanceTraveled

	if c.cfg.Sync.Mode == config.SyncModeModulus {
		return math.Mod(distance, interval) < c.cfg.Sync.Window
	}

	mark := math.Floor(distance / interval)
	if mark > c.syncMark {
		c.syncMark = mark
		return true
	}
	return false
}

// setPrompt replaces the active prompt.
func (c *Controller) setPrompt(text string, kind PromptKind) {
	c.promptSeq++
	c.prompt = &Prompt{Text: text, Kind: kind, Seq: c.promptSeq}
}

// ConsumePrompt clears the active prompt if it is still the one with seq.
// Presentation calls this when a prompt's display lifetime ends.
func (c *Controller) ConsumePrompt(seq uint64) bool {
	if c.prompt == nil || c.prompt.Seq != seq {
		return false
	}
	c.prompt = nil
	return true
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Paused reports whether ticking is paused.
func (c *Controller) Paused() bool {
	return c.paused
}

// RunID identifies the current run in sync records.
func (c *Controller) RunID() string {
	return c.runID
}

// Memory returns a copy of the memory state.
func (c *Controller) Memory() MemoryState {
	return c.memory
}

// Environment returns the current mood.
func (c *Controller) Environment() Environment {
	return c.env
}

// PendingRevert returns the scheduled GLITCH revert, if any.
func (c *Controller) PendingRevert() *Transition {
	if c.revert.Pending() {
		return c.revert
	}
	return nil
}

// GlobalZ returns the scroll position.
func (c *Controller) GlobalZ() float64 {
	return c.globalZ
}

// Player returns a copy of the player position.
func (c *Controller) Player() Player {
	return c.player
}

// Window exposes the live segment window.
func (c *Controller) Window() *SegmentWindow {
	return c.window
}
