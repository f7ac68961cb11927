package road

import "time"

// Phase is the game's high-level state.
type Phase int

const (
	PhaseStart   Phase = iota // Idle, awaiting first input
	PhaseRunning              // Simulation ticking
	PhaseGlitch               // Brief freeze after a collision
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "START"
	case PhaseRunning:
		return "RUNNING"
	case PhaseGlitch:
		return "GLITCH"
	default:
		return "UNKNOWN"
	}
}

// Transition is a phase change scheduled for a point in time.
// It fires at most once and can be canceled until it does.
type Transition struct {
	To  Phase
	Due time.Time

	done bool
}

// NewTransition schedules a change to phase to after delay from now.
func NewTransition(to Phase, now time.Time, delay time.Duration) *Transition {
	return &Transition{To: to, Due: now.Add(delay)}
}

// Pending reports whether the transition can still fire.
func (t *Transition) Pending() bool {
	return t != nil && !t.done
}

// Cancel stops the transition. Returns false if it already fired or was canceled.
func (t *Transition) Cancel() bool {
	if !t.Pending() {
		return false
	}
	t.done = true
	return true
}

// Fire consumes the transition if it is pending and due at now.
func (t *Transition) Fire(now time.Time) bool {
	if !t.Pending() || now.Before(t.Due) {
		return false
	}
	t.done = true
	return true
}
