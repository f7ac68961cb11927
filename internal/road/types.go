package road

// LaneCount is the number of lanes on the road (left, center, right).
const LaneCount = 3

// Theme is the thematic category of a narrative prompt.
type Theme int

const (
	ThemeCarrying Theme = iota
	ThemeDiscipline
	ThemeHunger
)

// String returns the canonical upper-case theme name.
func (t Theme) String() string {
	switch t {
	case ThemeCarrying:
		return "CARRYING"
	case ThemeDiscipline:
		return "DISCIPLINE"
	case ThemeHunger:
		return "HUNGER"
	default:
		return "UNKNOWN"
	}
}

// Label returns the short display label shown next to a counter.
func (t Theme) Label() string {
	switch t {
	case ThemeCarrying:
		return "Aid"
	case ThemeDiscipline:
		return "Duty"
	case ThemeHunger:
		return "Hunger"
	default:
		return "?"
	}
}

// laneThemes fixes which theme each lane of a narrative segment carries.
var laneThemes = [LaneCount]Theme{ThemeCarrying, ThemeDiscipline, ThemeHunger}

// Environment is the atmospheric mood of the road.
type Environment int

const (
	EnvOrchard Environment = iota
	EnvRuins
	EnvStorm
	// EnvRiverFord is a declared mood that MoodFor never produces.
	EnvRiverFord
)

// String returns the environment name.
func (e Environment) String() string {
	switch e {
	case EnvOrchard:
		return "orchard"
	case EnvRuins:
		return "ruins"
	case EnvStorm:
		return "storm"
	case EnvRiverFord:
		return "river-ford"
	default:
		return "unknown"
	}
}

// LaneKind is what occupies a lane slot.
type LaneKind int

const (
	LaneEmpty LaneKind = iota
	LaneObstacle
	LanePrompt
)

// Lane is one slot of a segment. Text and Theme are set only for prompts.
type Lane struct {
	Kind  LaneKind
	Text  string
	Theme Theme
}

// NarrativeTexts is one left/center/right choice triple.
type NarrativeTexts struct {
	Left   string
	Center string
	Right  string
}

// at returns the text for the given lane index.
func (n NarrativeTexts) at(lane int) string {
	switch lane {
	case 0:
		return n.Left
	case 1:
		return n.Center
	default:
		return n.Right
	}
}

// Segment is one slice of road at a fixed forward coordinate.
// Everything but the processed flag is fixed at creation.
type Segment struct {
	ID    string
	Z     float64
	Lanes [LaneCount]Lane
	Env   Environment // Mood at spawn time

	processed bool
}

// Processed reports whether the segment has already triggered an interaction.
func (s *Segment) Processed() bool {
	return s.processed
}

// markProcessed sets the processed flag. Returns false if it was already set.
func (s *Segment) markProcessed() bool {
	if s.processed {
		return false
	}
	s.processed = true
	return true
}

// IsEmpty reports whether no lane holds content.
func (s *Segment) IsEmpty() bool {
	for _, l := range s.Lanes {
		if l.Kind != LaneEmpty {
			return false
		}
	}
	return true
}

// PromptKind distinguishes feedback for choices from feedback for collisions.
type PromptKind int

const (
	PromptEcho PromptKind = iota
	PromptHarm
)

// String returns "echo" or "harm".
func (k PromptKind) String() string {
	if k == PromptHarm {
		return "harm"
	}
	return "echo"
}

// Prompt is the most recent feedback message.
// Seq increases with every prompt so presentation can expire the right one.
type Prompt struct {
	Text string
	Kind PromptKind
	Seq  uint64
}
