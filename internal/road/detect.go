package road

import (
	"math"

	"github.com/vovakirdan/road-remembers/internal/core"
)

// InteractionKind classifies a player/segment interaction.
type InteractionKind int

const (
	InteractionCollision InteractionKind = iota
	InteractionChoice
)

// String returns a human-readable name for the kind.
func (k InteractionKind) String() string {
	if k == InteractionChoice {
		return "choice"
	}
	return "collision"
}

// Interaction is a hit between the player's lane and segment content.
type Interaction struct {
	Kind      InteractionKind
	SegmentID string
	Z         float64
	Lane      int
	Theme     Theme  // Choice only
	Text      string // Choice only
}

// Detect scans segments (ascending z) for unprocessed content in the player's lane
// within halfWidth of playerWorldZ. Every hit marks its segment processed,
// so the same segment never yields a second interaction.
// Segments whose lane slot is empty stay unprocessed.
func Detect(segments []*Segment, playerWorldZ float64, lane int, halfWidth float64) []Interaction {
	lane = core.Clamp(lane, 0, LaneCount-1)

	var hits []Interaction
	for _, seg := range segments {
		if seg.processed || math.Abs(seg.Z-playerWorldZ) >= halfWidth {
			continue
		}

		content := seg.Lanes[lane]
		switch content.Kind {
		case LaneObstacle:
			if seg.markProcessed() {
				hits = append(hits, Interaction{
					Kind:      InteractionCollision,
					SegmentID: seg.ID,
					Z:         seg.Z,
					Lane:      lane,
				})
			}
		case LanePrompt:
			if seg.markProcessed() {
				hits = append(hits, Interaction{
					Kind:      InteractionChoice,
					SegmentID: seg.ID,
					Z:         seg.Z,
					Lane:      lane,
					Theme:     content.Theme,
					Text:      content.Text,
				})
			}
		}
	}
	return hits
}
