package road

import (
	"strings"
	"testing"

	"github.com/vovakirdan/road-remembers/internal/core"
)

func renderText(snap Snapshot, w, h int) string {
	dst := core.NewScreen(w, h)
	RenderSnapshot(snap, testConfig().World, dst)
	return dst.String()
}

func TestRenderStartScreen(t *testing.T) {
	c := newTestController(1, nil)
	out := renderText(c.Snapshot(), 80, 24)

	for _, want := range []string{Title, "Press any key to wake", "Aid 0", "Duty 0", "Hunger 0", "0 m"} {
		if !strings.Contains(out, want) {
			t.Errorf("start screen missing %q", want)
		}
	}
}

func TestRenderRunning(t *testing.T) {
	snap := Snapshot{
		Phase:   PhaseRunning,
		GlobalZ: 1000,
		Player:  PlayerView{TargetLane: 1},
		Segments: []SegmentView{
			{ID: "rock", Z: 1400, Lanes: [LaneCount]Lane{{}, {Kind: LaneObstacle}, {}}},
		},
		Memory:      MemoryState{DistanceTraveled: 123.7, CarryingCount: 2},
		Environment: EnvRuins,
	}

	out := renderText(snap, 80, 24)

	if !strings.ContainsRune(out, PlayerChar) {
		t.Error("player not drawn")
	}
	if !strings.ContainsRune(out, ObstacleChar) {
		t.Error("obstacle not drawn")
	}
	for _, want := range []string{"123 m", "Aid 2", "ruins"} {
		if !strings.Contains(out, want) {
			t.Errorf("HUD missing %q", want)
		}
	}
}

func TestRenderPromptAndGlitch(t *testing.T) {
	snap := Snapshot{
		Phase:  PhaseGlitch,
		Prompt: &Prompt{Text: RejectionText, Kind: PromptHarm},
	}
	dst := core.NewScreen(80, 24)
	RenderSnapshot(snap, testConfig().World, dst)

	if !strings.ContainsRune(dst.String(), NoiseChar) {
		t.Error("glitch noise not drawn")
	}

	found := false
	for y := 0; y < dst.Height(); y++ {
		row := []rune(dst.Row(y))
		x := strings.Index(string(row), RejectionText)
		if x < 0 {
			continue
		}
		found = true
		col := len([]rune(string(row)[:x]))
		if dst.GetCell(col, y).Color != core.ColorRed {
			t.Error("harm prompt should be red")
		}
	}
	if !found {
		t.Error("prompt text not drawn")
	}
}

func TestRenderPaused(t *testing.T) {
	out := renderText(Snapshot{Phase: PhaseRunning, Paused: true}, 80, 24)
	if !strings.Contains(out, "PAUSED") {
		t.Error("pause box not drawn")
	}
}

func TestRenderStormAndLongRun(t *testing.T) {
	c := newTestController(3, nil)
	c.Wake()
	c.env = EnvStorm
	for i := 0; i < 200; i++ {
		c.Tick(at(i * 16))
	}

	// Must not panic on any terminal size
	for _, size := range [][2]int{{80, 24}, {30, 10}, {200, 60}, {31, 11}} {
		renderText(c.Snapshot(), size[0], size[1])
	}
}

func TestRenderTooSmall(t *testing.T) {
	out := renderText(Snapshot{}, 20, 5)
	if !strings.Contains(out, "Terminal too small") {
		t.Errorf("expected size warning, got %q", out)
	}
}
