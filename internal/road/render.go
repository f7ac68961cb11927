package road

import (
	"fmt"
	"hash/fnv"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/road-remembers/internal/config"
	"github.com/vovakirdan/road-remembers/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar   = '▲'
	ObstacleChar = '▓'
	PromptChar   = '◇'
	LeftEdge     = '/'
	RightEdge    = '\\'
	SeamChar     = '·'
	RainChar     = ':'
	NoiseChar    = '░'
)

// Title is the game's display name.
const Title = "THE ROAD THAT REMEMBERS"

// focalLength is the projection focal length in world units.
const focalLength = 800.0

// Minimum screen size for the road view.
const (
	minRenderW = 30
	minRenderH = 10
)

// projection maps world depth to screen rows and scales.
type projection struct {
	width, height int
	horizon       int
	bottom        int
	depth         float64
	sMin          float64
	maxHalf       float64
	cx            int
}

func newProjection(w, h int, depth float64) projection {
	return projection{
		width:   w,
		height:  h,
		horizon: 3,
		bottom:  h - 1,
		depth:   depth,
		sMin:    focalLength / (focalLength + depth),
		maxHalf: float64(core.Min(w/2-2, 40)),
		cx:      w / 2,
	}
}

// scale returns the perspective scale for a depth ahead of the camera.
func (p projection) scale(relZ float64) float64 {
	return focalLength / (focalLength + relZ)
}

// row returns the screen row for a depth ahead of the camera.
func (p projection) row(relZ float64) int {
	norm := (p.scale(relZ) - p.sMin) / (1 - p.sMin)
	return p.horizon + int(math.Round(norm*float64(p.bottom-p.horizon)))
}

// scaleAtRow inverts row.
func (p projection) scaleAtRow(y int) float64 {
	norm := float64(y-p.horizon) / float64(p.bottom-p.horizon)
	return p.sMin + norm*(1-p.sMin)
}

// laneSpacing returns the distance between lane centers at scale s.
func (p projection) laneSpacing(s float64) float64 {
	return 2 * p.maxHalf * s / LaneCount
}

// laneX returns the screen column of a lane center at scale s.
func (p projection) laneX(lane int, s float64) int {
	return p.cx + int(math.Round(float64(lane-1)*p.laneSpacing(s)))
}

// RenderSnapshot draws a snapshot onto dst.
func RenderSnapshot(snap Snapshot, world config.WorldConfig, dst *core.Screen) {
	dst.Clear()

	w, h := dst.Width(), dst.Height()
	if w < minRenderW || h < minRenderH {
		dst.DrawText(0, 0, "Terminal too small")
		return
	}

	proj := newProjection(w, h, world.VisibilityDepth)

	drawRoad(dst, proj, snap)
	if snap.Phase != PhaseStart {
		for i := len(snap.Segments) - 1; i >= 0; i-- {
			drawSegment(dst, proj, snap.Segments[i], snap.GlobalZ)
		}
	}
	drawPlayer(dst, proj, snap.Player, world)
	drawHUD(dst, snap)

	if snap.Phase == PhaseGlitch {
		drawNoise(dst, snap.Ticks)
	}

	if snap.Prompt != nil {
		color := core.ColorBrightWhite
		if snap.Prompt.Kind == PromptHarm {
			color = core.ColorRed
		}
		dst.DrawTextCentered(h/3, snap.Prompt.Text, color)
	}

	if snap.Phase == PhaseStart {
		dst.DrawTextCentered(h/2-1, "The road remembers what you carry.", core.ColorBrightWhite)
		dst.DrawTextCentered(h/2+1, "Press any key to wake", core.ColorGray)
	}

	if snap.Paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// drawRoad draws the road edges and weather.
func drawRoad(dst *core.Screen, proj projection, snap Snapshot) {
	edgeColor := core.ColorDarkGray
	if snap.Environment == EnvStorm {
		edgeColor = core.ColorStorm
	}

	for y := proj.horizon; y <= proj.bottom; y++ {
		half := int(proj.maxHalf * proj.scaleAtRow(y))
		dst.SetColor(proj.cx-half-1, y, LeftEdge, edgeColor)
		dst.SetColor(proj.cx+half+1, y, RightEdge, edgeColor)
	}

	if snap.Environment == EnvStorm {
		for y := proj.horizon; y <= proj.bottom; y++ {
			for x := 0; x < proj.width; x++ {
				if (x*7+y*13+int(snap.Ticks))%29 == 0 && dst.Get(x, y) == ' ' {
					dst.SetColor(x, y, RainChar, core.ColorStorm)
				}
			}
		}
	}
}

// drawSegment draws one segment's seam, decor and lane content.
func drawSegment(dst *core.Screen, proj projection, seg SegmentView, globalZ float64) {
	relZ := seg.Z - globalZ
	if relZ <= -focalLength/2 || relZ > proj.depth {
		return
	}

	y := proj.row(relZ)
	if y < proj.horizon || y > proj.bottom {
		return
	}
	s := proj.scale(relZ)
	color := fadeColor(1 - relZ/proj.depth)
	half := int(proj.maxHalf * s)

	// Seam across the road surface
	for x := proj.cx - half; x <= proj.cx+half; x++ {
		if dst.Get(x, y) == ' ' {
			dst.SetColor(x, y, SeamChar, core.ColorDim)
		}
	}

	drawDecor(dst, proj, seg, y, half)

	for lane, content := range seg.Lanes {
		x := proj.laneX(lane, s)
		switch content.Kind {
		case LaneObstacle:
			width := core.Max(1, int(math.Round(3*s)))
			for dx := 0; dx < width; dx++ {
				dst.SetColor(x-width/2+dx, y, ObstacleChar, color)
			}
		case LanePrompt:
			room := int(proj.laneSpacing(s)) - 1
			if s > 0.45 && room >= 4 {
				text := truncate(content.Text, room)
				dst.DrawTextColor(x-utf8.RuneCountInString(text)/2, y, text, color)
			} else {
				dst.SetColor(x, y, PromptChar, color)
			}
		}
	}
}

// drawDecor places environment props beside the road.
func drawDecor(dst *core.Screen, proj projection, seg SegmentView, y, half int) {
	hash := idHash(seg.ID)
	left := proj.cx - half - 3
	right := proj.cx + half + 3

	switch seg.Env {
	case EnvOrchard:
		if hash%4 == 0 {
			dst.SetColor(left, y, '♣', core.ColorGray)
		}
		if hash%4 == 1 {
			dst.SetColor(right, y, '♣', core.ColorGray)
		}
	case EnvRuins:
		if hash%5 == 0 {
			dst.SetColor(left, y, '▌', core.ColorDarkGray)
		}
	case EnvRiverFord:
		if hash%3 == 0 {
			dst.SetColor(right, y, '≈', core.ColorGray)
		}
	}
}

// drawPlayer draws the avatar at its fixed camera offset.
func drawPlayer(dst *core.Screen, proj projection, player PlayerView, world config.WorldConfig) {
	y := proj.row(world.PlayerOffset)
	s := proj.scale(world.PlayerOffset)
	x := proj.cx
	if world.LaneWidth > 0 {
		x += int(math.Round(player.X / world.LaneWidth * proj.laneSpacing(s)))
	}
	dst.SetColor(x, y, PlayerChar, core.ColorBrightWhite)
}

// drawHUD draws the title, counters, distance and mood.
func drawHUD(dst *core.Screen, snap Snapshot) {
	w := dst.Width()
	mem := snap.Memory

	dst.DrawTextColor(2, 0, Title, core.ColorGray)
	distance := fmt.Sprintf("%d m", int(math.Floor(mem.DistanceTraveled)))
	dst.DrawTextColor(w-len(distance)-2, 0, distance, core.ColorBrightWhite)

	counters := fmt.Sprintf("%s %d  %s %d  %s %d",
		ThemeCarrying.Label(), mem.CarryingCount,
		ThemeDiscipline.Label(), mem.DisciplineCount,
		ThemeHunger.Label(), mem.HungerCount,
	)
	dst.DrawTextColor(2, 1, counters, core.ColorGray)
	env := snap.Environment.String()
	dst.DrawTextColor(w-len(env)-2, 1, env, core.ColorDim)
}

// drawNoise overlays the glitch flash.
func drawNoise(dst *core.Screen, ticks uint64) {
	for y := 0; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			if (x+y*3+int(ticks%11)*7)%11 == 0 {
				dst.SetColor(x, y, NoiseChar, core.ColorWhite)
			}
		}
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawBox(boxX, boxY, boxW, boxH, core.ColorGray)
	dst.DrawTextColor(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorBrightWhite)
	dst.DrawTextColor(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle, core.ColorGray)
}

// fadeColor maps closeness (1 = at camera, 0 = at horizon) to a color.
func fadeColor(closeness float64) core.Color {
	switch {
	case closeness > 0.75:
		return core.ColorBrightWhite
	case closeness > 0.5:
		return core.ColorWhite
	case closeness > 0.25:
		return core.ColorGray
	default:
		return core.ColorDarkGray
	}
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

// idHash gives a stable per-segment number for decoration.
func idHash(id string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return h.Sum32()
}
