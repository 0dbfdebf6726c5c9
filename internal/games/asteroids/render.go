package asteroids

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/geom"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/sim"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/vec"
)

// Minimum terminal size for a playable field.
const (
	minScreenW = 30
	minScreenH = 12
)

// Status messages shown over the field.
const (
	MsgPaused    = "PAUSED"
	MsgGameOver  = "GAME OVER"
	MsgWrecked   = "WRECKED"
	MsgNextLevel = "READY NEXT LEVEL"
)

// Glyphs used by the rasterizer.
const (
	glyphAsteroid = '#'
	glyphShip     = '+'
	glyphShot     = '•'
	glyphSpark    = '*'
	glyphEmber    = '.'
)

// Snapshot is an immutable render frame: the world plus its outlines in
// world space, wrap ghosts included.
type Snapshot struct {
	World     sim.World
	Ship      []geom.Polygon // empty while the ship is wrecked
	Asteroids []geom.Polygon
	Message   string
}

// NewSnapshot builds a render frame from w. Outlines are denormalized
// through cache, which may be nil.
func NewSnapshot(w sim.World, cache *geom.Cache) Snapshot {
	res := w.Resolution
	snap := Snapshot{
		World:   w,
		Message: Message(w),
	}

	if w.Alive() {
		snap.Ship = geom.Ghosts(cache.Denormalize(w.Ship.Body()), res)
	}
	snap.Asteroids = make([]geom.Polygon, 0, len(w.Asteroids))
	for _, a := range w.Asteroids {
		snap.Asteroids = append(snap.Asteroids, geom.Ghosts(cache.Denormalize(a.Body()), res)...)
	}
	return snap
}

// Message returns the status line for w, or "" while playing normally.
func Message(w sim.World) string {
	if w.Paused {
		return MsgPaused
	}
	switch w.Phase() {
	case sim.PhaseGameOver:
		return MsgGameOver
	case sim.PhasePlayerDeadPending:
		return MsgWrecked
	case sim.PhaseLevelClearPending:
		return MsgNextLevel
	default:
		return ""
	}
}

// viewport maps world coordinates onto the playfield below the HUD row.
type viewport struct {
	res  vec.Vector
	area core.Rect
}

func (v viewport) project(p vec.Vector) (int, int) {
	x := math.Floor(p.X / v.res.X * float64(v.area.W))
	y := math.Floor(p.Y / v.res.Y * float64(v.area.H))
	return v.area.X + int(x), v.area.Y + int(y)
}

// Rasterize draws snap into dst.
func Rasterize(dst *core.Screen, snap Snapshot) {
	dst.Clear()

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", minScreenW, minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	w := snap.World
	if w.Resolution.X <= 0 || w.Resolution.Y <= 0 {
		return
	}
	vp := viewport{
		res:  w.Resolution,
		area: core.NewRect(0, 1, dst.Width(), dst.Height()-1),
	}

	renderParticles(dst, vp, w.Particles)
	for _, poly := range snap.Asteroids {
		drawOutline(dst, vp, poly, glyphAsteroid, core.ColorWhite)
	}
	for _, s := range w.Shots {
		x, y := vp.project(s.P)
		dst.SetColored(x, y, glyphShot, core.ColorBrightYellow)
	}
	shipColor := core.ColorBrightCyan
	if w.Ship.Controls.Slow {
		shipColor = core.ColorBrightMagenta
	}
	for _, poly := range snap.Ship {
		drawOutline(dst, vp, poly, glyphShip, shipColor)
	}

	renderHUD(dst, w)
	renderMessage(dst, snap.Message)
}

func drawOutline(dst *core.Screen, vp viewport, poly geom.Polygon, r rune, c core.Color) {
	for _, seg := range poly.Segments() {
		x0, y0 := vp.project(seg.A)
		x1, y1 := vp.project(seg.B)
		dst.DrawLine(x0, y0, x1, y1, r, c)
	}
}

func renderParticles(dst *core.Screen, vp viewport, particles []sim.Particle) {
	for _, p := range particles {
		x, y := vp.project(p.P)
		glyph := glyphEmber
		if p.Fade() > 0.5 {
			glyph = glyphSpark
		}
		tint := core.RGB(p.Color.R, p.Color.G, p.Color.B).Scale(p.Fade())
		dst.SetTinted(x, y, glyph, tint)
	}
}

// renderHUD draws points, lives and level on the top row.
func renderHUD(dst *core.Screen, w sim.World) {
	dst.DrawTextColored(1, 0, fmt.Sprintf("Points: %d", w.Points), core.ColorBrightWhite)

	lives := fmt.Sprintf("Lives: %d", w.Lives)
	dst.DrawTextCenteredColored(0, lives, core.ColorBrightGreen)

	level := fmt.Sprintf("Level: %d", w.Level)
	if w.Ship.Controls.Slow {
		level = "SLOW  " + level
	}
	dst.DrawTextColored(dst.Width()-len(level)-1, 0, level, core.ColorBrightCyan)
}

// renderMessage draws a boxed status message in the middle of the field.
func renderMessage(dst *core.Screen, msg string) {
	if msg == "" {
		return
	}
	box := core.CenteredRect(dst.Bounds(), len(msg)+4, 3)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorYellow)
	dst.DrawTextColored(box.X+2, box.Y+1, msg, core.ColorBrightYellow)
}
