// Package sim holds the asteroids world model and the reducers that evolve
// it: the per-frame simulation step, the level and life state machine and
// the input flag setters.
//
// A World is treated as an immutable value. Every reducer returns a new
// World built from fresh slices, so a snapshot handed to the renderer is
// never modified by later frames.
package sim

import (
	"github.com/vovakirdan/tui-asteroids/internal/dispatch"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/geom"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/vec"
)

// ID identifies an entity within one session.
type ID uint64

// Entity kinds used in geometry cache keys.
const (
	KindShip uint8 = iota + 1
	KindAsteroid
)

// View is the screen the session is showing.
type View int

const (
	ViewMenu View = iota
	ViewGame
)

// String returns the view name.
func (v View) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewGame:
		return "game"
	default:
		return "unknown"
	}
}

// Controls are the ship's boolean control flags.
type Controls struct {
	Thrust bool
	Left   bool
	Right  bool
	Fire   bool
	Slow   bool
}

// turn returns -1, 0 or 1 from the left and right flags.
func (c Controls) turn() float64 {
	t := 0.0
	if c.Left {
		t--
	}
	if c.Right {
		t++
	}
	return t
}

// Ship is the player's vessel. Exactly one exists per session.
type Ship struct {
	Geometry geom.Polygon
	Controls Controls
	P        vec.Vector
	V        vec.Vector
	Angle    float64
	NextShot float64
}

// ShipGeometry is the ship outline in local space, nose along +x.
var ShipGeometry = geom.ToPath([]vec.Vector{
	{X: 10, Y: 0},
	{X: -10, Y: 8},
	{X: -10, Y: -8},
})

// Body returns the ship as a placed outline.
func (s Ship) Body() geom.Body {
	return geom.Body{
		Key:      geom.Key{Kind: KindShip, P: s.P, Angle: s.Angle},
		Geometry: s.Geometry,
	}
}

// Asteroid is an irregular rock.
type Asteroid struct {
	ID       ID
	Geometry geom.Polygon
	P        vec.Vector
	V        vec.Vector
	Angle    float64
	AngleV   float64
	Size     float64
}

// Body returns the asteroid as a placed outline.
func (a Asteroid) Body() geom.Body {
	return geom.Body{
		Key:      geom.Key{Kind: KindAsteroid, ID: uint64(a.ID), P: a.P, Angle: a.Angle},
		Geometry: a.Geometry,
	}
}

// Shot is a projectile fired by the ship.
type Shot struct {
	ID    ID
	P     vec.Vector
	V     vec.Vector
	Angle float64
	TTL   float64
}

// RGB is a particle color.
type RGB struct {
	R, G, B uint8
}

// Particle is a decorative spark.
type Particle struct {
	ID     ID
	P      vec.Vector
	V      vec.Vector
	Color  RGB
	TTL    float64
	MaxTTL float64
}

// Fade returns the remaining life of the particle in [0, 1].
func (p Particle) Fade() float64 {
	if p.MaxTTL <= 0 {
		return 0
	}
	f := p.TTL / p.MaxTTL
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Collision records one hit during a single step.
type Collision struct {
	ShotID     ID
	AsteroidID ID
	ByShip     bool
	At         vec.Vector
	V          vec.Vector
	Dir        vec.Vector
}

// World is the whole simulation state.
type World struct {
	Ship      Ship
	Asteroids []Asteroid
	Shots     []Shot
	Particles []Particle

	Points int
	Lives  int
	Level  int
	Time   float64

	Resolution vec.Vector

	NextLevelTimeout     dispatch.TimerID
	PlayerRespawnTimeout dispatch.TimerID

	Paused bool
	View   View
	NextID ID
}

// NewWorld returns a fresh session in the menu view.
func NewWorld(res vec.Vector, lives int) World {
	return World{
		Ship:       newShip(res),
		Lives:      lives,
		Resolution: res,
		View:       ViewMenu,
	}
}

func newShip(res vec.Vector) Ship {
	return Ship{
		Geometry: ShipGeometry,
		P:        res.Scale(0.5),
		Angle:    -90,
	}
}

// newID allocates the next identifier on w.
func (w *World) newID() ID {
	w.NextID++
	return w.NextID
}

// Alive reports whether the ship is in play.
func (w World) Alive() bool {
	return w.PlayerRespawnTimeout == 0
}

// Phase is a coarse view of the level and life state machine.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseLevelClearPending
	PhasePlayerDeadPending
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseLevelClearPending:
		return "level-clear-pending"
	case PhasePlayerDeadPending:
		return "player-dead-pending"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Phase reports the state machine phase of w.
func (w World) Phase() Phase {
	switch {
	case w.PlayerRespawnTimeout != 0 && w.Lives == 0:
		return PhaseGameOver
	case w.PlayerRespawnTimeout != 0:
		return PhasePlayerDeadPending
	case w.NextLevelTimeout != 0:
		return PhaseLevelClearPending
	default:
		return PhasePlaying
	}
}

// GameOver reports whether the session has ended.
func (w World) GameOver() bool {
	return w.Phase() == PhaseGameOver
}

// InProgress reports whether a game has been started and not lost.
func (w World) InProgress() bool {
	return w.Level > 0 && !w.GameOver()
}
