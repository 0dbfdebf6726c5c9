package asteroids

import (
	"math"

	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/sim"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/vec"
)

// aimTolerance is how far off target, in degrees, the autopilot still fires.
const aimTolerance = 8.0

// Autopilot returns the held controls of a simple bot: turn toward the
// nearest asteroid, fire when roughly aimed, and thrust away from rocks
// that get too close. It only reads w, so a seeded run stays deterministic.
func Autopilot(w sim.World) core.InputFrame {
	in := core.NewInputFrame()
	if !w.Alive() || len(w.Asteroids) == 0 {
		return in
	}

	ship := w.Ship
	target, dist := nearest(w)
	to := target.P.Sub(ship.P)
	diff := angleDiff(math.Atan2(to.Y, to.X)*180/math.Pi, ship.Angle)

	switch {
	case diff < -aimTolerance/2:
		in.Hold(core.ActionLeft, true)
	case diff > aimTolerance/2:
		in.Hold(core.ActionRight, true)
	}
	if math.Abs(diff) <= aimTolerance {
		in.Hold(core.ActionFire, true)
	}

	// Back off when a rock is closing in and we face away from it.
	if dist < target.Size*3 && math.Abs(diff) > 120 {
		in.Hold(core.ActionThrust, true)
	}
	return in
}

// nearest returns the asteroid closest to the ship and its distance.
func nearest(w sim.World) (sim.Asteroid, float64) {
	best := w.Asteroids[0]
	bestDist := vec.Dist(best.P, w.Ship.P)
	for _, a := range w.Asteroids[1:] {
		if d := vec.Dist(a.P, w.Ship.P); d < bestDist {
			best, bestDist = a, d
		}
	}
	return best, bestDist
}

// angleDiff returns target-current normalized to [-180, 180).
func angleDiff(target, current float64) float64 {
	d := math.Mod(target-current+180, 360)
	if d < 0 {
		d += 360
	}
	return d - 180
}
