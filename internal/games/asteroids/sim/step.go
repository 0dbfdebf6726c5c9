package sim

import (
	"math"

	"github.com/vovakirdan/tui-asteroids/internal/dispatch"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/geom"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/vec"
)

// Events reports what happened during one step.
type Events struct {
	Collisions []Collision
	PlayerHit  bool
	ShotFired  bool
}

// Advance returns the reducer form of Step. A ship hit dispatches
// PlayerKilled as a follow-up.
func (e *Env) Advance(dt float64) dispatch.Reducer[World] {
	return func(w World, fx dispatch.Effects[World]) World {
		next, ev := e.Step(w, dt)
		if ev.PlayerHit {
			fx.Dispatch(e.PlayerKilled())
		}
		return next
	}
}

// Step advances w by dt seconds. It is a no-op while paused or outside the
// game view.
func (e *Env) Step(w World, dt float64) (World, Events) {
	var ev Events
	if w.Paused || w.View != ViewGame {
		return w, ev
	}
	if math.IsNaN(dt) || dt < 0 {
		dt = 0
	}

	p := e.Params
	res := w.Resolution
	ship := w.Ship
	alive := w.Alive()

	mod := 1.0
	if ship.Controls.Slow {
		mod = p.SlowFactor
	}
	delta := dt * mod
	heading := vec.Angle(ship.Angle)

	// Shots
	fired := alive && ship.Controls.Fire && w.Time > ship.NextShot
	shots := make([]Shot, 0, len(w.Shots)+1)
	candidates := make([]Shot, 0, len(w.Shots)+1)
	candidates = append(candidates, w.Shots...)
	if fired {
		ttl := p.ShotTTL
		if ship.Controls.Slow {
			ttl = p.ShotTTLSlow
		}
		candidates = append(candidates, Shot{
			ID:  w.newID(),
			P:   ship.P.Add(heading.Scale(p.NoseOffset)),
			V:   heading.Scale(p.MuzzleSpeed),
			TTL: ttl,
		})
		ev.ShotFired = true
	}
	for _, s := range candidates {
		s.Angle += p.ShotSpin * delta
		s.P = s.P.Add(s.V.Scale(delta)).Wrap(res)
		s.TTL -= delta
		if s.TTL > 0 {
			shots = append(shots, s)
		}
	}

	// Collisions
	var collisions []Collision
	if w.NextLevelTimeout == 0 {
		var claimed map[ID]bool
		collisions, claimed = e.shotCollisions(shots, w.Asteroids, res)
		if alive {
			if c, ok := e.shipCollision(ship, w.Asteroids); ok {
				// A rock already split by a shot still wrecks the ship but
				// is not counted twice.
				if !claimed[c.AsteroidID] {
					collisions = append(collisions, c)
				}
				ev.PlayerHit = true
			}
		}
	}
	if len(collisions) > 0 {
		shots = removeSpentShots(shots, collisions)
	}

	// Asteroids
	hit := make(map[ID]Collision, len(collisions))
	for _, c := range collisions {
		hit[c.AsteroidID] = c
	}
	asteroids := make([]Asteroid, 0, len(w.Asteroids)+len(collisions))
	for _, a := range w.Asteroids {
		c, ok := hit[a.ID]
		if !ok {
			asteroids = append(asteroids, a)
			continue
		}
		if a.Size < p.MinSplitSize {
			continue
		}
		ids := [2]ID{w.newID(), w.newID()}
		children := SplitAsteroid(e.Rand, ids, res, c, a, p.SplitMaxSpeed, p.AsteroidSpin)
		asteroids = append(asteroids, children[0], children[1])
	}
	for i := range asteroids {
		a := &asteroids[i]
		a.P = a.P.Add(a.V.Scale(delta)).Wrap(res)
		a.Angle = math.Mod(a.Angle+a.AngleV*delta, 360)
	}

	// Particles
	particles := make([]Particle, 0, len(w.Particles)+p.ThrustParticles+len(asteroids)+len(collisions)*p.ExplosionParticles)
	particles = append(particles, w.Particles...)
	if alive && ship.Controls.Thrust {
		particles = append(particles, e.thrustParticles(&w, ship)...)
	}
	for _, a := range asteroids {
		if d, ok := e.dustParticle(&w, a); ok {
			particles = append(particles, d)
		}
	}
	for _, c := range collisions {
		particles = append(particles, e.explosionParticles(&w, c)...)
	}
	live := particles[:0]
	for _, pt := range particles {
		pt.P = pt.P.Add(pt.V.Scale(delta)).Wrap(res)
		pt.TTL -= delta
		if pt.TTL > 0 {
			live = append(live, pt)
		}
	}

	// Ship
	// A wrecked ship stays put until Respawn moves it.
	if alive {
		if ship.Controls.Thrust {
			ship.V = ship.V.Add(heading.Scale(p.Thrust)).Limit(p.MaxSpeed)
		}
		ship.P = ship.P.Add(ship.V.Scale(delta)).Wrap(res)
		ship.Angle += ship.Controls.turn() * p.TurnRate * delta
	}
	if fired {
		cooldown := p.FireCooldown
		if ship.Controls.Slow {
			cooldown = p.FireCooldownSlow
		}
		ship.NextShot = w.Time + cooldown
	}

	w.Ship = ship
	w.Shots = shots
	w.Asteroids = asteroids
	w.Particles = live
	w.Points += len(collisions) * p.PointsPerHit
	w.Time += delta

	ev.Collisions = collisions
	return w, ev
}

// shotCollisions pairs shots with the asteroids they sit inside. Each shot
// and each asteroid takes part in at most one collision; the first match
// wins. The returned set holds the asteroids the shots claimed.
func (e *Env) shotCollisions(shots []Shot, asteroids []Asteroid, res vec.Vector) ([]Collision, map[ID]bool) {
	if len(shots) == 0 || len(asteroids) == 0 {
		return nil, nil
	}
	tester := e.pointTester()
	usedAsteroid := make(map[ID]bool)
	var out []Collision

	for _, s := range shots {
		for _, a := range asteroids {
			if usedAsteroid[a.ID] {
				continue
			}
			if !e.shotHits(tester, s, a, res) {
				continue
			}
			usedAsteroid[a.ID] = true
			out = append(out, Collision{
				ShotID:     s.ID,
				AsteroidID: a.ID,
				At:         a.P,
				V:          s.V,
				Dir:        s.V.Unit(),
			})
			break
		}
	}
	return out, usedAsteroid
}

// shotHits tests a shot against an asteroid outline, including the wrapped
// ghost positions when the outline straddles a world edge.
func (e *Env) shotHits(tester geom.PointTester, s Shot, a Asteroid, res vec.Vector) bool {
	poly := e.Geometry.Denormalize(a.Body())
	if vec.Dist(s.P, a.P) <= e.Params.BroadPhase && tester.ContainsPoint(poly, s.P) {
		return true
	}
	if geom.AllInsideBounds(poly, res) {
		return false
	}
	for _, off := range geom.GhostOffsets(res) {
		ghost := s.P.Add(off)
		if vec.Dist(ghost, a.P) > e.Params.BroadPhase {
			continue
		}
		if tester.ContainsPoint(poly, ghost) {
			return true
		}
	}
	return false
}

// shipCollision returns the first asteroid whose outline crosses the ship.
func (e *Env) shipCollision(ship Ship, asteroids []Asteroid) (Collision, bool) {
	sb := ship.Body()
	for _, a := range asteroids {
		if geom.Collide(e.Geometry, sb, a.Body(), e.Params.BroadPhase) {
			return Collision{
				ByShip:     true,
				AsteroidID: a.ID,
				At:         a.P,
				V:          ship.V,
				Dir:        ship.V.Unit(),
			}, true
		}
	}
	return Collision{}, false
}

func removeSpentShots(shots []Shot, collisions []Collision) []Shot {
	spent := make(map[ID]bool, len(collisions))
	for _, c := range collisions {
		if !c.ByShip {
			spent[c.ShotID] = true
		}
	}
	out := make([]Shot, 0, len(shots))
	for _, s := range shots {
		if !spent[s.ID] {
			out = append(out, s)
		}
	}
	return out
}
