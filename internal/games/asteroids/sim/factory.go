package sim

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/geom"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/vec"
)

// SpawnAsteroid creates a rock of the given size at a random position.
// Vertex count grows with size; each vertex radius is jittered by up to 25%.
// Velocity components fall in [-speed, speed] and angular velocity in
// [-spin, spin] degrees per second.
func SpawnAsteroid(rng *rand.Rand, id ID, res vec.Vector, size, speed, spin float64) Asteroid {
	if size < 0 {
		size = 0
	}
	count := 4 + int(math.Floor(rng.Float64()*size/4))
	spacing := 360 / float64(count)

	points := make([]vec.Vector, count)
	for i := range points {
		a := vec.Radians(float64(i) * spacing)
		r := size - rng.Float64()*size/4
		points[i] = vec.Vector{X: math.Sin(a) * r, Y: math.Cos(a) * r}
	}

	return Asteroid{
		ID:       id,
		Geometry: geom.ToPath(points),
		P:        vec.New(rng.Float64()*res.X, rng.Float64()*res.Y),
		V:        vec.New(speed-rng.Float64()*2*speed, speed-rng.Float64()*2*speed),
		Angle:    rng.Float64() * 359,
		AngleV:   spin - rng.Float64()*2*spin,
		Size:     size,
	}
}

// SplitAsteroid breaks parent into two half-size rocks at its position.
// Each child takes half of the parent velocity combined with the hitter's
// velocity, one deflected against it and one with it, capped at maxSpeed.
func SplitAsteroid(rng *rand.Rand, ids [2]ID, res vec.Vector, c Collision, parent Asteroid, maxSpeed, spin float64) [2]Asteroid {
	var out [2]Asteroid
	for i := range out {
		child := SpawnAsteroid(rng, ids[i], res, parent.Size/2, maxSpeed, spin)
		hit := c.V
		if i == 0 {
			hit = hit.Flip()
		}
		child.P = parent.P
		child.V = parent.V.Add(hit).Scale(0.5).Limit(maxSpeed)
		out[i] = child
	}
	return out
}

// NewParticle creates a particle with a full lifetime.
func NewParticle(id ID, p, v vec.Vector, color RGB, ttl float64) Particle {
	return Particle{
		ID:     id,
		P:      p,
		V:      v,
		Color:  color,
		TTL:    ttl,
		MaxTTL: ttl,
	}
}

// thrustParticles emits exhaust behind the ship.
func (e *Env) thrustParticles(w *World, ship Ship) []Particle {
	p := e.Params
	heading := vec.Angle(ship.Angle)
	origin := ship.P.Add(heading.Scale(-p.NoseOffset))
	v := heading.Scale(-p.ExhaustSpeed)

	out := make([]Particle, 0, p.ThrustParticles)
	for i := 0; i < p.ThrustParticles; i++ {
		jitter := float64(1 - i)
		color := RGB{
			R: uint8(200 + e.Rand.Intn(50)),
			G: uint8(e.Rand.Intn(100)),
			B: uint8(e.Rand.Intn(100)),
		}
		out = append(out, NewParticle(w.newID(), origin.Add(vec.New(jitter, jitter)), v, color, p.ThrustParticleTTL))
	}
	return out
}

// explosionParticles emits a radial burst at a collision.
func (e *Env) explosionParticles(w *World, c Collision) []Particle {
	p := e.Params
	out := make([]Particle, 0, p.ExplosionParticles)
	for i := 0; i < p.ExplosionParticles; i++ {
		v := vec.Angle(e.Rand.Float64() * 359).Scale(p.ExplosionSpeed)
		out = append(out, NewParticle(w.newID(), c.At, v, RGB{R: 40, G: 40, B: 40}, p.ExplosionTTL))
	}
	return out
}

// dustParticle occasionally sheds a grey speck behind a moving asteroid.
func (e *Env) dustParticle(w *World, a Asteroid) (Particle, bool) {
	p := e.Params
	if e.Rand.Float64() > p.DustChance {
		return Particle{}, false
	}
	gray := uint8(100 + e.Rand.Intn(155))
	jitter := vec.New(
		a.Size/2-e.Rand.Float64()*a.Size,
		a.Size/2-e.Rand.Float64()*a.Size,
	)
	pos := a.P.Add(a.V.Unit().Scale(-a.Size)).Add(jitter)
	return NewParticle(w.newID(), pos, a.V.Scale(-0.25), RGB{R: gray, G: gray, B: gray}, p.DustTTL), true
}
