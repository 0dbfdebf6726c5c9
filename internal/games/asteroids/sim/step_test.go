package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/geom"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/vec"
)

const eps = 1e-6

func newTestEnv() *Env {
	return NewEnv(DefaultParams(), 12345)
}

// playingWorld returns an empty level-1 world in the game view.
func playingWorld(e *Env) World {
	w := e.NewWorld()
	w.View = ViewGame
	w.Level = 1
	return w
}

func squareRock(id ID, p vec.Vector, size float64) Asteroid {
	return Asteroid{
		ID: id,
		Geometry: geom.ToPath([]vec.Vector{
			{X: size, Y: size}, {X: -size, Y: size},
			{X: -size, Y: -size}, {X: size, Y: -size},
		}),
		P:    p,
		Size: size,
	}
}

func TestStepNoopOutsideGame(t *testing.T) {
	e := newTestEnv()

	tests := []struct {
		name string
		mod  func(w *World)
	}{
		{"paused", func(w *World) { w.Paused = true }},
		{"menu", func(w *World) { w.View = ViewMenu }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := playingWorld(e)
			w.Ship.Controls.Thrust = true
			tt.mod(&w)

			next, ev := e.Step(w, 0.1)
			if next.Time != w.Time {
				t.Errorf("Time = %v, expected %v", next.Time, w.Time)
			}
			if next.Ship.V != w.Ship.V {
				t.Errorf("Ship.V = %v, expected %v", next.Ship.V, w.Ship.V)
			}
			if ev.ShotFired || ev.PlayerHit || len(ev.Collisions) != 0 {
				t.Errorf("Step() events = %+v, expected none", ev)
			}
		})
	}
}

func TestShipSpeedLimit(t *testing.T) {
	e := newTestEnv()
	w := playingWorld(e)
	w.Ship.Controls.Thrust = true
	w.Ship.Controls.Right = true

	for i := 0; i < 2000; i++ {
		w, _ = e.Step(w, 1.0/60)
		if got := w.Ship.V.Len(); got > e.Params.MaxSpeed+eps {
			t.Fatalf("step %d: |V| = %v, expected <= %v", i, got, e.Params.MaxSpeed)
		}
		if !insideWorld(w.Ship.P, w.Resolution) {
			t.Fatalf("step %d: ship at %v outside world", i, w.Ship.P)
		}
	}
}

func insideWorld(p, res vec.Vector) bool {
	return p.X >= 0 && p.X < res.X && p.Y >= 0 && p.Y < res.Y
}

func TestThrustImpulse(t *testing.T) {
	e := newTestEnv()
	w := playingWorld(e)
	w.Ship.Angle = 0
	w.Ship.Controls.Thrust = true

	next, _ := e.Step(w, 1.0/60)
	if math.Abs(next.Ship.V.X-e.Params.Thrust) > eps || math.Abs(next.Ship.V.Y) > eps {
		t.Errorf("Ship.V = %v, expected (%v, 0)", next.Ship.V, e.Params.Thrust)
	}
	if len(next.Particles) < e.Params.ThrustParticles {
		t.Errorf("len(Particles) = %d, expected at least %d", len(next.Particles), e.Params.ThrustParticles)
	}
}

func TestTurnAndSlowMode(t *testing.T) {
	e := newTestEnv()

	tests := []struct {
		name      string
		controls  Controls
		wantAngle float64
		wantTime  float64
	}{
		{"right", Controls{Right: true}, -90 + 150*0.1, 0.1},
		{"left", Controls{Left: true}, -90 - 150*0.1, 0.1},
		{"both cancel", Controls{Left: true, Right: true}, -90, 0.1},
		{"slow right", Controls{Right: true, Slow: true}, -90 + 150*0.04, 0.04},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := playingWorld(e)
			w.Ship.Controls = tt.controls

			next, _ := e.Step(w, 0.1)
			if math.Abs(next.Ship.Angle-tt.wantAngle) > eps {
				t.Errorf("Ship.Angle = %v, expected %v", next.Ship.Angle, tt.wantAngle)
			}
			if math.Abs(next.Time-tt.wantTime) > eps {
				t.Errorf("Time = %v, expected %v", next.Time, tt.wantTime)
			}
		})
	}
}

func TestFireGate(t *testing.T) {
	e := newTestEnv()
	w := playingWorld(e)
	w.Ship.Controls.Fire = true
	w.Time = 5.0
	w.Ship.NextShot = 4.9

	w, ev := e.Step(w, 0)
	if !ev.ShotFired || len(w.Shots) != 1 {
		t.Fatalf("first fire: ShotFired = %v, shots = %d, expected one shot", ev.ShotFired, len(w.Shots))
	}
	if math.Abs(w.Ship.NextShot-5.2) > eps {
		t.Errorf("NextShot = %v, expected 5.2", w.Ship.NextShot)
	}

	// Still inside the cooldown window.
	w.Time = 5.05
	w, ev = e.Step(w, 0)
	if ev.ShotFired || len(w.Shots) != 1 {
		t.Errorf("second fire: ShotFired = %v, shots = %d, expected no new shot", ev.ShotFired, len(w.Shots))
	}

	// The gate is strict.
	w.Time = w.Ship.NextShot
	_, ev = e.Step(w, 0)
	if ev.ShotFired {
		t.Error("fire at exactly NextShot should not produce a shot")
	}
}

func TestFireSlowMode(t *testing.T) {
	e := newTestEnv()
	w := playingWorld(e)
	w.Ship.Controls = Controls{Fire: true, Slow: true}
	w.Time = 1
	w.Ship.Angle = 0

	next, _ := e.Step(w, 0)
	if len(next.Shots) != 1 {
		t.Fatalf("len(Shots) = %d, expected 1", len(next.Shots))
	}
	s := next.Shots[0]
	if math.Abs(s.TTL-e.Params.ShotTTLSlow) > eps {
		t.Errorf("TTL = %v, expected %v", s.TTL, e.Params.ShotTTLSlow)
	}
	if math.Abs(next.Ship.NextShot-(1+e.Params.FireCooldownSlow)) > eps {
		t.Errorf("NextShot = %v, expected %v", next.Ship.NextShot, 1+e.Params.FireCooldownSlow)
	}
	wantP := w.Ship.P.Add(vec.New(e.Params.NoseOffset, 0))
	if vec.Dist(s.P, wantP) > eps {
		t.Errorf("shot P = %v, expected %v", s.P, wantP)
	}
	if math.Abs(s.V.X-e.Params.MuzzleSpeed) > eps {
		t.Errorf("shot V = %v, expected (%v, 0)", s.V, e.Params.MuzzleSpeed)
	}
}

func TestNoFireWhileDead(t *testing.T) {
	e := newTestEnv()
	w := playingWorld(e)
	w.Ship.Controls.Fire = true
	w.Time = 1
	w.PlayerRespawnTimeout = 7

	_, ev := e.Step(w, 0.1)
	if ev.ShotFired {
		t.Error("a dead ship should not fire")
	}
}

func TestDeadShipHoldsStill(t *testing.T) {
	e := newTestEnv()
	w := playingWorld(e)
	w.Ship.Controls.Thrust = true
	w.Ship.Controls.Right = true
	w.PlayerRespawnTimeout = 7
	before := w.Ship

	next, _ := e.Step(w, 0.5)
	if next.Ship.P != before.P {
		t.Errorf("Ship.P = %v, expected %v", next.Ship.P, before.P)
	}
	if next.Ship.V != before.V {
		t.Errorf("Ship.V = %v, expected %v", next.Ship.V, before.V)
	}
	if next.Ship.Angle != before.Angle {
		t.Errorf("Ship.Angle = %v, expected %v", next.Ship.Angle, before.Angle)
	}
}

func TestShotsExpire(t *testing.T) {
	e := newTestEnv()
	w := playingWorld(e)
	w.Shots = []Shot{{ID: 1, P: vec.New(10, 10), V: vec.New(100, 0), TTL: 0.05}}

	next, _ := e.Step(w, 0.1)
	if len(next.Shots) != 0 {
		t.Errorf("len(Shots) = %d, expected 0", len(next.Shots))
	}
}

func TestShotSplitsAsteroid(t *testing.T) {
	e := newTestEnv()
	w := playingWorld(e)
	w.NextID = 100
	rock := squareRock(1, vec.New(200, 150), 40)
	w.Asteroids = []Asteroid{rock}
	w.Shots = []Shot{{ID: 2, P: rock.P, TTL: 1}}

	next, ev := e.Step(w, 1.0/60)

	if len(ev.Collisions) != 1 {
		t.Fatalf("len(Collisions) = %d, expected 1", len(ev.Collisions))
	}
	if next.Points != 10 {
		t.Errorf("Points = %d, expected 10", next.Points)
	}
	if len(next.Shots) != 0 {
		t.Errorf("len(Shots) = %d, expected the spent shot removed", len(next.Shots))
	}
	if len(next.Asteroids) != 2 {
		t.Fatalf("len(Asteroids) = %d, expected 2", len(next.Asteroids))
	}
	for _, a := range next.Asteroids {
		if a.ID == rock.ID {
			t.Errorf("parent asteroid %d still present", rock.ID)
		}
		if a.Size != 20 {
			t.Errorf("child Size = %v, expected 20", a.Size)
		}
		if vec.Dist(a.P, rock.P) > eps {
			t.Errorf("child P = %v, expected %v", a.P, rock.P)
		}
	}
	if len(next.Particles) < e.Params.ExplosionParticles {
		t.Errorf("len(Particles) = %d, expected explosion particles", len(next.Particles))
	}
}

func TestSmallAsteroidDestroyed(t *testing.T) {
	e := newTestEnv()
	w := playingWorld(e)
	rock := squareRock(1, vec.New(200, 150), 10)
	w.Asteroids = []Asteroid{rock}
	w.Shots = []Shot{{ID: 2, P: rock.P, TTL: 1}}

	next, _ := e.Step(w, 1.0/60)
	if len(next.Asteroids) != 0 {
		t.Errorf("len(Asteroids) = %d, expected 0", len(next.Asteroids))
	}
	if next.Points != 10 {
		t.Errorf("Points = %d, expected 10", next.Points)
	}
}

func TestShotHitsAcrossEdge(t *testing.T) {
	e := newTestEnv()
	w := playingWorld(e)
	rock := squareRock(1, vec.New(5, 300), 40)
	w.Asteroids = []Asteroid{rock}
	w.Shots = []Shot{{ID: 2, P: vec.New(795, 300), TTL: 1}}

	_, ev := e.Step(w, 0)
	if len(ev.Collisions) != 1 {
		t.Errorf("len(Collisions) = %d, expected a hit through the wrapped edge", len(ev.Collisions))
	}
}

func TestCollisionsSkippedDuringLevelClear(t *testing.T) {
	e := newTestEnv()
	w := playingWorld(e)
	rock := squareRock(1, vec.New(200, 150), 40)
	w.Asteroids = []Asteroid{rock}
	w.Shots = []Shot{{ID: 2, P: rock.P, TTL: 1}}
	w.NextLevelTimeout = 3

	next, ev := e.Step(w, 0)
	if len(ev.Collisions) != 0 || next.Points != 0 {
		t.Errorf("Collisions = %d, Points = %d, expected none while level clear is pending", len(ev.Collisions), next.Points)
	}
}

func TestShipCollision(t *testing.T) {
	e := newTestEnv()
	w := playingWorld(e)
	// Ship straddles the right edge of the rock.
	rock := squareRock(1, w.Ship.P.Sub(vec.New(40, 0)), 40)
	w.Asteroids = []Asteroid{rock}

	next, ev := e.Step(w, 0)
	if !ev.PlayerHit {
		t.Fatal("PlayerHit = false, expected true")
	}
	if len(ev.Collisions) != 1 || !ev.Collisions[0].ByShip {
		t.Errorf("Collisions = %+v, expected one ship collision", ev.Collisions)
	}
	if next.Points != 10 {
		t.Errorf("Points = %d, expected 10", next.Points)
	}

	// A dead ship does not collide.
	w.PlayerRespawnTimeout = 9
	_, ev = e.Step(w, 0)
	if ev.PlayerHit {
		t.Error("PlayerHit = true while respawn pending")
	}
}

func TestShotAndShipOnSameAsteroid(t *testing.T) {
	e := newTestEnv()
	w := playingWorld(e)
	rock := squareRock(1, w.Ship.P.Sub(vec.New(40, 0)), 40)
	w.Asteroids = []Asteroid{rock}
	w.Shots = []Shot{{ID: 2, P: rock.P, V: vec.New(300, 0), TTL: 1}}

	next, ev := e.Step(w, 0)
	if !ev.PlayerHit {
		t.Error("PlayerHit = false, expected the ship wrecked")
	}
	if len(ev.Collisions) != 1 {
		t.Fatalf("len(Collisions) = %d, expected 1", len(ev.Collisions))
	}
	c := ev.Collisions[0]
	if c.ByShip || c.ShotID != 2 {
		t.Errorf("Collision = %+v, expected the shot's collision", c)
	}
	if c.V != vec.New(300, 0) {
		t.Errorf("Collision V = %v, expected the shot velocity", c.V)
	}
	if next.Points != 10 {
		t.Errorf("Points = %d, expected 10", next.Points)
	}
	if len(next.Asteroids) != 2 {
		t.Errorf("len(Asteroids) = %d, expected 2", len(next.Asteroids))
	}
}

func TestSplitAsteroid(t *testing.T) {
	e := newTestEnv()
	parent := squareRock(1, vec.New(100, 100), 40)
	parent.V = vec.New(200, 0)
	c := Collision{AsteroidID: 1, V: vec.New(300, 0)}

	children := SplitAsteroid(e.Rand, [2]ID{2, 3}, e.Params.Resolution, c, parent, 150, 60)

	wantV := []vec.Vector{vec.New(-50, 0), vec.New(150, 0)}
	for i, child := range children {
		if child.Size != parent.Size/2 {
			t.Errorf("child %d Size = %v, expected %v", i, child.Size, parent.Size/2)
		}
		if child.P != parent.P {
			t.Errorf("child %d P = %v, expected %v", i, child.P, parent.P)
		}
		if child.V.Len() > 150+eps {
			t.Errorf("child %d |V| = %v, expected <= 150", i, child.V.Len())
		}
		if vec.Dist(child.V, wantV[i]) > eps {
			t.Errorf("child %d V = %v, expected %v", i, child.V, wantV[i])
		}
	}
	if children[0].ID == children[1].ID {
		t.Error("children share an ID")
	}
}

func TestSpawnAsteroid(t *testing.T) {
	e := newTestEnv()
	res := e.Params.Resolution

	for i := 0; i < 50; i++ {
		a := SpawnAsteroid(e.Rand, ID(i+1), res, 40, 150, 60)
		if len(a.Geometry) < 4 {
			t.Fatalf("vertices = %d, expected at least 4", len(a.Geometry))
		}
		for _, v := range a.Geometry {
			if r := v.Len(); r < 30-eps || r > 40+eps {
				t.Errorf("vertex radius = %v, expected within [30, 40]", r)
			}
		}
		if !insideWorld(a.P, res) {
			t.Errorf("P = %v, expected inside world", a.P)
		}
		if math.Abs(a.V.X) > 150 || math.Abs(a.V.Y) > 150 {
			t.Errorf("V = %v, expected components within 150", a.V)
		}
	}
}

func TestParticlesFade(t *testing.T) {
	tests := []struct {
		name     string
		ttl, max float64
		expected float64
	}{
		{"full", 4, 4, 1},
		{"half", 2, 4, 0.5},
		{"expired", -1, 4, 0},
		{"no max", 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Particle{TTL: tt.ttl, MaxTTL: tt.max}
			if got := p.Fade(); got != tt.expected {
				t.Errorf("Fade() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestStepDoesNotMutateInput(t *testing.T) {
	e := newTestEnv()
	w := playingWorld(e)
	rock := squareRock(1, vec.New(200, 150), 40)
	rock.V = vec.New(10, 0)
	w.Asteroids = []Asteroid{rock}
	w.Shots = []Shot{{ID: 2, P: vec.New(600, 100), V: vec.New(50, 0), TTL: 1}}

	_, _ = e.Step(w, 0.5)

	if w.Asteroids[0].P != rock.P {
		t.Errorf("input asteroid moved to %v", w.Asteroids[0].P)
	}
	if w.Shots[0].P != vec.New(600, 100) {
		t.Errorf("input shot moved to %v", w.Shots[0].P)
	}
}
