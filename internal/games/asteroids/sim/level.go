package sim

import (
	"github.com/vovakirdan/tui-asteroids/internal/dispatch"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/vec"
)

// spawnAttempts bounds the re-rolls used to keep a new wave off the ship.
const spawnAttempts = 8

// CompleteLevel arms the next-level timer once the field is clear.
// It does nothing before the first level, while the timer is already
// armed, or while asteroids remain.
func (e *Env) CompleteLevel() dispatch.Reducer[World] {
	return func(w World, fx dispatch.Effects[World]) World {
		if w.Level == 0 || w.NextLevelTimeout != 0 || len(w.Asteroids) > 0 {
			return w
		}
		w.NextLevelTimeout = fx.After(e.Params.LevelClearDelay, e.NextLevel())
		return w
	}
}

// NextLevel starts the next wave: level+1 full-size asteroids, no shots.
func (e *Env) NextLevel() dispatch.Reducer[World] {
	return func(w World, _ dispatch.Effects[World]) World {
		w.Asteroids = e.spawnWave(&w, w.Level+1)
		w.Shots = nil
		w.Level++
		w.NextLevelTimeout = 0
		return w
	}
}

func (e *Env) spawnWave(w *World, n int) []Asteroid {
	p := e.Params
	speed := e.asteroidSpeed(w.Level + 1)
	wave := make([]Asteroid, 0, n)
	for i := 0; i < n; i++ {
		id := w.newID()
		var a Asteroid
		for attempt := 0; attempt < spawnAttempts; attempt++ {
			a = SpawnAsteroid(e.Rand, id, w.Resolution, p.InitialSize, speed, p.AsteroidSpin)
			if vec.Dist(a.P, w.Ship.P) > p.SpawnSafeRadius {
				break
			}
		}
		wave = append(wave, a)
	}
	return wave
}

// PlayerKilled takes a life and arms the respawn timer. A second death
// while the respawn is pending is ignored.
func (e *Env) PlayerKilled() dispatch.Reducer[World] {
	return func(w World, fx dispatch.Effects[World]) World {
		if w.PlayerRespawnTimeout != 0 {
			return w
		}
		w.Lives = max(0, w.Lives-1)
		w.PlayerRespawnTimeout = fx.After(e.Params.RespawnDelay, e.Respawn())
		return w
	}
}

// Respawn returns the ship to the centre of the world at rest. With no
// lives left the respawn slot stays armed and the game is over.
func (e *Env) Respawn() dispatch.Reducer[World] {
	return func(w World, _ dispatch.Effects[World]) World {
		w.Ship.P = w.Resolution.Scale(0.5)
		w.Ship.V = vec.Zero
		if w.Lives > 0 {
			w.PlayerRespawnTimeout = 0
		}
		return w
	}
}

// TogglePause flips the in-game pause flag.
func (e *Env) TogglePause() dispatch.Reducer[World] {
	return func(w World, _ dispatch.Effects[World]) World {
		w.Paused = !w.Paused
		return w
	}
}

// SetView switches between the menu and the game.
func (e *Env) SetView(v View) dispatch.Reducer[World] {
	return func(w World, _ dispatch.Effects[World]) World {
		w.View = v
		return w
	}
}

// ResetGame discards the current game and disarms its timers. The view
// and the identifier counter carry over.
func (e *Env) ResetGame() dispatch.Reducer[World] {
	return func(w World, fx dispatch.Effects[World]) World {
		fx.Cancel(w.NextLevelTimeout)
		fx.Cancel(w.PlayerRespawnTimeout)

		fresh := NewWorld(w.Resolution, e.Params.StartLives)
		fresh.View = w.View
		fresh.NextID = w.NextID
		return fresh
	}
}

// StartGame returns the reducer chain that begins a new game: a reset,
// then the first wave and the switch to the game view as follow-ups.
func (e *Env) StartGame() (dispatch.Reducer[World], []dispatch.Reducer[World]) {
	return e.ResetGame(), []dispatch.Reducer[World]{
		e.NextLevel(),
		e.SetView(ViewGame),
	}
}
