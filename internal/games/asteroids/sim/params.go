package sim

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/geom"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/vec"
)

// Params are the tunable constants of the simulation.
type Params struct {
	Resolution vec.Vector

	// Ship
	Thrust     float64 // velocity added per step while thrusting
	MaxSpeed   float64
	TurnRate   float64 // degrees per second
	SlowFactor float64
	NoseOffset float64

	// Shots
	MuzzleSpeed      float64
	ShotTTL          float64
	ShotTTLSlow      float64
	FireCooldown     float64
	FireCooldownSlow float64
	ShotSpin         float64

	// Asteroids
	InitialSize     float64
	MinSplitSize    float64
	SplitMaxSpeed   float64
	AsteroidSpeed   float64
	AsteroidSpin    float64
	BroadPhase      float64
	SpawnSafeRadius float64

	// Particles
	ThrustParticles    int
	ThrustParticleTTL  float64
	ExhaustSpeed       float64
	ExplosionParticles int
	ExplosionSpeed     float64
	ExplosionTTL       float64
	DustChance         float64
	DustTTL            float64

	// Gameplay
	StartLives      int
	PointsPerHit    int
	LevelClearDelay time.Duration
	RespawnDelay    time.Duration
}

// DefaultParams returns the classic tuning on an 800x600 world.
func DefaultParams() Params {
	return Params{
		Resolution: vec.New(800, 600),

		Thrust:     5,
		MaxSpeed:   300,
		TurnRate:   150,
		SlowFactor: 0.4,
		NoseOffset: 12,

		MuzzleSpeed:      300,
		ShotTTL:          1.5,
		ShotTTLSlow:      0.5,
		FireCooldown:     0.2,
		FireCooldownSlow: 0.01,
		ShotSpin:         100,

		InitialSize:     40,
		MinSplitSize:    20,
		SplitMaxSpeed:   150,
		AsteroidSpeed:   150,
		AsteroidSpin:    60,
		BroadPhase:      100,
		SpawnSafeRadius: 100,

		ThrustParticles:    3,
		ThrustParticleTTL:  5,
		ExhaustSpeed:       80,
		ExplosionParticles: 20,
		ExplosionSpeed:     50,
		ExplosionTTL:       4,
		DustChance:         0.4,
		DustTTL:            1,

		StartLives:      3,
		PointsPerHit:    10,
		LevelClearDelay: 5 * time.Second,
		RespawnDelay:    3 * time.Second,
	}
}

// Env bundles what the reducers need besides the world itself.
// An Env belongs to one session and is not safe for concurrent use.
type Env struct {
	Params Params
	Rand   *rand.Rand

	// Geometry memoizes denormalized outlines. May be nil.
	Geometry *geom.Cache

	// Points tests shots against asteroid outlines.
	Points geom.PointTester

	// SpeedFor scales the asteroid speed for a level. Nil keeps
	// Params.AsteroidSpeed.
	SpeedFor func(level int) float64
}

// NewEnv creates an Env seeded for deterministic play.
func NewEnv(p Params, seed int64) *Env {
	return &Env{
		Params:   p,
		Rand:     rand.New(rand.NewSource(seed)),
		Geometry: geom.NewCache(geom.DefaultCacheLimit),
		Points:   geom.EvenOdd{},
	}
}

// NewWorld returns a fresh world sized and stocked from the Env params.
func (e *Env) NewWorld() World {
	return NewWorld(e.Params.Resolution, e.Params.StartLives)
}

func (e *Env) asteroidSpeed(level int) float64 {
	if e.SpeedFor != nil {
		return e.SpeedFor(level)
	}
	return e.Params.AsteroidSpeed
}

func (e *Env) pointTester() geom.PointTester {
	if e.Points == nil {
		return geom.EvenOdd{}
	}
	return e.Points
}
