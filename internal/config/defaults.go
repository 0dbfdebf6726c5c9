package config

import (
	_ "embed"
)

//go:embed defaults/asteroids.yaml
var defaultAsteroidsYAML []byte

// DefaultAsteroidsConfig returns the default Asteroids configuration.
func DefaultAsteroidsConfig() AsteroidsConfig {
	return AsteroidsConfig{
		World: WorldConfig{
			Width:  800,
			Height: 600,
		},
		Ship: ShipConfig{
			Thrust:     5,
			MaxSpeed:   300,
			TurnRate:   150,
			SlowFactor: 0.4,
			NoseOffset: 12,
		},
		Shots: ShotsConfig{
			MuzzleSpeed:  300,
			TTL:          1.5,
			TTLSlow:      0.5,
			Cooldown:     0.2,
			CooldownSlow: 0.01,
			Spin:         100,
		},
		Asteroids: AsteroidsTuning{
			InitialSize:   40,
			MinSplitSize:  20,
			SplitMaxSpeed: 150,
			Speed:         150,
			Spin:          60,
			BroadPhase:    100,
			SafeRadius:    100,
		},
		Particles: ParticlesConfig{
			Thrust:         3,
			ThrustTTL:      5,
			ExhaustSpeed:   80,
			Explosion:      20,
			ExplosionSpeed: 50,
			ExplosionTTL:   4,
			DustChance:     0.4,
			DustTTL:        1,
		},
		Gameplay: GameplayConfig{
			Lives:           3,
			PointsPerHit:    10,
			LevelClearDelay: 5,
			RespawnDelay:    3,
		},
		Timers: TimersConfig{
			Clock: "logical",
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}
