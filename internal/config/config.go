// Package config provides YAML-based game configuration loading and
// difficulty management.
package config

// AsteroidsConfig contains all configuration for the Asteroids game.
type AsteroidsConfig struct {
	World      WorldConfig      `yaml:"world"`
	Ship       ShipConfig       `yaml:"ship"`
	Shots      ShotsConfig      `yaml:"shots"`
	Asteroids  AsteroidsTuning  `yaml:"asteroids"`
	Particles  ParticlesConfig  `yaml:"particles"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Timers     TimersConfig     `yaml:"timers"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// WorldConfig defines the size of the toroidal play field in world units.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ShipConfig defines ship handling.
type ShipConfig struct {
	Thrust     float64 `yaml:"thrust"`      // velocity added per frame while thrusting
	MaxSpeed   float64 `yaml:"max_speed"`   // units per second
	TurnRate   float64 `yaml:"turn_rate"`   // degrees per second
	SlowFactor float64 `yaml:"slow_factor"` // time scale in slow mode
	NoseOffset float64 `yaml:"nose_offset"`
}

// ShotsConfig defines projectile behavior.
type ShotsConfig struct {
	MuzzleSpeed  float64 `yaml:"muzzle_speed"`
	TTL          float64 `yaml:"ttl"`
	TTLSlow      float64 `yaml:"ttl_slow"`
	Cooldown     float64 `yaml:"cooldown"`
	CooldownSlow float64 `yaml:"cooldown_slow"`
	Spin         float64 `yaml:"spin"`
}

// AsteroidsTuning defines rock spawning and splitting.
type AsteroidsTuning struct {
	InitialSize   float64 `yaml:"initial_size"`
	MinSplitSize  float64 `yaml:"min_split_size"`
	SplitMaxSpeed float64 `yaml:"split_max_speed"`
	Speed         float64 `yaml:"speed"`
	Spin          float64 `yaml:"spin"`
	BroadPhase    float64 `yaml:"broad_phase"`
	SafeRadius    float64 `yaml:"safe_radius"`
}

// ParticlesConfig defines decorative particles.
type ParticlesConfig struct {
	Thrust         int     `yaml:"thrust"`
	ThrustTTL      float64 `yaml:"thrust_ttl"`
	ExhaustSpeed   float64 `yaml:"exhaust_speed"`
	Explosion      int     `yaml:"explosion"`
	ExplosionSpeed float64 `yaml:"explosion_speed"`
	ExplosionTTL   float64 `yaml:"explosion_ttl"`
	DustChance     float64 `yaml:"dust_chance"`
	DustTTL        float64 `yaml:"dust_ttl"`
}

// GameplayConfig defines lives, scoring and state machine delays.
type GameplayConfig struct {
	Lives           int     `yaml:"lives"`
	PointsPerHit    int     `yaml:"points_per_hit"`
	LevelClearDelay float64 `yaml:"level_clear_delay"` // seconds
	RespawnDelay    float64 `yaml:"respawn_delay"`     // seconds
}

// TimersConfig selects how delayed transitions measure time.
type TimersConfig struct {
	Clock string `yaml:"clock"` // "logical" or "wall"
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level", "score", or "none"
	MaxAt int    `yaml:"max_at"` // Wave or score at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to asteroid speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ParsePreset converts a flag value to a DifficultyPreset.
// The boolean is false for unknown names.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}
