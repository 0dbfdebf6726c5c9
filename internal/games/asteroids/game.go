// Package asteroids adapts the asteroids simulation to the registry.Game
// interface: it owns the reducer scheduler, maps held keys to control
// flags and rasterizes the world into a character screen.
package asteroids

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-asteroids/internal/config"
	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/dispatch"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/sim"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/vec"
	"github.com/vovakirdan/tui-asteroids/internal/registry"
)

// GameID is the registry and leaderboard identifier.
const GameID = "asteroids"

// maxElapsed caps one frame so a stalled terminal does not tunnel rocks
// through the ship.
const maxElapsed = 250 * time.Millisecond

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// clockOverride replaces the configured timer clock when set.
var clockOverride dispatch.ClockMode

// logger receives game events. Silent unless SetLogger is called.
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok {
		p = ""
	}
	difficultyPreset = p
}

// SetClockMode pins the timer clock for games reset afterwards, whatever
// the config says. An empty mode restores the configured clock.
func SetClockMode(mode string) {
	if mode == "" {
		clockOverride = ""
		return
	}
	clockOverride = dispatch.ParseClockMode(mode)
}

// SetLogger sets the logger used by games created afterwards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// LoadConfig loads the config file and applies the difficulty preset.
func LoadConfig() (config.AsteroidsConfig, error) {
	cfg, err := config.LoadAsteroids(configPath)
	if err != nil {
		return cfg, err
	}
	if difficultyPreset != "" {
		config.ApplyAsteroidsPreset(&cfg, difficultyPreset)
	}
	return cfg, nil
}

// ParamsFromConfig maps the YAML config onto simulation params.
func ParamsFromConfig(cfg config.AsteroidsConfig) sim.Params {
	p := sim.DefaultParams()

	if cfg.World.Width > 0 && cfg.World.Height > 0 {
		p.Resolution = vec.New(cfg.World.Width, cfg.World.Height)
	}

	p.Thrust = cfg.Ship.Thrust
	p.MaxSpeed = cfg.Ship.MaxSpeed
	p.TurnRate = cfg.Ship.TurnRate
	p.SlowFactor = cfg.Ship.SlowFactor
	p.NoseOffset = cfg.Ship.NoseOffset

	p.MuzzleSpeed = cfg.Shots.MuzzleSpeed
	p.ShotTTL = cfg.Shots.TTL
	p.ShotTTLSlow = cfg.Shots.TTLSlow
	p.FireCooldown = cfg.Shots.Cooldown
	p.FireCooldownSlow = cfg.Shots.CooldownSlow
	p.ShotSpin = cfg.Shots.Spin

	p.InitialSize = cfg.Asteroids.InitialSize
	p.MinSplitSize = cfg.Asteroids.MinSplitSize
	p.SplitMaxSpeed = cfg.Asteroids.SplitMaxSpeed
	p.AsteroidSpeed = cfg.Asteroids.Speed
	p.AsteroidSpin = cfg.Asteroids.Spin
	p.BroadPhase = cfg.Asteroids.BroadPhase
	p.SpawnSafeRadius = cfg.Asteroids.SafeRadius

	p.ThrustParticles = cfg.Particles.Thrust
	p.ThrustParticleTTL = cfg.Particles.ThrustTTL
	p.ExhaustSpeed = cfg.Particles.ExhaustSpeed
	p.ExplosionParticles = cfg.Particles.Explosion
	p.ExplosionSpeed = cfg.Particles.ExplosionSpeed
	p.ExplosionTTL = cfg.Particles.ExplosionTTL
	p.DustChance = cfg.Particles.DustChance
	p.DustTTL = cfg.Particles.DustTTL

	if cfg.Gameplay.Lives > 0 {
		p.StartLives = cfg.Gameplay.Lives
	}
	p.PointsPerHit = cfg.Gameplay.PointsPerHit
	p.LevelClearDelay = seconds(cfg.Gameplay.LevelClearDelay)
	p.RespawnDelay = seconds(cfg.Gameplay.RespawnDelay)

	return p
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// controlFlags maps held actions to simulation control flags.
var controlFlags = map[core.Action]string{
	core.ActionThrust: sim.FlagThrust,
	core.ActionLeft:   sim.FlagLeft,
	core.ActionRight:  sim.FlagRight,
	core.ActionFire:   sim.FlagFire,
	core.ActionSlow:   sim.FlagSlow,
}

// Game implements registry.Game for Asteroids.
type Game struct {
	runtime    core.RuntimeConfig
	cfg        config.AsteroidsConfig
	difficulty *config.DifficultyManager
	env        *sim.Env
	sched      *dispatch.Scheduler[sim.World]
	logger     *log.Logger

	// held is the control state already dispatched to the world.
	held map[core.Action]bool

	// snapshot is the last frame handed to the render consumer.
	snapshot Snapshot

	lastLevel     int
	lastLives     int
	lastOverflows uint64
	overLogged    bool
}

// New creates a new Asteroids game instance.
func New() *Game {
	return &Game{logger: logger}
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Asteroids"
}

// Reset discards any running game and starts a new one.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.logger = logger

	cfg, err := LoadConfig()
	if err != nil {
		g.logger.Warn("using default config", "err", err)
		cfg = config.DefaultAsteroidsConfig()
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.env = sim.NewEnv(ParamsFromConfig(cfg), seed)
	g.env.SpeedFor = g.difficulty.WaveSpeed(cfg.Asteroids.Speed)

	clock := dispatch.ParseClockMode(cfg.Timers.Clock)
	if clockOverride != "" {
		clock = clockOverride
	}

	if g.sched != nil {
		g.sched.Close()
	}
	g.sched = dispatch.New(g.env.NewWorld(), dispatch.Options[sim.World]{
		Hook:       g.hook,
		Render:     g.render,
		Running:    running,
		Clock:      clock,
		MaxElapsed: maxElapsed,
	})
	g.held = make(map[core.Action]bool)
	g.lastLevel = 0
	g.lastLives = g.env.Params.StartLives
	g.lastOverflows = 0
	g.overLogged = false

	fn, then := g.env.StartGame()
	g.sched.Schedule(fn, then...)
	g.sched.Drain()
	g.render(g.sched.State())
	g.observe()

	g.logger.Debug("game started", "seed", seed, "clock", g.sched.Clock(), "lives", g.env.Params.StartLives)
}

// running reports whether the session clock should advance.
func running(w sim.World) bool {
	return w.View == sim.ViewGame && !w.Paused
}

// hook enqueues the per-frame simulation step and the level-clear check.
func (g *Game) hook(_ sim.World, elapsed float64, enqueue func(dispatch.Reducer[sim.World])) {
	enqueue(g.env.Advance(elapsed))
	enqueue(g.env.CompleteLevel())
}

// render is the scheduler's render consumer.
func (g *Game) render(w sim.World) {
	g.snapshot = NewSnapshot(w, g.env.Geometry)
}

// Step runs one frame. Held keys are diffed into press and release
// reducers before the cycle.
func (g *Game) Step(in core.InputFrame, now time.Time) core.StepResult {
	if g.sched == nil || g.sched.Paused() {
		return core.StepResult{State: g.State()}
	}

	w := g.sched.State()
	if in.Has(core.ActionRestart) && w.GameOver() {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) && w.View == sim.ViewGame {
		g.sched.Dispatch(g.env.TogglePause())
	}

	for _, a := range core.ControlActions {
		down := in.IsHeld(a)
		if down == g.held[a] {
			continue
		}
		if down {
			g.sched.Dispatch(sim.Press(controlFlags[a]))
		} else {
			g.sched.Dispatch(sim.Release(controlFlags[a]))
		}
		g.held[a] = down
	}

	before := g.sched.State().Points
	g.sched.Cycle(now)
	g.observe()

	hits := 0
	if pts := g.env.Params.PointsPerHit; pts > 0 {
		hits = (g.sched.State().Points - before) / pts
	}
	return core.StepResult{State: g.State(), Hits: hits}
}

// observe logs state machine transitions and keeps the geometry cache
// scoped to one level.
func (g *Game) observe() {
	w := g.sched.State()

	if w.Level != g.lastLevel {
		stats := g.env.Geometry.Stats()
		g.env.Geometry.Reset()
		g.logger.Debug("level started", "level", w.Level, "asteroids", len(w.Asteroids),
			"cache_entries", stats.Entries, "cache_hits", stats.Hits)
		g.lastLevel = w.Level
	}
	if w.Lives < g.lastLives {
		g.logger.Debug("ship destroyed", "lives", w.Lives, "points", w.Points)
	}
	g.lastLives = w.Lives

	if w.GameOver() && !g.overLogged {
		g.logger.Debug("game over", "points", w.Points, "level", w.Level)
		g.overLogged = true
	}
	if st := g.sched.Stats(); st.Overflows > g.lastOverflows {
		g.logger.Warn("reducer queue over budget, work deferred", "pending", g.sched.Pending(), "overflows", st.Overflows)
		g.lastOverflows = st.Overflows
	}
}

// Render draws the latest snapshot into dst.
func (g *Game) Render(dst *core.Screen) {
	Rasterize(dst, g.snapshot)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.sched == nil {
		return core.GameState{InMenu: true}
	}
	w := g.sched.State()
	return core.GameState{
		Score:    w.Points,
		Level:    w.Level,
		Lives:    w.Lives,
		GameOver: w.GameOver(),
		Paused:   w.Paused,
		InMenu:   w.View == sim.ViewMenu,
	}
}

// Suspend switches the world to the menu view and stops the scheduler.
// Held controls are released so the ship does not keep thrusting.
func (g *Game) Suspend() {
	if g.sched == nil || g.sched.Paused() {
		return
	}
	g.sched.Schedule(sim.ReleaseAllFlags(), g.env.SetView(sim.ViewMenu))
	g.sched.Drain()
	g.render(g.sched.State())
	g.sched.Pause()
	g.held = make(map[core.Action]bool)
}

// Resume returns to a suspended game. It reports false when no game is
// in progress.
func (g *Game) Resume() bool {
	if !g.InProgress() {
		return false
	}
	g.sched.Resume()
	g.sched.Schedule(g.env.SetView(sim.ViewGame))
	g.sched.Drain()
	g.render(g.sched.State())
	return true
}

// InProgress reports whether a started game has not ended yet.
func (g *Game) InProgress() bool {
	return g.sched != nil && g.sched.State().InProgress()
}

// Close stops the scheduler and its timers.
func (g *Game) Close() error {
	if g.sched != nil {
		g.sched.Close()
	}
	return nil
}

// Snapshot returns a determinism summary of the current world.
func (g *Game) Snapshot() sim.Snapshot {
	if g.sched == nil {
		return sim.Snapshot{}
	}
	return g.sched.State().Snapshot()
}

// World returns the current world value.
func (g *Game) World() sim.World {
	if g.sched == nil {
		return sim.World{}
	}
	return g.sched.State()
}

var (
	_ registry.Game        = (*Game)(nil)
	_ registry.Suspendable = (*Game)(nil)
	_ io.Closer            = (*Game)(nil)
)
