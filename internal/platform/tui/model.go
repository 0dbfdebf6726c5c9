package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/registry"
	"github.com/vovakirdan/tui-asteroids/internal/storage"
)

// GameModel runs one game inside a session: it feeds held keys and ticks
// to the game, saves the run on game over and asks for the menu on Esc.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	player     string
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	holds      *HoldTracker
	inputFrame core.InputFrame
	gameState  core.GameState
	gen        int
	quitting   bool
	toMenu     bool
	scoreSaved bool
	lastRunID  string
	best       int
}

// NewGameModel creates a game model. The game is not reset until Start.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string) GameModel {
	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     log.New(io.Discard),
		player:     player,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		holds:      NewHoldTracker(0, 0),
		inputFrame: core.NewInputFrame(),
	}
}

// WithLogger sets the logger for run events.
func (m GameModel) WithLogger(l *log.Logger) GameModel {
	if l != nil {
		m.logger = l
	}
	return m
}

// Start resets the game and begins a new tick chain.
func (m GameModel) Start() (GameModel, tea.Cmd) {
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.scoreSaved = false
	m.lastRunID = ""
	m.refreshBest()
	return m.run()
}

// Continue resumes a suspended game and begins a new tick chain.
func (m GameModel) Continue() (GameModel, tea.Cmd) {
	if s, ok := m.game.(registry.Suspendable); ok {
		s.Resume()
	}
	m.gameState = m.game.State()
	return m.run()
}

func (m GameModel) run() (GameModel, tea.Cmd) {
	m.holds.ReleaseAll()
	m.inputFrame = core.NewInputFrame()
	m.toMenu = false
	m.gen++
	return m, tickCmd(m.config.TickRate, m.gen)
}

// Init starts the game.
func (m GameModel) Init() tea.Cmd {
	_, cmd := m.Start()
	return cmd
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.BlurMsg:
		m.holds.ReleaseAll()
		return m, nil
	case tea.WindowSizeMsg:
		// The world has a fixed resolution, so a resize only rescales the view.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		if msg.Gen != m.gen || m.toMenu {
			return m, nil
		}
		return m.handleTick(msg.Time)
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case IsControl(action):
		m.holds.Press(action, time.Now())
	case action == core.ActionBack:
		m.toMenu = true
	case action == core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(action)
		}
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.holds.Apply(&m.inputFrame, now)
	result := m.game.Step(m.inputFrame, now)
	m.gameState = result.State

	if !m.gameState.GameOver {
		m.scoreSaved = false
	}

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveRun()
		m.scoreSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate, m.gen)
}

// saveRun records the finished run on the session leaderboard.
func (m *GameModel) saveRun() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	runID, err := m.store.SaveRun(storage.RunResult{
		GameID: m.game.ID(),
		Player: m.player,
		Score:  m.gameState.Score,
		Level:  m.gameState.Level,
	})
	if err != nil {
		m.logger.Warn("could not save run", "error", err)
		return
	}
	m.lastRunID = runID
	m.logger.Info("run recorded", "run", runID, "player", m.player, "points", m.gameState.Score, "level", m.gameState.Level)
	m.refreshBest()
}

// refreshBest reloads the session high score shown under the playfield.
func (m *GameModel) refreshBest() {
	if m.store == nil {
		return
	}
	best, err := m.store.HighScore(m.game.ID())
	if err != nil {
		m.logger.Warn("could not load high score", "error", err)
		return
	}
	m.best = best
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".asteroids", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.best > 0 && m.screen.Height() > 1 {
		m.screen.DrawTextColored(1, m.screen.Height()-1, fmt.Sprintf("Hi: %d", m.best), core.ColorGray)
	}
	return RenderScreen(m.screen)
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// LastRunID returns the ID of the run saved at the last game over.
func (m GameModel) LastRunID() string {
	return m.lastRunID
}

// HighScore returns the best score on the session leaderboard.
func (m GameModel) HighScore() int {
	return m.best
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.toMenu
}

// Run starts a local session for game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string) error {
	model := NewSessionModel(game, store, cfg, player)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),   // Use alternate screen buffer
		tea.WithReportFocus(), // Release held keys on focus loss
	)

	_, err := p.Run()
	if c, ok := game.(io.Closer); ok {
		c.Close() //nolint:errcheck // Best-effort cleanup after the program exits
	}
	return err
}
