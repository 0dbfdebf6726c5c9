package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/registry"
	"github.com/vovakirdan/tui-asteroids/internal/storage"
)

// screenID selects what a session is showing.
type screenID int

const (
	screenMenu screenID = iota
	screenGame
	screenControls
	screenScores
)

// SessionModel manages one player's flow: menu -> game -> menu.
// It is the top-level model for both local and SSH sessions. Each session
// owns its own game; only the leaderboard store is shared.
type SessionModel struct {
	game     registry.Game
	store    *storage.Store
	config   core.RuntimeConfig
	player   string
	logger   *log.Logger
	screen   screenID
	menu     MenuModel
	play     GameModel
	controls ControlsModel
	scores   ScoreboardModel
	quitting bool
}

// NewSessionModel creates a new session model that starts in the menu.
func NewSessionModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string) SessionModel {
	return SessionModel{
		game:   game,
		store:  store,
		config: cfg,
		player: player,
		logger: log.New(io.Discard),
		screen: screenMenu,
		menu:   NewMenuModel(cfg.ScreenW, cfg.ScreenH, false),
		play:   NewGameModel(game, store, cfg, player),
	}
}

// WithLogger sets the logger used for run events.
func (m SessionModel) WithLogger(l *log.Logger) SessionModel {
	if l != nil {
		m.logger = l
		m.play = m.play.WithLogger(l)
	}
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
		next, _ := m.play.Update(wsm)
		m.play = next.(GameModel)
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenControls:
		return m.updateControls(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch m.menu.Selected() {
	case MenuQuit:
		return m.quit()

	case MenuResume:
		m.screen = screenGame
		m.play, cmd = m.play.Continue()
		return m, cmd

	case MenuNewGame:
		m.screen = screenGame
		m.play, cmd = m.play.Start()
		m.logger.Debug("new game", "player", m.player)
		return m, cmd

	case MenuControls:
		m.screen = screenControls
		m.controls = NewControlsModel(DefaultGameKeyMap(), m.config.ScreenW, m.config.ScreenH)
		return m, m.controls.Init()

	case MenuHighScores:
		m.screen = screenScores
		m.scores = NewScoreboardModel(m.store, m.game.ID(), m.game.Title(), m.player, m.play.LastRunID(), m.config.ScreenW, m.config.ScreenH)
		return m, m.scores.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.WindowSizeMsg); ok {
		return m, nil
	}

	newModel, cmd := m.play.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.play = gameModel
	}

	// Check if user quit entirely
	if m.play.IsQuitting() {
		return m.quit()
	}

	// Esc: park the game and show the menu
	if m.play.BackToMenu() {
		inProgress := false
		if s, ok := m.game.(registry.Suspendable); ok {
			s.Suspend()
			inProgress = s.InProgress()
		}
		m.screen = screenMenu
		m.menu = NewMenuModel(m.config.ScreenW, m.config.ScreenH, inProgress)
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateControls handles updates on the controls screen.
func (m SessionModel) updateControls(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.controls.Update(msg)
	if c, ok := next.(ControlsModel); ok {
		m.controls = c
	}
	if m.controls.Done() {
		return m.backToMenu()
	}
	return m, cmd
}

// updateScores handles updates on the scoreboard.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if s, ok := next.(ScoreboardModel); ok {
		m.scores = s
	}
	if m.scores.IsQuitting() {
		return m.quit()
	}
	if m.scores.IsGoingBack() {
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	inProgress := false
	if s, ok := m.game.(registry.Suspendable); ok {
		inProgress = s.InProgress()
	}
	m.screen = screenMenu
	m.menu = NewMenuModel(m.config.ScreenW, m.config.ScreenH, inProgress)
	return m, m.menu.Init()
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	if c, ok := m.game.(io.Closer); ok {
		c.Close()
	}
	return m, tea.Quit
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.play.View()
	case screenControls:
		return m.controls.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// IsQuitting reports whether the session has ended.
func (m SessionModel) IsQuitting() bool {
	return m.quitting
}
