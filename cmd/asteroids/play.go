package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids"
	"github.com/vovakirdan/tui-asteroids/internal/platform/tui"
	"github.com/vovakirdan/tui-asteroids/internal/registry"
	"github.com/vovakirdan/tui-asteroids/internal/storage"
)

var flagLogFile string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Asteroids",
	Long: `Start a local game. The menu offers New Game, Controls and High Scores.

Controls:
  Up/W           - Thrust
  Left/A Right/D - Turn
  Space/Down/X   - Fire
  Z              - Slow time
  P              - Pause
  Esc            - Menu
  R              - Restart (after game over)
  Q/Ctrl+C       - Quit

Difficulty options:
  easy   - Five lives, slower asteroids
  normal - Start at 30% difficulty, progresses to max
  hard   - Two lives, faster asteroids
  fixed  - No progression, stays at config's initial level

Scores are kept for this session only.

Examples:
  asteroids play
  asteroids play --difficulty easy
  asteroids play --config ./my-asteroids.yaml
  asteroids play --log ./asteroids.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	addConfigFlags(playCmd)
	playCmd.Flags().StringVar(&flagLogFile, "log", "", "Write game events to this file")
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := applyConfigFlags(); err != nil {
		exitErr("%v", err)
	}

	// The alt-screen owns stdout, so game logs only go to a file.
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			exitErr("cannot open log file: %v", err)
		}
		defer f.Close()
		asteroids.SetLogger(log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			Prefix:          "asteroids",
			Level:           log.DebugLevel,
		}))
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(asteroids.GameID)
	if err != nil {
		exitErr("creating game: %v", err)
	}

	store, err := storage.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open leaderboard: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, cfg, playerName())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		exitErr("running game: %v", runErr)
	}
}

// playerName labels local runs on the leaderboard.
func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "player"
}
