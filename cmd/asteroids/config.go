package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-asteroids/internal/config"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a game would start with, after the search
order and the difficulty preset are applied.

Search order:
  1. --config path
  2. ~/.asteroids/configs/asteroids.yaml
  3. ./configs/asteroids.yaml
  4. built-in defaults

Examples:
  asteroids config
  asteroids config --difficulty hard > ~/.asteroids/configs/asteroids.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	addConfigFlags(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) {
	if err := applyConfigFlags(); err != nil {
		exitErr("%v", err)
	}

	cfg, err := asteroids.LoadConfig()
	if err != nil {
		exitErr("%v", err)
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		exitErr("%v", err)
	}
	if _, err := os.Stdout.Write(data); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
