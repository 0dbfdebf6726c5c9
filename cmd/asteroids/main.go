// asteroids is a vector Asteroids game for the terminal.
//
// Usage:
//
//	asteroids play     - Play locally
//	asteroids serve    - Start SSH server for remote play
//	asteroids sim      - Run a seeded game headless and print a summary
//	asteroids config   - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-asteroids/internal/config"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids"
)

var (
	// Global flags
	flagFPS  int
	flagSeed int64

	// Config flags shared by play, sim and config
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "asteroids",
	Short: "Asteroids - a vector shooter in your terminal",
	Long: `Asteroids runs the classic wrapping-field shooter in the terminal.

Available commands:
  play     - Play locally
  serve    - Start SSH server for remote play
  sim      - Run a seeded game without a terminal
  config   - Print the effective configuration as YAML

Examples:
  asteroids play
  asteroids play --difficulty hard
  asteroids serve --ssh :2222
  asteroids sim --seed 42 --seconds 120`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// addConfigFlags registers --config and --difficulty on cmd.
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// applyConfigFlags hands --config and --difficulty to the game package.
func applyConfigFlags() error {
	if flagDifficulty != "" {
		if _, ok := config.ParsePreset(flagDifficulty); !ok {
			return fmt.Errorf("unknown difficulty %q (expected easy, normal, hard or fixed)", flagDifficulty)
		}
	}
	asteroids.SetConfigPath(flagConfig)
	asteroids.SetDifficultyPreset(flagDifficulty)
	return nil
}

// exitErr prints an error message and exits with status 1.
func exitErr(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
