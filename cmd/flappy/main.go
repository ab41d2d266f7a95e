// flappy is a Flappy Bird game for the terminal with a rigid-body physics core.
//
// Usage:
//
//	flappy list              - List available variants
//	flappy play [variant]    - Play a variant (default: flappy)
//	flappy menu              - Pick variants and replays interactively
//	flappy serve             - Start SSH server for remote play
//	flappy replays           - Browse recorded replays
//	flappy watch <id>        - Watch one replay
//
// Global flags:
//
//	--fps <rate>         - Frame loop rate (default: 60)
//	--seed <value>       - Pipe generator seed for reproducible runs
//	--db <path>          - Replay database (default: ~/.flappy/flappy.db)
//	--config <path>      - Configuration file
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/semboko/flappy/internal/games/flappy"
	_ "github.com/semboko/flappy/internal/games/sandbox"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy Bird in your terminal",
	Long: `Flappy Bird for the terminal. The bird is a rigid body in a physics
world; flap through the gaps between scrolling pipes to score.

Available commands:
  list     - Show all variants
  play     - Play a variant directly
  menu     - Interactive picker
  serve    - Start SSH server for remote play
  replays  - Browse recorded replays
  watch    - Watch a replay by ID

Examples:
  flappy play
  flappy play sandbox
  flappy menu --fps 30
  flappy serve --ssh :2222
  flappy watch 12`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	defaults := rootCmd.PersistentFlags()
	defaults.IntVar(&flagFPS, "fps", 60, "Frame loop rate (ticks per second)")
	defaults.Int64Var(&flagSeed, "seed", 0, "Pipe generator seed (0 = random based on time)")
	defaults.StringVar(&flagDBPath, "db", "~/.flappy/flappy.db", "Path to replay database")
	defaults.StringVar(&flagConfig, "config", "", "Path to config YAML")
	defaults.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(watchCmd)
}
