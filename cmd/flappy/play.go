package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/semboko/flappy/internal/platform/tui"
	"github.com/semboko/flappy/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant (flappy when omitted).

Controls:
  Space      - Flap; starts the run, and after a crash the first press
               resets and the next one starts a new run
  R          - Respawn the bird (sandbox)
  Ctrl+S     - Save a screenshot to ~/.flappy/screenshots
  Q/Ctrl+C   - Quit

Examples:
  flappy play
  flappy play sandbox
  flappy play --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := "flappy"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'flappy list' to see available games)", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	result, err := tui.Run(game, runtimeConfig(), tui.GameOptions{
		Record:        cfg.RecordReplays && store != nil,
		Player:        playerName(),
		ScreenshotDir: screenshotDir(),
	})
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	saveReplay(store, result.Recording)
	return nil
}
