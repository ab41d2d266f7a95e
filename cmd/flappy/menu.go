package main

import (
	"github.com/spf13/cobra"

	"github.com/semboko/flappy/internal/platform/tui"
	"github.com/semboko/flappy/internal/registry"
	"github.com/semboko/flappy/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick variants and replays from a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select. After a game ends
(Esc), you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q            - Quit

Examples:
  flappy menu
  flappy menu --fps 30
  flappy menu --db ./flappy.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	rc := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(rc, store != nil)
		if err != nil {
			return err
		}
		rc = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsReplays {
			quit, err := browseReplays(store, rc.ScreenW, rc.ScreenH)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
			continue
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			logger.Error("cannot create game", "game", menuResult.GameID, "error", err)
			continue
		}

		// A fresh seed per game unless one was configured.
		rc.Seed = cfg.Seed

		result, err := tui.Run(game, rc, tui.GameOptions{
			Record:        cfg.RecordReplays && store != nil,
			Player:        playerName(),
			AllowBack:     true,
			ScreenshotDir: screenshotDir(),
			ShowHelp:      true,
		})
		if err != nil {
			return err
		}
		saveReplay(store, result.Recording)
	}
}

// browseReplays alternates between the replay browser and the viewer until
// the user leaves the browser. It reports whether the user asked to quit.
func browseReplays(store *storage.Store, width, height int) (quit bool, err error) {
	for {
		res, err := tui.RunReplayBrowser(store, width, height, cfg.TickRate)
		if err != nil {
			return false, err
		}
		if res.ReplayID == 0 {
			return res.Quit, nil
		}

		goBack, err := watchReplay(store, res.ReplayID)
		if err != nil {
			logger.Warn("cannot play replay", "id", res.ReplayID, "error", err)
			continue
		}
		if !goBack {
			return true, nil
		}
	}
}

// watchReplay plays one stored replay. It reports whether the user asked to
// go back rather than quit.
func watchReplay(store *storage.Store, id int64) (goBack bool, err error) {
	game, rec, err := tui.LoadReplay(store, id)
	if err != nil {
		return false, err
	}
	return tui.RunWatch(game, *rec, runtimeConfig())
}
