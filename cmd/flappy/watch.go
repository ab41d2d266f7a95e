package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/semboko/flappy/internal/platform/tui"
	"github.com/semboko/flappy/internal/replay"
)

var flagWatchHeadless bool

var watchCmd = &cobra.Command{
	Use:   "watch <id>",
	Short: "Watch a recorded replay",
	Long: `Play a stored replay back into a fresh game.

Controls:
  Space/P      - Pause
  Right/Left   - Faster/slower
  Esc/Q        - Leave

With --headless the replay runs without a terminal UI and the final
score is printed.

Examples:
  flappy watch 12
  flappy watch 12 --headless`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&flagWatchHeadless, "headless", false, "Simulate without a UI and print the result")
}

func runWatch(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid replay id %q", args[0])
	}

	store := openStore()
	if store == nil {
		return errors.New("replay database unavailable")
	}
	defer store.Close()

	game, rec, err := tui.LoadReplay(store, id)
	if err != nil {
		return err
	}

	if flagWatchHeadless {
		state := replay.Simulate(game, *rec)
		phase := "idle"
		switch {
		case state.GameOver:
			phase = "over"
		case state.Running:
			phase = "running"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "replay %d (%s): %d ticks, score %d, %s\n",
			rec.ID, rec.GameID, rec.Ticks, state.Score, phase)
		return nil
	}

	_, err = tui.RunWatch(game, *rec, runtimeConfig())
	return err
}
