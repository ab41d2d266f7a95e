package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/semboko/flappy/internal/storage"
)

var (
	flagReplaysList   bool
	flagReplaysGame   string
	flagReplaysLimit  int
	flagReplaysDelete int64
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse recorded replays",
	Long: `Open the replay browser. Enter watches the selected replay.

With --list the replays are printed instead. --delete removes one.

Examples:
  flappy replays
  flappy replays --list
  flappy replays --list --game sandbox
  flappy replays --delete 12`,
	Args: cobra.NoArgs,
	RunE: runReplays,
}

func init() {
	replaysCmd.Flags().BoolVar(&flagReplaysList, "list", false, "Print replays instead of opening the browser")
	replaysCmd.Flags().StringVar(&flagReplaysGame, "game", "", "Only list replays of this variant")
	replaysCmd.Flags().IntVar(&flagReplaysLimit, "limit", 20, "Maximum replays to list")
	replaysCmd.Flags().Int64Var(&flagReplaysDelete, "delete", 0, "Delete the replay with this ID")
}

func runReplays(cmd *cobra.Command, _ []string) error {
	store := openStore()
	if store == nil {
		return errors.New("replay database unavailable")
	}
	defer store.Close()

	if flagReplaysDelete != 0 {
		return deleteReplay(cmd, store, flagReplaysDelete)
	}
	if flagReplaysList {
		return printReplays(cmd, store)
	}

	rc := runtimeConfig()
	_, err := browseReplays(store, rc.ScreenW, rc.ScreenH)
	return err
}

func printReplays(cmd *cobra.Command, store *storage.Store) error {
	out := cmd.OutOrStdout()

	replays, err := store.ListReplays(flagReplaysGame, flagReplaysLimit)
	if err != nil {
		return err
	}

	if len(replays) == 0 {
		fmt.Fprintln(out, "No replays recorded yet.")
		return nil
	}

	fmt.Fprintf(out, "%-6s  %-10s  %-12s  %8s  %s\n", "ID", "Game", "Player", "Length", "Date")
	fmt.Fprintf(out, "%-6s  %-10s  %-12s  %8s  %s\n", "--", "----", "------", "------", "----")
	for _, r := range replays {
		fmt.Fprintf(out, "%-6d  %-10s  %-12s  %8s  %s\n",
			r.ID,
			r.GameID,
			r.Player,
			r.Duration(cfg.TickRate).Round(100*time.Millisecond),
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'flappy watch <id>' to watch one.")
	return nil
}

func deleteReplay(cmd *cobra.Command, store *storage.Store, id int64) error {
	rec, err := store.Replay(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("replay %d not found", id)
	}
	if err := store.DeleteReplay(id); err != nil {
		return err
	}
	logger.Debug("replay deleted", "id", id, "game", rec.GameID)
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted replay %d (%s, %d ticks).\n", id, rec.GameID, rec.Ticks)
	return nil
}
