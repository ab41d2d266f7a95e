package main

import (
	"os"
	"os/user"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/semboko/flappy/internal/config"
	"github.com/semboko/flappy/internal/core"
	"github.com/semboko/flappy/internal/replay"
	"github.com/semboko/flappy/internal/storage"
)

var (
	cfg    config.Config
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy",
	})
)

// setup loads the configuration, applies flags set on the command line and
// configures the logger. It runs before every command.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, source, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		loaded.TickRate = flagFPS
	}
	if flags.Changed("seed") {
		loaded.Seed = flagSeed
	}
	if flags.Changed("db") {
		loaded.DBPath = flagDBPath
	}
	if flags.Changed("log-level") {
		loaded.LogLevel = flagLogLevel
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	level, err := log.ParseLevel(loaded.LogLevel)
	if err != nil {
		return err
	}
	logger.SetLevel(level)

	cfg = loaded
	logger.Debug("config loaded", "source", source, "db", cfg.DBPath, "tick_rate", cfg.TickRate)
	return nil
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	rc := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: cfg.TickRate,
		Seed:     cfg.Seed,
	}
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	return rc
}

// openStore opens the replay database. The game still works without it, so
// failures are logged and nil is returned.
func openStore() *storage.Store {
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open replay database", "path", cfg.DBPath, "error", err)
		return nil
	}
	return store
}

// saveReplay stores a finished game's recording. Best effort.
func saveReplay(store *storage.Store, rec *replay.Recording) {
	if store == nil || rec == nil {
		return
	}
	id, err := store.SaveReplay(*rec)
	if err != nil {
		logger.Warn("could not save replay", "game", rec.GameID, "error", err)
		return
	}
	logger.Info("replay saved", "id", id, "game", rec.GameID, "ticks", rec.Ticks)
}

// playerName is stored with local replays.
func playerName() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}

// screenshotDir is where ctrl+s writes; empty when home is unavailable.
func screenshotDir() string {
	dir, err := config.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "screenshots")
}
