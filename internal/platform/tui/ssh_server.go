package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/semboko/flappy/internal/core"
	"github.com/semboko/flappy/internal/registry"
	"github.com/semboko/flappy/internal/replay"
	"github.com/semboko/flappy/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// Wish generates the key on first start if the file does not exist.
	HostKeyPath string

	// IdleTimeout closes idle connections; zero disables it.
	IdleTimeout time.Duration

	// TickRate is the frame loop rate for every session.
	TickRate int

	// RecordReplays stores each session's games under the SSH username.
	RecordReplays bool
}

// SSHServer wraps a Wish SSH server that gives every connection its own
// menu and game instance.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server. store may be nil, in which case
// nothing is recorded and the replay browser is hidden.
func NewSSHServer(cfg SSHServerConfig, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	hostKeyPath, err := storage.ExpandHome(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			activeterm.Middleware(),
			srv.loggingMiddleware,
		),
	}
	if cfg.IdleTimeout > 0 {
		opts = append(opts, wish.WithIdleTimeout(cfg.IdleTimeout))
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}

	model := NewSessionModel(s.store, s.logger, cfg, sshSession.User(), s.config.RecordReplays)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until SIGINT/SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
		s.logger.Info("shutting down...")
		return s.Shutdown()
	case err := <-errCh:
		return fmt.Errorf("ssh server: %w", err)
	}
}

// Shutdown gracefully stops the server. The store is owned by the caller.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

type sessionState int

const (
	stateMenu sessionState = iota
	stateGame
	stateReplays
	stateWatch
)

// SessionModel manages the full session flow:
// menu -> game -> menu, and menu -> replays -> watch -> replays.
type SessionModel struct {
	store    *storage.Store
	logger   *log.Logger
	config   core.RuntimeConfig
	username string
	record   bool
	state    sessionState
	menu     MenuModel
	game     GameModel
	browser  ReplayBrowserModel
	watch    WatchModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig, username string, record bool) SessionModel {
	return SessionModel{
		store:    store,
		logger:   logger,
		config:   cfg,
		username: username,
		record:   record && store != nil,
		menu:     NewMenuModel(cfg, store != nil),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.state {
	case stateGame:
		return m.updateGame(msg)
	case stateReplays:
		return m.updateReplays(msg)
	case stateWatch:
		return m.updateWatch(msg)
	default:
		return m.updateMenu(msg)
	}
}

// toMenu returns to a fresh menu.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.state = stateMenu
	m.menu = NewMenuModel(m.config, m.store != nil)
	return m, m.menu.Init()
}

// toReplays opens the replay browser with a fresh listing.
func (m SessionModel) toReplays() (tea.Model, tea.Cmd) {
	m.state = stateReplays
	m.browser = NewReplayBrowserModel(m.store, m.config.ScreenW, m.config.ScreenH, m.config.TickRate)
	return m, m.browser.Init()
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}
	if selected.GameID == ReplaysItemID {
		return m.toReplays()
	}

	game, err := registry.Create(selected.GameID)
	if err != nil {
		m.logger.Error("cannot create game", "user", m.username, "game", selected.GameID, "error", err)
		return m.toMenu()
	}

	m.game = NewGameModel(game, m.config, GameOptions{
		Record:    m.record,
		Player:    m.username,
		AllowBack: true,
		ShowHelp:  true,
	})
	m.state = stateGame
	m.logger.Debug("game started", "user", m.username, "game", selected.GameID)
	return m, m.game.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = gameModel
	}

	switch {
	case m.game.BackToMenu():
		m.saveReplay(m.game.Recording())
		return m.toMenu()
	case m.game.IsQuitting():
		m.saveReplay(m.game.Recording())
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateReplays handles updates while browsing replays.
func (m SessionModel) updateReplays(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.browser.Update(msg)
	if browser, ok := newModel.(ReplayBrowserModel); ok {
		m.browser = browser
	}

	switch {
	case m.browser.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.browser.IsGoingBack():
		return m.toMenu()
	case m.browser.Selected() != 0:
		return m.startWatch(m.browser.Selected())
	}

	return m, cmd
}

// startWatch loads a replay and plays it.
func (m SessionModel) startWatch(id int64) (tea.Model, tea.Cmd) {
	game, rec, err := LoadReplay(m.store, id)
	if err != nil {
		m.logger.Warn("cannot load replay", "user", m.username, "id", id, "error", err)
		return m.toReplays()
	}

	m.watch = NewWatchModel(game, *rec, m.config)
	m.state = stateWatch
	return m, m.watch.Init()
}

// updateWatch handles updates while watching a replay.
func (m SessionModel) updateWatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.watch.Update(msg)
	if watch, ok := newModel.(WatchModel); ok {
		m.watch = watch
	}

	switch {
	case m.watch.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.watch.BackToMenu():
		return m.toReplays()
	}

	return m, cmd
}

// saveReplay stores a finished game's recording. Best effort: failures are
// logged and the session continues.
func (m *SessionModel) saveReplay(rec *replay.Recording) {
	if rec == nil || m.store == nil {
		return
	}
	id, err := m.store.SaveReplay(*rec)
	if err != nil {
		m.logger.Warn("cannot save replay", "user", m.username, "game", rec.GameID, "error", err)
		return
	}
	m.logger.Info("replay saved", "user", m.username, "game", rec.GameID, "id", id, "ticks", rec.Ticks)
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case stateGame:
		return m.game.View()
	case stateReplays:
		return m.browser.View()
	case stateWatch:
		return m.watch.View()
	default:
		return m.menu.View()
	}
}

// LoadReplay fetches a replay and creates a fresh game to play it into.
func LoadReplay(store *storage.Store, id int64) (registry.Game, *replay.Recording, error) {
	if store == nil {
		return nil, nil, errors.New("replay database unavailable")
	}
	rec, err := store.Replay(id)
	if err != nil {
		return nil, nil, err
	}
	if rec == nil {
		return nil, nil, fmt.Errorf("replay %d not found", id)
	}
	game, err := registry.Create(rec.GameID)
	if err != nil {
		return nil, nil, err
	}
	return game, rec, nil
}
