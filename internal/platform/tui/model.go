package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/semboko/flappy/internal/core"
	"github.com/semboko/flappy/internal/registry"
	"github.com/semboko/flappy/internal/replay"
)

// GameOptions controls the optional parts of a game session.
type GameOptions struct {
	Record        bool   // Record inputs for a replay
	Player        string // Stored with the replay
	AllowBack     bool   // Esc returns to a menu instead of being ignored
	ScreenshotDir string // Where ctrl+s writes; empty disables screenshots
	ShowHelp      bool   // Draw the key help on the bottom row
}

// GameModel is the Bubble Tea model that drives one game.
// Each tick feeds the keys pressed since the previous tick to the game as
// one input frame.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	opts       GameOptions
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	recorder   *replay.Recorder
	tickID     int64
	quitting   bool
	backToMenu bool
	lastShot   string
}

// NewGameModel creates a model for the given game.
// A zero seed is replaced by one derived from the clock.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		opts:       opts,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		tickID:     nextTickID(),
	}
	if !opts.AllowBack {
		m.keyMapper.Game.Back.SetEnabled(false)
	}
	if opts.Record {
		m.recorder = replay.NewRecorder(game.ID(), cfg.Seed, opts.Player)
	}
	return m
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.tickID)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.ID != m.tickID {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMapper.Game.Screenshot):
		m.saveScreenshot()
		return m, nil

	case key.Matches(msg, m.keyMapper.Game.Back):
		m.backToMenu = true
		return m, tea.Quit
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize only changes how the playfield is drawn. The simulation
// works in playfield units and is unaffected.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	if m.recorder != nil {
		m.recorder.Record(m.inputFrame)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	m.inputFrame = core.NewInputFrame()
	return m, tickCmd(m.config.TickRate, m.tickID)
}

// saveScreenshot writes the current screen as plain text.
// Best effort: failures leave lastShot empty.
func (m *GameModel) saveScreenshot() {
	m.lastShot = ""
	if m.opts.ScreenshotDir == "" {
		return
	}

	m.game.Render(m.screen)

	if err := os.MkdirAll(m.opts.ScreenshotDir, 0o755); err != nil {
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.opts.ScreenshotDir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return
	}
	m.lastShot = path
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	if m.opts.ShowHelp && m.screen.Height() > 0 {
		m.screen.DrawTextColor(1, m.screen.Height()-1, plainHelp(m.keyMapper.Game.ShortHelp()), core.ColorGray)
	}
	return RenderScreen(m.screen)
}

// plainHelp formats bindings without styling so they can be drawn into a
// screen buffer.
func plainHelp(bindings []key.Binding) string {
	var b strings.Builder
	for _, kb := range bindings {
		if !kb.Enabled() {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("  ")
		}
		b.WriteString(kb.Help().Key)
		b.WriteString(" ")
		b.WriteString(kb.Help().Desc)
	}
	return b.String()
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the game state after the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Recording returns the inputs recorded so far, or nil when recording is
// off or no action was delivered.
func (m GameModel) Recording() *replay.Recording {
	if m.recorder == nil || m.recorder.Empty() {
		return nil
	}
	rec := m.recorder.Recording()
	return &rec
}

// GameResult is what a finished game session leaves behind.
type GameResult struct {
	Recording  *replay.Recording
	BackToMenu bool
}

// Run starts a Bubble Tea program for the game and blocks until it exits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) (GameResult, error) {
	model := NewGameModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return GameResult{}, err
	}

	m, ok := finalModel.(GameModel)
	if !ok {
		return GameResult{}, nil
	}
	return GameResult{Recording: m.Recording(), BackToMenu: m.BackToMenu()}, nil
}
