package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/semboko/flappy/internal/core"
	"github.com/semboko/flappy/internal/registry"
	"github.com/semboko/flappy/internal/replay"
)

const maxWatchSpeed = 8

// WatchKeyMap defines the key bindings while watching a replay.
type WatchKeyMap struct {
	Pause  key.Binding
	Faster key.Binding
	Slower key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k WatchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Faster, k.Slower, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k WatchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultWatchKeyMap returns default replay viewer key bindings.
func DefaultWatchKeyMap() WatchKeyMap {
	return WatchKeyMap{
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "pause"),
		),
		Faster: key.NewBinding(
			key.WithKeys("right", "l", "+"),
			key.WithHelp("→", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("left", "h", "-"),
			key.WithHelp("←", "slower"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// WatchModel plays a recorded session back into a fresh game instance.
type WatchModel struct {
	game       registry.Game
	player     *replay.Player
	screen     *core.Screen
	tickRate   int
	tickID     int64
	keys       WatchKeyMap
	speed      int // Recorded ticks per displayed tick
	paused     bool
	quitting   bool
	backToMenu bool
}

// NewWatchModel creates a viewer for rec. The game must be a fresh instance
// of the variant the recording was made with.
func NewWatchModel(game registry.Game, rec replay.Recording, cfg core.RuntimeConfig) WatchModel {
	return WatchModel{
		game:     game,
		player:   replay.NewPlayer(rec),
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		tickRate: cfg.TickRate,
		tickID:   nextTickID(),
		keys:     DefaultWatchKeyMap(),
		speed:    1,
	}
}

// Init resets the game with the recording's seed and starts ticking.
func (m WatchModel) Init() tea.Cmd {
	m.game.Reset(replay.Config(m.player.Recording()))
	return tickCmd(m.tickRate, m.tickID)
}

// Update handles messages for the replay viewer.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.backToMenu = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
		case key.Matches(msg, m.keys.Faster):
			m.speed = min(m.speed*2, maxWatchSpeed)
		case key.Matches(msg, m.keys.Slower):
			m.speed = max(m.speed/2, 1)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.ID != m.tickID || m.quitting || m.backToMenu {
			return m, nil
		}
		if !m.paused {
			m.advance()
		}
		return m, tickCmd(m.tickRate, m.tickID)
	}

	return m, nil
}

// advance plays up to speed recorded ticks.
func (m *WatchModel) advance() {
	for range m.speed {
		in, ok := m.player.Next()
		if !ok {
			return
		}
		m.game.Step(in)
	}
}

// Done reports whether every recorded tick has been played.
func (m WatchModel) Done() bool {
	return m.player.Done()
}

// View renders the game with a status line.
func (m WatchModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	if m.screen.Height() > 0 {
		m.screen.DrawTextColor(1, m.screen.Height()-1, m.status(), core.ColorCyan)
	}
	return RenderScreen(m.screen)
}

func (m WatchModel) status() string {
	rec := m.player.Recording()
	state := fmt.Sprintf("x%d", m.speed)
	switch {
	case m.player.Done():
		state = "finished"
	case m.paused:
		state = "paused"
	}
	return fmt.Sprintf("REPLAY #%d %s  tick %d/%d  %s  %s",
		rec.ID, rec.GameID, m.player.Tick(), rec.Ticks, state, plainHelp(m.keys.ShortHelp()))
}

// IsQuitting returns true if user requested to quit entirely.
func (m WatchModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back.
func (m WatchModel) BackToMenu() bool {
	return m.backToMenu
}

// RunWatch plays a replay in the terminal.
// Returns true if the user asked to go back rather than quit.
func RunWatch(game registry.Game, rec replay.Recording, cfg core.RuntimeConfig) (goBack bool, err error) {
	p := tea.NewProgram(
		NewWatchModel(game, rec, cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(WatchModel)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
