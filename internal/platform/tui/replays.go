package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/semboko/flappy/internal/registry"
	"github.com/semboko/flappy/internal/replay"
	"github.com/semboko/flappy/internal/storage"
)

// Replay browser layout constants
const (
	maxReplays    = 100 // Max replays to load
	tableMinWidth = 50
	playerColumn  = 12
)

// ReplaysKeyMap defines the key bindings for the replay browser.
type ReplaysKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Watch      key.Binding
	NextFilter key.Binding
	PrevFilter key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplaysKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Watch, k.NextFilter, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ReplaysKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Watch},
		{k.NextFilter, k.PrevFilter, k.Back, k.Quit},
	}
}

// DefaultReplaysKeyMap returns default key bindings.
func DefaultReplaysKeyMap() ReplaysKeyMap {
	return ReplaysKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Watch: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "watch"),
		),
		NextFilter: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next game"),
		),
		PrevFilter: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev game"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplayBrowserModel lists stored replays in a table.
type ReplayBrowserModel struct {
	filters   []registry.GameInfo // First entry (empty ID) shows every game
	filter    int
	store     *storage.Store
	replays   []replay.Recording
	loadErr   error
	table     table.Model
	help      help.Model
	keys      ReplaysKeyMap
	tickRate  int
	width     int
	height    int
	quitting  bool
	goingBack bool
	selected  int64
}

// NewReplayBrowserModel creates a replay browser.
func NewReplayBrowserModel(store *storage.Store, width, height, tickRate int) ReplayBrowserModel {
	filters := append([]registry.GameInfo{{Title: "All"}}, registry.List()...)

	h := help.New()
	h.Width = width

	m := ReplayBrowserModel{
		filters:  filters,
		store:    store,
		keys:     DefaultReplaysKeyMap(),
		help:     h,
		tickRate: tickRate,
		width:    width,
		height:   height,
	}
	m.table = m.createTable()
	m.loadReplays()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ReplayBrowserModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Game", Width: 16},
		{Title: "Player", Width: playerColumn},
		{Title: "Length", Width: 8},
		{Title: "Date", Width: 14},
	}

	tableWidth := max(m.width-6, tableMinWidth)
	if extra := tableWidth - 6 - 16 - playerColumn - 8 - 14 - 10; extra > 0 {
		columns[2].Width += min(extra, 12)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("28")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadReplays loads replay headers for the current filter.
func (m *ReplayBrowserModel) loadReplays() {
	m.replays, m.loadErr = nil, nil
	if m.store != nil {
		m.replays, m.loadErr = m.store.ListReplays(m.filters[m.filter].ID, maxReplays)
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded replays.
func (m *ReplayBrowserModel) updateTableRows() {
	rows := make([]table.Row, len(m.replays))
	for i, r := range m.replays {
		player := r.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.ID),
			r.GameID,
			player,
			r.Duration(m.tickRate).Round(100 * time.Millisecond).String(),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the replay browser.
func (m ReplayBrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the replay browser.
func (m ReplayBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Watch):
			if i := m.table.Cursor(); i >= 0 && i < len(m.replays) {
				m.selected = m.replays[i].ID
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.NextFilter):
			m.filter = (m.filter + 1) % len(m.filters)
			m.loadReplays()
			return m, nil

		case key.Matches(msg, m.keys.PrevFilter):
			m.filter = (m.filter - 1 + len(m.filters)) % len(m.filters)
			m.loadReplays()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the replay browser.
func (m ReplayBrowserModel) View() string {
	if m.quitting || m.goingBack || m.selected != 0 {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	title := fmt.Sprintf("REPLAYS - %s", m.filters[m.filter].Title)
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an explanatory message.
func (m ReplayBrowserModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Replay database unavailable.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load replays:\n" + m.loadErr.Error())
	case len(m.replays) == 0:
		return emptyStyle.Render("No replays recorded yet.\nPlay a game to record one!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to the menu.
func (m ReplayBrowserModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ReplayBrowserModel) IsQuitting() bool {
	return m.quitting
}

// Selected returns the ID of the replay chosen for watching, or 0.
func (m ReplayBrowserModel) Selected() int64 {
	return m.selected
}

// ReplayBrowserResult holds the outcome of the replay browser.
type ReplayBrowserResult struct {
	ReplayID int64 // Non-zero when a replay was picked
	Back     bool
	Quit     bool
}

func (m ReplayBrowserModel) result() ReplayBrowserResult {
	return ReplayBrowserResult{
		ReplayID: m.Selected(),
		Back:     m.IsGoingBack(),
		Quit:     m.IsQuitting(),
	}
}

// RunReplayBrowser runs the replay browser screen.
func RunReplayBrowser(store *storage.Store, width, height, tickRate int) (ReplayBrowserResult, error) {
	p := tea.NewProgram(
		NewReplayBrowserModel(store, width, height, tickRate),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return ReplayBrowserResult{}, err
	}

	m, ok := finalModel.(ReplayBrowserModel)
	if !ok {
		return ReplayBrowserResult{Quit: true}, nil
	}
	return m.result(), nil
}
