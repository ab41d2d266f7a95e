// Package tui runs games in the terminal with Bubble Tea.
// It owns the frame loop: key handling, fixed-rate ticks, rendering and
// replay recording. Games themselves never see Bubble Tea types.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// ID identifies the tick loop that produced it, so a model ignores ticks
// left over from a loop it replaced.
type TickMsg struct {
	Time time.Time
	ID   int64
}

var lastTickID atomic.Int64

// nextTickID returns a fresh tick loop identifier.
func nextTickID() int64 {
	return lastTickID.Add(1)
}

// tickCmd returns a Bubble Tea command that sends one tick message after
// 1/tickRate seconds. The physics timestep does not depend on it.
func tickCmd(tickRate int, id int64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, ID: id}
	})
}
