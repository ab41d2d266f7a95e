// Package replay records the inputs a game receives and plays them back.
//
// Games are deterministic for a given seed and input sequence, so a replay
// only needs the seed plus the ticks on which actions were delivered.
package replay

import (
	"fmt"
	"strings"
	"time"

	"github.com/semboko/flappy/internal/core"
)

// Event is the set of actions delivered on one tick.
// Ticks are numbered from 1, matching the nth call to Step.
type Event struct {
	Tick    int
	Actions []core.Action
}

// Recording is a complete input log for one game session.
type Recording struct {
	ID        int64
	GameID    string
	Seed      int64
	Ticks     int
	Player    string
	CreatedAt time.Time
	Events    []Event
}

// Duration returns the session length at the given tick rate.
func (r Recording) Duration(tickRate int) time.Duration {
	if tickRate <= 0 {
		return 0
	}
	return time.Duration(r.Ticks) * time.Second / time.Duration(tickRate)
}

// EncodeActions joins action names for storage, e.g. "Jump,Restart".
func EncodeActions(actions []core.Action) string {
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = a.String()
	}
	return strings.Join(names, ",")
}

// DecodeActions is the inverse of EncodeActions.
func DecodeActions(s string) ([]core.Action, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	actions := make([]core.Action, 0, len(parts))
	for _, p := range parts {
		a, ok := core.ParseAction(p)
		if !ok {
			return nil, fmt.Errorf("replay: unknown action %q", p)
		}
		actions = append(actions, a)
	}
	return actions, nil
}

// Recorder collects the input frames fed to a game.
type Recorder struct {
	rec Recording
}

// NewRecorder starts an empty recording for a game session.
func NewRecorder(gameID string, seed int64, player string) *Recorder {
	return &Recorder{rec: Recording{
		GameID: gameID,
		Seed:   seed,
		Player: player,
	}}
}

// Record logs the frame delivered on the next tick.
// Quit is handled by the platform and never reaches the game, so it is not
// recorded.
func (r *Recorder) Record(in core.InputFrame) {
	r.rec.Ticks++

	var actions []core.Action
	for _, a := range in.List() {
		if a == core.ActionNone || a == core.ActionQuit {
			continue
		}
		actions = append(actions, a)
	}
	if len(actions) > 0 {
		r.rec.Events = append(r.rec.Events, Event{Tick: r.rec.Ticks, Actions: actions})
	}
}

// Ticks returns the number of frames recorded so far.
func (r *Recorder) Ticks() int {
	return r.rec.Ticks
}

// Empty reports whether no action has been recorded.
func (r *Recorder) Empty() bool {
	return len(r.rec.Events) == 0
}

// Recording returns a copy of what has been recorded.
func (r *Recorder) Recording() Recording {
	out := r.rec
	out.Events = append([]Event(nil), r.rec.Events...)
	return out
}

// Player feeds a recording back one tick at a time.
type Player struct {
	rec  Recording
	next int // Index of the next pending event
	tick int
}

// NewPlayer creates a player positioned before the first tick.
func NewPlayer(rec Recording) *Player {
	return &Player{rec: rec}
}

// Next returns the frame for the following tick.
// It reports false once every recorded tick has been played.
func (p *Player) Next() (core.InputFrame, bool) {
	if p.Done() {
		return core.InputFrame{}, false
	}
	p.tick++

	in := core.NewInputFrame()
	for p.next < len(p.rec.Events) && p.rec.Events[p.next].Tick <= p.tick {
		if p.rec.Events[p.next].Tick == p.tick {
			for _, a := range p.rec.Events[p.next].Actions {
				in.Set(a)
			}
		}
		p.next++
	}
	return in, true
}

// Tick returns the number of frames played so far.
func (p *Player) Tick() int {
	return p.tick
}

// Done reports whether the recording has been fully played.
func (p *Player) Done() bool {
	return p.tick >= p.rec.Ticks
}

// Recording returns the recording being played.
func (p *Player) Recording() Recording {
	return p.rec
}

// Game is the part of a game a replay drives.
type Game interface {
	Reset(cfg core.RuntimeConfig)
	Step(in core.InputFrame) core.StepResult
	State() core.GameState
}

// Config returns the runtime config a recording must be replayed with.
func Config(rec Recording) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = rec.Seed
	return cfg
}

// Simulate resets g with the recording's seed, plays every tick headlessly
// and returns the final state.
func Simulate(g Game, rec Recording) core.GameState {
	g.Reset(Config(rec))

	p := NewPlayer(rec)
	for {
		in, ok := p.Next()
		if !ok {
			break
		}
		g.Step(in)
	}
	return g.State()
}
