package replay

import (
	"reflect"
	"testing"
	"time"

	"github.com/semboko/flappy/internal/core"
	"github.com/semboko/flappy/internal/games/flappy"
)

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestRecorderSkipsEmptyFrames(t *testing.T) {
	r := NewRecorder("flappy", 7, "alice")

	r.Record(frame())
	r.Record(frame(core.ActionJump))
	r.Record(frame())
	r.Record(frame(core.ActionQuit))
	r.Record(frame(core.ActionRestart, core.ActionJump))

	rec := r.Recording()
	if rec.Ticks != 5 {
		t.Errorf("Ticks = %d, want 5", rec.Ticks)
	}
	want := []Event{
		{Tick: 2, Actions: []core.Action{core.ActionJump}},
		{Tick: 5, Actions: []core.Action{core.ActionJump, core.ActionRestart}},
	}
	if !reflect.DeepEqual(rec.Events, want) {
		t.Errorf("Events = %+v, want %+v", rec.Events, want)
	}
	if rec.GameID != "flappy" || rec.Seed != 7 || rec.Player != "alice" {
		t.Errorf("header = %q/%d/%q", rec.GameID, rec.Seed, rec.Player)
	}
}

func TestRecorderEmpty(t *testing.T) {
	r := NewRecorder("flappy", 1, "")
	r.Record(frame())
	r.Record(frame(core.ActionQuit))

	if !r.Empty() {
		t.Error("recorder with only quit/empty frames should be empty")
	}
	if r.Ticks() != 2 {
		t.Errorf("Ticks = %d, want 2", r.Ticks())
	}
}

func TestPlayerReproducesFrames(t *testing.T) {
	r := NewRecorder("flappy", 1, "")
	inputs := []core.InputFrame{
		frame(), frame(core.ActionJump), frame(), frame(), frame(core.ActionJump), frame(),
	}
	for _, in := range inputs {
		r.Record(in)
	}

	p := NewPlayer(r.Recording())
	for i, want := range inputs {
		got, ok := p.Next()
		if !ok {
			t.Fatalf("player stopped at tick %d", i+1)
		}
		if got.Has(core.ActionJump) != want.Has(core.ActionJump) {
			t.Errorf("tick %d: jump = %v, want %v", i+1, got.Has(core.ActionJump), want.Has(core.ActionJump))
		}
	}

	if !p.Done() {
		t.Error("player should be done")
	}
	if _, ok := p.Next(); ok {
		t.Error("Next after the last tick should report false")
	}
}

func TestActionsCodec(t *testing.T) {
	tests := []struct {
		actions []core.Action
		encoded string
	}{
		{nil, ""},
		{[]core.Action{core.ActionJump}, "Jump"},
		{[]core.Action{core.ActionJump, core.ActionRestart}, "Jump,Restart"},
	}

	for _, tt := range tests {
		if got := EncodeActions(tt.actions); got != tt.encoded {
			t.Errorf("EncodeActions(%v) = %q, want %q", tt.actions, got, tt.encoded)
		}
		got, err := DecodeActions(tt.encoded)
		if err != nil {
			t.Fatalf("DecodeActions(%q): %v", tt.encoded, err)
		}
		if len(got) != len(tt.actions) {
			t.Errorf("DecodeActions(%q) = %v", tt.encoded, got)
		}
	}

	if _, err := DecodeActions("Jump,Fly"); err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestDuration(t *testing.T) {
	rec := Recording{Ticks: 150}
	if got := rec.Duration(60); got != 2500*time.Millisecond {
		t.Errorf("Duration = %v, want 2.5s", got)
	}
	if got := rec.Duration(0); got != 0 {
		t.Errorf("Duration with zero tick rate = %v, want 0", got)
	}
}

// Flapping every 20 ticks keeps the bird airborne long enough for pipes to
// spawn, so the run exercises the random gap generator.
func recordFlappySession(t *testing.T, seed int64) (Recording, core.GameState) {
	t.Helper()

	g, err := flappy.New()
	if err != nil {
		t.Fatalf("flappy.New: %v", err)
	}
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	g.Reset(cfg)

	r := NewRecorder(g.ID(), seed, "")
	for tick := 0; tick < 600; tick++ {
		in := core.NewInputFrame()
		if tick%20 == 0 {
			in.Set(core.ActionJump)
		}
		r.Record(in)
		g.Step(in)
	}
	return r.Recording(), g.State()
}

func TestSimulateIsDeterministic(t *testing.T) {
	rec, live := recordFlappySession(t, 99)

	g, err := flappy.New()
	if err != nil {
		t.Fatalf("flappy.New: %v", err)
	}
	got := Simulate(g, rec)

	if got != live {
		t.Errorf("replayed state = %+v, live state = %+v", got, live)
	}
	if g.ScrollX() == 0 {
		t.Error("replay never started the run")
	}
}
