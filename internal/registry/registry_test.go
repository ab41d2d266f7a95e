package registry

import (
	"errors"
	"testing"

	"github.com/semboko/flappy/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub-ok", "Stub OK", func() (Game, error) {
		return &stubGame{id: "stub-ok"}, nil
	})

	if !Exists("stub-ok") {
		t.Fatal("stub-ok should exist after Register")
	}

	g, err := Create("stub-ok")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.ID() != "stub-ok" {
		t.Errorf("ID = %q, want stub-ok", g.ID())
	}

	found := false
	for _, info := range List() {
		if info.ID == "stub-ok" {
			found = true
			if info.Title != "Stub OK" {
				t.Errorf("Title = %q, want %q", info.Title, "Stub OK")
			}
		}
	}
	if !found {
		t.Error("stub-ok missing from List")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no-such-game"); err == nil {
		t.Error("expected error for unknown game")
	}
}

func TestCreateFactoryError(t *testing.T) {
	boom := errors.New("missing sprite")
	Register("stub-broken", "Broken", func() (Game, error) {
		return nil, boom
	})

	_, err := Create("stub-broken")
	if !errors.Is(err, boom) {
		t.Errorf("Create error = %v, want wrapped %v", err, boom)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub-dup", "Dup", func() (Game, error) { return &stubGame{}, nil })

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate Register")
		}
	}()
	Register("stub-dup", "Dup", func() (Game, error) { return &stubGame{}, nil })
}

func TestListSorted(t *testing.T) {
	Register("stub-b", "B", func() (Game, error) { return &stubGame{}, nil })
	Register("stub-a", "A", func() (Game, error) { return &stubGame{}, nil })

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Fatalf("List not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}
