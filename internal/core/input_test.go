package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Error("new frame should be empty")
	}

	f.Set(ActionQuit)
	f.Set(ActionJump)
	if f.Empty() {
		t.Error("frame with actions should not be empty")
	}
	if !f.Has(ActionJump) || f.Has(ActionRestart) {
		t.Errorf("Has() mismatch: %v", f.Actions)
	}

	list := f.List()
	if len(list) != 2 || list[0] != ActionJump || list[1] != ActionQuit {
		t.Errorf("List() = %v, want [Jump Quit]", list)
	}

	clone := f.Clone()
	f.Clear()
	if !f.Empty() {
		t.Error("Clear() should empty the frame")
	}
	if !clone.Has(ActionJump) {
		t.Error("Clone() should be independent of the original")
	}
}

func TestZeroInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionJump) {
		t.Error("zero frame should have no actions")
	}
	f.Set(ActionJump)
	if !f.Has(ActionJump) {
		t.Error("Set on zero frame should allocate")
	}
}

func TestParseAction(t *testing.T) {
	for _, a := range []Action{ActionNone, ActionJump, ActionRestart, ActionQuit} {
		got, ok := ParseAction(a.String())
		if !ok || got != a {
			t.Errorf("ParseAction(%q) = %v, %v", a.String(), got, ok)
		}
	}
	if _, ok := ParseAction("Duck"); ok {
		t.Error("ParseAction should reject unknown names")
	}
}
