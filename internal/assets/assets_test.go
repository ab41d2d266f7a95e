package assets

import (
	"strings"
	"testing"
)

func TestLoadFlappySheet(t *testing.T) {
	sheet, err := Load("flappy", "bird", "bird-tilt", "pipe-body", "terrain", "cloud")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	bird, err := sheet.Sprite("bird")
	if err != nil {
		t.Fatalf("Sprite(bird) failed: %v", err)
	}
	if bird.Height() != 3 {
		t.Errorf("bird height = %d, want 3", bird.Height())
	}
	if bird.Width() == 0 {
		t.Error("bird width should be positive")
	}

	body, _ := sheet.Sprite("pipe-body")
	if body.Rune() != '█' {
		t.Errorf("pipe-body rune = %q, want '█'", body.Rune())
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load("nope"); err == nil {
		t.Error("Load() of a missing sheet should fail")
	}
	if _, err := Load("flappy", "unicorn"); err == nil {
		t.Error("Load() with a missing required frame should fail")
	}
}

func TestParse(t *testing.T) {
	data := "# header\n\n--- a\nxx\n yy\n\n--- b\n\nz\n"
	sheet, err := Parse("test", []byte(data))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if sheet.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", sheet.Len())
	}

	a, _ := sheet.Sprite("a")
	if strings.Join(a.Rows, "|") != "xx| yy" {
		t.Errorf("frame a rows = %q", a.Rows)
	}
	if a.Width() != 3 {
		t.Errorf("frame a width = %d, want 3", a.Width())
	}

	// Leading blank lines inside a frame are skipped.
	b, _ := sheet.Sprite("b")
	if len(b.Rows) != 1 || b.Rows[0] != "z" {
		t.Errorf("frame b rows = %q", b.Rows)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no frames", "# only a comment\n"},
		{"content before frame", "oops\n--- a\nx\n"},
		{"unnamed frame", "---\nx\n"},
		{"empty frame", "--- a\n\n--- b\nx\n"},
		{"duplicate frame", "--- a\nx\n--- a\ny\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse("bad", []byte(tc.data)); err == nil {
				t.Errorf("Parse(%q) should fail", tc.data)
			}
		})
	}
}
