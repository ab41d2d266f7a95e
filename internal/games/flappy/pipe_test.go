package flappy

import (
	"math/rand"
	"testing"

	"github.com/semboko/flappy/internal/core"
)

func TestPipeRects(t *testing.T) {
	tests := []struct {
		name       string
		x, gapY    int
		top, bottm core.Rect
	}{
		{
			name:  "centre gap",
			x:     200,
			gapY:  300,
			top:   core.NewRect(180, 0, 40, 215),
			bottm: core.NewRect(180, 385, 40, 600),
		},
		{
			name:  "low gap at spawn",
			x:     PipeSpawnX,
			gapY:  GapMax,
			top:   core.NewRect(460, 0, 40, 315),
			bottm: core.NewRect(460, 485, 40, 600),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top, bottom := NewPipe(tt.x, tt.gapY).Rects()
			if top != tt.top {
				t.Errorf("top = %+v, want %+v", top, tt.top)
			}
			if bottom != tt.bottm {
				t.Errorf("bottom = %+v, want %+v", bottom, tt.bottm)
			}
			if gap := bottom.Y - top.Bottom(); gap != GapSize {
				t.Errorf("gap = %v, want %d", gap, GapSize)
			}
			if top.W != PipeWidth || bottom.W != PipeWidth {
				t.Errorf("widths = %v/%v, want %d", top.W, bottom.W, PipeWidth)
			}
		})
	}
}

func TestPipeCollides(t *testing.T) {
	bird := core.NewRect(175, 365, 50, 50)

	tests := []struct {
		name string
		pipe *Pipe
		want bool
	}{
		{"bottom half overlaps", NewPipe(200, 300), true},
		{"top half overlaps", NewPipe(200, 480), true},
		{"bird inside gap", NewPipe(200, 390), false},
		{"pipe to the right", NewPipe(400, 300), false},
		{"touching edge only", NewPipe(245, 300), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pipe.Collides(bird); got != tt.want {
				t.Errorf("Collides = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpawnPipeRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		p := SpawnPipe(rng)
		if p.X != PipeSpawnX {
			t.Fatalf("spawn x = %d, want %d", p.X, PipeSpawnX)
		}
		if p.GapY < GapMin || p.GapY > GapMax {
			t.Fatalf("gap centre %d outside [%d, %d]", p.GapY, GapMin, GapMax)
		}
	}
}
