package flappy

import (
	"math/rand"

	"github.com/semboko/flappy/internal/assets"
	"github.com/semboko/flappy/internal/core"
)

// Pipe geometry in playfield units.
const (
	GapSize    = 170
	PipeWidth  = 40
	PipeHeight = 600 // Height of the bottom pipe rectangle
	PipeSpawnX = PlayfieldWidth
	GapMin     = 200 // Lowest gap centre, inclusive
	GapMax     = 400 // Highest gap centre, inclusive
)

// Pipe is a pair of vertically opposed obstacles with a gap between them.
// Pipes are not simulated by the physics world; their rectangles are
// computed directly in screen space.
type Pipe struct {
	X    int // Horizontal centre
	GapY int // Vertical centre of the gap
}

// NewPipe creates a pipe centred at x with its gap centred at gapY.
func NewPipe(x, gapY int) *Pipe {
	return &Pipe{X: x, GapY: gapY}
}

// SpawnPipe creates a pipe at the right edge of the playfield with a gap
// centre drawn uniformly from [GapMin, GapMax].
func SpawnPipe(rng *rand.Rand) *Pipe {
	return NewPipe(PipeSpawnX, GapMin+rng.Intn(GapMax-GapMin+1))
}

// Rects returns the top and bottom collision rectangles.
func (p *Pipe) Rects() (top, bottom core.Rect) {
	left := float64(p.X) - PipeWidth/2.0
	gapTop := float64(p.GapY) - GapSize/2.0
	gapBottom := float64(p.GapY) + GapSize/2.0

	top = core.NewRect(left, 0, PipeWidth, gapTop)
	bottom = core.NewRect(left, gapBottom, PipeWidth, PipeHeight)
	return top, bottom
}

// Collides reports whether box overlaps either of the pipe's rectangles.
func (p *Pipe) Collides(box core.Rect) bool {
	top, bottom := p.Rects()
	return box.IntersectsAny(top, bottom) != -1
}

// pipeSprites holds the fill characters a pipe is drawn with.
type pipeSprites struct {
	body      rune
	capTop    rune
	capBottom rune
}

func loadPipeSprites(sheet assets.Sheet) (pipeSprites, error) {
	var ps pipeSprites
	for _, f := range []struct {
		frame string
		dst   *rune
	}{
		{"pipe-body", &ps.body},
		{"pipe-cap-top", &ps.capTop},
		{"pipe-cap-bottom", &ps.capBottom},
	} {
		sp, err := sheet.Sprite(f.frame)
		if err != nil {
			return pipeSprites{}, err
		}
		*f.dst = sp.Rune()
	}
	return ps, nil
}

// Render draws both pipe halves flush against the gap, with caps on the
// rows bordering it.
func (p *Pipe) Render(dst *core.Screen, vp core.Viewport, ps pipeSprites) {
	top, bottom := p.Rects()

	tc := vp.CellRect(top)
	dst.DrawRect(tc, ps.body, core.ColorGreen)
	if tc.H > 0 {
		dst.DrawHLine(tc.X, tc.Bottom()-1, tc.W, ps.capTop, core.ColorBrightGreen)
	}

	bc := vp.CellRect(bottom)
	dst.DrawRect(bc, ps.body, core.ColorGreen)
	dst.DrawHLine(bc.X, bc.Y, bc.W, ps.capBottom, core.ColorBrightGreen)
}
