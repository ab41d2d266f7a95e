package flappy

import (
	"github.com/semboko/flappy/internal/assets"
	"github.com/semboko/flappy/internal/core"
	"github.com/semboko/flappy/internal/physics"
)

// Bird physics constants in playfield units.
const (
	BirdRadius  = 25.0
	BirdDensity = 1.0
	JumpForce   = 40000000.0 // Applied for one step at the bottom of the bird
	TiltAngle   = 20.0       // Degrees, shown while climbing
)

// Bird is the player avatar: a circular rigid body plus its sprite frames.
type Bird struct {
	body  *physics.Body
	spawn core.Point
	level assets.Sprite
	tilt  assets.Sprite
	drawn core.CellRect
}

// NewBird adds a static bird body at spawn (physics space) to the world.
func NewBird(world *physics.World, spawn core.Point, sheet assets.Sheet) (*Bird, error) {
	level, err := sheet.Sprite("bird")
	if err != nil {
		return nil, err
	}
	tilt, err := sheet.Sprite("bird-tilt")
	if err != nil {
		return nil, err
	}

	return &Bird{
		body:  world.NewCircle(spawn, BirdRadius, BirdDensity, physics.Static),
		spawn: spawn,
		level: level,
		tilt:  tilt,
	}, nil
}

// Body returns the bird's rigid body.
func (b *Bird) Body() *physics.Body {
	return b.body
}

// Jump stops the bird and pushes it upward.
func (b *Bird) Jump() {
	b.body.SetVelocity(core.Pt(0, 0))
	b.Thrust()
}

// Thrust applies the jump force without touching the current velocity.
// The force acts straight up through the centre, so it adds no spin.
func (b *Bird) Thrust() {
	b.body.ApplyForceAtLocalPoint(core.Pt(0, JumpForce), core.Pt(0, -b.body.Radius()))
}

// Respawn puts the bird back at its spawn point at rest, with no force
// pending.
func (b *Bird) Respawn() {
	b.body.SetPosition(b.spawn)
	b.body.SetVelocity(core.Pt(0, 0))
	b.body.ResetForces()
}

// Angle returns the cosmetic tilt: TiltAngle while moving up, 0 otherwise.
func (b *Bird) Angle() float64 {
	if b.body.Velocity().Y > 0 {
		return TiltAngle
	}
	return 0
}

// Sprite returns the frame matching the current tilt.
func (b *Bird) Sprite() assets.Sprite {
	if b.Angle() != 0 {
		return b.tilt
	}
	return b.level
}

// Bounds returns the bird's collision box in screen space.
func (b *Bird) Bounds(height float64) core.Rect {
	return b.body.ScreenBounds(height)
}

// Render draws the bird centred on its converted position.
func (b *Bird) Render(dst *core.Screen, vp core.Viewport) {
	pos := core.ToScreen(b.body.Position(), vp.Height)
	sprite := b.Sprite()

	col, row := vp.Cell(pos)
	b.drawn = core.CellRect{
		X: col - sprite.Width()/2,
		Y: row - sprite.Height()/2,
		W: sprite.Width(),
		H: sprite.Height(),
	}
	dst.DrawSprite(b.drawn.X, b.drawn.Y, sprite.Rows, core.ColorBrightYellow)
}

// Drawn returns the cells covered by the last Render.
func (b *Bird) Drawn() core.CellRect {
	return b.drawn
}
