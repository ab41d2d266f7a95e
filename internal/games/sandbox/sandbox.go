// Package sandbox is a physics playground: a single bird in an empty
// 1000x500 field with no pipes and no score.
package sandbox

import (
	"fmt"

	"github.com/semboko/flappy/internal/assets"
	"github.com/semboko/flappy/internal/core"
	"github.com/semboko/flappy/internal/physics"
	"github.com/semboko/flappy/internal/registry"
)

const (
	FieldWidth  = 1000
	FieldHeight = 500
	Gravity     = 1000.0
	BirdRadius  = 25.0
	ThrustForce = 40000000.0
)

// Spawn is the bird's starting position in physics space.
var Spawn = core.Pt(250, 250)

// Game is the sandbox variant.
type Game struct {
	world  *physics.World
	body   *physics.Body
	sprite assets.Sprite
	ticks  int
}

// New creates a sandbox with the bird already falling.
func New() (*Game, error) {
	sheet, err := assets.Load("flappy")
	if err != nil {
		return nil, fmt.Errorf("sandbox: %w", err)
	}
	sprite, err := sheet.Sprite("bird")
	if err != nil {
		return nil, fmt.Errorf("sandbox: %w", err)
	}

	world := physics.NewWorld(Gravity, physics.DefaultTimestep)
	return &Game{
		world:  world,
		body:   world.NewCircle(Spawn, BirdRadius, 1, physics.Dynamic),
		sprite: sprite,
	}, nil
}

func (g *Game) ID() string    { return "sandbox" }
func (g *Game) Title() string { return "Physics Sandbox" }

// Reset puts the bird back at its spawn point.
func (g *Game) Reset(core.RuntimeConfig) {
	g.ticks = 0
	g.Respawn()
}

// Respawn moves the bird to Spawn and stops it.
func (g *Game) Respawn() {
	g.body.SetPosition(Spawn)
	g.body.SetVelocity(core.Pt(0, 0))
}

// Thrust pushes the bird up without cancelling its current velocity.
func (g *Game) Thrust() {
	g.body.ApplyForceAtLocalPoint(core.Pt(0, ThrustForce), core.Pt(0, -BirdRadius))
}

// Step applies input and advances the physics world by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.ticks++
	if in.Has(core.ActionRestart) {
		g.Respawn()
	}
	if in.Has(core.ActionJump) {
		g.Thrust()
	}
	g.world.Step()
	return core.StepResult{State: g.State()}
}

// Render draws the bird with its top-left corner at the body's bounding
// box corner.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	vp := core.NewViewport(FieldWidth, FieldHeight, dst.Width(), dst.Height())

	box := g.body.ScreenBounds(FieldHeight)
	col, row := vp.Cell(core.Pt(box.X, box.Y))
	dst.DrawSprite(col, row, g.sprite.Rows, core.ColorBrightYellow)

	dst.DrawTextColor(1, 0, "SPACE thrust  R respawn", core.ColorGray)
	pos := g.body.Position()
	elapsed := float64(g.world.Steps()) * g.world.Timestep()
	dst.DrawTextColor(1, 1, fmt.Sprintf("t=%.1fs y=%.0f vy=%.0f", elapsed, pos.Y, g.body.Velocity().Y), core.ColorGray)
}

// State reports a permanently running game with no score.
func (g *Game) State() core.GameState {
	return core.GameState{Running: true}
}

// Body returns the bird's rigid body.
func (g *Game) Body() *physics.Body {
	return g.body
}

func init() {
	registry.Register("sandbox", "Physics Sandbox", func() (registry.Game, error) {
		return New()
	})
}
