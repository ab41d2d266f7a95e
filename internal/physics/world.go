// Package physics wraps the Chipmunk2D port (github.com/jakecoffman/cp) with
// the small rigid-body surface the game variants need: a world with constant
// gravity stepped at a fixed timestep, and circular bodies that switch between
// static and dynamic.
package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/semboko/flappy/internal/core"
)

// DefaultTimestep is the simulated time advanced by one World.Step.
const DefaultTimestep = 1.0 / 60.0

// World owns a physics space. Each game instance creates its own world.
type World struct {
	space *cp.Space
	dt    float64
	steps int
}

// NewWorld creates a world with a downward gravity of the given magnitude
// (units/s^2) stepped by dt seconds per Step.
func NewWorld(gravity, dt float64) *World {
	if dt <= 0 {
		dt = DefaultTimestep
	}
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: 0, Y: -gravity})
	return &World{space: space, dt: dt}
}

// Gravity returns the world's gravity vector.
func (w *World) Gravity() core.Point {
	g := w.space.Gravity()
	return core.Pt(g.X, g.Y)
}

// Timestep returns the simulated seconds per Step.
func (w *World) Timestep() float64 {
	return w.dt
}

// Steps returns how many times the world has been stepped.
func (w *World) Steps() int {
	return w.steps
}

// Step advances the simulation by one fixed timestep.
func (w *World) Step() {
	w.space.Step(w.dt)
	w.steps++
}
