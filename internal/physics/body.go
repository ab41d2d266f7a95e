package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/semboko/flappy/internal/core"
)

// BodyType classifies a body as immovable or simulated.
type BodyType int

const (
	// Static bodies ignore gravity and forces and keep their position.
	Static BodyType = iota
	// Dynamic bodies are moved by gravity and applied forces.
	Dynamic
)

// String returns the body type name.
func (t BodyType) String() string {
	switch t {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

func (t BodyType) cp() int {
	if t == Dynamic {
		return cp.BODY_DYNAMIC
	}
	return cp.BODY_STATIC
}

// Body is a rigid body with a single circular collision shape.
type Body struct {
	body   *cp.Body
	shape  *cp.Shape
	radius float64
	typ    BodyType
}

// NewCircle adds a circular body of the given radius and density at pos
// (physics space) to the world. Mass and moment are derived from the shape.
func (w *World) NewCircle(pos core.Point, radius, density float64, typ BodyType) *Body {
	body := cp.NewBody(0, 0)
	body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})

	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetDensity(density)

	w.space.AddBody(body)
	w.space.AddShape(shape)

	b := &Body{body: body, shape: shape, radius: radius, typ: Dynamic}
	b.SetType(typ)
	return b
}

// Type returns the current body type.
func (b *Body) Type() BodyType {
	return b.typ
}

// SetType switches the body between static and dynamic.
func (b *Body) SetType(typ BodyType) {
	if typ == b.typ && b.body.GetType() == typ.cp() {
		return
	}
	b.body.SetType(typ.cp())
	b.typ = typ
}

// Radius returns the collision radius.
func (b *Body) Radius() float64 {
	return b.radius
}

// Mass returns the body's mass as derived from its shape density.
func (b *Body) Mass() float64 {
	return b.shape.Mass()
}

// Position returns the body's centre in physics space.
func (b *Body) Position() core.Point {
	p := b.body.Position()
	return core.Pt(p.X, p.Y)
}

// SetPosition teleports the body to pos (physics space).
func (b *Body) SetPosition(pos core.Point) {
	b.body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
}

// Velocity returns the body's linear velocity.
func (b *Body) Velocity() core.Point {
	v := b.body.Velocity()
	return core.Pt(v.X, v.Y)
}

// SetVelocity sets the body's linear velocity.
func (b *Body) SetVelocity(v core.Point) {
	b.body.SetVelocity(v.X, v.Y)
}

// ApplyForceAtLocalPoint applies force (world frame) at a point given in the
// body's local coordinates. Forces last until the next world step.
func (b *Body) ApplyForceAtLocalPoint(force, point core.Point) {
	b.body.ApplyForceAtLocalPoint(cp.Vector{X: force.X, Y: force.Y}, cp.Vector{X: point.X, Y: point.Y})
}

// Force returns the force accumulated for the next world step.
func (b *Body) Force() core.Point {
	f := b.body.Force()
	return core.Pt(f.X, f.Y)
}

// ResetForces drops any force and torque still pending. cp only clears them
// when a dynamic body is stepped, so a body frozen mid-jump keeps its force.
func (b *Body) ResetForces() {
	b.body.SetForce(cp.Vector{})
	b.body.SetTorque(0)
}

// BB returns the axis-aligned bounding box of the collision circle in
// physics space as (left, bottom, right, top).
func (b *Body) BB() (l, bottom, r, t float64) {
	bb := cp.NewBBForCircle(b.body.Position(), b.radius)
	return bb.L, bb.B, bb.R, bb.T
}

// ScreenBounds returns the collision box in screen space for a surface of the
// given height: a square of side 2r whose top-left corner is the converted
// top-left of the physics bounding box.
func (b *Body) ScreenBounds(height float64) core.Rect {
	l, _, _, t := b.BB()
	topLeft := core.ToScreen(core.Pt(l, t), height)
	size := 2 * b.radius
	return core.NewRect(topLeft.X, topLeft.Y, size, size)
}
