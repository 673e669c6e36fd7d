package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// BodyKind selects how the solver treats a body.
type BodyKind int

const (
	Static BodyKind = iota
	Kinematic
	Dynamic
)

func (k BodyKind) String() string {
	switch k {
	case Static:
		return "static"
	case Kinematic:
		return "kinematic"
	case Dynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// ShapeKind selects the fixture geometry.
type ShapeKind int

const (
	Box ShapeKind = iota
	Circle
)

// BodyDef describes a body and its single fixture. X and Y are the center.
type BodyDef struct {
	Kind          BodyKind
	Shape         ShapeKind
	X, Y          float64
	Width, Height float64
	Density       float64
	Friction      float64
	Elasticity    float64
	Sensor        bool
	FixedRotation bool
}

// Body is a rigid body with exactly one fixture. It is exclusively owned by
// one game entity.
type Body struct {
	world *World
	body  *cp.Body
	shape *cp.Shape
	def   BodyDef

	mass      float64
	enabled   bool
	destroyed bool
	gravity   bool
	joints    []*Joint

	// UserData points back at the owning entity.
	UserData any
}

// NewBody creates and enables a body in the world.
func (w *World) NewBody(def BodyDef) *Body {
	if w == nil || w.space == nil {
		return nil
	}
	w.mustNotStep("create body")

	if def.Width <= 0 {
		def.Width = 1
	}
	if def.Height <= 0 {
		def.Height = 1
	}

	b := &Body{world: w, def: def, gravity: true}
	b.body, b.mass = newCPBody(def)
	b.body.SetPosition(cp.Vector{X: def.X, Y: def.Y})

	switch def.Shape {
	case Circle:
		b.shape = cp.NewCircle(b.body, def.radius(), cp.Vector{})
	default:
		b.shape = cp.NewBox(b.body, def.Width, def.Height, 0)
	}
	b.shape.SetFriction(def.Friction)
	b.shape.SetElasticity(def.Elasticity)
	b.shape.SetSensor(def.Sensor)
	b.shape.SetCollisionType(collisionTypeEntity)

	w.shapeToBody[b.shape] = b
	b.SetEnabled(true)
	return b
}

func (def BodyDef) radius() float64 {
	return math.Max(def.Width, def.Height) / 2
}

func (def BodyDef) area() float64 {
	if def.Shape == Circle {
		r := def.radius()
		return math.Pi * r * r
	}
	return def.Width * def.Height
}

func newCPBody(def BodyDef) (*cp.Body, float64) {
	switch def.Kind {
	case Static:
		return cp.NewStaticBody(), 0
	case Kinematic:
		return cp.NewKinematicBody(), 0
	}

	b := &Body{def: def, body: cp.NewBody(1, 1)}
	b.applyMass()
	return b.body, b.mass
}

// Kind returns the body kind.
func (b *Body) Kind() BodyKind {
	if b == nil {
		return Static
	}
	return b.def.Kind
}

// Sensor reports whether the fixture detects overlap without exerting force.
func (b *Body) Sensor() bool {
	return b != nil && b.def.Sensor
}

// SetSensor toggles the sensor flag of the fixture.
func (b *Body) SetSensor(on bool) {
	if b == nil || b.shape == nil {
		return
	}
	b.def.Sensor = on
	b.shape.SetSensor(on)
}

// Enabled reports whether the body currently takes part in the simulation.
func (b *Body) Enabled() bool {
	return b != nil && b.enabled && !b.destroyed
}

// SetEnabled adds the body to or removes it from the space. Joints attached
// to a disabled body are removed.
func (b *Body) SetEnabled(on bool) {
	if b == nil || b.destroyed || b.enabled == on {
		return
	}
	space := b.world.space
	b.world.mustNotStep("toggle body")
	if on {
		space.AddBody(b.body)
		space.AddShape(b.shape)
	} else {
		for _, j := range b.joints {
			j.remove()
			if j.a == b {
				j.b.dropJoint(j)
			} else {
				j.a.dropJoint(j)
			}
		}
		b.joints = nil
		space.RemoveShape(b.shape)
		space.RemoveBody(b.body)
	}
	b.enabled = on
}

// Destroy removes the body permanently.
func (b *Body) Destroy() {
	if b == nil || b.destroyed {
		return
	}
	b.SetEnabled(false)
	delete(b.world.shapeToBody, b.shape)
	b.destroyed = true
}

// Destroyed reports whether Destroy was called.
func (b *Body) Destroyed() bool {
	return b != nil && b.destroyed
}

// Position returns the body center.
func (b *Body) Position() cp.Vector {
	if b == nil || b.body == nil {
		return cp.Vector{}
	}
	return b.body.Position()
}

// SetPosition moves the body center. Static bodies are re-inserted so the
// spatial index sees the move.
func (b *Body) SetPosition(x, y float64) {
	if b == nil || b.body == nil {
		return
	}
	if b.def.Kind == Static && b.enabled {
		space := b.world.space
		b.world.mustNotStep("move static body")
		space.RemoveShape(b.shape)
		b.body.SetPosition(cp.Vector{X: x, Y: y})
		space.AddShape(b.shape)
		return
	}
	b.body.SetPosition(cp.Vector{X: x, Y: y})
}

// Velocity returns the linear velocity.
func (b *Body) Velocity() cp.Vector {
	if b == nil || b.body == nil {
		return cp.Vector{}
	}
	return b.body.Velocity()
}

// SetVelocity sets the linear velocity. Static bodies ignore it.
func (b *Body) SetVelocity(x, y float64) {
	if b == nil || b.body == nil || b.def.Kind == Static {
		return
	}
	b.body.SetVelocity(x, y)
}

// ApplyImpulse changes the velocity of a dynamic body by impulse/mass.
func (b *Body) ApplyImpulse(x, y float64) {
	if b == nil || b.body == nil || b.def.Kind != Dynamic || b.mass <= 0 {
		return
	}
	v := b.body.Velocity()
	b.body.SetVelocity(v.X+x/b.mass, v.Y+y/b.mass)
}

// VelocityAt returns the velocity of the material point at world point p.
func (b *Body) VelocityAt(p cp.Vector) cp.Vector {
	if b == nil || b.body == nil {
		return cp.Vector{}
	}
	r := p.Sub(b.body.Position())
	w := b.body.AngularVelocity()
	v := b.body.Velocity()
	return cp.Vector{X: v.X - w*r.Y, Y: v.Y + w*r.X}
}

// Angle returns the rotation in radians.
func (b *Body) Angle() float64 {
	if b == nil || b.body == nil {
		return 0
	}
	return b.body.Angle()
}

// SetAngle sets the rotation in radians.
func (b *Body) SetAngle(rad float64) {
	if b == nil || b.body == nil {
		return
	}
	b.body.SetAngle(rad)
}

// SetAngularVelocity sets the spin in radians per second.
func (b *Body) SetAngularVelocity(w float64) {
	if b == nil || b.body == nil {
		return
	}
	b.body.SetAngularVelocity(w)
}

// Mass returns the mass of a dynamic body, zero otherwise.
func (b *Body) Mass() float64 {
	if b == nil {
		return 0
	}
	return b.mass
}

// Size returns the fixture width and height.
func (b *Body) Size() (float64, float64) {
	if b == nil {
		return 0, 0
	}
	return b.def.Width, b.def.Height
}

// Shape returns the fixture geometry kind.
func (b *Body) Shape() ShapeKind {
	if b == nil {
		return Box
	}
	return b.def.Shape
}

// AABB returns the bottom-left corner and size of the unrotated fixture.
func (b *Body) AABB() (x, y, w, h float64) {
	if b == nil {
		return 0, 0, 0, 0
	}
	p := b.Position()
	return p.X - b.def.Width/2, p.Y - b.def.Height/2, b.def.Width, b.def.Height
}

// SetGravityEnabled toggles whether world gravity acts on a dynamic body.
func (b *Body) SetGravityEnabled(on bool) {
	if b == nil || b.body == nil || b.gravity == on {
		return
	}
	b.gravity = on
	if on {
		b.body.SetVelocityUpdateFunc(cp.BodyUpdateVelocity)
		return
	}
	b.body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		cp.BodyUpdateVelocity(body, cp.Vector{}, damping, dt)
	})
}

// GravityEnabled reports whether gravity acts on the body.
func (b *Body) GravityEnabled() bool {
	return b != nil && b.gravity
}

// Joints returns the joints attached to the body.
func (b *Body) Joints() []*Joint {
	if b == nil {
		return nil
	}
	return b.joints
}

// CP exposes the Chipmunk body for debug drawing.
func (b *Body) CP() *cp.Body {
	if b == nil {
		return nil
	}
	return b.body
}

// SetMaterial replaces density, elasticity and friction. A dynamic body's
// mass and moment follow the new density.
func (b *Body) SetMaterial(density, elasticity, friction float64) {
	if b == nil || b.shape == nil {
		return
	}
	b.def.Density = density
	b.def.Elasticity = elasticity
	b.def.Friction = friction
	b.shape.SetElasticity(elasticity)
	b.shape.SetFriction(friction)
	if b.def.Kind == Dynamic {
		b.applyMass()
	}
}

// SetKind changes how the solver treats the body.
func (b *Body) SetKind(kind BodyKind) {
	if b == nil || b.body == nil || b.destroyed || b.def.Kind == kind {
		return
	}
	wasEnabled := b.enabled
	b.SetEnabled(false)

	b.def.Kind = kind
	switch kind {
	case Static:
		b.body.SetType(cp.BODY_STATIC)
		b.mass = 0
	case Kinematic:
		b.body.SetType(cp.BODY_KINEMATIC)
		b.mass = 0
	case Dynamic:
		b.body.SetType(cp.BODY_DYNAMIC)
		b.applyMass()
	}

	if wasEnabled {
		b.SetEnabled(true)
	}
}

// SetFixedRotation locks or unlocks rotation of a dynamic body.
func (b *Body) SetFixedRotation(on bool) {
	if b == nil || b.def.FixedRotation == on {
		return
	}
	b.def.FixedRotation = on
	if b.def.Kind == Dynamic {
		b.applyMass()
	}
}

func (b *Body) applyMass() {
	mass := b.def.Density * b.def.area()
	if mass <= 0 {
		mass = 1
	}
	var moment float64
	switch {
	case b.def.FixedRotation:
		moment = math.Inf(1)
	case b.def.Shape == Circle:
		moment = cp.MomentForCircle(mass, 0, b.def.radius(), cp.Vector{})
	default:
		moment = cp.MomentForBox(mass, b.def.Width, b.def.Height)
	}
	b.mass = mass
	b.body.SetMass(mass)
	b.body.SetMoment(moment)
}
