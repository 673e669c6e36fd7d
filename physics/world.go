// Package physics wraps a Chipmunk space with the body, contact and joint
// primitives the game core needs.
package physics

import (
	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
)

const collisionTypeEntity cp.CollisionType = 1

// Iterations matches the solver quality the levels were tuned with.
const Iterations = 20

// ContactListener receives raw contact events while the space is stepping.
// Implementations must not mutate the world from these callbacks.
type ContactListener interface {
	BeginContact(a, b *Body, c Contact)
	// PreSolve returns false to disable the contact for this step.
	PreSolve(a, b *Body, c Contact) bool
}

// World owns the Chipmunk space and every body created through it.
type World struct {
	space         *cp.Space
	gravity       cp.Vector
	listener      ContactListener
	handlersReady bool
	stepping      bool

	shapeToBody map[*cp.Shape]*Body
}

// NewWorld creates a world with the given gravity in meters per second squared.
func NewWorld(gravityX, gravityY float64) *World {
	space := cp.NewSpace()
	space.Iterations = Iterations
	space.SetGravity(cp.Vector{X: gravityX, Y: gravityY})

	w := &World{
		space:       space,
		gravity:     cp.Vector{X: gravityX, Y: gravityY},
		shapeToBody: make(map[*cp.Shape]*Body),
	}
	w.setupHandlers()
	return w
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// SetGravity changes the world gravity.
func (w *World) SetGravity(x, y float64) {
	if w == nil || w.space == nil {
		return
	}
	w.gravity = cp.Vector{X: x, Y: y}
	w.space.SetGravity(w.gravity)
}

// Gravity returns the world gravity.
func (w *World) Gravity() cp.Vector {
	if w == nil {
		return cp.Vector{}
	}
	return w.gravity
}

// SetContactListener installs the receiver of begin / pre-solve events.
func (w *World) SetContactListener(l ContactListener) {
	if w == nil {
		return
	}
	w.listener = l
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}
	w.stepping = true
	w.space.Step(dt)
	w.stepping = false
}

// Stepping reports whether the space is inside Step. Bodies and joints must
// not be created or removed while this is true.
func (w *World) Stepping() bool {
	return w != nil && w.stepping
}

func (w *World) mustNotStep(op string) {
	if w.stepping {
		panic("physics: " + op + " during step")
	}
}

func (w *World) setupHandlers() {
	if w == nil || w.handlersReady || w.space == nil {
		return
	}

	handler := w.space.NewCollisionHandler(collisionTypeEntity, collisionTypeEntity)
	handler.UserData = w
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil || world.listener == nil {
			return true
		}
		a, b, ok := world.bodies(arb)
		if !ok {
			return true
		}
		world.listener.BeginContact(a, b, snapshot(arb, a, b))
		return true
	}
	handler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil || world.listener == nil {
			return true
		}
		a, b, ok := world.bodies(arb)
		if !ok {
			return true
		}
		return world.listener.PreSolve(a, b, snapshot(arb, a, b))
	}

	w.handlersReady = true
}

func (w *World) bodies(arb *cp.Arbiter) (*Body, *Body, bool) {
	shapeA, shapeB := arb.Shapes()
	a, okA := w.shapeToBody[shapeA]
	b, okB := w.shapeToBody[shapeB]
	if !okA || !okB || a == nil || b == nil {
		log.Debug("physics: contact with unregistered shape")
		return nil, nil, false
	}
	return a, b, true
}
