package lol

import (
	"fmt"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/lol/media"
	"github.com/milk9111/lol/physics"
)

// Entity is one of *Hero, *Enemy, *Goodie, *Obstacle, *Destination or
// *Projectile.
type Entity interface {
	base() *Actor
}

// Side names an edge of an axis-aligned box.
type Side int

const (
	SideNone Side = iota
	SideTop
	SideRight
	SideBottom
	SideLeft
)

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideRight:
		return "right"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	default:
		return "none"
	}
}

// TouchResponder holds optional touch callbacks. Coordinates are in meters.
// A callback returns true when it consumed the touch.
type TouchResponder struct {
	Down func(x, y float64) bool
	Move func(x, y float64) bool
	Up   func(x, y float64) bool
}

// Actor is the state shared by every entity. It owns its body exclusively.
type Actor struct {
	level *Level
	self  Entity
	body  *physics.Body

	visible bool
	removed bool
	z       int
	width   float64
	height  float64
	image   string

	touch          *TouchResponder
	animator       *Animator
	disappearSound media.Sound
	disappearAnim  *Animation

	route *routeDriver
	chase *chaseState
	hover *hoverState

	sticky      [5]bool
	oneSided    Side
	passThrough int

	weldJoint *physics.Joint
	distJoint *physics.Joint
	jumped    bool
	lastJump  time.Duration
}

func (a *Actor) base() *Actor { return a }

// Base returns the shared state of any entity.
func Base(e Entity) *Actor {
	if e == nil {
		return nil
	}
	return e.base()
}

func (a *Actor) Level() *Level { return a.level }

// Body returns the physics body of the entity.
func (a *Actor) Body() *physics.Body { return a.body }

// Visible reports whether the entity is drawn and takes part in collisions.
func (a *Actor) Visible() bool { return a.visible }

// Removed reports whether Remove was called.
func (a *Actor) Removed() bool { return a.removed }

// Z returns the render plane in [-2,2].
func (a *Actor) Z() int { return a.z }

// Width returns the width in meters.
func (a *Actor) Width() float64 { return a.width }

// Height returns the height in meters.
func (a *Actor) Height() float64 { return a.height }

// Image returns the name of the image drawn for the entity. An animator
// overrides it.
func (a *Actor) Image() string {
	if a.animator != nil {
		if img := a.animator.Image(); img != "" {
			return img
		}
	}
	return a.image
}

func (a *Actor) SetImage(name string) { a.image = name }

// X returns the left edge in meters.
func (a *Actor) X() float64 { return a.body.Position().X - a.width/2 }

// Y returns the bottom edge in meters.
func (a *Actor) Y() float64 { return a.body.Position().Y - a.height/2 }

// Center returns the body center.
func (a *Actor) Center() cp.Vector { return a.body.Position() }

// SetPosition moves the bottom-left corner to x,y.
func (a *Actor) SetPosition(x, y float64) {
	a.body.SetPosition(x+a.width/2, y+a.height/2)
}

// Velocity returns the linear velocity.
func (a *Actor) Velocity() cp.Vector { return a.body.Velocity() }

// SetVelocity sets the linear velocity. Static entities become kinematic so
// they can move.
func (a *Actor) SetVelocity(vx, vy float64) {
	if a.body.Kind() == physics.Static {
		a.body.SetKind(physics.Kinematic)
	}
	a.body.SetVelocity(vx, vy)
}

// Angle returns the rotation in radians.
func (a *Actor) Angle() float64 { return a.body.Angle() }

// SetZIndex moves the entity to render plane z. z outside [-2,2] panics.
func (a *Actor) SetZIndex(z int) {
	if z < -2 || z > 2 {
		panic(fmt.Sprintf("lol: z index %d out of range [-2,2]", z))
	}
	if z == a.z {
		return
	}
	a.level.movePlane(a.self, a.z, z)
	a.z = z
}

// SetPhysics changes the fixture material.
func (a *Actor) SetPhysics(density, elasticity, friction float64) {
	a.body.SetMaterial(density, elasticity, friction)
}

// SetCanMove makes the entity a dynamic body subject to forces.
func (a *Actor) SetCanMove() {
	a.body.SetKind(physics.Dynamic)
}

// SetCanRotate lets a dynamic entity spin.
func (a *Actor) SetCanRotate(on bool) {
	a.body.SetFixedRotation(!on)
}

// SetCollisionEffect toggles whether the entity pushes other bodies.
func (a *Actor) SetCollisionEffect(on bool) {
	a.body.SetSensor(!on)
}

// SetGravityEffect toggles whether world gravity acts on the entity.
func (a *Actor) SetGravityEffect(on bool) {
	a.body.SetGravityEnabled(on)
}

// SetTouchResponder installs touch callbacks. nil removes them.
func (a *Actor) SetTouchResponder(t *TouchResponder) { a.touch = t }

// SetAnimator attaches an animation driver.
func (a *Actor) SetAnimator(an *Animator) { a.animator = an }

// Animator returns the animation driver, or nil.
func (a *Actor) Animator() *Animator { return a.animator }

// SetDefaultAnimation attaches a fresh animator playing an.
func (a *Actor) SetDefaultAnimation(an *Animation) {
	a.animator = NewAnimator(an)
}

// SetDisappearSound names the sound played on a non-quiet removal.
func (a *Actor) SetDisappearSound(name string) {
	a.disappearSound = a.level.game.sounds.Get(name)
}

// SetDisappearAnimation sets the animation shown where the entity was removed.
func (a *Actor) SetDisappearAnimation(an *Animation) { a.disappearAnim = an }

// SetPassThrough disables contacts with every entity sharing the nonzero id.
func (a *Actor) SetPassThrough(id int) { a.passThrough = id }

// SetOneSided makes the entity collidable only from side s.
func (a *Actor) SetOneSided(s Side) { a.oneSided = s }

// SetSticky makes the given sides glue touching dynamic bodies in place.
func (a *Actor) SetSticky(sides ...Side) {
	for _, s := range sides {
		if s > SideNone && s <= SideLeft {
			a.sticky[s] = true
		}
	}
}

// Sticky reports whether side s is sticky.
func (a *Actor) Sticky(s Side) bool {
	if s <= SideNone || s > SideLeft {
		return false
	}
	return a.sticky[s]
}

func (a *Actor) anySticky() bool {
	return a.sticky[SideTop] || a.sticky[SideRight] || a.sticky[SideBottom] || a.sticky[SideLeft]
}

// Stuck reports whether stickiness currently holds the entity.
func (a *Actor) Stuck() bool {
	return !a.weldJoint.Removed() || !a.distJoint.Removed()
}

func (a *Actor) unstick() {
	w := a.level.world
	w.RemoveJoint(a.weldJoint)
	w.RemoveJoint(a.distJoint)
	a.weldJoint = nil
	a.distJoint = nil
}

// Remove hides the entity for good and disables its body. Unless quiet, the
// disappear sound and animation play.
func (a *Actor) Remove(quiet bool) {
	if a.removed {
		return
	}
	a.removed = true
	a.hide()
	if quiet {
		return
	}
	media.Play(a.disappearSound)
	if a.disappearAnim != nil {
		a.level.addEffect(a.X(), a.Y(), a.width, a.height, a.disappearAnim)
	}
}

func (a *Actor) hide() {
	a.visible = false
	a.route = nil
	a.chase = nil
	a.hover = nil
	a.weldJoint = nil
	a.distJoint = nil
	a.body.SetEnabled(false)
}

func (a *Actor) show() {
	a.visible = true
	a.body.SetEnabled(true)
}

// SetAppearDelay hides the entity now and shows it after delay seconds.
func (a *Actor) SetAppearDelay(delay float64) {
	a.visible = false
	a.body.SetEnabled(false)
	a.level.Schedule(delay, func() {
		if a.removed {
			return
		}
		a.show()
	})
}

// SetDisappearDelay removes the entity after delay seconds.
func (a *Actor) SetDisappearDelay(delay float64, quiet bool) {
	a.level.Schedule(delay, func() {
		a.Remove(quiet)
	})
}

// SetTouchTrigger fires the touch trigger id when the entity is touched and
// the goodie counts reach activation. The entity is removed afterwards when
// disappear is set.
func (a *Actor) SetTouchTrigger(id int, activation [4]int, disappear bool) {
	a.touch = &TouchResponder{
		Down: func(x, y float64) bool {
			l := a.level
			if !l.score.reached(activation) {
				return false
			}
			l.game.author.OnTouchTrigger(id, l.number, a.self)
			if disappear {
				a.Remove(false)
			}
			return true
		},
	}
}

// SetCanDrag lets the player drag the entity.
func (a *Actor) SetCanDrag() {
	a.touch = &TouchResponder{
		Down: func(x, y float64) bool { return true },
		Move: func(x, y float64) bool {
			a.body.SetPosition(x, y)
			return true
		},
	}
}

func (a *Actor) contains(x, y float64) bool {
	return x >= a.X() && x <= a.X()+a.width && y >= a.Y() && y <= a.Y()+a.height
}
