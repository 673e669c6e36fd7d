package lol

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/lol/physics"
)

// RemovalKind records how a projectile last left play.
type RemovalKind int

const (
	NotRemoved RemovalKind = iota
	RemovedHidden
	RemovedDestroyed
)

func (k RemovalKind) String() string {
	switch k {
	case RemovedHidden:
		return "hidden"
	case RemovedDestroyed:
		return "destroyed"
	default:
		return "in play"
	}
}

// Projectile is thrown by heroes and recycled through the level's pool.
type Projectile struct {
	Actor

	origin             cp.Vector
	rangeLimit         float64
	strength           int
	disappearOnCollide bool
	removal            RemovalKind
}

func (p *Projectile) Strength() int { return p.strength }

// Origin returns the center at launch.
func (p *Projectile) Origin() cp.Vector { return p.origin }

// Removal reports how the projectile last left play.
func (p *Projectile) Removal() RemovalKind { return p.removal }

// Remove hides the projectile and returns it to the pool.
func (p *Projectile) Remove(quiet bool) {
	p.remove(RemovedHidden, quiet)
}

func (p *Projectile) remove(kind RemovalKind, quiet bool) {
	if !p.visible {
		return
	}
	p.removal = kind
	p.Actor.hide()
	if quiet {
		return
	}
	a := &p.Actor
	if a.disappearSound != nil {
		a.disappearSound.Play()
	}
	if a.disappearAnim != nil {
		a.level.addEffect(a.X(), a.Y(), a.width, a.height, a.disappearAnim)
	}
}

func (p *Projectile) launch(x, y, vx, vy float64, rotate bool) {
	p.removal = NotRemoved
	p.SetPosition(x, y)
	p.show()
	p.body.SetVelocity(vx, vy)
	if rotate {
		p.body.SetAngle(cp.Vector{X: vx, Y: vy}.ToAngle() - math.Pi/2)
	} else {
		p.body.SetAngle(0)
	}
	p.origin = p.Center()
}

func (p *Projectile) outOfRange() bool {
	return p.visible && p.Center().DistanceSq(p.origin) > p.rangeLimit*p.rangeLimit
}

// onCollide resolves a projectile against a non-hero, non-enemy entity.
func (p *Projectile) onCollide(other Entity, c physics.Contact) {
	switch o := other.(type) {
	case *Obstacle:
		if o.projectileCollision != nil {
			o.projectileCollision(o, p, c)
			return
		}
	case *Projectile:
		if p.level.pool.survive {
			return
		}
		p.remove(RemovedHidden, false)
		o.remove(RemovedHidden, false)
		return
	}
	if other.base().body.Sensor() {
		return
	}
	if p.disappearOnCollide {
		p.remove(RemovedHidden, false)
	}
}
