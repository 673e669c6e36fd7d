package lol

import (
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/lol/physics"
)

// stickyGrace keeps a body that just jumped from sticking again right away.
const stickyGrace = 100 * time.Millisecond

// PreSolve filters contacts before the solver sees them. It returns false to
// disable the contact for this step. Joint creation is deferred to the
// one-time queue.
func (l *Level) PreSolve(a, b *physics.Body, c physics.Contact) bool {
	ea, okA := entityOf(a)
	eb, okB := entityOf(b)
	if !okA || !okB {
		return true
	}
	pa, pb := ea.base(), eb.base()

	if pa.passThrough != 0 && pa.passThrough == pb.passThrough {
		return false
	}
	if pa.oneSided != SideNone && !approaches(pa, pb, c) {
		return false
	}
	if pb.oneSided != SideNone && !approaches(pb, pa, c) {
		return false
	}

	if pa.anySticky() {
		l.stick(pa, pb, c)
	}
	if pb.anySticky() {
		l.stick(pb, pa, c)
	}
	return true
}

// approaches reports whether other moves toward the collidable side of the
// one-sided platform at every contact point.
func approaches(platform, other *Actor, c physics.Contact) bool {
	for _, p := range c.Points {
		v := other.body.VelocityAt(p).Sub(platform.body.VelocityAt(p))
		if !towardSide(platform.oneSided, v) {
			return false
		}
	}
	return true
}

func towardSide(s Side, v cp.Vector) bool {
	switch s {
	case SideTop:
		return v.Y <= 0
	case SideBottom:
		return v.Y >= 0
	case SideRight:
		return v.X <= 0
	case SideLeft:
		return v.X >= 0
	}
	return true
}

// stick glues other to surface when it rests against a sticky side.
func (l *Level) stick(surface, other *Actor, c physics.Contact) {
	if other.body.Kind() != physics.Dynamic || other.body.Sensor() || other.Stuck() {
		return
	}
	if other.jumped && l.now-other.lastJump < stickyGrace {
		return
	}
	sx, sy, sw, sh := surface.body.AABB()
	ox, oy, ow, oh := other.body.AABB()
	against := false
	for _, s := range []Side{SideTop, SideRight, SideBottom, SideLeft} {
		if surface.sticky[s] && reachedSide(s, sx, sy, sw, sh, ox, oy, ow, oh) {
			against = true
			break
		}
	}
	if !against {
		return
	}
	p, ok := c.Point()
	if !ok {
		return
	}

	l.oneTime.PushFunc(func() {
		if other.Stuck() || !other.body.Enabled() || !surface.body.Enabled() {
			return
		}
		other.body.SetVelocity(0, 0)
		other.body.SetAngularVelocity(0)
		other.weldJoint = l.world.Weld(surface.body, other.body, p)
		other.distJoint = l.world.Distance(surface.body, other.body, p, p)
	})
}
