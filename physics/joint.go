package physics

import "github.com/jakecoffman/cp"

// Joint groups the Chipmunk constraints that make up one logical joint.
type Joint struct {
	world       *World
	a, b        *Body
	constraints []*cp.Constraint
	removed     bool
}

// Weld pins b to a at world point p and locks their relative rotation.
func (w *World) Weld(a, b *Body, p cp.Vector) *Joint {
	if w == nil || !a.Enabled() || !b.Enabled() {
		return nil
	}
	w.mustNotStep("create weld joint")
	rel := b.body.Angle() - a.body.Angle()
	return w.addJoint(a, b,
		cp.NewPivotJoint(a.body, b.body, p),
		cp.NewRotaryLimitJoint(a.body, b.body, rel, rel),
	)
}

// Distance keeps world points pa on a and pb on b at their current distance.
func (w *World) Distance(a, b *Body, pa, pb cp.Vector) *Joint {
	if w == nil || !a.Enabled() || !b.Enabled() {
		return nil
	}
	w.mustNotStep("create distance joint")
	return w.addJoint(a, b,
		cp.NewPinJoint(a.body, b.body, a.body.WorldToLocal(pa), b.body.WorldToLocal(pb)),
	)
}

func (w *World) addJoint(a, b *Body, cs ...*cp.Constraint) *Joint {
	j := &Joint{world: w, a: a, b: b, constraints: cs}
	for _, c := range cs {
		w.space.AddConstraint(c)
	}
	a.joints = append(a.joints, j)
	b.joints = append(b.joints, j)
	return j
}

// RemoveJoint detaches the joint from both bodies and the space.
func (w *World) RemoveJoint(j *Joint) {
	if w == nil || j == nil || j.removed {
		return
	}
	w.mustNotStep("remove joint")
	j.remove()
	j.a.dropJoint(j)
	j.b.dropJoint(j)
}

// Removed reports whether the joint is no longer in the space.
func (j *Joint) Removed() bool {
	return j == nil || j.removed
}

func (j *Joint) remove() {
	if j.removed {
		return
	}
	for _, c := range j.constraints {
		j.world.space.RemoveConstraint(c)
	}
	j.removed = true
}

func (b *Body) dropJoint(j *Joint) {
	out := b.joints[:0]
	for _, o := range b.joints {
		if o != j {
			out = append(out, o)
		}
	}
	b.joints = out
}
