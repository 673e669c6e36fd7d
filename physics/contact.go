package physics

import "github.com/jakecoffman/cp"

// Contact is a copy of an arbiter's manifold taken inside a callback. Unlike
// the arbiter it stays valid after the step.
type Contact struct {
	Points  []cp.Vector
	Normal  cp.Vector
	SensorA bool
	SensorB bool
}

func snapshot(arb *cp.Arbiter, a, b *Body) Contact {
	set := arb.ContactPointSet()
	c := Contact{
		Normal:  set.Normal,
		SensorA: a.Sensor(),
		SensorB: b.Sensor(),
	}
	for i := 0; i < set.Count; i++ {
		c.Points = append(c.Points, set.Points[i].PointA)
	}
	return c
}

// Swapped returns the contact as seen from the other body.
func (c Contact) Swapped() Contact {
	c.Normal = c.Normal.Neg()
	c.SensorA, c.SensorB = c.SensorB, c.SensorA
	return c
}

// Point returns the first contact point, or ok=false for sensor overlaps
// that carry no manifold.
func (c Contact) Point() (cp.Vector, bool) {
	if len(c.Points) == 0 {
		return cp.Vector{}, false
	}
	return c.Points[0], true
}

// AnySensor reports whether either fixture is a sensor.
func (c Contact) AnySensor() bool {
	return c.SensorA || c.SensorB
}
