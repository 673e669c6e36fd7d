package lol

import (
	"fmt"

	"github.com/milk9111/lol/common"
)

// Route is a path of bottom-left positions an entity follows.
type Route struct {
	xs []float64
	ys []float64
}

func NewRoute() *Route {
	return &Route{}
}

// To appends a point and returns the route for chaining.
func (r *Route) To(x, y float64) *Route {
	r.xs = append(r.xs, x)
	r.ys = append(r.ys, y)
	return r
}

// Len returns the number of points.
func (r *Route) Len() int {
	if r == nil {
		return 0
	}
	return len(r.xs)
}

// Point returns point i.
func (r *Route) Point(i int) (float64, float64) {
	return r.xs[i], r.ys[i]
}

type routeDriver struct {
	actor *Actor
	route *Route
	speed float64
	loop  bool
	next  int
	done  bool
}

// SetRoute moves the entity along r at speed meters per second, starting at
// its first point. A route with fewer than two points panics.
func (a *Actor) SetRoute(r *Route, speed float64, loop bool) {
	if r.Len() < 2 {
		panic(fmt.Sprintf("lol: route needs at least 2 points, got %d", r.Len()))
	}
	d := &routeDriver{actor: a, route: r, speed: speed, loop: loop}
	a.route = d
	d.start()
}

// StopRoute halts route motion where the entity is.
func (a *Actor) StopRoute() {
	if a.route == nil {
		return
	}
	a.route = nil
	a.body.SetVelocity(0, 0)
}

func (d *routeDriver) start() {
	x, y := d.route.Point(0)
	d.actor.SetPosition(x, y)
	d.next = 1
	d.done = false
	d.heading()
}

func (d *routeDriver) heading() {
	a := d.actor
	tx, ty := d.route.Point(d.next)
	vx, vy := common.Normalize(tx-a.X(), ty-a.Y())
	a.SetVelocity(vx*d.speed, vy*d.speed)
}

// step runs once per tick after physics.
func (d *routeDriver) step() {
	if d == nil || d.done || d.actor.route != d {
		return
	}
	a := d.actor
	x, y := a.X(), a.Y()
	tx, ty := d.route.Point(d.next)
	v := a.Velocity()
	dx, dy := tx-x, ty-y

	reached := common.Dist2(x, y, tx, ty) <= common.Epsilon*common.Epsilon
	if !reached && dx*v.X+dy*v.Y <= 0 {
		reached = true
	}
	if !reached {
		return
	}

	a.SetPosition(tx, ty)
	d.next++
	if d.next < d.route.Len() {
		d.heading()
		return
	}
	if d.loop {
		d.start()
		return
	}
	d.done = true
	a.body.SetVelocity(0, 0)
}
