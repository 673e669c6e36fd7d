package lol

import "github.com/milk9111/lol/common"

type chaseState struct {
	target  Entity
	speed   float64
	ignoreX bool
	ignoreY bool
}

type hoverState struct {
	screenX, screenY float64
}

// SetChase steers the entity toward target at speed meters per second. A
// true ignoreX or ignoreY keeps that velocity component unchanged.
func (a *Actor) SetChase(target Entity, speed float64, ignoreX, ignoreY bool) {
	if target == nil {
		a.chase = nil
		return
	}
	a.chase = &chaseState{target: target, speed: speed, ignoreX: ignoreX, ignoreY: ignoreY}
}

// StopChase cancels chasing.
func (a *Actor) StopChase() { a.chase = nil }

// SetHover pins the entity to screen position x,y in pixels while the camera
// moves.
func (a *Actor) SetHover(x, y float64) {
	a.hover = &hoverState{screenX: x, screenY: y}
}

// StopHover releases the entity from the screen.
func (a *Actor) StopHover() { a.hover = nil }

func (a *Actor) stepChase() {
	c := a.chase
	if c == nil || !a.visible {
		return
	}
	t := c.target.base()
	if !t.visible {
		return
	}
	me, them := a.Center(), t.Center()
	vx, vy := common.Normalize(them.X-me.X, them.Y-me.Y)
	v := a.Velocity()
	nx, ny := vx*c.speed, vy*c.speed
	if c.ignoreX {
		nx = v.X
	}
	if c.ignoreY {
		ny = v.Y
	}
	a.SetVelocity(nx, ny)
}

func (a *Actor) stepHover() {
	h := a.hover
	if h == nil || !a.visible {
		return
	}
	x, y := a.level.ScreenToWorld(h.screenX, h.screenY)
	a.body.SetPosition(x, y)
}
