package lol

import (
	"fmt"
	"math"

	"github.com/milk9111/lol/common"
	"github.com/milk9111/lol/media"
	"github.com/milk9111/lol/physics"
)

// DefaultProjectileRange is how far a projectile flies before it is removed.
const DefaultProjectileRange = 1000.0

// ProjectilePool is a fixed ring of reusable projectiles. A throw into a slot
// whose projectile is still in flight is dropped.
type ProjectilePool struct {
	level *Level
	slots []*Projectile
	next  int

	remaining  int
	throwSound media.Sound
	survive    bool
	fixedSpeed float64
	multiplier float64
	rotate     bool
}

// ConfigureProjectiles builds the level's pool of size projectiles. A
// non-positive size panics.
func (l *Level) ConfigureProjectiles(size int, width, height float64, img string, strength, z int, circle bool) *ProjectilePool {
	if size <= 0 {
		panic(fmt.Sprintf("lol: projectile pool size %d must be positive", size))
	}
	pool := &ProjectilePool{
		level:      l,
		slots:      make([]*Projectile, size),
		remaining:  -1,
		multiplier: 1,
	}
	shape := physics.Box
	if circle {
		shape = physics.Circle
	}
	for i := range pool.slots {
		p := &Projectile{
			strength:           strength,
			rangeLimit:         DefaultProjectileRange,
			disappearOnCollide: true,
		}
		l.initActor(&p.Actor, p, physics.BodyDef{
			Kind:          physics.Dynamic,
			Shape:         shape,
			Width:         width,
			Height:        height,
			Density:       1,
			FixedRotation: true,
		}, img, z)
		p.body.SetGravityEnabled(false)
		p.visible = false
		p.body.SetEnabled(false)
		pool.slots[i] = p
	}
	l.pool = pool
	return pool
}

// Projectiles returns the pooled projectiles.
func (pp *ProjectilePool) Projectiles() []*Projectile {
	if pp == nil {
		return nil
	}
	return pp.slots
}

// SetNumberOfProjectiles limits the total number of throws. -1 is unlimited.
func (pp *ProjectilePool) SetNumberOfProjectiles(n int) { pp.remaining = n }

// Remaining returns the throws left, -1 when unlimited.
func (pp *ProjectilePool) Remaining() int { return pp.remaining }

func (pp *ProjectilePool) SetThrowSound(name string) {
	pp.throwSound = pp.level.game.sounds.Get(name)
}

// SetDisappearSound sets the sound every pooled projectile plays on removal.
func (pp *ProjectilePool) SetDisappearSound(name string) {
	for _, p := range pp.slots {
		p.SetDisappearSound(name)
	}
}

// SetRange sets the flight distance in meters.
func (pp *ProjectilePool) SetRange(meters float64) {
	for _, p := range pp.slots {
		p.rangeLimit = meters
	}
}

// SetGravity toggles gravity on pooled projectiles.
func (pp *ProjectilePool) SetGravity(on bool) {
	for _, p := range pp.slots {
		p.body.SetGravityEnabled(on)
	}
}

// SetDisappearOnCollide toggles removal when a projectile hits solid scenery.
func (pp *ProjectilePool) SetDisappearOnCollide(on bool) {
	for _, p := range pp.slots {
		p.disappearOnCollide = on
	}
}

// SetSurviveProjectileCollisions keeps projectiles alive when they hit each
// other.
func (pp *ProjectilePool) SetSurviveProjectileCollisions(on bool) { pp.survive = on }

// SetFixedVelocity makes ThrowAt use the given speed regardless of distance.
func (pp *ProjectilePool) SetFixedVelocity(speed float64) { pp.fixedSpeed = speed }

// SetVelocityMultiplier scales the ThrowAt velocity by distance.
func (pp *ProjectilePool) SetVelocityMultiplier(m float64) { pp.multiplier = m }

// SetRotateWithDirection turns projectiles to face their flight direction.
func (pp *ProjectilePool) SetRotateWithDirection(on bool) { pp.rotate = on }

// ThrowFixed launches the next projectile from the hero position plus offset
// with velocity vx,vy.
func (pp *ProjectilePool) ThrowFixed(h *Hero, offX, offY, vx, vy float64) {
	p := pp.take(h)
	if p == nil {
		return
	}
	pp.fire(h, p, h.X()+offX, h.Y()+offY, vx, vy)
}

// ThrowAt launches the next projectile from the hero position plus offset
// toward x,y.
func (pp *ProjectilePool) ThrowAt(h *Hero, offX, offY, x, y float64) {
	p := pp.take(h)
	if p == nil {
		return
	}
	sx, sy := h.X()+offX, h.Y()+offY
	vx, vy := x-sx, y-sy
	if pp.fixedSpeed > 0 {
		vx, vy = common.Normalize(vx, vy)
		vx *= pp.fixedSpeed
		vy *= pp.fixedSpeed
	} else {
		vx *= pp.multiplier
		vy *= pp.multiplier
	}
	pp.fire(h, p, sx, sy, vx, vy)
}

func (pp *ProjectilePool) take(h *Hero) *Projectile {
	if pp == nil || h == nil || !h.visible || len(pp.slots) == 0 {
		return nil
	}
	if pp.remaining == 0 {
		return nil
	}
	p := pp.slots[pp.next]
	if p.visible {
		return nil
	}
	pp.next = (pp.next + 1) % len(pp.slots)
	if pp.remaining > 0 {
		pp.remaining--
	}
	return p
}

func (pp *ProjectilePool) fire(h *Hero, p *Projectile, x, y, vx, vy float64) {
	if math.IsNaN(vx) || math.IsNaN(vy) {
		vx, vy = 0, 0
	}
	p.launch(x, y, vx, vy, pp.rotate)
	media.Play(pp.throwSound)
	h.play(h.throwAnim)
}

func (pp *ProjectilePool) enforceRange() {
	if pp == nil {
		return
	}
	for _, p := range pp.slots {
		if p.outOfRange() {
			p.remove(RemovedHidden, true)
		}
	}
}
