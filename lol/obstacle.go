package lol

import (
	"time"

	"github.com/milk9111/lol/common"
	"github.com/milk9111/lol/media"
	"github.com/milk9111/lol/physics"
)

// Obstacle is scenery. Its optional callbacks run when a hero, enemy or
// projectile touches it.
type Obstacle struct {
	Actor

	heroCollision       func(o *Obstacle, h *Hero, c physics.Contact)
	enemyCollision      func(o *Obstacle, e *Enemy, c physics.Contact)
	projectileCollision func(o *Obstacle, p *Projectile, c physics.Contact)

	noReJump      bool
	sound         media.Sound
	soundCooldown time.Duration
	soundPlayed   bool
	lastSound     time.Duration
}

// SetHeroCollisionCallback replaces the hero collision callback.
func (o *Obstacle) SetHeroCollisionCallback(fn func(o *Obstacle, h *Hero, c physics.Contact)) {
	o.heroCollision = fn
}

// SetEnemyCollisionCallback replaces the enemy collision callback.
func (o *Obstacle) SetEnemyCollisionCallback(fn func(o *Obstacle, e *Enemy, c physics.Contact)) {
	o.enemyCollision = fn
}

// SetProjectileCollisionCallback replaces the projectile collision callback.
// The callback decides whether the projectile is removed.
func (o *Obstacle) SetProjectileCollisionCallback(fn func(o *Obstacle, p *Projectile, c physics.Contact)) {
	o.projectileCollision = fn
}

// SetNoReJump keeps heroes touching the obstacle airborne.
func (o *Obstacle) SetNoReJump() { o.noReJump = true }

// SetCollisionSound plays name when a hero hits the obstacle, at most once per
// cooldown.
func (o *Obstacle) SetCollisionSound(name string, cooldown time.Duration) {
	o.sound = o.level.game.sounds.Get(name)
	o.soundCooldown = cooldown
}

func (o *Obstacle) playCollisionSound(now time.Duration) {
	if o.sound == nil {
		return
	}
	if o.soundPlayed && now-o.lastSound < o.soundCooldown {
		return
	}
	o.soundPlayed = true
	o.lastSound = now
	o.sound.Play()
}

// SetHeroCollisionTrigger fires the hero-collide trigger id when a hero
// touches the obstacle after the goodie counts reach activation. A positive
// delay postpones the trigger by that many seconds.
func (o *Obstacle) SetHeroCollisionTrigger(id int, activation [4]int, delay float64) {
	o.heroCollision = func(o *Obstacle, h *Hero, c physics.Contact) {
		l := o.level
		if !l.score.reached(activation) {
			return
		}
		fire := func() { l.game.author.OnHeroCollideTrigger(id, l.number, o, h) }
		if delay <= 0 {
			fire()
			return
		}
		l.Schedule(delay, fire)
	}
}

// SetEnemyCollisionTrigger fires the enemy-collide trigger id when an enemy
// touches the obstacle.
func (o *Obstacle) SetEnemyCollisionTrigger(id int, delay float64) {
	o.enemyCollision = func(o *Obstacle, e *Enemy, c physics.Contact) {
		l := o.level
		fire := func() { l.game.author.OnEnemyCollideTrigger(id, l.number, o, e) }
		if delay <= 0 {
			fire()
			return
		}
		l.Schedule(delay, fire)
	}
}

// SetProjectileCollisionTrigger fires the projectile-collide trigger id once
// the goodie counts reach activation. The trigger owns the projectile.
func (o *Obstacle) SetProjectileCollisionTrigger(id int, activation [4]int) {
	o.projectileCollision = func(o *Obstacle, p *Projectile, c physics.Contact) {
		l := o.level
		if !l.score.reached(activation) {
			return
		}
		l.game.author.OnProjectileCollideTrigger(id, l.number, o, p)
	}
}

// SetDamp scales the velocity of heroes touching the obstacle by factor.
// The obstacle becomes a sensor.
func (o *Obstacle) SetDamp(factor float64) {
	o.body.SetSensor(true)
	o.heroCollision = func(o *Obstacle, h *Hero, c physics.Contact) {
		v := h.body.Velocity()
		h.body.SetVelocity(v.X*factor, v.Y*factor)
	}
}

// SetSpeedBoost adds dx,dy to the velocity of heroes touching the obstacle.
// With a positive duration the boost is taken back after that many seconds.
// The obstacle becomes a sensor.
func (o *Obstacle) SetSpeedBoost(dx, dy, duration float64) {
	o.body.SetSensor(true)
	o.heroCollision = func(o *Obstacle, h *Hero, c physics.Contact) {
		v := h.body.Velocity()
		h.body.SetVelocity(v.X+dx, v.Y+dy)
		if duration <= 0 {
			return
		}
		o.level.Schedule(duration, func() {
			if h.removed {
				return
			}
			v := h.body.Velocity()
			h.body.SetVelocity(v.X-dx, v.Y-dy)
		})
	}
}

// reachedSide reports whether box b rests against side s of box a.
func reachedSide(s Side, ax, ay, aw, ah, bx, by, bw, bh float64) bool {
	const tol = 0.1
	e := common.Epsilon
	// Each side test needs the boxes to overlap along the other axis only,
	// so the unused axis is flattened to the unit interval.
	overlapX := common.Overlaps(ax+e, 0, aw-2*e, 1, bx, 0, bw, 1)
	overlapY := common.Overlaps(0, ay+e, 1, ah-2*e, 0, by, 1, bh)
	switch s {
	case SideTop:
		return overlapX && by >= ay+ah-tol
	case SideBottom:
		return overlapX && by+bh <= ay+tol
	case SideRight:
		return overlapY && bx >= ax+aw-tol
	case SideLeft:
		return overlapY && bx+bw <= ax+tol
	}
	return false
}
