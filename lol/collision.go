package lol

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/lol/media"
	"github.com/milk9111/lol/physics"
)

// collisionEvent resolves one contact between two entities at the safe point
// after the physics step. primary has the higher dispatch precedence.
type collisionEvent struct {
	primary   Entity
	secondary Entity
	contact   physics.Contact
}

func (ev collisionEvent) Run() {
	if !ev.primary.base().visible || !ev.secondary.base().visible {
		return
	}
	switch p := ev.primary.(type) {
	case *Hero:
		p.onCollide(ev.secondary, ev.contact)
	case *Enemy:
		p.onCollide(ev.secondary, ev.contact)
	case *Projectile:
		p.onCollide(ev.secondary, ev.contact)
	}
}

// dispatchRank orders entity kinds for dispatch: hero, enemy, projectile.
// Everything else never acts as the primary.
func dispatchRank(e Entity) int {
	switch e.(type) {
	case *Hero:
		return 0
	case *Enemy:
		return 1
	case *Projectile:
		return 2
	default:
		return 3
	}
}

// order returns the pair with the higher-precedence entity first. ok is false
// when neither entity reacts to collisions.
func order(a, b Entity) (primary, secondary Entity, swapped, ok bool) {
	ra, rb := dispatchRank(a), dispatchRank(b)
	if ra == 3 && rb == 3 {
		return nil, nil, false, false
	}
	if rb < ra {
		return b, a, true, true
	}
	return a, b, false, true
}

func entityOf(b *physics.Body) (Entity, bool) {
	if b == nil {
		return nil, false
	}
	e, ok := b.UserData.(Entity)
	return e, ok
}

// BeginContact classifies a new contact and defers its resolution. It never
// mutates game state.
func (l *Level) BeginContact(a, b *physics.Body, c physics.Contact) {
	ea, okA := entityOf(a)
	eb, okB := entityOf(b)
	if !okA || !okB {
		log.Debug("lol: contact without entity")
		return
	}
	primary, secondary, swapped, ok := order(ea, eb)
	if !ok {
		return
	}
	if swapped {
		c = c.Swapped()
	}
	l.oneTime.Push(collisionEvent{primary: primary, secondary: secondary, contact: c})
}

func (h *Hero) onCollide(other Entity, c physics.Contact) {
	switch o := other.(type) {
	case *Enemy:
		h.collideEnemy(o)
	case *Destination:
		h.collideDestination(o)
	case *Obstacle:
		h.collideObstacle(o, c)
	case *Goodie:
		h.collideGoodie(o)
	}
}

func (h *Hero) collideEnemy(e *Enemy) {
	switch {
	case e.alwaysDamages:
		h.defeat(e)
	case h.Invincible():
		if !e.immuneInvincibility {
			e.Defeat(true)
		}
	case h.crawling && e.defeatByCrawl:
		e.Defeat(true)
	case h.inAir && e.defeatByJump && h.Y() > e.Center().Y:
		e.Defeat(true)
	case e.damage >= h.strength:
		h.defeat(e)
	default:
		h.AddStrength(-e.damage)
		e.Defeat(true)
	}
}

func (h *Hero) collideDestination(d *Destination) {
	s := h.level.score
	if !s.reached(d.activation) || d.holding >= d.capacity || !h.visible {
		return
	}
	h.Remove(true)
	d.holding++
	media.Play(d.arrivalSound)
	s.onDestinationArrive()
}

func (h *Hero) collideObstacle(o *Obstacle, c physics.Contact) {
	o.playCollisionSound(h.level.now)
	solid := !o.body.Sensor()
	if h.rotation != 0 && solid {
		h.setRotation(0)
	}
	if o.heroCollision != nil {
		o.heroCollision(o, h, c)
	}
	if (h.inAir || h.multiJump) && solid && !o.noReJump {
		h.stopJump()
	}
}

func (h *Hero) collideGoodie(g *Goodie) {
	g.Remove(true)
	h.level.score.onGoodieCollected(g)
	if g.strengthBoost != 0 {
		h.AddStrength(g.strengthBoost)
	}
	h.AddInvincibility(g.invincibility)
}

func (e *Enemy) onCollide(other Entity, c physics.Contact) {
	switch o := other.(type) {
	case *Obstacle:
		if o.enemyCollision != nil {
			o.enemyCollision(o, e, c)
		}
	case *Projectile:
		e.collideProjectile(o)
	}
}

func (e *Enemy) collideProjectile(p *Projectile) {
	if !p.visible {
		return
	}
	e.damage -= p.strength
	if e.damage <= 0 {
		p.remove(RemovedDestroyed, true)
		e.Defeat(true)
		return
	}
	p.remove(RemovedHidden, false)
}
