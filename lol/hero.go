package lol

import (
	"math"

	"github.com/milk9111/lol/media"
)

// Hero is a player-controlled entity.
type Hero struct {
	Actor

	strength    int
	invincible  float64
	crawling    bool
	inAir       bool
	multiJump   bool
	rotation    float64
	jumpX       float64
	jumpY       float64
	mustSurvive bool

	jumpSound media.Sound

	jumpAnim       *Animation
	throwAnim      *Animation
	crawlAnim      *Animation
	invincibleAnim *Animation
}

// Strength returns the remaining strength. A hero with strength <= 0 is
// defeated.
func (h *Hero) Strength() int { return h.strength }

func (h *Hero) SetStrength(n int) { h.strength = n }

// AddStrength changes the strength by delta and fires the strength-change
// trigger.
func (h *Hero) AddStrength(delta int) {
	h.strength += delta
	l := h.level
	l.game.author.OnStrengthChangeTrigger(l.number, h)
}

// Invincible reports whether invincibility time remains.
func (h *Hero) Invincible() bool { return h.invincible > 0 }

// InvincibleRemaining returns the remaining invincibility in seconds.
func (h *Hero) InvincibleRemaining() float64 { return h.invincible }

// AddInvincibility extends the remaining invincibility by seconds.
func (h *Hero) AddInvincibility(seconds float64) {
	if seconds <= 0 {
		return
	}
	h.invincible += seconds
	h.play(h.invincibleAnim)
}

func (h *Hero) Crawling() bool { return h.crawling }

func (h *Hero) InAir() bool { return h.inAir }

// SetMultiJump lets the hero jump again while airborne.
func (h *Hero) SetMultiJump(on bool) { h.multiJump = on }

// SetJumpImpulses sets the impulse applied by Jump.
func (h *Hero) SetJumpImpulses(x, y float64) {
	h.jumpX = x
	h.jumpY = y
}

// SetMustSurvive ends the level in defeat as soon as this hero is defeated.
func (h *Hero) SetMustSurvive() { h.mustSurvive = true }

func (h *Hero) SetJumpSound(name string) { h.jumpSound = h.level.game.sounds.Get(name) }

func (h *Hero) SetJumpAnimation(an *Animation) { h.jumpAnim = an }

func (h *Hero) SetThrowAnimation(an *Animation) { h.throwAnim = an }

func (h *Hero) SetCrawlAnimation(an *Animation) { h.crawlAnim = an }

func (h *Hero) SetInvincibleAnimation(an *Animation) { h.invincibleAnim = an }

// Rotation returns the artificial rotation in radians.
func (h *Hero) Rotation() float64 { return h.rotation }

// IncreaseRotation turns the hero by delta radians.
func (h *Hero) IncreaseRotation(delta float64) {
	h.setRotation(h.rotation + delta)
}

func (h *Hero) setRotation(rad float64) {
	h.rotation = rad
	h.body.SetAngle(rad)
}

// Jump applies the jump impulse. An airborne hero jumps again only with
// multi-jump enabled. Jumping releases any sticky joints.
func (h *Hero) Jump() {
	if !h.visible || (h.inAir && !h.multiJump) {
		return
	}
	h.unstick()
	h.jumped = true
	h.lastJump = h.level.now
	h.body.ApplyImpulse(h.jumpX, h.jumpY)
	h.inAir = true
	media.Play(h.jumpSound)
	h.play(h.jumpAnim)
}

func (h *Hero) stopJump() {
	if !h.inAir {
		return
	}
	h.inAir = false
	if h.animator != nil && h.animator.Playing(h.jumpAnim) {
		h.animator.Reset()
	}
}

// Crawl turns the hero on its side.
func (h *Hero) Crawl() {
	if h.crawling {
		return
	}
	h.crawling = true
	h.body.SetAngle(h.rotation - math.Pi/2)
	h.play(h.crawlAnim)
}

// StopCrawl stands the hero back up.
func (h *Hero) StopCrawl() {
	if !h.crawling {
		return
	}
	h.crawling = false
	h.body.SetAngle(h.rotation)
	if h.animator != nil && h.animator.Playing(h.crawlAnim) {
		h.animator.Reset()
	}
}

// Throw launches a projectile from the level pool with a fixed velocity.
func (h *Hero) Throw(offX, offY, vx, vy float64) {
	h.level.pool.ThrowFixed(h, offX, offY, vx, vy)
}

// ThrowAt launches a projectile from the level pool toward x,y.
func (h *Hero) ThrowAt(offX, offY, x, y float64) {
	h.level.pool.ThrowAt(h, offX, offY, x, y)
}

func (h *Hero) play(an *Animation) {
	if an == nil {
		return
	}
	if h.animator == nil {
		h.animator = NewAnimator(nil)
	}
	h.animator.Play(an)
}

func (h *Hero) defeat(by *Enemy) {
	h.Remove(false)
	s := h.level.score
	if by != nil && by.defeatHeroText != "" {
		s.loseText = by.defeatHeroText
	}
	s.onHeroDefeated(h)
}

func (h *Hero) tick(dt float64) {
	if h.invincible <= 0 {
		return
	}
	h.invincible -= dt
	if h.invincible <= 0 {
		h.invincible = 0
		if h.animator != nil && h.animator.Playing(h.invincibleAnim) {
			h.animator.Reset()
		}
	}
}
