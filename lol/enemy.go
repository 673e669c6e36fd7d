package lol

// Enemy damages heroes and is defeated by projectiles, crawling, jumping or
// invincibility.
type Enemy struct {
	Actor

	damage              int
	defeatByCrawl       bool
	defeatByJump        bool
	immuneInvincibility bool
	alwaysDamages       bool
	defeatHeroText      string

	onDefeat func(e *Enemy)
}

// Damage returns the remaining damage. An enemy at or below zero is defeated.
func (e *Enemy) Damage() int { return e.damage }

func (e *Enemy) SetDamage(n int) { e.damage = n }

// SetDefeatByCrawl lets a crawling hero defeat the enemy.
func (e *Enemy) SetDefeatByCrawl() { e.defeatByCrawl = true }

// SetDefeatByJump lets a hero landing on top defeat the enemy.
func (e *Enemy) SetDefeatByJump() { e.defeatByJump = true }

// SetImmuneToInvincibility keeps an invincible hero from defeating the enemy.
func (e *Enemy) SetImmuneToInvincibility() { e.immuneInvincibility = true }

// SetAlwaysDoesDamage makes the enemy defeat heroes even when invincible.
func (e *Enemy) SetAlwaysDoesDamage() { e.alwaysDamages = true }

// SetDefeatHeroText is shown on the lose screen when this enemy defeats the
// last hero.
func (e *Enemy) SetDefeatHeroText(text string) { e.defeatHeroText = text }

// SetDefeatTrigger fires the enemy-defeat trigger id when the enemy falls.
func (e *Enemy) SetDefeatTrigger(id int) {
	e.onDefeat = func(en *Enemy) {
		l := en.level
		l.game.author.OnEnemyDefeatTrigger(id, l.number, en)
	}
}

// SetDefeatCallback replaces the defeat callback.
func (e *Enemy) SetDefeatCallback(fn func(e *Enemy)) { e.onDefeat = fn }

// Defeat removes the enemy, optionally credits the score, and runs the
// defeat callback.
func (e *Enemy) Defeat(increaseScore bool) {
	if e.removed {
		return
	}
	e.Remove(false)
	if increaseScore {
		e.level.score.onEnemyDefeated()
	}
	if e.onDefeat != nil {
		e.onDefeat(e)
	}
}
