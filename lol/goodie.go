package lol

// Goodie is collected by heroes. Its effect is applied by the hero.
type Goodie struct {
	Actor

	score         [4]int
	strengthBoost int
	invincibility float64
}

// Score returns the per-type counts the goodie adds.
func (g *Goodie) Score() [4]int { return g.score }

// SetScore sets the per-type counts the goodie adds.
func (g *Goodie) SetScore(a, b, c, d int) { g.score = [4]int{a, b, c, d} }

func (g *Goodie) SetStrengthBoost(n int) { g.strengthBoost = n }

// SetInvincibilityDuration grants seconds of invincibility on collection.
func (g *Goodie) SetInvincibilityDuration(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	g.invincibility = seconds
}
