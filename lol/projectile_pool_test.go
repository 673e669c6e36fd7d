package lol

import (
	"math"
	"testing"
)

func visibleCount(pool *ProjectilePool) int {
	n := 0
	for _, p := range pool.Projectiles() {
		if p.Visible() {
			n++
		}
	}
	return n
}

func TestPoolBackpressure(t *testing.T) {
	f := newFixture(t)
	l := f.level(t)
	hero := l.MakeHeroAsBox(0, 0, 1, 1, "")
	pool := l.ConfigureProjectiles(1, 0.2, 0.2, "", 1, 0, false)

	pool.ThrowFixed(hero, 3, 0, 5, 0)
	pool.ThrowFixed(hero, 3, 0, 5, 0)
	if n := visibleCount(pool); n != 1 {
		t.Fatalf("expected 1 projectile in flight, got %d", n)
	}

	pool.Projectiles()[0].Remove(true)
	pool.ThrowFixed(hero, 3, 0, 5, 0)
	if n := visibleCount(pool); n != 1 {
		t.Fatalf("expected the slot to be reused, got %d visible", n)
	}
}

func TestPoolRemainingShots(t *testing.T) {
	f := newFixture(t)
	l := f.level(t)
	hero := l.MakeHeroAsBox(0, 0, 1, 1, "")
	pool := l.ConfigureProjectiles(2, 0.2, 0.2, "", 1, 0, false)
	pool.SetNumberOfProjectiles(1)

	pool.ThrowFixed(hero, 3, 0, 5, 0)
	pool.ThrowFixed(hero, 3, 0, 5, 0)
	if n := visibleCount(pool); n != 1 {
		t.Fatalf("expected one throw allowed, got %d", n)
	}
	if pool.Remaining() != 0 {
		t.Fatalf("remaining = %d, want 0", pool.Remaining())
	}
}

func TestPoolRange(t *testing.T) {
	f := newFixture(t)
	l := f.level(t)
	hero := l.MakeHeroAsBox(0, 0, 1, 1, "")
	pool := l.ConfigureProjectiles(1, 0.2, 0.2, "", 1, 0, false)
	pool.SetRange(1)

	pool.ThrowFixed(hero, 3, 0, 10, 0)
	p := pool.Projectiles()[0]
	for i := 0; i < 20 && p.Visible(); i++ {
		f.game.Update(nil)
	}
	if p.Visible() {
		t.Fatalf("projectile should be removed beyond its range")
	}
	if p.Body().Enabled() {
		t.Fatalf("out of range projectile must have its body disabled")
	}
	if d := p.Center().Distance(p.Origin()); d < 1 || d > 1.5 {
		t.Fatalf("removed at distance %v, expected just past 1", d)
	}
}

func TestPoolReconfigure(t *testing.T) {
	f := newFixture(t)
	l := f.level(t)
	hero := l.MakeHeroAsBox(0, 0, 1, 1, "")
	l.ConfigureProjectiles(1, 0.2, 0.2, "", 1, 0, false)
	pool := l.ConfigureProjectiles(1, 0.2, 0.2, "", 1, 0, false)
	if len(l.repeat) != 0 {
		t.Fatalf("configuring projectiles registered %d repeat events", len(l.repeat))
	}

	pool.SetRange(1)
	pool.ThrowFixed(hero, 3, 0, 10, 0)
	p := pool.Projectiles()[0]
	for i := 0; i < 20 && p.Visible(); i++ {
		f.game.Update(nil)
	}
	if p.Visible() {
		t.Fatalf("range should be enforced on the current pool")
	}
}

func TestPoolThrowAt(t *testing.T) {
	cases := []struct {
		name  string
		setup func(pp *ProjectilePool)
		speed float64
	}{
		{"fixed_speed", func(pp *ProjectilePool) { pp.SetFixedVelocity(4) }, 4},
		{"multiplier", func(pp *ProjectilePool) { pp.SetVelocityMultiplier(2) }, 20},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t)
			l := f.level(t)
			hero := l.MakeHeroAsBox(0, 0, 1, 1, "")
			pool := l.ConfigureProjectiles(1, 0.2, 0.2, "", 1, 0, false)
			c.setup(pool)
			pool.SetRotateWithDirection(true)

			hero.ThrowAt(0, 0, 6, 8)
			p := pool.Projectiles()[0]
			v := p.Velocity()
			if got := math.Hypot(v.X, v.Y); math.Abs(got-c.speed) > 1e-9 {
				t.Fatalf("speed = %v, want %v", got, c.speed)
			}
			if math.Abs(v.X*8-v.Y*6) > 1e-9 {
				t.Fatalf("velocity %v does not point at the target", v)
			}
		})
	}
}

func TestDefeatedHeroCannotThrow(t *testing.T) {
	f := newFixture(t)
	l := f.level(t)
	hero := l.MakeHeroAsBox(0, 0, 1, 1, "")
	pool := l.ConfigureProjectiles(1, 0.2, 0.2, "", 1, 0, false)
	hero.Remove(true)
	pool.ThrowFixed(hero, 3, 0, 5, 0)
	if visibleCount(pool) != 0 {
		t.Fatalf("removed hero threw a projectile")
	}
}

func TestPoolSizeMustBePositive(t *testing.T) {
	f := newFixture(t)
	l := f.level(t)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for empty pool")
		}
	}()
	l.ConfigureProjectiles(0, 0.2, 0.2, "", 1, 0, false)
}
