package lol

import (
	"testing"

	"github.com/milk9111/lol/physics"
)

func TestDispatchPrecedence(t *testing.T) {
	f := newFixture(t)
	l := f.level(t)

	hero := l.MakeHeroAsBox(0, 0, 1, 1, "")
	enemy := l.MakeEnemyAsBox(5, 0, 1, 1, "")
	goodie := l.MakeGoodieAsBox(10, 0, 1, 1, "")
	obstacle := l.MakeObstacleAsBox(15, 0, 1, 1, "")
	dest := l.MakeDestinationAsBox(20, 0, 1, 1, "")
	pool := l.ConfigureProjectiles(1, 0.2, 0.2, "", 1, 0, false)
	proj := pool.Projectiles()[0]

	cases := []struct {
		name    string
		a, b    Entity
		primary Entity
	}{
		{"goodie_then_hero", goodie, hero, hero},
		{"enemy_then_hero", enemy, hero, hero},
		{"obstacle_then_enemy", obstacle, enemy, enemy},
		{"projectile_then_enemy", proj, enemy, enemy},
		{"obstacle_then_projectile", obstacle, proj, proj},
		{"destination_then_obstacle", dest, obstacle, nil},
		{"goodie_then_obstacle", goodie, obstacle, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l.oneTime.Clear()
			l.BeginContact(c.a.base().body, c.b.base().body, contactOf(c.a, c.b))
			pending := l.oneTime.Pending()
			if c.primary == nil {
				if len(pending) != 0 {
					t.Fatalf("expected no dispatch, got %d events", len(pending))
				}
				return
			}
			if len(pending) != 1 {
				t.Fatalf("expected 1 queued event, got %d", len(pending))
			}
			ev, ok := pending[0].(collisionEvent)
			if !ok {
				t.Fatalf("expected collisionEvent, got %T", pending[0])
			}
			if ev.primary != c.primary {
				t.Fatalf("expected primary %T, got %T", c.primary, ev.primary)
			}
		})
	}
	l.oneTime.Clear()
}

func TestBeginContactDefersMutation(t *testing.T) {
	f := newFixture(t)
	l := f.level(t)
	hero := l.MakeHeroAsBox(0, 0, 1, 1, "")
	goodie := l.MakeGoodieAsBox(0, 0, 1, 1, "")

	l.BeginContact(goodie.body, hero.body, contactOf(goodie, hero))
	if !goodie.Visible() || l.score.Goodies()[0] != 0 {
		t.Fatalf("contact callback mutated state before drain")
	}
	l.oneTime.Drain()
	if goodie.Visible() || l.score.Goodies()[0] != 1 {
		t.Fatalf("expected goodie collected after drain")
	}
}

func TestHeroEnemy(t *testing.T) {
	cases := []struct {
		name         string
		strength     int
		damage       int
		setup        func(h *Hero, e *Enemy)
		heroDefeated bool
		enemyDefeat  bool
		strengthLeft int
	}{
		{name: "damage_equals_strength", strength: 3, damage: 3, heroDefeated: true, strengthLeft: 3},
		{name: "damage_above_strength", strength: 2, damage: 5, heroDefeated: true, strengthLeft: 2},
		{name: "damage_below_strength", strength: 5, damage: 2, enemyDefeat: true, strengthLeft: 3},
		{
			name: "invincible_defeats_enemy", strength: 1, damage: 9, enemyDefeat: true, strengthLeft: 1,
			setup: func(h *Hero, e *Enemy) { h.AddInvincibility(5) },
		},
		{
			name: "invincible_vs_immune_no_effect", strength: 1, damage: 9, strengthLeft: 1,
			setup: func(h *Hero, e *Enemy) {
				h.AddInvincibility(5)
				e.SetImmuneToInvincibility()
			},
		},
		{
			name: "always_damages_beats_invincibility", strength: 10, damage: 1, heroDefeated: true, strengthLeft: 10,
			setup: func(h *Hero, e *Enemy) {
				h.AddInvincibility(5)
				e.SetAlwaysDoesDamage()
			},
		},
		{
			name: "crawl_defeat", strength: 1, damage: 9, enemyDefeat: true, strengthLeft: 1,
			setup: func(h *Hero, e *Enemy) {
				e.SetDefeatByCrawl()
				h.Crawl()
			},
		},
		{
			name: "jump_defeat_from_above", strength: 1, damage: 9, enemyDefeat: true, strengthLeft: 1,
			setup: func(h *Hero, e *Enemy) {
				e.SetDefeatByJump()
				h.SetPosition(0, 0.8)
				h.inAir = true
			},
		},
		{
			name: "jump_from_below_hurts", strength: 1, damage: 9, heroDefeated: true, strengthLeft: 1,
			setup: func(h *Hero, e *Enemy) {
				e.SetDefeatByJump()
				h.SetPosition(0, -0.8)
				h.inAir = true
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t)
			l := f.level(t)
			hero := l.MakeHeroAsBox(0, 0, 1, 1, "")
			l.MakeHeroAsBox(30, 0, 1, 1, "")
			enemy := l.MakeEnemyAsBox(0, 0, 1, 1, "")
			hero.SetStrength(c.strength)
			enemy.SetDamage(c.damage)
			if c.setup != nil {
				c.setup(hero, enemy)
			}

			collide(l, enemy, hero)

			if got := hero.Removed(); got != c.heroDefeated {
				t.Fatalf("hero defeated = %v, want %v", got, c.heroDefeated)
			}
			if got := enemy.Removed(); got != c.enemyDefeat {
				t.Fatalf("enemy defeated = %v, want %v", got, c.enemyDefeat)
			}
			if hero.Strength() != c.strengthLeft {
				t.Fatalf("strength = %d, want %d", hero.Strength(), c.strengthLeft)
			}
			wantDefeated := 0
			if c.enemyDefeat {
				wantDefeated = 1
			}
			if l.score.EnemiesDefeated() != wantDefeated {
				t.Fatalf("enemies defeated = %d, want %d", l.score.EnemiesDefeated(), wantDefeated)
			}
		})
	}
}

func TestEnemyProjectileDamage(t *testing.T) {
	f := newFixture(t)
	l := f.level(t)
	hero := l.MakeHeroAsBox(0, 0, 1, 1, "")
	enemy := l.MakeEnemyAsBox(20, 0, 1, 1, "")
	enemy.SetDamage(5)
	enemy.SetDefeatTrigger(7)
	pool := l.ConfigureProjectiles(3, 0.2, 0.2, "", 2, 0, false)

	var thrown []*Projectile
	for i := 0; i < 3; i++ {
		hero.Throw(3, 0, 1, 0)
		p := pool.Projectiles()[i]
		if !p.Visible() {
			t.Fatalf("projectile %d not thrown", i)
		}
		thrown = append(thrown, p)
	}

	wantDamage := []int{3, 1, -1}
	for i, p := range thrown {
		collide(l, p, enemy)
		if enemy.Damage() != wantDamage[i] {
			t.Fatalf("after hit %d damage = %d, want %d", i+1, enemy.Damage(), wantDamage[i])
		}
	}

	want := []RemovalKind{RemovedHidden, RemovedHidden, RemovedDestroyed}
	for i, p := range thrown {
		if p.Visible() {
			t.Fatalf("projectile %d still visible", i)
		}
		if p.Removal() != want[i] {
			t.Fatalf("projectile %d removal = %v, want %v", i, p.Removal(), want[i])
		}
	}
	if !enemy.Removed() || l.score.EnemiesDefeated() != 1 {
		t.Fatalf("expected enemy defeated once, removed=%v defeated=%d", enemy.Removed(), l.score.EnemiesDefeated())
	}
	if len(f.author.enemyDefeats) != 1 || f.author.enemyDefeats[0] != 7 {
		t.Fatalf("expected defeat trigger 7, got %v", f.author.enemyDefeats)
	}
}

func TestGoodieCollection(t *testing.T) {
	f := newFixture(t)
	l := f.level(t)
	hero := l.MakeHeroAsBox(0, 0, 1, 1, "")
	a := l.MakeGoodieAsBox(0, 0, 1, 1, "")
	a.SetScore(1, 2, 0, 0)
	a.SetStrengthBoost(2)
	a.SetInvincibilityDuration(2)
	b := l.MakeGoodieAsBox(0, 0, 1, 1, "")
	b.SetScore(1, 2, 0, 3)
	b.SetInvincibilityDuration(3)

	collide(l, a, hero)
	collide(l, hero, b)
	collide(l, a, hero)

	if got := l.score.Goodies(); got != [4]int{2, 4, 0, 3} {
		t.Fatalf("goodies = %v", got)
	}
	if hero.Strength() != 3 {
		t.Fatalf("strength = %d, want 3", hero.Strength())
	}
	if hero.InvincibleRemaining() != 5 {
		t.Fatalf("invincibility = %v, want 5", hero.InvincibleRemaining())
	}
	if f.author.strengthChanges != 1 {
		t.Fatalf("expected one strength trigger, got %d", f.author.strengthChanges)
	}
}

func TestDestinationGating(t *testing.T) {
	f := newFixture(t)
	l := f.level(t)
	l.score.SetVictoryDestination(5)
	dest := l.MakeDestinationAsBox(0, 0, 1, 1, "")
	dest.SetActivationScore(1, 0, 0, 0)
	first := l.MakeHeroAsBox(0, 0, 1, 1, "")
	second := l.MakeHeroAsBox(0, 0, 1, 1, "")

	collide(l, dest, first)
	if first.Removed() || dest.Holding() != 0 {
		t.Fatalf("hero absorbed before activation")
	}

	l.score.AddGoodies([4]int{1, 0, 0, 0})
	collide(l, dest, first)
	if !first.Removed() || dest.Holding() != 1 || l.score.Arrivals() != 1 {
		t.Fatalf("expected first hero absorbed")
	}

	collide(l, dest, second)
	if second.Removed() || dest.Holding() != 1 {
		t.Fatalf("destination over capacity")
	}
}

func TestHeroObstacle(t *testing.T) {
	f := newFixture(t)
	l := f.level(t)
	hero := l.MakeHeroAsBox(0, 0, 1, 1, "")

	floor := l.MakeObstacleAsBox(0, -1, 10, 1, "")
	calls := 0
	floor.SetHeroCollisionCallback(func(o *Obstacle, h *Hero, _ physics.Contact) { calls++ })

	noJump := l.MakeObstacleAsBox(0, -1, 10, 1, "")
	noJump.SetNoReJump()

	hero.inAir = true
	hero.IncreaseRotation(1)
	collide(l, hero, noJump)
	if !hero.InAir() {
		t.Fatalf("no re-jump obstacle must keep hero airborne")
	}
	if hero.Rotation() != 0 {
		t.Fatalf("solid obstacle must reset rotation")
	}

	collide(l, floor, hero)
	if calls != 1 {
		t.Fatalf("expected hero callback once, got %d", calls)
	}
	if hero.InAir() {
		t.Fatalf("solid obstacle must end the jump")
	}

	trig := l.MakeObstacleAsBox(0, -1, 10, 1, "")
	trig.SetHeroCollisionTrigger(4, [4]int{1, 0, 0, 0}, 0)
	collide(l, hero, trig)
	if len(f.author.heroCollides) != 0 {
		t.Fatalf("trigger fired below activation")
	}
	l.score.AddGoodies([4]int{1, 0, 0, 0})
	collide(l, hero, trig)
	if len(f.author.heroCollides) != 1 || f.author.heroCollides[0] != 4 {
		t.Fatalf("expected hero-collide trigger 4, got %v", f.author.heroCollides)
	}
}

func TestProjectileObstacle(t *testing.T) {
	f := newFixture(t)
	l := f.level(t)
	hero := l.MakeHeroAsBox(0, 0, 1, 1, "")
	pool := l.ConfigureProjectiles(4, 0.2, 0.2, "", 1, 0, false)
	projectiles := pool.Projectiles()

	wall := l.MakeObstacleAsBox(10, 0, 1, 5, "")
	sensor := l.MakeObstacleAsBox(12, 0, 1, 5, "")
	sensor.SetCollisionEffect(false)
	owner := l.MakeObstacleAsBox(14, 0, 1, 5, "")
	owner.SetProjectileCollisionTrigger(9, [4]int{})

	for range projectiles {
		hero.Throw(3, 0, 1, 0)
	}

	collide(l, projectiles[0], wall)
	if projectiles[0].Visible() {
		t.Fatalf("projectile should disappear on solid obstacle")
	}

	collide(l, sensor, projectiles[1])
	if !projectiles[1].Visible() {
		t.Fatalf("projectile must ignore sensor obstacles")
	}

	collide(l, projectiles[2], owner)
	if !projectiles[2].Visible() {
		t.Fatalf("callback owns removal; projectile should stay")
	}
	if len(f.author.projectileHits) != 1 {
		t.Fatalf("expected projectile trigger, got %v", f.author.projectileHits)
	}

	collide(l, projectiles[3], projectiles[1])
	if projectiles[3].Visible() || projectiles[1].Visible() {
		t.Fatalf("projectiles should remove each other")
	}
}

func TestInvisibleEntitiesIgnored(t *testing.T) {
	f := newFixture(t)
	l := f.level(t)
	hero := l.MakeHeroAsBox(0, 0, 1, 1, "")
	goodie := l.MakeGoodieAsBox(0, 0, 1, 1, "")

	l.BeginContact(hero.body, goodie.body, contactOf(hero, goodie))
	l.BeginContact(goodie.body, hero.body, contactOf(goodie, hero))
	l.oneTime.Drain()

	if got := l.score.Goodies()[0]; got != 1 {
		t.Fatalf("goodie counted %d times", got)
	}
}

func TestProjectileSurvive(t *testing.T) {
	f := newFixture(t)
	l := f.level(t)
	hero := l.MakeHeroAsBox(0, 0, 1, 1, "")
	pool := l.ConfigureProjectiles(2, 0.2, 0.2, "", 1, 0, false)
	pool.SetSurviveProjectileCollisions(true)
	projectiles := pool.Projectiles()
	hero.Throw(3, 0, 1, 0)
	hero.Throw(3, 0, 1, 0)

	collide(l, projectiles[0], projectiles[1])
	if !projectiles[0].Visible() || !projectiles[1].Visible() {
		t.Fatalf("projectiles should pass through each other")
	}
}

func TestReachedSide(t *testing.T) {
	cases := []struct {
		name           string
		side           Side
		bx, by, bw, bh float64
		want           bool
	}{
		{"top", SideTop, 0.5, 2, 1, 1, true},
		{"top_beside", SideTop, 2.5, 2, 1, 1, false},
		{"top_corner", SideTop, 2, 2, 1, 1, false},
		{"bottom", SideBottom, 0.5, -1, 1, 1, true},
		{"right", SideRight, 2, 0.5, 1, 1, true},
		{"right_above", SideRight, 2, 2.5, 1, 1, false},
		{"left", SideLeft, -1, 0.5, 1, 1, true},
		{"left_inside", SideLeft, 0.5, 0.5, 1, 1, false},
		{"none", SideNone, 0.5, 2, 1, 1, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := reachedSide(c.side, 0, 0, 2, 2, c.bx, c.by, c.bw, c.bh); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}
