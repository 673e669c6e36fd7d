package lol

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/lol/physics"
)

func TestPassThrough(t *testing.T) {
	cases := []struct {
		name   string
		a, b   int
		enable bool
	}{
		{"same_group", 3, 3, false},
		{"different_groups", 3, 4, true},
		{"zero_is_no_group", 0, 0, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t)
			l := f.level(t)
			a := l.MakeHeroAsBox(0, 0, 1, 1, "")
			b := l.MakeObstacleAsBox(0, -1, 5, 1, "")
			a.SetPassThrough(c.a)
			b.SetPassThrough(c.b)
			if got := l.PreSolve(a.body, b.body, physics.Contact{}); got != c.enable {
				t.Fatalf("PreSolve = %v, want %v", got, c.enable)
			}
		})
	}
}

func TestOneSided(t *testing.T) {
	cases := []struct {
		name   string
		side   Side
		vx, vy float64
		enable bool
	}{
		{"top_falling_onto", SideTop, 0, -3, true},
		{"top_jumping_through", SideTop, 0, 3, false},
		{"top_resting", SideTop, 0, 0, true},
		{"bottom_rising_into", SideBottom, 0, 3, true},
		{"bottom_falling_through", SideBottom, 0, -3, false},
		{"right_moving_left", SideRight, -3, 0, true},
		{"right_moving_right", SideRight, 3, 0, false},
		{"left_moving_right", SideLeft, 3, 0, true},
		{"left_moving_left", SideLeft, -3, 0, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t)
			l := f.level(t)
			platform := l.MakeObstacleAsBox(0, 0, 4, 1, "")
			platform.SetOneSided(c.side)
			hero := l.MakeHeroAsBox(1, 1, 1, 1, "")
			hero.body.SetVelocity(c.vx, c.vy)

			contact := physics.Contact{Points: []cp.Vector{{X: 1.5, Y: 1}, {X: 2, Y: 1}}}
			if got := l.PreSolve(platform.body, hero.body, contact); got != c.enable {
				t.Fatalf("PreSolve = %v, want %v", got, c.enable)
			}
			if got := l.PreSolve(hero.body, platform.body, contact.Swapped()); got != c.enable {
				t.Fatalf("swapped PreSolve = %v, want %v", got, c.enable)
			}
		})
	}
}

func TestStickyDeferredAndGrace(t *testing.T) {
	f := newFixture(t)
	l := f.level(t)
	floor := l.MakeObstacleAsBox(0, 0, 4, 1, "")
	floor.SetSticky(SideTop)
	hero := l.MakeHeroAsBox(1, 1, 1, 1, "")
	hero.SetJumpImpulses(0, 5)
	hero.body.SetVelocity(2, 0)

	contact := physics.Contact{Points: []cp.Vector{{X: 1.5, Y: 1}}}
	if !l.PreSolve(floor.body, hero.body, contact) {
		t.Fatalf("sticky contact must stay enabled")
	}
	if hero.Stuck() {
		t.Fatalf("joints must not be created inside the solver callback")
	}
	if l.oneTime.Len() != 1 {
		t.Fatalf("expected one deferred stick event, got %d", l.oneTime.Len())
	}
	l.oneTime.Drain()
	if !hero.Stuck() {
		t.Fatalf("hero should be stuck after drain")
	}
	if v := hero.Velocity(); v.X != 0 || v.Y != 0 {
		t.Fatalf("stuck hero still moving %v", v)
	}

	l.PreSolve(floor.body, hero.body, contact)
	if l.oneTime.Len() != 0 {
		t.Fatalf("already stuck hero must not queue another stick")
	}

	hero.Jump()
	if hero.Stuck() {
		t.Fatalf("jump should release sticky joints")
	}
	l.PreSolve(floor.body, hero.body, contact)
	if l.oneTime.Len() != 0 {
		t.Fatalf("stick inside the post-jump grace period")
	}

	l.now += 2 * stickyGrace
	l.PreSolve(floor.body, hero.body, contact)
	if l.oneTime.Len() != 1 {
		t.Fatalf("expected stick after the grace period")
	}
	l.oneTime.Clear()
}

func TestStickyWrongSide(t *testing.T) {
	f := newFixture(t)
	l := f.level(t)
	wall := l.MakeObstacleAsBox(0, 0, 1, 4, "")
	wall.SetSticky(SideLeft)
	hero := l.MakeHeroAsBox(1, 1, 1, 1, "")

	l.PreSolve(wall.body, hero.body, physics.Contact{Points: []cp.Vector{{X: 1, Y: 1.5}}})
	if l.oneTime.Len() != 0 {
		t.Fatalf("hero on the right side must not stick to a left-sticky wall")
	}

	hero.SetPosition(-1, 1)
	l.PreSolve(wall.body, hero.body, physics.Contact{Points: []cp.Vector{{X: 0, Y: 1.5}}})
	if l.oneTime.Len() != 1 {
		t.Fatalf("hero against the left side should stick")
	}
}
