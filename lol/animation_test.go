package lol

import (
	"testing"
	"time"
)

func TestAnimator(t *testing.T) {
	idle := Uniform(true, 100*time.Millisecond, "idle0", "idle1")
	jump := Uniform(false, 50*time.Millisecond, "jump0", "jump1")

	cases := []struct {
		name  string
		setup func(a *Animator)
		steps []time.Duration
		want  string
	}{
		{"default_first_frame", nil, nil, "idle0"},
		{"default_advances", nil, []time.Duration{100 * time.Millisecond}, "idle1"},
		{"default_loops", nil, []time.Duration{250 * time.Millisecond}, "idle0"},
		{"one_shot_plays", func(a *Animator) { a.Play(jump) }, []time.Duration{60 * time.Millisecond}, "jump1"},
		{"one_shot_falls_back", func(a *Animator) { a.Play(jump) }, []time.Duration{60 * time.Millisecond, 60 * time.Millisecond}, "idle0"},
		{"reset", func(a *Animator) {
			a.Play(jump)
			a.Reset()
		}, nil, "idle0"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := NewAnimator(idle)
			if c.setup != nil {
				c.setup(a)
			}
			for _, d := range c.steps {
				a.Advance(d)
			}
			if got := a.Image(); got != c.want {
				t.Fatalf("image = %q, want %q", got, c.want)
			}
		})
	}
}

func TestDisappearEffect(t *testing.T) {
	f := newFixture(t)
	l := f.level(t)
	o := l.MakeObstacleAsBox(0, 0, 1, 1, "rock")
	o.SetDisappearAnimation(Uniform(false, 50*time.Millisecond, "poof0", "poof1"))

	o.Remove(false)
	if len(l.Effects()) != 1 {
		t.Fatalf("expected a disappear effect")
	}
	for i := 0; i < 10; i++ {
		f.game.Update(nil)
	}
	if len(l.Effects()) != 0 {
		t.Fatalf("finished effect should be dropped")
	}

	q := l.MakeObstacleAsBox(3, 0, 1, 1, "rock")
	q.SetDisappearAnimation(Uniform(false, 50*time.Millisecond, "poof0"))
	q.Remove(true)
	if len(l.Effects()) != 0 {
		t.Fatalf("quiet removal must not leave an effect")
	}
}
