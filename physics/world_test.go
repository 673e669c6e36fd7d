package physics

import (
	"testing"

	"github.com/jakecoffman/cp"
)

type recordingListener struct {
	begins  int
	pairs   [][2]*Body
	enabled bool
}

func (r *recordingListener) BeginContact(a, b *Body, c Contact) {
	r.begins++
	r.pairs = append(r.pairs, [2]*Body{a, b})
}

func (r *recordingListener) PreSolve(a, b *Body, c Contact) bool {
	return r.enabled
}

func dropBoxOnGround(t *testing.T, enabled bool) (*Body, *recordingListener) {
	t.Helper()
	w := NewWorld(0, -10)
	rec := &recordingListener{enabled: enabled}
	w.SetContactListener(rec)

	ground := w.NewBody(BodyDef{Kind: Static, X: 0, Y: 0, Width: 10, Height: 1, Friction: 1})
	ground.UserData = "ground"
	box := w.NewBody(BodyDef{Kind: Dynamic, X: 0, Y: 2, Width: 1, Height: 1, Density: 1, Friction: 1})
	box.UserData = "box"

	for i := 0; i < 90; i++ {
		w.Step(1.0 / 45.0)
	}
	return box, rec
}

func TestContactListener(t *testing.T) {
	cases := []struct {
		name    string
		enabled bool
		check   func(t *testing.T, y float64)
	}{
		{"contact_enabled_box_rests", true, func(t *testing.T, y float64) {
			if y < 0.7 || y > 1.2 {
				t.Fatalf("expected box resting near y=1, got %v", y)
			}
		}},
		{"contact_disabled_box_falls_through", false, func(t *testing.T, y float64) {
			if y > -1 {
				t.Fatalf("expected box to fall through, got y=%v", y)
			}
		}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			box, rec := dropBoxOnGround(t, c.enabled)
			if rec.begins == 0 {
				t.Fatalf("expected at least one begin contact")
			}
			for _, p := range rec.pairs {
				if p[0] != box && p[1] != box {
					t.Fatalf("contact pair does not include the box")
				}
			}
			c.check(t, box.Position().Y)
		})
	}
}

func TestBodyEnableDisable(t *testing.T) {
	w := NewWorld(0, -10)
	rec := &recordingListener{enabled: true}
	w.SetContactListener(rec)

	w.NewBody(BodyDef{Kind: Static, X: 0, Y: 0, Width: 10, Height: 1})
	box := w.NewBody(BodyDef{Kind: Dynamic, X: 0, Y: 2, Width: 1, Height: 1, Density: 1})
	box.SetEnabled(false)
	if box.Enabled() {
		t.Fatalf("box should be disabled")
	}

	for i := 0; i < 90; i++ {
		w.Step(1.0 / 45.0)
	}
	if rec.begins != 0 {
		t.Fatalf("disabled body produced %d contacts", rec.begins)
	}
	if y := box.Position().Y; y != 2 {
		t.Fatalf("disabled body moved to y=%v", y)
	}

	box.Destroy()
	if !box.Destroyed() || box.Enabled() {
		t.Fatalf("destroyed body should stay disabled")
	}
	box.SetEnabled(true)
	if box.Enabled() {
		t.Fatalf("destroyed body must not be re-enabled")
	}
}

func TestGravityToggle(t *testing.T) {
	w := NewWorld(0, -10)
	b := w.NewBody(BodyDef{Kind: Dynamic, X: 0, Y: 0, Width: 1, Height: 1, Density: 1})
	b.SetGravityEnabled(false)
	b.SetVelocity(1, 0)
	for i := 0; i < 45; i++ {
		w.Step(1.0 / 45.0)
	}
	p := b.Position()
	if p.Y < -0.001 || p.Y > 0.001 {
		t.Fatalf("gravity-free body drifted vertically to %v", p.Y)
	}
	if p.X < 0.9 || p.X > 1.1 {
		t.Fatalf("expected x near 1 after one second, got %v", p.X)
	}
}

func TestJoints(t *testing.T) {
	w := NewWorld(0, 0)
	a := w.NewBody(BodyDef{Kind: Dynamic, X: 0, Y: 0, Width: 1, Height: 1, Density: 1})
	b := w.NewBody(BodyDef{Kind: Dynamic, X: 1, Y: 0, Width: 1, Height: 1, Density: 1})

	p := cp.Vector{X: 0.5, Y: 0}
	weld := w.Weld(a, b, p)
	dist := w.Distance(a, b, p, p)
	if weld == nil || dist == nil {
		t.Fatalf("expected joints to be created")
	}
	if len(a.Joints()) != 2 || len(b.Joints()) != 2 {
		t.Fatalf("expected 2 joints per body, got %d and %d", len(a.Joints()), len(b.Joints()))
	}

	w.RemoveJoint(weld)
	if !weld.Removed() || len(a.Joints()) != 1 || len(b.Joints()) != 1 {
		t.Fatalf("weld not removed cleanly")
	}

	b.SetEnabled(false)
	if !dist.Removed() || len(a.Joints()) != 0 {
		t.Fatalf("disabling a body should drop its joints")
	}
}
