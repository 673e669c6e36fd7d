package media

import "testing"

type countingSound struct{ plays int }

func (c *countingSound) Play() { c.plays++ }

func TestLibraryFailSoft(t *testing.T) {
	lib := NewLibrary[Sound]("sound")
	hit := &countingSound{}
	lib.Register("hit", hit)

	cases := []struct {
		name  string
		key   string
		plays int
	}{
		{"registered", "hit", 1},
		{"missing_is_nil", "nope", 0},
		{"empty_name", "", 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			hit.plays = 0
			Play(lib.Get(c.key))
			if hit.plays != c.plays {
				t.Fatalf("expected %d plays, got %d", c.plays, hit.plays)
			}
		})
	}

	if names := lib.Names(); len(names) != 1 || names[0] != "hit" {
		t.Fatalf("unexpected names %v", names)
	}

	var nilLib *Library[Sound]
	if nilLib.Get("x") != nil {
		t.Fatalf("nil library should return nil")
	}
}
