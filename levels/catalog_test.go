package levels

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/lol/lol"
	"github.com/milk9111/lol/script"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

type recordingFallback struct {
	lol.NopTriggers
	timers []int
}

func (r *recordingFallback) OnTimerTrigger(id, level int) {
	r.timers = append(r.timers, id)
}

func TestCatalogDiskOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "level1.yaml", "name: From Disk\nheroes: [{x: 1, y: 1}]\n")

	cat := NewCatalog(Source{Dir: dir}, nil)
	spec, err := cat.Spec(1)
	if err != nil {
		t.Fatalf("spec 1: %v", err)
	}
	if spec.Name != "From Disk" {
		t.Fatalf("expected the disk copy, got %q", spec.Name)
	}

	embedded, err := cat.Spec(2)
	if err != nil {
		t.Fatalf("spec 2: %v", err)
	}
	if embedded.Name != "Collector" {
		t.Fatalf("expected the embedded level 2, got %q", embedded.Name)
	}
}

func TestCatalogInvalidate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "level1.yaml", "name: Before\n")
	writeFile(t, dir, "level2.yaml", "name: Second\n")
	cat := NewCatalog(Source{Dir: dir}, nil)
	for _, n := range []int{1, 2} {
		if _, err := cat.Spec(n); err != nil {
			t.Fatalf("spec %d: %v", n, err)
		}
	}

	writeFile(t, dir, "level1.yaml", "name: After\n")
	writeFile(t, dir, "level2.yaml", "name: Second again\n")
	cat.Invalidate(Change{Path: filepath.Join(dir, "level1.yaml"), Level: 1})
	if spec, err := cat.Spec(1); err != nil || spec.Name != "After" {
		t.Fatalf("expected reloaded spec, got %+v, %v", spec, err)
	}
	if spec, _ := cat.Spec(2); spec.Name != "Second" {
		t.Fatalf("level 2 should stay cached, got %q", spec.Name)
	}

	cat.Invalidate(Change{Path: filepath.Join(dir, "scripts", "level2.tengo"), Level: AllLevels})
	if spec, _ := cat.Spec(2); spec.Name != "Second again" {
		t.Fatalf("a script change should drop every spec, got %q", spec.Name)
	}
}

func TestCatalogCount(t *testing.T) {
	if got := NewCatalog(Source{}, nil).Count(); got != 3 {
		t.Fatalf("expected 3 embedded levels, got %d", got)
	}

	dir := t.TempDir()
	writeFile(t, dir, "level4.yaml", "name: Extra\n")
	if got := NewCatalog(Source{Dir: dir}, nil).Count(); got != 4 {
		t.Fatalf("expected the disk level to extend the list, got %d", got)
	}
}

func TestCatalogScriptedLevel(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "level1.yaml", `
name: Scripted
script: timers.tengo
heroes: [{name: hero, x: 1, y: 1}]
timers:
  - {id: 1, delay: 0}
`)
	writeFile(t, dir, "scripts/timers.tengo", `
on_timer = func(engine, ev) {
	engine.add_goodies(0, 0, ev.id + 1)
}
`)

	fb := &recordingFallback{}
	cat := NewCatalog(Source{Dir: dir}, fb)
	g := newGame(t, cat)
	g.PlayLevel(1)

	if _, ok := cat.Triggers.(*script.Triggers); !ok {
		t.Fatalf("expected script triggers, got %T", cat.Triggers)
	}
	g.Update(nil)
	if got := g.Level().Score().Goodies()[2]; got != 2 {
		t.Fatalf("expected the script to add 2 goodies, got %d", got)
	}
	if len(fb.timers) != 0 {
		t.Fatalf("handled timer reached the fallback: %v", fb.timers)
	}
}

func TestCatalogFallsBackWithoutScript(t *testing.T) {
	cases := []struct {
		name  string
		level string
	}{
		{"no_script", "heroes: [{x: 1, y: 1}]\ntimers: [{id: 5, delay: 0}]\n"},
		{"missing_script", "script: nope.tengo\nheroes: [{x: 1, y: 1}]\ntimers: [{id: 5, delay: 0}]\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "level1.yaml", c.level)
			fb := &recordingFallback{}
			cat := NewCatalog(Source{Dir: dir}, fb)
			g := newGame(t, cat)
			g.PlayLevel(1)
			g.Update(nil)
			if len(fb.timers) != 1 || fb.timers[0] != 5 {
				t.Fatalf("expected timer 5 at the fallback, got %v", fb.timers)
			}
		})
	}
}

func TestCatalogBrokenLevelIsEmpty(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "level1.yaml", "victory: {mode: nonsense}\n")
	cat := NewCatalog(Source{Dir: dir}, nil)
	g := newGame(t, cat)
	g.PlayLevel(1)

	if cat.Built() != nil {
		t.Fatalf("broken level should not build")
	}
	if g.Level() == nil || len(g.Level().Heroes()) != 0 {
		t.Fatalf("expected an empty level")
	}
}

func TestEmbeddedLevelsBuild(t *testing.T) {
	cat := NewCatalog(Source{}, nil)
	for n := 1; n <= 3; n++ {
		g := newGame(t, cat)
		g.PlayLevel(n)
		if cat.Built() == nil {
			t.Fatalf("level %d did not build", n)
		}
		if len(g.Level().Heroes()) == 0 {
			t.Fatalf("level %d has no hero", n)
		}
	}
}
