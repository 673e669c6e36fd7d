package levels

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestChangeOf(t *testing.T) {
	cases := []struct {
		path  string
		level int
		ok    bool
	}{
		{"levels/level1.yaml", 1, true},
		{"levels/Level12.yml", 12, true},
		{"levels/scripts/level2.tengo", AllLevels, true},
		{"levels/theme.yaml", 0, false},
		{"levels/level0.yaml", 0, false},
		{"levels/notes.txt", 0, false},
	}
	for _, c := range cases {
		t.Run(filepath.Base(c.path), func(t *testing.T) {
			got, ok := ChangeOf(c.path)
			if ok != c.ok || got.Level != c.level {
				t.Fatalf("expected level %d ok %v, got %+v ok %v", c.level, c.ok, got, ok)
			}
			if ok && got.Path != c.path {
				t.Fatalf("expected path %s, got %s", c.path, got.Path)
			}
		})
	}
}

func TestChangeAffects(t *testing.T) {
	if !(Change{Level: 2}).Affects(2) || (Change{Level: 2}).Affects(3) {
		t.Fatalf("a spec change affects only its own level")
	}
	if !(Change{Level: AllLevels}).Affects(7) {
		t.Fatalf("a script change affects every level")
	}
}

func TestWatcherSettlesLevelFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := filepath.Join(dir, "level1.yaml")
	for _, body := range []string{"name: a\n", "name: b\n", "name: c\n"} {
		if err := os.WriteFile(want, []byte(body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	select {
	case got := <-w.Changes:
		if got.Path != want || got.Level != 1 {
			t.Fatalf("expected level 1 at %s, got %+v", want, got)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatalf("no change for %s", want)
	}

	select {
	case got := <-w.Changes:
		t.Fatalf("repeated writes should be reported once, got another %+v", got)
	case <-time.After(3 * settle):
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if _, ok := w.Poll(); ok {
		t.Fatalf("closed watcher should have nothing to poll")
	}
}

func TestWatcherMissingDir(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected an error for a missing directory")
	}
}
