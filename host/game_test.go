package host

import (
	"strings"
	"testing"

	"github.com/milk9111/lol/config"
	"github.com/milk9111/lol/lol"
	"github.com/milk9111/lol/timer"
)

type heroLevel struct {
	lol.NopTriggers
	pre string
}

func (a heroLevel) ConfigureLevel(which int, l *lol.Level) {
	h := l.MakeHeroAsBox(1, 1, 1, 1, "")
	h.SetStrength(3)
	h.SetJumpImpulses(0, 5)
	l.Score().SetVictoryGoodies(2, 0, 0, 0)
	l.SetLoseCountdown(10, "")
	if a.pre != "" {
		l.SetPreScene(a.pre)
	}
}

func newTestGame(author lol.Author) *lol.Game {
	cfg := config.Default()
	cfg.GravityY = 0
	g := lol.NewGame(cfg, author, lol.NewMemoryStore())
	g.SetClock(timer.NewManualClock())
	return g
}

func TestOverlayKey(t *testing.T) {
	g := newTestGame(heroLevel{pre: "Go!"})
	cases := []struct {
		name string
		step func()
		want string
	}{
		{"splash", g.ShowSplash, "splash"},
		{"chooser", g.ShowChooser, "chooser:1"},
		{"pre_scene", func() { g.PlayLevel(1) }, "scene:1:0:false:Go!"},
		{"play", g.DismissModal, ""},
		{"pause", func() { g.Pause("rest") }, "scene:1:1:false:rest"},
	}
	for _, c := range cases {
		c.step()
		if got := overlayKey(g); got != c.want {
			t.Fatalf("%s: expected %q, got %q", c.name, c.want, got)
		}
	}
}

func TestHUDText(t *testing.T) {
	g := newTestGame(heroLevel{})
	g.PlayLevel(1)
	g.Level().Score().AddGoodies([4]int{1, 0, 0, 0})
	text := hudText(g.Level())
	for _, want := range []string{"Level 1", "Goodies 1 0 0 0", "Hero 1 strength 3", "Time left 10s"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in HUD:\n%s", want, text)
		}
	}
	if strings.Contains(text, "Shots") {
		t.Fatalf("level without projectiles should not show shots:\n%s", text)
	}
}

func TestKeysDrive(t *testing.T) {
	g := newTestGame(heroLevel{})
	g.PlayLevel(1)
	h := firstHero(g.Level())
	if h == nil {
		t.Fatalf("expected a hero")
	}

	keys{right: true}.drive(h)
	if v := h.Velocity(); v.X != keySpeed {
		t.Fatalf("expected vx %v, got %v", float64(keySpeed), v.X)
	}
	keys{crawl: true}.drive(h)
	if !h.Crawling() {
		t.Fatalf("expected the hero to crawl")
	}
	keys{crawlReleased: true}.drive(h)
	if h.Crawling() {
		t.Fatalf("expected the hero to stand")
	}
	keys{jump: true}.drive(h)
	if !h.InAir() {
		t.Fatalf("expected the hero to jump")
	}
	keys{}.drive(nil)
}

func TestFirstHeroSkipsHidden(t *testing.T) {
	if firstHero(nil) != nil {
		t.Fatalf("nil level has no hero")
	}
	g := newTestGame(heroLevel{})
	g.PlayLevel(1)
	g.Level().Heroes()[0].Remove(true)
	if firstHero(g.Level()) != nil {
		t.Fatalf("removed hero should be skipped")
	}
}

func TestTicksPerSecond(t *testing.T) {
	cases := []struct {
		name string
		step float64
		want int
	}{
		{"default", config.Default().Step, 45},
		{"sixty", 1.0 / 60.0, 60},
		{"rounded", 0.0222222, 45},
		{"slow", 2, 1},
		{"unset", 0, 60},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Step = c.step
			if got := TicksPerSecond(cfg); got != c.want {
				t.Fatalf("expected %d ticks per second, got %d", c.want, got)
			}
		})
	}
}
