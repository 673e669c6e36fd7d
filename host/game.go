// Package host runs a lol game in an ebiten window: it feeds keyboard,
// mouse and touch input to the core, draws levels and overlays, plays sounds
// and reloads levels edited on disk.
package host

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/lol/assets"
	"github.com/milk9111/lol/config"
	"github.com/milk9111/lol/levels"
	"github.com/milk9111/lol/lol"
)

// Options configures a Game.
type Options struct {
	Assets   *assets.Loader
	// Catalog, when set, drops the specs of changed files before a replay.
	Catalog  *levels.Catalog
	Watchers []*levels.Watcher
	Debug    bool
}

// TicksPerSecond is the ebiten tick rate at which one Update advances the
// simulation by cfg.Step of wall time, keeping timers and physics in step.
func TicksPerSecond(cfg config.Game) int {
	if cfg.Step <= 0 {
		return ebiten.DefaultTPS
	}
	tps := int(math.Round(1 / cfg.Step))
	if tps < 1 {
		return 1
	}
	return tps
}

// Game adapts a lol.Game to ebiten.Game.
type Game struct {
	game     *lol.Game
	opts     Options
	tracker  *Tracker
	touchIDs []ebiten.TouchID
	render   renderer
	overlay  overlay
	music    music
	debug    bool
}

// NewGame registers the loader's sounds with g and shows the splash screen.
func NewGame(g *lol.Game, opts Options) *Game {
	if opts.Assets == nil {
		opts.Assets = assets.NewLoader("", audio.CurrentContext())
	}
	registerSounds(opts.Assets, g.Sounds())
	g.ShowSplash()
	return &Game{
		game:    g,
		opts:    opts,
		tracker: NewTracker(),
		render:  renderer{loader: opts.Assets},
		music:   music{loader: opts.Assets},
		debug:   opts.Debug,
	}
}

func (h *Game) Update() error {
	g := h.game
	h.reload()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		if g.HandleBack() {
			h.tracker.Reset()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		h.debug = !h.debug
	}
	if g.Quitting() {
		h.music.stop()
		return ebiten.Termination
	}

	if ui := h.overlay.sync(g); ui != nil && g.Mode() != lol.ModePlay {
		ui.Update()
		h.tracker.Reset()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.Pause("")
	}

	h.touchIDs = ebiten.AppendTouchIDs(h.touchIDs[:0])
	touches := h.tracker.Frame(pressedPointers(h.touchIDs))
	if g.Modal() == nil {
		h.keys().drive(firstHero(g.Level()))
	} else if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.DismissModal()
	}
	g.Update(touches)

	if l := g.Level(); l != nil {
		h.music.play(l.Music())
	} else {
		h.music.play("")
	}
	return nil
}

// reload replays the current level when its file or a script changed.
func (h *Game) reload() {
	for _, w := range h.opts.Watchers {
		for {
			ch, ok := w.Poll()
			if !ok {
				break
			}
			if h.opts.Catalog == nil {
				continue
			}
			h.opts.Catalog.Invalidate(ch)
			cur := h.game.LevelNumber()
			if h.game.Mode() == lol.ModePlay && ch.Affects(cur) {
				log.Info("host: reloading level", "level", cur, "file", ch.Path)
				h.game.PlayLevel(cur)
			}
		}
	}
}

func (h *Game) keys() keys {
	return keys{
		left:          ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		right:         ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		up:            ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW),
		down:          ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS),
		jump:          inpututil.IsKeyJustPressed(ebiten.KeySpace),
		crawl:         inpututil.IsKeyJustPressed(ebiten.KeyC),
		crawlReleased: inpututil.IsKeyJustReleased(ebiten.KeyC),
		throw:         inpututil.IsKeyJustPressed(ebiten.KeyF),
	}
}

func firstHero(l *lol.Level) *lol.Hero {
	if l == nil {
		return nil
	}
	for _, h := range l.Heroes() {
		if h.Visible() {
			return h
		}
	}
	return nil
}

func (h *Game) Draw(screen *ebiten.Image) {
	g := h.game
	if l := g.Level(); l != nil {
		h.render.drawLevel(screen, l)
		if h.debug {
			drawPhysicsDebug(screen, l)
		}
		drawHUD(screen, l)
	} else {
		screen.Fill(background)
	}
	if ui := h.overlay.sync(g); ui != nil {
		ui.Draw(screen)
	}
}

func (h *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	cfg := h.game.Config()
	return cfg.Width, cfg.Height
}

// Close stops the music and the file watchers.
func (h *Game) Close() {
	h.music.stop()
	for _, w := range h.opts.Watchers {
		if err := w.Close(); err != nil {
			log.Warn("host: close watcher", "err", err)
		}
	}
}
