// Package lol is the core of a small 2D game framework: physics-backed
// entities, the collision rules between them, level scoring, and the tick
// that ties physics, timers and deferred events together.
package lol

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/milk9111/lol/config"
	"github.com/milk9111/lol/media"
	"github.com/milk9111/lol/timer"
)

// Mode is the top-level screen the game shows.
type Mode int

const (
	ModeSplash Mode = iota
	ModeChooser
	ModePlay
)

func (m Mode) String() string {
	switch m {
	case ModeChooser:
		return "chooser"
	case ModePlay:
		return "play"
	default:
		return "splash"
	}
}

// SceneKind names a modal overlay.
type SceneKind int

const (
	ScenePre SceneKind = iota
	ScenePause
	ScenePost
)

// Scene is a modal overlay shown over a level. The simulation does not run
// while a scene is up.
type Scene struct {
	Kind SceneKind
	Text string
	Win  bool
}

// Game is the explicit context of a running game: configuration, the timer
// queue shared by all levels, persistence, and the current level.
type Game struct {
	cfg    config.Game
	author Author
	store  Persistence
	timers *timer.Queue
	sounds *media.Library[media.Sound]

	mode     Mode
	level    *Level
	levelNum int

	modal      *Scene
	modalStart time.Duration

	backSeen bool
	lastBack time.Duration
	quit     func()
	quitting bool
}

// NewGame creates a game showing the splash screen. A nil author ignores
// triggers and a nil store keeps state in memory.
func NewGame(cfg config.Game, author Author, store Persistence) *Game {
	if author == nil {
		author = nopAuthor{}
	}
	if store == nil {
		store = NewMemoryStore()
	}
	return &Game{
		cfg:    cfg,
		author: author,
		store:  store,
		timers: timer.NewQueue(nil),
		sounds: media.NewLibrary[media.Sound]("sound"),
	}
}

// SetClock replaces the time source of the timer queue.
func (g *Game) SetClock(c timer.Clock) { g.timers.SetClock(c) }

// SetQuitHook installs the function DoQuit calls.
func (g *Game) SetQuitHook(fn func()) { g.quit = fn }

func (g *Game) Config() config.Game { return g.cfg }

func (g *Game) Mode() Mode { return g.mode }

// Level returns the level being played, or nil outside ModePlay.
func (g *Game) Level() *Level { return g.level }

func (g *Game) LevelNumber() int { return g.levelNum }

// Modal returns the overlay on screen, or nil.
func (g *Game) Modal() *Scene { return g.modal }

func (g *Game) Timers() *timer.Queue { return g.timers }

// Sounds returns the sound library. Hosts register sounds here before levels
// look them up by name.
func (g *Game) Sounds() *media.Library[media.Sound] { return g.sounds }

func (g *Game) Store() Persistence { return g.store }

// Quitting reports whether DoQuit was called.
func (g *Game) Quitting() bool { return g.quitting }

// PlayLevel discards the current level and starts level n.
func (g *Game) PlayLevel(n int) {
	g.timers.Clear()
	g.timers.Start()
	g.modal = nil

	l := newLevel(g, n)
	g.level = l
	g.levelNum = n
	g.mode = ModePlay
	log.Debug("lol: play level", "level", n)

	g.author.ConfigureLevel(n, l)
	if l.preScene != "" {
		g.showModal(&Scene{Kind: ScenePre, Text: l.preScene})
	}
}

// Update runs one tick: modal overlay, touches, physics step, one-time
// events including fired timers, repeat events, and the end-of-level
// transition.
func (g *Game) Update(touches []Touch) {
	if g.mode != ModePlay || g.level == nil {
		return
	}
	if g.modal != nil {
		for _, t := range touches {
			if t.Phase == TouchDown {
				g.DismissModal()
				break
			}
		}
		return
	}

	l := g.level
	l.handleTouches(touches)
	l.physicsStep()
	for _, fn := range g.timers.Poll() {
		l.oneTime.PushFunc(fn)
	}
	l.oneTime.Drain()
	l.runRepeat()
	if l.endGame != nil {
		l.endGame.Run()
	}
}

// Pause shows the pause scene with text.
func (g *Game) Pause(text string) {
	if g.mode != ModePlay || g.level == nil || g.modal != nil {
		return
	}
	g.showModal(&Scene{Kind: ScenePause, Text: text})
}

func (g *Game) showModal(s *Scene) {
	g.modal = s
	g.modalStart = g.timers.Clock().Now()
	g.timers.Stop()
}

// DismissModal closes the overlay. Pending timers are shifted by the time
// the overlay was up. Closing the post scene moves on: a win plays the next
// level or returns to the chooser after the last one, a loss replays.
func (g *Game) DismissModal() {
	s := g.modal
	if s == nil {
		return
	}
	g.modal = nil
	elapsed := g.timers.Clock().Now() - g.modalStart
	g.timers.Start()
	g.timers.Delay(elapsed.Milliseconds())

	if s.Kind != ScenePost {
		return
	}
	switch {
	case !s.Win:
		g.PlayLevel(g.levelNum)
	case g.levelNum >= g.cfg.NumLevels:
		g.ShowChooser()
	default:
		g.PlayLevel(g.levelNum + 1)
	}
}

// ShowChooser leaves any level and shows the level chooser.
func (g *Game) ShowChooser() {
	g.timers.Clear()
	g.timers.Start()
	g.level = nil
	g.modal = nil
	g.mode = ModeChooser
}

// ShowSplash shows the splash screen.
func (g *Game) ShowSplash() {
	g.ShowChooser()
	g.mode = ModeSplash
}

// HandleBack navigates one screen back: play to chooser, chooser to splash,
// splash to quit. Presses closer together than the configured debounce are
// ignored. It reports whether the press was honored.
func (g *Game) HandleBack() bool {
	now := g.timers.Clock().Now()
	if g.backSeen && now-g.lastBack < g.cfg.BackDebounce() {
		return false
	}
	g.backSeen = true
	g.lastBack = now

	switch g.mode {
	case ModePlay:
		g.ShowChooser()
	case ModeChooser:
		g.ShowSplash()
	default:
		g.DoQuit()
	}
	return true
}

// DoQuit asks the host to exit.
func (g *Game) DoQuit() {
	g.quitting = true
	if g.quit != nil {
		g.quit()
	}
}

// Unlocked returns the highest level the player may choose.
func (g *Game) Unlocked() int {
	if g.cfg.UnlockAll {
		return g.cfg.NumLevels
	}
	return g.store.ReadPersistent(UnlockedKey, 1)
}

// ChooseLevel plays level n if it exists and is unlocked.
func (g *Game) ChooseLevel(n int) bool {
	if n < 1 || n > g.cfg.NumLevels || n > g.Unlocked() {
		return false
	}
	g.PlayLevel(n)
	return true
}

func (g *Game) unlockAfter(n int) {
	unlocked := g.store.ReadPersistent(UnlockedKey, 1)
	if n != unlocked {
		return
	}
	if err := g.store.SavePersistent(UnlockedKey, unlocked+1); err != nil {
		log.Error("lol: save unlock", "level", n, "err", err)
	}
}

// Fact reads a named integer the game keeps across runs.
func (g *Game) Fact(key string, def int) int {
	return g.store.ReadPersistent("fact."+key, def)
}

// PutFact stores a named integer across runs.
func (g *Game) PutFact(key string, value int) {
	if err := g.store.SavePersistent("fact."+key, value); err != nil {
		log.Error("lol: save fact", "key", key, "err", err)
	}
}
