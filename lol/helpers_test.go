package lol

import (
	"testing"

	"github.com/milk9111/lol/config"
	"github.com/milk9111/lol/physics"
	"github.com/milk9111/lol/timer"
)

type recordingAuthor struct {
	NopTriggers
	configure func(l *Level)

	completes       []bool
	timers          []int
	enemyDefeats    []int
	heroCollides    []int
	projectileHits  []int
	strengthChanges int
}

func (r *recordingAuthor) ConfigureLevel(which int, l *Level) {
	if r.configure != nil {
		r.configure(l)
	}
}

func (r *recordingAuthor) OnLevelCompleteTrigger(level int, win bool) {
	r.completes = append(r.completes, win)
}

func (r *recordingAuthor) OnTimerTrigger(id, level int) {
	r.timers = append(r.timers, id)
}

func (r *recordingAuthor) OnEnemyDefeatTrigger(id, level int, e *Enemy) {
	r.enemyDefeats = append(r.enemyDefeats, id)
}

func (r *recordingAuthor) OnHeroCollideTrigger(id, level int, o *Obstacle, h *Hero) {
	r.heroCollides = append(r.heroCollides, id)
}

func (r *recordingAuthor) OnProjectileCollideTrigger(id, level int, o *Obstacle, p *Projectile) {
	r.projectileHits = append(r.projectileHits, id)
}

func (r *recordingAuthor) OnStrengthChangeTrigger(level int, h *Hero) {
	r.strengthChanges++
}

type fixture struct {
	game   *Game
	clock  *timer.ManualClock
	store  *MemoryStore
	author *recordingAuthor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := config.Default()
	cfg.GravityY = 0
	cfg.NumLevels = 3
	f := &fixture{
		clock:  timer.NewManualClock(),
		store:  NewMemoryStore(),
		author: &recordingAuthor{},
	}
	f.game = NewGame(cfg, f.author, f.store)
	f.game.SetClock(f.clock)
	return f
}

// level starts level 1 and returns it.
func (f *fixture) level(t *testing.T) *Level {
	t.Helper()
	f.game.PlayLevel(1)
	l := f.game.Level()
	if l == nil {
		t.Fatalf("expected a level")
	}
	return l
}

// collide reports a begin contact between a and b and resolves it.
func collide(l *Level, a, b Entity) {
	l.BeginContact(a.base().body, b.base().body, physics.Contact{
		SensorA: a.base().body.Sensor(),
		SensorB: b.base().body.Sensor(),
	})
	l.oneTime.Drain()
}

func contactOf(a, b Entity) physics.Contact {
	return physics.Contact{SensorA: a.base().body.Sensor(), SensorB: b.base().body.Sensor()}
}
