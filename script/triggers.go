// Package script runs level triggers as tengo handlers.
//
// A level script assigns handler functions to predeclared globals, one per
// trigger kind:
//
//	on_timer = func(engine, ev) {
//		if ev.id == 1 { engine.end_level(true) }
//	}
//
// Every handler receives the engine map and an event map with id, level,
// win, self and other. Kinds the script leaves undefined go to the fallback
// triggers.
package script

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/lol/lol"
)

// Kind names a trigger a script can handle.
type Kind string

const (
	HeroCollide       Kind = "hero_collide"
	Touch             Kind = "touch"
	Timer             Kind = "timer"
	EnemyTimer        Kind = "enemy_timer"
	EnemyDefeat       Kind = "enemy_defeat"
	EnemyCollide      Kind = "enemy_collide"
	ProjectileCollide Kind = "projectile_collide"
	LevelComplete     Kind = "level_complete"
	ControlPress      Kind = "control_press"
	StrengthChange    Kind = "strength_change"
)

// Kinds lists every trigger kind in a fixed order.
var Kinds = []Kind{
	HeroCollide, Touch, Timer, EnemyTimer, EnemyDefeat,
	EnemyCollide, ProjectileCollide, LevelComplete, ControlPress, StrengthChange,
}

// Handler is the global a script assigns to handle k.
func (k Kind) Handler() string { return "on_" + string(k) }

// Triggers implements lol.Triggers on top of a compiled script.
type Triggers struct {
	name     string
	compiled *tengo.Compiled
	bound    map[Kind]bool
	fallback lol.Triggers
	level    *lol.Level
	state    map[string]tengo.Object
}

var _ lol.Triggers = (*Triggers)(nil)

// Compile prepares src. name only labels log lines and errors. A nil
// fallback ignores unbound kinds.
func Compile(name string, src []byte, fallback lol.Triggers) (*Triggers, error) {
	if fallback == nil {
		fallback = lol.NopTriggers{}
	}

	s := tengo.NewScript([]byte(prelude() + string(src) + "\n" + dispatch()))
	_ = s.Add("__kind", "")
	_ = s.Add("__engine", map[string]any{})
	_ = s.Add("__event", map[string]any{})
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	// An empty kind runs top-level code only, which assigns the handlers.
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("script: run %s: %w", name, err)
	}

	t := &Triggers{
		name:     name,
		compiled: compiled,
		bound:    make(map[Kind]bool),
		fallback: fallback,
		state:    make(map[string]tengo.Object),
	}
	for _, k := range Kinds {
		if _, ok := compiled.Get(k.Handler()).Object().(*tengo.CompiledFunction); ok {
			t.bound[k] = true
		}
	}
	log.Debug("script: compiled", "name", name, "handlers", len(t.bound))
	return t, nil
}

func prelude() string {
	var b strings.Builder
	for _, k := range Kinds {
		fmt.Fprintf(&b, "%s := undefined\n", k.Handler())
	}
	return b.String()
}

func dispatch() string {
	var b strings.Builder
	for i, k := range Kinds {
		if i > 0 {
			b.WriteString(" else ")
		}
		fmt.Fprintf(&b, "if __kind == %q {\n\t%s(__engine, __event)\n}", string(k), k.Handler())
	}
	b.WriteString("\n")
	return b.String()
}

// Bind points the engine functions at l. The level's author calls it from
// ConfigureLevel.
func (t *Triggers) Bind(l *lol.Level) { t.level = l }

// Bound reports whether the script handles k.
func (t *Triggers) Bound(k Kind) bool { return t != nil && t.bound[k] }

func (t *Triggers) Name() string { return t.name }

// call is one trigger invocation.
type call struct {
	kind  Kind
	id    int
	level int
	win   bool
	self  lol.Entity
	other lol.Entity
}

func (t *Triggers) run(c call) {
	event := &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"kind":  &tengo.String{Value: string(c.kind)},
		"id":    &tengo.Int{Value: int64(c.id)},
		"level": &tengo.Int{Value: int64(c.level)},
		"win":   boolObject(c.win),
		"self":  entityObject(c.self),
		"other": entityObject(c.other),
	}}

	if err := t.compiled.Set("__kind", string(c.kind)); err != nil {
		log.Error("script: set kind", "name", t.name, "err", err)
		return
	}
	if err := t.compiled.Set("__engine", t.engine(c)); err != nil {
		log.Error("script: set engine", "name", t.name, "err", err)
		return
	}
	if err := t.compiled.Set("__event", event); err != nil {
		log.Error("script: set event", "name", t.name, "err", err)
		return
	}
	if err := t.compiled.Run(); err != nil {
		log.Error("script: handler failed", "name", t.name, "kind", c.kind, "id", c.id, "err", err)
	}
}

func (t *Triggers) OnHeroCollideTrigger(id, level int, o *lol.Obstacle, h *lol.Hero) {
	if !t.Bound(HeroCollide) {
		t.fallback.OnHeroCollideTrigger(id, level, o, h)
		return
	}
	t.run(call{kind: HeroCollide, id: id, level: level, self: o, other: h})
}

func (t *Triggers) OnTouchTrigger(id, level int, e lol.Entity) {
	if !t.Bound(Touch) {
		t.fallback.OnTouchTrigger(id, level, e)
		return
	}
	t.run(call{kind: Touch, id: id, level: level, self: e})
}

func (t *Triggers) OnTimerTrigger(id, level int) {
	if !t.Bound(Timer) {
		t.fallback.OnTimerTrigger(id, level)
		return
	}
	t.run(call{kind: Timer, id: id, level: level})
}

func (t *Triggers) OnEnemyTimerTrigger(id, level int, e *lol.Enemy) {
	if !t.Bound(EnemyTimer) {
		t.fallback.OnEnemyTimerTrigger(id, level, e)
		return
	}
	t.run(call{kind: EnemyTimer, id: id, level: level, self: e})
}

func (t *Triggers) OnEnemyDefeatTrigger(id, level int, e *lol.Enemy) {
	if !t.Bound(EnemyDefeat) {
		t.fallback.OnEnemyDefeatTrigger(id, level, e)
		return
	}
	t.run(call{kind: EnemyDefeat, id: id, level: level, self: e})
}

func (t *Triggers) OnEnemyCollideTrigger(id, level int, o *lol.Obstacle, e *lol.Enemy) {
	if !t.Bound(EnemyCollide) {
		t.fallback.OnEnemyCollideTrigger(id, level, o, e)
		return
	}
	t.run(call{kind: EnemyCollide, id: id, level: level, self: o, other: e})
}

func (t *Triggers) OnProjectileCollideTrigger(id, level int, o *lol.Obstacle, p *lol.Projectile) {
	if !t.Bound(ProjectileCollide) {
		t.fallback.OnProjectileCollideTrigger(id, level, o, p)
		return
	}
	t.run(call{kind: ProjectileCollide, id: id, level: level, self: o, other: p})
}

func (t *Triggers) OnLevelCompleteTrigger(level int, win bool) {
	if !t.Bound(LevelComplete) {
		t.fallback.OnLevelCompleteTrigger(level, win)
		return
	}
	t.run(call{kind: LevelComplete, level: level, win: win})
}

func (t *Triggers) OnControlPressTrigger(id, level int) {
	if !t.Bound(ControlPress) {
		t.fallback.OnControlPressTrigger(id, level)
		return
	}
	t.run(call{kind: ControlPress, id: id, level: level})
}

func (t *Triggers) OnStrengthChangeTrigger(level int, h *lol.Hero) {
	if !t.Bound(StrengthChange) {
		t.fallback.OnStrengthChangeTrigger(level, h)
		return
	}
	t.run(call{kind: StrengthChange, level: level, self: h})
}
