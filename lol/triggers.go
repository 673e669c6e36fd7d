package lol

// Triggers is the callback surface a game implements to react to level
// events. id is the value the author passed when installing the trigger and
// level is the number of the level that raised it.
type Triggers interface {
	OnHeroCollideTrigger(id, level int, o *Obstacle, h *Hero)
	OnTouchTrigger(id, level int, e Entity)
	OnTimerTrigger(id, level int)
	OnEnemyTimerTrigger(id, level int, e *Enemy)
	OnEnemyDefeatTrigger(id, level int, e *Enemy)
	OnEnemyCollideTrigger(id, level int, o *Obstacle, e *Enemy)
	OnProjectileCollideTrigger(id, level int, o *Obstacle, p *Projectile)
	OnLevelCompleteTrigger(level int, win bool)
	OnControlPressTrigger(id, level int)
	OnStrengthChangeTrigger(level int, h *Hero)
}

// Author configures levels and receives their triggers.
type Author interface {
	Triggers
	ConfigureLevel(which int, l *Level)
}

// NopTriggers ignores every trigger. Embed it to implement only a few.
type NopTriggers struct{}

func (NopTriggers) OnHeroCollideTrigger(id, level int, o *Obstacle, h *Hero) {}
func (NopTriggers) OnTouchTrigger(id, level int, e Entity) {}
func (NopTriggers) OnTimerTrigger(id, level int) {}
func (NopTriggers) OnEnemyTimerTrigger(id, level int, e *Enemy) {}
func (NopTriggers) OnEnemyDefeatTrigger(id, level int, e *Enemy) {}
func (NopTriggers) OnEnemyCollideTrigger(id, level int, o *Obstacle, e *Enemy) {}
func (NopTriggers) OnProjectileCollideTrigger(id, level int, o *Obstacle, p *Projectile) {}
func (NopTriggers) OnLevelCompleteTrigger(level int, win bool) {}
func (NopTriggers) OnControlPressTrigger(id, level int) {}
func (NopTriggers) OnStrengthChangeTrigger(level int, h *Hero) {}

type nopAuthor struct {
	NopTriggers
}

func (nopAuthor) ConfigureLevel(int, *Level) {}
