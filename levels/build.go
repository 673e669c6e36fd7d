package levels

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/milk9111/lol/lol"
)

// Built is the result of instantiating a spec.
type Built struct {
	Spec  *Spec
	Named map[string]lol.Entity
}

// Entity returns the entity with name, or nil.
func (b *Built) Entity(name string) lol.Entity {
	if b == nil {
		return nil
	}
	return b.Named[name]
}

// Build validates spec and creates its entities in l.
func Build(spec *Spec, l *lol.Level) (*Built, error) {
	if spec == nil || l == nil {
		return nil, fmt.Errorf("levels: build: nil spec or level")
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	cfg := l.Game().Config()
	w, h := l.Size()
	if spec.Size.X > 0 {
		w = spec.Size.X
	}
	if spec.Size.Y > 0 {
		h = spec.Size.Y
	}
	gx, gy := cfg.GravityX, cfg.GravityY
	if spec.Gravity != nil {
		gx, gy = spec.Gravity.X, spec.Gravity.Y
	}
	l.Configure(w, h, gx, gy)

	if b := spec.Bounds; b != nil {
		l.DrawBoundingBox(0, 0, w, h, b.Image, b.Density, b.Elasticity, b.Friction)
	}

	built := &Built{Spec: spec, Named: map[string]lol.Entity{}}
	var deferred []func() error

	for i := range spec.Heroes {
		hs := &spec.Heroes[i]
		shape := shapeOf(hs.Shape)
		var hero *lol.Hero
		if shape == "circle" {
			hero = l.MakeHeroAsCircle(hs.X, hs.Y, hs.Width, hs.Height, hs.Image)
		} else {
			hero = l.MakeHeroAsBox(hs.X, hs.Y, hs.Width, hs.Height, hs.Image)
		}
		if hs.Strength > 0 {
			hero.SetStrength(hs.Strength)
		}
		if hs.Jump != nil {
			hero.SetJumpImpulses(hs.Jump.X, hs.Jump.Y)
		}
		if hs.MultiJump {
			hero.SetMultiJump(true)
		}
		if hs.MustSurvive {
			hero.SetMustSurvive()
		}
		if hs.JumpSound != "" {
			hero.SetJumpSound(hs.JumpSound)
		}
		if hs.Invincibility > 0 {
			hero.AddInvincibility(hs.Invincibility)
		}
		deferred = append(deferred, built.common(hero, &hs.BodySpec))
	}

	for i := range spec.Enemies {
		es := &spec.Enemies[i]
		var e *lol.Enemy
		if shapeOf(es.Shape) == "circle" {
			e = l.MakeEnemyAsCircle(es.X, es.Y, es.Width, es.Height, es.Image)
		} else {
			e = l.MakeEnemyAsBox(es.X, es.Y, es.Width, es.Height, es.Image)
		}
		if es.Damage != nil {
			e.SetDamage(*es.Damage)
		}
		if es.DefeatByJump {
			e.SetDefeatByJump()
		}
		if es.DefeatByCrawl {
			e.SetDefeatByCrawl()
		}
		if es.Immune {
			e.SetImmuneToInvincibility()
		}
		if es.AlwaysDamages {
			e.SetAlwaysDoesDamage()
		}
		if es.DefeatText != "" {
			e.SetDefeatHeroText(es.DefeatText)
		}
		if es.DefeatTrigger != 0 {
			e.SetDefeatTrigger(es.DefeatTrigger)
		}
		if es.Timer != nil {
			l.SetEnemyTimerTrigger(es.Timer.ID, es.Timer.Delay, e)
		}
		deferred = append(deferred, built.common(e, &es.BodySpec))
	}

	for i := range spec.Goodies {
		gs := &spec.Goodies[i]
		var g *lol.Goodie
		if shapeOf(gs.Shape) == "circle" {
			g = l.MakeGoodieAsCircle(gs.X, gs.Y, gs.Width, gs.Height, gs.Image)
		} else {
			g = l.MakeGoodieAsBox(gs.X, gs.Y, gs.Width, gs.Height, gs.Image)
		}
		if len(gs.Score) > 0 {
			s := counts(gs.Score)
			g.SetScore(s[0], s[1], s[2], s[3])
		}
		if gs.StrengthBoost != 0 {
			g.SetStrengthBoost(gs.StrengthBoost)
		}
		if gs.Invincibility > 0 {
			g.SetInvincibilityDuration(gs.Invincibility)
		}
		deferred = append(deferred, built.common(g, &gs.BodySpec))
	}

	for i := range spec.Obstacles {
		ob := &spec.Obstacles[i]
		var o *lol.Obstacle
		if shapeOf(ob.Shape) == "circle" {
			o = l.MakeObstacleAsCircle(ob.X, ob.Y, ob.Width, ob.Height, ob.Image)
		} else {
			o = l.MakeObstacleAsBox(ob.X, ob.Y, ob.Width, ob.Height, ob.Image)
		}
		if ob.NoReJump {
			o.SetNoReJump()
		}
		if ob.Damp != 0 {
			o.SetDamp(ob.Damp)
		}
		if b := ob.SpeedBoost; b != nil {
			o.SetSpeedBoost(b.X, b.Y, b.Duration)
		}
		if t := ob.HeroTrigger; t != nil {
			o.SetHeroCollisionTrigger(t.ID, counts(t.Activation), t.Delay)
		}
		if t := ob.EnemyTrigger; t != nil {
			o.SetEnemyCollisionTrigger(t.ID, t.Delay)
		}
		if t := ob.ProjectileTrigger; t != nil {
			o.SetProjectileCollisionTrigger(t.ID, counts(t.Activation))
		}
		if s := ob.Sound; s != nil {
			o.SetCollisionSound(s.Name, time.Duration(s.CooldownMS)*time.Millisecond)
		}
		deferred = append(deferred, built.common(o, &ob.BodySpec))
	}

	for i := range spec.Destinations {
		ds := &spec.Destinations[i]
		var d *lol.Destination
		if shapeOf(ds.Shape) == "circle" {
			d = l.MakeDestinationAsCircle(ds.X, ds.Y, ds.Width, ds.Height, ds.Image)
		} else {
			d = l.MakeDestinationAsBox(ds.X, ds.Y, ds.Width, ds.Height, ds.Image)
		}
		if ds.Capacity > 0 {
			d.SetCapacity(ds.Capacity)
		}
		if len(ds.Activation) > 0 {
			a := counts(ds.Activation)
			d.SetActivationScore(a[0], a[1], a[2], a[3])
		}
		if ds.Sound != "" {
			d.SetArrivalSound(ds.Sound)
		}
		deferred = append(deferred, built.common(d, &ds.BodySpec))
	}

	// Chase targets may be declared after the chaser.
	for _, fn := range deferred {
		if err := fn(); err != nil {
			return nil, err
		}
	}

	if p := spec.Projectiles; p != nil {
		buildProjectiles(l, p)
	}
	if err := built.controls(l); err != nil {
		return nil, err
	}
	built.score(l)

	for _, t := range spec.Timers {
		l.SetTimerTrigger(t.ID, t.Delay)
	}
	if spec.Camera.Follow != "" {
		l.SetCameraChase(built.Named[spec.Camera.Follow], spec.Camera.Offset.X, spec.Camera.Offset.Y)
	}
	l.SetZoom(spec.Camera.Zoom)
	if spec.Intro != "" {
		l.SetPreScene(spec.Intro)
	}
	if spec.Music != "" {
		l.SetMusic(spec.Music)
	}

	log.Debug("levels: built", "level", l.Number(), "name", spec.Name, "named", len(built.Named))
	return built, nil
}

// common applies the shared body options to e and records its name. The
// returned function resolves references to other entities.
func (b *Built) common(e lol.Entity, bs *BodySpec) func() error {
	a := lol.Base(e)
	if bs.Name != "" {
		b.Named[bs.Name] = e
	}
	if bs.Z != 0 {
		a.SetZIndex(bs.Z)
	}
	if m := bs.Physics; m != nil {
		a.SetPhysics(m.Density, m.Elasticity, m.Friction)
	}
	if bs.CanMove {
		a.SetCanMove()
	}
	if bs.Rotate {
		a.SetCanRotate(true)
	}
	if bs.Gravity != nil {
		a.SetGravityEffect(*bs.Gravity)
	}
	if bs.Sensor {
		a.SetCollisionEffect(false)
	}
	if v := bs.Velocity; v != nil {
		a.SetVelocity(v.X, v.Y)
	}
	if r := bs.Route; r != nil {
		route := lol.NewRoute()
		for _, p := range r.Points {
			route.To(p[0], p[1])
		}
		a.SetRoute(route, r.Speed, r.Loop)
	}
	if hv := bs.Hover; hv != nil {
		a.SetHover(hv.X, hv.Y)
	}
	if bs.DisappearSound != "" {
		a.SetDisappearSound(bs.DisappearSound)
	}
	if t := bs.Touch; t != nil {
		a.SetTouchTrigger(t.ID, counts(t.Activation), t.Disappear)
	} else if bs.Drag {
		a.SetCanDrag()
	}
	if len(bs.Sticky) > 0 {
		sides := make([]lol.Side, 0, len(bs.Sticky))
		for _, s := range bs.Sticky {
			side, _ := parseSide(s)
			sides = append(sides, side)
		}
		a.SetSticky(sides...)
	}
	if bs.OneSided != "" {
		side, _ := parseSide(bs.OneSided)
		a.SetOneSided(side)
	}
	if bs.PassThrough != 0 {
		a.SetPassThrough(bs.PassThrough)
	}
	if an := animation(bs.Animation); an != nil {
		a.SetDefaultAnimation(an)
	}
	if an := animation(bs.DisappearAnimation); an != nil {
		a.SetDisappearAnimation(an)
	}
	if bs.AppearDelay > 0 {
		a.SetAppearDelay(bs.AppearDelay)
	}
	if bs.DisappearDelay > 0 {
		a.SetDisappearDelay(bs.DisappearDelay, false)
	}

	return func() error {
		if c := bs.Chase; c != nil {
			target, ok := b.Named[c.Target]
			if !ok {
				return invalid("%s chases unknown entity %q", bs.label(), c.Target)
			}
			a.SetChase(target, c.Speed, c.IgnoreX, c.IgnoreY)
		}
		return nil
	}
}

func buildProjectiles(l *lol.Level, p *ProjectileSpec) {
	pool := l.ConfigureProjectiles(p.Size, p.Width, p.Height, p.Image, p.Strength, p.Z, p.Circle)
	if p.Shots != nil {
		pool.SetNumberOfProjectiles(*p.Shots)
	}
	if p.Range > 0 {
		pool.SetRange(p.Range)
	}
	if p.Gravity {
		pool.SetGravity(true)
	}
	if p.FixedSpeed > 0 {
		pool.SetFixedVelocity(p.FixedSpeed)
	}
	if p.Multiplier != 0 {
		pool.SetVelocityMultiplier(p.Multiplier)
	}
	if p.Rotate {
		pool.SetRotateWithDirection(true)
	}
	if p.Survive {
		pool.SetSurviveProjectileCollisions(true)
	}
	if p.DisappearOnCollide != nil {
		pool.SetDisappearOnCollide(*p.DisappearOnCollide)
	}
	if p.ThrowSound != "" {
		pool.SetThrowSound(p.ThrowSound)
	}
	if p.DisappearSound != "" {
		pool.SetDisappearSound(p.DisappearSound)
	}
}

func (b *Built) controls(l *lol.Level) error {
	for i, c := range b.Spec.Controls {
		if c.Kind == "trigger" {
			l.AddTriggerControl(c.ID, c.X, c.Y, c.Width, c.Height, c.Image)
			continue
		}

		target := b.Named[c.Target]
		if c.Target == "" && len(l.Heroes()) > 0 {
			target = l.Heroes()[0]
		}
		if target == nil {
			return invalid("control %d has no target", i)
		}
		if c.Kind == "move" {
			l.AddMoveButton(target, c.X, c.Y, c.Width, c.Height, c.Image, c.Velocity.X, c.Velocity.Y)
			continue
		}

		hero, ok := target.(*lol.Hero)
		if !ok {
			return invalid("control %d: %s button needs a hero, %q is not one", i, c.Kind, c.Target)
		}
		switch c.Kind {
		case "jump":
			l.AddJumpButton(hero, c.X, c.Y, c.Width, c.Height, c.Image)
		case "crawl":
			l.AddCrawlButton(hero, c.X, c.Y, c.Width, c.Height, c.Image)
		case "throw":
			l.AddThrowButton(hero, c.X, c.Y, c.Width, c.Height, c.Image, c.Offset.X, c.Offset.Y, c.Velocity.X, c.Velocity.Y)
		}
	}
	return nil
}

func (b *Built) score(l *lol.Level) {
	spec := b.Spec
	s := l.Score()
	switch spec.Victory.Mode {
	case "goodies":
		g := counts(spec.Victory.Goodies)
		s.SetVictoryGoodies(g[0], g[1], g[2], g[3])
	case "enemies":
		n := spec.Victory.Count
		if n == 0 {
			n = lol.DefeatAll
		}
		s.SetVictoryEnemies(n)
	default:
		n := spec.Victory.Count
		if n <= 0 {
			n = 1
		}
		s.SetVictoryDestination(n)
	}
	if spec.WinText != "" {
		s.SetWinText(spec.WinText)
	}
	if spec.LoseText != "" {
		s.SetLoseText(spec.LoseText)
	}
	if c := spec.WinCountdown; c != nil {
		l.SetWinCountdown(c.Seconds, c.Text)
	}
	if c := spec.LoseCountdown; c != nil {
		l.SetLoseCountdown(c.Seconds, c.Text)
	}
}

func shapeOf(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func parseSide(s string) (lol.Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return lol.SideNone, nil
	case "top":
		return lol.SideTop, nil
	case "right":
		return lol.SideRight, nil
	case "bottom":
		return lol.SideBottom, nil
	case "left":
		return lol.SideLeft, nil
	default:
		return lol.SideNone, invalid("unknown side %q", s)
	}
}

func counts(in []int) [4]int {
	var out [4]int
	copy(out[:], in)
	return out
}

func animation(a *AnimationSpec) *lol.Animation {
	if a == nil || len(a.Frames) == 0 {
		return nil
	}
	frames := make([]lol.Frame, len(a.Frames))
	for i, f := range a.Frames {
		frames[i] = lol.Frame{Image: f.Image, Duration: time.Duration(f.MS) * time.Millisecond}
	}
	return lol.NewAnimation(a.Loop, frames...)
}
