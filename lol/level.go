package lol

import (
	"fmt"
	"time"

	"github.com/milk9111/lol/common"
	"github.com/milk9111/lol/physics"
)

const numPlanes = 5

// Camera is the view center in meters.
type Camera struct {
	X, Y   float64
	Zoom   float64
	follow Entity
	offX   float64
	offY   float64
}

type countdown struct {
	deadline time.Duration
	text     string
}

// Level is one playable scene: its physics world, entities on five render
// planes, HUD controls and the per-tick event lists.
type Level struct {
	game   *Game
	number int
	world  *physics.World

	width, height float64
	planes        [numPlanes][]Entity
	heroes        []*Hero
	camera        Camera
	controls      []*Control
	touched       map[int]Entity

	oneTime EventQueue
	repeat  []func()
	endGame Event

	score   *Score
	pool    *ProjectilePool
	effects []*Effect

	now  time.Duration
	step float64

	winCountdown  *countdown
	loseCountdown *countdown

	preScene string
	music    string
}

func newLevel(g *Game, number int) *Level {
	cfg := g.cfg
	l := &Level{
		game:    g,
		number:  number,
		world:   physics.NewWorld(cfg.GravityX, cfg.GravityY),
		width:   float64(cfg.Width) / cfg.PixelsPerMeter,
		height:  float64(cfg.Height) / cfg.PixelsPerMeter,
		touched: make(map[int]Entity),
		step:    cfg.Step,
	}
	l.camera = Camera{X: l.width / 2, Y: l.height / 2, Zoom: 1}
	l.score = newScore(l)
	l.world.SetContactListener(l)
	return l
}

// Configure sets the level size in meters and the gravity.
func (l *Level) Configure(width, height, gravityX, gravityY float64) {
	l.width = width
	l.height = height
	l.world.SetGravity(gravityX, gravityY)
}

func (l *Level) Number() int { return l.number }

func (l *Level) Game() *Game { return l.game }

func (l *Level) World() *physics.World { return l.world }

func (l *Level) Score() *Score { return l.score }

// Projectiles returns the pool, or nil before ConfigureProjectiles.
func (l *Level) Projectiles() *ProjectilePool { return l.pool }

// Size returns the level bounds in meters.
func (l *Level) Size() (float64, float64) { return l.width, l.height }

// Now returns the simulated time since the level started.
func (l *Level) Now() time.Duration { return l.now }

// Events returns the one-time event queue.
func (l *Level) Events() *EventQueue { return &l.oneTime }

// Heroes returns every hero created in the level.
func (l *Level) Heroes() []*Hero { return l.heroes }

// SetPreScene sets the text shown before the level starts.
func (l *Level) SetPreScene(text string) { l.preScene = text }

// SetMusic names the music played while the level runs.
func (l *Level) SetMusic(name string) { l.music = name }

func (l *Level) Music() string { return l.music }

// Plane returns the entities on render plane z in insertion order.
func (l *Level) Plane(z int) []Entity {
	if z < -2 || z > 2 {
		return nil
	}
	return l.planes[z+2]
}

// EachVisible calls fn for every visible entity from the back plane to the
// front.
func (l *Level) EachVisible(fn func(e Entity)) {
	for z := range l.planes {
		for _, e := range l.planes[z] {
			if e.base().visible {
				fn(e)
			}
		}
	}
}

func (l *Level) initActor(a *Actor, self Entity, def physics.BodyDef, img string, z int) {
	if z < -2 || z > 2 {
		panic(fmt.Sprintf("lol: z index %d out of range [-2,2]", z))
	}
	a.level = l
	a.self = self
	a.width = def.Width
	a.height = def.Height
	a.image = img
	a.z = z
	a.visible = true
	a.body = l.world.NewBody(def)
	a.body.UserData = self
	l.planes[z+2] = append(l.planes[z+2], self)
}

func (l *Level) movePlane(e Entity, from, to int) {
	src := l.planes[from+2]
	for i, o := range src {
		if o == e {
			l.planes[from+2] = append(src[:i], src[i+1:]...)
			break
		}
	}
	l.planes[to+2] = append(l.planes[to+2], e)
}

func bodyDef(kind physics.BodyKind, shape physics.ShapeKind, x, y, w, h float64) physics.BodyDef {
	return physics.BodyDef{
		Kind:    kind,
		Shape:   shape,
		X:       x + w/2,
		Y:       y + h/2,
		Width:   w,
		Height:  h,
		Density: 1,
	}
}

func (l *Level) makeHero(shape physics.ShapeKind, x, y, w, h float64, img string) *Hero {
	hero := &Hero{strength: 1}
	def := bodyDef(physics.Dynamic, shape, x, y, w, h)
	def.FixedRotation = true
	l.initActor(&hero.Actor, hero, def, img, 0)
	l.heroes = append(l.heroes, hero)
	l.score.onHeroCreated()
	return hero
}

// MakeHeroAsBox places a hero with its bottom-left corner at x,y.
func (l *Level) MakeHeroAsBox(x, y, w, h float64, img string) *Hero {
	return l.makeHero(physics.Box, x, y, w, h, img)
}

// MakeHeroAsCircle places a round hero with its bottom-left corner at x,y.
func (l *Level) MakeHeroAsCircle(x, y, w, h float64, img string) *Hero {
	return l.makeHero(physics.Circle, x, y, w, h, img)
}

func (l *Level) makeEnemy(shape physics.ShapeKind, x, y, w, h float64, img string) *Enemy {
	e := &Enemy{damage: 2}
	l.initActor(&e.Actor, e, bodyDef(physics.Static, shape, x, y, w, h), img, 0)
	l.score.onEnemyCreated()
	return e
}

func (l *Level) MakeEnemyAsBox(x, y, w, h float64, img string) *Enemy {
	return l.makeEnemy(physics.Box, x, y, w, h, img)
}

func (l *Level) MakeEnemyAsCircle(x, y, w, h float64, img string) *Enemy {
	return l.makeEnemy(physics.Circle, x, y, w, h, img)
}

func (l *Level) makeGoodie(shape physics.ShapeKind, x, y, w, h float64, img string) *Goodie {
	g := &Goodie{score: [4]int{1, 0, 0, 0}}
	def := bodyDef(physics.Static, shape, x, y, w, h)
	def.Sensor = true
	l.initActor(&g.Actor, g, def, img, 0)
	return g
}

func (l *Level) MakeGoodieAsBox(x, y, w, h float64, img string) *Goodie {
	return l.makeGoodie(physics.Box, x, y, w, h, img)
}

func (l *Level) MakeGoodieAsCircle(x, y, w, h float64, img string) *Goodie {
	return l.makeGoodie(physics.Circle, x, y, w, h, img)
}

func (l *Level) makeObstacle(shape physics.ShapeKind, x, y, w, h float64, img string) *Obstacle {
	o := &Obstacle{}
	l.initActor(&o.Actor, o, bodyDef(physics.Static, shape, x, y, w, h), img, 0)
	return o
}

func (l *Level) MakeObstacleAsBox(x, y, w, h float64, img string) *Obstacle {
	return l.makeObstacle(physics.Box, x, y, w, h, img)
}

func (l *Level) MakeObstacleAsCircle(x, y, w, h float64, img string) *Obstacle {
	return l.makeObstacle(physics.Circle, x, y, w, h, img)
}

func (l *Level) makeDestination(shape physics.ShapeKind, x, y, w, h float64, img string) *Destination {
	d := &Destination{capacity: 1}
	def := bodyDef(physics.Static, shape, x, y, w, h)
	def.Sensor = true
	l.initActor(&d.Actor, d, def, img, 0)
	return d
}

func (l *Level) MakeDestinationAsBox(x, y, w, h float64, img string) *Destination {
	return l.makeDestination(physics.Box, x, y, w, h, img)
}

func (l *Level) MakeDestinationAsCircle(x, y, w, h float64, img string) *Destination {
	return l.makeDestination(physics.Circle, x, y, w, h, img)
}

// DrawBoundingBox surrounds the region x0,y0 to x1,y1 with thin obstacles.
func (l *Level) DrawBoundingBox(x0, y0, x1, y1 float64, img string, density, elasticity, friction float64) []*Obstacle {
	const t = 0.1
	walls := []*Obstacle{
		l.MakeObstacleAsBox(x0, y0-t, x1-x0, t, img),
		l.MakeObstacleAsBox(x0, y1, x1-x0, t, img),
		l.MakeObstacleAsBox(x0-t, y0, t, y1-y0, img),
		l.MakeObstacleAsBox(x1, y0, t, y1-y0, img),
	}
	for _, w := range walls {
		w.SetPhysics(density, elasticity, friction)
	}
	return walls
}

// Schedule runs fn after delay seconds through the game timer queue. fn is
// skipped if the level is no longer current or has ended.
func (l *Level) Schedule(delay float64, fn func()) {
	g := l.game
	g.timers.Schedule(func() {
		if g.level != l || l.score.gameOver {
			return
		}
		fn()
	}, delay)
}

// SetTimerTrigger fires the timer trigger id after delay seconds.
func (l *Level) SetTimerTrigger(id int, delay float64) {
	l.Schedule(delay, func() {
		l.game.author.OnTimerTrigger(id, l.number)
	})
}

// SetEnemyTimerTrigger fires the enemy-timer trigger id after delay seconds
// unless the enemy is gone by then.
func (l *Level) SetEnemyTimerTrigger(id int, delay float64, e *Enemy) {
	l.Schedule(delay, func() {
		if e.removed {
			return
		}
		l.game.author.OnEnemyTimerTrigger(id, l.number, e)
	})
}

// SetWinCountdown wins the level after seconds of play.
func (l *Level) SetWinCountdown(seconds float64, text string) {
	l.winCountdown = &countdown{deadline: l.now + seconds2d(seconds), text: text}
}

// SetLoseCountdown loses the level after seconds of play.
func (l *Level) SetLoseCountdown(seconds float64, text string) {
	l.loseCountdown = &countdown{deadline: l.now + seconds2d(seconds), text: text}
}

// Countdown returns the seconds left on the win or lose countdown.
func (l *Level) Countdown(win bool) (float64, bool) {
	c := l.loseCountdown
	if win {
		c = l.winCountdown
	}
	if c == nil {
		return 0, false
	}
	left := (c.deadline - l.now).Seconds()
	if left < 0 {
		left = 0
	}
	return left, true
}

func (l *Level) checkCountdowns() {
	if c := l.loseCountdown; c != nil && l.now >= c.deadline {
		l.loseCountdown = nil
		if c.text != "" {
			l.score.loseText = c.text
		}
		l.score.EndLevel(false)
	}
	if c := l.winCountdown; c != nil && l.now >= c.deadline {
		l.winCountdown = nil
		if c.text != "" {
			l.score.winText = c.text
		}
		l.score.EndLevel(true)
	}
}

// AddRepeatEvent runs fn once per tick after the one-time events.
func (l *Level) AddRepeatEvent(fn func()) {
	if fn == nil {
		return
	}
	l.repeat = append(l.repeat, fn)
}

// Camera returns the view.
func (l *Level) Camera() Camera { return l.camera }

// SetCameraChase keeps e centered on screen, shifted by offX,offY meters.
func (l *Level) SetCameraChase(e Entity, offX, offY float64) {
	l.camera.follow = e
	l.camera.offX = offX
	l.camera.offY = offY
}

// SetZoom sets the camera zoom. Values <= 0 are ignored.
func (l *Level) SetZoom(z float64) {
	if z > 0 {
		l.camera.Zoom = z
	}
}

func (l *Level) pixelsPerMeter() float64 {
	return l.game.cfg.PixelsPerMeter * l.camera.Zoom
}

// ScreenToWorld converts screen pixels (origin top-left) to meters.
func (l *Level) ScreenToWorld(sx, sy float64) (float64, float64) {
	cfg := l.game.cfg
	ppm := l.pixelsPerMeter()
	x := l.camera.X + (sx-float64(cfg.Width)/2)/ppm
	y := l.camera.Y - (sy-float64(cfg.Height)/2)/ppm
	return x, y
}

// WorldToScreen converts meters to screen pixels (origin top-left).
func (l *Level) WorldToScreen(x, y float64) (float64, float64) {
	cfg := l.game.cfg
	ppm := l.pixelsPerMeter()
	sx := (x-l.camera.X)*ppm + float64(cfg.Width)/2
	sy := float64(cfg.Height)/2 - (y-l.camera.Y)*ppm
	return sx, sy
}

func (l *Level) updateCamera() {
	f := l.camera.follow
	if f == nil || !f.base().visible {
		return
	}
	c := f.base().Center()
	cfg := l.game.cfg
	ppm := l.pixelsPerMeter()
	halfW := float64(cfg.Width) / ppm / 2
	halfH := float64(cfg.Height) / ppm / 2
	l.camera.X = common.Clamp(c.X+l.camera.offX, halfW, max(halfW, l.width-halfW))
	l.camera.Y = common.Clamp(c.Y+l.camera.offY, halfH, max(halfH, l.height-halfH))
}

func (l *Level) handleTouches(touches []Touch) {
	for _, t := range touches {
		if l.touchControls(t) {
			continue
		}
		l.touchEntities(t)
	}
}

// physicsStep advances the world one fixed step.
func (l *Level) physicsStep() {
	l.world.Step(l.step)
	l.now += seconds2d(l.step)
	for _, h := range l.heroes {
		h.tick(l.step)
	}
}

// runRepeat runs the per-tick behaviors, the range check of the current
// projectile pool and the repeat events.
func (l *Level) runRepeat() {
	for z := range l.planes {
		for _, e := range l.planes[z] {
			a := e.base()
			if a.route != nil {
				a.route.step()
			}
			a.stepChase()
			a.stepHover()
		}
	}
	l.pool.enforceRange()
	n := len(l.repeat)
	for i := 0; i < n; i++ {
		l.repeat[i]()
	}
	l.holdControls()
	l.checkCountdowns()
	l.updateCamera()
	l.advanceAnimations(seconds2d(l.step))
}

func seconds2d(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
