package lol

// TouchPhase is the stage of a touch.
type TouchPhase int

const (
	TouchDown TouchPhase = iota
	TouchMove
	TouchUp
)

// Touch is one pointer event in screen pixels, origin top-left.
type Touch struct {
	ID    int
	X, Y  float64
	Phase TouchPhase
}

// Control is a HUD button in screen pixels, origin top-left. A held control
// runs OnHold every tick until released.
type Control struct {
	X, Y          float64
	Width, Height float64
	Image         string
	Active        bool

	OnDown func()
	OnHold func()
	OnUp   func()

	held    bool
	touchID int
}

// Held reports whether a touch currently presses the control.
func (c *Control) Held() bool { return c.held }

func (c *Control) contains(x, y float64) bool {
	return x >= c.X && x <= c.X+c.Width && y >= c.Y && y <= c.Y+c.Height
}

// AddControl adds a HUD control and returns it.
func (l *Level) AddControl(c *Control) *Control {
	c.Active = true
	l.controls = append(l.controls, c)
	return c
}

// Controls returns the HUD controls.
func (l *Level) Controls() []*Control { return l.controls }

// ClearControls removes every HUD control.
func (l *Level) ClearControls() { l.controls = nil }

// AddTriggerControl fires the control-press trigger id when pressed.
func (l *Level) AddTriggerControl(id int, x, y, w, h float64, img string) *Control {
	return l.AddControl(&Control{X: x, Y: y, Width: w, Height: h, Image: img,
		OnDown: func() { l.game.author.OnControlPressTrigger(id, l.number) },
	})
}

// AddJumpButton makes the hero jump when pressed.
func (l *Level) AddJumpButton(hero *Hero, x, y, w, h float64, img string) *Control {
	return l.AddControl(&Control{X: x, Y: y, Width: w, Height: h, Image: img, OnDown: hero.Jump})
}

// AddCrawlButton makes the hero crawl while held.
func (l *Level) AddCrawlButton(hero *Hero, x, y, w, h float64, img string) *Control {
	return l.AddControl(&Control{X: x, Y: y, Width: w, Height: h, Image: img,
		OnDown: hero.Crawl,
		OnUp:   hero.StopCrawl,
	})
}

// AddThrowButton throws a projectile with fixed velocity on every tick the
// button is held. The pool drops throws while its next slot is in flight.
func (l *Level) AddThrowButton(hero *Hero, x, y, w, h float64, img string, offX, offY, vx, vy float64) *Control {
	return l.AddControl(&Control{X: x, Y: y, Width: w, Height: h, Image: img,
		OnHold: func() { hero.Throw(offX, offY, vx, vy) },
	})
}

// AddMoveButton sets the entity velocity while held and zeroes the moved
// components on release.
func (l *Level) AddMoveButton(e Entity, x, y, w, h float64, img string, vx, vy float64) *Control {
	a := e.base()
	return l.AddControl(&Control{X: x, Y: y, Width: w, Height: h, Image: img,
		OnHold: func() {
			v := a.Velocity()
			nx, ny := v.X, v.Y
			if vx != 0 {
				nx = vx
			}
			if vy != 0 {
				ny = vy
			}
			a.SetVelocity(nx, ny)
		},
		OnUp: func() {
			v := a.Velocity()
			nx, ny := v.X, v.Y
			if vx != 0 {
				nx = 0
			}
			if vy != 0 {
				ny = 0
			}
			a.SetVelocity(nx, ny)
		},
	})
}

func (l *Level) touchControls(t Touch) bool {
	handled := false
	for _, c := range l.controls {
		if !c.Active {
			continue
		}
		switch t.Phase {
		case TouchDown:
			if !c.contains(t.X, t.Y) {
				continue
			}
			c.held = true
			c.touchID = t.ID
			if c.OnDown != nil {
				c.OnDown()
			}
			handled = true
		case TouchMove:
			if c.held && c.touchID == t.ID {
				handled = true
			}
		case TouchUp:
			if !c.held || c.touchID != t.ID {
				continue
			}
			c.held = false
			if c.OnUp != nil {
				c.OnUp()
			}
			handled = true
		}
	}
	return handled
}

func (l *Level) holdControls() {
	for _, c := range l.controls {
		if c.Active && c.held && c.OnHold != nil {
			c.OnHold()
		}
	}
}

func (l *Level) touchEntities(t Touch) {
	x, y := l.ScreenToWorld(t.X, t.Y)
	switch t.Phase {
	case TouchDown:
		for z := len(l.planes) - 1; z >= 0; z-- {
			for i := len(l.planes[z]) - 1; i >= 0; i-- {
				e := l.planes[z][i]
				a := e.base()
				if !a.visible || a.touch == nil || a.touch.Down == nil || !a.contains(x, y) {
					continue
				}
				if a.touch.Down(x, y) {
					l.touched[t.ID] = e
					return
				}
			}
		}
	case TouchMove:
		if e, ok := l.touched[t.ID]; ok {
			if a := e.base(); a.visible && a.touch != nil && a.touch.Move != nil {
				a.touch.Move(x, y)
			}
		}
	case TouchUp:
		if e, ok := l.touched[t.ID]; ok {
			delete(l.touched, t.ID)
			if a := e.base(); a.visible && a.touch != nil && a.touch.Up != nil {
				a.touch.Up(x, y)
			}
		}
	}
}
