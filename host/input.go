package host

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/lol/lol"
)

// MouseID is the touch id the left mouse button reports as.
const MouseID = -1

// Point is a pressed pointer in screen pixels.
type Point struct {
	X, Y float64
}

// Tracker turns the pointers held each frame into touch phases.
type Tracker struct {
	held map[int]Point
}

func NewTracker() *Tracker {
	return &Tracker{held: make(map[int]Point)}
}

// Frame compares pressed with the previous frame. New ids go down, ids
// that moved report a move and ids no longer pressed go up at their last
// position. Touches are ordered by id.
func (t *Tracker) Frame(pressed map[int]Point) []lol.Touch {
	ids := make([]int, 0, len(pressed)+len(t.held))
	for id := range pressed {
		ids = append(ids, id)
	}
	for id := range t.held {
		if _, ok := pressed[id]; !ok {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	var out []lol.Touch
	for _, id := range ids {
		now, down := pressed[id]
		prev, was := t.held[id]
		switch {
		case down && !was:
			out = append(out, lol.Touch{ID: id, X: now.X, Y: now.Y, Phase: lol.TouchDown})
		case down && now != prev:
			out = append(out, lol.Touch{ID: id, X: now.X, Y: now.Y, Phase: lol.TouchMove})
		case !down:
			out = append(out, lol.Touch{ID: id, X: prev.X, Y: prev.Y, Phase: lol.TouchUp})
			delete(t.held, id)
			continue
		}
		t.held[id] = now
	}
	return out
}

// Reset forgets every held pointer.
func (t *Tracker) Reset() {
	clear(t.held)
}

// pressedPointers reads the mouse and touch screen.
func pressedPointers(ids []ebiten.TouchID) map[int]Point {
	out := make(map[int]Point, len(ids)+1)
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		out[MouseID] = Point{X: float64(x), Y: float64(y)}
	}
	for _, id := range ids {
		x, y := ebiten.TouchPosition(id)
		out[int(id)] = Point{X: float64(x), Y: float64(y)}
	}
	return out
}

// keys is the keyboard state mapped onto the first hero.
type keys struct {
	left, right, up, down bool
	jump, crawl, throw    bool
	crawlReleased         bool
}

const keySpeed = 5

// drive applies k to h. Arrow keys set the velocity only while held so
// levels that move the hero some other way are left alone.
func (k keys) drive(h *lol.Hero) {
	if h == nil || !h.Visible() {
		return
	}
	vx, vy := 0.0, 0.0
	if k.left {
		vx -= keySpeed
	}
	if k.right {
		vx += keySpeed
	}
	if k.up {
		vy += keySpeed
	}
	if k.down {
		vy -= keySpeed
	}
	if vx != 0 || vy != 0 {
		v := h.Velocity()
		if vx == 0 {
			vx = v.X
		}
		if vy == 0 {
			vy = v.Y
		}
		h.SetVelocity(vx, vy)
	}
	if k.jump {
		h.Jump()
	}
	if k.crawl {
		h.Crawl()
	}
	if k.crawlReleased {
		h.StopCrawl()
	}
	if k.throw {
		h.Throw(h.Width()/2, 0, 10, 0)
	}
}
