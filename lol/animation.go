package lol

import "time"

// Frame is one image shown for a duration.
type Frame struct {
	Image    string
	Duration time.Duration
}

// Animation is an ordered list of frames.
type Animation struct {
	Frames []Frame
	Loop   bool
}

// NewAnimation builds an animation from frames.
func NewAnimation(loop bool, frames ...Frame) *Animation {
	return &Animation{Frames: frames, Loop: loop}
}

// Uniform builds an animation showing each image for the same duration.
func Uniform(loop bool, each time.Duration, images ...string) *Animation {
	frames := make([]Frame, len(images))
	for i, img := range images {
		frames[i] = Frame{Image: img, Duration: each}
	}
	return NewAnimation(loop, frames...)
}

func (a *Animation) total() time.Duration {
	var d time.Duration
	for _, f := range a.Frames {
		d += f.Duration
	}
	return d
}

// Animator plays a default animation and one-shot overrides. A finished
// non-looping override falls back to the default.
type Animator struct {
	def     *Animation
	cur     *Animation
	frame   int
	elapsed time.Duration
	done    bool
}

func NewAnimator(def *Animation) *Animator {
	return &Animator{def: def, cur: def}
}

// Play switches to an. Playing the current animation again restarts it.
func (a *Animator) Play(an *Animation) {
	if a == nil || an == nil {
		return
	}
	a.cur = an
	a.frame = 0
	a.elapsed = 0
	a.done = false
}

// Playing reports whether an is the current animation.
func (a *Animator) Playing(an *Animation) bool {
	return a != nil && an != nil && a.cur == an
}

// Reset returns to the start of the default animation.
func (a *Animator) Reset() {
	if a == nil {
		return
	}
	a.cur = a.def
	a.frame = 0
	a.elapsed = 0
	a.done = false
}

// Done reports whether a non-looping animation with no default finished.
func (a *Animator) Done() bool { return a == nil || a.done }

// Advance moves the animation forward by dt.
func (a *Animator) Advance(dt time.Duration) {
	if a == nil || a.cur == nil || a.done || len(a.cur.Frames) == 0 {
		return
	}
	a.elapsed += dt
	for {
		f := a.cur.Frames[a.frame]
		if f.Duration <= 0 || a.elapsed < f.Duration {
			return
		}
		a.elapsed -= f.Duration
		a.frame++
		if a.frame < len(a.cur.Frames) {
			continue
		}
		switch {
		case a.cur.Loop:
			a.frame = 0
			if a.cur.total() <= 0 {
				return
			}
		case a.cur != a.def && a.def != nil:
			a.cur = a.def
			a.frame = 0
			a.elapsed = 0
			return
		default:
			a.frame = len(a.cur.Frames) - 1
			a.done = true
			return
		}
	}
}

// Image returns the image of the current frame, or "" with nothing to show.
func (a *Animator) Image() string {
	if a == nil || a.cur == nil || len(a.cur.Frames) == 0 {
		return ""
	}
	return a.cur.Frames[a.frame].Image
}

// Effect is a removal animation left behind where an entity disappeared.
type Effect struct {
	X, Y          float64
	Width, Height float64
	Animator      *Animator
}

func (l *Level) addEffect(x, y, w, h float64, an *Animation) {
	anim := NewAnimator(nil)
	anim.Play(an)
	l.effects = append(l.effects, &Effect{X: x, Y: y, Width: w, Height: h, Animator: anim})
}

// Effects returns the removal animations still playing.
func (l *Level) Effects() []*Effect { return l.effects }

func (l *Level) advanceAnimations(dt time.Duration) {
	for z := range l.planes {
		for _, e := range l.planes[z] {
			a := e.base()
			if a.visible && a.animator != nil {
				a.animator.Advance(dt)
			}
		}
	}
	live := l.effects[:0]
	for _, fx := range l.effects {
		fx.Animator.Advance(dt)
		if !fx.Animator.Done() {
			live = append(live, fx)
		}
	}
	l.effects = live
}
