package host

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/lol/assets"
	"github.com/milk9111/lol/lol"
	"github.com/milk9111/lol/physics"
)

var (
	background   = color.NRGBA{R: 0x1c, G: 0x1f, B: 0x2b, A: 0xff}
	controlColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x30}
	heldColor    = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x60}
)

// entityColor is the fill used when an entity has no image.
func entityColor(e lol.Entity) color.NRGBA {
	switch e.(type) {
	case *lol.Hero:
		return color.NRGBA{R: 0x4c, G: 0xaf, B: 0xf5, A: 0xff}
	case *lol.Enemy:
		return color.NRGBA{R: 0xe5, G: 0x48, B: 0x4d, A: 0xff}
	case *lol.Goodie:
		return color.NRGBA{R: 0xf5, G: 0xc5, B: 0x42, A: 0xff}
	case *lol.Destination:
		return color.NRGBA{R: 0x5c, G: 0xd6, B: 0x7a, A: 0xff}
	case *lol.Projectile:
		return color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	default:
		return color.NRGBA{R: 0x8a, G: 0x8f, B: 0x9c, A: 0xff}
	}
}

// renderer draws a level through its camera.
type renderer struct {
	loader *assets.Loader
	ppm    float64
}

func (r *renderer) drawLevel(screen *ebiten.Image, l *lol.Level) {
	screen.Fill(background)
	r.ppm = l.Game().Config().PixelsPerMeter * l.Camera().Zoom

	l.EachVisible(func(e lol.Entity) {
		a := lol.Base(e)
		c := a.Center()
		r.drawBody(screen, l, a.Image(), entityColor(e), c.X, c.Y, a.Width(), a.Height(), a.Angle(), a.Body().Shape() == physics.Circle)
	})
	for _, fx := range l.Effects() {
		img := fx.Animator.Image()
		if img == "" {
			continue
		}
		r.drawBody(screen, l, img, color.NRGBA{}, fx.X+fx.Width/2, fx.Y+fx.Height/2, fx.Width, fx.Height, 0, false)
	}
	for _, c := range l.Controls() {
		if !c.Active {
			continue
		}
		r.drawControl(screen, c)
	}
}

// drawBody draws an image or a plain shape centered on cx,cy meters.
func (r *renderer) drawBody(screen *ebiten.Image, l *lol.Level, name string, fill color.NRGBA, cx, cy, w, h, angle float64, circle bool) {
	sx, sy := l.WorldToScreen(cx, cy)
	pw, ph := w*r.ppm, h*r.ppm

	if img := r.loader.Image(name); img != nil {
		b := img.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
		op.GeoM.Scale(pw/float64(b.Dx()), ph/float64(b.Dy()))
		op.GeoM.Rotate(-angle)
		op.GeoM.Translate(sx, sy)
		screen.DrawImage(img, op)
		return
	}
	if fill.A == 0 {
		return
	}
	if circle {
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(math.Min(pw, ph)/2), fill, true)
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-0.5, -0.5)
	op.GeoM.Scale(pw, ph)
	op.GeoM.Rotate(-angle)
	op.GeoM.Translate(sx, sy)
	op.ColorScale.ScaleWithColor(fill)
	screen.DrawImage(whitePixel(), op)
}

func (r *renderer) drawControl(screen *ebiten.Image, c *lol.Control) {
	if img := r.loader.Image(c.Image); img != nil {
		b := img.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(c.Width/float64(b.Dx()), c.Height/float64(b.Dy()))
		op.GeoM.Translate(c.X, c.Y)
		if c.Held() {
			op.ColorScale.ScaleAlpha(0.6)
		}
		screen.DrawImage(img, op)
		return
	}
	fill := controlColor
	if c.Held() {
		fill = heldColor
	}
	vector.DrawFilledRect(screen, float32(c.X), float32(c.Y), float32(c.Width), float32(c.Height), fill, false)
	vector.StrokeRect(screen, float32(c.X), float32(c.Y), float32(c.Width), float32(c.Height), 1, heldColor, false)
}

// hudText summarizes the score in the top-left corner.
func hudText(l *lol.Level) string {
	var b strings.Builder
	s := l.Score()
	g := s.Goodies()
	fmt.Fprintf(&b, "Level %d", l.Number())
	fmt.Fprintf(&b, "\nGoodies %d %d %d %d", g[0], g[1], g[2], g[3])
	switch s.Mode() {
	case lol.VictoryEnemies:
		fmt.Fprintf(&b, "\nEnemies %d/%d", s.EnemiesDefeated(), s.EnemiesCreated())
	case lol.VictoryDestination:
		fmt.Fprintf(&b, "\nArrived %d", s.Arrivals())
	}
	for i, h := range l.Heroes() {
		if !h.Visible() {
			continue
		}
		fmt.Fprintf(&b, "\nHero %d strength %d", i+1, h.Strength())
		if h.Invincible() {
			fmt.Fprintf(&b, " invincible %.1fs", h.InvincibleRemaining())
		}
	}
	if pool := l.Projectiles(); pool != nil && pool.Remaining() >= 0 {
		fmt.Fprintf(&b, "\nShots %d", pool.Remaining())
	}
	if left, ok := l.Countdown(true); ok {
		fmt.Fprintf(&b, "\nSurvive %.0fs", math.Ceil(left))
	}
	if left, ok := l.Countdown(false); ok {
		fmt.Fprintf(&b, "\nTime left %.0fs", math.Ceil(left))
	}
	return b.String()
}

func drawHUD(screen *ebiten.Image, l *lol.Level) {
	ebitenutil.DebugPrintAt(screen, hudText(l), 10, 10)
}

var white *ebiten.Image

func whitePixel() *ebiten.Image {
	if white == nil {
		white = ebiten.NewImage(1, 1)
		white.Fill(color.White)
	}
	return white
}

const debugCircleSegments = 24

// debugDrawer outlines every physics shape in screen space.
type debugDrawer struct {
	screen *ebiten.Image
	level  *lol.Level
}

func drawPhysicsDebug(screen *ebiten.Image, l *lol.Level) {
	cp.DrawSpace(l.World().Space(), &debugDrawer{screen: screen, level: l})
}

func (d *debugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *debugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *debugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *debugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *debugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	x, y := d.level.WorldToScreen(pos.X, pos.Y)
	vector.DrawFilledCircle(d.screen, float32(x), float32(y), float32(max(size, 2)/2), toNRGBA(fill), false)
}

func (d *debugDrawer) Flags() uint {
	return cp.DRAW_SHAPES | cp.DRAW_CONSTRAINTS | cp.DRAW_COLLISION_POINTS
}

func (d *debugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *debugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape.Sensor() {
		return cp.FColor{R: 1, G: 1, B: 0.2, A: 0.6}
	}
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *debugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *debugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *debugDrawer) Data() interface{} {
	return nil
}

func (d *debugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x1, y1 := d.level.WorldToScreen(a.X, a.Y)
	x2, y2 := d.level.WorldToScreen(b.X, b.Y)
	ebitenutil.DrawLine(d.screen, x1, y1, x2, y2, toNRGBA(c))
}

func (d *debugDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *debugDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, c)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
