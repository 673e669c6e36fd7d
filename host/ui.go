package host

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/lol/lol"
	"golang.org/x/image/font/basicfont"
)

var (
	panelColor  = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200}
	buttonColor = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}
	lockedColor = color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 255}
	textColor   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	dimColor    = color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
)

func uiFace() *ebtext.Face {
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	return &face
}

func label(face *ebtext.Face, s string, c color.Color) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(s, face, c),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
}

func button(face *ebtext.Face, s string, bg color.Color, fg color.Color, onClick func()) *widget.Button {
	img := imageui.NewNineSliceColor(bg)
	return widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: img, Pressed: img}),
		widget.ButtonOpts.Text(s, face, &widget.ButtonTextColor{Idle: fg}),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(160, 28),
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}),
		),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

// panelUI centers a vertical panel sized to half the screen.
func panelUI(w, h int, children ...widget.PreferredSizeLocateableWidget) *ebitenui.UI {
	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(panelColor)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(w/2, h/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	for _, c := range children {
		panel.AddChild(c)
	}
	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

// newSplashUI shows the title with play and quit buttons.
func newSplashUI(g *lol.Game) *ebitenui.UI {
	cfg := g.Config()
	face := uiFace()
	return panelUI(cfg.Width, cfg.Height,
		label(face, cfg.Title, textColor),
		button(face, "Play", buttonColor, textColor, g.ShowChooser),
		button(face, "Quit", buttonColor, textColor, g.DoQuit),
	)
}

// newChooserUI lists every level. Locked levels are dimmed and refuse
// the click.
func newChooserUI(g *lol.Game) *ebitenui.UI {
	cfg := g.Config()
	face := uiFace()
	unlocked := g.Unlocked()

	grid := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(5),
			widget.GridLayoutOpts.Spacing(6, 6),
		)),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	for n := 1; n <= cfg.NumLevels; n++ {
		bg, fg := buttonColor, textColor
		if n > unlocked {
			bg, fg = lockedColor, dimColor
		}
		grid.AddChild(button(face, fmt.Sprintf("%d", n), bg, fg, func() { g.ChooseLevel(n) }))
	}
	return panelUI(cfg.Width, cfg.Height,
		label(face, "Choose a level", textColor),
		grid,
		button(face, "Back", buttonColor, textColor, func() { g.HandleBack() }),
	)
}

// newSceneUI shows a modal scene's text. Any touch dismisses the scene, so
// the panel has no buttons.
func newSceneUI(g *lol.Game, s *lol.Scene) *ebitenui.UI {
	cfg := g.Config()
	face := uiFace()
	title := "Paused"
	switch s.Kind {
	case lol.ScenePre:
		title = fmt.Sprintf("Level %d", g.LevelNumber())
	case lol.ScenePost:
		title = "You lost"
		if s.Win {
			title = "Level complete"
		}
	}
	children := []widget.PreferredSizeLocateableWidget{label(face, title, textColor)}
	if s.Text != "" {
		children = append(children, label(face, s.Text, textColor))
	}
	children = append(children, label(face, "tap to continue", dimColor))
	return panelUI(cfg.Width, cfg.Height, children...)
}

// overlay caches the ebitenui tree for the screen on display and rebuilds
// it when that screen changes.
type overlay struct {
	key string
	ui  *ebitenui.UI
}

func overlayKey(g *lol.Game) string {
	switch g.Mode() {
	case lol.ModeSplash:
		return "splash"
	case lol.ModeChooser:
		return fmt.Sprintf("chooser:%d", g.Unlocked())
	}
	if s := g.Modal(); s != nil {
		return fmt.Sprintf("scene:%d:%d:%v:%s", g.LevelNumber(), s.Kind, s.Win, s.Text)
	}
	return ""
}

// sync returns the UI for the current screen, or nil during play.
func (o *overlay) sync(g *lol.Game) *ebitenui.UI {
	key := overlayKey(g)
	if key == o.key {
		return o.ui
	}
	o.key = key
	switch {
	case key == "":
		o.ui = nil
	case g.Mode() == lol.ModeSplash:
		o.ui = newSplashUI(g)
	case g.Mode() == lol.ModeChooser:
		o.ui = newChooserUI(g)
	default:
		o.ui = newSceneUI(g, g.Modal())
	}
	return o.ui
}
