package dialog

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

// box is the on-screen panel for a session. It is built on first draw so
// sessions can run without a graphics context.
type box struct {
	ui      *ebitenui.UI
	speaker *widget.Text
	line    *widget.Text
}

func newBox(speaker string, width int) *box {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0xf5, G: 0xf1, B: 0xde, A: 235})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

	name := widget.NewText(
		widget.TextOpts.Text(speaker, &face, colornames.Darkslategray),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionStart})),
	)
	line := widget.NewText(
		widget.TextOpts.Text("", &face, color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionStart})),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 16, Bottom: 16, Left: 24, Right: 24}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(width*2/3, 96),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
			}),
		),
	)
	panel.AddChild(name)
	panel.AddChild(line)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)

	return &box{ui: &ebitenui.UI{Container: root}, speaker: name, line: line}
}

// Draw renders the current line in a panel along the bottom of screen.
func (s *Session) Draw(screen *ebiten.Image) {
	if s.Done() {
		return
	}
	if s.box == nil {
		s.box = newBox(s.id, screen.Bounds().Dx())
	}
	s.box.line.Label = s.Line()
	s.box.ui.Update()
	s.box.ui.Draw(screen)
}
