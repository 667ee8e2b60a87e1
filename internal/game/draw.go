package game

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jbeda/geom"

	"github.com/iburimskiy/sectors/internal/config"
	"github.com/iburimskiy/sectors/internal/geometry"
	"github.com/iburimskiy/sectors/internal/palette"
	"github.com/iburimskiy/sectors/internal/sectors"
)

var (
	outlineColor = color.RGBA{R: 28, G: 34, B: 48, A: 255}
	panelColor   = color.RGBA{R: 20, G: 25, B: 35, A: 200}
	borderColor  = color.RGBA{R: 150, G: 170, B: 200, A: 255}
	textBoxColor = color.RGBA{R: 10, G: 12, B: 20, A: 255}
)

// whitePixel is the source image for DrawTriangles; created on first draw.
var whitePixel *ebiten.Image

func whiteSubImage() *ebiten.Image {
	if whitePixel == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whitePixel = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whitePixel
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackground(screen)

	g.drawCircle(screen)
	g.drawSlider(screen)
	g.drawSteppers(screen)
	g.drawModeButtons(screen)
	if g.state.Mode == sectors.ModeTap {
		g.drawTapPad(screen)
	}
	g.drawButton(screen, exportRect, widgetExport, "Export SVG", false)
	g.drawStatus(screen)
}

func (g *Game) drawBackground(screen *ebiten.Image) {
	// Vertical gradient in 4px bands
	for y := 0; y < config.WindowHeight; y += 4 {
		ratio := float64(y) / float64(config.WindowHeight)
		c := color.RGBA{R: uint8(14 + 10*ratio), G: uint8(18 + 12*ratio), B: uint8(28 + 20*ratio), A: 255}
		vector.DrawFilledRect(screen, 0, float32(y), config.WindowWidth, 4, c, false)
	}
	vector.DrawFilledRect(screen, float32(config.PanelX-10), 10, float32(config.PanelWidth+20), float32(config.WindowHeight-20), panelColor, false)
}

func (g *Game) drawCircle(screen *ebiten.Image) {
	if len(g.frame.Sectors) == 0 {
		return
	}

	t := easeOut(float64(g.animFrame) / float64(config.AnimationFrames))
	scale := 0.85 + 0.15*t
	alpha := float32(0.35 + 0.65*t)
	offset := geom.Coord{X: float64(circleRect.X), Y: float64(circleRect.Y)}
	center := g.frame.Center()

	for _, sec := range g.frame.Sectors {
		var path vector.Path
		appendSectorPath(&path, sec.Path, center, scale, offset)

		fill := palette.Slice(sec.Index, g.frame.N)
		if sec.Index == g.hoverSector && g.state.Mode != sectors.ModeTap {
			fill = scaleColor(fill, 1.15)
		}
		vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
		drawTriangles(screen, vs, is, fill, alpha)

		vs, is = path.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{
			Width:    2,
			LineJoin: vector.LineJoinRound,
		})
		drawTriangles(screen, vs, is, outlineColor, alpha)
	}

	// Slice labels once they still fit
	if g.frame.N <= 12 {
		label := fraction(g.frame.N)
		for _, sec := range g.frame.Sectors {
			mid := (sec.Start + sec.End) / 2
			p := geometry.Polar(mid, g.frame.Radius()*0.62*scale).Plus(center).Plus(offset)
			if g.frame.N == 1 {
				p = center.Plus(offset)
			}
			ebitenutil.DebugPrintAt(screen, label, int(p.X)-len(label)*3, int(p.Y)-8)
		}
	}
}

// appendSectorPath converts a sector outline into an ebiten path, scaled
// about center and moved by offset. Arcs keep their sweep direction.
func appendSectorPath(dst *vector.Path, p geometry.Path, center geom.Coord, scale float64, offset geom.Coord) {
	at := func(c geom.Coord) geom.Coord {
		return c.Minus(center).Times(scale).Plus(center).Plus(offset)
	}
	o := center.Plus(offset)
	var prevAngle float64

	for _, cmd := range p.Commands {
		switch cmd.Op {
		case geometry.OpMove:
			q := at(cmd.To)
			dst.MoveTo(float32(q.X), float32(q.Y))
		case geometry.OpLine:
			q := at(cmd.To)
			dst.LineTo(float32(q.X), float32(q.Y))
			prevAngle = math.Atan2(cmd.To.Y-center.Y, cmd.To.X-center.X)
		case geometry.OpArc:
			end := math.Atan2(cmd.To.Y-center.Y, cmd.To.X-center.X)
			delta := math.Mod(end-prevAngle, 2*math.Pi)
			if delta < 0 {
				delta += 2 * math.Pi
			}
			if !cmd.Sweep {
				delta -= 2 * math.Pi
			}
			dir := vector.Clockwise
			if delta < 0 {
				dir = vector.CounterClockwise
			}
			dst.Arc(float32(o.X), float32(o.Y), float32(cmd.Radius*scale), float32(prevAngle), float32(prevAngle+delta), dir)
			prevAngle += delta
		case geometry.OpClose:
			dst.Close()
		}
	}
}

func drawTriangles(screen *ebiten.Image, vs []ebiten.Vertex, is []uint16, c color.RGBA, alpha float32) {
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(c.R) / 255
		vs[i].ColorG = float32(c.G) / 255
		vs[i].ColorB = float32(c.B) / 255
		vs[i].ColorA = float32(c.A) / 255 * alpha
	}
	screen.DrawTriangles(vs, is, whiteSubImage(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (g *Game) drawSlider(screen *ebiten.Image) {
	r := sliderRect
	_, cy := r.center()
	vector.DrawFilledRect(screen, float32(r.X), float32(cy-3), float32(r.W), 6, color.RGBA{R: 60, G: 70, B: 90, A: 255}, false)

	kx, ky := knobCenter(g.state.N)
	vector.DrawFilledRect(screen, float32(r.X), float32(cy-3), float32(kx)-float32(r.X), 6, palette.Slice(0, 1), false)
	vector.DrawFilledCircle(screen, float32(kx), float32(ky), 10, color.White, true)
	vector.StrokeCircle(screen, float32(kx), float32(ky), 10, 2, outlineColor, true)

	ebitenutil.DebugPrintAt(screen, fmt.Sprint(config.MinSectors), r.X, r.Y+r.H+2)
	ebitenutil.DebugPrintAt(screen, fmt.Sprint(config.MaxSectors), r.X+r.W-12, r.Y+r.H+2)
}

func (g *Game) drawSteppers(screen *ebiten.Image) {
	g.drawButton(screen, decreaseRect, widgetDecrease, "-", false)
	g.drawButton(screen, increaseRect, widgetIncrease, "+", false)

	// Entry field
	r := entryRect
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), textBoxColor, false)
	border := borderColor
	if g.entry.focused {
		border = palette.Slice(0, 1)
	}
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 2, border, false)

	text := g.entry.text
	if g.entry.focused && (g.tick/30)%2 == 0 {
		text += "_"
	}
	ebitenutil.DebugPrintAt(screen, text, r.X+8, r.Y+(r.H-16)/2)
}

func (g *Game) drawModeButtons(screen *ebiten.Image) {
	for _, m := range modeWidgets {
		g.drawButton(screen, m.rect, m.id, m.mode.String(), g.state.Mode == m.mode)
	}
}

func (g *Game) drawTapPad(screen *ebiten.Image) {
	r := tapPadRect
	bg := color.RGBA{R: 40, G: 50, B: 75, A: 255}
	if g.hovered == widgetTapPad {
		bg = color.RGBA{R: 55, G: 68, B: 100, A: 255}
	}
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), bg, false)
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 2, borderColor, false)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TAP HERE   taps: %d", g.state.TapCount), r.X+10, r.Y+8)

	g.drawScope(screen, r)
	g.drawButton(screen, resetTapsRect, widgetResetTaps, "Reset taps", false)
}

// drawScope draws the waveform of the most recent tap tone across the pad.
func (g *Game) drawScope(screen *ebiten.Image, r rect) {
	if g.scope == nil {
		return
	}
	samples := g.scope.Snapshot(r.W - 20)
	if len(samples) < 2 {
		return
	}
	_, cy := r.center()
	amp := float64(r.H-40) / 2
	x0 := float32(r.X + 10)
	for i := 1; i < len(samples); i++ {
		y1 := float64(cy) + 10 - samples[i-1][0]*amp*2
		y2 := float64(cy) + 10 - samples[i][0]*amp*2
		vector.StrokeLine(screen, x0+float32(i-1), float32(y1), x0+float32(i), float32(y2), 1.5, palette.Slice(0, 1), true)
	}
}

func (g *Game) drawButton(screen *ebiten.Image, r rect, id widget, text string, active bool) {
	// Button background
	var bgColor color.Color
	switch {
	case active:
		bgColor = color.RGBA{R: 200, G: 120, B: 60, A: 255}
	case g.pressed == id:
		bgColor = color.RGBA{R: 60, G: 80, B: 120, A: 255}
	case g.hovered == id:
		bgColor = color.RGBA{R: 80, G: 100, B: 140, A: 255}
	default:
		bgColor = color.RGBA{R: 100, G: 120, B: 160, A: 255}
	}
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), bgColor, false)
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 2, borderColor, false)

	textWidth := len(text) * 6 // DebugPrint glyphs are 6px wide
	ebitenutil.DebugPrintAt(screen, text, r.X+(r.W-textWidth)/2, r.Y+(r.H-16)/2)
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	x, y := config.PanelX, config.PanelY-20
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("N = %d    each slice = %s", g.state.N, fraction(g.state.N)), x, y)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Mode: %s    Taps: %d", g.state.Mode, g.state.TapCount), x, y+18)
	ebitenutil.DebugPrintAt(screen, g.state.Mode.Hint(), x, y+36)
	ebitenutil.DebugPrintAt(screen, "Arrows: +/-   1/2/3: mode   R: reset   S: export", x, y+54)

	status := g.notice
	if g.lastErr != nil {
		status = "Error: " + g.lastErr.Error()
	}
	if status != "" {
		ebitenutil.DebugPrintAt(screen, status, config.CircleX, config.WindowHeight-18)
	}
}
