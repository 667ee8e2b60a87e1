package game

import (
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jbeda/geom"

	"github.com/iburimskiy/sectors/internal/geometry"
	"github.com/iburimskiy/sectors/internal/sectors"
)

// entryField is the numeric text box next to the steppers.
type entryField struct {
	focused bool
	text    string
	runes   []rune
}

const entryMaxLen = 2

var watchedKeys = []ebiten.Key{
	ebiten.KeyArrowUp, ebiten.KeyArrowRight, ebiten.KeyArrowDown, ebiten.KeyArrowLeft,
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyR, ebiten.KeyS, ebiten.KeyQ, ebiten.KeyEscape,
	ebiten.KeyEnter, ebiten.KeyNumpadEnter, ebiten.KeyBackspace,
}

func (g *Game) updatePointer() {
	mouseX, mouseY := ebiten.CursorPosition()
	g.hovered = widgetAt(mouseX, mouseY, g.state.Mode)
	g.hoverSector = -1
	if g.hovered == widgetCircle {
		if i, ok := g.sectorAt(mouseX, mouseY); ok {
			g.hoverSector = i
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.pointerPressed(mouseX, mouseY)
	}
	if g.sliderDragging && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.ctrl.Dispatch(sectors.SetN{Value: sliderValue(mouseX)})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.pointerReleased(mouseX, mouseY)
	}
}

// updateTouches treats each new touch as a complete press and release.
func (g *Game) updateTouches() {
	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		x, y := ebiten.TouchPosition(id)
		g.pointerPressed(x, y)
		g.pointerReleased(x, y)
	}
}

func (g *Game) pointerPressed(x, y int) {
	w := widgetAt(x, y, g.state.Mode)
	if w == widgetEntry {
		g.focusEntry()
	} else {
		g.blurEntry()
	}

	switch w {
	case widgetTapPad:
		// Taps fire on press so rhythmic tapping feels immediate.
		g.ctrl.Dispatch(sectors.TapPad{})
	case widgetSlider:
		g.sliderDragging = true
		g.ctrl.Dispatch(sectors.SetN{Value: sliderValue(x)})
	default:
		g.pressed = w
	}
}

func (g *Game) pointerReleased(x, y int) {
	w := widgetAt(x, y, g.state.Mode)
	if g.pressed != widgetNone && w == g.pressed {
		g.click(w, x, y)
	}
	g.pressed = widgetNone
	g.sliderDragging = false
}

func (g *Game) click(w widget, x, y int) {
	n := g.ctrl.State().N
	switch w {
	case widgetCircle:
		if i, ok := g.sectorAt(x, y); ok {
			g.ctrl.Dispatch(sectors.SectorClick{Index: i})
		}
	case widgetDecrease:
		g.ctrl.Dispatch(sectors.SetN{Value: float64(n - 1)})
	case widgetIncrease:
		g.ctrl.Dispatch(sectors.SetN{Value: float64(n + 1)})
	case widgetResetTaps:
		g.ctrl.Dispatch(sectors.ResetTaps{})
	case widgetExport:
		g.exportFrame()
	}
	for _, m := range modeWidgets {
		if m.id == w {
			g.ctrl.Dispatch(sectors.SwitchMode{Mode: m.mode})
		}
	}
}

// sectorAt maps a screen position to a slice of the rendered frame.
func (g *Game) sectorAt(x, y int) (int, bool) {
	p := geom.Coord{X: float64(x - circleRect.X), Y: float64(y - circleRect.Y)}
	return geometry.SectorAt(g.frame.Center(), g.frame.Radius(), g.frame.N, p)
}

func (g *Game) updateKeys() error {
	for _, k := range watchedKeys {
		if inpututil.IsKeyJustPressed(k) {
			if err := g.handleKey(k); err != nil {
				return err
			}
		}
	}
	return nil
}

// handleKey applies one key press. Returning ebiten.Termination quits.
func (g *Game) handleKey(k ebiten.Key) error {
	if g.entry.focused {
		switch k {
		case ebiten.KeyEnter, ebiten.KeyNumpadEnter:
			g.submitEntry()
		case ebiten.KeyBackspace:
			if len(g.entry.text) > 0 {
				g.entry.text = g.entry.text[:len(g.entry.text)-1]
			}
		case ebiten.KeyEscape:
			g.blurEntry()
		case ebiten.KeyArrowUp, ebiten.KeyArrowRight:
			g.ctrl.Dispatch(sectors.ArrowKey{Delta: 1, InTextField: true})
		case ebiten.KeyArrowDown, ebiten.KeyArrowLeft:
			g.ctrl.Dispatch(sectors.ArrowKey{Delta: -1, InTextField: true})
		}
		return nil
	}

	switch k {
	case ebiten.KeyArrowUp, ebiten.KeyArrowRight:
		g.ctrl.Dispatch(sectors.ArrowKey{Delta: 1})
	case ebiten.KeyArrowDown, ebiten.KeyArrowLeft:
		g.ctrl.Dispatch(sectors.ArrowKey{Delta: -1})
	case ebiten.KeyDigit1:
		g.ctrl.Dispatch(sectors.SwitchMode{Mode: sectors.ModeCut})
	case ebiten.KeyDigit2:
		g.ctrl.Dispatch(sectors.SwitchMode{Mode: sectors.ModeMerge})
	case ebiten.KeyDigit3:
		g.ctrl.Dispatch(sectors.SwitchMode{Mode: sectors.ModeTap})
	case ebiten.KeyR:
		g.ctrl.Dispatch(sectors.ResetTaps{})
	case ebiten.KeyS:
		g.exportFrame()
	case ebiten.KeyEscape, ebiten.KeyQ:
		return ebiten.Termination
	}
	return nil
}

func (g *Game) updateEntry() {
	g.entry.runes = ebiten.AppendInputChars(g.entry.runes[:0])
	g.typeRunes(g.entry.runes)
}

// typeRunes appends ASCII digits to the entry field, ignoring everything else.
// The text stays ASCII, so byte length and Backspace work per character.
func (g *Game) typeRunes(rs []rune) {
	for _, r := range rs {
		if r < '0' || r > '9' || len(g.entry.text) >= entryMaxLen {
			continue
		}
		g.entry.text += string(r)
	}
}

func (g *Game) focusEntry() {
	if g.entry.focused {
		return
	}
	g.entry.focused = true
	g.entry.text = ""
}

// blurEntry drops focus and shows the current N again; unsubmitted text is discarded.
func (g *Game) blurEntry() {
	g.entry.focused = false
	g.entry.text = strconv.Itoa(g.ctrl.State().N)
}

func (g *Game) submitEntry() {
	if v, err := strconv.Atoi(g.entry.text); err == nil {
		g.ctrl.Dispatch(sectors.SetN{Value: float64(v)})
	}
	g.blurEntry()
}

func (g *Game) exportFrame() {
	if g.export == nil {
		return
	}
	path, err := g.export(g.ctrl.Frame(), g.exportDir)
	if err != nil {
		g.lastErr = err
		g.log.Printf("export: %v", err)
		return
	}
	g.lastErr = nil
	if path != "" {
		g.notice = "Saved " + path
		g.log.Printf("exported %d slices to %s", g.ctrl.State().N, path)
	}
}
