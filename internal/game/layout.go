package game

import (
	"github.com/iburimskiy/sectors/internal/config"
	"github.com/iburimskiy/sectors/internal/sectors"
)

type widget int

const (
	widgetNone widget = iota
	widgetCircle
	widgetSlider
	widgetDecrease
	widgetEntry
	widgetIncrease
	widgetModeCut
	widgetModeMerge
	widgetModeTap
	widgetTapPad
	widgetResetTaps
	widgetExport
)

type rect struct {
	X, Y, W, H int
}

func (r rect) contains(x, y int) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

func (r rect) center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

const (
	stepperWidth = 56
	sliderHeight = 24
	tapPadHeight = 150
)

var (
	circleRect = rect{config.CircleX, config.CircleY, config.CircleSize, config.CircleSize}

	sliderRect = rect{config.PanelX, config.PanelY + 80, config.PanelWidth, sliderHeight}

	stepperY      = sliderRect.Y + sliderHeight + 24
	decreaseRect  = rect{config.PanelX, stepperY, stepperWidth, config.ButtonHeight}
	increaseRect  = rect{config.PanelX + config.PanelWidth - stepperWidth, stepperY, stepperWidth, config.ButtonHeight}
	entryRect     = rect{decreaseRect.X + stepperWidth + config.ButtonGap, stepperY, config.PanelWidth - 2*(stepperWidth+config.ButtonGap), config.ButtonHeight}
	modeY         = stepperY + config.ButtonHeight + config.ButtonGap*2
	modeWidth     = (config.PanelWidth - 2*config.ButtonGap) / 3
	modeCutRect   = rect{config.PanelX, modeY, modeWidth, config.ButtonHeight}
	modeMergeRect = rect{config.PanelX + modeWidth + config.ButtonGap, modeY, modeWidth, config.ButtonHeight}
	modeTapRect   = rect{config.PanelX + 2*(modeWidth+config.ButtonGap), modeY, modeWidth, config.ButtonHeight}

	tapPadRect    = rect{config.PanelX, modeY + config.ButtonHeight + config.ButtonGap*2, config.PanelWidth, tapPadHeight}
	resetTapsRect = rect{config.PanelX, tapPadRect.Y + tapPadHeight + config.ButtonGap, config.PanelWidth, config.ButtonHeight}

	exportRect = rect{config.PanelX, config.WindowHeight - config.ButtonHeight - 20, config.PanelWidth, config.ButtonHeight}
)

// modeWidgets lists the mode buttons in display order.
var modeWidgets = []struct {
	id   widget
	mode sectors.Mode
	rect rect
}{
	{widgetModeCut, sectors.ModeCut, modeCutRect},
	{widgetModeMerge, sectors.ModeMerge, modeMergeRect},
	{widgetModeTap, sectors.ModeTap, modeTapRect},
}

// widgetAt returns the control under (x, y). The tap pad and its reset
// button only exist in Tap mode.
func widgetAt(x, y int, mode sectors.Mode) widget {
	switch {
	case circleRect.contains(x, y):
		return widgetCircle
	case sliderRect.contains(x, y):
		return widgetSlider
	case decreaseRect.contains(x, y):
		return widgetDecrease
	case increaseRect.contains(x, y):
		return widgetIncrease
	case entryRect.contains(x, y):
		return widgetEntry
	case exportRect.contains(x, y):
		return widgetExport
	}
	for _, m := range modeWidgets {
		if m.rect.contains(x, y) {
			return m.id
		}
	}
	if mode == sectors.ModeTap {
		if tapPadRect.contains(x, y) {
			return widgetTapPad
		}
		if resetTapsRect.contains(x, y) {
			return widgetResetTaps
		}
	}
	return widgetNone
}

// sliderValue maps a pointer x position onto [MinSectors, MaxSectors].
// The result is fractional; the controller truncates it.
func sliderValue(x int) float64 {
	ratio := clamp01(float64(x-sliderRect.X) / float64(sliderRect.W))
	span := float64(config.MaxSectors - config.MinSectors)
	// span+0.999 gives the top value the same share of the track as the others
	return config.MinSectors + ratio*(span+0.999)
}

// sliderX is the knob position for n.
func sliderX(n int) float64 {
	span := float64(config.MaxSectors - config.MinSectors)
	ratio := (float64(n-config.MinSectors) + 0.5) / (span + 1)
	return float64(sliderRect.X) + clamp01(ratio)*float64(sliderRect.W)
}

// knobCenter is where the slider knob sits for n.
func knobCenter(n int) (float64, float64) {
	_, cy := sliderRect.center()
	return sliderX(n), float64(cy)
}
