package game

import (
	"fmt"
	"image/color"
	"math"
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// easeOut is a cubic ease for the re-render animation.
func easeOut(t float64) float64 {
	t = clamp01(t)
	return 1 - math.Pow(1-t, 3)
}

// fraction formats the share of one slice, e.g. "1/6".
func fraction(n int) string {
	return fmt.Sprintf("1/%d", n)
}

// scaleColor multiplies the RGB channels by f, keeping alpha.
func scaleColor(c color.RGBA, f float64) color.RGBA {
	mul := func(v uint8) uint8 {
		return uint8(math.Min(255, float64(v)*f))
	}
	return color.RGBA{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: c.A}
}
