package palette

import (
	"image/color"
	"math"
)

// HSVToRGB converts HSV to RGB (hue: 0-360, saturation: 0-1, value: 0-1)
func HSVToRGB(h, s, v float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return uint8((r + m) * 255), uint8((g + m) * 255), uint8((b + m) * 255)
}

// Slice spreads n slices evenly around the hue wheel, starting at orange.
func Slice(i, n int) color.RGBA {
	if n < 1 {
		n = 1
	}
	hue := 30 + float64(i)*360/float64(n)
	r, g, b := HSVToRGB(hue, 0.65, 0.95)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Hex formats c as "#rrggbb".
func Hex(c color.RGBA) string {
	const digits = "0123456789abcdef"
	buf := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint8{c.R, c.G, c.B} {
		buf[1+2*i] = digits[v>>4]
		buf[2+2*i] = digits[v&0x0f]
	}
	return string(buf)
}
