package geometry

import (
	"math"

	"github.com/jbeda/geom"
)

// fullTurnEpsilon absorbs float error when deciding that a sweep is a whole circle.
const fullTurnEpsilon = 1e-9

// topOffset rotates slice 0 so that it starts at 12 o'clock.
const topOffset = -math.Pi / 2

// Polar converts an angle (radians) and radius into a point relative to the origin.
func Polar(angle, radius float64) geom.Coord {
	return geom.Coord{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
}

// SectorAngles returns the start and end angle of slice i out of n.
func SectorAngles(i, n int) (float64, float64) {
	step := 2 * math.Pi / float64(n)
	return float64(i)*step + topOffset, float64(i+1)*step + topOffset
}

// SectorPath builds the outline of one pie slice: center, out to the start
// angle, clockwise arc to the end angle, and back to the center.
func SectorPath(center geom.Coord, radius, start, end float64) Path {
	p := Path{}
	p.MoveTo(center)
	p.LineTo(Polar(start, radius).Plus(center))

	sweep := end - start
	if sweep >= 2*math.Pi-fullTurnEpsilon {
		// Coincident endpoints: a single arc would be dropped by SVG renderers.
		mid := start + sweep/2
		p.ArcTo(Polar(mid, radius).Plus(center), radius, false, true)
		p.ArcTo(Polar(end, radius).Plus(center), radius, false, true)
	} else {
		p.ArcTo(Polar(end, radius).Plus(center), radius, sweep > math.Pi, true)
	}

	p.Close()
	return p
}

// Sector is one slice of the circle together with its outline.
type Sector struct {
	Index      int
	Start, End float64
	Path       Path
}

// Sectors lays out n equal slices around center.
func Sectors(n int, center geom.Coord, radius float64) []Sector {
	if n < 1 {
		return nil
	}
	out := make([]Sector, 0, n)
	for i := 0; i < n; i++ {
		start, end := SectorAngles(i, n)
		out = append(out, Sector{
			Index: i,
			Start: start,
			End:   end,
			Path:  SectorPath(center, radius, start, end),
		})
	}
	return out
}

// SectorAt reports which of n slices contains p. Points farther than radius
// from center belong to no slice.
func SectorAt(center geom.Coord, radius float64, n int, p geom.Coord) (int, bool) {
	if n < 1 {
		return 0, false
	}
	d := p.Minus(center)
	if math.Hypot(d.X, d.Y) > radius {
		return 0, false
	}

	// Angle measured clockwise (screen coordinates) from 12 o'clock.
	a := math.Mod(math.Atan2(d.Y, d.X)-topOffset, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	i := int(a / (2 * math.Pi / float64(n)))
	if i >= n {
		i = n - 1
	}
	return i, true
}
