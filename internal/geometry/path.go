package geometry

import (
	"strconv"
	"strings"

	"github.com/jbeda/geom"
)

type Op byte

const (
	OpMove  Op = 'M'
	OpLine  Op = 'L'
	OpArc   Op = 'A'
	OpClose Op = 'Z'
)

// Command is a single path instruction. Radius, LargeArc and Sweep are only
// meaningful for OpArc.
type Command struct {
	Op       Op
	To       geom.Coord
	Radius   float64
	LargeArc bool
	Sweep    bool
}

// Path is an ordered list of drawing commands that serializes to an SVG "d" attribute.
type Path struct {
	Commands []Command
}

func (p *Path) MoveTo(to geom.Coord) {
	p.Commands = append(p.Commands, Command{Op: OpMove, To: to})
}

func (p *Path) LineTo(to geom.Coord) {
	p.Commands = append(p.Commands, Command{Op: OpLine, To: to})
}

func (p *Path) ArcTo(to geom.Coord, radius float64, largeArc, sweep bool) {
	p.Commands = append(p.Commands, Command{Op: OpArc, To: to, Radius: radius, LargeArc: largeArc, Sweep: sweep})
}

func (p *Path) Close() {
	p.Commands = append(p.Commands, Command{Op: OpClose})
}

// Count returns how many commands of the given kind the path holds.
func (p Path) Count(op Op) int {
	n := 0
	for _, c := range p.Commands {
		if c.Op == op {
			n++
		}
	}
	return n
}

// String renders the path in SVG syntax, e.g. "M100,100 L100,10 A90,90 0 0,1 177.942,55 Z".
func (p Path) String() string {
	var sb strings.Builder
	for i, c := range p.Commands {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(byte(c.Op))
		switch c.Op {
		case OpMove, OpLine:
			writeCoord(&sb, c.To)
		case OpArc:
			sb.WriteString(formatNum(c.Radius))
			sb.WriteByte(',')
			sb.WriteString(formatNum(c.Radius))
			sb.WriteString(" 0 ")
			sb.WriteString(onezero(c.LargeArc))
			sb.WriteByte(',')
			sb.WriteString(onezero(c.Sweep))
			sb.WriteByte(' ')
			writeCoord(&sb, c.To)
		}
	}
	return sb.String()
}

func writeCoord(sb *strings.Builder, c geom.Coord) {
	sb.WriteString(formatNum(c.X))
	sb.WriteByte(',')
	sb.WriteString(formatNum(c.Y))
}

// formatNum prints three decimals without trailing zeros; "-0" collapses to "0".
func formatNum(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

func onezero(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
