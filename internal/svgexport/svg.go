package svgexport

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jbeda/geom"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/sectors/internal/palette"
	"github.com/iburimskiy/sectors/internal/sectors"
)

const (
	strokeStyle  = "stroke: #1c2230; stroke-width: 2; stroke-linejoin: round"
	outlineStyle = "stroke: #1c2230; stroke-width: 3; fill: none"
)

// svg is a small serialization helper; the first write error sticks.
type svg struct {
	w   io.Writer
	err error
}

func (s *svg) printf(format string, a ...interface{}) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, a...)
}

func (s *svg) start(viewBox geom.Rect, title string) {
	s.printf(`<?xml version="1.0"?>
<svg version="1.1"
     viewBox="%g %g %g %g"
     width="%g" height="%g"
     xmlns="http://www.w3.org/2000/svg" role="img" aria-label="%s">
`, viewBox.Min.X, viewBox.Min.Y, viewBox.Width(), viewBox.Height(), viewBox.Width(), viewBox.Height(), title)
}

func (s *svg) end() {
	s.printf("</svg>\n")
}

// Write renders the frame as a standalone SVG document, one path per slice.
func Write(w io.Writer, f sectors.Frame) error {
	s := &svg{w: w}
	box := geom.Rect{Max: geom.Coord{X: f.Size, Y: f.Size}}
	s.start(box, fmt.Sprintf("Circle cut into %d equal slices", f.N))

	for _, sec := range f.Sectors {
		fill := palette.Hex(palette.Slice(sec.Index, f.N))
		s.printf("<path data-index='%d' d='%s' style='fill: %s; %s'/>\n", sec.Index, sec.Path.String(), fill, strokeStyle)
	}
	c := f.Center()
	s.printf("<circle cx='%g' cy='%g' r='%g' style='%s'/>\n", c.X, c.Y, f.Radius(), outlineStyle)

	s.end()
	return s.err
}

// Save writes the frame to path.
func Save(path string, f sectors.Frame) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(out, f); err != nil {
		_ = out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}

// SaveDialog asks where to save the frame and writes it there. A cancelled
// dialog returns an empty path and no error.
func SaveDialog(f sectors.Frame, dir string) (string, error) {
	name := fmt.Sprintf("circle-%d.svg", f.N)
	if dir != "" {
		name = filepath.Join(dir, name)
	}
	path, err := zenity.SelectFileSave(
		zenity.Title("Export SVG"),
		zenity.Filename(name),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "SVG image",
			Patterns: []string{"*.svg"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", err
	}
	if filepath.Ext(path) == "" {
		path += ".svg"
	}
	return path, Save(path, f)
}
