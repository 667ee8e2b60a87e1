package sectors

import (
	"io"
	"log"

	"github.com/jbeda/geom"

	"github.com/iburimskiy/sectors/internal/config"
	"github.com/iburimskiy/sectors/internal/geometry"
)

// Frame is one complete rendering of the circle. Size is the edge of the
// square bounding box; the circle is centered in it.
type Frame struct {
	Size    float64
	N       int
	Sectors []geometry.Sector
}

// Center and Radius describe the circle inside the frame's bounding box.
func (f Frame) Center() geom.Coord {
	return geom.Coord{X: f.Size / 2, Y: f.Size / 2}
}

func (f Frame) Radius() float64 {
	r := f.Size/2 - config.CirclePadding
	if r < 0 {
		return 0
	}
	return r
}

// Renderer replaces whatever it showed before with the frame.
type Renderer interface {
	RenderSectors(Frame)
}

// StatusView shows the labels that depend on the state (N, mode, taps).
type StatusView interface {
	ShowState(State)
}

// View is the presentation side the controller drives.
type View interface {
	Renderer
	StatusView
}

// Feedback plays the short tone on a tap.
type Feedback interface {
	Play() error
}

// FeedbackFactory acquires the feedback handle. It is called at most once.
type FeedbackFactory func() (Feedback, error)

type Options struct {
	InitialN    int
	InitialMode Mode
	Size        float64
}

// Controller owns the state and turns events into state changes and re-renders.
// It is not safe for concurrent use; all events come from one thread.
type Controller struct {
	state State
	size  float64
	view  View
	log   *log.Logger

	newFeedback   FeedbackFactory
	feedback      Feedback
	feedbackTried bool
}

func New(opts Options, view View, newFeedback FeedbackFactory, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	mode := opts.InitialMode
	if !mode.Valid() {
		mode = ModeCut
	}
	return &Controller{
		state:       State{N: clampInt(opts.InitialN), Mode: mode},
		size:        opts.Size,
		view:        view,
		log:         logger,
		newFeedback: newFeedback,
	}
}

// Start draws the initial frame and status.
func (c *Controller) Start() {
	c.view.RenderSectors(c.Frame())
	c.view.ShowState(c.state)
}

func (c *Controller) State() State {
	return c.state
}

// Frame computes the sectors for the current N.
func (c *Controller) Frame() Frame {
	f := Frame{Size: c.size, N: c.state.N}
	f.Sectors = geometry.Sectors(c.state.N, f.Center(), f.Radius())
	return f
}

// Dispatch applies one input event.
func (c *Controller) Dispatch(ev Event) {
	switch e := ev.(type) {
	case SetN:
		n, ok := Clamp(e.Value)
		if !ok {
			c.log.Printf("ignoring non-numeric slice count")
			return
		}
		c.setN(n)
	case SectorClick:
		c.clickSector(e.Index)
	case TapPad:
		c.tap()
	case ResetTaps:
		c.state.TapCount = 0
		c.view.ShowState(c.state)
	case SwitchMode:
		c.switchMode(e.Mode)
	case ArrowKey:
		if e.InTextField {
			return
		}
		c.setN(c.state.N + e.Delta)
	default:
		c.log.Printf("ignoring unknown event %T", ev)
	}
}

// setN re-renders only when the clamped value differs from the current N.
func (c *Controller) setN(n int) bool {
	n = clampInt(n)
	if n == c.state.N {
		return false
	}
	c.state.N = n
	c.view.RenderSectors(c.Frame())
	c.view.ShowState(c.state)
	return true
}

func (c *Controller) clickSector(index int) {
	if index < 0 || index >= c.state.N {
		c.log.Printf("click on unknown slice %d (n=%d)", index, c.state.N)
		return
	}
	switch c.state.Mode {
	case ModeCut:
		c.setN(c.state.N + 1)
	case ModeMerge:
		c.setN(c.state.N - 1)
	}
}

func (c *Controller) tap() {
	if c.state.Mode != ModeTap {
		return
	}
	c.state.TapCount++
	if !c.setN(c.state.TapCount) {
		c.view.ShowState(c.state)
	}
	c.playTone()
}

func (c *Controller) switchMode(m Mode) {
	if !m.Valid() {
		c.log.Printf("ignoring unknown mode %d", int(m))
		return
	}
	if m == c.state.Mode {
		return
	}
	c.state.Mode = m
	c.view.ShowState(c.state)
}

// playTone acquires the feedback handle on first use and keeps it. Failures
// are logged and never reach the user.
func (c *Controller) playTone() {
	if !c.feedbackTried {
		c.feedbackTried = true
		if c.newFeedback != nil {
			f, err := c.newFeedback()
			if err != nil {
				c.log.Printf("tap feedback unavailable: %v", err)
			} else {
				c.feedback = f
			}
		}
	}
	if c.feedback == nil {
		return
	}
	if err := c.feedback.Play(); err != nil {
		c.log.Printf("tap feedback: %v", err)
	}
}
