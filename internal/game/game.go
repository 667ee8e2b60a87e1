package game

import (
	"io"
	"log"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/sectors/internal/config"
	"github.com/iburimskiy/sectors/internal/sectors"
	"github.com/iburimskiy/sectors/internal/tone"
)

// Controller is the part of sectors.Controller the window talks to.
type Controller interface {
	Dispatch(sectors.Event)
	State() sectors.State
	Frame() sectors.Frame
}

// Game is the ebiten window: it turns input into controller events and
// draws whatever the controller last rendered.
type Game struct {
	ctrl      Controller
	scope     *tone.Scope
	exportDir string
	log       *log.Logger

	// retained render output
	frame     sectors.Frame
	state     sectors.State
	animFrame int
	tick      int

	// pointer state
	pressed        widget
	hovered        widget
	hoverSector    int
	sliderDragging bool
	touchIDs       []ebiten.TouchID

	entry entryField

	notice  string
	lastErr error

	// export is swapped out in tests
	export func(sectors.Frame, string) (string, error)
}

type Options struct {
	Scope     *tone.Scope
	ExportDir string
	Logger    *log.Logger
	Export    func(sectors.Frame, string) (string, error)
}

func New(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Game{
		scope:       opts.Scope,
		exportDir:   opts.ExportDir,
		log:         logger,
		export:      opts.Export,
		hoverSector: -1,
		animFrame:   config.AnimationFrames,
	}
}

// Attach connects the window to its controller. It must be called before RunGame.
func (g *Game) Attach(c Controller) {
	g.ctrl = c
	g.state = c.State()
	g.frame = c.Frame()
	g.entry.text = strconv.Itoa(g.state.N)
}

// RenderSectors replaces the retained frame and restarts the grow-in animation.
func (g *Game) RenderSectors(f sectors.Frame) {
	g.frame = f
	g.animFrame = 0
}

// ShowState updates labels and mode-dependent controls.
func (g *Game) ShowState(s sectors.State) {
	g.state = s
	if !g.entry.focused {
		g.entry.text = strconv.Itoa(s.N)
	}
}

func (g *Game) Update() error {
	g.tick++
	if g.animFrame < config.AnimationFrames {
		g.animFrame++
	}

	g.updatePointer()
	g.updateTouches()
	if g.entry.focused {
		g.updateEntry()
	}
	return g.updateKeys()
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}
