package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/sectors/internal/config"
	"github.com/iburimskiy/sectors/internal/game"
	"github.com/iburimskiy/sectors/internal/sectors"
	"github.com/iburimskiy/sectors/internal/svgexport"
	"github.com/iburimskiy/sectors/internal/tone"
)

const scopeRingSize = 4096

func main() {
	writeConfig := flag.Bool("write-config", false, "write the current settings to the config file and exit")
	flag.Parse()

	logger := log.New(os.Stderr, "sectors: ", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Printf("config: %v (using defaults)", err)
	}
	if *writeConfig {
		if err := config.WriteExample(config.Path(), cfg); err != nil {
			logger.Fatal(err)
		}
		logger.Printf("wrote %s", config.Path())
		return
	}

	scope := tone.NewScope(scopeRingSize)
	g := game.New(game.Options{
		Scope:     scope,
		ExportDir: cfg.Export.Dir,
		Logger:    logger,
		Export:    svgexport.SaveDialog,
	})

	// The speaker is only opened on the first tap.
	newFeedback := func() (sectors.Feedback, error) {
		p, err := tone.New(cfg.Tone, scope)
		if err != nil {
			return nil, err
		}
		return p, nil
	}

	ctrl := sectors.New(sectors.Options{
		InitialN:    cfg.Circle.InitialN,
		InitialMode: sectors.ParseMode(cfg.Circle.InitialMode),
		Size:        config.CircleSize,
	}, g, newFeedback, logger)
	g.Attach(ctrl)
	ctrl.Start()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle("Sectors - click slices, drag the slider, or tap out a number")

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		panic(err)
	}
}
