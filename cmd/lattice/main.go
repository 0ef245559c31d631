//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"lattice-life/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	sim, err := cfg.NewSimulation()
	if err != nil {
		log.Fatalf("lattice: %v", err)
	}
	defer sim.Close()

	game, err := app.New(sim, cfg)
	if err != nil {
		log.Fatalf("lattice: %v", err)
	}

	ebiten.SetWindowTitle("lattice-life - " + sim.Name())
	ebiten.SetWindowSize(app.DefaultWindowWidth, app.DefaultWindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
