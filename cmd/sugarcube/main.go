//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"sugarcube/internal/app"
	"sugarcube/internal/core"
	"sugarcube/internal/sims/automata3d"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q", cfg.Sim)
	}
	world, ok := factory(cfg.Set.Map()).(*automata3d.World)
	if !ok {
		log.Fatalf("sim %q cannot be shown in the cube viewer", cfg.Sim)
	}
	world.Reset(cfg.Seed)

	game := app.New(world, cfg)

	ebiten.SetWindowTitle("sugarcube - " + world.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
