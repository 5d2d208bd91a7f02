//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"blue-noise/internal/app"
	"blue-noise/internal/core"
	"blue-noise/internal/noise"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	nc, err := cfg.Noise()
	if err != nil {
		log.Fatal(err)
	}
	session, err := noise.NewSession(nc, cfg.Steps)
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(session, cfg.Scale, cfg.HUD, nc.Seed)
	size := core.SliceSize(session.Dims())

	ebiten.SetWindowTitle("blue-noise - " + session.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUD, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
