package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	debugui_ebiten "github.com/plus3/bunnymark/ecs/debugui/ebiten"
	"github.com/plus3/bunnymark/internal/assets"
	"github.com/plus3/bunnymark/internal/bunnymark"
	"github.com/plus3/bunnymark/internal/game"
)

const title = "Bunny Mark"

func main() {
	cfg := bunnymark.DefaultConfig()
	flag.Uint64Var(&cfg.InitialBunnies, "bunnies", cfg.InitialBunnies, "Number of bunnies to start with.")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "Initial window width.")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "Initial window height.")
	flag.BoolVar(&cfg.Tiles, "tiles", cfg.Tiles, "Cover the window with background tiles.")
	flag.IntVar(&cfg.TileSize, "tile-size", cfg.TileSize, "Background tile size in pixels.")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed, 0 picks one.")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Show the ImGui debug overlay.")
	flag.DurationVar(&cfg.DiagnosticsInterval, "diagnostics", cfg.DiagnosticsInterval, "How often to log frame timings, 0 disables.")
	flag.Parse()

	server := assets.NewServer(assets.Embedded())
	logger := log.Default()

	world, err := bunnymark.NewWorld(cfg, server, logger)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	var imgui *debugui_ebiten.ImguiBackend
	if cfg.Debug {
		backend := debugui_ebiten.NewImguiBackend(title, cfg.Width, cfg.Height)
		imgui = &backend
	} else {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
		ebiten.SetWindowTitle(title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	log.Printf("Press space to double the bunnies")
	if err := ebiten.RunGame(game.New(world, server, logger, imgui)); err != nil {
		log.Fatalf("Game exited: %v", err)
	}
}
