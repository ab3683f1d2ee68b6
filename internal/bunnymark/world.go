package bunnymark

import (
	"log"
	"math/rand/v2"

	"github.com/plus3/bunnymark/ecs"
	"github.com/plus3/bunnymark/internal/assets"
)

// World is a ready to run bunnymark: its storage, the update schedule and the
// entities setup created.
type World struct {
	Registry  *ecs.ComponentRegistry
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler
	Handles   Handles
	Config    Config

	// Tiler is nil when tiles are disabled.
	Tiler *TilerSystem

	input   *ecs.Singleton[Input]
	window  *ecs.Singleton[Window]
	count   *ecs.Singleton[BunnyCount]
	resized *ecs.Singleton[ecs.Events[WindowResized]]
}

// NewWorld validates cfg, spawns the bunny parent and the counter label and
// registers the update systems. Images are only referenced through server;
// nothing is decoded here.
func NewWorld(cfg Config, server *assets.Server, logger *log.Logger) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	w := &World{
		Registry:  registry,
		Storage:   storage,
		Scheduler: ecs.NewScheduler(storage),
		Config:    cfg,
	}

	w.Handles = Handles{
		Parent: storage.Spawn(Transform{}, BunnyParent{}),
		Text:   storage.Spawn(Label{Text: CountText(0), X: 10, Y: 10}, BunnyText{}),
	}
	storage.AddSingleton(w.Handles)

	w.count = ecs.NewSingleton(storage, BunnyCount{Desired: cfg.InitialBunnies})
	w.window = ecs.NewSingleton(storage, Window{Width: float64(cfg.Width), Height: float64(cfg.Height)})
	w.input = ecs.NewSingleton(storage, Input{})
	w.resized = ecs.NewSingleton[ecs.Events[WindowResized]](storage)

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	if cfg.Tiles {
		w.Tiler = &TilerSystem{Size: cfg.TileSize, Image: server.Load(assets.TilePath)}
		w.Scheduler.Register(w.Tiler)
	}
	w.Scheduler.Register(&SpawnSystem{
		Rand:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Image: server.Load(assets.BunnyPath),
	})
	w.Scheduler.Register(&MovementSystem{})
	w.Scheduler.Register(&SpawnControllerSystem{})
	w.Scheduler.Register(&TextSystem{})
	if cfg.DiagnosticsInterval > 0 {
		w.Scheduler.Register(&DiagnosticsSystem{Logger: logger, Interval: cfg.DiagnosticsInterval})
	}

	logger.Printf("bunnymark: %d bunnies, window %dx%d, tiles=%t, seed=%d",
		cfg.InitialBunnies, cfg.Width, cfg.Height, cfg.Tiles, seed)
	return w, nil
}

// Step samples input and runs one frame of dt seconds. Resize events nobody
// consumed during the frame are dropped.
func (w *World) Step(dt float64, doublePressed bool) {
	w.input.MustGet().DoublePressed = doublePressed
	w.Scheduler.Once(dt)
	w.resized.MustGet().Drain()
}

// Resize updates the window size and sends WindowResized when it changed.
func (w *World) Resize(width, height float64) {
	win := w.window.MustGet()
	if win.Width == width && win.Height == height {
		return
	}
	win.Width, win.Height = width, height
	w.resized.MustGet().Send(WindowResized{Width: width, Height: height})
}

// Count returns the current bunny counters.
func (w *World) Count() BunnyCount {
	return *w.count.MustGet()
}

// Window returns the current window size.
func (w *World) Window() Window {
	return *w.window.MustGet()
}
