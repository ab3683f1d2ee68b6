// Package game runs a bunnymark World inside an Ebitengine window.
package game

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/bunnymark/ecs"
	"github.com/plus3/bunnymark/ecs/debugui"
	debugui_ebiten "github.com/plus3/bunnymark/ecs/debugui/ebiten"
	"github.com/plus3/bunnymark/internal/assets"
	"github.com/plus3/bunnymark/internal/bunnymark"
)

// DoubleKey doubles the population once the current batch is spawned.
const DoubleKey = ebiten.KeySpace

// Game implements ebiten.Game. Update runs the world's update schedule; Draw
// runs a separate render schedule over the same storage.
type Game struct {
	World           *bunnymark.World
	RenderScheduler *ecs.Scheduler
	Screen          *ecs.Singleton[Screen]
	ImguiBackend    *ecs.Singleton[debugui_ebiten.ImguiBackend]
	ImguiInput      *ecs.Singleton[debugui.ImguiInputState]

	last time.Time
}

// New wires world to a render schedule. When imgui is non-nil the debug
// overlay is added to the update schedule.
func New(world *bunnymark.World, server *assets.Server, logger *log.Logger, imgui *debugui_ebiten.ImguiBackend) *Game {
	storage := world.Storage

	g := &Game{
		World:           world,
		RenderScheduler: ecs.NewScheduler(storage),
		Screen:          ecs.NewSingleton(storage, Screen{}),
	}
	g.RenderScheduler.Register(&RenderSystem{Images: NewImageCache(server, logger)})

	if imgui != nil {
		debugui.RegisterDebugUIComponents(world.Registry)
		g.ImguiBackend = ecs.NewSingleton(storage, *imgui)
		debugui.SpawnDebugUI(world.Scheduler)
		g.ImguiInput = ecs.NewSingleton[debugui.ImguiInputState](storage)
		spawnBunnyWindow(storage)
	}
	return g
}

func (g *Game) Update() error {
	now := time.Now()
	dt := 1.0 / float64(ebiten.TPS())
	if !g.last.IsZero() {
		dt = now.Sub(g.last).Seconds()
	}
	g.last = now

	pressed := inpututil.IsKeyJustPressed(DoubleKey)

	if g.ImguiBackend == nil {
		g.World.Step(dt, pressed)
		return nil
	}

	if g.ImguiInput.Get().WantCaptureKeyboard {
		pressed = false
	}
	g.ImguiBackend.Get().BeginFrame()
	g.World.Step(dt, pressed)
	g.ImguiBackend.Get().EndFrame()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.Screen.Get().Image = screen
	g.RenderScheduler.Once(0)
	g.Screen.Get().Image = nil

	if g.ImguiBackend != nil {
		g.ImguiBackend.Get().Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.World.Resize(float64(outsideWidth), float64(outsideHeight))
	if g.ImguiBackend != nil {
		g.ImguiBackend.Get().Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
