package game

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/bunnymark/ecs"
	"github.com/plus3/bunnymark/ecs/debugui"
	"github.com/plus3/bunnymark/internal/bunnymark"
)

func spawnBunnyWindow(storage *ecs.Storage) {
	storage.Spawn(debugui.ImguiItem{
		Render: func() {
			var count *bunnymark.BunnyCount
			if !storage.ReadSingleton(&count) {
				return
			}
			var window *bunnymark.Window
			storage.ReadSingleton(&window)

			imgui.SetNextWindowPosV(imgui.NewVec2(400, 40), imgui.CondOnce, imgui.NewVec2(0, 0))
			imgui.SetNextWindowSizeV(imgui.NewVec2(240, 120), imgui.CondOnce)

			if imgui.BeginV("Bunnies", nil, 0) {
				imgui.Text(fmt.Sprintf("Current: %d", count.Current))
				imgui.Text(fmt.Sprintf("Desired: %d", count.Desired))
				if window != nil {
					imgui.Text(fmt.Sprintf("Window: %.0fx%.0f", window.Width, window.Height))
				}
				if !count.Growing() && imgui.Button("Double") {
					count.Desired *= 2
				}
			}
			imgui.End()
		},
	})
}
