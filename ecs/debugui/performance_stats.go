package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/bunnymark/ecs"
)

// PerformanceStats is a window showing frame times, system timings and a
// summary of the storage.
type PerformanceStats struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	recorded      int
}

func NewPerformanceStats(historyFrames int) PerformanceStats {
	return PerformanceStats{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// Record stores one frame time.
func (ps *PerformanceStats) Record(deltaTime float64) {
	ps.frameHistory[ps.frameIndex] = float32(deltaTime * 1000.0)
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
	ps.recorded = min(ps.recorded+1, ps.historyFrames)
}

// AverageFrameTime returns the mean of the recorded frame times in
// milliseconds.
func (ps *PerformanceStats) AverageFrameTime() float32 {
	if ps.recorded == 0 {
		return 0
	}
	var total float32
	for _, ft := range ps.frameHistory {
		total += ft
	}
	return total / float32(ps.recorded)
}

// PerformanceStatsSystem feeds every PerformanceStats window the frame time
// and queues its rendering.
type PerformanceStatsSystem struct {
	Panels ecs.Query[struct{ *PerformanceStats }]

	Scheduler *ecs.Scheduler
}

func (s *PerformanceStatsSystem) Execute(frame *ecs.UpdateFrame) {
	for panel := range s.Panels.Values() {
		ps := panel.PerformanceStats
		ps.Record(frame.DeltaTime)
		frame.Commands.Defer(func() {
			ps.Render(frame.Storage, s.Scheduler.GetStats())
		})
	}
}

func (ps *PerformanceStats) Render(storage *ecs.Storage, schedulerStats *ecs.SchedulerStats) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 40), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(380, 360), imgui.CondOnce)

	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := storage.CollectStats()

	imgui.Text(fmt.Sprintf("Total Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	avgFrameTime := ps.AverageFrameTime()
	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSizingFixedFit
		if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Name")
			imgui.TableSetupColumn("Avg (ms)")
			imgui.TableSetupColumn("Last (ms)")
			imgui.TableSetupColumn("Max (ms)")
			imgui.TableHeadersRow()

			for _, sys := range schedulerStats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(millis(sys.AvgDuration))
				imgui.TableNextColumn()
				imgui.Text(millis(sys.LastDuration))
				imgui.TableNextColumn()
				imgui.Text(millis(sys.MaxDuration))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Archetype Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ArchStatsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Archetype ID")
			imgui.TableSetupColumn("Components")
			imgui.TableSetupColumn("Entity Count")
			imgui.TableHeadersRow()

			for _, arch := range stats.ArchetypeBreakdown {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("0x%X", arch.ID))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", len(arch.ComponentTypes)))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singleton Details") {
		for _, singletonType := range stats.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}

	imgui.End()
}

func millis(d time.Duration) string {
	return fmt.Sprintf("%.3f", float64(d)/float64(time.Millisecond))
}
