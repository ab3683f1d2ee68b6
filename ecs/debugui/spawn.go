package debugui

import "github.com/plus3/bunnymark/ecs"

// RegisterDebugUIComponents registers the components this package spawns.
func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[PerformanceStats](registry)
}

// SpawnDebugUI adds the performance window and the systems driving the
// overlay to scheduler. The ImguiInputState singleton is created if missing.
func SpawnDebugUI(scheduler *ecs.Scheduler) {
	storage := scheduler.Storage()
	ecs.NewSingleton[ImguiInputState](storage)
	storage.Spawn(NewPerformanceStats(120))

	scheduler.Register(&PerformanceStatsSystem{Scheduler: scheduler})
	scheduler.Register(&ImguiSystem{})
}
