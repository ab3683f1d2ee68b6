package bunnymark

import (
	"github.com/plus3/bunnymark/ecs"
)

// SpawnControllerSystem doubles BunnyCount.Desired when the trigger key was
// pressed this frame. Presses while a batch is still being spawned are
// ignored.
type SpawnControllerSystem struct {
	Count ecs.Singleton[BunnyCount]
	Input ecs.Singleton[Input]
}

func (s *SpawnControllerSystem) Execute(frame *ecs.UpdateFrame) {
	count := s.Count.MustGet()
	if count.Growing() {
		return
	}
	if s.Input.MustGet().DoublePressed {
		count.Desired *= 2
	}
}
