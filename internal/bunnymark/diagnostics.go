package bunnymark

import (
	"log"
	"time"

	"github.com/plus3/bunnymark/ecs"
)

// DiagnosticsSystem logs the average frame rate and frame time once per
// Interval of accumulated frame time.
type DiagnosticsSystem struct {
	Count ecs.Singleton[BunnyCount]

	Logger   *log.Logger
	Interval time.Duration

	frames  int
	elapsed float64
}

func (s *DiagnosticsSystem) Execute(frame *ecs.UpdateFrame) {
	s.frames++
	s.elapsed += frame.DeltaTime
	if s.elapsed < s.Interval.Seconds() {
		return
	}

	frameTime := s.elapsed / float64(s.frames)
	fps := 0.0
	if frameTime > 0 {
		fps = 1 / frameTime
	}
	s.Logger.Printf("fps=%.1f frame_time=%.3fms bunnies=%d", fps, frameTime*1000, s.Count.MustGet().Current)

	s.frames = 0
	s.elapsed = 0
}
