package bunnymark

import (
	"github.com/plus3/bunnymark/ecs"
)

// MovementSystem moves every bunny along its direction and bounces it off the
// window edges. A bunny that ends up far outside the window, for example
// after the window shrank, is put back at the origin.
type MovementSystem struct {
	Window  ecs.Singleton[Window]
	Bunnies ecs.Query[struct {
		*Transform
		*Bunny
	}]
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	window := s.Window.MustGet()
	halfW, halfH := window.HalfExtents()

	for b := range s.Bunnies.Values() {
		Step(b.Transform, b.Bunny, halfW, halfH, window, frame.DeltaTime)
	}
}

// Step advances one bunny by dt seconds. halfW and halfH are the extents the
// bunny's centre may reach before it bounces. The direction flips before the
// move, so a bunny that already crossed an edge flips once and then walks
// back in.
func Step(t *Transform, b *Bunny, halfW, halfH float64, window *Window, dt float64) {
	if t.X <= -halfW || t.X >= halfW {
		b.Direction.X = -b.Direction.X
	}
	if t.Y <= -halfH || t.Y >= halfH {
		b.Direction.Y = -b.Direction.Y
	}

	speed := BaseSpeed * b.SpeedFactor * dt
	t.X += b.Direction.X * speed
	t.Y += b.Direction.Y * speed

	if t.X < -2*window.Width || t.X > 2*window.Width ||
		t.Y < -2*window.Height || t.Y > 2*window.Height {
		t.X, t.Y = 0, 0
	}
}

// HalfExtents returns how far from the origin a bunny's centre may go before
// its sprite touches the window edge.
func (w Window) HalfExtents() (float64, float64) {
	return w.Width/2 - BunnyWidth/2.0, w.Height/2 - BunnyHeight/2.0
}
