package bunnymark

import (
	"math/rand/v2"

	"github.com/plus3/bunnymark/ecs"
	"github.com/plus3/bunnymark/internal/assets"
)

// SpawnSystem tops the population up to BunnyCount.Desired. The whole
// shortfall is spawned in one frame.
type SpawnSystem struct {
	Count   ecs.Singleton[BunnyCount]
	Handles ecs.Singleton[Handles]

	Rand  *rand.Rand
	Image assets.Handle
}

func (s *SpawnSystem) Execute(frame *ecs.UpdateFrame) {
	count := s.Count.MustGet()
	if count.Current >= count.Desired {
		return
	}

	parent := s.Handles.MustGet().Parent
	for ; count.Current < count.Desired; count.Current++ {
		frame.Commands.Spawn(
			Transform{Z: 1},
			Bunny{
				Direction:   s.direction(),
				SpeedFactor: 1 + 3*s.Rand.Float64(),
			},
			ChildOf{Parent: parent},
			Sprite{Image: s.Image},
		)
	}
}

// direction draws a unit vector with both components uniform in [-1, 1)
// before normalising. A zero sample has no direction and is drawn again.
func (s *SpawnSystem) direction() Vec2 {
	for {
		v := Vec2{
			X: 2*s.Rand.Float64() - 1,
			Y: 2*s.Rand.Float64() - 1,
		}
		if v.X != 0 || v.Y != 0 {
			return v.Normalize()
		}
	}
}
