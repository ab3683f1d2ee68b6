package bunnymark

import (
	"math"

	"github.com/kamstrup/intmap"
	"github.com/plus3/bunnymark/ecs"
	"github.com/plus3/bunnymark/internal/assets"
)

// TileCoords returns the grid cells of size pixels needed to cover a width x
// height area centred on the origin, row by row starting at the bottom-left
// cell. The result has no duplicates and depends only on its arguments.
func TileCoords(width, height float64, size int) []Tile {
	if size <= 0 || width <= 0 || height <= 0 {
		return nil
	}
	nx := int(math.Ceil(width / 2 / float64(size)))
	ny := int(math.Ceil(height / 2 / float64(size)))

	coords := make([]Tile, 0, (2*nx+1)*(2*ny+1))
	for y := -ny; y <= ny; y++ {
		for x := -nx; x <= nx; x++ {
			coords = append(coords, Tile{X: x, Y: y})
		}
	}
	return coords
}

func tileKey(t Tile) int64 {
	return int64(t.X)<<32 | int64(uint32(t.Y))
}

// TilerSystem covers the window with background tiles. It fills the initial
// window on its first run and extends the grid on every WindowResized event.
// Tiles are never removed, so shrinking the window leaves them in place.
type TilerSystem struct {
	Window  ecs.Singleton[Window]
	Resized ecs.Singleton[ecs.Events[WindowResized]]

	Size  int
	Image assets.Handle

	placed  *intmap.Set[int64]
	started bool
}

func (s *TilerSystem) Execute(frame *ecs.UpdateFrame) {
	if s.placed == nil {
		s.placed = intmap.NewSet[int64](64)
	}

	if !s.started {
		s.started = true
		w := s.Window.MustGet()
		s.cover(frame.Commands, w.Width, w.Height)
	}

	events := s.Resized.Get()
	if events == nil {
		return
	}
	for _, ev := range events.Drain() {
		s.cover(frame.Commands, ev.Width, ev.Height)
	}
}

// Placed returns the number of tiles spawned so far.
func (s *TilerSystem) Placed() int {
	return s.placed.Len()
}

func (s *TilerSystem) cover(commands *ecs.Commands, width, height float64) {
	for _, tile := range TileCoords(width, height, s.Size) {
		if s.placed.Has(tileKey(tile)) {
			continue
		}
		s.placed.Add(tileKey(tile))
		commands.Spawn(
			Transform{
				X: float64(tile.X * s.Size),
				Y: float64(tile.Y * s.Size),
			},
			tile,
			Sprite{Image: s.Image},
		)
	}
}
