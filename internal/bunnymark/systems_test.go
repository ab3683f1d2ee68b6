package bunnymark_test

import (
	"testing"

	"github.com/plus3/bunnymark/ecs"
	"github.com/plus3/bunnymark/internal/bunnymark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStorage() *ecs.Storage {
	registry := ecs.NewComponentRegistry()
	bunnymark.RegisterComponents(registry)
	return ecs.NewStorage(registry)
}

func TestSpawnController(t *testing.T) {
	tests := []struct {
		name    string
		count   bunnymark.BunnyCount
		pressed bool
		want    uint64
	}{
		{"pressed when settled", bunnymark.BunnyCount{Current: 128, Desired: 128}, true, 256},
		{"not pressed", bunnymark.BunnyCount{Current: 128, Desired: 128}, false, 128},
		{"pressed while growing", bunnymark.BunnyCount{Current: 100, Desired: 256}, true, 256},
		{"growing and idle", bunnymark.BunnyCount{Current: 100, Desired: 256}, false, 256},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := newStorage()
			count := ecs.NewSingleton(storage, tt.count)
			ecs.NewSingleton(storage, bunnymark.Input{DoublePressed: tt.pressed})

			scheduler := ecs.NewScheduler(storage)
			scheduler.Register(&bunnymark.SpawnControllerSystem{})
			scheduler.Once(frame)

			assert.Equal(t, tt.want, count.Get().Desired)
			assert.Equal(t, tt.count.Current, count.Get().Current)
		})
	}
}

func TestMovementBounces(t *testing.T) {
	window := &bunnymark.Window{Width: 800, Height: 600}
	halfW, halfH := window.HalfExtents()
	assert.Equal(t, 387.0, halfW)
	assert.Equal(t, 281.5, halfH)

	tests := []struct {
		name  string
		pos   bunnymark.Transform
		dir   bunnymark.Vec2
		want  bunnymark.Vec2
		wantX float64
	}{
		{"right edge", bunnymark.Transform{X: halfW}, bunnymark.Vec2{X: 1}, bunnymark.Vec2{X: -1}, halfW - 200},
		{"past right edge", bunnymark.Transform{X: halfW + 5}, bunnymark.Vec2{X: 1}, bunnymark.Vec2{X: -1}, halfW + 5 - 200},
		{"left edge", bunnymark.Transform{X: -halfW}, bunnymark.Vec2{X: -1}, bunnymark.Vec2{X: 1}, -halfW + 200},
		{"inside", bunnymark.Transform{X: 10}, bunnymark.Vec2{X: 1}, bunnymark.Vec2{X: 1}, 210},
		{"top edge", bunnymark.Transform{Y: halfH}, bunnymark.Vec2{Y: 1}, bunnymark.Vec2{Y: -1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := tt.pos
			b := bunnymark.Bunny{Direction: tt.dir, SpeedFactor: 1}

			bunnymark.Step(&pos, &b, halfW, halfH, window, 1)

			assert.Equal(t, tt.want, b.Direction)
			assert.Equal(t, tt.wantX, pos.X)
		})
	}
}

func TestMovementResetsFarAwayBunnies(t *testing.T) {
	window := &bunnymark.Window{Width: 100, Height: 100}
	halfW, halfH := window.HalfExtents()

	pos := bunnymark.Transform{X: 195, Y: 10, Z: 1}
	b := bunnymark.Bunny{Direction: bunnymark.Vec2{X: -1}, SpeedFactor: 1}

	// Outside the bounce area the direction flips to +x and carries the
	// bunny beyond twice the window width.
	bunnymark.Step(&pos, &b, halfW, halfH, window, 0.1)

	assert.Equal(t, bunnymark.Transform{Z: 1}, pos)
}

func TestMovementSystemScalesWithDelta(t *testing.T) {
	storage := newStorage()
	ecs.NewSingleton(storage, bunnymark.Window{Width: 800, Height: 600})
	id := storage.Spawn(
		bunnymark.Transform{},
		bunnymark.Bunny{Direction: bunnymark.Vec2{X: 0.6, Y: 0.8}, SpeedFactor: 2},
	)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&bunnymark.MovementSystem{})
	scheduler.Once(0.5)

	pos := ecs.ReadComponent[bunnymark.Transform](storage, id)
	require.NotNil(t, pos)
	assert.InDelta(t, 120, pos.X, 1e-9)
	assert.InDelta(t, 160, pos.Y, 1e-9)
}

func TestTextSystem(t *testing.T) {
	storage := newStorage()
	ecs.NewSingleton(storage, bunnymark.BunnyCount{Current: 42, Desired: 64})
	id := storage.Spawn(bunnymark.Label{Text: "stale", X: 10, Y: 10}, bunnymark.BunnyText{})
	other := storage.Spawn(bunnymark.Label{Text: "untouched"})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&bunnymark.TextSystem{})
	scheduler.Once(frame)

	assert.Equal(t, "Num. Bunnies: 42", ecs.ReadComponent[bunnymark.Label](storage, id).Text)
	assert.Equal(t, "untouched", ecs.ReadComponent[bunnymark.Label](storage, other).Text)
}

func TestVec2Normalize(t *testing.T) {
	assert.Equal(t, bunnymark.Vec2{X: 0.6, Y: 0.8}, bunnymark.Vec2{X: 3, Y: 4}.Normalize())
	assert.Equal(t, bunnymark.Vec2{}, bunnymark.Vec2{}.Normalize())
}
