package ecs_test

import (
	"testing"

	"github.com/plus3/bunnymark/ecs"
	"github.com/stretchr/testify/assert"
)

func TestQuery(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 0.5, DY: 0.5})
	storage.Spawn(Position{X: 3, Y: 4}, Velocity{DX: 1.0, DY: 1.0})
	storage.Spawn(Position{X: 5, Y: 6}, Velocity{DX: 1.5, DY: 1.5}, Health{Current: 100, Max: 100})
	storage.Spawn(Position{X: 7, Y: 8})

	query := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](storage)

	t.Run("iter executes on first use", func(t *testing.T) {
		count := 0
		for range query.Iter() {
			count++
		}
		assert.Equal(t, 3, count)
	})

	t.Run("snapshot is stable until execute", func(t *testing.T) {
		query.Execute()
		before := query.Len()

		storage.Spawn(Position{X: 10, Y: 10}, Velocity{DX: 2.0, DY: 2.0})
		assert.Equal(t, before, query.Len())

		query.Execute()
		assert.Equal(t, before+1, query.Len())
	})

	t.Run("new archetypes are picked up", func(t *testing.T) {
		storage.Spawn(Position{}, Velocity{}, Name("late"))
		query.Execute()
		assert.Equal(t, 5, query.Len())
	})

	t.Run("invalidate forces rebuild", func(t *testing.T) {
		storage.Spawn(Position{}, Velocity{})
		query.Invalidate()

		count := 0
		for item := range query.Values() {
			assert.NotNil(t, item.Position)
			assert.NotNil(t, item.Velocity)
			count++
		}
		assert.Equal(t, 6, count)
	})

	t.Run("writes go through to storage", func(t *testing.T) {
		query.Execute()
		for id, item := range query.Iter() {
			item.Position.X = -1
			assert.Equal(t, float32(-1), ecs.ReadComponent[Position](storage, id).X)
		}
	})
}
