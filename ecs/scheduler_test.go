package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/bunnymark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
	ExecuteCount int
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	for item := range s.Entities.Values() {
		item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
		item.Position.Y += item.Velocity.DY * float32(frame.DeltaTime)
	}
}

type HealthSystem struct {
	Entities    ecs.Query[struct{ *Health }]
	TotalHealth int
}

func (s *HealthSystem) Execute(frame *ecs.UpdateFrame) {
	s.TotalHealth = 0
	for item := range s.Entities.Values() {
		s.TotalHealth += item.Health.Current
	}
}

type orderSystem struct {
	name string
	log  *[]string
}

func (s *orderSystem) Execute(frame *ecs.UpdateFrame) {
	*s.log = append(*s.log, s.name)
}

type sleepSystem struct {
	d time.Duration
}

func (s *sleepSystem) Execute(frame *ecs.UpdateFrame) {
	time.Sleep(s.d)
}

type spawnOnceSystem struct {
	done bool
}

func (s *spawnOnceSystem) Execute(frame *ecs.UpdateFrame) {
	if s.done {
		return
	}
	s.done = true
	frame.Commands.Spawn(Position{}, Velocity{DX: 1})
}

type counterSystem struct {
	Counter ecs.Singleton[Health]
}

func (s *counterSystem) Execute(frame *ecs.UpdateFrame) {
	s.Counter.Get().Current++
}

func TestScheduler(t *testing.T) {
	registry := newTestRegistry()

	t.Run("systems run in registration order", func(t *testing.T) {
		scheduler := ecs.NewScheduler(ecs.NewStorage(registry))

		var log []string
		scheduler.Register(&orderSystem{name: "spawn", log: &log})
		scheduler.Register(&orderSystem{name: "move", log: &log})
		scheduler.Register(ecs.SystemFunc(func(*ecs.UpdateFrame) { log = append(log, "text") }))

		scheduler.Once(0)
		scheduler.Once(0)

		assert.Equal(t, []string{"spawn", "move", "text", "spawn", "move", "text"}, log)
	})

	t.Run("delta time reaches systems", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)

		id := storage.Spawn(Position{}, Velocity{DX: 10, DY: 20})
		scheduler.Register(&MovementSystem{})

		scheduler.Once(0.5)

		pos := ecs.ReadComponent[Position](storage, id)
		assert.Equal(t, Position{X: 5, Y: 10}, *pos)
	})

	t.Run("queries see entities spawned between frames", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)

		health := &HealthSystem{}
		scheduler.Register(health)

		storage.Spawn(Health{Current: 50})
		scheduler.Once(1)
		assert.Equal(t, 50, health.TotalHealth)

		storage.Spawn(Health{Current: 25})
		scheduler.Once(1)
		assert.Equal(t, 75, health.TotalHealth)
	})

	t.Run("commands flush at end of frame", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)

		movement := &MovementSystem{}
		scheduler.Register(&spawnOnceSystem{})
		scheduler.Register(movement)

		scheduler.Once(1)
		assert.Equal(t, 0, movement.Entities.Len(), "spawn is deferred")

		scheduler.Once(1)
		require.Equal(t, 1, movement.Entities.Len())
		for item := range movement.Entities.Values() {
			assert.Equal(t, float32(1), item.Position.X)
		}
	})

	t.Run("singleton fields are bound", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		ecs.NewSingleton[Health](storage)

		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&counterSystem{})
		scheduler.Once(0)
		scheduler.Once(0)

		var counter *Health
		require.True(t, storage.ReadSingleton(&counter))
		assert.Equal(t, 2, counter.Current)
	})

	t.Run("run stops on context cancellation", func(t *testing.T) {
		scheduler := ecs.NewScheduler(ecs.NewStorage(registry))
		movement := &MovementSystem{}
		scheduler.Register(movement)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			scheduler.Run(ctx, time.Millisecond)
			close(done)
		}()

		time.Sleep(20 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("scheduler did not stop after context cancellation")
		}
		assert.Greater(t, movement.ExecuteCount, 0)
	})
}

func TestSchedulerStats(t *testing.T) {
	scheduler := ecs.NewScheduler(ecs.NewStorage(newTestRegistry()))

	stats := scheduler.GetStats()
	assert.Equal(t, 0, stats.SystemCount)
	assert.Equal(t, int64(0), stats.TotalExecutions)

	scheduler.Register(&sleepSystem{d: time.Millisecond})
	scheduler.Register(&sleepSystem{d: 2 * time.Millisecond})

	stats = scheduler.GetStats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, time.Duration(0), stats.Systems[0].MinDuration)

	for range 3 {
		scheduler.Once(0.016)
	}

	stats = scheduler.GetStats()
	assert.Equal(t, int64(6), stats.TotalExecutions)
	assert.Equal(t, int64(3), stats.Frames)
	require.Len(t, stats.Systems, 2)

	for _, st := range stats.Systems {
		assert.Equal(t, "sleepSystem", st.Name)
		assert.Equal(t, int64(3), st.ExecutionCount)
		assert.Greater(t, st.MinDuration, time.Duration(0))
		assert.LessOrEqual(t, st.MinDuration, st.AvgDuration)
		assert.LessOrEqual(t, st.AvgDuration, st.MaxDuration)
		assert.Equal(t, st.TotalDuration/3, st.AvgDuration)
	}
}
