package ecs_test

import (
	"testing"

	"github.com/plus3/bunnymark/ecs"
	"github.com/stretchr/testify/assert"
)

type resized struct {
	W, H int
}

type resizeCounter struct {
	Events ecs.Singleton[ecs.Events[resized]]
	Last   resized
	Seen   int
}

func (s *resizeCounter) Execute(frame *ecs.UpdateFrame) {
	for _, ev := range s.Events.Get().Drain() {
		s.Last = ev
		s.Seen++
	}
}

func TestEvents(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	ecs.SendEvent(storage, resized{W: 800, H: 600})
	ecs.SendEvent(storage, resized{W: 1024, H: 768})

	counter := &resizeCounter{}
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(counter)

	scheduler.Once(0)
	assert.Equal(t, 2, counter.Seen)
	assert.Equal(t, resized{W: 1024, H: 768}, counter.Last)
	assert.Equal(t, 0, counter.Events.Get().Len())

	scheduler.Once(0)
	assert.Equal(t, 2, counter.Seen, "drained events are not redelivered")

	ecs.SendEvent(storage, resized{W: 1, H: 1})
	scheduler.Once(0)
	assert.Equal(t, 3, counter.Seen)
}
