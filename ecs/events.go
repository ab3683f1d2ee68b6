package ecs

// Events is a queue of values of type T stored as a singleton. Producers
// Send, and the one system interested in them Drains the queue once per
// frame.
type Events[T any] struct {
	queue []T
}

// Send appends an event.
func (e *Events[T]) Send(event T) {
	e.queue = append(e.queue, event)
}

// Len returns the number of pending events.
func (e *Events[T]) Len() int {
	return len(e.queue)
}

// Drain returns the pending events in send order and empties the queue. The
// returned slice is only valid until the next Send.
func (e *Events[T]) Drain() []T {
	drained := e.queue
	e.queue = e.queue[:0]
	return drained
}

// SendEvent queues event on the Events[T] singleton of storage, creating the
// queue on first use.
func SendEvent[T any](storage *Storage, event T) {
	NewSingleton[Events[T]](storage).Get().Send(event)
}
