package ecs

// Commands buffers structural changes requested while systems run. The
// Scheduler applies them once every system of the frame has executed, so
// queries never observe a half-updated world.
type Commands struct {
	spawns  []spawnCommand
	deletes []EntityId
	defers  []func()
}

type spawnCommand struct {
	components []any
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues an entity spawn with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// Delete queues an entity deletion.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// Defer queues fn to run after spawns and deletes were applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending returns the number of queued operations.
func (c *Commands) Pending() int {
	return len(c.spawns) + len(c.deletes) + len(c.defers)
}

// Flush applies deletes, then spawns, then deferred functions to storage and
// resets the buffer.
func (c *Commands) Flush(storage *Storage) {
	for _, id := range c.deletes {
		storage.Delete(id)
	}

	for _, cmd := range c.spawns {
		storage.Spawn(cmd.components...)
	}

	for _, fn := range c.defers {
		fn()
	}

	clear(c.spawns)
	clear(c.defers)
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.defers = c.defers[:0]
}
