package ecs

// UpdateFrame is what every system receives when it executes: the elapsed
// time since the previous frame in seconds, the frame's command buffer and
// the storage itself for direct reads.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}
