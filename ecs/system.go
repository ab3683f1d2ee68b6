package ecs

// System is one unit of per-frame logic. Systems are structs whose Query and
// Singleton fields are bound by the Scheduler; any other field is private
// state that persists between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a plain function to System. It has no fields, so it can
// only reach the world through the UpdateFrame.
type SystemFunc func(frame *UpdateFrame)

// Execute calls f.
func (f SystemFunc) Execute(frame *UpdateFrame) {
	f(frame)
}
