package ecs

// System represents a unit of per-frame behavior. Systems may declare
// Singleton fields, which the Scheduler binds to its storage on registration,
// as well as custom state fields that persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}
