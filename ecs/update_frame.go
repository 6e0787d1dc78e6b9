package ecs

// UpdateFrame is what a system sees during one Once call. The scheduler
// reuses it between calls, so systems must not retain it.
type UpdateFrame struct {
	// DeltaTime is the simulated time step in seconds.
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}
