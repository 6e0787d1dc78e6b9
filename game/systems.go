package game

import (
	"github.com/mokiat/gomath/sprec"
	"github.com/plus3/catjump/ecs"
	"github.com/plus3/catjump/input"
)

// InputSystem polls the buttons and turns presses into a jump request.
type InputSystem struct {
	Input  ecs.Singleton[InputState]
	Poller input.Poller

	tracker input.Tracker
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	var sample input.State
	if s.Poller != nil {
		sample = s.Poller.Poll()
	}
	edges := s.tracker.Update(sample)

	state := s.Input.Get()
	state.Edges = edges
	state.Jump = edges.Any()
}

// PhysicsSystem applies gravity and the jump impulse, then moves the
// character, holding it on the ground line.
type PhysicsSystem struct {
	Character ecs.Singleton[Character]
	Input     ecs.Singleton[InputState]
	Physics   ecs.Singleton[Physics]
}

func (s *PhysicsSystem) Execute(frame *ecs.UpdateFrame) {
	c, physics := s.Character.Get(), s.Physics.Get()
	dt := float32(frame.DeltaTime)

	c.Velocity = sprec.Vec2Sum(c.Velocity, sprec.Vec2Prod(physics.Gravity, dt))
	if s.Input.Get().Jump {
		c.Velocity = physics.JumpImpulse
	}
	c.Position = sprec.Vec2Sum(c.Position, sprec.Vec2Prod(c.Velocity, dt))

	// The ground line holds the position only. Velocity keeps integrating
	// gravity at rest and is replaced by the next jump.
	c.Grounded = c.Position.Y >= c.Ground
	if c.Grounded {
		c.Position.Y = c.Ground
	}
}
