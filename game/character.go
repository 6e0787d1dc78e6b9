package game

import (
	"github.com/mokiat/gomath/sprec"
	"github.com/plus3/catjump/config"
	"github.com/plus3/catjump/input"
)

// Character is the sprite's per-frame state. +Y points down the screen.
type Character struct {
	Position sprec.Vec2
	Velocity sprec.Vec2
	// Origin is the rotation and placement pivot in texture pixels.
	Origin sprec.Vec2
	// Ground is the rest line. Only Position is held there; Velocity keeps
	// integrating gravity.
	Ground   float32
	Grounded bool
}

// Physics holds the constant acceleration and the jump impulse.
type Physics struct {
	Gravity     sprec.Vec2
	JumpImpulse sprec.Vec2
}

// DefaultPhysics matches config.Default.
func DefaultPhysics() Physics {
	return PhysicsFromConfig(config.Default().Physics)
}

// PhysicsFromConfig converts configured magnitudes into vectors.
func PhysicsFromConfig(cfg config.PhysicsConfig) Physics {
	return Physics{
		Gravity:     sprec.NewVec2(0, cfg.Gravity),
		JumpImpulse: sprec.NewVec2(0, -cfg.JumpSpeed),
	}
}

// InputState is the input seen by the current update.
type InputState struct {
	Edges input.Edges
	Jump  bool
}
