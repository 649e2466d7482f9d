// pkg/entity/probe.go
package entity

import (
	"github.com/opd-ai/go-orbiter/pkg/physics"
)

// Controls is the player input relevant to the probe for one tick.
type Controls struct {
	Forward     bool
	Reverse     bool
	Brake       bool
	RotateLeft  bool
	RotateRight bool
}

// Thrusting reports whether either engine direction is firing.
func (c Controls) Thrusting() bool {
	return c.Forward || c.Reverse
}

// ProbeStats are the fixed handling characteristics of the probe.
type ProbeStats struct {
	Mass         float64 // kg, only used to turn thrust into acceleration
	ThrustForce  float64
	Damping      float64 // velocity factor per tick while braking
	RotationStep float64 // degrees per tick
}

// DefaultProbeStats returns the stock probe handling.
func DefaultProbeStats() ProbeStats {
	return ProbeStats{
		Mass:         600,
		ThrustForce:  100,
		Damping:      0.98,
		RotationStep: 3,
	}
}

// ThrustAcceleration returns the velocity change per tick of a firing engine.
func (s ProbeStats) ThrustAcceleration() float64 {
	return s.ThrustForce / s.Mass
}

// Probe is the player-controlled spacecraft.
type Probe struct {
	Kinematics
	Heading float64 // degrees
	Stats   ProbeStats
}

// NewProbe creates a probe at the given state facing heading 0.
func NewProbe(position, velocity physics.Vector2D, stats ProbeStats) *Probe {
	return &Probe{
		Kinematics: Kinematics{Position: position, Velocity: velocity},
		Stats:      stats,
	}
}

// LaunchFrom creates a probe sitting on the body with a tangential velocity
// of the given speed.
func LaunchFrom(home *Body, speed float64, stats ProbeStats) *Probe {
	return NewProbe(home.Position, home.TangentialVelocity(speed), stats)
}

// ApplyControls handles thrust, braking and rotation for one tick.
func (p *Probe) ApplyControls(c Controls) {
	thrust := physics.FromDegrees(p.Heading, p.Stats.ThrustAcceleration())

	if c.Forward {
		p.Velocity = p.Velocity.Add(thrust)
	}
	if c.Reverse {
		p.Velocity = p.Velocity.Sub(thrust)
	}
	if c.Brake {
		p.Velocity = p.Velocity.Scale(p.Stats.Damping)
	}
	if c.RotateLeft {
		p.Heading -= p.Stats.RotationStep
	}
	if c.RotateRight {
		p.Heading += p.Stats.RotationStep
	}
}

// Accelerate applies gravity from the given sources and integrates one tick.
func (p *Probe) Accelerate(g physics.Gravity, sources []physics.PointMass) {
	p.Integrate(g.NetAcceleration(p.Position, sources))
}
