// pkg/entity/entity.go
package entity

import (
	"github.com/opd-ai/go-orbiter/pkg/physics"
)

// Kinematics holds the position and velocity shared by every moving entity.
type Kinematics struct {
	Position physics.Vector2D
	Velocity physics.Vector2D
}

// Integrate advances the state by one tick with semi-implicit Euler: the
// acceleration is applied to the velocity first, and the new velocity moves
// the position.
func (k *Kinematics) Integrate(accel physics.Vector2D) {
	k.Velocity = k.Velocity.Add(accel)
	k.Position = k.Position.Add(k.Velocity)
}

// Speed returns the magnitude of the velocity.
func (k *Kinematics) Speed() float64 {
	return k.Velocity.Length()
}
