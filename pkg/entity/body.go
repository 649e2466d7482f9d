// pkg/entity/body.go
package entity

import (
	"fmt"
	"image/color"
	"math"

	"github.com/opd-ai/go-orbiter/pkg/physics"
)

// Body is a planet on a fixed circular orbit around the origin.
//
// Position is always derived from OrbitRadius and Angle. Velocity collects
// the pull of the other bodies every tick but is never used to move the
// body.
type Body struct {
	Kinematics
	Name         string
	OrbitRadius  float64
	AngularSpeed float64 // radians per tick
	Mass         float64
	Color        color.RGBA
	Angle        float64 // radians
}

// NewBody creates a body placed on its orbit at the given angle.
func NewBody(name string, orbitRadius, angularSpeed, mass float64, c color.RGBA, angle float64) *Body {
	b := &Body{
		Name:         name,
		OrbitRadius:  orbitRadius,
		AngularSpeed: angularSpeed,
		Mass:         mass,
		Color:        c,
		Angle:        angle,
	}
	b.place()
	return b
}

// place recomputes the position from the orbit radius and current angle.
func (b *Body) place() {
	b.Position = physics.FromAngle(b.Angle, b.OrbitRadius)
}

// TangentialVelocity returns a velocity of the given speed along the orbit
// direction at the body's current angle.
func (b *Body) TangentialVelocity(speed float64) physics.Vector2D {
	return physics.Vector2D{
		X: -speed * math.Sin(b.Angle),
		Y: speed * math.Cos(b.Angle),
	}
}

// PointMass returns the body as a gravitating source.
func (b *Body) PointMass() physics.PointMass {
	return physics.PointMass{Position: b.Position, Mass: b.Mass}
}

// Registry holds every body of the system in a fixed order.
type Registry struct {
	bodies []*Body
	byName map[string]*Body
}

// NewRegistry creates a registry from the given bodies. Names must be unique.
func NewRegistry(bodies ...*Body) (*Registry, error) {
	r := &Registry{
		bodies: make([]*Body, 0, len(bodies)),
		byName: make(map[string]*Body, len(bodies)),
	}
	for _, b := range bodies {
		if b == nil {
			return nil, fmt.Errorf("nil body in registry")
		}
		if _, exists := r.byName[b.Name]; exists {
			return nil, fmt.Errorf("duplicate body name %q", b.Name)
		}
		r.bodies = append(r.bodies, b)
		r.byName[b.Name] = b
	}
	return r, nil
}

// Bodies returns the registered bodies in registration order. The slice must
// not be modified.
func (r *Registry) Bodies() []*Body {
	return r.bodies
}

// Len returns the number of registered bodies.
func (r *Registry) Len() int {
	return len(r.bodies)
}

// Lookup finds a body by name.
func (r *Registry) Lookup(name string) (*Body, bool) {
	b, ok := r.byName[name]
	return b, ok
}

// Sources returns the current position and mass of every body.
func (r *Registry) Sources() []physics.PointMass {
	sources := make([]physics.PointMass, len(r.bodies))
	for i, b := range r.bodies {
		sources[i] = b.PointMass()
	}
	return sources
}

// Advance moves every body forward by one tick.
//
// Mutual gravity is accumulated from the positions held at the start of the
// tick, so the order of the bodies does not change the forces. Each body
// then advances its angle and is placed back on its orbit.
func (r *Registry) Advance(g physics.Gravity) {
	start := r.Sources()

	for i, b := range r.bodies {
		var accel physics.Vector2D
		for j, other := range start {
			if i == j {
				continue
			}
			accel = accel.Add(g.Acceleration(other.Position, other.Mass, b.Position))
		}
		b.Velocity = b.Velocity.Add(accel)
	}

	for _, b := range r.bodies {
		b.Angle += b.AngularSpeed
		b.place()
	}
}
