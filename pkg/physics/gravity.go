package physics

// DefaultG is the gravitational constant of the simulated system. It is
// tuned for playability, not for real units.
const DefaultG = 0.1

// PointMass is a gravitating source: a position and a mass.
type PointMass struct {
	Position Vector2D
	Mass     float64
}

// Gravity computes inverse-square gravitational acceleration.
//
// The returned values are accelerations (G*M/r^2), so they do not depend on
// the mass of the body being pulled.
type Gravity struct {
	G float64
}

// NewGravity returns a Gravity with the given constant.
func NewGravity(g float64) Gravity {
	return Gravity{G: g}
}

// Acceleration returns the pull a source of the given mass at source exerts
// on target. Coincident points contribute nothing.
func (g Gravity) Acceleration(source Vector2D, mass float64, target Vector2D) Vector2D {
	delta := source.Sub(target)
	r := delta.Length()
	if r == 0 {
		return Vector2D{}
	}
	f := g.G * mass / (r * r)
	return Vector2D{X: f * delta.X / r, Y: f * delta.Y / r}
}

// NetAcceleration sums the acceleration from every source on target.
func (g Gravity) NetAcceleration(target Vector2D, sources []PointMass) Vector2D {
	var total Vector2D
	for _, s := range sources {
		total = total.Add(g.Acceleration(s.Position, s.Mass, target))
	}
	return total
}
