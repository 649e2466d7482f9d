// Package forecast predicts the probe's future path by running a detached
// copy of the simulation forward without touching the live state.
package forecast

import (
	"iter"
	"math"

	"github.com/opd-ai/go-orbiter/pkg/entity"
	"github.com/opd-ai/go-orbiter/pkg/physics"
)

// DefaultHorizon is the number of ticks predicted ahead.
const DefaultHorizon = 600

// BodyState is the part of a body the forecast needs. It is a copy, so
// advancing it never reaches the live body.
type BodyState struct {
	OrbitRadius  float64
	Angle        float64
	AngularSpeed float64
	Mass         float64
}

// Snapshot is a detached copy of every body's orbital parameters.
type Snapshot []BodyState

// TakeSnapshot copies the orbital parameters of the given bodies.
func TakeSnapshot(bodies []*entity.Body) Snapshot {
	s := make(Snapshot, len(bodies))
	for i, b := range bodies {
		s[i] = BodyState{
			OrbitRadius:  b.OrbitRadius,
			Angle:        b.Angle,
			AngularSpeed: b.AngularSpeed,
			Mass:         b.Mass,
		}
	}
	return s
}

// Step is one predicted tick.
type Step struct {
	Index    int
	Position physics.Vector2D
	// Nearest and Farthest are the smallest and largest distances from
	// Position to any body at this tick.
	Nearest  float64
	Farthest float64
}

// Result is a complete prediction over the horizon.
type Result struct {
	Points []physics.Vector2D
	// Perihelion and Apohelion are the minimum and maximum distance to any
	// body over the whole horizon, not to one reference body.
	Perihelion float64
	Apohelion  float64
}

// HasExtrema reports whether any distance was measured.
func (r Result) HasExtrema() bool {
	return !math.IsInf(r.Perihelion, 1) && r.Apohelion != 0
}

// Forecaster runs the prediction with the same integration scheme as the
// live simulation, minus player input.
type Forecaster struct {
	Gravity physics.Gravity
	Horizon int
}

// New creates a forecaster.
func New(g physics.Gravity, horizon int) *Forecaster {
	return &Forecaster{Gravity: g, Horizon: horizon}
}

// Steps returns a lazy sequence of exactly Horizon predicted ticks starting
// from the given probe state. The snapshot is copied before use, and each
// call to the returned sequence starts again from the same inputs.
func (f *Forecaster) Steps(start entity.Kinematics, snapshot Snapshot) iter.Seq[Step] {
	bodies := append(Snapshot(nil), snapshot...)

	return func(yield func(Step) bool) {
		state := start
		local := append(Snapshot(nil), bodies...)
		sources := make([]physics.PointMass, len(local))

		for i := 0; i < f.Horizon; i++ {
			for j := range local {
				local[j].Angle += local[j].AngularSpeed
				sources[j] = physics.PointMass{
					Position: physics.FromAngle(local[j].Angle, local[j].OrbitRadius),
					Mass:     local[j].Mass,
				}
			}

			step := Step{Index: i, Nearest: math.Inf(1)}
			for _, s := range sources {
				r := s.Position.Distance(state.Position)
				step.Nearest = math.Min(step.Nearest, r)
				step.Farthest = math.Max(step.Farthest, r)
			}

			state.Integrate(f.Gravity.NetAcceleration(state.Position, sources))
			step.Position = state.Position

			if !yield(step) {
				return
			}
		}
	}
}

// Predict collects the full horizon and its distance extrema.
func (f *Forecaster) Predict(start entity.Kinematics, snapshot Snapshot) Result {
	res := Result{
		Points:     make([]physics.Vector2D, 0, max(f.Horizon, 0)),
		Perihelion: math.Inf(1),
	}
	for step := range f.Steps(start, snapshot) {
		res.Points = append(res.Points, step.Position)
		res.Perihelion = math.Min(res.Perihelion, step.Nearest)
		res.Apohelion = math.Max(res.Apohelion, step.Farthest)
	}
	return res
}

// PredictFrom snapshots the live bodies and predicts the probe's path.
func (f *Forecaster) PredictFrom(probe *entity.Probe, bodies []*entity.Body) Result {
	return f.Predict(probe.Kinematics, TakeSnapshot(bodies))
}
