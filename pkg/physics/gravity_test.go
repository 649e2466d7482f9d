package physics

import (
	"math"
	"testing"
)

const epsilon = 1e-12

func TestGravity_Acceleration_Magnitude(t *testing.T) {
	g := NewGravity(0.1)
	source := Vector2D{X: 160, Y: 0}
	target := Vector2D{}

	got := g.Acceleration(source, 3000, target)
	want := 0.1 * 3000 / (160.0 * 160.0)

	if math.Abs(got.X-want) > epsilon || math.Abs(got.Y) > epsilon {
		t.Errorf("Acceleration() = %v, expected (%v, 0)", got, want)
	}
}

func TestGravity_Acceleration_ZeroDistance(t *testing.T) {
	g := NewGravity(DefaultG)
	p := Vector2D{X: 42, Y: -7}

	got := g.Acceleration(p, 1e9, p)
	if got != (Vector2D{}) {
		t.Errorf("coincident points should contribute nothing, got %v", got)
	}
	if !got.IsFinite() {
		t.Error("coincident points produced a non-finite acceleration")
	}
}

func TestGravity_Acceleration_Antisymmetric(t *testing.T) {
	g := NewGravity(DefaultG)
	tests := []struct {
		name string
		a, b Vector2D
	}{
		{"axis_aligned", Vector2D{X: 0, Y: 0}, Vector2D{X: 100, Y: 0}},
		{"diagonal", Vector2D{X: -30, Y: 12}, Vector2D{X: 250, Y: -400}},
		{"close", Vector2D{X: 1, Y: 1}, Vector2D{X: 1.5, Y: 0.75}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// equal masses: a pulled by b, b pulled by a
			onA := g.Acceleration(tt.b, 500, tt.a)
			onB := g.Acceleration(tt.a, 500, tt.b)

			if math.Abs(onA.Length()-onB.Length()) > 1e-9*onA.Length() {
				t.Errorf("magnitudes differ: %v vs %v", onA.Length(), onB.Length())
			}
			sum := onA.Add(onB)
			if sum.Length() > 1e-9*onA.Length() {
				t.Errorf("directions are not opposite: %v + %v = %v", onA, onB, sum)
			}
		})
	}
}

func TestGravity_Acceleration_PointsTowardSource(t *testing.T) {
	g := NewGravity(DefaultG)
	target := Vector2D{X: 10, Y: 10}
	source := Vector2D{X: -90, Y: 10}

	got := g.Acceleration(source, 100, target)
	if got.X >= 0 || math.Abs(got.Y) > epsilon {
		t.Errorf("expected pull toward -X, got %v", got)
	}
}

func TestGravity_NetAcceleration_Superposition(t *testing.T) {
	g := NewGravity(DefaultG)
	target := Vector2D{}
	sources := []PointMass{
		{Position: Vector2D{X: 100, Y: 0}, Mass: 1000},
		{Position: Vector2D{X: -100, Y: 0}, Mass: 1000},
		{Position: Vector2D{X: 0, Y: 50}, Mass: 250},
		{Position: target, Mass: 1e6},
	}

	got := g.NetAcceleration(target, sources)
	wantY := 0.1 * 250 / (50.0 * 50.0)

	if math.Abs(got.X) > epsilon {
		t.Errorf("opposing sources should cancel on X, got %v", got.X)
	}
	if math.Abs(got.Y-wantY) > epsilon {
		t.Errorf("NetAcceleration().Y = %v, expected %v", got.Y, wantY)
	}
}

func TestGravity_NetAcceleration_NoSources(t *testing.T) {
	if got := NewGravity(DefaultG).NetAcceleration(Vector2D{X: 1, Y: 2}, nil); got != (Vector2D{}) {
		t.Errorf("expected zero acceleration, got %v", got)
	}
}
