package camera

import (
	"math"
	"testing"

	"github.com/opd-ai/go-orbiter/pkg/physics"
)

func TestNew(t *testing.T) {
	c := New(1000, 800, 0.5, 1.05)

	if c.Zoom() != 0.5 {
		t.Errorf("Expected zoom 0.5, got %f", c.Zoom())
	}
	if c.ScreenCenter() != (physics.Vector2D{X: 500, Y: 400}) {
		t.Errorf("Expected screen center (500, 400), got %v", c.ScreenCenter())
	}
	if min, max := c.ZoomLimits(); min != 0 || max != 0 {
		t.Errorf("Expected unbounded zoom by default, got (%f, %f)", min, max)
	}
}

func TestView_CenterMapsToScreenCenter(t *testing.T) {
	c := New(1000, 800, 0.5, 1.05)
	centers := []physics.Vector2D{
		{X: 0, Y: 0},
		{X: 400, Y: 0},
		{X: -12345.6, Y: 987.25},
	}
	for _, zoom := range []float64{1e-6, 0.5, 1, 37} {
		c.SetZoom(zoom)
		for _, center := range centers {
			got, ok := c.View(center).WorldToScreen(center)
			if !ok {
				t.Fatalf("center %v at zoom %v was not finite", center, zoom)
			}
			if got != c.ScreenCenter() {
				t.Errorf("WorldToScreen(center) = %v, expected %v", got, c.ScreenCenter())
			}
		}
	}
}

func TestView_WorldToScreen(t *testing.T) {
	v := View{
		Center:       physics.Vector2D{X: 400, Y: 0},
		Zoom:         0.5,
		ScreenCenter: physics.Vector2D{X: 500, Y: 400},
	}
	tests := []struct {
		name  string
		world physics.Vector2D
		want  physics.Vector2D
	}{
		{"origin", physics.Vector2D{}, physics.Vector2D{X: 300, Y: 400}},
		{"offset", physics.Vector2D{X: 600, Y: -200}, physics.Vector2D{X: 600, Y: 300}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := v.WorldToScreen(tt.world)
			if !ok || got != tt.want {
				t.Errorf("WorldToScreen(%v) = %v, %v; expected %v", tt.world, got, ok, tt.want)
			}
			back := v.ScreenToWorld(got)
			if back.Distance(tt.world) > 1e-9 {
				t.Errorf("ScreenToWorld round trip = %v, expected %v", back, tt.world)
			}
		})
	}
}

func TestView_WorldToScreen_NonFinite(t *testing.T) {
	v := View{Zoom: math.Inf(1), ScreenCenter: physics.Vector2D{X: 500, Y: 400}}

	if _, ok := v.WorldToScreen(physics.Vector2D{X: 1, Y: 1}); ok {
		t.Error("expected infinite projection to be reported")
	}
	v.Zoom = 1
	if _, ok := v.WorldToScreen(physics.Vector2D{X: math.NaN()}); ok {
		t.Error("expected NaN projection to be reported")
	}
}

func TestCamera_ZoomSteps(t *testing.T) {
	c := New(1000, 800, 0.5, 1.05)
	for i := 0; i < 10; i++ {
		c.ZoomIn()
	}
	want := 0.5 * math.Pow(1.05, 10)
	if math.Abs(c.Zoom()-want) > 1e-12 {
		t.Errorf("Zoom after 10 steps in = %v, expected %v", c.Zoom(), want)
	}
	for i := 0; i < 10; i++ {
		c.ZoomOut()
	}
	if math.Abs(c.Zoom()-0.5) > 1e-12 {
		t.Errorf("Zoom after returning = %v, expected 0.5", c.Zoom())
	}
}

func TestCamera_ZoomLimits(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
		steps    int
		want     float64
	}{
		{"clamped_high", 0.1, 0.6, 50, 0.6},
		{"clamped_low", 0.4, 4, -50, 0.4},
		{"only_max", 0, 0.55, 50, 0.55},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(1000, 800, 0.5, 1.05)
			c.SetZoomLimits(tt.min, tt.max)
			for i := 0; i < tt.steps; i++ {
				c.ZoomIn()
			}
			for i := 0; i > tt.steps; i-- {
				c.ZoomOut()
			}
			if c.Zoom() != tt.want {
				t.Errorf("Zoom() = %v, expected %v", c.Zoom(), tt.want)
			}
		})
	}
}

func TestCamera_SetZoomLimits_ClampsCurrent(t *testing.T) {
	c := New(1000, 800, 5, 1.05)
	c.SetZoomLimits(0.1, 3)
	if c.Zoom() != 3 {
		t.Errorf("Expected zoom clamped to 3, got %f", c.Zoom())
	}
}
