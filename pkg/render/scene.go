package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/opd-ai/go-orbiter/pkg/camera"
	"github.com/opd-ai/go-orbiter/pkg/entity"
	"github.com/opd-ai/go-orbiter/pkg/forecast"
	"github.com/opd-ai/go-orbiter/pkg/physics"
)

// Palette holds the colors of a frame.
type Palette struct {
	Background color.RGBA
	Orbit      color.RGBA
	History    color.RGBA
	Forecast   color.RGBA
	Label      color.RGBA
	Probe      color.RGBA
	Heading    color.RGBA
	Perihelion color.RGBA
	Apohelion  color.RGBA
}

// DefaultPalette returns the stock colors.
func DefaultPalette() Palette {
	return Palette{
		Background: color.RGBA{0, 0, 20, 255},
		Orbit:      color.RGBA{100, 100, 100, 255},
		History:    color.RGBA{80, 160, 255, 255},
		Forecast:   color.RGBA{255, 255, 0, 255},
		Label:      color.RGBA{255, 255, 255, 255},
		Probe:      color.RGBA{255, 255, 255, 255},
		Heading:    color.RGBA{255, 0, 0, 255},
		Perihelion: color.RGBA{255, 180, 180, 255},
		Apohelion:  color.RGBA{180, 180, 255, 255},
	}
}

const (
	orbitStepDegrees = 4
	dotRadius        = 1
	probeRadius      = 5
	headingLength    = 10
	minBodyRadius    = 3
	bodyRadiusScale  = 8
)

// Frame is everything drawn in one tick. View is the camera snapshot used
// for every projection of the frame.
type Frame struct {
	View     camera.View
	Bodies   []*entity.Body
	Probe    *entity.Probe
	History  []physics.Vector2D
	Forecast forecast.Result
}

// Scene turns a Frame into draw calls.
type Scene struct {
	Palette Palette
}

// NewScene creates a scene with the default palette.
func NewScene() *Scene {
	return &Scene{Palette: DefaultPalette()}
}

// Draw renders the frame onto s and presents it. It returns how many
// points were skipped because their projection was not finite.
func (sc *Scene) Draw(s Surface, f Frame) int {
	d := drawer{surface: s, view: f.View}
	p := sc.Palette

	s.Clear(p.Background)

	for _, b := range f.Bodies {
		d.orbit(b.OrbitRadius, p.Orbit)
	}
	for _, pt := range f.History {
		d.dot(pt, dotRadius, p.History)
	}
	for _, pt := range f.Forecast.Points {
		d.dot(pt, dotRadius, p.Forecast)
	}

	screenW := f.View.ScreenCenter.X * 2
	screenH := f.View.ScreenCenter.Y * 2

	if f.Forecast.HasExtrema() {
		s.DrawText(fmt.Sprintf("Perihelion (nearest body): %.0f", f.Forecast.Perihelion),
			physics.Vector2D{X: 10, Y: screenH - 50}, p.Perihelion)
		s.DrawText(fmt.Sprintf("Apohelion (farthest body): %.0f", f.Forecast.Apohelion),
			physics.Vector2D{X: 10, Y: screenH - 30}, p.Apohelion)
	}

	bodyRadius := math.Max(minBodyRadius, math.Trunc(f.View.ScaleLength(bodyRadiusScale)))
	for _, b := range f.Bodies {
		if pos, ok := d.dot(b.Position, bodyRadius, b.Color); ok {
			s.DrawText(b.Name, pos.Add(physics.Vector2D{X: 6, Y: -6}), p.Label)
		}
	}

	if f.Probe != nil {
		if pos, ok := d.dot(f.Probe.Position, probeRadius, p.Probe); ok {
			tip := pos.Add(physics.FromDegrees(f.Probe.Heading, headingLength))
			s.DrawLine(pos, tip, p.Heading)
		}
		s.DrawText(fmt.Sprintf("Speed: %.2f km/s", f.Probe.Speed()),
			physics.Vector2D{X: screenW - 200, Y: screenH - 30}, p.Label)
	}

	s.Present()
	return d.skipped
}

// drawer projects through one view and counts rejected points.
type drawer struct {
	surface Surface
	view    camera.View
	skipped int
}

func (d *drawer) project(world physics.Vector2D) (physics.Vector2D, bool) {
	screen, ok := d.view.WorldToScreen(world)
	if !ok {
		d.skipped++
	}
	return screen, ok
}

func (d *drawer) dot(world physics.Vector2D, radius float64, c color.RGBA) (physics.Vector2D, bool) {
	screen, ok := d.project(world)
	if ok {
		d.surface.DrawCircle(screen, radius, c)
	}
	return screen, ok
}

// orbit draws the circle of the given radius around the origin as a closed
// polyline.
func (d *drawer) orbit(radius float64, c color.RGBA) {
	points := make([]physics.Vector2D, 0, 360/orbitStepDegrees)
	for deg := 0; deg < 360; deg += orbitStepDegrees {
		if screen, ok := d.project(physics.FromDegrees(float64(deg), radius)); ok {
			points = append(points, screen)
		}
	}
	if len(points) > 1 {
		d.surface.DrawPolyline(points, c, true)
	}
}
