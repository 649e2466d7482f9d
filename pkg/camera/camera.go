// Package camera maps world coordinates onto the screen for a view locked
// on the probe.
package camera

import (
	"github.com/opd-ai/go-orbiter/pkg/physics"
)

// Camera holds the zoom state. Its center is not stored: each tick the
// caller takes a View centered on the probe.
type Camera struct {
	screenCenter physics.Vector2D
	zoom         float64
	zoomFactor   float64

	// A limit of 0 means unbounded.
	minZoom float64
	maxZoom float64
}

// New creates a camera for a screen of the given size.
func New(screenWidth, screenHeight, zoom, zoomFactor float64) *Camera {
	return &Camera{
		screenCenter: physics.Vector2D{X: screenWidth / 2, Y: screenHeight / 2},
		zoom:         zoom,
		zoomFactor:   zoomFactor,
	}
}

// SetZoomLimits sets the minimum and maximum zoom levels. Zero disables the
// corresponding bound.
func (c *Camera) SetZoomLimits(min, max float64) {
	c.minZoom = min
	c.maxZoom = max
	c.zoom = c.clampZoom(c.zoom)
}

// ZoomLimits returns the current zoom limits
func (c *Camera) ZoomLimits() (float64, float64) {
	return c.minZoom, c.maxZoom
}

// Zoom returns the current zoom level
func (c *Camera) Zoom() float64 {
	return c.zoom
}

// SetZoom sets the zoom level, honoring the limits.
func (c *Camera) SetZoom(zoom float64) {
	c.zoom = c.clampZoom(zoom)
}

// ZoomIn multiplies the zoom by the zoom factor.
func (c *Camera) ZoomIn() {
	c.SetZoom(c.zoom * c.zoomFactor)
}

// ZoomOut divides the zoom by the zoom factor.
func (c *Camera) ZoomOut() {
	c.SetZoom(c.zoom / c.zoomFactor)
}

// ScreenCenter returns the screen point the camera center maps to.
func (c *Camera) ScreenCenter() physics.Vector2D {
	return c.screenCenter
}

func (c *Camera) clampZoom(zoom float64) float64 {
	if c.minZoom > 0 && zoom < c.minZoom {
		return c.minZoom
	}
	if c.maxZoom > 0 && zoom > c.maxZoom {
		return c.maxZoom
	}
	return zoom
}

// View freezes the camera for one frame, centered on center. Every
// projection in a frame goes through the same View.
func (c *Camera) View(center physics.Vector2D) View {
	return View{
		Center:       center,
		Zoom:         c.zoom,
		ScreenCenter: c.screenCenter,
	}
}

// View is an immutable camera snapshot.
type View struct {
	Center       physics.Vector2D
	Zoom         float64
	ScreenCenter physics.Vector2D
}

// WorldToScreen projects a world point. The boolean is false when the
// result is not finite and must not be drawn.
func (v View) WorldToScreen(world physics.Vector2D) (physics.Vector2D, bool) {
	screen := world.Sub(v.Center).Scale(v.Zoom).Add(v.ScreenCenter)
	return screen, screen.IsFinite()
}

// ScreenToWorld is the inverse of WorldToScreen.
func (v View) ScreenToWorld(screen physics.Vector2D) physics.Vector2D {
	return screen.Sub(v.ScreenCenter).Scale(1 / v.Zoom).Add(v.Center)
}

// ScaleLength converts a world length into screen pixels.
func (v View) ScaleLength(length float64) float64 {
	return length * v.Zoom
}
