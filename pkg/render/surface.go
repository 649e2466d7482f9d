// Package render defines the boundary between the simulation and whatever
// draws it, and composes each frame from the simulation state.
package render

import (
	"image/color"

	"github.com/opd-ai/go-orbiter/pkg/physics"
)

// Surface receives the draw calls of one frame. All coordinates are screen
// pixels.
type Surface interface {
	Clear(c color.RGBA)
	DrawCircle(center physics.Vector2D, radius float64, c color.RGBA)
	DrawPolyline(points []physics.Vector2D, c color.RGBA, closed bool)
	DrawLine(from, to physics.Vector2D, c color.RGBA)
	DrawText(text string, pos physics.Vector2D, c color.RGBA)
	Present()
}

// Key is a logical control. Backends decide which physical keys, and which
// modifiers, produce it.
type Key int

const (
	KeyThrustForward Key = iota
	KeyThrustReverse
	KeyBrake
	KeyRotateLeft
	KeyRotateRight
	KeyZoomIn
	KeyZoomOut
)

var keyNames = [...]string{
	KeyThrustForward: "thrust-forward",
	KeyThrustReverse: "thrust-reverse",
	KeyBrake:         "brake",
	KeyRotateLeft:    "rotate-left",
	KeyRotateRight:   "rotate-right",
	KeyZoomIn:        "zoom-in",
	KeyZoomOut:       "zoom-out",
}

// Keys lists every logical control.
func Keys() []Key {
	return []Key{KeyThrustForward, KeyThrustReverse, KeyBrake, KeyRotateLeft, KeyRotateRight, KeyZoomIn, KeyZoomOut}
}

func (k Key) String() string {
	if k >= 0 && int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "unknown"
}

// EventKind identifies a window or terminal event.
type EventKind int

const (
	// EventQuit asks the loop to stop.
	EventQuit EventKind = iota
)

// Event is a pending window event.
type Event struct {
	Kind EventKind
}

// Input reports the controls held down right now. Neither method may
// block.
type Input interface {
	IsKeyDown(k Key) bool
	PollEvents() []Event
}

// Backend is a complete display: drawing, input and the resources behind
// them, released by Close.
type Backend interface {
	Surface
	Input
	Close() error
}
