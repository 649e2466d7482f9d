package render

import (
	"context"
	"image/color"
	"sync"

	"github.com/opd-ai/go-orbiter/pkg/logging"
	"github.com/opd-ai/go-orbiter/pkg/physics"
)

// NullBackend draws nothing and never presses a key. It logs every call at
// debug level and asks to quit after a fixed number of frames, which makes
// it usable for headless runs.
type NullBackend struct {
	logger    *logging.Logger
	maxFrames int
	frames    int
}

// NewNullBackend creates a NullBackend that quits after maxFrames presented
// frames. Zero means never.
func NewNullBackend(logger *logging.Logger, maxFrames int) *NullBackend {
	return &NullBackend{logger: logger, maxFrames: maxFrames}
}

// Clear implements Surface.
func (n *NullBackend) Clear(c color.RGBA) {
	n.logger.Debug(context.Background(), "Clear called", "frame", n.frames)
}

// DrawCircle implements Surface.
func (n *NullBackend) DrawCircle(center physics.Vector2D, radius float64, c color.RGBA) {}

// DrawPolyline implements Surface.
func (n *NullBackend) DrawPolyline(points []physics.Vector2D, c color.RGBA, closed bool) {}

// DrawLine implements Surface.
func (n *NullBackend) DrawLine(from, to physics.Vector2D, c color.RGBA) {}

// DrawText implements Surface.
func (n *NullBackend) DrawText(text string, pos physics.Vector2D, c color.RGBA) {}

// Present implements Surface.
func (n *NullBackend) Present() {
	n.frames++
	n.logger.Debug(context.Background(), "Present called", "frame", n.frames)
}

// IsKeyDown implements Input.
func (n *NullBackend) IsKeyDown(k Key) bool { return false }

// PollEvents implements Input.
func (n *NullBackend) PollEvents() []Event {
	if n.maxFrames > 0 && n.frames >= n.maxFrames {
		return []Event{{Kind: EventQuit}}
	}
	return nil
}

// Close implements Backend.
func (n *NullBackend) Close() error {
	n.logger.Debug(context.Background(), "Close called", "frames", n.frames)
	return nil
}

// Call is one recorded draw call.
type Call struct {
	Op     string
	Points []physics.Vector2D
	Radius float64
	Text   string
	Color  color.RGBA
	Closed bool
}

// RecordingSurface keeps every draw call of the current frame in memory.
type RecordingSurface struct {
	mu        sync.Mutex
	calls     []Call
	presented int
}

// Clear implements Surface and starts a new frame.
func (r *RecordingSurface) Clear(c color.RGBA) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls[:0], Call{Op: "clear", Color: c})
}

// DrawCircle implements Surface.
func (r *RecordingSurface) DrawCircle(center physics.Vector2D, radius float64, c color.RGBA) {
	r.record(Call{Op: "circle", Points: []physics.Vector2D{center}, Radius: radius, Color: c})
}

// DrawPolyline implements Surface.
func (r *RecordingSurface) DrawPolyline(points []physics.Vector2D, c color.RGBA, closed bool) {
	r.record(Call{Op: "polyline", Points: append([]physics.Vector2D(nil), points...), Color: c, Closed: closed})
}

// DrawLine implements Surface.
func (r *RecordingSurface) DrawLine(from, to physics.Vector2D, c color.RGBA) {
	r.record(Call{Op: "line", Points: []physics.Vector2D{from, to}, Color: c})
}

// DrawText implements Surface.
func (r *RecordingSurface) DrawText(text string, pos physics.Vector2D, c color.RGBA) {
	r.record(Call{Op: "text", Points: []physics.Vector2D{pos}, Text: text, Color: c})
}

// Present implements Surface.
func (r *RecordingSurface) Present() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presented++
}

func (r *RecordingSurface) record(c Call) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
}

// Calls returns the calls of the current frame.
func (r *RecordingSurface) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// CallsOf returns the recorded calls of one operation.
func (r *RecordingSurface) CallsOf(op string) []Call {
	var out []Call
	for _, c := range r.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Presented returns the number of presented frames.
func (r *RecordingSurface) Presented() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.presented
}

// ScriptedInput is an Input whose state is set by the caller.
type ScriptedInput struct {
	mu     sync.Mutex
	down   map[Key]bool
	events []Event
}

// NewScriptedInput creates an input with every key released.
func NewScriptedInput() *ScriptedInput {
	return &ScriptedInput{down: make(map[Key]bool)}
}

// Press holds k down until Release.
func (s *ScriptedInput) Press(k Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.down[k] = true
}

// Release lets k go.
func (s *ScriptedInput) Release(k Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.down, k)
}

// Push queues an event for the next PollEvents.
func (s *ScriptedInput) Push(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

// IsKeyDown implements Input.
func (s *ScriptedInput) IsKeyDown(k Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.down[k]
}

// PollEvents implements Input.
func (s *ScriptedInput) PollEvents() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	return events
}

// TestBackend joins a RecordingSurface and a ScriptedInput into a Backend.
type TestBackend struct {
	*RecordingSurface
	*ScriptedInput
	Closed bool
}

// NewTestBackend creates an in-memory backend.
func NewTestBackend() *TestBackend {
	return &TestBackend{
		RecordingSurface: &RecordingSurface{},
		ScriptedInput:    NewScriptedInput(),
	}
}

// Close implements Backend.
func (t *TestBackend) Close() error {
	t.Closed = true
	return nil
}
