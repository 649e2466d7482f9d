package entity

import (
	"github.com/opd-ai/go-orbiter/pkg/physics"
)

// DefaultHistoryLength is the number of past probe positions kept for the
// trail.
const DefaultHistoryLength = 1000

// History is a fixed-capacity ring of the most recent probe positions.
type History struct {
	points []physics.Vector2D
	next   int
	full   bool
}

// NewHistory creates an empty history holding at most capacity points.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{points: make([]physics.Vector2D, capacity)}
}

// Append records a position, dropping the oldest once the history is full.
func (h *History) Append(p physics.Vector2D) {
	h.points[h.next] = p
	h.next++
	if h.next == len(h.points) {
		h.next = 0
		h.full = true
	}
}

// Len returns the number of stored positions.
func (h *History) Len() int {
	if h.full {
		return len(h.points)
	}
	return h.next
}

// Cap returns the maximum number of stored positions.
func (h *History) Cap() int {
	return len(h.points)
}

// Points returns the stored positions from oldest to newest.
func (h *History) Points() []physics.Vector2D {
	out := make([]physics.Vector2D, 0, h.Len())
	if h.full {
		out = append(out, h.points[h.next:]...)
	}
	return append(out, h.points[:h.next]...)
}
