// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Simulation event types
const (
	SimulationStarted Type = "simulation_started"
	SimulationStopped Type = "simulation_stopped"
	ThrustChanged     Type = "thrust_changed"
	ZoomChanged       Type = "zoom_changed"
	QuitRequested     Type = "quit_requested"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// SubscriptionID identifies a registered handler
type SubscriptionID uint64

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// Bus manages event subscriptions and dispatching. Handlers run
// synchronously on the publishing goroutine.
type Bus struct {
	handlers map[Type][]subscription
	nextID   SubscriptionID
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscription),
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) SubscriptionID {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: b.nextID, handler: handler})
	return b.nextID
}

// Unsubscribe removes a handler previously returned by Subscribe
func (b *Bus) Unsubscribe(eventType Type, id SubscriptionID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, s := range subs {
		if s.id == id {
			// copy so a concurrent Publish keeps its snapshot intact
			next := make([]subscription, 0, len(subs)-1)
			next = append(next, subs[:i]...)
			b.handlers[eventType] = append(next, subs[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// Specific event implementations

// ThrustEvent is published when the probe starts or stops firing
type ThrustEvent struct {
	BaseEvent
	Thrusting bool
}

// NewThrustEvent creates a new thrust event
func NewThrustEvent(source interface{}, thrusting bool) *ThrustEvent {
	return &ThrustEvent{
		BaseEvent: BaseEvent{
			EventType: ThrustChanged,
			Source:    source,
		},
		Thrusting: thrusting,
	}
}

// ZoomEvent carries the camera zoom after a change
type ZoomEvent struct {
	BaseEvent
	Zoom float64
}

// NewZoomEvent creates a new zoom event
func NewZoomEvent(source interface{}, zoom float64) *ZoomEvent {
	return &ZoomEvent{
		BaseEvent: BaseEvent{
			EventType: ZoomChanged,
			Source:    source,
		},
		Zoom: zoom,
	}
}

// LifecycleEvent marks the start or end of a run
type LifecycleEvent struct {
	BaseEvent
	RunID string
	Ticks uint64
}

// NewLifecycleEvent creates a new lifecycle event
func NewLifecycleEvent(eventType Type, source interface{}, runID string, ticks uint64) *LifecycleEvent {
	return &LifecycleEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		RunID: runID,
		Ticks: ticks,
	}
}
