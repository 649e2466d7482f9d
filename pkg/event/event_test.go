// pkg/event/event_test.go
package event

import (
	"sync"
	"testing"
)

func TestNewEventBus_Creation_ReturnsInitializedBus(t *testing.T) {
	bus := NewEventBus()

	if bus == nil {
		t.Fatal("NewEventBus() returned nil")
	}
	if bus.handlers == nil {
		t.Error("handlers map not initialized")
	}
}

func TestBaseEvent_GetType_ReturnsCorrectType(t *testing.T) {
	tests := []struct {
		name      string
		eventType Type
		source    interface{}
	}{
		{"SimulationStarted event", SimulationStarted, "test_source"},
		{"ZoomChanged event", ZoomChanged, 123},
		{"Empty source", QuitRequested, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := &BaseEvent{EventType: tt.eventType, Source: tt.source}

			if event.GetType() != tt.eventType {
				t.Errorf("GetType() = %v, want %v", event.GetType(), tt.eventType)
			}
			if event.GetSource() != tt.source {
				t.Errorf("GetSource() = %v, want %v", event.GetSource(), tt.source)
			}
		})
	}
}

func TestBusPublish_MatchingType_CallsHandlersInOrder(t *testing.T) {
	bus := NewEventBus()
	var order []int

	bus.Subscribe(ThrustChanged, func(Event) { order = append(order, 1) })
	bus.Subscribe(ThrustChanged, func(Event) { order = append(order, 2) })
	bus.Subscribe(ZoomChanged, func(Event) { order = append(order, 99) })

	bus.Publish(NewThrustEvent(nil, true))

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("handler order = %v, want [1 2]", order)
	}
}

func TestBusPublish_NoSubscribers_DoesNothing(t *testing.T) {
	bus := NewEventBus()
	bus.Publish(NewZoomEvent(nil, 0.5))
}

func TestBusUnsubscribe_RemovesOnlyThatHandler(t *testing.T) {
	bus := NewEventBus()
	var first, second int

	id := bus.Subscribe(ZoomChanged, func(Event) { first++ })
	bus.Subscribe(ZoomChanged, func(Event) { second++ })

	bus.Publish(NewZoomEvent(nil, 1))
	bus.Unsubscribe(ZoomChanged, id)
	bus.Publish(NewZoomEvent(nil, 2))

	if first != 1 {
		t.Errorf("unsubscribed handler called %d times, want 1", first)
	}
	if second != 2 {
		t.Errorf("remaining handler called %d times, want 2", second)
	}

	// unknown ids are ignored
	bus.Unsubscribe(ZoomChanged, 12345)
	bus.Unsubscribe(QuitRequested, id)
}

func TestEventConstructors_SetTypeAndPayload(t *testing.T) {
	thrust := NewThrustEvent("probe", true)
	if thrust.GetType() != ThrustChanged || !thrust.Thrusting || thrust.GetSource() != "probe" {
		t.Errorf("unexpected thrust event %+v", thrust)
	}

	zoom := NewZoomEvent(nil, 0.525)
	if zoom.GetType() != ZoomChanged || zoom.Zoom != 0.525 {
		t.Errorf("unexpected zoom event %+v", zoom)
	}

	stop := NewLifecycleEvent(SimulationStopped, nil, "run-1", 42)
	if stop.GetType() != SimulationStopped || stop.RunID != "run-1" || stop.Ticks != 42 {
		t.Errorf("unexpected lifecycle event %+v", stop)
	}
}

func TestBus_ConcurrentSubscribeAndPublish_IsSafe(t *testing.T) {
	bus := NewEventBus()
	var mu sync.Mutex
	count := 0

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			bus.Subscribe(ThrustChanged, func(Event) {
				mu.Lock()
				count++
				mu.Unlock()
			})
		}()
		go func() {
			defer wg.Done()
			bus.Publish(NewThrustEvent(nil, false))
		}()
	}
	wg.Wait()

	mu.Lock()
	count = 0
	mu.Unlock()
	bus.Publish(NewThrustEvent(nil, true))

	mu.Lock()
	defer mu.Unlock()
	if count != 10 {
		t.Errorf("expected 10 handler calls, got %d", count)
	}
}
