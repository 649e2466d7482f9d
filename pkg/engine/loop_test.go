package engine

import (
	"context"
	"testing"
	"time"

	"github.com/opd-ai/go-orbiter/pkg/config"
	"github.com/opd-ai/go-orbiter/pkg/event"
	"github.com/opd-ai/go-orbiter/pkg/logging"
	"github.com/opd-ai/go-orbiter/pkg/render"
)

func newTestLoop(t *testing.T, backend render.Backend) *Loop {
	t.Helper()
	game, err := NewGame(config.DefaultConfig())
	if err != nil {
		t.Fatalf("NewGame() error: %v", err)
	}
	loop := NewLoop(game, backend, logging.Discard())
	loop.Pacer = NewPacer(0)
	return loop
}

func TestLoop_Frame_DrawsAndPresents(t *testing.T) {
	backend := render.NewTestBackend()
	loop := newTestLoop(t, backend)

	backend.Press(render.KeyThrustForward)
	if !loop.Frame(context.Background()) {
		t.Fatal("Frame() returned false without a quit event")
	}

	if backend.Presented() != 1 {
		t.Errorf("presented %d frames, want 1", backend.Presented())
	}
	if loop.Game.Ticks != 1 {
		t.Errorf("ticks = %d, want 1", loop.Game.Ticks)
	}
	if len(backend.CallsOf("DrawCircle")) == 0 {
		t.Error("expected circles to be drawn")
	}
}

func TestLoop_Frame_QuitStopsBeforeUpdate(t *testing.T) {
	backend := render.NewTestBackend()
	loop := newTestLoop(t, backend)

	quit := false
	loop.Game.EventBus.Subscribe(event.QuitRequested, func(event.Event) { quit = true })

	backend.Push(render.Event{Kind: render.EventQuit})
	if loop.Frame(context.Background()) {
		t.Error("Frame() should return false after quit")
	}
	if loop.Game.Ticks != 0 || backend.Presented() != 0 {
		t.Error("no tick should run after quit")
	}
	if !quit {
		t.Error("QuitRequested not published")
	}
}

func TestLoop_Run_EndsOnQuitAndClosesBackend(t *testing.T) {
	backend := render.NewNullBackend(logging.Discard(), 3)
	loop := newTestLoop(t, backend)

	var lifecycle []event.Type
	record := func(e event.Event) { lifecycle = append(lifecycle, e.GetType()) }
	loop.Game.EventBus.Subscribe(event.SimulationStarted, record)
	loop.Game.EventBus.Subscribe(event.SimulationStopped, record)

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if loop.Game.Ticks != 3 {
		t.Errorf("ticks = %d, want 3", loop.Game.Ticks)
	}
	if len(lifecycle) != 2 || lifecycle[0] != event.SimulationStarted || lifecycle[1] != event.SimulationStopped {
		t.Errorf("lifecycle events = %v", lifecycle)
	}
}

func TestLoop_Run_EndsOnContextCancel(t *testing.T) {
	backend := render.NewTestBackend()
	loop := newTestLoop(t, backend)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := loop.Run(ctx); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !backend.Closed {
		t.Error("backend not closed")
	}
	if loop.Game.Ticks != 1 {
		t.Errorf("ticks = %d, want 1", loop.Game.Ticks)
	}
}

func TestPacer_Wait(t *testing.T) {
	p := NewPacer(100)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := p.Wait(ctx); err != nil {
			t.Fatalf("Wait() error: %v", err)
		}
	}
	// the first token is free, the next two take about 10ms each
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Errorf("three ticks at 100Hz took %v", elapsed)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := p.Wait(cancelled); err == nil {
		t.Error("expected error from cancelled context")
	}
}
