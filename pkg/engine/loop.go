package engine

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/opd-ai/go-orbiter/pkg/event"
	"github.com/opd-ai/go-orbiter/pkg/logging"
	"github.com/opd-ai/go-orbiter/pkg/render"
)

// Pacer spaces ticks at a target rate. It is best effort: a slow tick is
// not made up for later.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a pacer for hz ticks per second. A non-positive rate
// never waits.
func NewPacer(hz int) *Pacer {
	limit := rate.Inf
	if hz > 0 {
		limit = rate.Limit(hz)
	}
	return &Pacer{limiter: rate.NewLimiter(limit, 1)}
}

// Wait blocks until the next tick is due or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// Loop drives a Game against a render backend
type Loop struct {
	Game    *Game
	Backend render.Backend
	Scene   *render.Scene
	Pacer   *Pacer
	Logger  *logging.Logger
}

// NewLoop creates a loop paced at the configured tick rate
func NewLoop(game *Game, backend render.Backend, logger *logging.Logger) *Loop {
	return &Loop{
		Game:    game,
		Backend: backend,
		Scene:   render.NewScene(),
		Pacer:   NewPacer(game.Config.Window.TickRate),
		Logger:  logger,
	}
}

// Frame runs one tick: events, input, update and draw. It returns false
// once the backend asked to quit.
func (l *Loop) Frame(ctx context.Context) bool {
	for _, ev := range l.Backend.PollEvents() {
		if ev.Kind == render.EventQuit {
			l.Logger.Debug(ctx, "Quit requested", "tick", l.Game.Ticks)
			l.Game.EventBus.Publish(&event.BaseEvent{EventType: event.QuitRequested, Source: l})
			return false
		}
	}

	l.Game.Update(ReadCommands(l.Backend))

	skipped := l.Scene.Draw(l.Backend, l.Game.Frame())
	if skipped > 0 {
		l.Game.Metrics.AddSkippedPoints(skipped)
		l.Logger.Debug(ctx, "Skipped non-finite points", "tick", l.Game.Ticks, "count", skipped)
	}
	return true
}

// Run loops until the backend quits or ctx is cancelled. The backend is
// closed on return.
func (l *Loop) Run(ctx context.Context) (err error) {
	defer func() {
		if cerr := l.Backend.Close(); cerr != nil && err == nil {
			err = logging.WrapError(cerr, "failed to close backend")
		}
	}()

	l.Start(ctx)
	defer l.Stop(ctx)

	for l.Frame(ctx) {
		if werr := l.Pacer.Wait(ctx); werr != nil {
			if ctx.Err() != nil {
				return nil
			}
			return logging.WrapError(werr, "pacer wait failed")
		}
	}
	return nil
}

// Start announces the beginning of a run.
func (l *Loop) Start(ctx context.Context) {
	l.Logger.Info(ctx, "Simulation started",
		"bodies", l.Game.Bodies.Len(),
		"home", l.Game.Config.Probe.HomeBody,
		"tick_rate", l.Game.Config.Window.TickRate,
	)
	l.Game.EventBus.Publish(event.NewLifecycleEvent(event.SimulationStarted, l, logging.GetRunID(ctx), l.Game.Ticks))
}

// Stop announces the end of a run.
func (l *Loop) Stop(ctx context.Context) {
	l.Game.EventBus.Publish(event.NewLifecycleEvent(event.SimulationStopped, l, logging.GetRunID(ctx), l.Game.Ticks))
	l.Logger.Info(ctx, "Simulation stopped", "ticks", l.Game.Ticks)
}
