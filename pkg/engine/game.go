// pkg/engine/game.go
package engine

import (
	"fmt"
	"time"

	"github.com/opd-ai/go-orbiter/pkg/camera"
	"github.com/opd-ai/go-orbiter/pkg/config"
	"github.com/opd-ai/go-orbiter/pkg/entity"
	"github.com/opd-ai/go-orbiter/pkg/event"
	"github.com/opd-ai/go-orbiter/pkg/forecast"
	"github.com/opd-ai/go-orbiter/pkg/metrics"
	"github.com/opd-ai/go-orbiter/pkg/physics"
	"github.com/opd-ai/go-orbiter/pkg/render"
)

// Commands are the player inputs for one tick.
type Commands struct {
	entity.Controls
	ZoomIn  bool
	ZoomOut bool
}

// ReadCommands samples the held keys of in.
func ReadCommands(in render.Input) Commands {
	return Commands{
		Controls: entity.Controls{
			Forward:     in.IsKeyDown(render.KeyThrustForward),
			Reverse:     in.IsKeyDown(render.KeyThrustReverse),
			Brake:       in.IsKeyDown(render.KeyBrake),
			RotateLeft:  in.IsKeyDown(render.KeyRotateLeft),
			RotateRight: in.IsKeyDown(render.KeyRotateRight),
		},
		ZoomIn:  in.IsKeyDown(render.KeyZoomIn),
		ZoomOut: in.IsKeyDown(render.KeyZoomOut),
	}
}

// Game holds the complete simulation state
type Game struct {
	Config     *config.GameConfig
	Gravity    physics.Gravity
	Bodies     *entity.Registry
	Probe      *entity.Probe
	History    *entity.History
	Camera     *camera.Camera
	Forecaster *forecast.Forecaster
	Forecast   forecast.Result
	EventBus   *event.Bus
	Metrics    *metrics.Collector
	Ticks      uint64

	thrusting bool
}

// NewGame creates a simulation from a validated configuration
func NewGame(cfg *config.GameConfig) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bodies := make([]*entity.Body, 0, len(cfg.Bodies))
	for _, bc := range cfg.Bodies {
		b, err := bc.NewBody()
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, b)
	}

	registry, err := entity.NewRegistry(bodies...)
	if err != nil {
		return nil, fmt.Errorf("failed to create body registry: %w", err)
	}

	home, ok := registry.Lookup(cfg.Probe.HomeBody)
	if !ok {
		return nil, fmt.Errorf("home body %q not found", cfg.Probe.HomeBody)
	}

	cam := camera.New(float64(cfg.Window.Width), float64(cfg.Window.Height),
		cfg.Camera.InitialZoom, cfg.Camera.ZoomFactor)
	cam.SetZoomLimits(cfg.Camera.MinZoom, cfg.Camera.MaxZoom)

	gravity := physics.NewGravity(cfg.Physics.Gravity)

	g := &Game{
		Config:     cfg,
		Gravity:    gravity,
		Bodies:     registry,
		Probe:      entity.LaunchFrom(home, cfg.Probe.LaunchSpeed, cfg.Probe.ProbeStats()),
		History:    entity.NewHistory(cfg.Physics.HistoryLength),
		Camera:     cam,
		Forecaster: forecast.New(gravity, cfg.Physics.ForecastHorizon),
		EventBus:   event.NewEventBus(),
		Metrics:    metrics.NewCollector(),
	}
	g.Metrics.SetZoom(cam.Zoom())

	return g, nil
}

// Update advances the simulation by one tick
func (g *Game) Update(cmds Commands) {
	start := time.Now()

	g.applyZoom(cmds)
	g.trackThrust(cmds.Thrusting())

	g.Probe.ApplyControls(cmds.Controls)
	g.Bodies.Advance(g.Gravity)
	g.Probe.Accelerate(g.Gravity, g.Bodies.Sources())
	g.History.Append(g.Probe.Position)

	forecastStart := time.Now()
	g.Forecast = g.Forecaster.PredictFrom(g.Probe, g.Bodies.Bodies())
	g.Metrics.RecordForecast(time.Since(forecastStart))

	g.Ticks++
	g.Metrics.SetProbeSpeed(g.Probe.Speed())
	g.Metrics.RecordTick(time.Since(start))
}

func (g *Game) applyZoom(cmds Commands) {
	before := g.Camera.Zoom()
	if cmds.ZoomIn {
		g.Camera.ZoomIn()
	}
	if cmds.ZoomOut {
		g.Camera.ZoomOut()
	}

	if z := g.Camera.Zoom(); z != before {
		g.Metrics.SetZoom(z)
		g.EventBus.Publish(event.NewZoomEvent(g, z))
	}
}

func (g *Game) trackThrust(on bool) {
	if on == g.thrusting {
		return
	}
	g.thrusting = on
	g.EventBus.Publish(event.NewThrustEvent(g, on))
}

// Frame captures what to draw for the current tick. The view is centered
// on the probe.
func (g *Game) Frame() render.Frame {
	return render.Frame{
		View:     g.Camera.View(g.Probe.Position),
		Bodies:   g.Bodies.Bodies(),
		Probe:    g.Probe,
		History:  g.History.Points(),
		Forecast: g.Forecast,
	}
}
