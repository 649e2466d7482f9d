// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/opd-ai/go-orbiter/pkg/entity"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// GameConfig contains the configuration of a simulation run
type GameConfig struct {
	Window  WindowConfig  `json:"window"`
	Physics PhysicsConfig `json:"physics"`
	Probe   ProbeConfig   `json:"probe"`
	Camera  CameraConfig  `json:"camera"`
	Audio   AudioConfig   `json:"audio"`
	Bodies  []BodyConfig  `json:"bodies"`
}

// WindowConfig describes the display and tick pacing
type WindowConfig struct {
	Title    string `json:"title"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	TickRate int    `json:"tickRate"`
}

// PhysicsConfig contains physics-related configuration
type PhysicsConfig struct {
	Gravity         float64 `json:"gravity"`
	ForecastHorizon int     `json:"forecastHorizon"`
	HistoryLength   int     `json:"historyLength"`
}

// ProbeConfig contains the probe handling and launch parameters
type ProbeConfig struct {
	Mass         float64 `json:"mass"`
	ThrustForce  float64 `json:"thrustForce"`
	Damping      float64 `json:"damping"`
	RotationStep float64 `json:"rotationStep"`
	HomeBody     string  `json:"homeBody"`
	LaunchSpeed  float64 `json:"launchSpeed"`
}

// CameraConfig contains zoom settings. A zero limit leaves that side
// unbounded.
type CameraConfig struct {
	InitialZoom float64 `json:"initialZoom"`
	ZoomFactor  float64 `json:"zoomFactor"`
	MinZoom     float64 `json:"minZoom"`
	MaxZoom     float64 `json:"maxZoom"`
}

// AudioConfig controls the thruster sound
type AudioConfig struct {
	Enabled    bool    `json:"enabled"`
	ThrustTone float64 `json:"thrustTone"` // Hz
	Volume     float64 `json:"volume"`     // exponent, base 2; 0 = unchanged
}

// BodyConfig describes one planet
type BodyConfig struct {
	Name         string  `json:"name"`
	OrbitRadius  float64 `json:"orbitRadius"`
	AngularSpeed float64 `json:"angularSpeed"`
	Mass         float64 `json:"mass"`
	Color        string  `json:"color"`
	InitialAngle float64 `json:"initialAngle"`
}

// RGBA parses the hex color of the body.
func (b BodyConfig) RGBA() (color.RGBA, error) {
	c, err := colorful.Hex(b.Color)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("body %q: bad color %q: %w", b.Name, b.Color, err)
	}
	r, g, bl := c.RGB255()
	return color.RGBA{R: r, G: g, B: bl, A: 255}, nil
}

// NewBody builds the entity described by the config.
func (b BodyConfig) NewBody() (*entity.Body, error) {
	c, err := b.RGBA()
	if err != nil {
		return nil, err
	}
	return entity.NewBody(b.Name, b.OrbitRadius, b.AngularSpeed, b.Mass, c, b.InitialAngle), nil
}

// ProbeStats converts the probe section to entity stats.
func (p ProbeConfig) ProbeStats() entity.ProbeStats {
	return entity.ProbeStats{
		Mass:         p.Mass,
		ThrustForce:  p.ThrustForce,
		Damping:      p.Damping,
		RotationStep: p.RotationStep,
	}
}

// LoadConfig loads a configuration from a file
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *GameConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the stock nine-body system
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Window: WindowConfig{
			Title:    "Orbiter",
			Width:    1000,
			Height:   800,
			TickRate: 60,
		},
		Physics: PhysicsConfig{
			Gravity:         0.1,
			ForecastHorizon: 600,
			HistoryLength:   1000,
		},
		Probe: ProbeConfig{
			Mass:         600,
			ThrustForce:  100,
			Damping:      0.98,
			RotationStep: 3,
			HomeBody:     "T",
			LaunchSpeed:  8,
		},
		Camera: CameraConfig{
			InitialZoom: 0.5,
			ZoomFactor:  1.05,
		},
		Audio: AudioConfig{
			Enabled:    true,
			ThrustTone: 55,
			Volume:     -3,
		},
		Bodies: classicBodies(),
	}
}

// Validate checks the configuration for values the simulation cannot run
// with. Every error wraps ErrInvalidConfig.
func (c *GameConfig) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		fail("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Window.TickRate <= 0 {
		fail("tick rate %d must be positive", c.Window.TickRate)
	}

	if !finite(c.Physics.Gravity) {
		fail("gravity must be finite")
	}
	if c.Physics.ForecastHorizon < 0 {
		fail("forecast horizon %d must not be negative", c.Physics.ForecastHorizon)
	}
	if c.Physics.HistoryLength <= 0 {
		fail("history length %d must be positive", c.Physics.HistoryLength)
	}

	if !finite(c.Probe.Mass) || c.Probe.Mass <= 0 {
		fail("probe mass %v must be positive", c.Probe.Mass)
	}
	if !finite(c.Probe.ThrustForce) || !finite(c.Probe.RotationStep) || !finite(c.Probe.LaunchSpeed) {
		fail("probe parameters must be finite")
	}
	if !(c.Probe.Damping > 0 && c.Probe.Damping <= 1) {
		fail("probe damping %v must be in (0, 1]", c.Probe.Damping)
	}

	if !finite(c.Camera.InitialZoom) || c.Camera.InitialZoom <= 0 {
		fail("initial zoom %v must be positive", c.Camera.InitialZoom)
	}
	if !finite(c.Camera.ZoomFactor) || c.Camera.ZoomFactor <= 1 {
		fail("zoom factor %v must be greater than 1", c.Camera.ZoomFactor)
	}
	if c.Camera.MinZoom < 0 || c.Camera.MaxZoom < 0 {
		fail("zoom limits must not be negative")
	}
	if c.Camera.MinZoom > 0 && c.Camera.MaxZoom > 0 && c.Camera.MinZoom > c.Camera.MaxZoom {
		fail("min zoom %v exceeds max zoom %v", c.Camera.MinZoom, c.Camera.MaxZoom)
	}

	if len(c.Bodies) == 0 {
		fail("at least one body is required")
	}
	seen := make(map[string]bool, len(c.Bodies))
	home := false
	for _, b := range c.Bodies {
		if b.Name == "" {
			fail("body name must not be empty")
		}
		if seen[b.Name] {
			fail("duplicate body name %q", b.Name)
		}
		seen[b.Name] = true
		if b.Name == c.Probe.HomeBody {
			home = true
		}
		if !finite(b.OrbitRadius) || b.OrbitRadius < 0 {
			fail("body %q: orbit radius %v must not be negative", b.Name, b.OrbitRadius)
		}
		if !finite(b.Mass) || !finite(b.AngularSpeed) || !finite(b.InitialAngle) {
			fail("body %q: parameters must be finite", b.Name)
		}
		if _, err := b.RGBA(); err != nil {
			fail("%v", err)
		}
	}
	if !home {
		fail("home body %q is not defined", c.Probe.HomeBody)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
