// cmd/orbiter/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/opd-ai/go-orbiter/pkg/audio"
	"github.com/opd-ai/go-orbiter/pkg/config"
	"github.com/opd-ai/go-orbiter/pkg/engine"
	"github.com/opd-ai/go-orbiter/pkg/logging"
	"github.com/opd-ai/go-orbiter/pkg/render"
	engorender "github.com/opd-ai/go-orbiter/pkg/render/engo"
	"github.com/opd-ai/go-orbiter/pkg/render/terminal"
)

type options struct {
	configPath string
	renderer   string
	system     string
	noAudio    bool
	logFile    string
	dumpConfig string
	frames     int
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "orbiter",
		Short: "Fly a probe through a system of orbiting bodies",
		Long: `
Orbiter simulates a probe moving under the gravity of bodies on circular
orbits, with a live forecast of its path.

Controls:
  Z / C      thrust forward / reverse
  X          brake
  A / D      rotate left / right
  Shift+1/2  zoom in / out (terminal: the ! and @ or " glyphs)
  Esc        quit
`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "orbiter.json", "Path to configuration file")
	f.StringVar(&opts.renderer, "renderer", "engo", "Renderer type: 'engo', 'terminal' or 'null'")
	f.StringVar(&opts.system, "system", "", "Body system template (overrides the config bodies)")
	f.BoolVar(&opts.noAudio, "no-audio", false, "Disable the thruster sound")
	f.StringVar(&opts.logFile, "log-file", "", "Write logs to this file instead of stderr")
	f.StringVar(&opts.dumpConfig, "dump-config", "", "Write the default configuration to this path and exit")
	f.IntVar(&opts.frames, "frames", 0, "Stop after this many frames with the null renderer (0 = never)")

	return cmd
}

func run(ctx context.Context, opts *options, stderr io.Writer) error {
	if opts.dumpConfig != "" {
		return config.SaveConfig(config.DefaultConfig(), opts.dumpConfig)
	}

	logger, closeLog, err := openLogger(opts, stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithRunID(ctx, logging.GenerateRunID())

	cfg, err := loadConfig(ctx, opts, logger)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err)
		return err
	}

	game, err := engine.NewGame(cfg)
	if err != nil {
		logger.Error(ctx, "Failed to create simulation", err)
		return err
	}

	if cfg.Audio.Enabled && !opts.noAudio {
		thruster := audio.NewThruster(cfg.Audio.ThrustTone, cfg.Audio.Volume)
		if err := thruster.Init(); err != nil {
			// Non-fatal, the simulation runs without sound
			logger.Warn(ctx, "Audio initialization failed", "error", err)
		}
		thruster.Attach(game.EventBus)
		defer thruster.Close()
	}

	logger.Info(ctx, "Starting orbiter", "renderer", opts.renderer, "bodies", len(cfg.Bodies))
	defer logSummary(ctx, game, logger)

	switch opts.renderer {
	case "engo":
		return runEngo(ctx, cfg, game, logger)
	case "terminal":
		backend, err := terminal.New(float64(cfg.Window.Width), float64(cfg.Window.Height))
		if err != nil {
			return logging.WrapError(err, "failed to open terminal")
		}
		return engine.NewLoop(game, backend, logger).Run(ctx)
	case "null":
		backend := render.NewNullBackend(logger, opts.frames)
		return engine.NewLoop(game, backend, logger).Run(ctx)
	default:
		return fmt.Errorf("unknown renderer %q", opts.renderer)
	}
}

// runEngo hands the main loop to engo, which calls back once per frame.
func runEngo(ctx context.Context, cfg *config.GameConfig, game *engine.Game, logger *logging.Logger) error {
	backend := engorender.NewBackend()
	loop := engine.NewLoop(game, backend, logger)

	loop.Start(ctx)
	defer loop.Stop(ctx)
	defer backend.Close()

	scene := engorender.NewGameScene(backend, func() bool {
		return ctx.Err() == nil && loop.Frame(ctx)
	})
	err := engorender.Run(engorender.Options{
		Title:    cfg.Window.Title,
		Width:    cfg.Window.Width,
		Height:   cfg.Window.Height,
		FPSLimit: cfg.Window.TickRate,
	}, scene)
	return logging.WrapError(err, "engo renderer failed")
}

func openLogger(opts *options, stderr io.Writer) (*logging.Logger, func(), error) {
	if opts.logFile == "" {
		// the terminal renderer owns the screen
		if opts.renderer == "terminal" {
			return logging.Discard(), func() {}, nil
		}
		return logging.NewLoggerWithWriter(stderr), func() {}, nil
	}

	f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return logging.NewLoggerWithWriter(f), func() { f.Close() }, nil
}

func loadConfig(ctx context.Context, opts *options, logger *logging.Logger) (*config.GameConfig, error) {
	var cfg *config.GameConfig

	if _, err := os.Stat(opts.configPath); errors.Is(err, os.ErrNotExist) {
		logger.Info(ctx, "Configuration file not found, using default configuration", "path", opts.configPath)
		cfg = config.DefaultConfig()
	} else {
		cfg, err = config.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
		logger.Info(ctx, "Loaded configuration", "path", opts.configPath)
	}

	if opts.system != "" {
		if err := config.ApplySystemTemplate(cfg, opts.system); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func logSummary(ctx context.Context, game *engine.Game, logger *logging.Logger) {
	s, err := game.Metrics.Summarize()
	if err != nil {
		logger.Warn(ctx, "Failed to gather metrics", "error", err)
		return
	}
	logger.Info(ctx, "Run summary",
		"ticks", s.Ticks,
		"mean_tick", s.MeanTick.String(),
		"mean_forecast", s.MeanForecast.String(),
		"skipped_points", s.SkippedPoints,
		"final_zoom", s.Zoom,
		"final_speed", s.ProbeSpeed,
	)
}
