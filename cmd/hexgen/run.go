package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"

	"github.com/valerio/go-hexgen/hexgen/backend"
	"github.com/valerio/go-hexgen/hexgen/backend/headless"
	"github.com/valerio/go-hexgen/hexgen/backend/sdl2"
	"github.com/valerio/go-hexgen/hexgen/backend/terminal"
	"github.com/valerio/go-hexgen/hexgen/config"
	"github.com/valerio/go-hexgen/hexgen/gameloop"
	"github.com/valerio/go-hexgen/hexgen/generator"
)

func runGenerator(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	level := new(slog.LevelVar)
	lvl, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	// Headless runs are for inspection, log everything unless asked otherwise
	if cfg.Backend == config.BackendHeadless && !c.IsSet("log-level") {
		lvl = slog.LevelDebug
	}
	level.Set(lvl)

	if cfg.Backend != config.BackendTerminal {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	}

	b, err := newBackend(cfg, level)
	if err != nil {
		return err
	}
	if err := b.Init(cfg.BackendConfig()); err != nil {
		return err
	}
	defer func() {
		if err := b.Cleanup(); err != nil {
			slog.Error("Backend cleanup failed", "error", err)
		}
	}()

	loop, err := gameloop.New(cfg.LoopConfig(), generator.NewState(cfg.Terrain.Seed))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return gameloop.Run(ctx, loop, b, generator.New(cfg.GeneratorOptions(level)))
}

func newBackend(cfg config.Config, level *slog.LevelVar) (backend.Backend, error) {
	switch cfg.Backend {
	case config.BackendTerminal:
		return terminal.New(terminal.Options{LogLevel: level}), nil
	case config.BackendHeadless:
		opts, err := cfg.HeadlessOptions()
		if err != nil {
			return nil, err
		}
		if opts.MaxFrames == 0 && len(opts.Script) == 0 {
			return nil, fmt.Errorf("headless mode requires --frames or a script that closes the window")
		}
		return headless.New(opts), nil
	case config.BackendSDL2:
		return sdl2.New(), nil
	}
	return nil, fmt.Errorf("%w %q", config.ErrUnknownBackend, cfg.Backend)
}

// loadConfig reads the config file, if any, and applies the flags on top.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if c.IsSet("backend") {
		cfg.Backend = c.String("backend")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("ups") {
		cfg.Loop.UpdatesPerSecond = c.Int("ups")
	}
	if c.IsSet("max-frame-time") {
		cfg.Loop.MaxFrameTime = c.Duration("max-frame-time")
	}
	if c.IsSet("fps") {
		cfg.Window.TargetFPS = c.Int("fps")
	}
	if c.IsSet("frames") {
		cfg.Headless.Frames = c.Int("frames")
	}
	if c.IsSet("seed") {
		cfg.Terrain.Seed = c.Int64("seed")
	}
	if c.IsSet("size") {
		var w, h int
		if _, err := fmt.Sscanf(c.String("size"), "%dx%d", &w, &h); err != nil {
			return cfg, fmt.Errorf("invalid --size %q, expected WIDTHxHEIGHT: %w", c.String("size"), err)
		}
		cfg.Terrain.Width, cfg.Terrain.Height = w, h
	}
	if c.IsSet("snapshot-interval") {
		cfg.Headless.SnapshotInterval = c.Int("snapshot-interval")
	}
	if c.IsSet("snapshot-dir") {
		cfg.Headless.SnapshotDir = c.String("snapshot-dir")
	}
	if c.IsSet("occlude-on-blur") {
		cfg.Window.OccludeOnBlur = true
	}
	if c.IsSet("realtime") {
		cfg.Headless.Realtime = true
	}

	return cfg, cfg.Validate()
}
