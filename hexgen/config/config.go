// Package config loads the hexgen settings from YAML and turns them into the
// configurations of the loop, the backend and the generator.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/valerio/go-hexgen/hexgen/backend"
	"github.com/valerio/go-hexgen/hexgen/backend/headless"
	"github.com/valerio/go-hexgen/hexgen/display"
	"github.com/valerio/go-hexgen/hexgen/gameloop"
	"github.com/valerio/go-hexgen/hexgen/generator"
	"github.com/valerio/go-hexgen/hexgen/terrain"
	"github.com/valerio/go-hexgen/hexgen/timing"
)

// Backend names.
const (
	BackendTerminal = "terminal"
	BackendHeadless = "headless"
	BackendSDL2     = "sdl2"
)

var ErrUnknownBackend = errors.New("unknown backend")

// Config is the file format. Zero values in a loaded file keep the defaults.
type Config struct {
	Backend  string         `yaml:"backend"`
	LogLevel string         `yaml:"log_level"`
	Loop     LoopConfig     `yaml:"loop"`
	Window   WindowConfig   `yaml:"window"`
	Terrain  TerrainConfig  `yaml:"terrain"`
	Camera   CameraConfig   `yaml:"camera"`
	Headless HeadlessConfig `yaml:"headless"`
}

type LoopConfig struct {
	UpdatesPerSecond int           `yaml:"updates_per_second"`
	MaxFrameTime     time.Duration `yaml:"max_frame_time"`
}

type WindowConfig struct {
	Title         string `yaml:"title"`
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	TargetFPS     int    `yaml:"target_fps"`
	VSync         bool   `yaml:"vsync"`
	Fullscreen    bool   `yaml:"fullscreen"`
	ShowOverlay   bool   `yaml:"show_overlay"`
	OccludeOnBlur bool   `yaml:"occlude_on_blur"`
}

type TerrainConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Seed   int64   `yaml:"seed"`
	Bounds float64 `yaml:"bounds"`
}

type CameraConfig struct {
	Speed float64 `yaml:"speed"`
}

type HeadlessConfig struct {
	Frames           int             `yaml:"frames"`
	Realtime         bool            `yaml:"realtime"`
	SnapshotInterval int             `yaml:"snapshot_interval"`
	SnapshotDir      string          `yaml:"snapshot_dir"`
	Script           []headless.Step `yaml:"script"`
}

// Default returns the built in settings: 240 updates per second and a 100ms
// frame time cap.
func Default() Config {
	t := terrain.DefaultOptions()
	return Config{
		Backend:  BackendTerminal,
		LogLevel: "info",
		Loop: LoopConfig{
			UpdatesPerSecond: 240,
			MaxFrameTime:     100 * time.Millisecond,
		},
		Window: WindowConfig{
			Title:       display.DefaultWindowTitle,
			Width:       display.DefaultWindowWidth,
			Height:      display.DefaultWindowHeight,
			TargetFPS:   timing.DefaultTargetFPS,
			VSync:       true,
			ShowOverlay: true,
		},
		Terrain: TerrainConfig{
			Width:  t.Width,
			Height: t.Height,
			Bounds: t.Bounds,
		},
		Camera: CameraConfig{Speed: generator.DefaultCameraSpeed},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("yaml unmarshal %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise fail later at startup.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendTerminal, BackendHeadless, BackendSDL2:
	default:
		return fmt.Errorf("%w %q", ErrUnknownBackend, c.Backend)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Loop.UpdatesPerSecond <= 0 || c.Loop.UpdatesPerSecond > gameloop.MaxUpdatesPerSecond {
		return fmt.Errorf("%w: got %d", gameloop.ErrInvalidTickRate, c.Loop.UpdatesPerSecond)
	}
	if c.Loop.MaxFrameTime < 0 {
		return fmt.Errorf("%w: got %s", gameloop.ErrInvalidMaxFrameTime, c.Loop.MaxFrameTime)
	}
	if err := c.TerrainOptions().Validate(); err != nil {
		return err
	}
	if c.Headless.Frames < 0 {
		return fmt.Errorf("headless frames must not be negative, got %d", c.Headless.Frames)
	}
	if c.Headless.SnapshotInterval < 0 {
		return fmt.Errorf("snapshot interval must not be negative, got %d", c.Headless.SnapshotInterval)
	}
	if _, err := headless.NewScript(c.Headless.Script); err != nil {
		return err
	}
	return nil
}

// ParseLevel converts debug, info, warn or error to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

func (c Config) LoopConfig() gameloop.Config {
	return gameloop.Config{
		UpdatesPerSecond: c.Loop.UpdatesPerSecond,
		MaxFrameTime:     c.Loop.MaxFrameTime,
	}
}

func (c Config) BackendConfig() backend.BackendConfig {
	return backend.BackendConfig{
		Title:         c.Window.Title,
		Width:         c.Window.Width,
		Height:        c.Window.Height,
		TargetFPS:     c.Window.TargetFPS,
		VSync:         c.Window.VSync,
		Fullscreen:    c.Window.Fullscreen,
		ShowOverlay:   c.Window.ShowOverlay,
		OccludeOnBlur: c.Window.OccludeOnBlur,
	}
}

func (c Config) TerrainOptions() terrain.Options {
	return terrain.Options{
		Width:  c.Terrain.Width,
		Height: c.Terrain.Height,
		Seed:   c.Terrain.Seed,
		Bounds: c.Terrain.Bounds,
	}
}

// GeneratorOptions builds the generator options. level may be nil.
func (c Config) GeneratorOptions(level *slog.LevelVar) generator.Options {
	opts := generator.DefaultOptions()
	opts.Terrain = c.TerrainOptions()
	opts.CameraSpeed = c.Camera.Speed
	opts.LogLevel = level
	opts.ShowStatus = c.Window.ShowOverlay
	return opts
}

// HeadlessOptions builds the headless backend options, creating the
// snapshot directory when snapshots are enabled.
func (c Config) HeadlessOptions() (headless.Options, error) {
	script, err := headless.NewScript(c.Headless.Script)
	if err != nil {
		return headless.Options{}, err
	}
	snapshots, err := headless.CreateSnapshotConfig(c.Headless.SnapshotInterval, c.Headless.SnapshotDir)
	if err != nil {
		return headless.Options{}, err
	}
	return headless.Options{
		MaxFrames: c.Headless.Frames,
		Script:    script,
		Snapshots: snapshots,
		Realtime:  c.Headless.Realtime,
	}, nil
}
