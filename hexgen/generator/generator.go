// Package generator is the hex terrain viewer run by the game loop.
package generator

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/valerio/go-hexgen/hexgen/backend"
	"github.com/valerio/go-hexgen/hexgen/debug"
	"github.com/valerio/go-hexgen/hexgen/gameloop"
	"github.com/valerio/go-hexgen/hexgen/input"
	"github.com/valerio/go-hexgen/hexgen/input/action"
	"github.com/valerio/go-hexgen/hexgen/scene"
	"github.com/valerio/go-hexgen/hexgen/terrain"
	"github.com/valerio/go-hexgen/hexgen/timing"
	"github.com/valerio/go-hexgen/hexgen/video"
	"github.com/valerio/go-hexgen/hexgen/window/event"
)

const (
	// DefaultCameraSpeed is the impulse of one movement key in hexes per second.
	DefaultCameraSpeed = 6.0
	// waterSpeed is the water shimmer phase advance in radians per second.
	waterSpeed = 2.0
	// shading applied per unit of tile height
	heightShading = 6.0
)

var background = video.RGB(0x10, 0x14, 0x1C)

// Options configures a Generator.
type Options struct {
	Terrain     terrain.Options
	CameraSpeed float64
	ShowStatus  bool
	SnapshotDir string                   // Empty means the working directory
	LogLevel    *slog.LevelVar           // Adjusted by the log level actions, may be nil
	KeyMap      map[string]action.Action // nil uses input.DefaultKeyMap
	Now         func() time.Time         // Clock for the smoothed frame rate
}

// DefaultOptions returns the options used by the command line tool.
func DefaultOptions() Options {
	return Options{
		Terrain:     terrain.DefaultOptions(),
		CameraSpeed: DefaultCameraSpeed,
		ShowStatus:  true,
	}
}

// State is the simulation state owned by the loop.
type State struct {
	Map    *terrain.Map
	Camera *scene.Camera
	Seed   int64
	Paused bool
	// Phase drives the water shimmer, in radians
	Phase float64
	Ticks uint64
}

// NewState returns an empty state. The map is generated by Init.
func NewState(seed int64) *State {
	return &State{Seed: seed}
}

// Generator implements gameloop.Game for *State.
type Generator struct {
	opts       Options
	input      *input.Manager
	fps        *timing.FPSCounter
	showStatus bool
	snapshots  []string
}

func New(opts Options) *Generator {
	if opts.CameraSpeed <= 0 {
		opts.CameraSpeed = DefaultCameraSpeed
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Generator{
		opts:       opts,
		input:      input.NewManager(opts.KeyMap),
		showStatus: opts.ShowStatus,
	}
}

func (g *Generator) Init(l *gameloop.Loop[*State], p backend.Platform) error {
	s := l.State
	if err := g.regenerate(s, s.Seed); err != nil {
		return err
	}
	g.fps = timing.NewFPSCounter(time.Second, g.opts.Now())
	g.bindActions(l, p)
	g.applyOverlay(p)
	return nil
}

// Update advances the camera and the water animation by one fixed step.
func (g *Generator) Update(l *gameloop.Loop[*State]) {
	s := l.State
	if s.Paused {
		// keep previous == current so the paused view doesn't drift
		s.Camera.Step(0)
		return
	}

	dt := l.FixedTimeStep().Seconds()
	s.Camera.Step(dt)
	s.Phase = math.Mod(s.Phase+waterSpeed*dt, 2*math.Pi)
	s.Ticks++
}

// Render draws the map at the interpolated camera position and presents it.
func (g *Generator) Render(l *gameloop.Loop[*State], p backend.Platform, blending float64) {
	s := l.State
	fb := p.FrameBuffer()
	view := s.Camera.Interpolated(blending)
	Draw(fb, s.Map, view, s.Phase)

	avg := g.fps.Tick(g.opts.Now())
	if g.showStatus {
		if r, ok := p.(backend.StatusReporter); ok {
			r.SetStatus(fmt.Sprintf("seed %d  fps %.0f (avg %.1f)  ups %d%s",
				s.Seed, l.FrameRate(), avg, l.UpdatesPerSecond(), pausedSuffix(s.Paused)))
		}
	}

	if err := p.Present(); err != nil {
		slog.Error("Failed to present frame", "error", err)
	}
}

func pausedSuffix(paused bool) string {
	if paused {
		return "  paused"
	}
	return ""
}

// HandleEvent routes key events to actions and logs window changes.
func (g *Generator) HandleEvent(l *gameloop.Loop[*State], ev event.Event, p backend.Platform) {
	switch ev.Type {
	case event.KeyPressed, event.KeyReleased:
		g.input.HandleEvent(ev)
	case event.Resized:
		slog.Debug("Window resized", "width", ev.Width, "height", ev.Height)
	case event.FocusChanged:
		slog.Debug("Focus changed", "focused", ev.Focused)
	case event.CloseRequested:
		slog.Info("Close requested", "frames", l.Renders(), "updates", l.Updates())
	}
}

// Snapshots returns the paths of snapshots taken through the snapshot action.
func (g *Generator) Snapshots() []string {
	return g.snapshots
}

func (g *Generator) bindActions(l *gameloop.Loop[*State], p backend.Platform) {
	s := l.State
	speed := g.opts.CameraSpeed

	push := func(v scene.Vec2) func() {
		return func() { s.Camera.Push(v) }
	}
	g.input.On(action.CameraForward, event.KeyPressed, push(scene.Vec2{Y: -speed}))
	g.input.On(action.CameraBackward, event.KeyPressed, push(scene.Vec2{Y: speed}))
	g.input.On(action.CameraLeft, event.KeyPressed, push(scene.Vec2{X: -speed}))
	g.input.On(action.CameraRight, event.KeyPressed, push(scene.Vec2{X: speed}))
	g.input.On(action.CameraZoomIn, event.KeyPressed, func() { s.Camera.ZoomBy(scene.ZoomStep) })
	g.input.On(action.CameraZoomOut, event.KeyPressed, func() { s.Camera.ZoomBy(1 / scene.ZoomStep) })
	g.input.On(action.CameraStop, event.KeyPressed, s.Camera.Stop)

	g.input.On(action.TerrainRegenerate, event.KeyPressed, func() {
		if err := g.regenerate(s, s.Seed+1); err != nil {
			slog.Error("Failed to regenerate terrain", "error", err)
		}
	})
	g.input.On(action.PauseToggle, event.KeyPressed, func() {
		s.Paused = !s.Paused
		slog.Info("Simulation paused", "paused", s.Paused)
	})
	g.input.On(action.OverlayToggle, event.KeyPressed, func() {
		g.showStatus = !g.showStatus
		g.applyOverlay(p)
	})
	g.input.On(action.Snapshot, event.KeyPressed, func() {
		path, err := debug.SaveFramePNGToDir(p.FrameBuffer(), "hexgen_snapshot", g.opts.SnapshotDir)
		if err != nil {
			slog.Error("Failed to save snapshot", "error", err)
			return
		}
		g.snapshots = append(g.snapshots, path)
	})
	g.input.On(action.Quit, event.KeyPressed, l.RequestExit)

	g.input.On(action.DebugLogLevelIncrease, event.KeyPressed, func() { g.changeLogLevel(-4) })
	g.input.On(action.DebugLogLevelDecrease, event.KeyPressed, func() { g.changeLogLevel(4) })
}

func (g *Generator) regenerate(s *State, seed int64) error {
	opts := g.opts.Terrain
	opts.Seed = seed
	m, err := terrain.Generate(opts)
	if err != nil {
		return fmt.Errorf("generating terrain: %w", err)
	}

	s.Map = m
	s.Seed = seed
	center := MapCenter(m)
	if s.Camera == nil {
		s.Camera = scene.NewCamera(center)
	} else {
		s.Camera.MoveTo(center)
	}

	counts := m.Counts()
	slog.Info("Terrain generated",
		"seed", seed,
		"size", fmt.Sprintf("%dx%d", m.Width, m.Height),
		"water", counts[terrain.Water],
		"dirt", counts[terrain.Dirt],
		"grass", counts[terrain.Grass])
	return nil
}

func (g *Generator) applyOverlay(p backend.Platform) {
	if t, ok := p.(backend.OverlayToggler); ok {
		t.SetOverlayVisible(g.showStatus)
	}
	if r, ok := p.(backend.StatusReporter); ok && !g.showStatus {
		r.SetStatus("")
	}
}

// changeLogLevel moves the level by delta, clamped to [Debug, Error].
// A negative delta is more verbose.
func (g *Generator) changeLogLevel(delta slog.Level) {
	if g.opts.LogLevel == nil {
		return
	}
	old := g.opts.LogLevel.Level()
	next := min(max(old+delta, slog.LevelDebug), slog.LevelError)
	if next != old {
		g.opts.LogLevel.Set(next)
		slog.Info("Log filter changed", "from", old, "to", next)
	}
}

var _ gameloop.Game[*State] = (*Generator)(nil)
