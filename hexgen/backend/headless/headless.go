package headless

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/valerio/go-hexgen/hexgen/backend"
	"github.com/valerio/go-hexgen/hexgen/debug"
	"github.com/valerio/go-hexgen/hexgen/display"
	"github.com/valerio/go-hexgen/hexgen/timing"
	"github.com/valerio/go-hexgen/hexgen/video"
	"github.com/valerio/go-hexgen/hexgen/window/event"
)

// Backend implements the Backend interface for automated testing and batch processing.
// It has no window: events come from a Script and frames go to PNG snapshots.
type Backend struct {
	config         backend.BackendConfig
	surface        *backend.Surface
	limiter        timing.Limiter
	script         Script
	maxFrames      int
	realtime       bool
	frameCount     int
	closeSent      bool
	snapshotConfig SnapshotConfig
	snapshots      []string
}

// Options configures a headless run.
type Options struct {
	MaxFrames int            // Close is requested after this many redraws, 0 runs until the script closes
	Script    Script         // Events injected into specific frames
	Snapshots SnapshotConfig // PNG output, disabled when Interval is 0
	Realtime  bool           // Pace frames at TargetFPS and sleep in WaitEvent
}

// SnapshotConfig holds configuration for frame snapshots
type SnapshotConfig struct {
	Enabled   bool
	Interval  int    // Save snapshot every N presented frames
	Directory string // Directory to save snapshots
	BaseName  string // Prefix for snapshot filenames
}

func New(opts Options) *Backend {
	if opts.Snapshots.BaseName == "" {
		opts.Snapshots.BaseName = "hexgen"
	}
	return &Backend{
		maxFrames:      opts.MaxFrames,
		script:         opts.Script,
		realtime:       opts.Realtime,
		snapshotConfig: opts.Snapshots,
	}
}

func (h *Backend) Init(config backend.BackendConfig) error {
	h.config = config

	width, height := config.Width, config.Height
	if width <= 0 || height <= 0 {
		width, height = display.HeadlessWidth, display.HeadlessHeight
	}
	h.surface = backend.NewSurface(width, height, h.present)

	h.limiter = timing.NewNoOpLimiter()
	if h.realtime {
		h.limiter = timing.NewTickerLimiter(config.TargetFPS)
	}

	slog.Info("Running headless mode",
		"frames", h.maxFrames,
		"size", fmt.Sprintf("%dx%d", width, height),
		"script_frames", len(h.script),
		"realtime", h.realtime,
		"snapshot_interval", h.snapshotConfig.Interval,
		"snapshot_dir", h.snapshotConfig.Directory)

	return nil
}

// PollEvents returns the scripted events for the current frame followed by a
// redraw request. Once MaxFrames redraws were delivered it requests close.
func (h *Backend) PollEvents() ([]event.Event, error) {
	if h.surface == nil {
		return nil, fmt.Errorf("headless backend not initialized")
	}

	if h.closeSent {
		return []event.Event{event.Close(), event.Redraw()}, nil
	}

	h.limiter.WaitForNextFrame()

	var events []event.Event
	if h.maxFrames > 0 && h.frameCount >= h.maxFrames {
		h.closeSent = true
		h.finish()
		return []event.Event{event.Close(), event.Redraw()}, nil
	}

	for _, ev := range h.script[h.frameCount] {
		if ev.Type == event.Resized {
			h.surface.FrameBuffer().Resize(ev.Width, ev.Height)
		}
		if ev.Type == event.CloseRequested {
			h.closeSent = true
		}
		events = append(events, ev)
	}

	backend.ResetOnReveal(h.limiter, events)
	h.frameCount++

	// Log progress periodically
	if h.frameCount%100 == 0 {
		slog.Debug("Frame progress", "completed", h.frameCount, "total", h.maxFrames)
	}

	return append(events, event.Redraw()), nil
}

func (h *Backend) Platform() backend.Platform {
	return h.surface
}

// WaitEvent sleeps for timeout in realtime mode. Batch runs skip the wait so
// occluded frames don't slow them down.
func (h *Backend) WaitEvent(timeout time.Duration) {
	if h.realtime && timeout > 0 {
		time.Sleep(timeout)
	}
}

func (h *Backend) Cleanup() error {
	if t, ok := h.limiter.(*timing.TickerLimiter); ok {
		t.Stop()
	}
	return nil
}

// Frames returns how many redraws were requested so far.
func (h *Backend) Frames() int {
	return h.frameCount
}

// Presented returns how many frames the game presented.
func (h *Backend) Presented() int {
	if h.surface == nil {
		return 0
	}
	return h.surface.Presented()
}

// Snapshots returns the paths of the PNG files written so far.
func (h *Backend) Snapshots() []string {
	return h.snapshots
}

func (h *Backend) present(frame *video.FrameBuffer) error {
	presented := h.surface.Presented()
	if h.snapshotConfig.Enabled && h.snapshotConfig.Interval > 0 && presented%h.snapshotConfig.Interval == 0 {
		h.saveSnapshot(frame, presented)
	}
	return nil
}

func (h *Backend) finish() {
	presented := h.surface.Presented()

	// Save final snapshot if enabled and we haven't just saved one
	if h.snapshotConfig.Enabled && presented > 0 && presented%h.snapshotConfig.Interval != 0 {
		h.saveSnapshot(h.surface.FrameBuffer(), presented)
	}

	if h.snapshotConfig.Enabled {
		slog.Info("Headless execution completed", "frames", h.frameCount, "presented", presented, "png_snapshots_saved_to", h.snapshotConfig.Directory)
	} else {
		slog.Info("Headless execution completed", "frames", h.frameCount, "presented", presented)
	}
}

// CreateSnapshotConfig creates a snapshot configuration from CLI parameters.
// An empty directory gets a fresh temporary one.
func CreateSnapshotConfig(interval int, directory string) (SnapshotConfig, error) {
	config := SnapshotConfig{
		Enabled:  interval > 0,
		Interval: interval,
		BaseName: "hexgen",
	}

	if !config.Enabled {
		return config, nil
	}

	if directory == "" {
		tempDir, err := os.MkdirTemp("", "hexgen-snapshots-*")
		if err != nil {
			return config, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
		config.Directory = tempDir
	} else {
		if err := os.MkdirAll(directory, 0755); err != nil {
			return config, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
		config.Directory = directory
	}

	return config, nil
}

func (h *Backend) saveSnapshot(frame *video.FrameBuffer, presented int) {
	baseName := fmt.Sprintf("%s_frame_%d", h.snapshotConfig.BaseName, presented)

	path, err := debug.SaveFramePNGToDir(frame, baseName, h.snapshotConfig.Directory)
	if err != nil {
		slog.Error("Failed to save PNG snapshot", "frame", presented, "error", err)
		return
	}
	h.snapshots = append(h.snapshots, path)
}

var (
	_ backend.Backend     = (*Backend)(nil)
	_ backend.EventWaiter = (*Backend)(nil)
)
