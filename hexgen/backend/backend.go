package backend

import (
	"time"

	"github.com/valerio/go-hexgen/hexgen/timing"
	"github.com/valerio/go-hexgen/hexgen/video"
	"github.com/valerio/go-hexgen/hexgen/window/event"
)

// Backend represents a window platform (event source + presentation surface).
// Backends are responsible for:
// - Translating platform-specific events (keys, resize, visibility, close) to window events
// - Pacing frames: every PollEvents batch ends with one event.RedrawRequested
// - Presenting the frame buffer the application renders into
type Backend interface {
	// Init configures the backend with the provided configuration.
	// This is a required step before calling PollEvents.
	Init(config BackendConfig) error

	// PollEvents returns the events that arrived since the previous call.
	// It may block until the next frame is due.
	PollEvents() ([]event.Event, error)

	// Platform returns the context handed to application callbacks.
	Platform() Platform

	// Cleanup resources when shutting down
	Cleanup() error
}

// Platform is what the application sees of the backend while handling
// events and rendering.
type Platform interface {
	// FrameBuffer is the surface to draw into. Backends resize it before
	// delivering an event.Resized.
	FrameBuffer() *video.FrameBuffer

	// Size returns the drawable size in pixels.
	Size() (width, height int)

	// Present shows the current frame buffer contents.
	Present() error
}

// EventWaiter is implemented by backends that can block until the next event
// arrives. The loop uses it for the occluded-window sleep so a close request
// is observed without waiting out the whole step.
type EventWaiter interface {
	WaitEvent(timeout time.Duration)
}

// BackendConfig holds configuration for backends
type BackendConfig struct {
	Title         string
	Width         int  // Initial drawable width in pixels, backends may ignore it
	Height        int  // Initial drawable height in pixels, backends may ignore it
	TargetFPS     int  // Frame pacing, 0 disables the limiter
	VSync         bool // Backends may ignore unsupported features
	Fullscreen    bool
	ShowOverlay   bool // Draw the log overlay where supported
	OccludeOnBlur bool // Treat focus loss as occlusion on backends that cannot detect visibility
}

// StatusReporter is implemented by platforms that can show a one-line status
// (frame rate, seed) next to the picture. An empty string clears it.
type StatusReporter interface {
	SetStatus(status string)
}

// OverlayToggler is implemented by platforms with a log overlay.
type OverlayToggler interface {
	SetOverlayVisible(visible bool)
}

// ResetOnReveal resets the frame limiter when events show the window again,
// so pacing doesn't try to make up for the frames skipped while hidden.
func ResetOnReveal(limiter timing.Limiter, events []event.Event) {
	for _, ev := range events {
		if ev.Type == event.Occluded && !ev.Occluded {
			limiter.Reset()
			return
		}
	}
}
