//go:build sdl2

package sdl2

import (
	"fmt"
	"log/slog"
	"time"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/valerio/go-hexgen/hexgen/backend"
	"github.com/valerio/go-hexgen/hexgen/display"
	"github.com/valerio/go-hexgen/hexgen/timing"
	"github.com/valerio/go-hexgen/hexgen/video"
	"github.com/valerio/go-hexgen/hexgen/window/event"
)

const pixelScale = display.DefaultPixelScale

// Backend implements the Backend interface using SDL2 bindings
// Note: building this requires SDL2 development libraries installed.
// Default builds skip this and use a stubbed backend, see build tags (sdl2)
type Backend struct {
	*backend.Surface

	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	config   backend.BackendConfig
	limiter  timing.Limiter
	pending  []sdl.Event
}

// New creates a new SDL2 backend
func New() *Backend {
	return &Backend{}
}

// Init initializes the SDL2 backend
func (s *Backend) Init(config backend.BackendConfig) error {
	s.config = config

	width, height := config.Width, config.Height
	if width <= 0 || height <= 0 {
		width, height = display.DefaultWindowWidth, display.DefaultWindowHeight
	}
	title := config.Title
	if title == "" {
		title = display.DefaultWindowTitle
	}
	s.config.Title = title

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("failed to initialize SDL2: %v", err)
	}

	flags := uint32(sdl.WINDOW_SHOWN | sdl.WINDOW_RESIZABLE)
	if config.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	window, err := sdl.CreateWindow(
		title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(width),
		int32(height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("failed to create window: %v", err)
	}
	s.window = window

	rendererFlags := uint32(sdl.RENDERER_ACCELERATED)
	if config.VSync {
		rendererFlags |= sdl.RENDERER_PRESENTVSYNC
	}
	renderer, err := sdl.CreateRenderer(window, -1, rendererFlags)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create renderer: %v", err)
	}
	s.renderer = renderer

	w, h := window.GetSize()
	s.Surface = backend.NewSurface(int(w)/pixelScale, int(h)/pixelScale, s.renderFrame)
	if err := s.recreateTexture(); err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return err
	}

	s.limiter = timing.NewLimiter(config.TargetFPS)

	slog.Info("SDL2 backend initialized", "window", fmt.Sprintf("%dx%d", w, h), "vsync", config.VSync)
	return nil
}

// PollEvents paces the frame and translates the SDL events queued since the
// previous call.
func (s *Backend) PollEvents() ([]event.Event, error) {
	if s.window == nil {
		return nil, fmt.Errorf("SDL2 backend not initialized")
	}

	s.limiter.WaitForNextFrame()

	var events []event.Event
	for _, ev := range s.pending {
		events = append(events, s.translate(ev)...)
	}
	s.pending = nil

	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		events = append(events, s.translate(ev)...)
	}
	backend.ResetOnReveal(s.limiter, events)

	return append(events, event.Redraw()), nil
}

func (s *Backend) Platform() backend.Platform {
	return s
}

// WaitEvent blocks in SDL until an event arrives or timeout elapses.
func (s *Backend) WaitEvent(timeout time.Duration) {
	if timeout <= 0 {
		return
	}
	if ev := sdl.WaitEventTimeout(int(timeout.Milliseconds())); ev != nil {
		s.pending = append(s.pending, ev)
	}
}

// SetStatus shows the status in the window title.
func (s *Backend) SetStatus(status string) {
	if s.window == nil {
		return
	}
	if status == "" {
		s.window.SetTitle(s.config.Title)
		return
	}
	s.window.SetTitle(s.config.Title + " | " + status)
}

// Cleanup cleans up SDL2 resources
func (s *Backend) Cleanup() error {
	slog.Info("Cleaning up SDL2 backend")

	if s.texture != nil {
		s.texture.Destroy()
	}
	if s.renderer != nil {
		s.renderer.Destroy()
	}
	if s.window != nil {
		s.window.Destroy()
	}
	sdl.Quit()
	s.window = nil

	return nil
}

func (s *Backend) translate(ev sdl.Event) []event.Event {
	switch e := ev.(type) {
	case *sdl.QuitEvent:
		return []event.Event{event.Close()}

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_CLOSE:
			return []event.Event{event.Close()}
		case sdl.WINDOWEVENT_HIDDEN, sdl.WINDOWEVENT_MINIMIZED:
			return []event.Event{event.Occlusion(true)}
		case sdl.WINDOWEVENT_SHOWN, sdl.WINDOWEVENT_RESTORED, sdl.WINDOWEVENT_EXPOSED:
			return []event.Event{event.Occlusion(false)}
		case sdl.WINDOWEVENT_FOCUS_GAINED, sdl.WINDOWEVENT_FOCUS_LOST:
			focused := e.Event == sdl.WINDOWEVENT_FOCUS_GAINED
			events := []event.Event{event.Focus(focused)}
			if s.config.OccludeOnBlur {
				events = append(events, event.Occlusion(!focused))
			}
			return events
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			w, h := int(e.Data1)/pixelScale, int(e.Data2)/pixelScale
			s.FrameBuffer().Resize(w, h)
			if err := s.recreateTexture(); err != nil {
				slog.Error("Failed to resize texture", "error", err)
			}
			return []event.Event{event.Resize(w, h)}
		}

	case *sdl.KeyboardEvent:
		// Ignore key repeat events
		if e.Repeat != 0 {
			return nil
		}
		name, ok := keyName(e.Keysym.Sym)
		if !ok {
			return nil
		}
		if e.Type == sdl.KEYDOWN {
			return []event.Event{event.KeyPress(name)}
		}
		return []event.Event{event.KeyRelease(name)}
	}
	return nil
}

func (s *Backend) recreateTexture() error {
	if s.texture != nil {
		s.texture.Destroy()
		s.texture = nil
	}
	w, h := s.Size()
	if w == 0 || h == 0 {
		return nil
	}
	texture, err := s.renderer.CreateTexture(
		sdl.PIXELFORMAT_RGBA8888,
		sdl.TEXTUREACCESS_STREAMING,
		int32(w),
		int32(h),
	)
	if err != nil {
		return fmt.Errorf("failed to create texture: %v", err)
	}
	s.texture = texture
	return nil
}

// renderFrame is the present step. Packed 0xRRGGBBAA words are already the
// RGBA8888 layout, so the buffer is uploaded as is.
func (s *Backend) renderFrame(frame *video.FrameBuffer) error {
	if s.texture == nil {
		return nil
	}
	pixels := frame.ToSlice()
	if err := s.texture.Update(nil, unsafe.Pointer(&pixels[0]), frame.Width()*display.RGBABytesPerPixel); err != nil {
		return fmt.Errorf("failed to update texture: %v", err)
	}

	s.renderer.SetDrawColor(0, 0, 0, display.FullAlpha)
	s.renderer.Clear()
	s.renderer.Copy(s.texture, nil, nil)
	s.renderer.Present()
	return nil
}

var (
	_ backend.Backend        = (*Backend)(nil)
	_ backend.EventWaiter    = (*Backend)(nil)
	_ backend.StatusReporter = (*Backend)(nil)
)
