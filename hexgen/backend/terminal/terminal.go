package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/valerio/go-hexgen/hexgen/backend"
	"github.com/valerio/go-hexgen/hexgen/debug"
	"github.com/valerio/go-hexgen/hexgen/display"
	"github.com/valerio/go-hexgen/hexgen/timing"
	"github.com/valerio/go-hexgen/hexgen/video"
	"github.com/valerio/go-hexgen/hexgen/window/event"
)

const (
	statusLines   = 1
	logBufferSize = 100
)

// Options configures the terminal backend.
type Options struct {
	// Screen overrides the tcell screen, mainly for tests with a SimulationScreen.
	Screen tcell.Screen
	// LogLevel filters the records captured for the overlay. It is shared with
	// the rest of the program so the level can change while running.
	LogLevel *slog.LevelVar
	// KeepLogger leaves slog.Default untouched instead of routing it to the overlay.
	KeepLogger bool
}

// Backend implements the Backend interface using tcell. The frame buffer is
// drawn with half blocks, two pixels per cell, below a status line and above
// an optional log overlay.
type Backend struct {
	*backend.Surface

	screen      tcell.Screen
	config      backend.BackendConfig
	limiter     timing.Limiter
	logBuffer   *debug.LogBuffer
	logLevel    *slog.LevelVar
	keepLogger  bool
	prevLogger  *slog.Logger
	showOverlay bool
	status      string

	events  chan tcell.Event
	pending []tcell.Event
	quit    chan struct{}
	signals chan os.Signal
	once    sync.Once
	stopped sync.WaitGroup

	// size reported to the application, a Resized event is emitted when the
	// layout yields a different one
	width, height int
}

// New creates a new terminal backend
func New(opts Options) *Backend {
	level := opts.LogLevel
	if level == nil {
		level = new(slog.LevelVar)
	}
	return &Backend{
		screen:     opts.Screen,
		logLevel:   level,
		keepLogger: opts.KeepLogger,
		logBuffer:  debug.NewLogBuffer(logBufferSize),
		quit:       make(chan struct{}),
		events:     make(chan tcell.Event, 64),
	}
}

// Init initializes the terminal backend
func (t *Backend) Init(config backend.BackendConfig) error {
	t.config = config
	t.showOverlay = config.ShowOverlay

	if t.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to initialize terminal: %w", err)
		}
		t.screen = screen
	}

	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	t.screen.EnableFocus()
	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	// Logs would corrupt the screen, capture them for the overlay instead
	if !t.keepLogger {
		t.prevLogger = slog.Default()
		slog.SetDefault(slog.New(debug.NewBufferHandler(t.logBuffer, t.logLevel)))
	}

	t.width, t.height = t.pixelSize()
	t.Surface = backend.NewSurface(t.width, t.height, t.draw)
	t.limiter = timing.NewLimiter(config.TargetFPS)

	t.stopped.Add(1)
	go t.pumpEvents()

	// Set up signal handling for graceful shutdown
	t.signals = make(chan os.Signal, 1)
	signal.Notify(t.signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)
	go t.handleSignals()

	slog.Info("Terminal backend initialized", "size", fmt.Sprintf("%dx%d", t.width, t.height), "overlay", t.showOverlay)
	return nil
}

// PollEvents waits for the next frame slot and translates the terminal
// events received since the previous call.
func (t *Backend) PollEvents() ([]event.Event, error) {
	if t.screen == nil {
		return nil, fmt.Errorf("terminal backend not initialized")
	}

	t.limiter.WaitForNextFrame()

	var events []event.Event
	select {
	case <-t.quit:
		return []event.Event{event.Close(), event.Redraw()}, nil
	default:
	}

	raw := t.pending
	t.pending = nil
	for drained := false; !drained; {
		select {
		case ev := <-t.events:
			raw = append(raw, ev)
		default:
			drained = true
		}
	}

	for _, ev := range raw {
		events = append(events, t.translate(ev)...)
	}
	backend.ResetOnReveal(t.limiter, events)

	if w, h := t.pixelSize(); w != t.width || h != t.height {
		t.width, t.height = w, h
		t.FrameBuffer().Resize(w, h)
		events = append(events, event.Resize(w, h))
	}

	return append(events, event.Redraw()), nil
}

func (t *Backend) Platform() backend.Platform {
	return t
}

// WaitEvent blocks until a terminal event or a signal arrives, or timeout
// elapses. A received event is kept for the next PollEvents.
func (t *Backend) WaitEvent(timeout time.Duration) {
	if timeout <= 0 {
		return
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ev := <-t.events:
		t.pending = append(t.pending, ev)
	case <-t.quit:
	case <-timer.C:
	}
}

// SetStatus sets the text shown on the top line.
func (t *Backend) SetStatus(status string) {
	t.status = status
}

// SetOverlayVisible shows or hides the log overlay. The drawable area changes,
// so the next poll reports a resize.
func (t *Backend) SetOverlayVisible(visible bool) {
	if visible == t.showOverlay {
		return
	}
	t.showOverlay = visible
	t.screen.Clear()
}

// LogBuffer exposes the captured log records.
func (t *Backend) LogBuffer() *debug.LogBuffer {
	return t.logBuffer
}

// Cleanup cleans up terminal resources
func (t *Backend) Cleanup() error {
	if t.screen == nil {
		return nil
	}
	slog.Info("Cleaning up terminal backend")

	if t.signals != nil {
		signal.Stop(t.signals)
	}
	t.requestQuit()
	t.screen.Fini()
	t.stopped.Wait()

	if t.prevLogger != nil {
		slog.SetDefault(t.prevLogger)
	}
	t.screen = nil
	return nil
}

func (t *Backend) requestQuit() {
	t.once.Do(func() { close(t.quit) })
}

// pumpEvents forwards tcell events until the screen is finalized.
func (t *Backend) pumpEvents() {
	defer t.stopped.Done()
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.quit:
			return
		}
	}
}

func (t *Backend) handleSignals() {
	select {
	case sig, ok := <-t.signals:
		if ok {
			slog.Info("Received signal, closing", "signal", sig)
			t.requestQuit()
		}
	case <-t.quit:
	}
}

func (t *Backend) translate(ev tcell.Event) []event.Event {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return []event.Event{event.Close()}
		}
		name, ok := keyName(ev)
		if !ok {
			return nil
		}
		// Terminals only report presses, so every key is a tap
		return []event.Event{event.KeyPress(name), event.KeyRelease(name)}
	case *tcell.EventResize:
		t.screen.Sync()
	case *tcell.EventFocus:
		events := []event.Event{event.Focus(ev.Focused)}
		if t.config.OccludeOnBlur {
			events = append(events, event.Occlusion(!ev.Focused))
		}
		return events
	}
	return nil
}

// pixelSize returns the frame buffer size for the current terminal layout.
func (t *Backend) pixelSize() (int, int) {
	cols, rows := t.screen.Size()
	rows -= statusLines
	if t.showOverlay {
		rows -= display.TerminalOverlayLines
	}
	return max(cols, 0), max(rows, 0) * display.TerminalPixelsPerCell
}

// draw is the present step: frame buffer, status line, overlay, then Show.
func (t *Backend) draw(frame *video.FrameBuffer) error {
	if t.screen == nil {
		return fmt.Errorf("terminal backend not initialized")
	}

	cols, _ := t.screen.Size()
	t.drawText(0, 0, cols, t.status, tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))
	t.drawFrame(frame, statusLines)
	if t.showOverlay {
		t.drawLogs(statusLines + frame.Height()/display.TerminalPixelsPerCell)
	}

	t.screen.Show()
	return nil
}

// drawFrame renders two pixel rows per cell using the upper half block, top
// pixel in the foreground and bottom pixel in the background.
func (t *Backend) drawFrame(frame *video.FrameBuffer, top int) {
	for y := 0; y < frame.Height(); y += display.TerminalPixelsPerCell {
		for x := 0; x < frame.Width(); x++ {
			upper := frame.GetPixel(x, y)
			lower := frame.GetPixel(x, y+1)
			style := tcell.StyleDefault.Foreground(cellColor(upper)).Background(cellColor(lower))
			t.screen.SetContent(x, top+y/display.TerminalPixelsPerCell, '▀', nil, style)
		}
	}
}

func cellColor(c video.Color) tcell.Color {
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func (t *Backend) drawLogs(startY int) {
	cols, _ := t.screen.Size()

	debugStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	infoStyle := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	warnStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	errStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)

	logs := t.logBuffer.Recent(display.TerminalOverlayLines)
	for i := 0; i < display.TerminalOverlayLines; i++ {
		text, style := "", infoStyle
		// Oldest first
		if idx := len(logs) - 1 - i; idx >= 0 {
			entry := logs[idx]
			text = entry.String()
			switch {
			case entry.Level < slog.LevelInfo:
				style = debugStyle
			case entry.Level >= slog.LevelError:
				style = errStyle
			case entry.Level >= slog.LevelWarn:
				style = warnStyle
			}
		}
		t.drawText(0, startY+i, cols, text, style)
	}
}

// drawText writes text on row y, truncating with "..." and clearing the rest of the row.
func (t *Backend) drawText(x, y, width int, text string, style tcell.Style) {
	runes := []rune(text)
	if len(runes) > width {
		if width > 3 {
			runes = append(runes[:width-3], '.', '.', '.')
		} else {
			runes = runes[:max(width, 0)]
		}
	}
	for i := 0; i < width; i++ {
		ch := ' '
		if i < len(runes) {
			ch = runes[i]
		}
		t.screen.SetContent(x+i, y, ch, nil, style)
	}
}

var (
	_ backend.Backend        = (*Backend)(nil)
	_ backend.EventWaiter    = (*Backend)(nil)
	_ backend.StatusReporter = (*Backend)(nil)
	_ backend.OverlayToggler = (*Backend)(nil)
)
