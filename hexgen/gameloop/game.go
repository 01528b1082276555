package gameloop

import (
	"github.com/valerio/go-hexgen/hexgen/backend"
	"github.com/valerio/go-hexgen/hexgen/window/event"
)

// Game is the application side of the loop. The loop owns scheduling; the
// game owns behavior.
type Game[S any] interface {
	// Init is called once before the first event is dispatched.
	Init(l *Loop[S], p backend.Platform) error

	// Update advances the simulation by exactly l.FixedTimeStep().
	Update(l *Loop[S])

	// Render draws a frame. It is skipped while the window is occluded.
	Render(l *Loop[S], p backend.Platform, blending float64)

	// HandleEvent sees every window event before the loop acts on it.
	// Call l.RequestExit to stop.
	HandleEvent(l *Loop[S], ev event.Event, p backend.Platform)
}

// Funcs adapts plain functions to Game. Nil fields are no-ops.
type Funcs[S any] struct {
	InitFunc        func(l *Loop[S], p backend.Platform) error
	UpdateFunc      func(l *Loop[S])
	RenderFunc      func(l *Loop[S], p backend.Platform, blending float64)
	HandleEventFunc func(l *Loop[S], ev event.Event, p backend.Platform)
}

func (f Funcs[S]) Init(l *Loop[S], p backend.Platform) error {
	if f.InitFunc == nil {
		return nil
	}
	return f.InitFunc(l, p)
}

func (f Funcs[S]) Update(l *Loop[S]) {
	if f.UpdateFunc != nil {
		f.UpdateFunc(l)
	}
}

func (f Funcs[S]) Render(l *Loop[S], p backend.Platform, blending float64) {
	if f.RenderFunc != nil {
		f.RenderFunc(l, p, blending)
	}
}

func (f Funcs[S]) HandleEvent(l *Loop[S], ev event.Event, p backend.Platform) {
	if f.HandleEventFunc != nil {
		f.HandleEventFunc(l, ev, p)
	}
}
