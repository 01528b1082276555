package gameloop

import (
	"context"
	"fmt"

	"github.com/valerio/go-hexgen/hexgen/backend"
	"github.com/valerio/go-hexgen/hexgen/window/event"
)

// Run drives l from the events of an initialized backend until the game or the
// window requests exit, or ctx is cancelled. Cancellation is cooperative: it
// is observed between event batches and stops the loop before the next frame.
//
// Callback panics are not recovered.
func Run[S any](ctx context.Context, l *Loop[S], b backend.Backend, g Game[S]) error {
	platform := b.Platform()

	if w, ok := b.(backend.EventWaiter); ok && !l.opts.customSleeper {
		l.opts.sleeper = SleeperFunc(w.WaitEvent)
	}

	if err := g.Init(l, platform); err != nil {
		return fmt.Errorf("game init failed: %w", err)
	}

	update := func(l *Loop[S]) { g.Update(l) }
	render := func(l *Loop[S], blending float64) { g.Render(l, platform, blending) }

	l.opts.logger.Info("Starting loop",
		"updates_per_second", l.updatesPerSecond,
		"fixed_time_step", l.fixedTimeStep,
		"max_frame_time", l.maxFrameTime)

	for {
		if ctx.Err() != nil {
			l.RequestExit()
		}

		if l.ExitRequested() {
			// the next frame would be a no-op returning false
			l.opts.logger.Info("Loop finished", "stats", l.Stats())
			return nil
		}

		events, err := b.PollEvents()
		if err != nil {
			return fmt.Errorf("polling window events: %w", err)
		}

		for _, ev := range events {
			g.HandleEvent(l, ev, platform)

			switch ev.Type {
			case event.CloseRequested:
				l.RequestExit()
			case event.Occluded:
				l.SetWindowOccluded(ev.Occluded)
			case event.RedrawRequested:
				if !l.AdvanceFrame(update, render) {
					l.opts.logger.Info("Loop finished", "stats", l.Stats())
					return nil
				}
			}
		}
	}
}
