package gameloop

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

var (
	// ErrInvalidTickRate is returned when UpdatesPerSecond is not positive or
	// exceeds MaxUpdatesPerSecond.
	ErrInvalidTickRate = errors.New("gameloop: updates per second must be positive and at most one per nanosecond")
	// ErrInvalidMaxFrameTime is returned when MaxFrameTime is negative.
	ErrInvalidMaxFrameTime = errors.New("gameloop: max frame time must not be negative")
)

// Config holds the fixed scheduling parameters of a loop.
type Config struct {
	// UpdatesPerSecond is the simulation tick rate.
	UpdatesPerSecond int
	// MaxFrameTime caps the wall time credited to a single displayed frame,
	// bounding catch-up work after a stall.
	MaxFrameTime time.Duration
}

// UpdateFunc advances the simulation by exactly one fixed time step.
type UpdateFunc[S any] func(l *Loop[S])

// RenderFunc draws the current state. blending is in [0, 1) and tells how far
// real time is past the last completed simulation step.
type RenderFunc[S any] func(l *Loop[S], blending float64)

// Loop is a fixed-timestep scheduler. It owns the caller's state and all
// timing bookkeeping; it is driven one displayed frame at a time by
// AdvanceFrame, usually through Run.
//
// A Loop is not safe for concurrent use.
type Loop[S any] struct {
	// State is the application state handed to every callback. The loop never inspects it.
	State S

	updatesPerSecond int
	fixedTimeStep    time.Duration
	maxFrameTime     time.Duration

	accumulatedTime time.Duration
	runningTime     time.Duration
	lastFrameTime   time.Duration
	blendingFactor  float64

	numberOfUpdates uint64
	numberOfRenders uint64
	numberOfFrames  uint64

	previousInstant time.Time
	currentInstant  time.Time
	frameRate       float64

	windowOccluded bool
	exitRequested  bool

	opts options
}

// MaxUpdatesPerSecond is the highest rate whose fixed step is still at least 1ns.
const MaxUpdatesPerSecond = int(time.Second)

// New validates cfg and builds a loop holding state.
func New[S any](cfg Config, state S, opts ...Option) (*Loop[S], error) {
	if cfg.UpdatesPerSecond <= 0 || cfg.UpdatesPerSecond > MaxUpdatesPerSecond {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTickRate, cfg.UpdatesPerSecond)
	}
	if cfg.MaxFrameTime < 0 {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidMaxFrameTime, cfg.MaxFrameTime)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	now := o.clock.Now()
	l := &Loop[S]{
		State:            state,
		updatesPerSecond: cfg.UpdatesPerSecond,
		fixedTimeStep:    time.Second / time.Duration(cfg.UpdatesPerSecond),
		maxFrameTime:     cfg.MaxFrameTime,
		previousInstant:  now,
		currentInstant:   now,
		opts:             o,
	}

	if cfg.MaxFrameTime < l.fixedTimeStep {
		o.logger.Warn("Max frame time is shorter than one fixed step, simulation will run slower than real time",
			"max_frame_time", cfg.MaxFrameTime, "fixed_time_step", l.fixedTimeStep)
	}

	return l, nil
}

// AdvanceFrame runs one displayed frame: zero or more fixed updates followed
// by a render, or a short sleep while the window is occluded. It returns false
// once exit has been requested, without invoking either callback.
func (l *Loop[S]) AdvanceFrame(update UpdateFunc[S], render RenderFunc[S]) bool {
	if l.exitRequested {
		return false
	}

	l.currentInstant = l.opts.clock.Now()

	elapsed := l.currentInstant.Sub(l.previousInstant)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > l.maxFrameTime {
		l.opts.logger.Debug("Frame time clamped", "elapsed", elapsed, "max_frame_time", l.maxFrameTime)
		elapsed = l.maxFrameTime
	}

	l.lastFrameTime = elapsed
	l.runningTime += elapsed
	l.accumulatedTime += elapsed

	for l.accumulatedTime >= l.fixedTimeStep {
		update(l)
		l.accumulatedTime -= l.fixedTimeStep
		l.numberOfUpdates++
	}

	l.blendingFactor = float64(l.accumulatedTime) / float64(l.fixedTimeStep)

	if l.windowOccluded {
		l.opts.sleeper.Sleep(l.fixedTimeStep)
	} else {
		render(l, l.blendingFactor)
		l.numberOfRenders++
	}

	frameDuration := l.opts.clock.Now().Sub(l.currentInstant)
	if frameDuration > 0 {
		l.frameRate = 1 / frameDuration.Seconds()
	}

	l.previousInstant = l.currentInstant
	l.numberOfFrames++

	if l.numberOfFrames%uint64(l.updatesPerSecond) == 0 {
		l.opts.logger.Debug("Loop stats", "stats", l.Stats())
	}

	return true
}

// RequestExit makes the next AdvanceFrame return false. Callbacks already
// running complete normally.
func (l *Loop[S]) RequestExit() {
	if !l.exitRequested {
		l.opts.logger.Debug("Exit requested")
	}
	l.exitRequested = true
}

func (l *Loop[S]) ExitRequested() bool {
	return l.exitRequested
}

// SetWindowOccluded records the window visibility reported by the backend.
func (l *Loop[S]) SetWindowOccluded(occluded bool) {
	if occluded != l.windowOccluded {
		l.opts.logger.Debug("Window occlusion changed", "occluded", occluded)
	}
	l.windowOccluded = occluded
}

func (l *Loop[S]) WindowOccluded() bool {
	return l.windowOccluded
}

func (l *Loop[S]) UpdatesPerSecond() int {
	return l.updatesPerSecond
}

// FixedTimeStep is the simulated duration of one update.
func (l *Loop[S]) FixedTimeStep() time.Duration {
	return l.fixedTimeStep
}

func (l *Loop[S]) MaxFrameTime() time.Duration {
	return l.maxFrameTime
}

// FrameRate is the instantaneous rate derived from the time spent producing
// the last displayed frame.
func (l *Loop[S]) FrameRate() float64 {
	return l.frameRate
}

func (l *Loop[S]) BlendingFactor() float64 {
	return l.blendingFactor
}

// AccumulatedTime is the simulation time not yet consumed by updates.
func (l *Loop[S]) AccumulatedTime() time.Duration {
	return l.accumulatedTime
}

// RunningTime is the sum of all credited (clamped) frame times.
func (l *Loop[S]) RunningTime() time.Duration {
	return l.runningTime
}

// LastFrameTime is the credited (clamped) wall time of the last frame.
func (l *Loop[S]) LastFrameTime() time.Duration {
	return l.lastFrameTime
}

func (l *Loop[S]) Updates() uint64 {
	return l.numberOfUpdates
}

func (l *Loop[S]) Renders() uint64 {
	return l.numberOfRenders
}

// Stats is a snapshot of the loop counters
type Stats struct {
	Frames          uint64
	Updates         uint64
	Renders         uint64
	RunningTime     time.Duration
	AccumulatedTime time.Duration
	LastFrameTime   time.Duration
	BlendingFactor  float64
	FrameRate       float64
	Occluded        bool
}

func (l *Loop[S]) Stats() Stats {
	return Stats{
		Frames:          l.numberOfFrames,
		Updates:         l.numberOfUpdates,
		Renders:         l.numberOfRenders,
		RunningTime:     l.runningTime,
		AccumulatedTime: l.accumulatedTime,
		LastFrameTime:   l.lastFrameTime,
		BlendingFactor:  l.blendingFactor,
		FrameRate:       l.frameRate,
		Occluded:        l.windowOccluded,
	}
}

// LogValue groups the counters under one key in log records.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("frames", s.Frames),
		slog.Uint64("updates", s.Updates),
		slog.Uint64("renders", s.Renders),
		slog.Duration("running_time", s.RunningTime),
		slog.Float64("fps", s.FrameRate),
		slog.Bool("occluded", s.Occluded),
	)
}
