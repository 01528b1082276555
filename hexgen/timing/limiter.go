package timing

import "time"

// Limiter paces how often a backend reports that a new frame is due.
type Limiter interface {
	// WaitForNextFrame blocks until it's time for the next frame.
	// Returns immediately if timing is behind schedule.
	WaitForNextFrame()

	// Reset resets the timing state, useful after the window was hidden.
	Reset()
}

// NewNoOpLimiter returns a limiter that doesn't limit (for headless mode).
func NewNoOpLimiter() Limiter {
	return &noOpLimiter{}
}

type noOpLimiter struct{}

func (n *noOpLimiter) WaitForNextFrame() {}
func (n *noOpLimiter) Reset()            {}

// DefaultTargetFPS is used when a non-positive frame rate is requested.
const DefaultTargetFPS = 60

// FrameDuration returns the duration of a single frame at the given rate.
func FrameDuration(targetFPS int) time.Duration {
	if targetFPS <= 0 {
		targetFPS = DefaultTargetFPS
	}
	return time.Second / time.Duration(targetFPS)
}

// NewLimiter picks a limiter for the target frame rate. Zero or negative
// disables limiting.
func NewLimiter(targetFPS int) Limiter {
	if targetFPS <= 0 {
		return NewNoOpLimiter()
	}
	return NewAdaptiveLimiter(targetFPS)
}
