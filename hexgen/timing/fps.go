package timing

import "time"

// FPSCounter reports a frame rate averaged over a sampling window, which is
// steadier to display than a per-frame value.
type FPSCounter struct {
	window     time.Duration
	frameCount int
	startTime  time.Time
	fps        float64
}

func NewFPSCounter(window time.Duration, now time.Time) *FPSCounter {
	if window <= 0 {
		window = time.Second
	}
	return &FPSCounter{
		window:    window,
		startTime: now,
	}
}

// Tick records one frame presented at now and returns the current average.
func (c *FPSCounter) Tick(now time.Time) float64 {
	c.frameCount++
	elapsed := now.Sub(c.startTime)
	if elapsed >= c.window {
		c.fps = float64(c.frameCount) / elapsed.Seconds()
		c.frameCount = 0
		c.startTime = now
	}
	return c.fps
}

func (c *FPSCounter) FPS() float64 {
	return c.fps
}
