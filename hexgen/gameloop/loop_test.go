package gameloop

import (
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSleeper struct {
	calls []time.Duration
	clock *ManualClock
}

func (s *recordingSleeper) Sleep(d time.Duration) {
	s.calls = append(s.calls, d)
	if s.clock != nil {
		s.clock.Advance(d)
	}
}

type counters struct {
	updates   int
	renders   int
	blendings []float64
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestLoop(t *testing.T, ups int, maxFrameTime time.Duration) (*Loop[*counters], *ManualClock, *recordingSleeper) {
	t.Helper()
	clock := NewManualClock(time.Unix(1000, 0))
	sleeper := &recordingSleeper{}
	l, err := New(Config{UpdatesPerSecond: ups, MaxFrameTime: maxFrameTime}, &counters{},
		WithClock(clock), WithSleeper(sleeper), WithLogger(discardLogger()))
	require.NoError(t, err)
	return l, clock, sleeper
}

func countUpdate(l *Loop[*counters]) {
	l.State.updates++
}

func countRender(l *Loop[*counters], blending float64) {
	l.State.renders++
	l.State.blendings = append(l.State.blendings, blending)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
		step    time.Duration
	}{
		{name: "10 ups", cfg: Config{UpdatesPerSecond: 10, MaxFrameTime: time.Second}, step: 100 * time.Millisecond},
		{name: "240 ups", cfg: Config{UpdatesPerSecond: 240, MaxFrameTime: 100 * time.Millisecond}, step: time.Second / 240},
		{name: "zero max frame time is allowed", cfg: Config{UpdatesPerSecond: 60}, step: time.Second / 60},
		{name: "zero tick rate", cfg: Config{UpdatesPerSecond: 0, MaxFrameTime: time.Second}, wantErr: ErrInvalidTickRate},
		{name: "tick rate above one per nanosecond", cfg: Config{UpdatesPerSecond: 2_000_000_000, MaxFrameTime: time.Millisecond}, wantErr: ErrInvalidTickRate},
		{name: "one update per nanosecond", cfg: Config{UpdatesPerSecond: MaxUpdatesPerSecond, MaxFrameTime: time.Millisecond}, step: time.Nanosecond},
		{name: "negative tick rate", cfg: Config{UpdatesPerSecond: -5, MaxFrameTime: time.Second}, wantErr: ErrInvalidTickRate},
		{name: "negative max frame time", cfg: Config{UpdatesPerSecond: 60, MaxFrameTime: -time.Millisecond}, wantErr: ErrInvalidMaxFrameTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg, 42, WithLogger(discardLogger()))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, l)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.step, l.FixedTimeStep())
			assert.Equal(t, tt.cfg.UpdatesPerSecond, l.UpdatesPerSecond())
			assert.Equal(t, tt.cfg.MaxFrameTime, l.MaxFrameTime())
			assert.Equal(t, 42, l.State)
			assert.Zero(t, l.Updates())
			assert.Zero(t, l.Renders())
			assert.Zero(t, l.AccumulatedTime())
			assert.Zero(t, l.FrameRate())
			assert.False(t, l.WindowOccluded())
			assert.False(t, l.ExitRequested())
		})
	}
}

func TestAdvanceFrame_FirstFrameHasNoSpuriousElapsed(t *testing.T) {
	l, _, _ := newTestLoop(t, 10, time.Second)

	assert.True(t, l.AdvanceFrame(countUpdate, countRender))
	assert.Equal(t, 0, l.State.updates)
	assert.Equal(t, 1, l.State.renders)
	assert.Zero(t, l.BlendingFactor())
}

func TestAdvanceFrame_PartialSteps(t *testing.T) {
	l, clock, _ := newTestLoop(t, 10, time.Second)

	clock.Advance(250 * time.Millisecond)
	require.True(t, l.AdvanceFrame(countUpdate, countRender))

	assert.Equal(t, 2, l.State.updates)
	assert.Equal(t, uint64(2), l.Updates())
	assert.Equal(t, 50*time.Millisecond, l.AccumulatedTime())
	assert.Equal(t, 0.5, l.BlendingFactor())
	assert.Equal(t, []float64{0.5}, l.State.blendings)
	assert.Equal(t, uint64(1), l.Renders())
	assert.Equal(t, 250*time.Millisecond, l.RunningTime())
	assert.Equal(t, 250*time.Millisecond, l.LastFrameTime())
}

func TestAdvanceFrame_LeftoverCarriesOver(t *testing.T) {
	l, clock, _ := newTestLoop(t, 10, time.Second)

	clock.Advance(250 * time.Millisecond)
	l.AdvanceFrame(countUpdate, countRender)
	clock.Advance(60 * time.Millisecond)
	l.AdvanceFrame(countUpdate, countRender)

	assert.Equal(t, 3, l.State.updates, "50ms leftover + 60ms completes one more step")
	assert.Equal(t, 10*time.Millisecond, l.AccumulatedTime())
	assert.InDelta(t, 0.1, l.BlendingFactor(), 1e-12)
}

func TestAdvanceFrame_ClampsLongFrames(t *testing.T) {
	l, clock, _ := newTestLoop(t, 10, 200*time.Millisecond)

	clock.Advance(5 * time.Second)
	require.True(t, l.AdvanceFrame(countUpdate, countRender))

	assert.Equal(t, 2, l.State.updates)
	assert.Zero(t, l.AccumulatedTime())
	assert.Zero(t, l.BlendingFactor())
	assert.Equal(t, 200*time.Millisecond, l.LastFrameTime())
	assert.Equal(t, 200*time.Millisecond, l.RunningTime())
}

func TestAdvanceFrame_ClampBoundsCatchUp(t *testing.T) {
	for _, stall := range []time.Duration{time.Second, time.Minute, 24 * time.Hour} {
		maxFrame := 330 * time.Millisecond

		stalled, stalledClock, _ := newTestLoop(t, 60, maxFrame)
		stalledClock.Advance(stall)
		stalled.AdvanceFrame(countUpdate, countRender)

		reference, referenceClock, _ := newTestLoop(t, 60, maxFrame)
		referenceClock.Advance(maxFrame)
		reference.AdvanceFrame(countUpdate, countRender)

		assert.Equal(t, reference.State.updates, stalled.State.updates, "stall %s", stall)
		assert.Equal(t, reference.AccumulatedTime(), stalled.AccumulatedTime(), "stall %s", stall)
	}
}

func TestAdvanceFrame_WholeStepsLeaveNoRemainder(t *testing.T) {
	for _, ups := range []int{10, 30, 60, 144, 240} {
		for k := 0; k <= 6; k++ {
			l, clock, _ := newTestLoop(t, ups, time.Second)

			clock.Advance(time.Duration(k) * l.FixedTimeStep())
			l.AdvanceFrame(countUpdate, countRender)

			assert.Equal(t, k, l.State.updates, "ups=%d k=%d", ups, k)
			assert.Zero(t, l.BlendingFactor(), "ups=%d k=%d", ups, k)
			assert.Zero(t, l.AccumulatedTime(), "ups=%d k=%d", ups, k)
		}
	}
}

func TestAdvanceFrame_InvariantsHoldForRandomFrameTimes(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, ups := range []int{1, 7, 10, 60, 240} {
		l, clock, _ := newTestLoop(t, ups, 250*time.Millisecond)

		var credited time.Duration
		for i := 0; i < 2000; i++ {
			elapsed := time.Duration(rng.Int63n(int64(400 * time.Millisecond)))
			clock.Advance(elapsed)
			credited += min(elapsed, 250*time.Millisecond)

			updatesBefore := l.Updates()
			runningBefore := l.RunningTime()
			require.True(t, l.AdvanceFrame(countUpdate, countRender))

			require.GreaterOrEqual(t, l.AccumulatedTime(), time.Duration(0))
			require.Less(t, l.AccumulatedTime(), l.FixedTimeStep())
			require.GreaterOrEqual(t, l.BlendingFactor(), 0.0)
			require.Less(t, l.BlendingFactor(), 1.0)
			require.GreaterOrEqual(t, l.Updates(), updatesBefore)
			require.GreaterOrEqual(t, l.RunningTime(), runningBefore)
		}

		// every credited nanosecond is either simulated or still pending
		simulated := time.Duration(l.Updates()) * l.FixedTimeStep()
		assert.Equal(t, credited, simulated+l.AccumulatedTime(), "ups=%d", ups)
		assert.Equal(t, credited, l.RunningTime(), "ups=%d", ups)
		assert.Equal(t, uint64(2000), l.Renders())
	}
}

func TestAdvanceFrame_UpdatesAreIndependentOfFrameRate(t *testing.T) {
	fast, fastClock, _ := newTestLoop(t, 50, time.Second)
	slow, slowClock, _ := newTestLoop(t, 50, time.Second)

	// one simulated second at 250 fps and at 20 fps
	for i := 0; i < 250; i++ {
		fastClock.Advance(4 * time.Millisecond)
		fast.AdvanceFrame(countUpdate, countRender)
	}
	for i := 0; i < 20; i++ {
		slowClock.Advance(50 * time.Millisecond)
		slow.AdvanceFrame(countUpdate, countRender)
	}

	assert.Equal(t, 50, fast.State.updates)
	assert.Equal(t, 50, slow.State.updates)
	assert.Equal(t, 250, fast.State.renders)
	assert.Equal(t, 20, slow.State.renders)
}

func TestAdvanceFrame_ExitRequested(t *testing.T) {
	l, clock, sleeper := newTestLoop(t, 10, time.Second)

	clock.Advance(150 * time.Millisecond)
	require.True(t, l.AdvanceFrame(countUpdate, countRender))
	before := l.Stats()

	l.RequestExit()
	clock.Advance(time.Second)

	assert.False(t, l.AdvanceFrame(countUpdate, countRender))
	assert.False(t, l.AdvanceFrame(countUpdate, countRender), "exit is terminal")
	assert.True(t, l.ExitRequested())
	assert.Equal(t, 1, l.State.updates)
	assert.Equal(t, 1, l.State.renders)
	assert.Equal(t, before, l.Stats())
	assert.Empty(t, sleeper.calls)
}

func TestAdvanceFrame_ExitRequestedFromUpdate(t *testing.T) {
	l, clock, _ := newTestLoop(t, 10, time.Second)

	clock.Advance(300 * time.Millisecond)
	stopAfterFirst := func(l *Loop[*counters]) {
		l.State.updates++
		l.RequestExit()
	}

	// in-flight frame completes, the next one does not run
	assert.True(t, l.AdvanceFrame(stopAfterFirst, countRender))
	assert.Equal(t, 3, l.State.updates)
	assert.Equal(t, 1, l.State.renders)
	assert.False(t, l.AdvanceFrame(stopAfterFirst, countRender))
}

func TestAdvanceFrame_Occluded(t *testing.T) {
	l, clock, sleeper := newTestLoop(t, 10, time.Second)
	l.SetWindowOccluded(true)

	clock.Advance(100 * time.Millisecond)
	require.True(t, l.AdvanceFrame(countUpdate, countRender))

	assert.Equal(t, 1, l.State.updates, "updates keep running while hidden")
	assert.Equal(t, 0, l.State.renders)
	assert.Zero(t, l.Renders())
	assert.Equal(t, []time.Duration{100 * time.Millisecond}, sleeper.calls)

	for i := 0; i < 10; i++ {
		clock.Advance(30 * time.Millisecond)
		l.AdvanceFrame(countUpdate, countRender)
	}
	assert.Zero(t, l.Renders())
	assert.Len(t, sleeper.calls, 11)

	l.SetWindowOccluded(false)
	clock.Advance(30 * time.Millisecond)
	l.AdvanceFrame(countUpdate, countRender)
	assert.Equal(t, uint64(1), l.Renders())
	assert.Len(t, sleeper.calls, 11)
}

func TestAdvanceFrame_FrameRate(t *testing.T) {
	l, clock, _ := newTestLoop(t, 10, time.Second)

	slowRender := func(l *Loop[*counters], blending float64) {
		clock.Advance(10 * time.Millisecond)
	}
	l.AdvanceFrame(countUpdate, slowRender)
	assert.InDelta(t, 100.0, l.FrameRate(), 1e-9)

	// zero-length frame leaves the previous value
	l.AdvanceFrame(countUpdate, countRender)
	assert.InDelta(t, 100.0, l.FrameRate(), 1e-9)

	fastRender := func(l *Loop[*counters], blending float64) {
		clock.Advance(4 * time.Millisecond)
	}
	l.AdvanceFrame(countUpdate, fastRender)
	assert.InDelta(t, 250.0, l.FrameRate(), 1e-9)
}

func TestAdvanceFrame_FrameRateIncludesOcclusionSleep(t *testing.T) {
	l, clock, sleeper := newTestLoop(t, 20, time.Second)
	sleeper.clock = clock
	l.SetWindowOccluded(true)

	l.AdvanceFrame(countUpdate, countRender)
	assert.InDelta(t, 20.0, l.FrameRate(), 1e-9)
}

func TestAdvanceFrame_ClockGoingBackwards(t *testing.T) {
	l, clock, _ := newTestLoop(t, 10, time.Second)

	clock.Advance(-time.Second)
	require.True(t, l.AdvanceFrame(countUpdate, countRender))
	assert.Zero(t, l.AccumulatedTime())
	assert.Zero(t, l.RunningTime())
	assert.Zero(t, l.State.updates)
}

func TestAdvanceFrame_UpdateSeesOneStep(t *testing.T) {
	l, clock, _ := newTestLoop(t, 4, time.Second)

	var simulated time.Duration
	update := func(l *Loop[*counters]) {
		simulated += l.FixedTimeStep()
	}

	clock.Advance(900 * time.Millisecond)
	l.AdvanceFrame(update, countRender)

	assert.Equal(t, 750*time.Millisecond, simulated)
	assert.Equal(t, 150*time.Millisecond, l.AccumulatedTime())
	assert.Equal(t, 0.6, l.BlendingFactor())
}

func TestManualClock(t *testing.T) {
	start := time.Unix(10, 0)
	c := NewManualClock(start)
	assert.Equal(t, start, c.Now())

	c.Advance(time.Second)
	assert.Equal(t, start.Add(time.Second), c.Now())

	c.Set(start)
	assert.Equal(t, start, c.Now())
}
