package headless_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-hexgen/hexgen/backend"
	"github.com/valerio/go-hexgen/hexgen/backend/headless"
	"github.com/valerio/go-hexgen/hexgen/display"
	"github.com/valerio/go-hexgen/hexgen/window/event"
)

func poll(t *testing.T, h *headless.Backend) []event.Event {
	t.Helper()
	events, err := h.PollEvents()
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.Equal(t, event.RedrawRequested, events[len(events)-1].Type, "batch must end with a redraw")
	return events
}

func types(events []event.Event) []event.Type {
	out := make([]event.Type, len(events))
	for i, ev := range events {
		out[i] = ev.Type
	}
	return out
}

func TestHeadlessBackend(t *testing.T) {
	t.Run("closes after max frames", func(t *testing.T) {
		h := headless.New(headless.Options{MaxFrames: 3})
		require.NoError(t, h.Init(backend.BackendConfig{Title: "Test"}))

		for i := 0; i < 3; i++ {
			assert.Equal(t, []event.Type{event.RedrawRequested}, types(poll(t, h)))
		}
		assert.Equal(t, []event.Type{event.CloseRequested, event.RedrawRequested}, types(poll(t, h)))
		assert.Equal(t, []event.Type{event.CloseRequested, event.RedrawRequested}, types(poll(t, h)))
		assert.Equal(t, 3, h.Frames())

		assert.NoError(t, h.Cleanup())
	})

	t.Run("default size", func(t *testing.T) {
		h := headless.New(headless.Options{})
		require.NoError(t, h.Init(backend.BackendConfig{}))
		w, hgt := h.Platform().Size()
		assert.Equal(t, display.HeadlessWidth, w)
		assert.Equal(t, display.HeadlessHeight, hgt)
	})

	t.Run("counts presented frames", func(t *testing.T) {
		h := headless.New(headless.Options{MaxFrames: 2})
		assert.Zero(t, h.Presented())
		require.NoError(t, h.Init(backend.BackendConfig{Width: 4, Height: 4}))

		require.NoError(t, h.Platform().Present())
		require.NoError(t, h.Platform().Present())
		assert.Equal(t, 2, h.Presented())
	})

	t.Run("poll before init fails", func(t *testing.T) {
		_, err := headless.New(headless.Options{}).PollEvents()
		assert.Error(t, err)
	})

	t.Run("scripted events precede redraw", func(t *testing.T) {
		script := headless.Script{}.
			Add(1, event.Occlusion(true)).
			Add(2, event.Resize(40, 30), event.Occlusion(false))
		h := headless.New(headless.Options{Script: script})
		require.NoError(t, h.Init(backend.BackendConfig{Width: 10, Height: 10}))

		assert.Equal(t, []event.Type{event.RedrawRequested}, types(poll(t, h)))
		assert.Equal(t, []event.Type{event.Occluded, event.RedrawRequested}, types(poll(t, h)))

		events := poll(t, h)
		assert.Equal(t, []event.Type{event.Resized, event.Occluded, event.RedrawRequested}, types(events))
		assert.False(t, events[1].Occluded)

		w, hgt := h.Platform().Size()
		assert.Equal(t, 40, w)
		assert.Equal(t, 30, hgt)
	})

	t.Run("realtime paces frames", func(t *testing.T) {
		h := headless.New(headless.Options{MaxFrames: 3, Realtime: true})
		require.NoError(t, h.Init(backend.BackendConfig{TargetFPS: 100}))

		start := time.Now()
		for i := 0; i < 3; i++ {
			poll(t, h)
		}
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

		start = time.Now()
		h.WaitEvent(5 * time.Millisecond)
		assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
		require.NoError(t, h.Cleanup())
	})

	t.Run("scripted close sticks", func(t *testing.T) {
		h := headless.New(headless.Options{Script: headless.Script{}.Add(0, event.Close())})
		require.NoError(t, h.Init(backend.BackendConfig{}))
		assert.Equal(t, []event.Type{event.CloseRequested, event.RedrawRequested}, types(poll(t, h)))
		assert.Equal(t, []event.Type{event.CloseRequested, event.RedrawRequested}, types(poll(t, h)))
	})
}

func TestHeadlessSnapshots(t *testing.T) {
	dir := t.TempDir()
	cfg, err := headless.CreateSnapshotConfig(2, dir)
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)

	h := headless.New(headless.Options{MaxFrames: 5, Snapshots: cfg})
	require.NoError(t, h.Init(backend.BackendConfig{Width: 8, Height: 6}))

	for i := 0; i < 5; i++ {
		poll(t, h)
		require.NoError(t, h.Platform().Present())
	}
	// Presents 2 and 4 are on the interval, 5 is saved when closing.
	assert.Len(t, h.Snapshots(), 2)
	poll(t, h)
	require.Len(t, h.Snapshots(), 3)

	for _, path := range h.Snapshots() {
		_, err := os.Stat(path)
		assert.NoError(t, err)
	}
}

func TestCreateSnapshotConfig(t *testing.T) {
	cfg, err := headless.CreateSnapshotConfig(0, "")
	require.NoError(t, err)
	assert.False(t, cfg.Enabled)

	cfg, err = headless.CreateSnapshotConfig(10, "")
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
	assert.DirExists(t, cfg.Directory)
	os.RemoveAll(cfg.Directory)
}

func TestNewScript(t *testing.T) {
	script, err := headless.NewScript([]headless.Step{
		{Frame: 3, Event: "occlude"},
		{Frame: 3, Event: "Reveal"},
		{Frame: 5, Event: "key", Key: "g"},
		{Frame: 6, Event: "resize", Width: 4, Height: 2},
		{Frame: 9, Event: "close"},
	})
	require.NoError(t, err)

	assert.Equal(t, []event.Event{event.Occlusion(true), event.Occlusion(false)}, script[3])
	assert.Equal(t, []event.Event{event.KeyPress("g"), event.KeyRelease("g")}, script[5])
	assert.Equal(t, []event.Event{event.Resize(4, 2)}, script[6])
	assert.Equal(t, []event.Event{event.Close()}, script[9])

	bad := []headless.Step{
		{Frame: -1, Event: "close"},
		{Frame: 0, Event: "explode"},
		{Frame: 0, Event: "resize"},
		{Frame: 0, Event: "press"},
	}
	for _, step := range bad {
		_, err := headless.NewScript([]headless.Step{step})
		assert.Error(t, err, "step %+v", step)
	}
}
