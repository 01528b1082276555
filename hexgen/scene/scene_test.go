package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCameraStepAndInterpolate(t *testing.T) {
	c := NewCamera(Vec2{})
	c.Damping = 1 // no friction
	c.Push(Vec2{X: 4})

	c.Step(0.25)
	assert.Equal(t, Vec2{}, c.Previous)
	assert.InDelta(t, 1.0, c.Position.X, 1e-9)

	view := c.Interpolated(0.5)
	assert.InDelta(t, 0.5, view.Center.X, 1e-9)
	assert.Equal(t, DefaultZoom, view.Zoom)

	assert.Equal(t, c.Previous, c.Interpolated(-1).Center)
	assert.Equal(t, c.Position, c.Interpolated(2).Center)
}

func TestCameraDamping(t *testing.T) {
	c := NewCamera(Vec2{})
	c.Push(Vec2{Y: 8})
	c.Step(1)
	assert.InDelta(t, 8*DefaultDamping, c.Velocity.Y, 1e-9)

	for i := 0; i < 200; i++ {
		c.Step(0.1)
	}
	assert.Equal(t, Vec2{}, c.Velocity)
}

func TestCameraZoom(t *testing.T) {
	c := NewCamera(Vec2{})
	c.ZoomBy(ZoomStep)
	assert.InDelta(t, DefaultZoom*ZoomStep, c.Zoom, 1e-9)
	assert.InDelta(t, DefaultZoom+(DefaultZoom*ZoomStep-DefaultZoom)/2, c.Interpolated(0.5).Zoom, 1e-9)

	c.ZoomBy(1000)
	assert.Equal(t, MaxZoom, c.Zoom)
	c.ZoomBy(0)
	assert.Equal(t, MinZoom, c.Zoom)
}

func TestCameraStopAndMove(t *testing.T) {
	c := NewCamera(Vec2{})
	c.Push(Vec2{X: 1, Y: 1})
	c.Stop()
	assert.Equal(t, Vec2{}, c.Velocity)

	c.MoveTo(Vec2{X: 3, Y: 2})
	assert.Equal(t, c.Position, c.Interpolated(0).Center)
}

func TestHexProjectionRoundTrip(t *testing.T) {
	view := View{Center: Vec2{X: 5, Y: 3}, Zoom: 10}
	for r := -4; r <= 4; r++ {
		for q := -4; q <= 4; q++ {
			x, y := view.ProjectHex(q, r, 200, 100)
			gq, gr := view.HexAt(x, y, 200, 100)
			assert.Equal(t, q, gq)
			assert.Equal(t, r, gr)
		}
	}
}

func TestProjectCentersView(t *testing.T) {
	view := View{Center: Vec2{X: 2, Y: -1}, Zoom: 4}
	x, y := view.Project(view.Center, 80, 60)
	assert.Equal(t, 40.0, x)
	assert.Equal(t, 30.0, y)

	p := view.Unproject(50, 34, 80, 60)
	assert.InDelta(t, 4.5, p.X, 1e-9)
	assert.InDelta(t, 0.0, p.Y, 1e-9)
}

func TestHexFromWorldNearEdge(t *testing.T) {
	// a point just inside hex 1,0 toward hex 0,0
	c := HexCenter(1, 0)
	q, r := HexFromWorld(Vec2{X: c.X - 0.8, Y: c.Y})
	assert.Equal(t, 1, q)
	assert.Equal(t, 0, r)
}
