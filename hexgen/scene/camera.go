// Package scene holds the view onto the terrain: a camera that moves in
// fixed steps and is drawn at an interpolated position.
package scene

import "math"

const (
	DefaultZoom = 12.0 // Pixels per hex radius
	MinZoom     = 2.0
	MaxZoom     = 64.0

	// DefaultDamping is the share of velocity kept after one second.
	DefaultDamping = 0.25
	// ZoomStep is the factor applied by one zoom in or out.
	ZoomStep = 1.25
)

// Vec2 is a point or offset in world units, one unit being a hex radius.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

// Lerp blends from v to o by t in [0, 1].
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return v.Add(o.Sub(v).Scale(t))
}

// Camera moves with velocity integrated once per fixed step. Previous keeps
// the state before the last step so rendering can blend between the two.
type Camera struct {
	Position Vec2
	Previous Vec2
	Velocity Vec2 // World units per second

	Zoom         float64
	PreviousZoom float64

	Damping float64
}

// NewCamera returns a camera centered on center at the default zoom.
func NewCamera(center Vec2) *Camera {
	return &Camera{
		Position:     center,
		Previous:     center,
		Zoom:         DefaultZoom,
		PreviousZoom: DefaultZoom,
		Damping:      DefaultDamping,
	}
}

// Step advances the camera by dt seconds.
func (c *Camera) Step(dt float64) {
	c.Previous = c.Position
	c.PreviousZoom = c.Zoom
	c.Position = c.Position.Add(c.Velocity.Scale(dt))

	if c.Damping >= 0 && c.Damping < 1 {
		c.Velocity = c.Velocity.Scale(math.Pow(c.Damping, dt))
		if math.Abs(c.Velocity.X) < 1e-3 && math.Abs(c.Velocity.Y) < 1e-3 {
			c.Velocity = Vec2{}
		}
	}
}

// Push adds an impulse to the velocity.
func (c *Camera) Push(impulse Vec2) {
	c.Velocity = c.Velocity.Add(impulse)
}

// Stop cancels any movement.
func (c *Camera) Stop() {
	c.Velocity = Vec2{}
}

// ZoomBy multiplies the zoom, clamped to [MinZoom, MaxZoom]. The change
// is picked up by the next Step's interpolation.
func (c *Camera) ZoomBy(factor float64) {
	c.Zoom = min(max(c.Zoom*factor, MinZoom), MaxZoom)
}

// MoveTo places the camera without interpolating from the old position.
func (c *Camera) MoveTo(p Vec2) {
	c.Position = p
	c.Previous = p
	c.Velocity = Vec2{}
}

// Interpolated returns the view blended between the previous and current
// step. alpha is the loop's blending factor.
func (c *Camera) Interpolated(alpha float64) View {
	alpha = min(max(alpha, 0), 1)
	return View{
		Center: c.Previous.Lerp(c.Position, alpha),
		Zoom:   c.PreviousZoom + (c.Zoom-c.PreviousZoom)*alpha,
	}
}
