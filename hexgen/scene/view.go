package scene

import "math"

var sqrt3 = math.Sqrt(3)

// View is a camera snapshot used for one render.
type View struct {
	Center Vec2
	Zoom   float64
}

// HexCenter returns the world position of the center of the pointy-top hex
// at axial q, r.
func HexCenter(q, r int) Vec2 {
	return Vec2{
		X: sqrt3*float64(q) + sqrt3/2*float64(r),
		Y: 1.5 * float64(r),
	}
}

// Project maps a world point to screen pixels for a screen of the given size.
func (v View) Project(p Vec2, width, height int) (x, y float64) {
	d := p.Sub(v.Center).Scale(v.Zoom)
	return d.X + float64(width)/2, d.Y + float64(height)/2
}

// ProjectHex maps the center of hex q, r to screen pixels.
func (v View) ProjectHex(q, r, width, height int) (x, y float64) {
	return v.Project(HexCenter(q, r), width, height)
}

// Unproject maps screen pixels back to a world point.
func (v View) Unproject(x, y float64, width, height int) Vec2 {
	return Vec2{
		X: (x-float64(width)/2)/v.Zoom + v.Center.X,
		Y: (y-float64(height)/2)/v.Zoom + v.Center.Y,
	}
}

// HexAt returns the axial coordinates of the hex under screen pixel x, y.
func (v View) HexAt(x, y float64, width, height int) (q, r int) {
	return HexFromWorld(v.Unproject(x, y, width, height))
}

// HexFromWorld returns the hex containing the world point.
func HexFromWorld(p Vec2) (q, r int) {
	fq := sqrt3/3*p.X - p.Y/3
	fr := 2.0 / 3 * p.Y
	return roundAxial(fq, fr)
}

// roundAxial rounds fractional axial coordinates through cube coordinates.
func roundAxial(fq, fr float64) (int, int) {
	fs := -fq - fr
	q, r, s := math.Round(fq), math.Round(fr), math.Round(fs)

	dq, dr, ds := math.Abs(q-fq), math.Abs(r-fr), math.Abs(s-fs)
	switch {
	case dq > dr && dq > ds:
		q = -r - s
	case dr > ds:
		r = -q - s
	}
	return int(q), int(r)
}
