package video

import (
	"image"

	"github.com/valerio/go-hexgen/hexgen/display"
)

// Color is a packed 0xRRGGBBAA value
type Color uint32

const (
	Black Color = 0x000000FF
	White Color = 0xFFFFFFFF
)

// RGB packs an opaque color.
func RGB(r, g, b uint8) Color {
	return Color(uint32(r)<<display.RGBARShift |
		uint32(g)<<display.RGBAGShift |
		uint32(b)<<display.RGBABShift |
		display.FullAlpha)
}

// RGBA unpacks the color components.
func (c Color) RGBA() (r, g, b, a uint8) {
	r = uint8((uint32(c) >> display.RGBARShift) & display.RGBAColorMask)
	g = uint8((uint32(c) >> display.RGBAGShift) & display.RGBAColorMask)
	b = uint8((uint32(c) >> display.RGBABShift) & display.RGBAColorMask)
	a = uint8(uint32(c) & display.RGBAColorMask)
	return
}

// Scale multiplies the color channels by f, clamped to [0, 255]. Alpha is kept.
func (c Color) Scale(f float64) Color {
	r, g, b, a := c.RGBA()
	scale := func(v uint8) uint8 {
		s := float64(v) * f
		if s < 0 {
			return 0
		}
		if s > 255 {
			return 255
		}
		return uint8(s)
	}
	return RGB(scale(r), scale(g), scale(b))&^display.RGBAColorMask | Color(a)
}

// FrameBuffer is a resizable RGBA pixel surface that applications draw into
// and backends present.
type FrameBuffer struct {
	width  int
	height int
	buffer []uint32
}

// NewFrameBuffer creates a frame buffer with the specified size.
func NewFrameBuffer(width, height int) *FrameBuffer {
	fb := &FrameBuffer{}
	fb.Resize(width, height)
	return fb
}

func (fb *FrameBuffer) Width() int  { return fb.width }
func (fb *FrameBuffer) Height() int { return fb.height }

// Resize changes the dimensions, clearing the content. Negative sizes are treated as zero.
func (fb *FrameBuffer) Resize(width, height int) {
	width = max(width, 0)
	height = max(height, 0)
	if width == fb.width && height == fb.height {
		return
	}
	fb.width = width
	fb.height = height
	fb.buffer = make([]uint32, width*height)
}

// Fill sets every pixel to color.
func (fb *FrameBuffer) Fill(color Color) {
	for i := range fb.buffer {
		fb.buffer[i] = uint32(color)
	}
}

// GetPixel returns the pixel at x, y or Black when out of bounds.
func (fb *FrameBuffer) GetPixel(x, y int) Color {
	if !fb.inBounds(x, y) {
		return Black
	}
	return Color(fb.buffer[y*fb.width+x])
}

// SetPixel writes a pixel, ignoring writes out of bounds.
func (fb *FrameBuffer) SetPixel(x, y int, color Color) {
	if !fb.inBounds(x, y) {
		return
	}
	fb.buffer[y*fb.width+x] = uint32(color)
}

// FillRect fills the rectangle with top-left x, y, clipped to the buffer.
func (fb *FrameBuffer) FillRect(x, y, w, h int, color Color) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, fb.width), min(y+h, fb.height)
	for py := y0; py < y1; py++ {
		row := py * fb.width
		for px := x0; px < x1; px++ {
			fb.buffer[row+px] = uint32(color)
		}
	}
}

func (fb *FrameBuffer) ToSlice() []uint32 {
	return fb.buffer
}

// ToImage converts the frame buffer to an image for encoding.
func (fb *FrameBuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for i, pixel := range fb.buffer {
		idx := i * display.RGBABytesPerPixel
		r, g, b, a := Color(pixel).RGBA()
		img.Pix[idx] = r
		img.Pix[idx+1] = g
		img.Pix[idx+2] = b
		img.Pix[idx+3] = a
	}
	return img
}

func (fb *FrameBuffer) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < fb.width && y < fb.height
}
