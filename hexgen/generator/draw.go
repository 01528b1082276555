package generator

import (
	"math"

	"github.com/valerio/go-hexgen/hexgen/scene"
	"github.com/valerio/go-hexgen/hexgen/terrain"
	"github.com/valerio/go-hexgen/hexgen/video"
)

// MapCenter returns the world position in the middle of the map.
func MapCenter(m *terrain.Map) scene.Vec2 {
	first := scene.HexCenter(terrain.OffsetToAxial(0, 0))
	last := scene.HexCenter(terrain.OffsetToAxial(m.Width-1, m.Height-1))
	return first.Lerp(last, 0.5)
}

// Draw rasterizes the map into fb as seen from view. Each pixel takes the
// color of the hex under it, shaded by height. Water shimmers with phase.
func Draw(fb *video.FrameBuffer, m *terrain.Map, view scene.View, phase float64) {
	w, h := fb.Width(), fb.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// sample the pixel center
			q, r := view.HexAt(float64(x)+0.5, float64(y)+0.5, w, h)
			tile, ok := m.At(q, r)
			if !ok {
				fb.SetPixel(x, y, background)
				continue
			}
			fb.SetPixel(x, y, TileColor(tile, phase))
		}
	}
}

// TileColor returns the shaded color of a tile.
func TileColor(t terrain.Tile, phase float64) video.Color {
	shade := 1 + t.Height*heightShading
	if t.Kind == terrain.Water {
		shade *= 0.9 + 0.1*math.Sin(phase+0.7*float64(t.Q)+0.3*float64(t.R))
	}
	return t.Kind.Color().Scale(shade)
}
