// Package terrain generates hex maps from Perlin noise.
package terrain

import (
	"errors"
	"fmt"

	"github.com/aquilax/go-perlin"

	"github.com/valerio/go-hexgen/hexgen/video"
)

// Noise thresholds between kinds.
const (
	WaterThreshold = -0.2
	DirtThreshold  = 0.0
)

// Noise parameters: alpha is the weight falloff between octaves, beta the
// frequency step, octaves the number of layers summed.
const (
	noiseAlpha   = 2.0
	noiseBeta    = 2.0
	noiseOctaves = 3

	// height = -noise / heightScale
	heightScale = 15.0
)

var (
	ErrInvalidSize   = errors.New("map size must be positive")
	ErrInvalidBounds = errors.New("noise bounds must be positive")
)

// Kind is the surface type of a tile.
type Kind int

const (
	Water Kind = iota
	Dirt
	Grass
)

var kindNames = map[Kind]string{
	Water: "water",
	Dirt:  "dirt",
	Grass: "grass",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Color is the base color used when drawing the kind.
func (k Kind) Color() video.Color {
	switch k {
	case Water:
		return video.RGB(0x99, 0xFF, 0xFF)
	case Dirt:
		return video.RGB(0xFF, 0x94, 0x61)
	default:
		return video.RGB(0x36, 0xEB, 0xAD)
	}
}

// Classify maps a noise value to a kind.
func Classify(noise float64) Kind {
	switch {
	case noise < WaterThreshold:
		return Water
	case noise < DirtThreshold:
		return Dirt
	default:
		return Grass
	}
}

// Tile is one hex cell in axial coordinates.
type Tile struct {
	Q, R   int
	Noise  float64
	Height float64
	Kind   Kind
}

// Options controls generation.
type Options struct {
	Width  int   // Columns
	Height int   // Rows
	Seed   int64 // Same seed, same map
	// Bounds is the half extent of the noise plane sampled over the full map
	// width. Larger values give busier terrain.
	Bounds float64
}

// DefaultOptions returns a 20x20 map.
func DefaultOptions() Options {
	return Options{Width: 20, Height: 20, Bounds: 5}
}

func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, o.Width, o.Height)
	}
	if o.Bounds <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidBounds, o.Bounds)
	}
	return nil
}

// Map is a generated hex grid stored row by row in offset layout, odd rows
// shifted right by half a hex.
type Map struct {
	Width  int
	Height int
	Seed   int64
	Tiles  []Tile
}

// Generate builds a map. It is deterministic for a given Options value.
func Generate(opts Options) (*Map, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	noise := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, opts.Seed)
	m := &Map{
		Width:  opts.Width,
		Height: opts.Height,
		Seed:   opts.Seed,
		Tiles:  make([]Tile, 0, opts.Width*opts.Height),
	}

	// The plane spans [-Bounds, Bounds] over twice the map size
	step := opts.Bounds / float64(max(opts.Width, opts.Height))
	for row := 0; row < opts.Height; row++ {
		for col := 0; col < opts.Width; col++ {
			value := noise.Noise2D(-opts.Bounds+float64(col)*step, -opts.Bounds+float64(row)*step)
			q, r := OffsetToAxial(col, row)
			m.Tiles = append(m.Tiles, Tile{
				Q:      q,
				R:      r,
				Noise:  value,
				Height: -value / heightScale,
				Kind:   Classify(value),
			})
		}
	}
	return m, nil
}

// At returns the tile at axial q, r.
func (m *Map) At(q, r int) (Tile, bool) {
	col, row := AxialToOffset(q, r)
	if col < 0 || row < 0 || col >= m.Width || row >= m.Height {
		return Tile{}, false
	}
	return m.Tiles[row*m.Width+col], true
}

// Counts returns how many tiles of each kind the map has.
func (m *Map) Counts() map[Kind]int {
	counts := make(map[Kind]int, len(kindNames))
	for _, t := range m.Tiles {
		counts[t.Kind]++
	}
	return counts
}

// OffsetToAxial converts odd-row offset coordinates to axial.
func OffsetToAxial(col, row int) (q, r int) {
	return col - (row-(row&1))/2, row
}

// AxialToOffset converts axial coordinates to odd-row offset.
func AxialToOffset(q, r int) (col, row int) {
	return q + (r-(r&1))/2, r
}
