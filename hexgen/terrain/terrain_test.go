package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		noise float64
		want  Kind
	}{
		{-0.9, Water},
		{-0.2000001, Water},
		{-0.2, Dirt},
		{-0.01, Dirt},
		{0, Grass},
		{0.7, Grass},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.noise), "noise %v", tt.noise)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "water", Water.String())
	assert.Equal(t, "grass", Grass.String())
	assert.Equal(t, "Kind(7)", Kind(7).String())
	assert.NotEqual(t, Water.Color(), Grass.Color())
}

func TestGenerateDeterministic(t *testing.T) {
	opts := DefaultOptions()
	opts.Seed = 42

	a, err := Generate(opts)
	require.NoError(t, err)
	b, err := Generate(opts)
	require.NoError(t, err)
	assert.Equal(t, a.Tiles, b.Tiles)

	opts.Seed = 43
	c, err := Generate(opts)
	require.NoError(t, err)
	assert.NotEqual(t, a.Tiles, c.Tiles)
}

func TestGenerateTiles(t *testing.T) {
	m, err := Generate(Options{Width: 7, Height: 5, Seed: 1, Bounds: 5})
	require.NoError(t, err)
	require.Len(t, m.Tiles, 35)

	total := 0
	for _, n := range m.Counts() {
		total += n
	}
	assert.Equal(t, 35, total)

	for _, tile := range m.Tiles {
		assert.Equal(t, Classify(tile.Noise), tile.Kind)
		assert.InDelta(t, -tile.Noise/heightScale, tile.Height, 1e-12)

		got, ok := m.At(tile.Q, tile.R)
		require.True(t, ok)
		assert.Equal(t, tile, got)
	}

	_, ok := m.At(-10, 0)
	assert.False(t, ok)
	_, ok = m.At(0, 5)
	assert.False(t, ok)
}

func TestGenerateInvalid(t *testing.T) {
	_, err := Generate(Options{Width: 0, Height: 3, Bounds: 1})
	assert.ErrorIs(t, err, ErrInvalidSize)
	_, err = Generate(Options{Width: 3, Height: 3})
	assert.ErrorIs(t, err, ErrInvalidBounds)
}

func TestOffsetAxialRoundTrip(t *testing.T) {
	for row := -3; row < 4; row++ {
		for col := -3; col < 4; col++ {
			q, r := OffsetToAxial(col, row)
			c, rr := AxialToOffset(q, r)
			assert.Equal(t, col, c)
			assert.Equal(t, row, rr)
		}
	}
}
