package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBiomeFor(t *testing.T) {
	assert.Same(t, BiomeOcean, BiomeFor(-1))
	assert.Same(t, BiomeDesert, BiomeFor(-0.3))
	assert.Same(t, BiomePlains, BiomeFor(0))
	assert.Same(t, BiomeHills, BiomeFor(0.4))
	assert.Same(t, BiomeMountains, BiomeFor(1))
	require.Len(t, biomeBounds, len(Biomes)-1)
}

func TestReliefIsContinuous(t *testing.T) {
	prev := relief(-1)
	for v := -1.0; v <= 1.0; v += 0.001 {
		r := relief(v)
		assert.InDelta(t, prev, r, 0.02, "jump at %.3f", v)
		prev = r
	}
	assert.Equal(t, BiomeOcean.Relief, relief(-1))
	assert.Equal(t, BiomeMountains.Relief, relief(1))
}

func TestNoiseGeneratorUsesBiomeSurface(t *testing.T) {
	opts := DefaultNoiseOptions(11)
	opts.Caves = false
	g, err := NewNoiseGenerator(opts)
	require.NoError(t, err)

	// Every column of a chunk agrees with HeightAt and BiomeAt.
	pos := ChunkPos{X: 2, Z: -3}
	col := g.column(pos.X, pos.Z, 16)
	ox, _, oz := pos.Origin(16)
	for lz := 0; lz < 16; lz++ {
		for lx := 0; lx < 16; lx++ {
			i := lx + lz*16
			assert.Equal(t, g.HeightAt(ox+lx, oz+lz), col.heights[i])
			assert.Same(t, g.BiomeAt(ox+lx, oz+lz), col.biomes[i])
		}
	}
}
