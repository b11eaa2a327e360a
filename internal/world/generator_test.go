package world

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorsImplementInterface(t *testing.T) {
	var _ Generator = NewFlatGenerator(10)
	var _ Generator = GeneratorFunc(func(ChunkPos, int) ([]BlockID, error) { return nil, nil })
	g, err := NewNoiseGenerator(DefaultNoiseOptions(1))
	require.NoError(t, err)
	var _ Generator = g
	var _ SurfaceSampler = g
	var _ SurfaceSampler = NewFlatGenerator(10)
}

func TestFlatGeneratorLayers(t *testing.T) {
	g := NewFlatGenerator(5)
	blocks, err := g.Generate(ChunkPos{0, 0, 0}, 16)
	require.NoError(t, err)
	c, err := NewChunkFromBlocks(ChunkPos{}, 16, blocks)
	require.NoError(t, err)

	assert.Equal(t, BlockStone, c.Block(0, 1, 0))
	for y := 2; y < 5; y++ {
		assert.Equal(t, BlockDirt, c.Block(3, y, 7), "y=%d", y)
	}
	assert.Equal(t, BlockGrass, c.Block(15, 5, 15))
	assert.Equal(t, Air, c.Block(0, 6, 0))
}

func TestFlatGeneratorSkyChunkIsSparse(t *testing.T) {
	blocks, err := NewFlatGenerator(5).Generate(ChunkPos{0, 1, 0}, 16)
	require.NoError(t, err)
	assert.Nil(t, blocks)
}

// hashBlocks computes a SHA-256 hash of a generated block array.
func hashBlocks(blocks []BlockID) [32]byte {
	h := sha256.New()
	for _, b := range blocks {
		h.Write([]byte{byte(b), byte(b >> 8)})
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func TestNoiseGeneratorDeterminism(t *testing.T) {
	a, err := NewNoiseGenerator(DefaultNoiseOptions(12345))
	require.NoError(t, err)
	b, err := NewNoiseGenerator(DefaultNoiseOptions(12345))
	require.NoError(t, err)

	for _, pos := range []ChunkPos{{0, 1, 0}, {-3, 1, 7}, {5, 0, -2}} {
		ba, err := a.Generate(pos, 16)
		require.NoError(t, err)
		bb, err := b.Generate(pos, 16)
		require.NoError(t, err)
		assert.Equal(t, hashBlocks(ba), hashBlocks(bb), "chunk %v", pos)

		// A cached column must produce the same blocks again.
		again, err := a.Generate(pos, 16)
		require.NoError(t, err)
		assert.Equal(t, hashBlocks(ba), hashBlocks(again), "chunk %v (cached)", pos)
	}
}

func TestNoiseGeneratorSurfaceMatchesHeight(t *testing.T) {
	opts := DefaultNoiseOptions(7)
	opts.Caves = false
	g, err := NewNoiseGenerator(opts)
	require.NoError(t, err)

	h := g.HeightAt(3, 4)
	pos, lx, ly, lz := ChunkPosAt(3, h, 4, 16)
	blocks, err := g.Generate(pos, 16)
	require.NoError(t, err)
	c, err := NewChunkFromBlocks(pos, 16, blocks)
	require.NoError(t, err)

	want := g.BiomeAt(3, 4).Top
	if h <= opts.SeaLevel+1 {
		want = BlockSand
	}
	assert.Equal(t, want, c.Block(lx, ly, lz))

	above, alx, aly, alz := ChunkPosAt(3, h+1, 4, 16)
	ab, err := g.Generate(above, 16)
	require.NoError(t, err)
	ac, err := NewChunkFromBlocks(above, 16, ab)
	require.NoError(t, err)
	assert.Contains(t, []BlockID{Air, BlockWater}, ac.Block(alx, aly, alz))
}

func TestNoiseGeneratorHighSkyIsEmpty(t *testing.T) {
	g, err := NewNoiseGenerator(DefaultNoiseOptions(3))
	require.NoError(t, err)
	blocks, err := g.Generate(ChunkPos{0, 40, 0}, 16)
	require.NoError(t, err)
	assert.Nil(t, blocks)
}

func BenchmarkNoiseGenerate(b *testing.B) {
	g, err := NewNoiseGenerator(DefaultNoiseOptions(1))
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = g.Generate(ChunkPos{X: i % 32, Y: 1, Z: (i / 32) % 32}, 16)
	}
}
