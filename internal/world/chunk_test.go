package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChunkIsEmptyAndDirty(t *testing.T) {
	c := NewChunk(ChunkPos{1, 2, 3}, 16)
	assert.True(t, c.IsEmpty())
	assert.True(t, c.IsDirty())
	assert.Equal(t, Air, c.Block(0, 0, 0))
	assert.Equal(t, 16, c.Size())
}

func TestBlockOutOfBoundsIsAir(t *testing.T) {
	c := NewChunk(ChunkPos{}, 4)
	c.SetBlock(0, 0, 0, BlockStone)
	for _, p := range [][3]int{{-1, 0, 0}, {4, 0, 0}, {0, -1, 0}, {0, 4, 0}, {0, 0, -1}, {0, 0, 4}} {
		assert.Equal(t, Air, c.Block(p[0], p[1], p[2]), "pos %v", p)
	}
}

func TestSetBlockOutOfBoundsIgnored(t *testing.T) {
	c := NewChunk(ChunkPos{}, 4)
	c.SetClean()
	assert.False(t, c.SetBlock(4, 0, 0, BlockStone))
	assert.False(t, c.IsDirty())
	assert.True(t, c.IsEmpty())
}

func TestSetBlockMarksDirtyAndCounts(t *testing.T) {
	c := NewChunk(ChunkPos{}, 4)
	c.SetClean()

	require.True(t, c.SetBlock(1, 2, 3, BlockDirt))
	assert.True(t, c.IsDirty())
	assert.Equal(t, BlockDirt, c.Block(1, 2, 3))
	assert.Equal(t, 1, c.NonAirCount())

	c.SetClean()
	assert.False(t, c.SetBlock(1, 2, 3, BlockDirt), "same value is not a change")
	assert.False(t, c.IsDirty())

	require.True(t, c.SetBlock(1, 2, 3, Air))
	assert.True(t, c.IsEmpty())
	assert.True(t, c.IsDirty())
}

func TestSparseAndMaterializedAirBehaveAlike(t *testing.T) {
	sparse := NewChunk(ChunkPos{}, 4)
	dense, err := NewChunkFromBlocks(ChunkPos{}, 4, make([]BlockID, 64))
	require.NoError(t, err)

	assert.Equal(t, sparse.IsEmpty(), dense.IsEmpty())
	for y := 0; y < 4; y++ {
		for z := 0; z < 4; z++ {
			for x := 0; x < 4; x++ {
				assert.Equal(t, sparse.Block(x, y, z), dense.Block(x, y, z))
			}
		}
	}
	assert.True(t, dense.Snapshot().IsEmpty())
}

func TestNewChunkFromBlocksRejectsWrongLength(t *testing.T) {
	_, err := NewChunkFromBlocks(ChunkPos{}, 4, make([]BlockID, 10))
	require.Error(t, err)
}

func TestNewChunkFromBlocksIndexOrder(t *testing.T) {
	size := 4
	blocks := make([]BlockID, size*size*size)
	blocks[1+2*size+3*size*size] = BlockGlass
	c, err := NewChunkFromBlocks(ChunkPos{}, size, blocks)
	require.NoError(t, err)
	assert.Equal(t, BlockGlass, c.Block(1, 3, 2))
	assert.Equal(t, 1, c.NonAirCount())
}

func TestSnapshotIsImmutableAfterEdit(t *testing.T) {
	c := NewChunk(ChunkPos{}, 4)
	c.SetBlock(0, 0, 0, BlockStone)

	snap := c.Snapshot()
	c.SetBlock(0, 0, 0, BlockDirt)
	c.SetBlock(1, 1, 1, BlockSand)

	assert.Equal(t, BlockStone, snap.Block(0, 0, 0))
	assert.Equal(t, Air, snap.Block(1, 1, 1))
	assert.Equal(t, BlockDirt, c.Block(0, 0, 0))

	// A second snapshot sees the edits and is again isolated.
	snap2 := c.Snapshot()
	c.SetBlock(1, 1, 1, Air)
	assert.Equal(t, BlockSand, snap2.Block(1, 1, 1))
}

func TestChunkBounds(t *testing.T) {
	min, max := ChunkBounds(ChunkPos{-1, 0, 2}, 16)
	assert.Equal(t, float32(-16), min.X())
	assert.Equal(t, float32(0), min.Y())
	assert.Equal(t, float32(32), min.Z())
	assert.Equal(t, float32(0), max.X())
	assert.Equal(t, float32(16), max.Y())
	assert.Equal(t, float32(48), max.Z())
}

func TestMeshInterleavedLayout(t *testing.T) {
	m := &Mesh{Vertices: []Vertex{{AO: 0.5}}, Indices: []uint32{0, 0, 0}}
	m.Vertices[0].Position[1] = 2
	m.Vertices[0].AtlasUV[1] = 0.25
	f := m.Interleaved()
	require.Len(t, f, VertexFloats)
	assert.Equal(t, float32(2), f[OffsetPosition+1])
	assert.Equal(t, float32(0.5), f[OffsetAO])
	assert.Equal(t, float32(0.25), f[OffsetAtlasUV+1])
	assert.Equal(t, 1, m.TriangleCount())

	var empty *Mesh
	assert.True(t, empty.IsEmpty())
	assert.Zero(t, empty.TriangleCount())
}
