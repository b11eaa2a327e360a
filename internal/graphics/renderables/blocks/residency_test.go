package blocks

import (
	"testing"

	"voxelforge/internal/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGPU struct {
	next     uint32
	live     map[uint32]int32
	uploaded []int32
}

func newFakeGPU() *fakeGPU {
	return &fakeGPU{live: map[uint32]int32{}}
}

func (f *fakeGPU) upload(m *world.Mesh) gpuMesh {
	f.next++
	n := int32(len(m.Indices))
	f.live[f.next] = n
	f.uploaded = append(f.uploaded, n)
	return gpuMesh{vao: f.next, indexCount: n}
}

func (f *fakeGPU) release(g gpuMesh) {
	delete(f.live, g.vao)
}

func meshOf(quads int) *world.Mesh {
	return &world.Mesh{
		Vertices: make([]world.Vertex, quads*4),
		Indices:  make([]uint32, quads*6),
	}
}

func TestFlushNearestFirstWithinBudget(t *testing.T) {
	gpu := newFakeGPU()
	r := newResidency(gpu)
	r.queue(world.ChunkPos{X: 3}, meshOf(3))
	r.queue(world.ChunkPos{X: 1}, meshOf(1))
	r.queue(world.ChunkPos{X: 2}, meshOf(2))

	assert.Equal(t, 2, r.flush(2, world.ChunkPos{}))
	assert.Equal(t, []int32{6, 12}, gpu.uploaded)
	assert.Len(t, r.pending, 1)

	_, ok := r.lookup(world.ChunkPos{X: 3})
	assert.False(t, ok)
	assert.Equal(t, 1, r.flush(0, world.ChunkPos{}))
	g, ok := r.lookup(world.ChunkPos{X: 3})
	require.True(t, ok)
	assert.Equal(t, int32(18), g.indexCount)
}

func TestQueueReplacesPendingMesh(t *testing.T) {
	gpu := newFakeGPU()
	r := newResidency(gpu)
	pos := world.ChunkPos{Y: 1}
	r.queue(pos, meshOf(1))
	r.queue(pos, meshOf(4))
	r.flush(0, pos)
	assert.Equal(t, []int32{24}, gpu.uploaded)
}

func TestRebuildReleasesOldBuffers(t *testing.T) {
	gpu := newFakeGPU()
	r := newResidency(gpu)
	pos := world.ChunkPos{}
	r.queue(pos, meshOf(1))
	r.flush(0, pos)
	r.queue(pos, meshOf(2))
	r.flush(0, pos)
	assert.Len(t, gpu.live, 1)

	// An edit that empties the chunk leaves nothing resident.
	r.queue(pos, &world.Mesh{})
	r.flush(0, pos)
	assert.Empty(t, gpu.live)
	_, ok := r.lookup(pos)
	assert.False(t, ok)
}

func TestDropAndReleaseAll(t *testing.T) {
	gpu := newFakeGPU()
	r := newResidency(gpu)
	a, b, c := world.ChunkPos{X: 1}, world.ChunkPos{X: 2}, world.ChunkPos{X: 3}
	r.queue(a, meshOf(1))
	r.queue(b, meshOf(1))
	r.flush(0, a)
	r.queue(c, meshOf(1))

	r.drop(a)
	r.drop(c)
	assert.Len(t, gpu.live, 1)
	assert.Empty(t, r.pending)

	r.queue(c, meshOf(1))
	r.releaseAll()
	assert.Empty(t, gpu.live)
	assert.Empty(t, r.pending)
	assert.Zero(t, r.flush(0, a))
}
