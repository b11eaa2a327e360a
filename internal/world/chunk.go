package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultChunkSize is the edge length of a cubic chunk in blocks.
	DefaultChunkSize = 16
	// MaxChunkSize bounds the configurable edge length.
	MaxChunkSize = 64
)

// Chunk is a cubic region of size³ blocks.
//
// Blocks are stored in a flat slice indexed x + z*size + y*size*size. A chunk with no
// non-air blocks keeps a nil slice. Snapshots share the slice; the next write after a
// snapshot copies it first, so a snapshot never observes later edits.
type Chunk struct {
	Pos ChunkPos

	size   int
	blocks []BlockID
	nonAir int
	shared bool
	dirty  bool
	mesh   *Mesh
}

// NewChunk creates an all-air chunk at pos.
func NewChunk(pos ChunkPos, size int) *Chunk {
	return &Chunk{
		Pos:   pos,
		size:  size,
		dirty: true,
	}
}

// NewChunkFromBlocks wraps a dense block array produced by a generator.
// The chunk takes ownership of blocks.
func NewChunkFromBlocks(pos ChunkPos, size int, blocks []BlockID) (*Chunk, error) {
	c := NewChunk(pos, size)
	if blocks == nil {
		return c, nil
	}
	if len(blocks) != size*size*size {
		return nil, fmt.Errorf("chunk %v: got %d blocks, want %d", pos, len(blocks), size*size*size)
	}
	for _, b := range blocks {
		if b != Air {
			c.nonAir++
		}
	}
	if c.nonAir > 0 {
		c.blocks = blocks
	}
	return c, nil
}

// Size returns the edge length in blocks.
func (c *Chunk) Size() int {
	return c.size
}

func (c *Chunk) inBounds(x, y, z int) bool {
	return x >= 0 && x < c.size && y >= 0 && y < c.size && z >= 0 && z < c.size
}

func (c *Chunk) index(x, y, z int) int {
	return x + z*c.size + y*c.size*c.size
}

// Block returns the block at local coordinates, or Air outside the chunk.
func (c *Chunk) Block(x, y, z int) BlockID {
	if c.blocks == nil || !c.inBounds(x, y, z) {
		return Air
	}
	return c.blocks[c.index(x, y, z)]
}

// SetBlock writes a block at local coordinates and marks the chunk dirty.
// Writes outside the chunk and writes that change nothing are ignored.
// It reports whether the chunk changed.
func (c *Chunk) SetBlock(x, y, z int, id BlockID) bool {
	if !c.inBounds(x, y, z) {
		return false
	}
	if c.blocks == nil {
		if id == Air {
			return false
		}
		c.blocks = make([]BlockID, c.size*c.size*c.size)
		c.shared = false
	}

	idx := c.index(x, y, z)
	old := c.blocks[idx]
	if old == id {
		return false
	}

	if c.shared {
		cp := make([]BlockID, len(c.blocks))
		copy(cp, c.blocks)
		c.blocks = cp
		c.shared = false
	}

	c.blocks[idx] = id
	switch {
	case old == Air:
		c.nonAir++
	case id == Air:
		c.nonAir--
	}
	if c.nonAir == 0 {
		c.blocks = nil
	}
	c.dirty = true
	return true
}

// IsEmpty reports whether every block is air.
func (c *Chunk) IsEmpty() bool {
	return c.nonAir == 0
}

// NonAirCount returns the number of non-air blocks.
func (c *Chunk) NonAirCount() int {
	return c.nonAir
}

// IsDirty reports whether the blocks changed since the last mesh build was scheduled.
func (c *Chunk) IsDirty() bool {
	return c.dirty
}

// MarkDirty flags the cached mesh as stale.
func (c *Chunk) MarkDirty() {
	c.dirty = true
}

// SetClean clears the dirty flag.
func (c *Chunk) SetClean() {
	c.dirty = false
}

// Mesh returns the cached mesh, nil if none has been built.
func (c *Chunk) Mesh() *Mesh {
	return c.mesh
}

// SetMesh replaces the cached mesh.
func (c *Chunk) SetMesh(m *Mesh) {
	c.mesh = m
}

// Snapshot returns an immutable view of the current blocks.
func (c *Chunk) Snapshot() *Snapshot {
	if c.blocks != nil {
		c.shared = true
	}
	return &Snapshot{Pos: c.Pos, size: c.size, blocks: c.blocks}
}

// Bounds returns the world-space AABB of the chunk.
func (c *Chunk) Bounds() (min, max mgl32.Vec3) {
	return ChunkBounds(c.Pos, c.size)
}

// ChunkBounds returns the world-space AABB of the chunk at pos.
func ChunkBounds(pos ChunkPos, size int) (min, max mgl32.Vec3) {
	ox, oy, oz := pos.Origin(size)
	min = mgl32.Vec3{float32(ox), float32(oy), float32(oz)}
	s := float32(size)
	max = min.Add(mgl32.Vec3{s, s, s})
	return min, max
}

// Snapshot is a read-only view of a chunk's blocks, safe to share across goroutines.
type Snapshot struct {
	Pos ChunkPos

	size   int
	blocks []BlockID
}

// Size returns the edge length in blocks.
func (s *Snapshot) Size() int {
	return s.size
}

// IsEmpty reports whether the snapshot holds only air.
func (s *Snapshot) IsEmpty() bool {
	return s.blocks == nil
}

// Block returns the block at local coordinates, or Air outside the chunk.
func (s *Snapshot) Block(x, y, z int) BlockID {
	if s.blocks == nil || x < 0 || x >= s.size || y < 0 || y >= s.size || z < 0 || z >= s.size {
		return Air
	}
	return s.blocks[x+z*s.size+y*s.size*s.size]
}
