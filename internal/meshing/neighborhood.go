package meshing

import (
	"voxelforge/internal/world"
)

// Neighborhood is the read-only input of a mesh build: the snapshot of one chunk
// plus whatever of its 26 surrounding chunks were loaded when the build was scheduled.
// Lookups use coordinates local to the centre chunk, valid in [-size, 2*size).
type Neighborhood struct {
	size   int
	chunks [27]*world.Snapshot
}

// NewNeighborhood creates a neighbourhood around center with no neighbours loaded.
func NewNeighborhood(center *world.Snapshot) *Neighborhood {
	n := &Neighborhood{size: center.Size()}
	n.chunks[13] = center
	return n
}

// Gather builds a neighbourhood, asking lookup for each surrounding chunk.
// lookup returns nil for chunks that are not loaded.
func Gather(center *world.Snapshot, lookup func(world.ChunkPos) *world.Snapshot) *Neighborhood {
	n := NewNeighborhood(center)
	for dy := -1; dy <= 1; dy++ {
		for dz := -1; dz <= 1; dz++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				if s := lookup(center.Pos.Add(dx, dy, dz)); s != nil {
					n.Set(dx, dy, dz, s)
				}
			}
		}
	}
	return n
}

func slot(dx, dy, dz int) int {
	return (dx + 1) + (dz+1)*3 + (dy+1)*9
}

// Set installs the snapshot of the chunk at offset (dx,dy,dz), each in -1..1.
func (n *Neighborhood) Set(dx, dy, dz int, s *world.Snapshot) {
	n.chunks[slot(dx, dy, dz)] = s
}

// Center returns the snapshot being meshed.
func (n *Neighborhood) Center() *world.Snapshot {
	return n.chunks[13]
}

// Size returns the chunk edge length.
func (n *Neighborhood) Size() int {
	return n.size
}

func (n *Neighborhood) split(c int) (offset, local int) {
	switch {
	case c < 0:
		return -1, c + n.size
	case c >= n.size:
		return 1, c - n.size
	default:
		return 0, c
	}
}

// Block returns the block at local coordinates and whether its chunk is loaded.
// Cells outside the 3x3x3 window report unloaded.
func (n *Neighborhood) Block(x, y, z int) (world.BlockID, bool) {
	s := n.size
	if x < -s || x >= 2*s || y < -s || y >= 2*s || z < -s || z >= 2*s {
		return world.Air, false
	}
	ox, lx := n.split(x)
	oy, ly := n.split(y)
	oz, lz := n.split(z)
	snap := n.chunks[slot(ox, oy, oz)]
	if snap == nil {
		return world.Air, false
	}
	return snap.Block(lx, ly, lz), true
}
