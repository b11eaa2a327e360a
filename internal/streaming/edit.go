package streaming

import (
	"fmt"

	"voxelforge/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Block returns the block at world coordinates, Air when its chunk is not loaded.
func (m *Manager) Block(wx, wy, wz int) world.BlockID {
	pos, lx, ly, lz := world.ChunkPosAt(wx, wy, wz, m.opts.ChunkSize)
	e := m.chunks[pos]
	if e == nil || e.chunk == nil {
		return world.Air
	}
	return e.chunk.Block(lx, ly, lz)
}

// SetBlock edits the block at world coordinates. It reports false when the chunk
// is not loaded or the block already had that value. The chunk is re-meshed, and
// so is each face neighbour whose shared boundary the edited cell touches. When
// the edit changes whether the cell occludes, the edge and corner neighbours it
// touches are re-meshed as well, since their AO samples it.
func (m *Manager) SetBlock(wx, wy, wz int, id world.BlockID) bool {
	if !m.reg.Has(id) {
		panic(fmt.Sprintf("streaming: SetBlock with unknown block id %d", id))
	}
	pos, lx, ly, lz := world.ChunkPosAt(wx, wy, wz, m.opts.ChunkSize)
	e := m.chunks[pos]
	if e == nil || e.chunk == nil {
		return false
	}
	before := e.chunk.Block(lx, ly, lz)
	if !e.chunk.SetBlock(lx, ly, lz, id) {
		return false
	}
	m.markDirty(pos, e)

	occlusion := m.reg.Properties(before).Opaque() != m.reg.Properties(id).Opaque()
	for _, d := range boundaryNeighbours([3]int{lx, ly, lz}, m.opts.ChunkSize) {
		if occlusion || isFaceOffset(d) {
			m.touch(pos.Add(d[0], d[1], d[2]))
		}
	}
	return true
}

// boundaryNeighbours returns the offsets of the chunks sharing a face, edge or
// corner with the local cell.
func boundaryNeighbours(local [3]int, size int) [][3]int {
	var steps [3][]int
	for axis, v := range local {
		steps[axis] = []int{0}
		if v == 0 {
			steps[axis] = append(steps[axis], -1)
		}
		if v == size-1 {
			steps[axis] = append(steps[axis], 1)
		}
	}
	var out [][3]int
	for _, dy := range steps[1] {
		for _, dz := range steps[2] {
			for _, dx := range steps[0] {
				if dx != 0 || dy != 0 || dz != 0 {
					out = append(out, [3]int{dx, dy, dz})
				}
			}
		}
	}
	return out
}

// neighbourOffsets lists every chunk sharing a face, edge or corner.
var neighbourOffsets = boundaryNeighbours([3]int{}, 1)

func isFaceOffset(d [3]int) bool {
	return abs(d[0])+abs(d[1])+abs(d[2]) == 1
}

// Raycast walks loaded blocks from origin along dir. Air and liquids are passed through.
func (m *Manager) Raycast(origin, dir mgl32.Vec3, maxDist float32) (world.RaycastHit, bool) {
	return world.Raycast(origin, dir, maxDist, func(x, y, z int) bool {
		id := m.Block(x, y, z)
		return id != world.Air && !m.reg.Properties(id).Liquid
	})
}
