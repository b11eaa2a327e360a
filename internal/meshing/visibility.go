package meshing

import (
	"voxelforge/internal/registry"
	"voxelforge/internal/world"
)

// Exposed reports whether the given face of the block at local (x,y,z) must be drawn.
//
// Air is never drawn. A face is drawn when the cell across it is unloaded, air, or
// transparent, except that two blocks of the same self-culling type hide their
// shared face. A face against an opaque block is always hidden.
func Exposed(reg *registry.Registry, nb *Neighborhood, x, y, z int, face world.Face) bool {
	id, _ := nb.Block(x, y, z)
	if id == world.Air {
		return false
	}
	dx, dy, dz := face.Offset()
	other, loaded := nb.Block(x+dx, y+dy, z+dz)
	return exposedAgainst(reg, id, other, loaded)
}

func exposedAgainst(reg *registry.Registry, id, other world.BlockID, loaded bool) bool {
	if !loaded || other == world.Air {
		return true
	}
	op := reg.Properties(other)
	if !op.Transparent {
		return false
	}
	if other == id && reg.Properties(id).SelfCulling {
		return false
	}
	return true
}

// CountExposedFaces returns the number of unit faces a naive mesher would emit for
// the centre chunk. Greedy meshing covers exactly this area.
func CountExposedFaces(reg *registry.Registry, nb *Neighborhood) int {
	center := nb.Center()
	if center.IsEmpty() {
		return 0
	}
	s := nb.Size()
	count := 0
	for y := 0; y < s; y++ {
		for z := 0; z < s; z++ {
			for x := 0; x < s; x++ {
				for _, f := range world.AllFaces {
					if Exposed(reg, nb, x, y, z, f) {
						count++
					}
				}
			}
		}
	}
	return count
}
