package meshing

import (
	"voxelforge/internal/registry"
	"voxelforge/internal/world"
)

// aoFactors maps an occlusion level (0 = open, 3 = fully enclosed corner) to a brightness factor.
var aoFactors = [4]float32{1.0, 0.8, 0.6, 0.4}

// AOFactor returns the brightness for an occlusion level.
func AOFactor(level uint8) float32 {
	return aoFactors[level]
}

// cornerSigns gives the (u, v) direction of each quad corner, in emission order.
var cornerSigns = [4][2]int{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

// vertexAO combines the two edge neighbours and the diagonal of a corner.
// Two occluding edges hide the diagonal completely.
func vertexAO(side1, side2, corner bool) uint8 {
	if side1 && side2 {
		return 3
	}
	var n uint8
	if side1 {
		n++
	}
	if side2 {
		n++
	}
	if corner {
		n++
	}
	return n
}

func occludes(reg *registry.Registry, nb *Neighborhood, c [3]int) bool {
	id, loaded := nb.Block(c[0], c[1], c[2])
	if !loaded || id == world.Air {
		return false
	}
	return reg.Properties(id).Opaque()
}

// faceAO computes the occlusion level of the four corners of the face whose
// front cell (the air side) is front, with in-plane axes ua and va.
func faceAO(reg *registry.Registry, nb *Neighborhood, front [3]int, ua, va int) [4]uint8 {
	var ao [4]uint8
	for i, s := range cornerSigns {
		s1, s2, c := front, front, front
		s1[ua] += s[0]
		s2[va] += s[1]
		c[ua] += s[0]
		c[va] += s[1]
		ao[i] = vertexAO(occludes(reg, nb, s1), occludes(reg, nb, s2), occludes(reg, nb, c))
	}
	return ao
}
