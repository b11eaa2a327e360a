package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// RaycastHit describes the first solid cell a ray enters.
type RaycastHit struct {
	Block    [3]int // hit cell
	Adjacent [3]int // last empty cell before the hit, where a placed block would go
	Face     Face   // face of Block the ray entered through
	Distance float32
}

// Raycast walks the voxel grid from origin along dir (DDA traversal) and returns the
// first cell for which solid reports true within maxDist. Cell (x,y,z) spans [x,x+1).
// The cell containing origin is not tested.
func Raycast(origin, dir mgl32.Vec3, maxDist float32, solid func(x, y, z int) bool) (RaycastHit, bool) {
	if dir.Len() == 0 || maxDist <= 0 {
		return RaycastHit{}, false
	}
	d := dir.Normalize()

	cell := [3]int{
		int(math.Floor(float64(origin[0]))),
		int(math.Floor(float64(origin[1]))),
		int(math.Floor(float64(origin[2]))),
	}

	var step [3]int
	var tMax, tDelta [3]float64
	for i := 0; i < 3; i++ {
		di := float64(d[i])
		oi := float64(origin[i])
		switch {
		case di > 0:
			step[i] = 1
			tDelta[i] = 1 / di
			tMax[i] = (float64(cell[i]+1) - oi) / di
		case di < 0:
			step[i] = -1
			tDelta[i] = -1 / di
			tMax[i] = (oi - float64(cell[i])) / -di
		default:
			tDelta[i] = math.Inf(1)
			tMax[i] = math.Inf(1)
		}
	}

	limit := float64(maxDist)
	for {
		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}
		dist := tMax[axis]
		if dist > limit {
			return RaycastHit{}, false
		}

		prev := cell
		cell[axis] += step[axis]
		tMax[axis] += tDelta[axis]

		if solid(cell[0], cell[1], cell[2]) {
			face := Face(axis * 2)
			if step[axis] > 0 {
				face = face.Opposite()
			}
			return RaycastHit{
				Block:    cell,
				Adjacent: prev,
				Face:     face,
				Distance: float32(dist),
			}, true
		}
	}
}
