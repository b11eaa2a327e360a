package streaming

import (
	"sort"

	"voxelforge/internal/culling"
	"voxelforge/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// VisibleChunk is a meshed chunk selected for drawing.
type VisibleChunk struct {
	Pos  world.ChunkPos
	Mesh *world.Mesh
	// DistanceSq is from the eye to the chunk centre, in world units.
	DistanceSq float32
}

// Visible returns the chunks with a non-empty mesh whose bounds intersect the
// view frustum, nearest first. A chunk waiting for a rebuild keeps its previous mesh.
func (m *Manager) Visible(viewProj mgl32.Mat4, eye mgl32.Vec3) []VisibleChunk {
	candidates := make([]VisibleChunk, 0, len(m.chunks))
	boxes := make([]culling.AABB, 0, len(m.chunks))
	for pos, e := range m.chunks {
		if e.chunk == nil {
			continue
		}
		mesh := e.chunk.Mesh()
		if mesh.IsEmpty() {
			continue
		}
		min, max := e.chunk.Bounds()
		center := min.Add(max).Mul(0.5)
		candidates = append(candidates, VisibleChunk{
			Pos:        pos,
			Mesh:       mesh,
			DistanceSq: center.Sub(eye).LenSqr(),
		})
		boxes = append(boxes, culling.AABB{Min: min, Max: max})
	}

	keep := culling.Cull(culling.NewFrustum(viewProj), boxes)
	out := make([]VisibleChunk, 0, len(keep))
	for _, i := range keep {
		out = append(out, candidates[i])
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DistanceSq != out[j].DistanceSq {
			return out[i].DistanceSq < out[j].DistanceSq
		}
		return out[i].Pos.Less(out[j].Pos)
	})
	return out
}
