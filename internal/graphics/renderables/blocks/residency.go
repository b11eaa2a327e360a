package blocks

import (
	"sort"

	"voxelforge/internal/world"
)

// gpuMesh is one chunk's geometry resident on the GPU.
type gpuMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// uploader moves meshes to and from the GPU.
type uploader interface {
	upload(m *world.Mesh) gpuMesh
	release(g gpuMesh)
}

// residency tracks which chunk meshes are on the GPU. Meshes arrive from the
// chunk manager faster than they should be uploaded, so they wait in pending
// and are flushed nearest first under a per-frame budget.
type residency struct {
	pending  map[world.ChunkPos]*world.Mesh
	resident map[world.ChunkPos]gpuMesh
	gpu      uploader
}

func newResidency(gpu uploader) *residency {
	return &residency{
		pending:  make(map[world.ChunkPos]*world.Mesh),
		resident: make(map[world.ChunkPos]gpuMesh),
		gpu:      gpu,
	}
}

// queue replaces any mesh still waiting for pos.
func (r *residency) queue(pos world.ChunkPos, m *world.Mesh) {
	r.pending[pos] = m
}

// drop forgets pos entirely.
func (r *residency) drop(pos world.ChunkPos) {
	delete(r.pending, pos)
	if g, ok := r.resident[pos]; ok {
		r.gpu.release(g)
		delete(r.resident, pos)
	}
}

// flush uploads up to budget pending meshes, nearest to focus first; a budget
// of zero or less uploads everything. It returns the number processed.
func (r *residency) flush(budget int, focus world.ChunkPos) int {
	if len(r.pending) == 0 {
		return 0
	}
	order := make([]world.ChunkPos, 0, len(r.pending))
	for pos := range r.pending {
		order = append(order, pos)
	}
	sort.Slice(order, func(i, j int) bool {
		di, dj := order[i].DistanceSq(focus), order[j].DistanceSq(focus)
		if di != dj {
			return di < dj
		}
		return order[i].Less(order[j])
	})
	if budget > 0 && len(order) > budget {
		order = order[:budget]
	}
	for _, pos := range order {
		m := r.pending[pos]
		delete(r.pending, pos)
		if old, ok := r.resident[pos]; ok {
			r.gpu.release(old)
			delete(r.resident, pos)
		}
		if !m.IsEmpty() {
			r.resident[pos] = r.gpu.upload(m)
		}
	}
	return len(order)
}

func (r *residency) lookup(pos world.ChunkPos) (gpuMesh, bool) {
	g, ok := r.resident[pos]
	return g, ok
}

func (r *residency) releaseAll() {
	for pos, g := range r.resident {
		r.gpu.release(g)
		delete(r.resident, pos)
	}
	clear(r.pending)
}
