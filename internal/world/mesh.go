package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

// VertexFloats is the number of float32 per interleaved vertex:
// position(3) normal(3) color(3) ao(1) localUV(2) atlasUV(2).
const VertexFloats = 14

// Attribute offsets within an interleaved vertex, in floats.
const (
	OffsetPosition = 0
	OffsetNormal   = 3
	OffsetColor    = 6
	OffsetAO       = 9
	OffsetLocalUV  = 10
	OffsetAtlasUV  = 12
)

// Vertex is one corner of a meshed quad.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Color    mgl32.Vec3
	AO       float32
	LocalUV  mgl32.Vec2
	AtlasUV  mgl32.Vec2
}

// Mesh is the triangle geometry of one chunk. It is never modified once
// attached to a chunk; rebuilds produce a new Mesh.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// IsEmpty reports whether the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return m == nil || len(m.Indices) == 0
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	return len(m.Indices) / 3
}

// QuadCount returns the number of quads (four vertices each).
func (m *Mesh) QuadCount() int {
	if m == nil {
		return 0
	}
	return len(m.Vertices) / 4
}

// Interleaved packs the vertices into a flat float slice for GPU upload.
func (m *Mesh) Interleaved() []float32 {
	if m == nil {
		return nil
	}
	out := make([]float32, 0, len(m.Vertices)*VertexFloats)
	for _, v := range m.Vertices {
		out = append(out,
			v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.Color[0], v.Color[1], v.Color[2],
			v.AO,
			v.LocalUV[0], v.LocalUV[1],
			v.AtlasUV[0], v.AtlasUV[1],
		)
	}
	return out
}
