package meshing

import (
	"voxelforge/internal/profiling"
	"voxelforge/internal/registry"
	"voxelforge/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// faceShade is the directional light multiplier baked into vertex colour.
var faceShade = [6]float32{
	world.FacePosX: 0.8,
	world.FaceNegX: 0.8,
	world.FacePosY: 1.0,
	world.FaceNegY: 0.5,
	world.FacePosZ: 0.6,
	world.FaceNegZ: 0.6,
}

// FaceShade returns the shading multiplier for a face direction.
func FaceShade(f world.Face) float32 {
	return faceShade[f]
}

// Corner emission order around a quad. Positive faces walk the corners counter-clockwise
// seen from outside; negative faces walk them the other way so both are front-facing.
var (
	positiveCycle = [4]uint32{0, 1, 2, 3}
	negativeCycle = [4]uint32{0, 3, 2, 1}
)

// maskCell is one entry of a layer mask. id == Air means no face.
type maskCell struct {
	id world.BlockID
	ao [4]uint8
}

func (c maskCell) uniform() bool {
	return c.ao[0] == c.ao[1] && c.ao[1] == c.ao[2] && c.ao[2] == c.ao[3]
}

// planeAxes returns the in-plane axes for faces perpendicular to axis.
// cross(u, v) points along +axis.
func planeAxes(axis int) (ua, va int) {
	return (axis + 1) % 3, (axis + 2) % 3
}

type builder struct {
	reg    *registry.Registry
	nb     *Neighborhood
	size   int
	origin [3]int
	mesh   *world.Mesh
	mask   []maskCell
}

// BuildGreedyMesh meshes the centre chunk of nb. Coplanar faces with the same block and
// the same corner occlusion are merged into rectangles, growing width before height.
// Vertex positions are in world space. An all-air chunk yields an empty mesh.
func BuildGreedyMesh(reg *registry.Registry, nb *Neighborhood) *world.Mesh {
	defer profiling.Track("meshing.BuildGreedyMesh")()

	center := nb.Center()
	mesh := &world.Mesh{}
	if center.IsEmpty() {
		return mesh
	}

	s := nb.Size()
	ox, oy, oz := center.Pos.Origin(s)
	b := &builder{
		reg:    reg,
		nb:     nb,
		size:   s,
		origin: [3]int{ox, oy, oz},
		mesh:   mesh,
		mask:   make([]maskCell, s*s),
	}
	for _, f := range world.AllFaces {
		b.direction(f)
	}
	return mesh
}

// direction meshes every layer of one face direction.
func (b *builder) direction(face world.Face) {
	s := b.size
	axis := face.Axis()
	ua, va := planeAxes(axis)
	dx, dy, dz := face.Offset()
	step := [3]int{dx, dy, dz}

	for d := 0; d < s; d++ {
		empty := true
		for v := 0; v < s; v++ {
			for u := 0; u < s; u++ {
				var c [3]int
				c[axis], c[ua], c[va] = d, u, v

				cell := maskCell{}
				id, _ := b.nb.Block(c[0], c[1], c[2])
				if id != world.Air {
					front := [3]int{c[0] + step[0], c[1] + step[1], c[2] + step[2]}
					other, loaded := b.nb.Block(front[0], front[1], front[2])
					if exposedAgainst(b.reg, id, other, loaded) {
						cell.id = id
						cell.ao = faceAO(b.reg, b.nb, front, ua, va)
						empty = false
					}
				}
				b.mask[u+v*s] = cell
			}
		}
		if !empty {
			b.mergeLayer(face, d)
		}
	}
}

// mergeLayer sweeps the mask row by row, emitting one quad per maximal rectangle.
func (b *builder) mergeLayer(face world.Face, d int) {
	s := b.size
	for v := 0; v < s; v++ {
		for u := 0; u < s; {
			cell := b.mask[u+v*s]
			if cell.id == world.Air {
				u++
				continue
			}

			w, h := 1, 1
			if cell.uniform() {
				for u+w < s && b.mask[u+w+v*s] == cell {
					w++
				}
			grow:
				for v+h < s {
					for k := 0; k < w; k++ {
						if b.mask[u+k+(v+h)*s] != cell {
							break grow
						}
					}
					h++
				}
			}

			b.emitQuad(face, d, u, v, w, h, cell)
			for dv := 0; dv < h; dv++ {
				for k := 0; k < w; k++ {
					b.mask[u+k+(v+dv)*s] = maskCell{}
				}
			}
			u += w
		}
	}
}

// emitQuad appends four vertices and two triangles for a w×h rectangle whose
// minimum cell is (u, v) in layer d.
func (b *builder) emitQuad(face world.Face, d, u, v, w, h int, cell maskCell) {
	axis := face.Axis()
	ua, va := planeAxes(axis)

	plane := d
	cycle := negativeCycle
	if face.Positive() {
		plane = d + 1
		cycle = positiveCycle
	}

	corners := [4][2]int{{u, v}, {u + w, v}, {u + w, v + h}, {u, v + h}}
	local := [4]mgl32.Vec2{{0, 0}, {float32(w), 0}, {float32(w), float32(h)}, {0, float32(h)}}

	normal := face.Normal()
	shade := faceShade[face]
	color := mgl32.Vec3{shade, shade, shade}
	atlas := b.reg.AtlasOrigin(cell.id)

	base := uint32(len(b.mesh.Vertices))
	for i, c := range corners {
		var p [3]int
		p[axis], p[ua], p[va] = plane, c[0], c[1]
		b.mesh.Vertices = append(b.mesh.Vertices, world.Vertex{
			Position: mgl32.Vec3{
				float32(b.origin[0] + p[0]),
				float32(b.origin[1] + p[1]),
				float32(b.origin[2] + p[2]),
			},
			Normal:  normal,
			Color:   color,
			AO:      aoFactors[cell.ao[i]],
			LocalUV: local[i],
			AtlasUV: atlas,
		})
	}

	// Split along the diagonal through the less occluded pair of corners so the
	// darkening interpolates evenly across the quad.
	first := 0
	if int(cell.ao[0])+int(cell.ao[2]) > int(cell.ao[1])+int(cell.ao[3]) {
		first = 1
	}
	c := func(i int) uint32 { return base + cycle[(first+i)%4] }
	b.mesh.Indices = append(b.mesh.Indices,
		c(0), c(1), c(2),
		c(0), c(2), c(3),
	)
}
