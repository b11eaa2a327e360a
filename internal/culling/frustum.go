package culling

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Plane is a*x + b*y + c*z + d = 0 with a unit normal pointing into the frustum.
type Plane struct {
	A, B, C, D float32
}

// Distance returns the signed distance from p to the plane.
func (pl Plane) Distance(p mgl32.Vec3) float32 {
	return pl.A*p.X() + pl.B*p.Y() + pl.C*p.Z() + pl.D
}

// Frustum is the six clip planes of a view-projection matrix,
// in order left, right, bottom, top, near, far.
type Frustum struct {
	Planes [6]Plane
	// Margin inflates every box before testing, in world units.
	Margin float32
}

// NewFrustum extracts the planes from a combined projection*view matrix.
func NewFrustum(viewProj mgl32.Mat4) Frustum {
	// mgl32 matrices are column-major; row i is m[i], m[i+4], m[i+8], m[i+12].
	row := func(i int) [4]float32 {
		return [4]float32{viewProj[i], viewProj[i+4], viewProj[i+8], viewProj[i+12]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)
	combine := func(a [4]float32, sign float32, b [4]float32) Plane {
		return normalize(Plane{a[0] + sign*b[0], a[1] + sign*b[1], a[2] + sign*b[2], a[3] + sign*b[3]})
	}

	var f Frustum
	f.Planes[0] = combine(r3, +1, r0)
	f.Planes[1] = combine(r3, -1, r0)
	f.Planes[2] = combine(r3, +1, r1)
	f.Planes[3] = combine(r3, -1, r1)
	f.Planes[4] = combine(r3, +1, r2)
	f.Planes[5] = combine(r3, -1, r2)
	return f
}

func normalize(p Plane) Plane {
	l := float32(math.Sqrt(float64(p.A*p.A + p.B*p.B + p.C*p.C)))
	if l == 0 {
		return p
	}
	return Plane{p.A / l, p.B / l, p.C / l, p.D / l}
}

// IntersectsAABB reports whether the box is at least partly inside the frustum.
// It tests the box corner furthest along each plane normal, so it may keep boxes
// near frustum corners that are actually outside.
func (f Frustum) IntersectsAABB(min, max mgl32.Vec3) bool {
	if f.Margin != 0 {
		m := mgl32.Vec3{f.Margin, f.Margin, f.Margin}
		min, max = min.Sub(m), max.Add(m)
	}
	for _, p := range f.Planes {
		v := max
		if p.A < 0 {
			v[0] = min[0]
		}
		if p.B < 0 {
			v[1] = min[1]
		}
		if p.C < 0 {
			v[2] = min[2]
		}
		if p.Distance(v) < 0 {
			return false
		}
	}
	return true
}

// ContainsPoint reports whether p is inside all six planes.
func (f Frustum) ContainsPoint(p mgl32.Vec3) bool {
	for _, pl := range f.Planes {
		if pl.Distance(p) < -f.Margin {
			return false
		}
	}
	return true
}

// AABB is an axis-aligned box.
type AABB struct {
	Min, Max mgl32.Vec3
}

// Cull returns the indices of the boxes that intersect the frustum, in input order.
func Cull(f Frustum, boxes []AABB) []int {
	out := make([]int, 0, len(boxes))
	for i, b := range boxes {
		if f.IntersectsAABB(b.Min, b.Max) {
			out = append(out, i)
		}
	}
	return out
}

// NearEqual compares two matrices within epsilon. Callers use it to skip
// rebuilding planes when the camera has not moved.
func NearEqual(a, b mgl32.Mat4, epsilon float32) bool {
	for i := range a {
		if float32(math.Abs(float64(a[i]-b[i]))) > epsilon {
			return false
		}
	}
	return true
}
