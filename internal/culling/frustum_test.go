package culling

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

// lookDownNegZ is a camera at the origin looking along -Z with a 90° fov.
func lookDownNegZ() mgl32.Mat4 {
	proj := mgl32.Perspective(mgl32.DegToRad(90), 1, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	return proj.Mul4(view)
}

func unitBox(center mgl32.Vec3) AABB {
	h := mgl32.Vec3{0.5, 0.5, 0.5}
	return AABB{Min: center.Sub(h), Max: center.Add(h)}
}

func TestIntersectsAABB(t *testing.T) {
	f := NewFrustum(lookDownNegZ())

	cases := []struct {
		name   string
		center mgl32.Vec3
		want   bool
	}{
		{"ahead", mgl32.Vec3{0, 0, -10}, true},
		{"behind", mgl32.Vec3{0, 0, 10}, false},
		{"far left", mgl32.Vec3{-50, 0, -10}, false},
		{"far right", mgl32.Vec3{50, 0, -10}, false},
		{"above", mgl32.Vec3{0, 50, -10}, false},
		{"beyond far plane", mgl32.Vec3{0, 0, -200}, false},
		{"straddling the left plane", mgl32.Vec3{-10.2, 0, -10}, true},
	}
	for _, c := range cases {
		b := unitBox(c.center)
		assert.Equal(t, c.want, f.IntersectsAABB(b.Min, b.Max), c.name)
	}
}

func TestMarginKeepsNearMisses(t *testing.T) {
	f := NewFrustum(lookDownNegZ())
	b := unitBox(mgl32.Vec3{0, 0, 1.2})
	assert.False(t, f.IntersectsAABB(b.Min, b.Max))
	f.Margin = 1
	assert.True(t, f.IntersectsAABB(b.Min, b.Max))
}

func TestContainsPoint(t *testing.T) {
	f := NewFrustum(lookDownNegZ())
	assert.True(t, f.ContainsPoint(mgl32.Vec3{0, 0, -5}))
	assert.False(t, f.ContainsPoint(mgl32.Vec3{0, 0, 5}))
}

func TestCullKeepsInputOrder(t *testing.T) {
	f := NewFrustum(lookDownNegZ())
	boxes := []AABB{
		unitBox(mgl32.Vec3{0, 0, 10}),
		unitBox(mgl32.Vec3{1, 0, -20}),
		unitBox(mgl32.Vec3{0, -90, -5}),
		unitBox(mgl32.Vec3{0, 0, -3}),
	}
	assert.Equal(t, []int{1, 3}, Cull(f, boxes))
	assert.Empty(t, Cull(f, nil))
}

func TestNearEqual(t *testing.T) {
	a := lookDownNegZ()
	b := a
	b[5] += 1e-6
	assert.True(t, NearEqual(a, b, 1e-4))
	b[5] += 1
	assert.False(t, NearEqual(a, b, 1e-4))
}
