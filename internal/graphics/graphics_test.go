package graphics

import (
	"io/fs"
	"testing"

	"voxelforge/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkAttribsCoverVertex(t *testing.T) {
	next := 0
	for i, a := range ChunkAttribs {
		assert.Equal(t, uint32(i), a.Location)
		assert.Equal(t, next, a.Offset, "attribute %d must follow the previous one", i)
		next += int(a.Size)
	}
	assert.Equal(t, world.VertexFloats, next)
	assert.Equal(t, int32(56), int32(ChunkStride))
}

func TestEmbeddedShaders(t *testing.T) {
	for _, name := range []string{"chunk", "line", "crosshair", "font"} {
		for _, ext := range []string{".vert", ".frag"} {
			src, err := fs.ReadFile(Shaders, "shaders/"+name+ext)
			require.NoError(t, err)
			assert.Contains(t, string(src), "#version 410 core")
		}
	}
}

func TestCamera(t *testing.T) {
	c := NewCamera(800, 400)
	assert.Equal(t, float32(2), c.AspectRatio)
	c.SetViewport(0, 0)
	assert.Equal(t, float32(2), c.AspectRatio, "minimised window keeps the last aspect")

	c.FitFarPlane(8, 16)
	assert.Equal(t, float32(240), c.FarPlane)
	c.FitFarPlane(1, 4)
	assert.Equal(t, float32(100), c.FarPlane)

	// A point on the near plane centre projects to NDC depth -1.
	clip := c.GetProjectionMatrix().Mul4x1(mgl32.Vec4{0, 0, -c.NearPlane, 1})
	assert.InDelta(t, -1, clip[2]/clip[3], 1e-4)
}

func TestBakeFont(t *testing.T) {
	fa := DefaultFont()
	require.Len(t, fa.Characters, 95)
	a := fa.Characters['A']
	assert.Equal(t, 7, a.Advance)
	assert.Positive(t, a.Width)

	b := fa.Image.Bounds()
	for r, fc := range fa.Characters {
		assert.LessOrEqual(t, int(fc.AtlasX+fc.Width), b.Dx(), "glyph %q", r)
		assert.LessOrEqual(t, int(fc.AtlasY+fc.Height), b.Dy(), "glyph %q", r)
	}

	// 'A' has ink somewhere in its cell.
	ink := false
	for y := int(a.AtlasY); y < int(a.AtlasY+a.Height); y++ {
		for x := int(a.AtlasX); x < int(a.AtlasX+a.Width); x++ {
			ink = ink || fa.Image.AlphaAt(x, y).A > 0
		}
	}
	assert.True(t, ink)
}

func TestTextLayout(t *testing.T) {
	fr := &FontRenderer{atlas: DefaultFont()}
	w, h := fr.Measure("abc", 2)
	assert.Equal(t, float32(42), w)
	assert.Equal(t, float32(26), h)

	v := fr.LinesVertices([]string{"ab", "", "c"}, 10, 20, 1)
	// Six vertices of four floats per glyph.
	assert.Len(t, v, 3*6*4)
	// The third glyph sits two lines below the first.
	assert.Equal(t, v[1]+2*float32(fr.atlas.LineHeight), v[2*24+1])
	assert.Equal(t, v[0], v[2*24])

	// Unknown runes fall back to '?'.
	w, _ = fr.Measure("é", 1)
	assert.Equal(t, float32(7), w)
}
