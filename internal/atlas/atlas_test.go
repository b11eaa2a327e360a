package atlas

import (
	"bytes"
	"image/png"
	"testing"

	"voxelforge/internal/registry"
	"voxelforge/internal/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tileAlpha(a *Atlas, reg *registry.Registry, id world.BlockID) (holes, opaque, partial int) {
	t := reg.Properties(id).Tile
	r := a.TileRect(t[0], t[1])
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			switch a.Image.RGBAAt(x, y).A {
			case 0:
				holes++
			case 255:
				opaque++
			default:
				partial++
			}
		}
	}
	return
}

func TestGenerateSize(t *testing.T) {
	a := Generate(registry.Default())
	assert.Equal(t, registry.AtlasColumns*TileSize, a.Image.Bounds().Dx())
	assert.Equal(t, registry.AtlasRows*TileSize, a.Image.Bounds().Dy())
	assert.Len(t, a.Image.Pix, a.Image.Bounds().Dx()*a.Image.Bounds().Dy()*4)
}

func TestGenerateAlpha(t *testing.T) {
	reg := registry.Default()
	a := Generate(reg)

	_, opaque, partial := tileAlpha(a, reg, world.BlockStone)
	assert.Equal(t, TileSize*TileSize, opaque)
	assert.Zero(t, partial)

	holes, opaque, partial := tileAlpha(a, reg, world.BlockLeaves)
	assert.Positive(t, holes, "leaves need cutout holes")
	assert.Positive(t, opaque)
	assert.Zero(t, partial)

	_, _, partial = tileAlpha(a, reg, world.BlockGlass)
	assert.Equal(t, TileSize*TileSize, partial)
	glass := reg.Properties(world.BlockGlass).Tile
	assert.Equal(t, uint8(glassAlpha), a.Image.RGBAAt(glass[0]*TileSize+3, glass[1]*TileSize+3).A)

	_, _, partial = tileAlpha(a, reg, world.BlockWater)
	assert.Equal(t, TileSize*TileSize, partial)
}

func TestGenerateAirTileIsEmpty(t *testing.T) {
	a := Generate(registry.Default())
	for y := 0; y < TileSize; y++ {
		for x := 0; x < TileSize; x++ {
			require.Zero(t, a.Image.RGBAAt(x, y).A)
		}
	}
}

func TestGenerateSolidTilesHaveColour(t *testing.T) {
	reg := registry.Default()
	a := Generate(reg)
	for _, id := range reg.IDs() {
		if id == world.Air {
			continue
		}
		tile := reg.Properties(id).Tile
		c := a.Image.RGBAAt(tile[0]*TileSize+5, tile[1]*TileSize+6)
		assert.NotZero(t, uint32(c.R)+uint32(c.G)+uint32(c.B), reg.Properties(id).Name)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	reg := registry.Default()
	assert.Equal(t, Generate(reg).Image.Pix, Generate(reg).Image.Pix)
}

func TestScaledAndPNG(t *testing.T) {
	a := Generate(registry.Default())
	s := a.Scaled(4)
	assert.Equal(t, a.Image.Bounds().Dx()*4, s.Bounds().Dx())
	// Nearest neighbour keeps each texel as a 4x4 block.
	assert.Equal(t, a.Image.RGBAAt(20, 3), s.RGBAAt(83, 15))
	assert.Equal(t, a.Image.RGBAAt(20, 3), s.RGBAAt(80, 12))

	var buf bytes.Buffer
	require.NoError(t, a.WritePNG(&buf, 2))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, a.Image.Bounds().Dx()*2, img.Bounds().Dx())
}
