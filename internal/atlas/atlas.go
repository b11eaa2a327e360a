// Package atlas paints the block texture atlas procedurally, one tile per
// registered block, laid out on the registry's atlas grid.
package atlas

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"voxelforge/internal/registry"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/ojrac/opensimplex-go"
	"golang.org/x/image/draw"
)

// TileSize is the edge length of one tile in pixels.
const TileSize = 16

// Alpha values for the see-through block kinds. Cutout tiles are either
// fully opaque or fully clear per pixel.
const (
	glassAlpha  = 180
	liquidAlpha = 160
	cutoutLimit = 0.65
)

// Atlas is the RGBA atlas image plus its grid.
type Atlas struct {
	Image *image.RGBA
	Cols  int
	Rows  int
}

// painter is one seeded noise source shared by every tile.
type painter struct {
	noise opensimplex.Noise32
}

// sample returns noise in [0,1) for a tile pixel; salt decorrelates patterns.
func (p painter) sample(x, y, salt int) float32 {
	const freq = 0.55
	return p.noise.Eval2(float32(x)*freq+float32(salt)*31.7, float32(y)*freq-float32(salt)*17.3)
}

// Generate paints a tile for every registered non-air block. The result is
// deterministic for a given registry.
func Generate(reg *registry.Registry) *Atlas {
	cols, rows := reg.AtlasSize()
	a := &Atlas{
		Image: image.NewRGBA(image.Rect(0, 0, cols*TileSize, rows*TileSize)),
		Cols:  cols,
		Rows:  rows,
	}
	p := painter{noise: opensimplex.NewNormalized32(7)}
	for _, id := range reg.IDs() {
		if id == 0 {
			continue
		}
		a.paintTile(p, reg.Properties(id), int(id))
	}
	return a
}

// TileRect returns the pixel rectangle of the tile at (col,row).
func (a *Atlas) TileRect(col, row int) image.Rectangle {
	origin := image.Pt(col*TileSize, row*TileSize)
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(TileSize, TileSize))}
}

func (a *Atlas) paintTile(p painter, props registry.Properties, salt int) {
	r := a.TileRect(props.Tile[0], props.Tile[1])
	for y := 0; y < TileSize; y++ {
		for x := 0; x < TileSize; x++ {
			c := shade(p, props, x, y, salt)
			a.Image.SetRGBA(r.Min.X+x, r.Min.Y+y, color.RGBA{
				R: channel(c[0]),
				G: channel(c[1]),
				B: channel(c[2]),
				A: alpha(p, props, x, y),
			})
		}
	}
}

// shade picks a pattern from the block's name and falls back to noisy base colour.
func shade(p painter, props registry.Properties, x, y, salt int) mgl32.Vec3 {
	base := props.Color
	n := p.sample(x, y, salt)
	switch props.Name {
	case "log":
		cx, cy := float64(x-8), float64(y-8)
		ring := float32(math.Sin(math.Sqrt(cx*cx+cy*cy)*0.8)*0.5+0.5) * 0.2
		return base.Add(mgl32.Vec3{ring, ring * 0.7, ring * 0.3})
	case "planks":
		grain := float32(1)
		if y%4 == 0 {
			grain = 0.9
		}
		return base.Add(mgl32.Vec3{n * 0.1, n * 0.07, n * 0.03}).Mul(grain)
	case "bricks":
		offset := 0
		if (y/4)%2 == 1 {
			offset = 4
		}
		if y%4 == 0 || (x+offset)%8 == 0 {
			return mgl32.Vec3{0.7, 0.7, 0.65}
		}
		return base.Add(mgl32.Vec3{n * 0.15, n * 0.075, n * 0.045})
	case "glass":
		if x == 0 || y == 0 || x == TileSize-1 || y == TileSize-1 {
			return base.Add(mgl32.Vec3{0.2, 0.2, 0})
		}
		return base
	case "water":
		wave := float32(math.Sin(float64(x)*0.5+float64(y)*0.3)*0.5+0.5) * 0.2
		return base.Add(mgl32.Vec3{wave * 0.3, wave * 0.5, wave})
	case "coal_ore", "iron_ore", "gold_ore", "diamond_ore":
		if n > 0.7 {
			return base.Mul(1.2)
		}
		v := 0.5 + p.sample(x, y, 0)*0.15 - 0.075
		return mgl32.Vec3{v, v, v}
	}
	d := n*0.2 - 0.1
	return base.Add(mgl32.Vec3{d, d, d})
}

func alpha(p painter, props registry.Properties, x, y int) uint8 {
	switch {
	case props.Liquid:
		return liquidAlpha
	case props.Transparent && props.SelfCulling:
		return glassAlpha
	case props.Transparent:
		if p.sample(x, y, 5) > cutoutLimit {
			return 0
		}
	}
	return 255
}

func channel(v float32) uint8 {
	return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
}

// Scaled returns the atlas enlarged by an integer factor with
// nearest-neighbour sampling, keeping texels crisp.
func (a *Atlas) Scaled(factor int) *image.RGBA {
	if factor < 1 {
		factor = 1
	}
	b := a.Image.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), a.Image, b, draw.Src, nil)
	return dst
}

// WritePNG encodes the atlas, scaled by factor, as PNG.
func (a *Atlas) WritePNG(w io.Writer, factor int) error {
	if err := png.Encode(w, a.Scaled(factor)); err != nil {
		return fmt.Errorf("encode atlas: %w", err)
	}
	return nil
}
