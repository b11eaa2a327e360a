package graphics

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// FontCharacter describes a single character's placement and metrics within the atlas
type FontCharacter struct {
	// Pixel coordinates of the glyph in the atlas (top-left origin)
	AtlasX float32
	AtlasY float32
	Width  float32
	Height float32
	// Bearing is the offset from the pen position on the baseline
	BearingX float32
	BearingY float32
	Advance  int
}

// FontAtlas is a baked glyph sheet plus per-glyph metrics.
type FontAtlas struct {
	Image      *image.Alpha
	LineHeight int
	Characters map[rune]FontCharacter
}

// BakeFont renders printable ASCII from face into a single-channel sheet
// of the given width, packing glyphs in rows.
func BakeFont(face font.Face, width int) *FontAtlas {
	const padding = 1
	metrics := face.Metrics()
	rowH := (metrics.Ascent + metrics.Descent).Ceil() + padding

	type glyph struct {
		r       rune
		dr      image.Rectangle
		mask    image.Image
		maskp   image.Point
		advance fixed.Int26_6
	}
	var glyphs []glyph
	for r := rune(32); r <= 126; r++ {
		dr, mask, maskp, advance, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok {
			continue
		}
		glyphs = append(glyphs, glyph{r, dr, mask, maskp, advance})
	}

	// First pass measures the sheet height.
	x, rows := 0, 1
	for _, g := range glyphs {
		if x+g.dr.Dx()+padding > width {
			x = 0
			rows++
		}
		x += g.dr.Dx() + padding
	}

	fa := &FontAtlas{
		Image:      image.NewAlpha(image.Rect(0, 0, width, rows*rowH)),
		LineHeight: rowH,
		Characters: make(map[rune]FontCharacter, len(glyphs)),
	}
	x, y := 0, 0
	for _, g := range glyphs {
		gw, gh := g.dr.Dx(), g.dr.Dy()
		if x+gw+padding > width {
			x = 0
			y += rowH
		}
		if gw > 0 && gh > 0 {
			draw.Draw(fa.Image, image.Rect(x, y, x+gw, y+gh), g.mask, g.maskp, draw.Src)
		}
		fa.Characters[g.r] = FontCharacter{
			AtlasX:   float32(x),
			AtlasY:   float32(y),
			Width:    float32(gw),
			Height:   float32(gh),
			BearingX: float32(g.dr.Min.X),
			BearingY: float32(-g.dr.Min.Y),
			Advance:  g.advance.Round(),
		}
		x += gw + padding
	}
	return fa
}

// DefaultFont bakes the 7x13 bitmap face shipped with x/image.
func DefaultFont() *FontAtlas {
	return BakeFont(basicfont.Face7x13, 256)
}

// FontRenderer renders ASCII text strings using a baked atlas
type FontRenderer struct {
	atlas      *FontAtlas
	texture    uint32
	shader     *Shader
	projection mgl32.Mat4
	vao        uint32
	vbo        uint32
}

// NewFontRenderer uploads the atlas and compiles the text shader
func NewFontRenderer(atlas *FontAtlas, width, height int) (*FontRenderer, error) {
	if atlas == nil || len(atlas.Characters) == 0 {
		return nil, fmt.Errorf("invalid font atlas")
	}
	shader, err := NewShader("font")
	if err != nil {
		return nil, err
	}
	fr := &FontRenderer{atlas: atlas, shader: shader}
	fr.SetViewport(width, height)
	fr.initGL()
	return fr, nil
}

// SetViewport sets a pixel-space orthographic projection with the origin top-left
func (fr *FontRenderer) SetViewport(width, height int) {
	fr.projection = mgl32.Ortho(0, float32(width), float32(height), 0, -1, 1)
}

func (fr *FontRenderer) initGL() {
	size := fr.atlas.Image.Rect.Size()
	gl.GenTextures(1, &fr.texture)
	gl.BindTexture(gl.TEXTURE_2D, fr.texture)
	// Tight byte alignment for the single-channel upload
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(size.X), int32(size.Y), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(fr.atlas.Image.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenVertexArrays(1, &fr.vao)
	gl.GenBuffers(1, &fr.vbo)
	gl.BindVertexArray(fr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, fr.vbo)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 4, gl.FLOAT, false, 4*4, 0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// RenderLines draws lines of text starting at (x, yStart), one LineHeight
// apart, in a single draw call.
func (fr *FontRenderer) RenderLines(lines []string, x, yStart, scale float32, color mgl32.Vec3) {
	vertices := fr.LinesVertices(lines, x, yStart, scale)
	if len(vertices) == 0 {
		return
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	fr.shader.Use()
	fr.shader.SetVector3("textColor", color)
	fr.shader.SetMatrix4("projection", fr.projection)
	fr.shader.SetInt("text", 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, fr.texture)
	gl.BindVertexArray(fr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, fr.vbo)

	// Orphan the buffer so the driver does not stall on the previous frame's draw
	size := len(vertices) * 4
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.STREAM_DRAW)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(vertices))
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(vertices)/4))

	gl.BindVertexArray(0)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
}

// Measure returns the width and height in pixels the text occupies at scale.
func (fr *FontRenderer) Measure(text string, scale float32) (float32, float32) {
	var width, height float32
	for _, r := range text {
		fc := fr.glyph(r)
		width += float32(fc.Advance) * scale
		height = max(height, fc.Height*scale)
	}
	return width, height
}

// LinesVertices builds the triangle list (x, y, u, v per vertex) for lines.
func (fr *FontRenderer) LinesVertices(lines []string, x, yStart, scale float32) []float32 {
	var vertices []float32
	step := float32(fr.atlas.LineHeight) * scale
	y := yStart
	for _, line := range lines {
		pen := x
		for _, r := range line {
			fc := fr.glyph(r)
			if fc.Width > 0 {
				vertices = append(vertices, fr.charVertices(fc, pen, y, scale)...)
			}
			pen += float32(fc.Advance) * scale
		}
		y += step
	}
	return vertices
}

// glyph falls back to '?' for characters outside the baked range.
func (fr *FontRenderer) glyph(r rune) FontCharacter {
	if fc, ok := fr.atlas.Characters[r]; ok {
		return fc
	}
	return fr.atlas.Characters['?']
}

func (fr *FontRenderer) charVertices(fc FontCharacter, x, y, scale float32) []float32 {
	xPos := x + fc.BearingX*scale
	yPos := y - fc.BearingY*scale
	w := fc.Width * scale
	h := fc.Height * scale

	size := fr.atlas.Image.Rect.Size()
	u := fc.AtlasX / float32(size.X)
	v := fc.AtlasY / float32(size.Y)
	du := fc.Width / float32(size.X)
	dv := fc.Height / float32(size.Y)

	return []float32{
		xPos, yPos + h, u, v + dv,
		xPos, yPos, u, v,
		xPos + w, yPos, u + du, v,

		xPos, yPos + h, u, v + dv,
		xPos + w, yPos, u + du, v,
		xPos + w, yPos + h, u + du, v + dv,
	}
}

// Dispose releases the GL objects
func (fr *FontRenderer) Dispose() {
	if fr.vao != 0 {
		gl.DeleteVertexArrays(1, &fr.vao)
	}
	if fr.vbo != 0 {
		gl.DeleteBuffers(1, &fr.vbo)
	}
	DeleteTexture(&fr.texture)
	fr.shader.Delete()
}
