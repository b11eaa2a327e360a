package crosshair

import (
	"voxelforge/internal/graphics"
	renderer "voxelforge/internal/graphics/renderer"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Arm length and centre gap in pixels.
const (
	ArmPixels = 9
	GapPixels = 3
)

// vertexSize is four segments of two 2D points.
const vertexSize = 4 * 2 * 2

var (
	idleColor = mgl32.Vec3{1, 1, 1}
	aimColor  = mgl32.Vec3{1, 0.85, 0.3}
)

// Arms returns the four crosshair segments in NDC for a viewport, sized in
// pixels so the crosshair keeps its shape when the window is resized.
func Arms(width, height int) []float32 {
	sx := 2 / float32(max(width, 1))
	sy := 2 / float32(max(height, 1))
	in, out := float32(GapPixels), float32(GapPixels+ArmPixels)
	return []float32{
		-out * sx, 0, -in * sx, 0,
		in * sx, 0, out * sx, 0,
		0, -out * sy, 0, -in * sy,
		0, in * sy, 0, out * sy,
	}
}

// Crosshair draws a gapped plus sign at the screen centre, tinted while the
// player is aiming at a block
type Crosshair struct {
	shader *graphics.Shader
	vao    uint32
	vbo    uint32
}

func NewCrosshair() *Crosshair {
	return &Crosshair{}
}

func (c *Crosshair) Init() error {
	var err error
	c.shader, err = graphics.NewShader("crosshair")
	if err != nil {
		return err
	}

	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)
	gl.GenBuffers(1, &c.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, vertexSize*4, nil, gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.BindVertexArray(0)
	return nil
}

func (c *Crosshair) Render(ctx renderer.RenderContext) {
	color := idleColor
	if ctx.Player.HasHoveredBlock {
		color = aimColor
	}

	gl.Disable(gl.DEPTH_TEST)
	c.shader.Use()
	c.shader.SetVector3("color", color)
	gl.BindVertexArray(c.vao)
	gl.DrawArrays(gl.LINES, 0, int32(vertexSize/2))
	gl.BindVertexArray(0)
	gl.Enable(gl.DEPTH_TEST)
}

func (c *Crosshair) Dispose() {
	if c.vao != 0 {
		gl.DeleteVertexArrays(1, &c.vao)
	}
	if c.vbo != 0 {
		gl.DeleteBuffers(1, &c.vbo)
	}
	c.shader.Delete()
}

// SetViewport rebuilds the segments for the new pixel size
func (c *Crosshair) SetViewport(width, height int) {
	arms := Arms(width, height)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(arms)*4, gl.Ptr(arms))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}
