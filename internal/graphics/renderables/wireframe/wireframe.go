package wireframe

import (
	"voxelforge/internal/graphics"
	renderer "voxelforge/internal/graphics/renderer"
	"voxelforge/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// CubeEdges is the unit cube outline as 12 line segments, cell-aligned so a
// translation by the block coordinates places it over the block.
var CubeEdges = []float32{
	0, 0, 1, 1, 0, 1,
	1, 0, 1, 1, 1, 1,
	1, 1, 1, 0, 1, 1,
	0, 1, 1, 0, 0, 1,

	0, 0, 0, 1, 0, 0,
	1, 0, 0, 1, 1, 0,
	1, 1, 0, 0, 1, 0,
	0, 1, 0, 0, 0, 0,

	0, 0, 1, 0, 0, 0,
	1, 0, 1, 1, 0, 0,
	1, 1, 1, 1, 1, 0,
	0, 1, 1, 0, 1, 0,
}

// Wireframe outlines the block the player is aiming at
type Wireframe struct {
	shader *graphics.Shader
	vao    uint32
	vbo    uint32
}

// NewWireframe creates a new wireframe renderable
func NewWireframe() *Wireframe {
	return &Wireframe{}
}

// Init compiles the line shader and uploads the cube outline
func (w *Wireframe) Init() error {
	var err error
	w.shader, err = graphics.NewShader("line")
	if err != nil {
		return err
	}

	gl.GenVertexArrays(1, &w.vao)
	gl.BindVertexArray(w.vao)
	gl.GenBuffers(1, &w.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(CubeEdges)*4, gl.Ptr(CubeEdges), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.BindVertexArray(0)
	return nil
}

// Render outlines the hovered block, if any
func (w *Wireframe) Render(ctx renderer.RenderContext) {
	if !ctx.Player.HasHoveredBlock {
		return
	}
	defer profiling.Track("renderer.renderHighlightedBlock")()

	w.shader.Use()
	w.shader.SetMatrix4("proj", ctx.Proj)
	w.shader.SetMatrix4("view", ctx.View)
	w.shader.SetMatrix4("model", HighlightModel(ctx.Player.HoveredBlock.Block))
	w.shader.SetVector3("color", mgl32.Vec3{0, 0, 0})

	gl.BindVertexArray(w.vao)
	gl.LineWidth(1.0)
	gl.DrawArrays(gl.LINES, 0, int32(len(CubeEdges)/3))
	gl.BindVertexArray(0)
}

// HighlightModel places the outline over block, grown slightly about its
// centre so it is not hidden by the block's own faces.
func HighlightModel(block [3]int) mgl32.Mat4 {
	const grow = 1.01
	centre := mgl32.Vec3{float32(block[0]) + 0.5, float32(block[1]) + 0.5, float32(block[2]) + 0.5}
	return mgl32.Translate3D(centre[0], centre[1], centre[2]).
		Mul4(mgl32.Scale3D(grow, grow, grow)).
		Mul4(mgl32.Translate3D(-0.5, -0.5, -0.5))
}

// Dispose cleans up OpenGL resources
func (w *Wireframe) Dispose() {
	if w.vao != 0 {
		gl.DeleteVertexArrays(1, &w.vao)
	}
	if w.vbo != 0 {
		gl.DeleteBuffers(1, &w.vbo)
	}
	w.shader.Delete()
}

func (w *Wireframe) SetViewport(width, height int) {}
