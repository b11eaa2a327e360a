package blocks

import (
	"voxelforge/internal/atlas"
	"voxelforge/internal/graphics"
	renderer "voxelforge/internal/graphics/renderer"
	"voxelforge/internal/profiling"
	"voxelforge/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultUploadBudget bounds chunk mesh uploads per frame.
const DefaultUploadBudget = 32

// Blocks draws the streamed chunk meshes with the block atlas.
type Blocks struct {
	shader   *graphics.Shader
	atlas    *atlas.Atlas
	texture  uint32
	tileSize mgl32.Vec2
	meshes   *residency

	UploadBudget int
	Wireframe    bool
	SunDir       mgl32.Vec3

	drawn     int
	triangles int
}

// NewBlocks creates the chunk renderable. tileSize is the normalised UV
// extent of one atlas tile.
func NewBlocks(a *atlas.Atlas, tileSize mgl32.Vec2) *Blocks {
	return &Blocks{
		atlas:        a,
		tileSize:     tileSize,
		meshes:       newResidency(glUploader{}),
		UploadBudget: DefaultUploadBudget,
		SunDir:       mgl32.Vec3{0.4, 1.0, 0.3}.Normalize(),
	}
}

// OnMeshReady queues a mesh for upload. It is the chunk manager's mesh hook.
func (b *Blocks) OnMeshReady(pos world.ChunkPos, mesh *world.Mesh) {
	b.meshes.queue(pos, mesh)
}

// OnUnload frees a chunk's GPU buffers. It is the chunk manager's unload hook
// and must run on the GL thread.
func (b *Blocks) OnUnload(pos world.ChunkPos) {
	b.meshes.drop(pos)
}

// Init compiles the chunk shader and uploads the atlas
func (b *Blocks) Init() error {
	var err error
	b.shader, err = graphics.NewShader("chunk")
	if err != nil {
		return err
	}
	b.texture = graphics.UploadTexture(b.atlas.Image)
	return nil
}

// Render uploads pending meshes and draws the visible chunks nearest first
func (b *Blocks) Render(ctx renderer.RenderContext) {
	defer profiling.Track("blocks.Render")()

	func() {
		defer profiling.Track("blocks.upload")()
		b.meshes.flush(b.UploadBudget, ctx.Chunks.Center())
	}()

	visible := ctx.Chunks.Visible(ctx.ViewProj(), ctx.Player.GetEyePosition())

	b.shader.Use()
	b.shader.SetMatrix4("view", ctx.View)
	b.shader.SetMatrix4("proj", ctx.Proj)
	b.shader.SetVector3("sunDir", b.SunDir)
	b.shader.SetVector2("tileSize", b.tileSize)
	b.shader.SetInt("atlas", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, b.texture)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	if b.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}

	b.drawn, b.triangles = 0, 0
	for _, v := range visible {
		g, ok := b.meshes.lookup(v.Pos)
		if !ok {
			continue
		}
		gl.BindVertexArray(g.vao)
		gl.DrawElementsWithOffset(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, 0)
		b.drawn++
		b.triangles += int(g.indexCount) / 3
	}

	gl.BindVertexArray(0)
	if b.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
	gl.Disable(gl.BLEND)
}

// Drawn returns the chunk and triangle counts of the last frame.
func (b *Blocks) Drawn() (chunks, triangles int) {
	return b.drawn, b.triangles
}

// Pending returns the number of meshes waiting for upload.
func (b *Blocks) Pending() int {
	return len(b.meshes.pending)
}

// Dispose frees every chunk buffer, the atlas and the shader
func (b *Blocks) Dispose() {
	b.meshes.releaseAll()
	graphics.DeleteTexture(&b.texture)
	b.shader.Delete()
}

func (b *Blocks) SetViewport(width, height int) {}

// glUploader owns one VAO/VBO/EBO triple per chunk.
type glUploader struct{}

func (glUploader) upload(m *world.Mesh) gpuMesh {
	var g gpuMesh
	verts := m.Interleaved()

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	graphics.BindChunkAttribs()
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	g.indexCount = int32(len(m.Indices))
	graphics.GLCheckError("chunk upload")
	return g
}

func (glUploader) release(g gpuMesh) {
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
	}
	if g.vbo != 0 {
		gl.DeleteBuffers(1, &g.vbo)
	}
	if g.ebo != 0 {
		gl.DeleteBuffers(1, &g.ebo)
	}
}
