package renderer

import (
	"voxelforge/internal/graphics"
	"voxelforge/internal/player"
	"voxelforge/internal/profiling"
	"voxelforge/internal/streaming"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// SkyColor is the clear colour.
var SkyColor = [3]float32{0.53, 0.81, 0.92}

// Renderer orchestrates rendering via renderable features
type Renderer struct {
	renderables []Renderable
	camera      *graphics.Camera
}

// NewRenderer configures GL state and initializes the renderables in order.
// On failure the ones already initialized are disposed.
func NewRenderer(width, height int, rs ...Renderable) (*Renderer, error) {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	r := &Renderer{camera: graphics.NewCamera(width, height)}
	for _, rb := range rs {
		if err := rb.Init(); err != nil {
			r.Dispose()
			return nil, err
		}
		r.renderables = append(r.renderables, rb)
		rb.SetViewport(width, height)
	}
	return r, nil
}

// Render clears the frame and draws every renderable
func (r *Renderer) Render(chunks *streaming.Manager, p *player.Player, dt float64) {
	defer profiling.Track("renderer.Render")()

	gl.ClearColor(SkyColor[0], SkyColor[1], SkyColor[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	ctx := RenderContext{
		Camera: r.camera,
		Chunks: chunks,
		Player: p,
		DT:     dt,
		View:   p.GetViewMatrix(),
		Proj:   r.camera.GetProjectionMatrix(),
	}
	for _, renderable := range r.renderables {
		renderable.Render(ctx)
	}
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
	r.renderables = nil
}

// GetCamera returns the camera instance
func (r *Renderer) GetCamera() *graphics.Camera {
	return r.camera
}

// UpdateViewport resizes the GL viewport, the camera and every renderable
func (r *Renderer) UpdateViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	gl.Viewport(0, 0, int32(width), int32(height))
	r.camera.SetViewport(width, height)
	for _, rb := range r.renderables {
		rb.SetViewport(width, height)
	}
}
