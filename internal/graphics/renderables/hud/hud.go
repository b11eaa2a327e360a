package hud

import (
	"time"

	"voxelforge/internal/graphics"
	renderer "voxelforge/internal/graphics/renderer"
	"voxelforge/internal/profiling"
	"voxelforge/internal/registry"

	"github.com/go-gl/mathgl/mgl32"
)

// DrawStats reports what the chunk renderable did last frame.
type DrawStats interface {
	Drawn() (chunks, triangles int)
	Pending() int
}

// HUD draws the text overlay: frame timing, streaming state and, when
// enabled, the slowest profiled sections.
type HUD struct {
	font   *graphics.FontRenderer
	draw   DrawStats
	reg    *registry.Registry
	width  int
	height int

	Frames        *FrameStats
	ShowProfiling bool
	Wireframe     bool
}

func NewHUD(draw DrawStats, reg *registry.Registry) *HUD {
	return &HUD{
		draw:   draw,
		reg:    reg,
		Frames: NewFrameStats(120),
	}
}

func (h *HUD) Init() error {
	var err error
	h.font, err = graphics.NewFontRenderer(graphics.DefaultFont(), max(h.width, 1), max(h.height, 1))
	return err
}

// RecordFrame feeds the frame timer; call once per frame.
func (h *HUD) RecordFrame(d time.Duration) {
	h.Frames.Record(d, time.Now())
}

func (h *HUD) Render(ctx renderer.RenderContext) {
	defer profiling.Track("hud.Render")()

	avg, _, worst := h.Frames.Summary()
	drawn, tris := h.draw.Drawn()
	s := Status{
		FPS:       h.Frames.FPS(),
		FrameAvg:  avg,
		FrameMax:  worst,
		Position:  ctx.Player.GetEyePosition(),
		Center:    ctx.Chunks.Center(),
		Render:    ctx.Chunks.RenderDistance(),
		Chunks:    ctx.Chunks.Stats(),
		Drawn:     drawn,
		Triangles: tris,
		Uploads:   h.draw.Pending(),
		Selected:  h.reg.Properties(ctx.Player.Selected()).Name,
		Wireframe: h.Wireframe,
	}
	if h.ShowProfiling {
		for _, e := range profiling.Entries() {
			if len(s.Profiling) == 8 {
				break
			}
			s.Profiling = append(s.Profiling, e.String())
		}
	}
	h.font.RenderLines(s.Lines(), 10, 20, 1, mgl32.Vec3{1, 1, 1})
}

func (h *HUD) Dispose() {
	if h.font != nil {
		h.font.Dispose()
	}
}

func (h *HUD) SetViewport(width, height int) {
	h.width, h.height = width, height
	if h.font != nil {
		h.font.SetViewport(width, height)
	}
}
