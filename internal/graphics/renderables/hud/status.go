package hud

import (
	"fmt"
	"time"

	"voxelforge/internal/streaming"
	"voxelforge/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Status is everything the overlay prints for one frame.
type Status struct {
	FPS       int
	FrameAvg  time.Duration
	FrameMax  time.Duration
	Position  mgl32.Vec3
	Center    world.ChunkPos
	Render    int
	Chunks    streaming.Stats
	Drawn     int
	Triangles int
	Uploads   int
	Selected  string
	Wireframe bool
	Profiling []string
}

// Lines formats the status as overlay text, top to bottom.
func (s Status) Lines() []string {
	lines := []string{
		fmt.Sprintf("FPS %d  frame %.1fms (max %.1fms)", s.FPS, ms(s.FrameAvg), ms(s.FrameMax)),
		fmt.Sprintf("pos %.1f %.1f %.1f  chunk %v  render %d", s.Position[0], s.Position[1], s.Position[2], s.Center, s.Render),
		fmt.Sprintf("chunks %d: ready %d empty %d gen %d mesh %d dirty %d",
			s.Chunks.Tracked, s.Chunks.Ready, s.Chunks.Empty, s.Chunks.Generating, s.Chunks.Meshing, s.Chunks.Dirty),
		fmt.Sprintf("queue %d  in flight %d  uploads %d", s.Chunks.Queued, s.Chunks.InFlight, s.Uploads),
		fmt.Sprintf("drawn %d chunks  %d tris", s.Drawn, s.Triangles),
		fmt.Sprintf("block %s", s.Selected),
	}
	if s.Wireframe {
		lines = append(lines, "wireframe")
	}
	if len(s.Profiling) > 0 {
		lines = append(lines, "")
		lines = append(lines, s.Profiling...)
	}
	return lines
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
