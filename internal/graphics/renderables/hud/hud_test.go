package hud

import (
	"testing"
	"time"

	"voxelforge/internal/streaming"
	"voxelforge/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestFrameStatsWindow(t *testing.T) {
	f := NewFrameStats(3)
	avg, lo, hi := f.Summary()
	assert.Zero(t, avg+lo+hi)

	start := time.Unix(100, 0)
	for i, d := range []time.Duration{10, 20, 30, 40} {
		f.Record(d*time.Millisecond, start.Add(time.Duration(i)*100*time.Millisecond))
	}
	// The oldest sample (10ms) fell out of the window.
	avg, lo, hi = f.Summary()
	assert.Equal(t, 30*time.Millisecond, avg)
	assert.Equal(t, 20*time.Millisecond, lo)
	assert.Equal(t, 40*time.Millisecond, hi)
}

func TestFrameStatsFPS(t *testing.T) {
	f := NewFrameStats(10)
	start := time.Unix(100, 0)
	f.Record(time.Millisecond, start)
	assert.Zero(t, f.FPS(), "no full second yet")
	for i := 1; i <= 59; i++ {
		f.Record(time.Millisecond, start.Add(time.Duration(i)*time.Second/60))
	}
	assert.Zero(t, f.FPS())
	f.Record(time.Millisecond, start.Add(time.Second))
	assert.Equal(t, 61, f.FPS())
}

func TestStatusLines(t *testing.T) {
	s := Status{
		FPS:       60,
		FrameAvg:  1500 * time.Microsecond,
		FrameMax:  4 * time.Millisecond,
		Position:  mgl32.Vec3{1, 2, -3},
		Center:    world.ChunkPos{X: 0, Y: 0, Z: -1},
		Render:    8,
		Chunks:    streaming.Stats{Tracked: 27, Ready: 20, Empty: 5, Generating: 1, Meshing: 1, Queued: 2, InFlight: 3},
		Drawn:     12,
		Triangles: 3400,
		Uploads:   4,
		Selected:  "stone",
	}
	lines := s.Lines()
	assert.Len(t, lines, 6)
	assert.Equal(t, "FPS 60  frame 1.5ms (max 4.0ms)", lines[0])
	assert.Contains(t, lines[1], "pos 1.0 2.0 -3.0")
	assert.Equal(t, "chunks 27: ready 20 empty 5 gen 1 mesh 1 dirty 0", lines[2])
	assert.Equal(t, "queue 2  in flight 3  uploads 4", lines[3])
	assert.Equal(t, "block stone", lines[5])

	s.Wireframe = true
	s.Profiling = []string{"blocks.Render:1.0ms(1)"}
	lines = s.Lines()
	assert.Equal(t, []string{"wireframe", "", "blocks.Render:1.0ms(1)"}, lines[6:])
}
