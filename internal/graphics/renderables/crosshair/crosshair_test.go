package crosshair

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArmsArePixelSized(t *testing.T) {
	arms := Arms(800, 400)
	require.Len(t, arms, vertexSize)

	// Horizontal arm: NDC spans 2/800 per pixel.
	assert.InDelta(t, -float32(GapPixels+ArmPixels)*2/800, arms[0], 1e-6)
	assert.InDelta(t, -float32(GapPixels)*2/800, arms[2], 1e-6)
	// Vertical arm: 2/400 per pixel, twice the horizontal step.
	assert.InDelta(t, float32(GapPixels+ArmPixels)*2/400, arms[15], 1e-6)

	// The centre gap stays clear.
	for i := 0; i < len(arms); i += 2 {
		x, y := arms[i], arms[i+1]
		assert.False(t, x == 0 && y == 0, "point %d at the centre", i/2)
	}
}

func TestArmsMinimisedWindow(t *testing.T) {
	for _, v := range Arms(0, 0) {
		assert.False(t, math.IsNaN(float64(v)))
	}
}
