package graphics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera holds the projection parameters
type Camera struct {
	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32
}

func NewCamera(width, height int) *Camera {
	c := &Camera{
		FOV:       70.0,
		NearPlane: 0.1,
		FarPlane:  1000.0,
	}
	c.SetViewport(width, height)
	return c
}

// SetViewport updates the aspect ratio; a zero height (minimised window) is ignored.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.AspectRatio = float32(width) / float32(height)
}

// FitFarPlane pushes the far plane out to cover the streamed window.
func (c *Camera) FitFarPlane(renderDistance, chunkSize int) {
	c.FarPlane = max(float32((renderDistance+2)*chunkSize)*1.5, 100)
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}
