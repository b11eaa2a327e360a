package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

func (p *Player) HandleMouseMovement(xpos, ypos float64) {
	if p.FirstMouse {
		p.LastMouseX = xpos
		p.LastMouseY = ypos
		p.FirstMouse = false
		return
	}

	xoffset := (xpos - p.LastMouseX) * MouseSensitivity
	yoffset := (p.LastMouseY - ypos) * MouseSensitivity
	p.LastMouseX = xpos
	p.LastMouseY = ypos

	p.CamYaw += xoffset
	p.CamPitch = math.Max(-MaxPitch, math.Min(MaxPitch, p.CamPitch+yoffset))
}

func (p *Player) GetFrontVector() mgl32.Vec3 {
	y := mgl32.DegToRad(float32(p.CamYaw))
	pt := mgl32.DegToRad(float32(p.CamPitch))
	fx := float32(math.Cos(float64(y)) * math.Cos(float64(pt)))
	fy := float32(math.Sin(float64(pt)))
	fz := float32(math.Sin(float64(y)) * math.Cos(float64(pt)))
	return mgl32.Vec3{fx, fy, fz}.Normalize()
}

// GetRightVector is horizontal so strafing never changes height.
func (p *Player) GetRightVector() mgl32.Vec3 {
	y := mgl32.DegToRad(float32(p.CamYaw))
	return mgl32.Vec3{-float32(math.Sin(float64(y))), 0, float32(math.Cos(float64(y)))}
}

func (p *Player) GetEyePosition() mgl32.Vec3 {
	return p.Position
}

func (p *Player) GetViewMatrix() mgl32.Mat4 {
	eye := p.GetEyePosition()
	return mgl32.LookAtV(eye, eye.Add(p.GetFrontVector()), mgl32.Vec3{0, 1, 0})
}
