package player

import (
	"voxelforge/internal/input"
	"voxelforge/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// UpdatePosition flies the camera from the held movement actions. There is no
// collision; the camera passes through terrain.
func (p *Player) UpdatePosition(dt float64, im *input.InputManager) {
	defer profiling.Track("player.UpdatePosition")()

	front := p.GetFrontVector()
	flat := mgl32.Vec3{front[0], 0, front[2]}
	if flat.Len() > 0 {
		flat = flat.Normalize()
	}
	right := p.GetRightVector()

	var wish mgl32.Vec3
	if im.IsActive(input.ActionMoveForward) {
		wish = wish.Add(flat)
	}
	if im.IsActive(input.ActionMoveBackward) {
		wish = wish.Sub(flat)
	}
	if im.IsActive(input.ActionMoveRight) {
		wish = wish.Add(right)
	}
	if im.IsActive(input.ActionMoveLeft) {
		wish = wish.Sub(right)
	}
	if im.IsActive(input.ActionMoveUp) {
		wish[1]++
	}
	if im.IsActive(input.ActionMoveDown) {
		wish[1]--
	}
	if wish.Len() == 0 {
		return
	}

	speed := float32(FlySpeed)
	if im.IsActive(input.ActionSprint) {
		speed *= SprintMultiplier
	}
	p.Position = p.Position.Add(wish.Normalize().Mul(speed * float32(dt)))
}
