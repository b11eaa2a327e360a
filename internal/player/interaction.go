package player

import (
	"math"

	"voxelforge/internal/world"
)

func (p *Player) UpdateHoveredBlock() {
	p.HoveredBlock, p.HasHoveredBlock = p.World.Raycast(p.GetEyePosition(), p.GetFrontVector(), ReachDistance)
}

// BreakBlock clears the hovered block unless it is unbreakable.
func (p *Player) BreakBlock() bool {
	if !p.HasHoveredBlock {
		return false
	}
	b := p.HoveredBlock.Block
	id := p.World.Block(b[0], b[1], b[2])
	if id == world.Air || !p.registry.Properties(id).Breakable {
		return false
	}
	if !p.World.SetBlock(b[0], b[1], b[2], world.Air) {
		return false
	}
	p.UpdateHoveredBlock()
	return true
}

// PlaceBlock puts the selected block in the cell in front of the hovered face.
// It refuses to place into the cell the camera occupies.
func (p *Player) PlaceBlock() bool {
	if !p.HasHoveredBlock || p.Selected() == world.Air {
		return false
	}
	c := p.HoveredBlock.Adjacent
	eye := p.GetEyePosition()
	if c == [3]int{floor(eye[0]), floor(eye[1]), floor(eye[2])} {
		return false
	}
	if !p.World.SetBlock(c[0], c[1], c[2], p.Selected()) {
		return false
	}
	p.UpdateHoveredBlock()
	return true
}

func floor(v float32) int {
	return int(math.Floor(float64(v)))
}
