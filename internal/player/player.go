package player

import (
	"voxelforge/internal/registry"
	"voxelforge/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	FlySpeed         = 12.0
	SprintMultiplier = 3.0
	MouseSensitivity = 0.1
	ReachDistance    = 8.0
	MaxPitch         = 89.0
)

// World is the part of the chunk manager the player edits through.
type World interface {
	Block(wx, wy, wz int) world.BlockID
	SetBlock(wx, wy, wz int, id world.BlockID) bool
	Raycast(origin, dir mgl32.Vec3, maxDist float32) (world.RaycastHit, bool)
}

// Player is a free-flying camera that can break and place blocks.
type Player struct {
	// Position is the eye position in world units.
	Position mgl32.Vec3

	CamYaw     float64
	CamPitch   float64
	LastMouseX float64
	LastMouseY float64
	FirstMouse bool

	// Interaction
	HoveredBlock    world.RaycastHit
	HasHoveredBlock bool

	World    World
	registry *registry.Registry
	palette  []world.BlockID
	selected int
}

// New places a player at pos looking down -Z. The palette holds the blocks
// that can be placed; it defaults to every breakable registered block.
func New(w World, reg *registry.Registry, pos mgl32.Vec3) *Player {
	p := &Player{
		Position:   pos,
		CamYaw:     -90,
		FirstMouse: true,
		World:      w,
		registry:   reg,
	}
	for _, id := range reg.IDs() {
		props := reg.Properties(id)
		if id != world.Air && props.Breakable && !props.Liquid {
			p.palette = append(p.palette, id)
		}
	}
	return p
}

// Selected returns the block that PlaceBlock puts down.
func (p *Player) Selected() world.BlockID {
	if len(p.palette) == 0 {
		return world.Air
	}
	return p.palette[p.selected]
}

// CycleSelection moves through the palette by delta, wrapping around.
func (p *Player) CycleSelection(delta int) {
	if n := len(p.palette); n > 0 {
		p.selected = world.Mod(p.selected+delta, n)
	}
}
