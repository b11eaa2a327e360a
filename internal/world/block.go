package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

// BlockID identifies a block type. Properties live in the registry.
type BlockID uint16

// Air is the reserved empty block.
const Air BlockID = 0

// Standard block ids, registered by registry.Default.
const (
	BlockStone BlockID = iota + 1
	BlockDirt
	BlockGrass
	BlockSand
	BlockGravel
	BlockLog
	BlockLeaves
	BlockGlass
	BlockWater
	BlockCobblestone
	BlockPlanks
	BlockBricks
	BlockCoalOre
	BlockIronOre
	BlockGoldOre
	BlockDiamondOre
	BlockBedrock
)

// Face identifies one of the six axis-aligned faces of a block.
type Face int

const (
	FacePosX Face = iota // east
	FaceNegX             // west
	FacePosY             // top
	FaceNegY             // bottom
	FacePosZ             // south
	FaceNegZ             // north
)

// AllFaces lists the faces in meshing order.
var AllFaces = [6]Face{FacePosX, FaceNegX, FacePosY, FaceNegY, FacePosZ, FaceNegZ}

var faceOffsets = [6][3]int{
	{1, 0, 0},
	{-1, 0, 0},
	{0, 1, 0},
	{0, -1, 0},
	{0, 0, 1},
	{0, 0, -1},
}

// Axis returns 0, 1 or 2 for faces perpendicular to X, Y or Z.
func (f Face) Axis() int {
	return int(f) / 2
}

// Positive reports whether the face normal points along +axis.
func (f Face) Positive() bool {
	return f%2 == 0
}

// Offset returns the integer step from a cell to its neighbour across this face.
func (f Face) Offset() (dx, dy, dz int) {
	o := faceOffsets[f]
	return o[0], o[1], o[2]
}

// Normal returns the outward unit normal.
func (f Face) Normal() mgl32.Vec3 {
	o := faceOffsets[f]
	return mgl32.Vec3{float32(o[0]), float32(o[1]), float32(o[2])}
}

// Opposite returns the face pointing the other way.
func (f Face) Opposite() Face {
	if f.Positive() {
		return f + 1
	}
	return f - 1
}

func (f Face) String() string {
	switch f {
	case FacePosX:
		return "+x"
	case FaceNegX:
		return "-x"
	case FacePosY:
		return "+y"
	case FaceNegY:
		return "-y"
	case FacePosZ:
		return "+z"
	case FaceNegZ:
		return "-z"
	default:
		return "?"
	}
}
