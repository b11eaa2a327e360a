package world

import "fmt"

// ChunkPos identifies a chunk in chunk-grid units.
type ChunkPos struct {
	X, Y, Z int
}

func (p ChunkPos) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

// Add offsets the position by whole chunks.
func (p ChunkPos) Add(dx, dy, dz int) ChunkPos {
	return ChunkPos{X: p.X + dx, Y: p.Y + dy, Z: p.Z + dz}
}

// Neighbor returns the chunk sharing the given face with p.
func (p ChunkPos) Neighbor(f Face) ChunkPos {
	dx, dy, dz := f.Offset()
	return p.Add(dx, dy, dz)
}

// DistanceSq is the squared euclidean distance in chunk units.
func (p ChunkPos) DistanceSq(o ChunkPos) int {
	dx := p.X - o.X
	dy := p.Y - o.Y
	dz := p.Z - o.Z
	return dx*dx + dy*dy + dz*dz
}

// Less orders positions by X, then Y, then Z.
func (p ChunkPos) Less(o ChunkPos) bool {
	if p.X != o.X {
		return p.X < o.X
	}
	if p.Y != o.Y {
		return p.Y < o.Y
	}
	return p.Z < o.Z
}

// Origin returns the world-space block coordinate of the chunk's minimum corner.
func (p ChunkPos) Origin(size int) (x, y, z int) {
	return p.X * size, p.Y * size, p.Z * size
}

// ChunkPosAt resolves a world block coordinate to its chunk and local offset.
func ChunkPosAt(wx, wy, wz, size int) (ChunkPos, int, int, int) {
	pos := ChunkPos{X: FloorDiv(wx, size), Y: FloorDiv(wy, size), Z: FloorDiv(wz, size)}
	return pos, Mod(wx, size), Mod(wy, size), Mod(wz, size)
}

// FloorDiv divides rounding towards negative infinity.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Mod returns a non-negative remainder for positive b.
func Mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
