package world

// Generator supplies the blocks of a chunk. Implementations must be safe for
// concurrent use: the chunk manager calls Generate from its worker goroutines.
//
// The returned slice has size³ entries in chunk index order (x + z*size + y*size*size),
// or is nil for an all-air chunk.
type Generator interface {
	Generate(pos ChunkPos, size int) ([]BlockID, error)
}

// SurfaceSampler is implemented by generators that can report the terrain
// height of a column without generating its chunks.
type SurfaceSampler interface {
	HeightAt(worldX, worldZ int) int
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(pos ChunkPos, size int) ([]BlockID, error)

// Generate calls f.
func (f GeneratorFunc) Generate(pos ChunkPos, size int) ([]BlockID, error) {
	return f(pos, size)
}

// FlatGenerator produces a flat world: stone, three layers of dirt, grass at Height.
type FlatGenerator struct {
	Height int
}

// NewFlatGenerator creates a flat generator with its grass layer at world Y = height.
func NewFlatGenerator(height int) *FlatGenerator {
	return &FlatGenerator{Height: height}
}

// HeightAt returns the surface height, constant for a flat world.
func (g *FlatGenerator) HeightAt(worldX, worldZ int) int {
	return g.Height
}

// Generate fills the chunk at pos.
func (g *FlatGenerator) Generate(pos ChunkPos, size int) ([]BlockID, error) {
	_, oy, _ := pos.Origin(size)
	if oy > g.Height {
		return nil, nil
	}
	blocks := make([]BlockID, size*size*size)
	for ly := 0; ly < size; ly++ {
		wy := oy + ly
		var id BlockID
		switch {
		case wy > g.Height:
			continue
		case wy == g.Height:
			id = BlockGrass
		case wy > g.Height-4:
			id = BlockDirt
		default:
			id = BlockStone
		}
		layer := ly * size * size
		for i := 0; i < size*size; i++ {
			blocks[layer+i] = id
		}
	}
	return blocks, nil
}
