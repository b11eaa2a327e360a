package world

// Biome picks the surface layers of a terrain column and scales its relief.
type Biome struct {
	Name   string
	Top    BlockID // surface block above the shore line
	Filler BlockID // the few blocks under the surface
	// Relief multiplies the generator amplitude; neighbouring biomes blend.
	Relief float64
}

var (
	BiomeOcean     = &Biome{Name: "ocean", Top: BlockSand, Filler: BlockSand, Relief: 0.5}
	BiomeDesert    = &Biome{Name: "desert", Top: BlockSand, Filler: BlockSand, Relief: 0.6}
	BiomePlains    = &Biome{Name: "plains", Top: BlockGrass, Filler: BlockDirt, Relief: 0.8}
	BiomeHills     = &Biome{Name: "hills", Top: BlockGrass, Filler: BlockDirt, Relief: 1.2}
	BiomeMountains = &Biome{Name: "mountains", Top: BlockStone, Filler: BlockStone, Relief: 1.6}
)

// Biomes is ordered by rising biome field value.
var Biomes = []*Biome{BiomeOcean, BiomeDesert, BiomePlains, BiomeHills, BiomeMountains}

// biomeBounds are the upper field values of each entry in Biomes but the last.
var biomeBounds = []float64{-0.45, -0.2, 0.25, 0.55}

// BiomeFor maps a biome field value in [-1, 1] to a biome.
func BiomeFor(v float64) *Biome {
	for i, b := range biomeBounds {
		if v < b {
			return Biomes[i]
		}
	}
	return Biomes[len(Biomes)-1]
}

// relief blends the relief of the biomes either side of the nearest bound so
// heights stay continuous across biome borders.
func relief(v float64) float64 {
	const blend = 0.1
	for i, b := range biomeBounds {
		if v < b-blend {
			return Biomes[i].Relief
		}
		if v < b+blend {
			t := (v - (b - blend)) / (2 * blend)
			return Biomes[i].Relief + t*(Biomes[i+1].Relief-Biomes[i].Relief)
		}
	}
	return Biomes[len(Biomes)-1].Relief
}
