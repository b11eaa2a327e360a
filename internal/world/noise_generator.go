package world

import (
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"
	lru "github.com/hashicorp/golang-lru"
	"github.com/ojrac/opensimplex-go"
)

// NoiseOptions configures a NoiseGenerator.
type NoiseOptions struct {
	Seed       int64
	SeaLevel   int
	BaseHeight int
	Amplitude  float64
	Caves      bool
	// CacheColumns bounds the number of cached column heightmaps.
	CacheColumns int
}

// DefaultNoiseOptions returns rolling hills around Y=32 with sea level at 28.
func DefaultNoiseOptions(seed int64) NoiseOptions {
	return NoiseOptions{
		Seed:         seed,
		SeaLevel:     28,
		BaseHeight:   32,
		Amplitude:    24,
		Caves:        true,
		CacheColumns: 4096,
	}
}

// NoiseGenerator builds terrain from an octave simplex height field with perlin
// caves. A second, low-frequency simplex field selects the biome of each column.
// It holds no mutable state besides a concurrency-safe heightmap cache.
type NoiseGenerator struct {
	opts NoiseOptions

	height opensimplex.Noise
	biome  opensimplex.Noise
	caves  *perlin.Perlin

	scale       float64
	octaves     int
	persistence float64
	lacunarity  float64
	biomeScale  float64

	// (chunkX, chunkZ, size) -> *column, shared by every chunk in the column.
	columns *lru.Cache
}

type columnKey struct {
	x, z, size int
}

type column struct {
	heights []int
	biomes  []*Biome
}

// NewNoiseGenerator creates a generator for opts.
func NewNoiseGenerator(opts NoiseOptions) (*NoiseGenerator, error) {
	if opts.CacheColumns <= 0 {
		opts.CacheColumns = 1024
	}
	columns, err := lru.New(opts.CacheColumns)
	if err != nil {
		return nil, fmt.Errorf("height cache: %w", err)
	}
	return &NoiseGenerator{
		opts:        opts,
		height:      opensimplex.New(opts.Seed),
		biome:       opensimplex.New(opts.Seed + 101),
		caves:       perlin.NewPerlin(2, 2, 3, opts.Seed),
		scale:       1.0 / 96.0,
		octaves:     4,
		persistence: 0.5,
		lacunarity:  2.0,
		biomeScale:  1.0 / 320.0,
		columns:     columns,
	}, nil
}

func (g *NoiseGenerator) biomeField(worldX, worldZ int) float64 {
	return g.biome.Eval2(float64(worldX)*g.biomeScale, float64(worldZ)*g.biomeScale)
}

// BiomeAt returns the biome of the column at world X,Z.
func (g *NoiseGenerator) BiomeAt(worldX, worldZ int) *Biome {
	return BiomeFor(g.biomeField(worldX, worldZ))
}

// HeightAt computes the surface height (block Y) at world X,Z.
func (g *NoiseGenerator) HeightAt(worldX, worldZ int) int {
	return g.heightAt(worldX, worldZ, g.biomeField(worldX, worldZ))
}

func (g *NoiseGenerator) heightAt(worldX, worldZ int, field float64) int {
	x := float64(worldX) * g.scale
	z := float64(worldZ) * g.scale

	var sum, norm float64
	amp, freq := 1.0, 1.0
	for i := 0; i < g.octaves; i++ {
		sum += g.height.Eval2(x*freq, z*freq) * amp
		norm += amp
		amp *= g.persistence
		freq *= g.lacunarity
	}
	n := sum / norm
	return int(math.Floor(float64(g.opts.BaseHeight) + n*g.opts.Amplitude*relief(field)))
}

func (g *NoiseGenerator) column(cx, cz, size int) *column {
	key := columnKey{x: cx, z: cz, size: size}
	if v, ok := g.columns.Get(key); ok {
		return v.(*column)
	}
	col := &column{
		heights: make([]int, size*size),
		biomes:  make([]*Biome, size*size),
	}
	for lz := 0; lz < size; lz++ {
		for lx := 0; lx < size; lx++ {
			wx, wz := cx*size+lx, cz*size+lz
			field := g.biomeField(wx, wz)
			col.heights[lx+lz*size] = g.heightAt(wx, wz, field)
			col.biomes[lx+lz*size] = BiomeFor(field)
		}
	}
	g.columns.Add(key, col)
	return col
}

// Generate fills the chunk at pos.
func (g *NoiseGenerator) Generate(pos ChunkPos, size int) ([]BlockID, error) {
	ox, oy, oz := pos.Origin(size)
	col := g.column(pos.X, pos.Z, size)

	highest := math.MinInt
	for _, h := range col.heights {
		highest = max(highest, h)
	}
	if oy > highest && oy > g.opts.SeaLevel {
		return nil, nil
	}

	blocks := make([]BlockID, size*size*size)
	nonAir := 0
	for ly := 0; ly < size; ly++ {
		wy := oy + ly
		for lz := 0; lz < size; lz++ {
			for lx := 0; lx < size; lx++ {
				i := lx + lz*size
				id := g.blockAt(ox+lx, wy, oz+lz, col.heights[i], col.biomes[i])
				if id != Air {
					blocks[lx+lz*size+ly*size*size] = id
					nonAir++
				}
			}
		}
	}
	if nonAir == 0 {
		return nil, nil
	}
	return blocks, nil
}

func (g *NoiseGenerator) blockAt(wx, wy, wz, h int, b *Biome) BlockID {
	sea := g.opts.SeaLevel
	if wy > h {
		if wy <= sea {
			return BlockWater
		}
		return Air
	}

	if g.opts.Caves && wy < h-4 && g.isCave(wx, wy, wz) {
		return Air
	}

	shore := h <= sea+1
	switch {
	case wy == h:
		if shore {
			return BlockSand
		}
		return b.Top
	case wy > h-4:
		if shore {
			return BlockSand
		}
		return b.Filler
	}
	return g.stoneAt(wx, wy, wz)
}

func (g *NoiseGenerator) isCave(wx, wy, wz int) bool {
	n := g.caves.Noise3D(float64(wx)/24, float64(wy)/16, float64(wz)/24)
	return n > 0.32
}

func (g *NoiseGenerator) stoneAt(wx, wy, wz int) BlockID {
	r := hash3(wx, wy, wz, g.opts.Seed) % 1000
	switch {
	case r < 2 && wy < g.opts.SeaLevel-20:
		return BlockDiamondOre
	case r < 6 && wy < g.opts.SeaLevel-10:
		return BlockGoldOre
	case r < 16:
		return BlockIronOre
	case r < 30:
		return BlockCoalOre
	case r < 60:
		return BlockGravel
	}
	return BlockStone
}

// hash3 is a SplitMix64-style integer hash, stable across runs.
func hash3(x, y, z int, seed int64) uint64 {
	v := uint64(x)*0x9E3779B97F4A7C15 ^ uint64(y)*0xC2B2AE3D27D4EB4F ^ uint64(z)*0x165667B19E3779F9
	v += uint64(seed)
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}
