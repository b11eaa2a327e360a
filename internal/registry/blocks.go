package registry

import (
	"fmt"
	"sort"

	"voxelforge/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Default atlas grid: 8 columns by 4 rows of square tiles.
const (
	AtlasColumns = 8
	AtlasRows    = 4
)

// MaxBlocks bounds the id space of a registry.
const MaxBlocks = 4096

// Properties describes how a block type behaves and renders.
type Properties struct {
	Name string
	// Solid blocks stop movement. Meshing only cares whether a block is air.
	Solid bool
	// Transparent blocks let neighbouring faces show through them.
	Transparent bool
	// SelfCulling transparent blocks hide the faces shared with the same block type.
	SelfCulling bool
	Liquid      bool
	Breakable   bool
	// LightEmission is 0..15.
	LightEmission uint8
	// Tile is the (column, row) of the block's texture in the atlas.
	Tile [2]int
	// Color is the base colour used by the procedural atlas.
	Color mgl32.Vec3
}

// Opaque reports whether the block hides faces behind it and occludes for AO.
func (p Properties) Opaque() bool {
	return !p.Transparent
}

// Registry maps block ids to properties. It is read-only after construction
// and safe for concurrent reads.
type Registry struct {
	props  []Properties
	known  []bool
	byName map[string]world.BlockID

	atlasCols int
	atlasRows int
}

// New creates a registry holding only air, for an atlas of cols×rows tiles.
func New(cols, rows int) *Registry {
	r := &Registry{
		byName:    make(map[string]world.BlockID),
		atlasCols: cols,
		atlasRows: rows,
	}
	r.put(world.Air, Properties{Name: "air", Transparent: true})
	return r
}

func (r *Registry) put(id world.BlockID, p Properties) {
	for int(id) >= len(r.props) {
		r.props = append(r.props, Properties{})
		r.known = append(r.known, false)
	}
	r.props[id] = p
	r.known[id] = true
	r.byName[p.Name] = id
}

// Register adds a block type. Ids must be unique, non-zero and below MaxBlocks;
// names must be unique; the tile must lie inside the atlas.
func (r *Registry) Register(id world.BlockID, p Properties) error {
	switch {
	case id == world.Air:
		return fmt.Errorf("block %q: id 0 is reserved for air", p.Name)
	case int(id) >= MaxBlocks:
		return fmt.Errorf("block %q: id %d exceeds %d", p.Name, id, MaxBlocks-1)
	case p.Name == "":
		return fmt.Errorf("block %d: missing name", id)
	case r.Has(id):
		return fmt.Errorf("block %q: id %d already registered as %q", p.Name, id, r.props[id].Name)
	case p.LightEmission > 15:
		return fmt.Errorf("block %q: light emission %d out of range 0..15", p.Name, p.LightEmission)
	case p.Tile[0] < 0 || p.Tile[0] >= r.atlasCols || p.Tile[1] < 0 || p.Tile[1] >= r.atlasRows:
		return fmt.Errorf("block %q: tile %v outside %dx%d atlas", p.Name, p.Tile, r.atlasCols, r.atlasRows)
	}
	if other, ok := r.byName[p.Name]; ok {
		return fmt.Errorf("block %q: name already used by id %d", p.Name, other)
	}
	r.put(id, p)
	return nil
}

// MustRegister is Register for static tables; it panics on error.
func (r *Registry) MustRegister(id world.BlockID, p Properties) {
	if err := r.Register(id, p); err != nil {
		panic(err)
	}
}

// Has reports whether id is registered.
func (r *Registry) Has(id world.BlockID) bool {
	return int(id) < len(r.known) && r.known[id]
}

// Properties returns the properties of id. An unknown id means generation or an
// edit produced corrupt data, so it panics rather than guessing.
func (r *Registry) Properties(id world.BlockID) Properties {
	if !r.Has(id) {
		panic(fmt.Sprintf("registry: unknown block id %d", id))
	}
	return r.props[id]
}

// Lookup finds a block by name.
func (r *Registry) Lookup(name string) (world.BlockID, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// IDs returns every registered id in ascending order, air included.
func (r *Registry) IDs() []world.BlockID {
	ids := make([]world.BlockID, 0, len(r.byName))
	for id, ok := range r.known {
		if ok {
			ids = append(ids, world.BlockID(id))
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len returns the size of the id table (highest id + 1).
func (r *Registry) Len() int {
	return len(r.props)
}

// AtlasSize returns the atlas grid dimensions in tiles.
func (r *Registry) AtlasSize() (cols, rows int) {
	return r.atlasCols, r.atlasRows
}

// AtlasOrigin returns the normalised UV of the top-left corner of id's tile.
func (r *Registry) AtlasOrigin(id world.BlockID) mgl32.Vec2 {
	t := r.Properties(id).Tile
	return mgl32.Vec2{
		float32(t[0]) / float32(r.atlasCols),
		float32(t[1]) / float32(r.atlasRows),
	}
}

// TileSize returns the normalised UV extent of one tile.
func (r *Registry) TileSize() mgl32.Vec2 {
	return mgl32.Vec2{1 / float32(r.atlasCols), 1 / float32(r.atlasRows)}
}

func defaultTile(id world.BlockID) [2]int {
	return [2]int{int(id) % AtlasColumns, int(id) / AtlasColumns}
}

var (
	solid       = Properties{Solid: true, Breakable: true}
	transparent = Properties{Solid: true, Transparent: true, Breakable: true}
	liquid      = Properties{Transparent: true, Liquid: true, SelfCulling: true}
)

func with(p Properties, name string, color mgl32.Vec3) Properties {
	p.Name = name
	p.Color = color
	return p
}

// Default returns the standard block set.
func Default() *Registry {
	r := New(AtlasColumns, AtlasRows)
	glass := with(transparent, "glass", mgl32.Vec3{0.8, 0.9, 1.0})
	glass.SelfCulling = true
	bedrock := with(solid, "bedrock", mgl32.Vec3{0.2, 0.2, 0.2})
	bedrock.Breakable = false

	defs := []struct {
		id world.BlockID
		p  Properties
	}{
		{world.BlockStone, with(solid, "stone", mgl32.Vec3{0.5, 0.5, 0.5})},
		{world.BlockDirt, with(solid, "dirt", mgl32.Vec3{0.55, 0.35, 0.2})},
		{world.BlockGrass, with(solid, "grass", mgl32.Vec3{0.3, 0.6, 0.2})},
		{world.BlockSand, with(solid, "sand", mgl32.Vec3{0.9, 0.85, 0.6})},
		{world.BlockGravel, with(solid, "gravel", mgl32.Vec3{0.55, 0.55, 0.55})},
		{world.BlockLog, with(solid, "log", mgl32.Vec3{0.4, 0.25, 0.1})},
		{world.BlockLeaves, with(transparent, "leaves", mgl32.Vec3{0.2, 0.5, 0.15})},
		{world.BlockGlass, glass},
		{world.BlockWater, with(liquid, "water", mgl32.Vec3{0.2, 0.4, 0.8})},
		{world.BlockCobblestone, with(solid, "cobblestone", mgl32.Vec3{0.45, 0.45, 0.45})},
		{world.BlockPlanks, with(solid, "planks", mgl32.Vec3{0.7, 0.5, 0.3})},
		{world.BlockBricks, with(solid, "bricks", mgl32.Vec3{0.6, 0.3, 0.25})},
		{world.BlockCoalOre, with(solid, "coal_ore", mgl32.Vec3{0.3, 0.3, 0.3})},
		{world.BlockIronOre, with(solid, "iron_ore", mgl32.Vec3{0.6, 0.55, 0.5})},
		{world.BlockGoldOre, with(solid, "gold_ore", mgl32.Vec3{0.9, 0.8, 0.3})},
		{world.BlockDiamondOre, with(solid, "diamond_ore", mgl32.Vec3{0.4, 0.8, 0.9})},
		{world.BlockBedrock, bedrock},
	}
	for _, d := range defs {
		d.p.Tile = defaultTile(d.id)
		r.MustRegister(d.id, d.p)
	}
	return r
}
