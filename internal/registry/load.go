package registry

import (
	"fmt"
	"os"

	"voxelforge/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

type fileAtlas struct {
	Columns int `yaml:"columns"`
	Rows    int `yaml:"rows"`
}

type fileBlock struct {
	ID            int        `yaml:"id"`
	Name          string     `yaml:"name"`
	Solid         bool       `yaml:"solid"`
	Transparent   bool       `yaml:"transparent"`
	SelfCulling   bool       `yaml:"self_culling"`
	Liquid        bool       `yaml:"liquid"`
	Breakable     *bool      `yaml:"breakable"`
	LightEmission uint8      `yaml:"light_emission"`
	Tile          *[2]int    `yaml:"tile"`
	Color         [3]float32 `yaml:"color"`
}

type file struct {
	Atlas  fileAtlas   `yaml:"atlas"`
	Blocks []fileBlock `yaml:"blocks"`
}

// Load reads block definitions from a YAML file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read block registry: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Parse builds a registry from YAML block definitions. Air is implicit at id 0.
// Blocks without a tile use (id % columns, id / columns); breakable defaults to true.
func Parse(data []byte) (*Registry, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse block registry: %w", err)
	}
	if f.Atlas.Columns == 0 {
		f.Atlas.Columns = AtlasColumns
	}
	if f.Atlas.Rows == 0 {
		f.Atlas.Rows = AtlasRows
	}
	if f.Atlas.Columns < 0 || f.Atlas.Rows < 0 {
		return nil, fmt.Errorf("atlas grid %dx%d is invalid", f.Atlas.Columns, f.Atlas.Rows)
	}

	r := New(f.Atlas.Columns, f.Atlas.Rows)
	for _, b := range f.Blocks {
		if b.ID < 0 || b.ID >= MaxBlocks {
			return nil, fmt.Errorf("block %q: id %d out of range", b.Name, b.ID)
		}
		p := Properties{
			Name:          b.Name,
			Solid:         b.Solid,
			Transparent:   b.Transparent,
			SelfCulling:   b.SelfCulling,
			Liquid:        b.Liquid,
			Breakable:     true,
			LightEmission: b.LightEmission,
			Tile:          [2]int{b.ID % f.Atlas.Columns, b.ID / f.Atlas.Columns},
			Color:         mgl32.Vec3(b.Color),
		}
		if b.Breakable != nil {
			p.Breakable = *b.Breakable
		}
		if b.Tile != nil {
			p.Tile = *b.Tile
		}
		if err := r.Register(world.BlockID(b.ID), p); err != nil {
			return nil, err
		}
	}
	return r, nil
}
