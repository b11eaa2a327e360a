package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"voxelforge/internal/world"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Render distance limits in chunks; values outside are clamped.
const (
	MinRenderDistance = 1
	MaxRenderDistance = 32
)

// Retry bounds the backoff between failed generation attempts.
type Retry struct {
	Initial time.Duration `yaml:"initial"`
	Max     time.Duration `yaml:"max"`
}

// World selects and tunes the terrain generator.
type World struct {
	Seed int64 `yaml:"seed"`
	// Generator is "noise" or "flat".
	Generator  string `yaml:"generator"`
	SeaLevel   int    `yaml:"sea_level"`
	FlatHeight int    `yaml:"flat_height"`
	Caves      bool   `yaml:"caves"`
}

// Config is read once at startup.
type Config struct {
	ChunkSize        int `yaml:"chunk_size"`
	RenderDistance   int `yaml:"render_distance"`
	VerticalDistance int `yaml:"vertical_distance"`
	UnloadMargin     int `yaml:"unload_margin"`
	// Workers is the worker pool size; 0 picks one less than the CPU count.
	Workers                 int   `yaml:"workers"`
	QueueSize               int   `yaml:"queue_size"`
	MaxIntegrationsPerFrame int   `yaml:"max_integrations_per_frame"`
	Retry                   Retry `yaml:"retry"`
	World                   World `yaml:"world"`
	// Blocks is an optional block definition file; empty uses the built-in set.
	Blocks string `yaml:"blocks"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ChunkSize:        world.DefaultChunkSize,
		RenderDistance:   8,
		VerticalDistance: 4,
		UnloadMargin:     1,
		QueueSize:        256,
		Retry: Retry{
			Initial: 100 * time.Millisecond,
			Max:     5 * time.Second,
		},
		World: World{
			Seed:       1337,
			Generator:  "noise",
			SeaLevel:   28,
			FlatHeight: 4,
			Caves:      true,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML over the defaults and validates the result.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Parse(data []byte) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects unusable values and clamps the window distances into range.
func (c *Config) Validate() error {
	if c.ChunkSize < 1 || c.ChunkSize > world.MaxChunkSize {
		return fmt.Errorf("%w: chunk_size %d not in 1..%d", ErrInvalid, c.ChunkSize, world.MaxChunkSize)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d is negative", ErrInvalid, c.Workers)
	}
	if c.QueueSize < 1 {
		return fmt.Errorf("%w: queue_size must be at least 1", ErrInvalid)
	}
	if c.UnloadMargin < 0 || c.MaxIntegrationsPerFrame < 0 {
		return fmt.Errorf("%w: unload_margin and max_integrations_per_frame must not be negative", ErrInvalid)
	}
	if c.Retry.Initial <= 0 || c.Retry.Max < c.Retry.Initial {
		return fmt.Errorf("%w: retry interval %v..%v", ErrInvalid, c.Retry.Initial, c.Retry.Max)
	}
	switch c.World.Generator {
	case "noise", "flat":
	default:
		return fmt.Errorf("%w: unknown generator %q", ErrInvalid, c.World.Generator)
	}

	c.RenderDistance = clamp(c.RenderDistance, MinRenderDistance, MaxRenderDistance)
	c.VerticalDistance = clamp(c.VerticalDistance, 0, MaxRenderDistance)
	return nil
}

// WorkerCount resolves Workers, where 0 means automatic.
func (c Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return max(runtime.NumCPU()-1, 1)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
