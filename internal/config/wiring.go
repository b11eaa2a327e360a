package config

import (
	"fmt"
	"log"

	"voxelforge/internal/registry"
	"voxelforge/internal/streaming"
	"voxelforge/internal/world"
)

// NewRegistry loads the configured block file, or the built-in block set.
func (c Config) NewRegistry() (*registry.Registry, error) {
	if c.Blocks == "" {
		return registry.Default(), nil
	}
	reg, err := registry.Load(c.Blocks)
	if err != nil {
		return nil, fmt.Errorf("blocks: %w", err)
	}
	return reg, nil
}

// NewGenerator builds the configured terrain generator.
func (c Config) NewGenerator() (world.Generator, error) {
	switch c.World.Generator {
	case "flat":
		return world.NewFlatGenerator(c.World.FlatHeight), nil
	case "noise":
		opts := world.DefaultNoiseOptions(c.World.Seed)
		opts.SeaLevel = c.World.SeaLevel
		opts.Caves = c.World.Caves
		gen, err := world.NewNoiseGenerator(opts)
		if err != nil {
			return nil, fmt.Errorf("noise generator: %w", err)
		}
		return gen, nil
	}
	return nil, fmt.Errorf("%w: unknown generator %q", ErrInvalid, c.World.Generator)
}

// StreamingOptions maps the config onto manager options.
func (c Config) StreamingOptions() streaming.Options {
	return streaming.Options{
		ChunkSize:        c.ChunkSize,
		RenderDistance:   c.RenderDistance,
		VerticalDistance: c.VerticalDistance,
		UnloadMargin:     c.UnloadMargin,
		Workers:          c.WorkerCount(),
		QueueSize:        c.QueueSize,
		MaxIntegrations:  c.MaxIntegrationsPerFrame,
		RetryInitial:     c.Retry.Initial,
		RetryMax:         c.Retry.Max,
	}
}

// LogSummary prints the settings that shape streaming cost.
func (c Config) LogSummary() {
	log.Printf("config: chunk=%d render=%d vertical=%d margin=%d workers=%d queue=%d generator=%s seed=%d",
		c.ChunkSize, c.RenderDistance, c.VerticalDistance, c.UnloadMargin,
		c.WorkerCount(), c.QueueSize, c.World.Generator, c.World.Seed)
}
