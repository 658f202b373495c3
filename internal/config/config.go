package config

import (
	"errors"
	"fmt"
	"os"

	"voxelstream/internal/world"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// MaxViewDistance bounds the loaded box to (2*64+1)³ chunks.
const MaxViewDistance = 64

// UnloadPolicy selects how the loader decides which chunks to drop.
type UnloadPolicy string

const (
	// UnloadBox drops chunks outside the view box around the new position.
	UnloadBox UnloadPolicy = "box"
	// UnloadLegacy drops chunks whose Manhattan distance from the previous
	// position exceeds the view distance, checked after loading.
	UnloadLegacy UnloadPolicy = "legacy"
)

// Config holds everything the streaming core needs.
type Config struct {
	ChunkSize     int          `yaml:"chunk_size"`
	ViewDistance  int          `yaml:"view_distance"` // in chunks
	HeightScale   float32      `yaml:"height_scale"`
	UnloadPolicy  UnloadPolicy `yaml:"unload_policy"`
	EvictOnUnload bool         `yaml:"evict_on_unload"` // also drop voxel data from the registry
	Verbose       bool         `yaml:"verbose"`         // log every chunk load/unload

	Noise Noise `yaml:"noise"`
}

// Noise is the YAML form of world.NoiseConfig.
type Noise struct {
	Seed       int64   `yaml:"seed"`
	Kind       string  `yaml:"kind"`
	Frequency  float32 `yaml:"frequency"`
	Octaves    int     `yaml:"octaves"`
	Lacunarity float32 `yaml:"lacunarity"`
	Gain       float32 `yaml:"gain"`
}

// Default returns the stock configuration.
func Default() Config {
	n := world.DefaultNoiseConfig()
	return Config{
		ChunkSize:    world.DefaultChunkSize,
		ViewDistance: 1,
		HeightScale:  world.DefaultHeightScale,
		UnloadPolicy: UnloadBox,
		Noise: Noise{
			Seed:       n.Seed,
			Kind:       n.Kind.String(),
			Frequency:  n.Frequency,
			Octaves:    n.Octaves,
			Lacunarity: n.Lacunarity,
			Gain:       n.Gain,
		},
	}
}

// Load reads a YAML file on top of the defaults. Keys missing from the file
// keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations the core cannot run with.
func (c Config) Validate() error {
	if c.ChunkSize <= 0 || c.ChunkSize > world.MaxChunkSize {
		return fmt.Errorf("%w: chunk_size must be in [1, %d], got %d", ErrInvalidConfig, world.MaxChunkSize, c.ChunkSize)
	}
	if c.ViewDistance < 0 || c.ViewDistance > MaxViewDistance {
		return fmt.Errorf("%w: view_distance must be in [0, %d], got %d", ErrInvalidConfig, MaxViewDistance, c.ViewDistance)
	}
	if c.HeightScale <= 0 {
		return fmt.Errorf("%w: height_scale must be positive, got %v", ErrInvalidConfig, c.HeightScale)
	}
	switch c.UnloadPolicy {
	case UnloadBox, UnloadLegacy:
	default:
		return fmt.Errorf("%w: unknown unload_policy %q", ErrInvalidConfig, c.UnloadPolicy)
	}
	if _, err := c.NoiseConfig(); err != nil {
		return err
	}
	return nil
}

// NoiseConfig converts the noise section into a sampler configuration.
func (c Config) NoiseConfig() (world.NoiseConfig, error) {
	kind, err := world.ParseNoiseKind(c.Noise.Kind)
	if err != nil {
		return world.NoiseConfig{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Noise.Frequency <= 0 {
		return world.NoiseConfig{}, fmt.Errorf("%w: noise.frequency must be positive, got %v", ErrInvalidConfig, c.Noise.Frequency)
	}
	if c.Noise.Octaves < 1 || c.Noise.Octaves > 16 {
		return world.NoiseConfig{}, fmt.Errorf("%w: noise.octaves must be in [1, 16], got %d", ErrInvalidConfig, c.Noise.Octaves)
	}
	if c.Noise.Lacunarity <= 0 {
		return world.NoiseConfig{}, fmt.Errorf("%w: noise.lacunarity must be positive, got %v", ErrInvalidConfig, c.Noise.Lacunarity)
	}
	if c.Noise.Gain <= 0 || c.Noise.Gain > 1 {
		return world.NoiseConfig{}, fmt.Errorf("%w: noise.gain must be in (0, 1], got %v", ErrInvalidConfig, c.Noise.Gain)
	}
	return world.NoiseConfig{
		Seed:       c.Noise.Seed,
		Kind:       kind,
		Frequency:  c.Noise.Frequency,
		Octaves:    c.Noise.Octaves,
		Lacunarity: c.Noise.Lacunarity,
		Gain:       c.Noise.Gain,
	}, nil
}
