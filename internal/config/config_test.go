package config

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"voxelstream/internal/world"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config rejected: %v", err)
	}
	if cfg.ChunkSize != 32 || cfg.ViewDistance != 1 || cfg.HeightScale != 20 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	nc, err := cfg.NoiseConfig()
	if err != nil {
		t.Fatal(err)
	}
	if nc.Kind != world.NoisePerlinFractal || nc.Seed != 1234 || nc.Frequency != 0.04 {
		t.Errorf("unexpected noise defaults: %+v", nc)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"zero chunk size":     func(c *Config) { c.ChunkSize = 0 },
		"negative chunk size": func(c *Config) { c.ChunkSize = -4 },
		"huge chunk size":     func(c *Config) { c.ChunkSize = world.MaxChunkSize + 1 },
		"negative view":       func(c *Config) { c.ViewDistance = -1 },
		"huge view":           func(c *Config) { c.ViewDistance = MaxViewDistance + 1 },
		"zero height scale":   func(c *Config) { c.HeightScale = 0 },
		"bad policy":          func(c *Config) { c.UnloadPolicy = "sphere" },
		"bad noise kind":      func(c *Config) { c.Noise.Kind = "simplex" },
		"zero frequency":      func(c *Config) { c.Noise.Frequency = 0 },
		"zero octaves":        func(c *Config) { c.Noise.Octaves = 0 },
		"zero lacunarity":     func(c *Config) { c.Noise.Lacunarity = 0 },
		"gain above one":      func(c *Config) { c.Noise.Gain = 1.5 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestZeroViewDistanceAllowed(t *testing.T) {
	cfg := Default()
	cfg.ViewDistance = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("view_distance 0 rejected: %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stream.yaml")
	data := []byte(`
chunk_size: 16
view_distance: 3
unload_policy: legacy
noise:
  seed: 99
  kind: value
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ChunkSize != 16 || cfg.ViewDistance != 3 || cfg.UnloadPolicy != UnloadLegacy {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Noise.Seed != 99 || cfg.Noise.Kind != "value" {
		t.Errorf("unexpected noise: %+v", cfg.Noise)
	}
	// untouched keys keep defaults
	if cfg.HeightScale != world.DefaultHeightScale || cfg.Noise.Octaves != 3 {
		t.Errorf("defaults not preserved: %+v", cfg)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("chunk_size: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Load() = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load() = %v, want ErrNotExist", err)
	}
}

func TestMergeKeepsExplicitFlags(t *testing.T) {
	cfg := Default()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	BindFlags(fs, &cfg)
	if err := fs.Parse([]string{"-view-distance", "5", "-unload-policy", "legacy"}); err != nil {
		t.Fatal(err)
	}

	fromFile := Default()
	fromFile.ViewDistance = 2
	fromFile.ChunkSize = 8
	fromFile.UnloadPolicy = UnloadBox
	Merge(&cfg, fromFile, Explicit(fs))

	if cfg.ViewDistance != 5 {
		t.Errorf("ViewDistance = %d, want flag value 5", cfg.ViewDistance)
	}
	if cfg.UnloadPolicy != UnloadLegacy {
		t.Errorf("UnloadPolicy = %q, want flag value legacy", cfg.UnloadPolicy)
	}
	if cfg.ChunkSize != 8 {
		t.Errorf("ChunkSize = %d, want file value 8", cfg.ChunkSize)
	}
}

func TestParseLayersFileAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stream.yaml")
	if err := os.WriteFile(path, []byte("chunk_size: 8\nview_distance: 4\nheight_scale: 12\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := Parse(fs, []string{"-config", path, "-view-distance", "2", "-seed", "7"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ChunkSize != 8 || cfg.HeightScale != 12 {
		t.Errorf("file values lost: %+v", cfg)
	}
	if cfg.ViewDistance != 2 || cfg.Noise.Seed != 7 {
		t.Errorf("flag values lost: %+v", cfg)
	}
}

func TestParseRejectsInvalidFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if _, err := Parse(fs, []string{"-unload-policy", "sphere"}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Parse() = %v, want ErrInvalidConfig", err)
	}
}
