package config

import (
	"flag"
)

// BindFlags registers command-line overrides for cfg on fs.
func BindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.ChunkSize, "chunk-size", cfg.ChunkSize, "voxels per chunk axis")
	fs.IntVar(&cfg.ViewDistance, "view-distance", cfg.ViewDistance, "loaded radius around the observer, in chunks")
	fs.Int64Var(&cfg.Noise.Seed, "seed", cfg.Noise.Seed, "terrain noise seed")
	fs.StringVar(&cfg.Noise.Kind, "noise", cfg.Noise.Kind, "noise kind: perlin_fractal, perlin, value, value_fractal")
	fs.Func("unload-policy", "unload policy: box or legacy", func(s string) error {
		cfg.UnloadPolicy = UnloadPolicy(s)
		return nil
	})
	fs.BoolVar(&cfg.EvictOnUnload, "evict", cfg.EvictOnUnload, "drop voxel data when a chunk unloads")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "log every chunk load and unload")
}

// Explicit returns the names of the flags that were set on the command line.
func Explicit(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// Merge applies file-loaded values onto cfg, except for fields whose flag was
// given explicitly on the command line.
func Merge(cfg *Config, fromFile Config, explicit map[string]bool) {
	if !explicit["chunk-size"] {
		cfg.ChunkSize = fromFile.ChunkSize
	}
	if !explicit["view-distance"] {
		cfg.ViewDistance = fromFile.ViewDistance
	}
	if !explicit["seed"] {
		cfg.Noise.Seed = fromFile.Noise.Seed
	}
	if !explicit["noise"] {
		cfg.Noise.Kind = fromFile.Noise.Kind
	}
	if !explicit["unload-policy"] {
		cfg.UnloadPolicy = fromFile.UnloadPolicy
	}
	if !explicit["evict"] {
		cfg.EvictOnUnload = fromFile.EvictOnUnload
	}
	if !explicit["v"] {
		cfg.Verbose = fromFile.Verbose
	}
	// no flags for these
	cfg.HeightScale = fromFile.HeightScale
	cfg.Noise.Frequency = fromFile.Noise.Frequency
	cfg.Noise.Octaves = fromFile.Noise.Octaves
	cfg.Noise.Lacunarity = fromFile.Noise.Lacunarity
	cfg.Noise.Gain = fromFile.Noise.Gain
}

// Parse binds the config flags plus -config on fs, parses args, and layers
// the result: defaults, then the YAML file if one was named, then flags the
// user set explicitly. The merged config is validated.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Default()
	BindFlags(fs, &cfg)
	path := fs.String("config", "", "YAML config file")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if *path != "" {
		fromFile, err := Load(*path)
		if err != nil {
			return cfg, err
		}
		Merge(&cfg, fromFile, Explicit(fs))
	}
	return cfg, cfg.Validate()
}
