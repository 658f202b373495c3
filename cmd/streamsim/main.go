// Command streamsim walks an observer through the world without a window and
// logs what the chunk loader does at every step.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"voxelstream/internal/config"
	"voxelstream/internal/meshing"
	"voxelstream/internal/preview"
	"voxelstream/internal/profiling"
	"voxelstream/internal/streaming"
	"voxelstream/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/closer"
)

// vec3Flag parses "x,y,z".
type vec3Flag mgl32.Vec3

func (v *vec3Flag) String() string {
	return fmt.Sprintf("%g,%g,%g", v[0], v[1], v[2])
}

func (v *vec3Flag) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return fmt.Errorf("want x,y,z, got %q", s)
	}
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return fmt.Errorf("component %d: %w", i, err)
		}
		v[i] = float32(f)
	}
	return nil
}

type options struct {
	start   vec3Flag
	step    vec3Flag
	steps   int
	pngPath string
	scale   int
}

func main() {
	defer closer.Close()

	fs := flag.NewFlagSet("streamsim", flag.ExitOnError)
	opts := options{step: vec3Flag{32, 0, 0}}
	fs.Var(&opts.start, "start", "observer start position x,y,z")
	fs.Var(&opts.step, "step", "observer movement per step x,y,z")
	fs.IntVar(&opts.steps, "steps", 8, "number of steps after the start")
	fs.StringVar(&opts.pngPath, "png", "", "write a heightmap of the chunks loaded at the end to this PNG file")
	fs.IntVar(&opts.scale, "scale", 2, "heightmap pixels per voxel column")

	cfg, err := config.Parse(fs, os.Args[1:])
	if err != nil {
		log.Printf("[sim] %v", err)
		closer.Exit(2)
	}

	host := &countingHost{}
	loader, err := streaming.New(cfg, host)
	if err != nil {
		log.Printf("[sim] %v", err)
		closer.Exit(1)
	}
	closer.Bind(func() {
		s := loader.Stats()
		log.Printf("[sim] %d ticks, %d loads, %d unloads, %d generated, %d registered, %d vertices",
			s.Ticks, s.Loads, s.Unloads, s.Generated, s.Registered, s.Vertices)
		log.Printf("[sim] time: %s", profiling.TopN(4))
	})

	if err := simulate(loader, host, opts); err != nil {
		log.Printf("[sim] %v", err)
		closer.Exit(1)
	}
}

// simulate walks the observer, writes the optional preview and always closes
// the loader before returning, error or not.
func simulate(loader *streaming.Loader, host *countingHost, opts options) (err error) {
	defer func() {
		loader.Close()
		if err == nil && host.live != 0 {
			err = fmt.Errorf("%d chunks still spawned after close", host.live)
		}
	}()

	if err := run(loader, opts); err != nil {
		return err
	}
	if opts.pngPath != "" {
		if err := preview.SavePNG(opts.pngPath, loader.Registry(), loader.Loaded(), loader.Config().ChunkSize, opts.scale); err != nil {
			return err
		}
		log.Printf("[sim] wrote %s", opts.pngPath)
	}
	return nil
}

// run ticks the loader at the start position and after every step.
func run(loader *streaming.Loader, opts options) error {
	pos := mgl32.Vec3(opts.start)
	for i := 0; i <= opts.steps; i++ {
		d, err := loader.Tick(pos)
		if err != nil {
			return fmt.Errorf("step %d at %v: %w", i, pos, err)
		}
		chunk, _ := loader.Position()
		if d.Idle {
			log.Printf("[sim] step %d: %v idle in %v", i, pos, chunk)
		} else {
			log.Printf("[sim] step %d: %v in %v: +%d -%d", i, pos, chunk, len(d.Loaded), len(d.Unloaded))
		}
		pos = pos.Add(mgl32.Vec3(opts.step))
	}
	return nil
}

// countingHost tracks how many chunks are spawned.
type countingHost struct {
	streaming.NopHost
	live int
}

func (h *countingHost) Spawn(coord world.ChunkCoord, mesh *meshing.Mesh) streaming.Handle {
	h.live++
	return h.NopHost.Spawn(coord, mesh)
}

func (h *countingHost) Despawn(handle streaming.Handle) {
	h.live--
	h.NopHost.Despawn(handle)
}
