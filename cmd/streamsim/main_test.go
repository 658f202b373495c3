package main

import (
	"errors"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"voxelstream/internal/config"
	"voxelstream/internal/streaming"
	"voxelstream/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

func TestVec3Flag(t *testing.T) {
	var v vec3Flag
	if err := v.Set("1.5, -2,32"); err != nil {
		t.Fatal(err)
	}
	if mgl32.Vec3(v) != (mgl32.Vec3{1.5, -2, 32}) {
		t.Errorf("parsed %v", v)
	}
	if v.String() != "1.5,-2,32" {
		t.Errorf("String() = %q", v.String())
	}
	for _, bad := range []string{"1,2", "a,b,c", ""} {
		if err := v.Set(bad); err == nil {
			t.Errorf("Set(%q) accepted", bad)
		}
	}
}

func TestRunWalksObserver(t *testing.T) {
	cfg := config.Default()
	cfg.ChunkSize = 4
	host := &countingHost{}
	loader, err := streaming.New(cfg, host, streaming.WithLogger(log.New(io.Discard, "", 0)))
	if err != nil {
		t.Fatal(err)
	}
	out := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(out)

	opts := options{step: vec3Flag{4, 0, 0}, steps: 3}
	if err := run(loader, opts); err != nil {
		t.Fatal(err)
	}
	if pos, _ := loader.Position(); pos.X != 3 {
		t.Errorf("observer ended in %v, want chunk x=3", pos)
	}
	if host.live != 27 {
		t.Errorf("%d chunks spawned, want 27", host.live)
	}
	if s := loader.Stats(); s.Loads != 27+3*9 || s.Unloads != 3*9 {
		t.Errorf("unexpected stats %+v", s)
	}
	loader.Close()
	if host.live != 0 {
		t.Errorf("%d chunks left after Close", host.live)
	}
}

// TestSimulateClosesOnError checks the loader despawns everything even when
// the walk fails part way.
func TestSimulateClosesOnError(t *testing.T) {
	cfg := config.Default()
	cfg.ChunkSize = 4
	host := &countingHost{}
	loader, err := streaming.New(cfg, host, streaming.WithLogger(log.New(io.Discard, "", 0)))
	if err != nil {
		t.Fatal(err)
	}
	out := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(out)

	// the second step leaves the exact float range
	opts := options{step: vec3Flag{1e9, 0, 0}, steps: 1}
	if err := simulate(loader, host, opts); !errors.Is(err, world.ErrOutOfBounds) {
		t.Fatalf("simulate() = %v, want ErrOutOfBounds", err)
	}
	if loader.Stats().Loads != 27 {
		t.Errorf("first step did not load: %+v", loader.Stats())
	}
	if host.live != 0 {
		t.Errorf("%d chunks left spawned after a failed walk", host.live)
	}
}

func TestSimulateWritesPreview(t *testing.T) {
	cfg := config.Default()
	cfg.ChunkSize = 4
	host := &countingHost{}
	loader, err := streaming.New(cfg, host, streaming.WithLogger(log.New(io.Discard, "", 0)))
	if err != nil {
		t.Fatal(err)
	}
	out := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(out)

	path := filepath.Join(t.TempDir(), "walk.png")
	opts := options{step: vec3Flag{4, 0, 0}, steps: 2, pngPath: path, scale: 1}
	if err := simulate(loader, host, opts); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	// only the final 3x3 column of loaded chunks is drawn
	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 12 {
		t.Errorf("preview bounds %v, want 12x12", b)
	}
	if host.live != 0 {
		t.Errorf("%d chunks left spawned", host.live)
	}
}
