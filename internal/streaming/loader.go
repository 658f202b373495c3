package streaming

import (
	"fmt"
	"log"
	"slices"

	"voxelstream/internal/config"
	"voxelstream/internal/meshing"
	"voxelstream/internal/profiling"
	"voxelstream/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Delta describes what a tick changed. Both lists are sorted.
type Delta struct {
	Loaded   []world.ChunkCoord
	Unloaded []world.ChunkCoord
	Idle     bool // observer stayed in the same chunk
}

// Stats are cumulative counters for a Loader.
type Stats struct {
	Ticks      int // ticks that reconciled (idle ticks excluded)
	Loads      int
	Unloads    int
	Generated  int // chunks generated on a registry miss
	Vertices   int // vertices handed to the host
	Indices    int // indices handed to the host
	Loaded     int // currently loaded chunks
	Registered int // chunks held by the registry
}

// Loader keeps the chunks around one observer loaded. It is driven by the
// host calling Tick with the observer position; it is not safe for
// concurrent use.
type Loader struct {
	cfg    config.Config
	gen    *world.Generator
	store  *world.ChunkStore
	host   Host
	logger *log.Logger

	last    world.ChunkCoord
	hasLast bool

	// loaded and handles always hold the same coordinates
	loaded  map[world.ChunkCoord]struct{}
	handles map[world.ChunkCoord]Handle

	stats Stats
}

// Option customises a Loader.
type Option func(*Loader)

// WithLogger sends loader logs to l.
func WithLogger(l *log.Logger) Option {
	return func(ld *Loader) { ld.logger = l }
}

// WithRegistry makes the loader use an existing registry instead of a fresh one.
func WithRegistry(store *world.ChunkStore) Option {
	return func(ld *Loader) { ld.store = store }
}

// New validates cfg and builds a loader that presents chunks through host.
func New(cfg config.Config, host Host, opts ...Option) (*Loader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if host == nil {
		return nil, fmt.Errorf("%w: nil host", config.ErrInvalidConfig)
	}
	noise, err := cfg.NoiseConfig()
	if err != nil {
		return nil, err
	}

	ld := &Loader{
		cfg:     cfg,
		gen:     world.NewGenerator(world.NewSampler(noise), cfg.ChunkSize, cfg.HeightScale),
		host:    host,
		logger:  log.Default(),
		loaded:  make(map[world.ChunkCoord]struct{}),
		handles: make(map[world.ChunkCoord]Handle),
	}
	for _, opt := range opts {
		opt(ld)
	}
	if ld.store == nil {
		ld.store = world.NewChunkStore()
	}
	return ld, nil
}

// Tick reconciles the loaded set against the observer's world position.
func (ld *Loader) Tick(pos mgl32.Vec3) (Delta, error) {
	coord, err := world.ChunkAtPosition(pos, ld.cfg.ChunkSize)
	if err != nil {
		return Delta{}, err
	}
	return ld.TickChunk(coord)
}

// TickChunk reconciles the loaded set for an observer standing in chunk c.
// Nothing happens when c equals the chunk of the previous tick.
func (ld *Loader) TickChunk(c world.ChunkCoord) (Delta, error) {
	if ld.hasLast && c == ld.last {
		return Delta{Idle: true}, nil
	}
	if err := ld.checkBounds(c); err != nil {
		return Delta{}, err
	}
	defer profiling.Track("streaming.Tick")()

	old := c
	if ld.hasLast {
		old = ld.last
	}

	var d Delta
	for _, coord := range ld.ChunksToLoad(c) {
		ld.load(coord)
		d.Loaded = append(d.Loaded, coord)
	}
	// without a previous position there is nothing to measure an unload from
	if ld.hasLast {
		for _, coord := range ld.ChunksToUnload(old, c) {
			ld.unload(coord)
			d.Unloaded = append(d.Unloaded, coord)
		}
	}
	slices.SortFunc(d.Loaded, world.CompareCoords)

	if ld.hasLast {
		ld.logger.Printf("[stream] %v -> %v: +%d -%d, %d loaded", old, c, len(d.Loaded), len(d.Unloaded), len(ld.loaded))
	} else {
		ld.logger.Printf("[stream] start at %v: +%d, %d loaded", c, len(d.Loaded), len(ld.loaded))
	}

	ld.last = c
	ld.hasLast = true
	ld.stats.Ticks++
	ld.checkLockstep()
	return d, nil
}

// ChunksToLoad lists the coordinates in the view box around center that are
// not loaded yet, in x, y, z scan order.
func (ld *Loader) ChunksToLoad(center world.ChunkCoord) []world.ChunkCoord {
	r := int64(ld.cfg.ViewDistance)
	cx, cy, cz := int64(center.X), int64(center.Y), int64(center.Z)
	var out []world.ChunkCoord
	for x := cx - r; x <= cx+r; x++ {
		for y := cy - r; y <= cy+r; y++ {
			for z := cz - r; z <= cz+r; z++ {
				coord := world.ChunkCoord{X: int32(x), Y: int32(y), Z: int32(z)}
				if _, ok := ld.loaded[coord]; !ok {
					out = append(out, coord)
				}
			}
		}
	}
	return out
}

// ChunksToUnload lists the loaded coordinates to drop when the observer moves
// from old to current, according to the configured policy. The result is sorted.
func (ld *Loader) ChunksToUnload(old, current world.ChunkCoord) []world.ChunkCoord {
	vd := ld.cfg.ViewDistance
	var out []world.ChunkCoord
	for coord := range ld.loaded {
		var drop bool
		switch ld.cfg.UnloadPolicy {
		case config.UnloadLegacy:
			drop = coord.Manhattan(old) > int64(vd)
		default:
			drop = !coord.WithinBox(current, vd)
		}
		if drop {
			out = append(out, coord)
		}
	}
	slices.SortFunc(out, world.CompareCoords)
	return out
}

func (ld *Loader) load(coord world.ChunkCoord) {
	chunk, ok := ld.store.Get(coord)
	if !ok {
		chunk = ld.gen.Generate(coord)
		ld.store.Insert(coord, chunk)
		ld.stats.Generated++
	}

	mesh := meshing.Build(coord, chunk)
	if err := mesh.Validate(); err != nil {
		panic(fmt.Sprintf("streaming: mesh for %v: %v", coord, err))
	}

	h := ld.host.Spawn(coord, mesh)
	ld.loaded[coord] = struct{}{}
	ld.handles[coord] = h

	ld.stats.Loads++
	ld.stats.Vertices += mesh.VertexCount()
	ld.stats.Indices += len(mesh.Indices)
	if ld.cfg.Verbose {
		ld.logger.Printf("[stream] loaded chunk at %v (%d solid, %d vertices)", coord, chunk.SolidCount(), mesh.VertexCount())
	}
}

func (ld *Loader) unload(coord world.ChunkCoord) {
	h, ok := ld.handles[coord]
	if !ok {
		panic(fmt.Sprintf("streaming: unloading %v without a handle", coord))
	}
	delete(ld.handles, coord)
	ld.host.Despawn(h)
	delete(ld.loaded, coord)

	if ld.cfg.EvictOnUnload {
		ld.store.Remove(coord)
	}
	ld.stats.Unloads++
	if ld.cfg.Verbose {
		ld.logger.Printf("[stream] unloaded chunk at %v", coord)
	}
}

// checkBounds rejects observer chunks whose view box would leave the range
// where mesh positions are exact.
func (ld *Loader) checkBounds(c world.ChunkCoord) error {
	r := int64(ld.cfg.ViewDistance)
	size := int64(ld.cfg.ChunkSize)
	limit := int64(world.MaxExactExtent)
	for _, v := range [3]int32{c.X, c.Y, c.Z} {
		lo := (int64(v) - r) * size
		hi := (int64(v) + r + 1) * size
		if lo < -limit || hi > limit {
			return fmt.Errorf("%w: view box around chunk %v", world.ErrOutOfBounds, c)
		}
	}
	return nil
}

func (ld *Loader) checkLockstep() {
	if len(ld.loaded) != len(ld.handles) {
		panic(fmt.Sprintf("streaming: %d loaded chunks but %d handles", len(ld.loaded), len(ld.handles)))
	}
	for coord := range ld.loaded {
		if _, ok := ld.handles[coord]; !ok {
			panic(fmt.Sprintf("streaming: loaded chunk %v has no handle", coord))
		}
	}
}

// Position returns the chunk of the last reconciled tick.
func (ld *Loader) Position() (world.ChunkCoord, bool) {
	return ld.last, ld.hasLast
}

// IsLoaded reports whether coord is currently loaded.
func (ld *Loader) IsLoaded(coord world.ChunkCoord) bool {
	_, ok := ld.loaded[coord]
	return ok
}

// Loaded returns the loaded coordinates, sorted.
func (ld *Loader) Loaded() []world.ChunkCoord {
	out := make([]world.ChunkCoord, 0, len(ld.loaded))
	for coord := range ld.loaded {
		out = append(out, coord)
	}
	slices.SortFunc(out, world.CompareCoords)
	return out
}

// Handle returns the host handle of a loaded chunk.
func (ld *Loader) Handle(coord world.ChunkCoord) (Handle, bool) {
	h, ok := ld.handles[coord]
	return h, ok
}

// Registry returns the chunk registry the loader writes to.
func (ld *Loader) Registry() *world.ChunkStore { return ld.store }

// Generator returns the voxel field generator.
func (ld *Loader) Generator() *world.Generator { return ld.gen }

// Config returns the validated configuration.
func (ld *Loader) Config() config.Config { return ld.cfg }

// Stats returns cumulative counters.
func (ld *Loader) Stats() Stats {
	s := ld.stats
	s.Loaded = len(ld.loaded)
	s.Registered = ld.store.Len()
	return s
}

// Close despawns every loaded chunk and forgets the observer position.
// The registry keeps its chunks.
func (ld *Loader) Close() {
	for _, coord := range ld.Loaded() {
		ld.unload(coord)
	}
	ld.hasLast = false
	ld.checkLockstep()
}
