package world

import (
	"slices"
)

// ChunkStore is the registry of generated chunks, keyed by chunk coordinate.
// It holds at most one chunk per coordinate and is the only long-lived owner
// of chunk data. It is not safe for concurrent use.
type ChunkStore struct {
	chunks   map[ChunkCoord]*Chunk
	modCount uint64 // Increases on any chunk add/remove
}

// NewChunkStore creates an empty registry.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		chunks: make(map[ChunkCoord]*Chunk),
	}
}

// Insert stores chunk under coord, replacing any previous entry.
func (cs *ChunkStore) Insert(coord ChunkCoord, chunk *Chunk) {
	cs.chunks[coord] = chunk
	cs.modCount++
}

// Get returns the chunk at coord.
func (cs *ChunkStore) Get(coord ChunkCoord) (*Chunk, bool) {
	c, ok := cs.chunks[coord]
	return c, ok
}

// Has reports whether a chunk is registered at coord.
func (cs *ChunkStore) Has(coord ChunkCoord) bool {
	_, ok := cs.chunks[coord]
	return ok
}

// Remove drops the chunk at coord and reports whether one was present.
func (cs *ChunkStore) Remove(coord ChunkCoord) bool {
	if _, ok := cs.chunks[coord]; !ok {
		return false
	}
	delete(cs.chunks, coord)
	cs.modCount++
	return true
}

// Len returns the number of registered chunks.
func (cs *ChunkStore) Len() int {
	return len(cs.chunks)
}

// Coords returns all registered coordinates in X, Y, Z order.
func (cs *ChunkStore) Coords() []ChunkCoord {
	out := make([]ChunkCoord, 0, len(cs.chunks))
	for coord := range cs.chunks {
		out = append(out, coord)
	}
	slices.SortFunc(out, CompareCoords)
	return out
}

// ModCount returns the number of inserts and removals performed so far.
func (cs *ChunkStore) ModCount() uint64 {
	return cs.modCount
}

// SolidAt reports whether the world voxel is solid. Voxels in chunks that were
// never generated read as empty.
func (cs *ChunkStore) SolidAt(x, y, z int64, size int) bool {
	c, ok := cs.chunks[ChunkAt(x, y, z, size)]
	if !ok {
		return false
	}
	lx, ly, lz := LocalCoords(x, y, z, size)
	return c.Solid(lx, ly, lz)
}
