package world

import (
	"crypto/sha256"
	"testing"
)

// hashChunkVoxels computes a SHA-256 hash of all voxels in a chunk
func hashChunkVoxels(c *Chunk) [32]byte {
	h := sha256.New()
	buf := make([]byte, c.Len())
	for i := range buf {
		if c.VoxelAt(i).Solid {
			buf[i] = 1
		}
	}
	h.Write(buf)
	var result [32]byte
	copy(result[:], h.Sum(nil))
	return result
}

func newTestGenerator(size int) *Generator {
	return NewGenerator(NewSampler(DefaultNoiseConfig()), size, DefaultHeightScale)
}

func TestGenerateSize(t *testing.T) {
	g := newTestGenerator(DefaultChunkSize)
	c := g.Generate(ChunkCoord{})
	if want := DefaultChunkSize * DefaultChunkSize * DefaultChunkSize; c.Len() != want {
		t.Fatalf("Len = %d, want %d", c.Len(), want)
	}
	if c.Size() != DefaultChunkSize || c.Coord() != (ChunkCoord{}) {
		t.Errorf("unexpected chunk header %v/%d", c.Coord(), c.Size())
	}
}

// TestGenerateDeterminism verifies same seed produces identical terrain
func TestGenerateDeterminism(t *testing.T) {
	coords := []ChunkCoord{{}, {X: -1, Z: 2}, {X: 3, Y: -1}}
	for _, coord := range coords {
		h1 := hashChunkVoxels(newTestGenerator(16).Generate(coord))
		h2 := hashChunkVoxels(newTestGenerator(16).Generate(coord))
		if h1 != h2 {
			t.Errorf("chunk %v differs between generators with the same seed", coord)
		}
	}
}

func TestGenerateOrderIndependent(t *testing.T) {
	coords := []ChunkCoord{{}, {X: 1}, {Z: -1}}
	g := newTestGenerator(8)
	var forward [3][32]byte
	for i, c := range coords {
		forward[i] = hashChunkVoxels(g.Generate(c))
	}
	g2 := newTestGenerator(8)
	for i := len(coords) - 1; i >= 0; i-- {
		if h := hashChunkVoxels(g2.Generate(coords[i])); h != forward[i] {
			t.Errorf("chunk %v depends on generation order", coords[i])
		}
	}
}

func TestGenerateMatchesPredicate(t *testing.T) {
	const size = 8
	g := newTestGenerator(size)
	coord := ChunkCoord{X: -2, Y: 0, Z: 1}
	c := g.Generate(coord)
	ox, oy, oz := coord.Origin(size)
	for z := range size {
		for y := range size {
			for x := range size {
				want := g.IsSolid(ox+int64(x), oy+int64(y), oz+int64(z))
				if c.Solid(x, y, z) != want {
					t.Fatalf("voxel (%d,%d,%d) = %v, predicate says %v", x, y, z, !want, want)
				}
			}
		}
	}
}

// TestGenerateSeam checks both sides of a chunk border sample the same field.
func TestGenerateSeam(t *testing.T) {
	const size = 8
	g := newTestGenerator(size)
	left := g.Generate(ChunkCoord{X: -1})
	right := g.Generate(ChunkCoord{X: 0})
	for z := range size {
		for y := range size {
			if left.Solid(size-1, y, z) != g.IsSolid(-1, int64(y), int64(z)) {
				t.Fatalf("left border mismatch at y=%d z=%d", y, z)
			}
			if right.Solid(0, y, z) != g.IsSolid(0, int64(y), int64(z)) {
				t.Fatalf("right border mismatch at y=%d z=%d", y, z)
			}
		}
	}
}

func TestGenerateBelowAndAboveSurface(t *testing.T) {
	g := newTestGenerator(DefaultChunkSize)
	// the threshold never drops below 0, so every negative Y is solid
	below := g.Generate(ChunkCoord{Y: -1})
	if below.SolidCount() != below.Len() {
		t.Errorf("chunk below ground has %d/%d solid voxels", below.SolidCount(), below.Len())
	}
	// nor rises above the height scale
	above := g.Generate(ChunkCoord{Y: 1})
	if above.SolidCount() != 0 {
		t.Errorf("chunk above terrain has %d solid voxels", above.SolidCount())
	}
	ground := g.Generate(ChunkCoord{})
	if ground.SolidCount() == 0 || ground.SolidCount() == ground.Len() {
		t.Errorf("surface chunk should be partially solid, got %d", ground.SolidCount())
	}
}

func BenchmarkGenerate(b *testing.B) {
	g := newTestGenerator(DefaultChunkSize)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		g.Generate(ChunkCoord{X: int32(i)})
	}
}
