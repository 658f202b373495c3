package world

import "fmt"

const (
	// DefaultChunkSize is the default number of voxels along each chunk axis.
	DefaultChunkSize = 32

	// MaxChunkSize keeps size³ voxels and 8·size³ mesh vertices within uint32 index range.
	MaxChunkSize = 256
)

// Voxel is the smallest unit of world volume.
type Voxel struct {
	Solid bool
}

// Chunk is an immutable size³ block of voxels.
// Voxels are stored x-fastest: index = x + y*size + z*size*size.
type Chunk struct {
	coord  ChunkCoord
	size   int
	voxels []Voxel
	solid  int
}

// NewChunkFromVoxels wraps a generated voxel field. The slice is owned by the
// chunk afterwards and must hold exactly size³ entries.
func NewChunkFromVoxels(coord ChunkCoord, size int, voxels []Voxel) *Chunk {
	if size <= 0 || size > MaxChunkSize {
		panic(fmt.Sprintf("world: invalid chunk size %d", size))
	}
	if want := size * size * size; len(voxels) != want {
		panic(fmt.Sprintf("world: chunk %v has %d voxels, want %d", coord, len(voxels), want))
	}
	solid := 0
	for _, v := range voxels {
		if v.Solid {
			solid++
		}
	}
	return &Chunk{coord: coord, size: size, voxels: voxels, solid: solid}
}

// Coord returns the chunk's grid coordinate.
func (c *Chunk) Coord() ChunkCoord { return c.coord }

// Size returns the number of voxels along each axis.
func (c *Chunk) Size() int { return c.size }

// Len returns the voxel count, always Size()³.
func (c *Chunk) Len() int { return len(c.voxels) }

// SolidCount returns the number of solid voxels.
func (c *Chunk) SolidCount() int { return c.solid }

// Index converts local coordinates to the linear voxel index.
func (c *Chunk) Index(x, y, z int) int {
	return x + y*c.size + z*c.size*c.size
}

// At returns the voxel at local coordinates. Out-of-range coordinates read as empty.
func (c *Chunk) At(x, y, z int) Voxel {
	if x < 0 || x >= c.size || y < 0 || y >= c.size || z < 0 || z >= c.size {
		return Voxel{}
	}
	return c.voxels[c.Index(x, y, z)]
}

// Solid reports whether the voxel at local coordinates is solid.
func (c *Chunk) Solid(x, y, z int) bool {
	return c.At(x, y, z).Solid
}

// VoxelAt returns the voxel at a linear index.
func (c *Chunk) VoxelAt(i int) Voxel {
	return c.voxels[i]
}
