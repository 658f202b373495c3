package world

import (
	"voxelstream/internal/profiling"
)

// DefaultHeightScale is the default terrain height in voxels.
const DefaultHeightScale = 20.0

// Generator turns noise samples into chunk voxel fields.
//
// A voxel is solid when its world Y lies below the remapped sample
// (sample+1)/2 * heightScale. The field is sampled in 3D but thresholded
// against Y, so the result is heightmap-like terrain rather than caves.
type Generator struct {
	sampler     *Sampler
	size        int
	heightScale float32
}

// NewGenerator creates a generator for chunks of the given size.
func NewGenerator(sampler *Sampler, size int, heightScale float32) *Generator {
	return &Generator{
		sampler:     sampler,
		size:        size,
		heightScale: heightScale,
	}
}

// Size returns the chunk edge length produced by the generator.
func (g *Generator) Size() int { return g.size }

// Sampler returns the underlying noise field.
func (g *Generator) Sampler() *Sampler { return g.sampler }

// IsSolid evaluates the solidity predicate at one world voxel.
func (g *Generator) IsSolid(wx, wy, wz int64) bool {
	sample := g.sampler.Sample(wx, wy, wz)
	return float32(wy) < (sample+1.0)*0.5*g.heightScale
}

// Generate produces the voxel field for coord. Cells are visited z-outer,
// y-middle, x-inner, which is also the storage order of Chunk.
func (g *Generator) Generate(coord ChunkCoord) *Chunk {
	defer profiling.Track("world.Generate")()

	size := g.size
	ox, oy, oz := coord.Origin(size)
	voxels := make([]Voxel, 0, size*size*size)
	for z := range size {
		for y := range size {
			for x := range size {
				wx := ox + int64(x)
				wy := oy + int64(y)
				wz := oz + int64(z)
				voxels = append(voxels, Voxel{Solid: g.IsSolid(wx, wy, wz)})
			}
		}
	}
	return NewChunkFromVoxels(coord, size, voxels)
}
