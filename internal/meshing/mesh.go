package meshing

import (
	"errors"
	"fmt"

	"voxelstream/internal/profiling"
	"voxelstream/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidMesh reports a mesh whose buffers break the indexing invariants.
var ErrInvalidMesh = errors.New("meshing: invalid mesh")

// Mesh is an indexed triangle list with per-vertex color and uv.
// Colors and UVs run parallel to Vertices.
type Mesh struct {
	Vertices []mgl32.Vec3
	Indices  []uint32
	Colors   []mgl32.Vec4
	UVs      []mgl32.Vec2
}

// NewMesh allocates a mesh with room for the given number of cubes.
func NewMesh(cubes int) *Mesh {
	return &Mesh{
		Vertices: make([]mgl32.Vec3, 0, cubes*VerticesPerCube),
		Indices:  make([]uint32, 0, cubes*IndicesPerCube),
		Colors:   make([]mgl32.Vec4, 0, cubes*VerticesPerCube),
		UVs:      make([]mgl32.Vec2, 0, cubes*VerticesPerCube),
	}
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Vertices) }

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// Empty reports whether the mesh has no geometry.
func (m *Mesh) Empty() bool { return len(m.Vertices) == 0 && len(m.Indices) == 0 }

// Validate checks that indices form whole triangles, reference existing
// vertices, and that the attribute streams line up.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a multiple of 3", ErrInvalidMesh, len(m.Indices))
	}
	n := len(m.Vertices)
	if len(m.Colors) != n || len(m.UVs) != n {
		return fmt.Errorf("%w: %d vertices, %d colors, %d uvs", ErrInvalidMesh, n, len(m.Colors), len(m.UVs))
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: index %d at %d references vertex beyond %d", ErrInvalidMesh, idx, i, n)
		}
	}
	return nil
}

// Build meshes one chunk: every solid voxel becomes a full cube positioned at
// its world coordinate. Voxels are visited in the chunk's storage order and
// neighbouring chunks are never consulted.
func Build(coord world.ChunkCoord, c *world.Chunk) *Mesh {
	defer profiling.Track("meshing.Build")()

	size := c.Size()
	m := NewMesh(c.SolidCount())
	if c.SolidCount() == 0 {
		return m
	}

	ox, oy, oz := coord.Origin(size)
	var base uint32
	i := 0
	for z := range size {
		for y := range size {
			for x := range size {
				v := c.VoxelAt(i)
				i++
				if !v.Solid {
					continue
				}
				pos := mgl32.Vec3{
					float32(ox + int64(x)),
					float32(oy + int64(y)),
					float32(oz + int64(z)),
				}
				base = EmitCube(m, pos, base)
			}
		}
	}
	return m
}
