package world

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxExactExtent is the largest absolute world coordinate that float32 mesh
// positions can represent exactly.
const MaxExactExtent = 1 << 24

// ErrOutOfBounds is returned for positions or chunks outside the supported world extent.
var ErrOutOfBounds = errors.New("world: coordinate out of bounds")

// ChunkCoord addresses a chunk in the chunk grid.
type ChunkCoord struct {
	X, Y, Z int32
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.X, c.Y, c.Z)
}

// Add returns c+o.
func (c ChunkCoord) Add(o ChunkCoord) ChunkCoord {
	return ChunkCoord{X: c.X + o.X, Y: c.Y + o.Y, Z: c.Z + o.Z}
}

// Sub returns c-o.
func (c ChunkCoord) Sub(o ChunkCoord) ChunkCoord {
	return ChunkCoord{X: c.X - o.X, Y: c.Y - o.Y, Z: c.Z - o.Z}
}

// Manhattan returns the sum of per-axis distances between c and o.
func (c ChunkCoord) Manhattan(o ChunkCoord) int64 {
	return absDiff(c.X, o.X) + absDiff(c.Y, o.Y) + absDiff(c.Z, o.Z)
}

// Chebyshev returns the largest per-axis distance between c and o.
func (c ChunkCoord) Chebyshev(o ChunkCoord) int64 {
	return max(absDiff(c.X, o.X), absDiff(c.Y, o.Y), absDiff(c.Z, o.Z))
}

// WithinBox reports whether c lies in the cube of the given radius around center.
func (c ChunkCoord) WithinBox(center ChunkCoord, radius int) bool {
	return c.Chebyshev(center) <= int64(radius)
}

// Origin returns the world-space voxel coordinate of the chunk's minimum corner.
func (c ChunkCoord) Origin(size int) (x, y, z int64) {
	s := int64(size)
	return int64(c.X) * s, int64(c.Y) * s, int64(c.Z) * s
}

// InBounds reports whether every voxel of the chunk has a world coordinate
// that float32 mesh positions represent exactly.
func (c ChunkCoord) InBounds(size int) bool {
	x, y, z := c.Origin(size)
	s := int64(size)
	for _, v := range [3]int64{x, y, z} {
		if v < -MaxExactExtent || v+s > MaxExactExtent {
			return false
		}
	}
	return true
}

// Less orders coordinates by X, then Y, then Z.
func (c ChunkCoord) Less(o ChunkCoord) bool {
	if c.X != o.X {
		return c.X < o.X
	}
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.Z < o.Z
}

// CompareCoords is a three-way comparison suitable for slices.SortFunc.
func CompareCoords(a, b ChunkCoord) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	}
	return 0
}

// ChunkAt returns the chunk containing the world voxel (x, y, z).
// Division is floored so that negative coordinates map to negative chunks.
func ChunkAt(x, y, z int64, size int) ChunkCoord {
	s := int64(size)
	return ChunkCoord{
		X: int32(floorDiv(x, s)),
		Y: int32(floorDiv(y, s)),
		Z: int32(floorDiv(z, s)),
	}
}

// ChunkAtPosition returns the chunk containing a float world position.
func ChunkAtPosition(pos mgl32.Vec3, size int) (ChunkCoord, error) {
	var v [3]int64
	for i := range 3 {
		f := float64(pos[i])
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return ChunkCoord{}, fmt.Errorf("%w: non-finite position %v", ErrOutOfBounds, pos)
		}
		f = math.Floor(f)
		// chunk index must fit in int32
		limit := float64(math.MaxInt32) * float64(size)
		if f < -limit || f >= limit {
			return ChunkCoord{}, fmt.Errorf("%w: position %v", ErrOutOfBounds, pos)
		}
		v[i] = int64(f)
	}
	return ChunkAt(v[0], v[1], v[2], size), nil
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod is the non-negative remainder matching floorDiv.
func floorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}

func absDiff(a, b int32) int64 {
	d := int64(a) - int64(b)
	if d < 0 {
		return -d
	}
	return d
}

// LocalCoords returns the position of world voxel (x, y, z) inside its chunk.
func LocalCoords(x, y, z int64, size int) (lx, ly, lz int) {
	s := int64(size)
	return int(floorMod(x, s)), int(floorMod(y, s)), int(floorMod(z, s))
}
