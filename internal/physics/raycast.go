package physics

import (
	"math"

	"voxelstream/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxReachDistance is how far the viewer's voxel picker looks.
const MaxReachDistance = 64.0

// SolidFunc reports whether the world voxel at (x, y, z) is solid. Voxel
// (x, y, z) covers [x, x+1) on every axis.
type SolidFunc func(x, y, z int64) bool

// RaycastResult stores the result of a raycast operation
type RaycastResult struct {
	Voxel    [3]int64 // first solid voxel on the ray
	Previous [3]int64 // last empty voxel before it
	Normal   [3]int   // face of Voxel the ray entered through
	Distance float32
	Hit      bool
}

// Raycast walks the voxel grid from start along direction and stops at the
// first solid voxel within maxDist. A start inside a solid voxel hits it at
// distance 0.
func Raycast(start, direction mgl32.Vec3, maxDist float32, solid SolidFunc) RaycastResult {
	defer profiling.Track("physics.Raycast")()

	if direction.Len() == 0 || !finite(start) || !finite(direction) || !(maxDist >= 0) {
		return RaycastResult{}
	}
	dir := direction.Normalize()

	var cell, step [3]int64
	var tMax, tDelta [3]float64
	for i := range 3 {
		p := float64(start[i])
		d := float64(dir[i])
		cell[i] = int64(math.Floor(p))
		switch {
		case d > 0:
			step[i] = 1
			tMax[i] = (float64(cell[i]+1) - p) / d
			tDelta[i] = 1 / d
		case d < 0:
			step[i] = -1
			tMax[i] = (p - float64(cell[i])) / -d
			tDelta[i] = 1 / -d
		default:
			tMax[i] = math.Inf(1)
			tDelta[i] = math.Inf(1)
		}
	}

	res := RaycastResult{Previous: cell}
	if solid(cell[0], cell[1], cell[2]) {
		res.Voxel = cell
		res.Hit = true
		return res
	}

	limit := float64(maxDist)
	for {
		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}
		t := tMax[axis]
		if t > limit {
			return RaycastResult{}
		}

		res.Previous = cell
		cell[axis] += step[axis]
		tMax[axis] += tDelta[axis]

		if solid(cell[0], cell[1], cell[2]) {
			res.Voxel = cell
			res.Normal = [3]int{}
			res.Normal[axis] = int(-step[axis])
			res.Distance = float32(t)
			res.Hit = true
			return res
		}
	}
}

func finite(v mgl32.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(float64(c)) || math.IsInf(float64(c), 0) {
			return false
		}
	}
	return true
}
