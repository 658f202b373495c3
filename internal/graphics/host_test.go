package graphics

import (
	"testing"

	"voxelstream/internal/meshing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestInterleave(t *testing.T) {
	m := meshing.NewMesh(1)
	meshing.EmitCube(m, mgl32.Vec3{2, 3, 4}, 0)
	data := interleave(m)
	if len(data) != meshing.VerticesPerCube*floatsPerVertex {
		t.Fatalf("len = %d", len(data))
	}
	for i, v := range m.Vertices {
		rec := data[i*floatsPerVertex : (i+1)*floatsPerVertex]
		if rec[0] != v[0] || rec[1] != v[1] || rec[2] != v[2] {
			t.Errorf("vertex %d position %v, want %v", i, rec[:3], v)
		}
		if rec[4] != meshing.CubeColor[1] || rec[7] != meshing.CubeUV[0] {
			t.Errorf("vertex %d attributes %v", i, rec[3:])
		}
	}
}

func TestMeshBounds(t *testing.T) {
	m := meshing.NewMesh(2)
	base := meshing.EmitCube(m, mgl32.Vec3{-4, 0, 1}, 0)
	meshing.EmitCube(m, mgl32.Vec3{3, 5, -2}, base)
	lo, hi := meshBounds(m)
	if lo != (mgl32.Vec3{-4, 0, -2}) || hi != (mgl32.Vec3{4, 6, 2}) {
		t.Errorf("bounds = %v..%v", lo, hi)
	}
}
