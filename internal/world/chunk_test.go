package world

import "testing"

func TestNewChunkFromVoxels(t *testing.T) {
	const size = 4
	voxels := make([]Voxel, size*size*size)
	c := NewChunkFromVoxels(ChunkCoord{X: 1}, size, voxels)
	i := c.Index(1, 2, 3)
	if i != 1+2*size+3*size*size {
		t.Fatalf("Index(1,2,3) = %d", i)
	}
	voxels[i].Solid = true

	if !c.Solid(1, 2, 3) {
		t.Errorf("voxel (1,2,3) should be solid")
	}
	if c.Solid(3, 2, 1) {
		t.Errorf("voxel (3,2,1) should be empty")
	}
	if c.Len() != size*size*size {
		t.Errorf("Len = %d, want %d", c.Len(), size*size*size)
	}
	if c.Coord() != (ChunkCoord{X: 1}) || c.Size() != size {
		t.Errorf("unexpected coord/size %v/%d", c.Coord(), c.Size())
	}
}

func TestChunkAtOutOfRangeIsEmpty(t *testing.T) {
	voxels := make([]Voxel, 8)
	for i := range voxels {
		voxels[i].Solid = true
	}
	c := NewChunkFromVoxels(ChunkCoord{}, 2, voxels)
	if c.SolidCount() != 8 {
		t.Fatalf("SolidCount = %d, want 8", c.SolidCount())
	}
	for _, p := range [][3]int{{-1, 0, 0}, {2, 0, 0}, {0, 2, 0}, {0, 0, -1}} {
		if c.Solid(p[0], p[1], p[2]) {
			t.Errorf("out of range %v read as solid", p)
		}
	}
}

func TestNewChunkFromVoxelsPanicsOnWrongLength(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for short voxel slice")
		}
	}()
	NewChunkFromVoxels(ChunkCoord{}, 4, make([]Voxel, 63))
}

func TestNewChunkFromVoxelsPanicsOnBadSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero size")
		}
	}()
	NewChunkFromVoxels(ChunkCoord{}, 0, nil)
}
