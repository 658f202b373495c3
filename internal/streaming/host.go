package streaming

import (
	"voxelstream/internal/meshing"
	"voxelstream/internal/world"
)

// Handle is an opaque host-side reference to a rendered chunk.
type Handle uint64

// Host presents chunk meshes. The loader calls Spawn once per loaded chunk
// and Despawn with the same handle when the chunk unloads. The mesh is only
// valid for the duration of the Spawn call.
type Host interface {
	Spawn(coord world.ChunkCoord, mesh *meshing.Mesh) Handle
	Despawn(h Handle)
}

// NopHost renders nothing and hands out increasing handles.
type NopHost struct {
	next Handle
}

func (h *NopHost) Spawn(world.ChunkCoord, *meshing.Mesh) Handle {
	h.next++
	return h.next
}

func (h *NopHost) Despawn(Handle) {}
