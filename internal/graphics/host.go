package graphics

import (
	"fmt"
	"log"
	"math"

	"voxelstream/internal/meshing"
	"voxelstream/internal/profiling"
	"voxelstream/internal/streaming"
	"voxelstream/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// position(3) + color(4) + uv(2)
const floatsPerVertex = 9

// chunkBuffers is the GPU side of one spawned chunk.
type chunkBuffers struct {
	coord    world.ChunkCoord
	vao      uint32
	vbo      uint32
	ebo      uint32
	count    int32
	min, max mgl32.Vec3
}

// Host uploads chunk meshes to OpenGL and draws them. It implements
// streaming.Host and must only be used on the thread that owns the GL context.
type Host struct {
	shader *Shader
	chunks map[streaming.Handle]*chunkBuffers
	next   streaming.Handle
	logger *log.Logger

	// Wireframe overlays triangle edges on top of the filled mesh.
	Wireframe bool
	WireColor mgl32.Vec4
	LightDir  mgl32.Vec3

	drawn int
}

// NewHost compiles the chunk shader. gl.Init must have been called.
func NewHost(logger *log.Logger) (*Host, error) {
	shader, err := NewShader(chunkVertexSrc, chunkFragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("chunk shader: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Host{
		shader:    shader,
		chunks:    make(map[streaming.Handle]*chunkBuffers),
		logger:    logger,
		WireColor: mgl32.Vec4{0, 0, 0, 1},
		LightDir:  mgl32.Vec3{0.3, 1.0, 0.3}.Normalize(),
	}, nil
}

// Spawn uploads mesh and returns a handle for it. Empty meshes get a handle
// without GPU buffers.
func (h *Host) Spawn(coord world.ChunkCoord, mesh *meshing.Mesh) streaming.Handle {
	defer profiling.Track("graphics.Spawn")()

	h.next++
	cb := &chunkBuffers{coord: coord}
	h.chunks[h.next] = cb
	if mesh.Empty() {
		return h.next
	}

	data := interleave(mesh)
	cb.min, cb.max = meshBounds(mesh)
	cb.count = int32(len(mesh.Indices))

	gl.GenVertexArrays(1, &cb.vao)
	gl.BindVertexArray(cb.vao)

	gl.GenBuffers(1, &cb.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, cb.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	gl.GenBuffers(1, &cb.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, cb.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)

	stride := int32(floatsPerVertex * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(7*4))

	gl.BindVertexArray(0)
	return h.next
}

// Despawn frees the buffers behind handle.
func (h *Host) Despawn(handle streaming.Handle) {
	cb, ok := h.chunks[handle]
	if !ok {
		h.logger.Printf("[graphics] despawn of unknown handle %d", handle)
		return
	}
	delete(h.chunks, handle)
	cb.release()
}

func (cb *chunkBuffers) release() {
	if cb.ebo != 0 {
		gl.DeleteBuffers(1, &cb.ebo)
	}
	if cb.vbo != 0 {
		gl.DeleteBuffers(1, &cb.vbo)
	}
	if cb.vao != 0 {
		gl.DeleteVertexArrays(1, &cb.vao)
	}
	*cb = chunkBuffers{coord: cb.coord}
}

// Render draws every spawned chunk that intersects the view frustum.
func (h *Host) Render(view, proj mgl32.Mat4) {
	defer profiling.Track("graphics.Render")()

	h.shader.Use()
	h.shader.SetMatrix4("view", &view[0])
	h.shader.SetMatrix4("proj", &proj[0])
	h.shader.SetVector3("lightDir", h.LightDir.X(), h.LightDir.Y(), h.LightDir.Z())
	h.shader.SetBool("wireframe", false)

	frustum := NewFrustum(proj.Mul4(view))
	visible := make([]*chunkBuffers, 0, len(h.chunks))
	for _, cb := range h.chunks {
		if cb.count == 0 || !frustum.IntersectsAABB(cb.min, cb.max) {
			continue
		}
		visible = append(visible, cb)
	}
	h.drawn = len(visible)

	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	for _, cb := range visible {
		cb.draw()
	}

	if h.Wireframe {
		h.shader.SetBool("wireframe", true)
		h.shader.SetVector4("wireColor", h.WireColor)
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		gl.Enable(gl.POLYGON_OFFSET_LINE)
		gl.PolygonOffset(-1, -1)
		for _, cb := range visible {
			cb.draw()
		}
		gl.Disable(gl.POLYGON_OFFSET_LINE)
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
	gl.BindVertexArray(0)
}

func (cb *chunkBuffers) draw() {
	gl.BindVertexArray(cb.vao)
	gl.DrawElements(gl.TRIANGLES, cb.count, gl.UNSIGNED_INT, nil)
}

// Live returns the number of spawned handles.
func (h *Host) Live() int { return len(h.chunks) }

// Drawn returns how many chunks the last Render call drew.
func (h *Host) Drawn() int { return h.drawn }

// Delete frees every chunk buffer and the shader.
func (h *Host) Delete() {
	for handle, cb := range h.chunks {
		cb.release()
		delete(h.chunks, handle)
	}
	h.shader.Delete()
}

// interleave packs a mesh into position, color, uv records.
func interleave(m *meshing.Mesh) []float32 {
	out := make([]float32, 0, len(m.Vertices)*floatsPerVertex)
	for i, v := range m.Vertices {
		c := m.Colors[i]
		uv := m.UVs[i]
		out = append(out, v[0], v[1], v[2], c[0], c[1], c[2], c[3], uv[0], uv[1])
	}
	return out
}

// meshBounds returns the axis-aligned box around every vertex.
func meshBounds(m *meshing.Mesh) (min, max mgl32.Vec3) {
	inf := float32(math.Inf(1))
	min = mgl32.Vec3{inf, inf, inf}
	max = mgl32.Vec3{-inf, -inf, -inf}
	for _, v := range m.Vertices {
		for i := range 3 {
			if v[i] < min[i] {
				min[i] = v[i]
			}
			if v[i] > max[i] {
				max[i] = v[i]
			}
		}
	}
	return min, max
}
