package meshing

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Face identifies one side of a unit cube.
type Face int

const (
	FaceTop    Face = iota // +Y
	FaceBottom             // -Y
	FaceLeft               // -X
	FaceRight              // +X
	FaceFront              // +Z
	FaceBack               // -Z

	faceCount
)

// Faces lists every face in emission order.
var Faces = [faceCount]Face{FaceTop, FaceBottom, FaceLeft, FaceRight, FaceFront, FaceBack}

func (f Face) String() string {
	switch f {
	case FaceTop:
		return "top"
	case FaceBottom:
		return "bottom"
	case FaceLeft:
		return "left"
	case FaceRight:
		return "right"
	case FaceFront:
		return "front"
	case FaceBack:
		return "back"
	}
	return "unknown"
}

const (
	// VerticesPerCube is the number of shared corners emitted per voxel.
	VerticesPerCube = 8
	// IndicesPerCube is 6 faces of two triangles each.
	IndicesPerCube = int(faceCount) * 6
)

// Unit cube corners. Top face is 0..3, bottom face is 4..7, +Y up.
var cubeCorners = [VerticesPerCube]mgl32.Vec3{
	{0, 1, 1}, // 0
	{1, 1, 1}, // 1
	{1, 1, 0}, // 2
	{0, 1, 0}, // 3
	{0, 0, 0}, // 4
	{1, 0, 0}, // 5
	{1, 0, 1}, // 6
	{0, 0, 1}, // 7
}

// Two counter-clockwise triangles per face, seen from outside the cube.
var faceIndices = [faceCount][6]uint32{
	FaceTop:    {0, 1, 2, 2, 3, 0},
	FaceBottom: {5, 6, 7, 5, 7, 4},
	FaceLeft:   {7, 0, 4, 4, 0, 3},
	FaceRight:  {6, 5, 1, 1, 5, 2},
	FaceFront:  {7, 1, 0, 7, 6, 1},
	FaceBack:   {5, 4, 3, 3, 2, 5},
}

var faceNormals = [faceCount]mgl32.Vec3{
	FaceTop:    {0, 1, 0},
	FaceBottom: {0, -1, 0},
	FaceLeft:   {-1, 0, 0},
	FaceRight:  {1, 0, 0},
	FaceFront:  {0, 0, 1},
	FaceBack:   {0, 0, -1},
}

var (
	// CubeColor is the flat per-vertex color of emitted cubes.
	CubeColor = mgl32.Vec4{0, 1, 0, 1}
	// CubeUV is the single texture coordinate given to every vertex.
	CubeUV = mgl32.Vec2{1, 0}
)

// Corner returns the offset of cube corner i from the cube's minimum corner.
func Corner(i int) mgl32.Vec3 { return cubeCorners[i] }

// FaceIndices returns the corner indices of the two triangles of f.
func FaceIndices(f Face) [6]uint32 { return faceIndices[f] }

// FaceNormal returns the outward unit normal of f.
func FaceNormal(f Face) mgl32.Vec3 { return faceNormals[f] }

// EmitCube appends one unit cube at pos to dst. base is the index of the
// first vertex this cube adds; the returned value is the base for the next cube.
func EmitCube(dst *Mesh, pos mgl32.Vec3, base uint32) uint32 {
	for _, c := range cubeCorners {
		dst.Vertices = append(dst.Vertices, pos.Add(c))
		dst.Colors = append(dst.Colors, CubeColor)
		dst.UVs = append(dst.UVs, CubeUV)
	}
	for _, f := range Faces {
		for _, i := range faceIndices[f] {
			dst.Indices = append(dst.Indices, base+i)
		}
	}
	return base + VerticesPerCube
}
