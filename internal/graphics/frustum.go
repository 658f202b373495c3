package graphics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type plane struct {
	a, b, c, d float32
}

// Frustum is the set of six clip planes of a projection*view matrix.
// Planes are stored in order: left, right, bottom, top, near, far.
type Frustum [6]plane

// NewFrustum extracts the planes from the combined projection*view matrix.
func NewFrustum(clip mgl32.Mat4) Frustum {
	// mgl32 matrices are column-major; row i is clip[i], clip[i+4], ...
	row := func(i int) plane {
		return plane{clip[i], clip[i+4], clip[i+8], clip[i+12]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)
	add := func(p, q plane) plane { return plane{p.a + q.a, p.b + q.b, p.c + q.c, p.d + q.d} }
	sub := func(p, q plane) plane { return plane{p.a - q.a, p.b - q.b, p.c - q.c, p.d - q.d} }

	return Frustum{
		normalizePlane(add(r3, r0)),
		normalizePlane(sub(r3, r0)),
		normalizePlane(add(r3, r1)),
		normalizePlane(sub(r3, r1)),
		normalizePlane(add(r3, r2)),
		normalizePlane(sub(r3, r2)),
	}
}

func normalizePlane(p plane) plane {
	l := float32(math.Sqrt(float64(p.a*p.a + p.b*p.b + p.c*p.c)))
	if l == 0 {
		return p
	}
	return plane{p.a / l, p.b / l, p.c / l, p.d / l}
}

// IntersectsAABB reports whether the box [min, max] is at least partly inside.
func (f *Frustum) IntersectsAABB(min, max mgl32.Vec3) bool {
	for _, p := range f {
		// positive vertex for this plane normal
		px := max.X()
		if p.a < 0 {
			px = min.X()
		}
		py := max.Y()
		if p.b < 0 {
			py = min.Y()
		}
		pz := max.Z()
		if p.c < 0 {
			pz = min.Z()
		}
		if p.a*px+p.b*py+p.c*pz+p.d < 0 {
			return false
		}
	}
	return true
}
