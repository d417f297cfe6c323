package geometry

import (
	"math"

	"github.com/whitted/go-whitted/pkg/core"
)

// Triangle represents a triangle by its first vertex O and the edge vectors
// U and V to the other two vertices. The geometric normal and the bounding
// box are precomputed at construction.
type Triangle struct {
	O, U, V core.Vec3

	material *core.Material
	normal   core.Vec3
	bbox     core.AABB
}

// NewTriangle creates a new triangle from a vertex and two edge vectors
func NewTriangle(o, u, v core.Vec3, material *core.Material) *Triangle {
	return &Triangle{
		O:        o,
		U:        u,
		V:        v,
		material: material,
		normal:   u.Cross(v).Normalize(),
		bbox:     core.NewAABBFromPoints(o, o.Add(u), o.Add(v)),
	}
}

// NewTriangleFromVertices creates a new triangle from its three vertices
func NewTriangleFromVertices(v0, v1, v2 core.Vec3, material *core.Material) *Triangle {
	return NewTriangle(v0, v1.Subtract(v0), v2.Subtract(v0), material)
}

// Triangles are closed on their negative-u/negative-v edges
const barycentricTolerance = 1e-9

// Intersect tests the ray against the triangle using the plane-then-
// barycentric method
func (t *Triangle) Intersect(ray core.Ray) (Hit, bool) {
	n := t.U.Cross(t.V)

	// No intersection if the ray is parallel to the plane
	d := n.Dot(ray.Direction)
	if math.Abs(d) < 1e-6 {
		return Hit{}, false
	}

	// Solve dist for the plane equation P = O + dist*D
	dist := t.O.Subtract(ray.Origin).Dot(n) / d
	if dist < 0 {
		return Hit{}, false
	}

	p := ray.At(dist)

	// Barycentric coordinates via the dot-product Gram matrix
	d00 := t.U.Dot(t.U)
	d01 := t.U.Dot(t.V)
	d11 := t.V.Dot(t.V)
	w := p.Subtract(t.O)
	d20 := w.Dot(t.U)
	d21 := w.Dot(t.V)
	invDenom := 1.0 / (d00*d11 - d01*d01)

	a := (d11*d20 - d01*d21) * invDenom
	b := (d00*d21 - d01*d20) * invDenom

	// On the plane but outside the triangle
	if a < -barycentricTolerance || b < -barycentricTolerance || a+b > 1 {
		return Hit{}, false
	}

	return Hit{
		Primitive: t,
		Distance:  dist,
		Position:  p,
		Normal:    t.normal,
	}, true
}

// BoundingBox returns the precomputed bounding box of the triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// Midpoint returns the first vertex of the triangle
func (t *Triangle) Midpoint() core.Vec3 {
	return t.O
}

// Material returns the material of the triangle
func (t *Triangle) Material() *core.Material {
	return t.material
}

// Normal returns the precomputed geometric normal of the triangle
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}
