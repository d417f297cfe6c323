package geometry

import (
	"math"

	"github.com/whitted/go-whitted/pkg/core"
)

// Sphere represents a sphere by its center and radius
type Sphere struct {
	Center core.Vec3
	Radius float64

	material *core.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material *core.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		material: material,
	}
}

// Intersect tests the ray against the sphere by solving the quadratic
// |O + tD - C|^2 = R^2 with the half-b shortcut
func (s *Sphere) Intersect(ray core.Ray) (Hit, bool) {
	v := s.Center.Subtract(ray.Origin)
	b := v.Dot(ray.Direction)
	discriminant := b*b - v.Dot(v) + s.Radius*s.Radius
	if discriminant < 0 {
		return Hit{}, false
	}

	d := math.Sqrt(discriminant)

	// Take the nearer root when it is in front of the ray, else the farther
	// one (the ray starts inside the sphere)
	t2 := b + d
	if t2 < 0 {
		return Hit{}, false
	}
	t := b - d
	if t <= 0 {
		t = t2
	}

	position := ray.At(t)
	return Hit{
		Primitive: s,
		Distance:  t,
		Position:  position,
		Normal:    position.Subtract(s.Center).Normalize(),
	}, true
}

// BoundingBox returns the bounding box of the sphere
func (s *Sphere) BoundingBox() core.AABB {
	r := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(s.Center.Subtract(r), s.Center.Add(r))
}

// Midpoint returns the center of the sphere
func (s *Sphere) Midpoint() core.Vec3 {
	return s.Center
}

// Material returns the material of the sphere
func (s *Sphere) Material() *core.Material {
	return s.material
}
