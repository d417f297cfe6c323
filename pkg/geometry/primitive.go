package geometry

import "github.com/whitted/go-whitted/pkg/core"

// Primitive is a geometric object that rays can intersect. The three
// implementations are Triangle, Sphere and Box; dispatch happens per
// primitive kind through this interface.
type Primitive interface {
	// Intersect tests the ray against the primitive. The returned hit is
	// only meaningful when the second return value is true.
	Intersect(ray core.Ray) (Hit, bool)

	// BoundingBox returns a box containing every point the primitive can
	// return from Intersect
	BoundingBox() core.AABB

	// Midpoint returns a representative point of the primitive, used by the
	// scene graph builder to partition primitives
	Midpoint() core.Vec3

	// Material returns the shared material of the primitive
	Material() *core.Material
}

// Hit records a successful ray/primitive intersection. The primitive
// reference is borrowed from the scene: a hit is a scratch value scoped to
// the intersection call and must not outlive the scene.
type Hit struct {
	Primitive Primitive
	Distance  float64
	Position  core.Vec3
	Normal    core.Vec3
	Depth     int
}
