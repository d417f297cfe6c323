package geometry

import (
	"math"

	"github.com/whitted/go-whitted/pkg/core"
)

// Box represents an axis-aligned box primitive. The same slab test that
// filters kd-tree traversal makes the box a renderable shape in its own
// right.
type Box struct {
	Bounds core.AABB

	material *core.Material
}

// NewBox creates a new axis-aligned box from its two extreme corners
func NewBox(min, max core.Vec3, material *core.Material) *Box {
	return &Box{
		Bounds:   core.NewAABB(min, max),
		material: material,
	}
}

// Intersect tests the ray against the box using the slab method. The normal
// is taken from the entry face.
func (b *Box) Intersect(ray core.Ray) (Hit, bool) {
	t, ok := b.Bounds.Intersect(ray)
	if !ok {
		return Hit{}, false
	}

	position := ray.At(t)
	return Hit{
		Primitive: b,
		Distance:  t,
		Position:  position,
		Normal:    b.normalAt(position),
	}, true
}

// normalAt returns the outward axis normal of the face the point lies on
func (b *Box) normalAt(p core.Vec3) core.Vec3 {
	size := b.Bounds.Size().Multiply(0.5)
	center := b.Bounds.Center()
	rel := p.Subtract(center)

	// The dominant normalized component picks the face
	normal := core.Vec3{X: 1}
	best := 0.0
	for axis := 0; axis < 3; axis++ {
		extent := size.Component(axis)
		if extent == 0 {
			continue
		}
		d := rel.Component(axis) / extent
		if abs := math.Abs(d); abs > best {
			best = abs
			normal = core.Vec3{}
			switch axis {
			case 0:
				normal.X = sign(d)
			case 1:
				normal.Y = sign(d)
			default:
				normal.Z = sign(d)
			}
		}
	}
	return normal
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// BoundingBox returns the bounds of the box itself
func (b *Box) BoundingBox() core.AABB {
	return b.Bounds
}

// Midpoint returns the center of the box
func (b *Box) Midpoint() core.Vec3 {
	return b.Bounds.Center()
}

// Material returns the material of the box
func (b *Box) Material() *core.Material {
	return b.material
}
