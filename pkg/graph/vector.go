package graph

import (
	"github.com/whitted/go-whitted/pkg/core"
	"github.com/whitted/go-whitted/pkg/geometry"
)

// VectorGraph is the simplest SceneGraph: a flat primitive list scanned
// linearly per query, behind a single bounding-box early-out. It serves as
// the reference the kd-tree is checked against and stays competitive for
// very small scenes.
type VectorGraph struct {
	primitives []geometry.Primitive
	box        core.AABB
}

// VectorBuilder accumulates primitives and builds a VectorGraph
type VectorBuilder struct {
	primitives []geometry.Primitive
	box        core.AABB
}

// NewVectorBuilder creates an empty linear-graph builder
func NewVectorBuilder() *VectorBuilder {
	return &VectorBuilder{box: core.EmptyAABB()}
}

// Add appends a primitive to the graph under construction
func (b *VectorBuilder) Add(primitive geometry.Primitive) {
	b.primitives = append(b.primitives, primitive)
	b.box = b.box.Union(primitive.BoundingBox())
}

// Build constructs the graph over all added primitives
func (b *VectorBuilder) Build() *VectorGraph {
	primitives := make([]geometry.Primitive, len(b.primitives))
	copy(primitives, b.primitives)

	return &VectorGraph{primitives: primitives, box: b.box}
}

// Intersect returns the nearest intersection of the ray with the scene
func (g *VectorGraph) Intersect(ray core.Ray) (geometry.Hit, bool) {
	if _, ok := g.box.Intersect(ray); !ok {
		return geometry.Hit{}, false
	}

	var nearest geometry.Hit
	found := false
	for _, primitive := range g.primitives {
		if _, ok := primitive.BoundingBox().Intersect(ray); !ok {
			continue
		}
		if hit, ok := primitive.Intersect(ray); ok && (!found || hit.Distance < nearest.Distance) {
			nearest = hit
			found = true
		}
	}
	return nearest, found
}

// IntersectAny reports whether any primitive intersects the ray closer
// than maxDistance, stopping at the first qualifying hit
func (g *VectorGraph) IntersectAny(ray core.Ray, maxDistance float64) bool {
	if _, ok := g.box.Intersect(ray); !ok {
		return false
	}

	for _, primitive := range g.primitives {
		if _, ok := primitive.BoundingBox().Intersect(ray); !ok {
			continue
		}
		if hit, ok := primitive.Intersect(ray); ok && hit.Distance > 0 && hit.Distance < maxDistance {
			return true
		}
	}
	return false
}

// Count returns the number of primitives stored in the graph
func (g *VectorGraph) Count() int {
	return len(g.primitives)
}
