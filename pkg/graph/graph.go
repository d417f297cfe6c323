// Package graph holds the scene graphs that answer ray intersection
// queries over the primitives of a scene: a kd-tree for real scenes and a
// linear reference implementation.
package graph

import (
	"github.com/whitted/go-whitted/pkg/core"
	"github.com/whitted/go-whitted/pkg/geometry"
)

// SceneGraph answers ray intersection queries over the primitives of a
// scene. Implementations are immutable after construction and safe to
// share across worker threads.
type SceneGraph interface {
	// Intersect returns the nearest intersection of the ray with the scene
	Intersect(ray core.Ray) (geometry.Hit, bool)

	// IntersectAny reports whether any primitive intersects the ray at a
	// distance strictly less than maxDistance
	IntersectAny(ray core.Ray, maxDistance float64) bool

	// Count returns the number of primitives stored in the graph
	Count() int
}
