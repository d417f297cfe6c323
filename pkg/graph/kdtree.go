package graph

import (
	"github.com/whitted/go-whitted/pkg/core"
	"github.com/whitted/go-whitted/pkg/geometry"
)

// Node is a node in the kd-tree. Interior nodes carry two children and an
// AABB bounding everything below them; leaves carry a (possibly empty)
// primitive list.
type Node struct {
	// Box bounds every primitive reachable through this node
	Box core.AABB

	// Origin is the mean of the midpoints of the primitives below this node
	Origin core.Vec3

	// Left and Right are the children of an interior node, nil on leaves
	Left, Right *Node

	// Primitives stored at a leaf node
	Primitives []geometry.Primitive

	// Depth of the node in the tree, kept for diagnostics
	Depth int
}

// KDTree is an immutable kd-tree over a set of primitives. It is built
// once by a KDTreeBuilder and is safe to share across worker threads.
type KDTree struct {
	root *Node
	size int
}

// Intersect returns the nearest intersection of the ray with the scene
func (g *KDTree) Intersect(ray core.Ray) (geometry.Hit, bool) {
	return g.root.Intersect(ray)
}

// IntersectAny reports whether any primitive intersects the ray at a
// distance strictly less than maxDistance. It is the shadow query: it stops
// at the first qualifying hit instead of searching for the nearest.
func (g *KDTree) IntersectAny(ray core.Ray, maxDistance float64) bool {
	return g.root.intersectAny(ray, maxDistance)
}

// Count returns the number of primitives stored in the graph
func (g *KDTree) Count() int {
	return g.size
}

// Root returns the root node of the tree
func (g *KDTree) Root() *Node {
	return g.root
}

// Depth returns the maximum node depth of the tree
func (g *KDTree) Depth() int {
	depth := 0
	g.Walk(func(n *Node) bool {
		if n.Depth > depth {
			depth = n.Depth
		}
		return true
	})
	return depth
}

// Walk visits every node of the tree in pre-order. Traversal stops early
// when fn returns false for a node's subtree.
func (g *KDTree) Walk(fn func(*Node) bool) {
	g.root.walk(fn)
}

func (n *Node) walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	n.Left.walk(fn)
	n.Right.walk(fn)
}

// Intersect returns the nearest intersection of the ray with the subtree
// rooted at this node
func (n *Node) Intersect(ray core.Ray) (geometry.Hit, bool) {
	if n == nil {
		return geometry.Hit{}, false
	}
	if _, ok := n.Box.Intersect(ray); !ok {
		return geometry.Hit{}, false
	}

	var nearest geometry.Hit
	found := false

	for _, child := range []*Node{n.Left, n.Right} {
		if hit, ok := child.Intersect(ray); ok && (!found || hit.Distance < nearest.Distance) {
			nearest = hit
			found = true
		}
	}

	for _, primitive := range n.Primitives {
		// Cheap slab pre-test before the primitive's own intersection
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

func (n *Node) intersectAny(ray core.Ray, maxDistance float64) bool {
	if n == nil {
		return false
	}
	if _, ok := n.Box.Intersect(ray); !ok {
		return false
	}

	for _, primitive := range n.Primitives {
		if _, ok := primitive.BoundingBox().Intersect(ray); !ok {
			continue
		}
		if hit, ok := primitive.Intersect(ray); ok && hit.Distance > 0 && hit.Distance < maxDistance {
			return true
		}
	}

	return n.Left.intersectAny(ray, maxDistance) || n.Right.intersectAny(ray, maxDistance)
}
