package graph

import (
	"github.com/whitted/go-whitted/pkg/core"
	"github.com/whitted/go-whitted/pkg/geometry"
)

// KDTreeBuilder accumulates primitives and builds a kd-tree from them.
// Build is an offline, single-threaded step that runs once per scene.
type KDTreeBuilder struct {
	primitives []geometry.Primitive
}

// NewKDTreeBuilder creates an empty kd-tree builder
func NewKDTreeBuilder() *KDTreeBuilder {
	return &KDTreeBuilder{}
}

// Add appends a primitive to the graph under construction
func (b *KDTreeBuilder) Add(primitive geometry.Primitive) {
	b.primitives = append(b.primitives, primitive)
}

// Build constructs the kd-tree over all added primitives
func (b *KDTreeBuilder) Build() *KDTree {
	primitives := make([]geometry.Primitive, len(b.primitives))
	copy(primitives, b.primitives)

	return &KDTree{
		root: build(primitives, 0),
		size: len(primitives),
	}
}

func build(primitives []geometry.Primitive, depth int) *Node {
	node := &Node{Box: core.EmptyAABB(), Depth: depth}

	// Small subtrees become leaves immediately
	if len(primitives) == 0 {
		return node
	}
	if len(primitives) == 1 {
		node.Primitives = primitives
		node.Origin = primitives[0].Midpoint()
		node.Box = primitives[0].BoundingBox()
		return node
	}

	for _, primitive := range primitives {
		node.Box = node.Box.Union(primitive.BoundingBox())
		node.Origin = node.Origin.Add(primitive.Midpoint().Multiply(1 / float64(len(primitives))))
	}

	// Split on the longest axis of the node's bounds, around the mean of
	// the primitive midpoints
	axis := node.Box.LongestAxis()
	pivot := node.Origin.Component(axis)

	var left, right []geometry.Primitive
	for _, primitive := range primitives {
		if primitive.Midpoint().Component(axis) < pivot {
			left = append(left, primitive)
		} else {
			right = append(right, primitive)
		}
	}

	if len(left) == 0 {
		left = right
	}
	if len(right) == 0 {
		right = left
	}

	// Recursing only helps when the split actually separates the sets.
	// Heavily overlapping sides would recurse forever on the same list, so
	// such nodes become leaves holding the original primitives.
	if overlap(left, right) >= 0.5 || overlap(right, left) >= 0.5 {
		node.Primitives = primitives
		return node
	}

	node.Left = build(left, depth+1)
	node.Right = build(right, depth+1)
	return node
}

// overlap returns the fraction of primitives of a that also appear in b,
// compared by identity
func overlap(a, b []geometry.Primitive) float64 {
	matches := 0
	for _, pa := range a {
		for _, pb := range b {
			if pa == pb {
				matches++
			}
		}
	}
	return float64(matches) / float64(len(a))
}
