// Package scene holds the immutable description of what gets rendered: the
// kd-tree over the geometry, the point lights and the camera.
package scene

import (
	"github.com/whitted/go-whitted/pkg/core"
	"github.com/whitted/go-whitted/pkg/graph"
)

// Scene is the root object handed to a rendering kernel. It is built once
// by a loader and treated as read-only afterwards, so it can be shared by
// every worker thread without synchronisation.
type Scene struct {
	// Graph answers ray intersection queries over the scene's geometry
	Graph graph.SceneGraph

	// Lights are the positions of the point lights, in insertion order
	Lights []core.Vec3

	// Camera is the default camera of the scene
	Camera Camera
}

// New creates a scene over the given graph with no lights and a zero camera
func New(g graph.SceneGraph) *Scene {
	return &Scene{Graph: g}
}
