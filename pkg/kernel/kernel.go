// Package kernel contains the rendering kernels: the shading kernel that
// turns rays into radiance and the multithreaded kernel that schedules
// tiles over a worker pool.
package kernel

import (
	"image"

	"github.com/whitted/go-whitted/pkg/scene"
)

// Kernel renders a scene through a camera onto a film. Kernels never fail:
// numerical edge cases are absorbed inside the shading code and a miss is
// simply the background colour.
type Kernel interface {
	// Render renders the scene and returns a film sized to the camera's
	// viewport
	Render(s *scene.Scene, camera scene.Camera) Film

	// RenderRegion renders into the given film, offsetting every pixel
	// coordinate by offset within the camera's viewport. It is the unit of
	// work for tile scheduling.
	RenderRegion(s *scene.Scene, camera scene.Camera, film Film, offset image.Point)
}
