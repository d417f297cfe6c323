package kernel

import (
	"image"

	"github.com/whitted/go-whitted/pkg/scene"
)

// Observer is notified of events happening in a kernel during a render.
// Callbacks run synchronously: the partition callbacks on worker goroutines,
// where they may be invoked concurrently for different tiles, and
// RenderStarted and RenderFinished on the goroutine that calls Render. An
// observer that mutates shared state
// must synchronise internally. Observers must not retain the film after
// RenderFinished returns.
type Observer interface {
	// RenderStarted is invoked once when a render job starts
	RenderStarted(k Kernel, s *scene.Scene, camera scene.Camera, partitions int)

	// PartitionStarted is invoked when the render job of a tile starts
	PartitionStarted(k Kernel, id int, film Film, offset image.Point)

	// PartitionFinished is invoked when the render job of a tile finishes
	PartitionFinished(k Kernel, id int, film Film, offset image.Point)

	// RenderFinished is invoked once when the whole render job finishes
	RenderFinished(k Kernel, film Film)
}

// NopObserver implements Observer with no-ops. Embed it to implement only
// the hooks of interest.
type NopObserver struct{}

// RenderStarted implements Observer
func (NopObserver) RenderStarted(Kernel, *scene.Scene, scene.Camera, int) {}

// PartitionStarted implements Observer
func (NopObserver) PartitionStarted(Kernel, int, Film, image.Point) {}

// PartitionFinished implements Observer
func (NopObserver) PartitionFinished(Kernel, int, Film, image.Point) {}

// RenderFinished implements Observer
func (NopObserver) RenderFinished(Kernel, Film) {}
