package main

import (
	"fmt"
	"image"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/whitted/go-whitted/pkg/kernel"
	"github.com/whitted/go-whitted/pkg/scene"
)

// consoleObserver reports render progress on stdout. Partition callbacks
// arrive concurrently from worker goroutines, so progress is tracked with
// an atomic counter and every report is a single stdout write.
type consoleObserver struct {
	kernel.NopObserver

	id        string
	total     int64
	completed int64
	begin     time.Time
}

func newConsoleObserver() *consoleObserver {
	return &consoleObserver{}
}

// RenderStarted implements kernel.Observer
func (o *consoleObserver) RenderStarted(k kernel.Kernel, s *scene.Scene, camera scene.Camera, partitions int) {
	o.id = uuid.NewString()[:8]
	o.total = int64(partitions)
	atomic.StoreInt64(&o.completed, 0)
	o.begin = time.Now()

	fmt.Printf("render %s: started (%d partitions, viewport %dx%d)\n",
		o.id, partitions, camera.Viewport.Dx(), camera.Viewport.Dy())
}

// PartitionFinished implements kernel.Observer
func (o *consoleObserver) PartitionFinished(k kernel.Kernel, id int, film kernel.Film, offset image.Point) {
	done := atomic.AddInt64(&o.completed, 1)
	fmt.Printf("render %s: partition %d finished (%d/%d, %.1fs)\n",
		o.id, id, done, o.total, time.Since(o.begin).Seconds())
}

// RenderFinished implements kernel.Observer
func (o *consoleObserver) RenderFinished(k kernel.Kernel, film kernel.Film) {
	fmt.Printf("render %s: finished in %.3fs\n", o.id, time.Since(o.begin).Seconds())
}
