package kernel

import (
	"image"
	"runtime"
	"sync"

	"github.com/whitted/go-whitted/pkg/scene"
)

// MultithreadedKernel schedules the tiles of a partitioned film over a
// fixed-size worker pool, delegating the per-pixel work to an inner kernel.
// The pool lives for the lifetime of the kernel; Close joins the workers.
//
// Observers are fixed at construction and are invoked synchronously: the
// partition callbacks from worker goroutines, RenderStarted and
// RenderFinished from the goroutine that calls Render.
type MultithreadedKernel struct {
	inner      Kernel
	workers    int
	partitions int
	lo, hi     int
	observers  []Observer

	jobs chan func()
	wg   sync.WaitGroup
}

// NewMultithreadedKernel creates a scheduler over the inner kernel that
// renders all partitions. A non-positive worker count defaults to the
// number of CPUs.
func NewMultithreadedKernel(inner Kernel, workers, partitions int, observers ...Observer) *MultithreadedKernel {
	return NewMultithreadedKernelWithRange(inner, workers, partitions, 0, partitions, observers...)
}

// NewMultithreadedKernelWithRange creates a scheduler that only renders the
// partitions in the index range [lo, hi). Rendering a slice of the film
// supports distributed rendering and single-tile reproduction.
func NewMultithreadedKernelWithRange(inner Kernel, workers, partitions, lo, hi int, observers ...Observer) *MultithreadedKernel {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	k := &MultithreadedKernel{
		inner:      inner,
		workers:    workers,
		partitions: partitions,
		lo:         lo,
		hi:         hi,
		observers:  observers,
		jobs:       make(chan func(), partitions),
	}

	for i := 0; i < workers; i++ {
		k.wg.Add(1)
		go k.worker()
	}

	return k
}

// worker drains the job queue until the queue is closed
func (k *MultithreadedKernel) worker() {
	defer k.wg.Done()
	for job := range k.jobs {
		job()
	}
}

// Workers returns the number of workers in the pool
func (k *MultithreadedKernel) Workers() int {
	return k.workers
}

// Close shuts the worker pool down, draining in-flight jobs. The kernel
// must not be used afterwards.
func (k *MultithreadedKernel) Close() {
	close(k.jobs)
	k.wg.Wait()
}

// Render tiles the camera viewport into a partitioned film, renders every
// tile in the configured index range on the pool and returns the film once
// every enqueued job has finished.
func (k *MultithreadedKernel) Render(s *scene.Scene, camera scene.Camera) Film {
	for _, observer := range k.observers {
		observer.RenderStarted(k, s, camera, k.partitions)
	}

	film := NewPartitionedFilm(camera.Viewport.Dx(), camera.Viewport.Dy(), k.partitions)

	var pending sync.WaitGroup
	for i := k.lo; i < k.hi; i++ {
		partition := film.Partition(i)
		offset := film.Offset(i)
		id := i

		pending.Add(1)
		k.jobs <- func() {
			defer pending.Done()

			for _, observer := range k.observers {
				observer.PartitionStarted(k, id, partition, offset)
			}

			k.inner.RenderRegion(s, camera, partition, offset)

			for _, observer := range k.observers {
				observer.PartitionFinished(k, id, partition, offset)
			}
		}
	}
	pending.Wait()

	for _, observer := range k.observers {
		observer.RenderFinished(k, film)
	}

	return film
}

// RenderRegion delegates directly to the inner kernel; the worker pool is
// only used for whole-film renders.
func (k *MultithreadedKernel) RenderRegion(s *scene.Scene, camera scene.Camera, film Film, offset image.Point) {
	k.inner.RenderRegion(s, camera, film, offset)
}
