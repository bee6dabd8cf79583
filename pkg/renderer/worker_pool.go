package renderer

import (
	"context"
	"runtime"
	"sync"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
)

// RowTask represents a scan-line rendering task for the worker pool
type RowTask struct {
	Y      int
	Pixels []core.Vec3 // Destination slice of the shared frame buffer
}

// WorkerPool manages parallel scan-line rendering
type WorkerPool struct {
	taskQueue  chan RowTask
	workers    []*Worker
	numWorkers int
	wg         sync.WaitGroup
}

// Worker handles individual scan-line tasks
type Worker struct {
	ID        int
	raytracer *Raytracer
	taskQueue chan RowTask
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(raytracer *Raytracer, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:  make(chan RowTask, numWorkers*2),
		numWorkers: numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:        i,
			raytracer: raytracer,
			taskQueue: wp.taskQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop waits for queued tasks to finish and shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
}

// SubmitTask queues a task, giving up if the context is cancelled first
func (wp *WorkerPool) SubmitTask(ctx context.Context, task RowTask) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case wp.taskQueue <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Render distributes every scan-line of img across the workers. Rows cover
// disjoint parts of the buffer, so workers write without locking.
func (wp *WorkerPool) Render(ctx context.Context, img *loaders.ImageData) error {
	wp.Start()

	var err error
	for y := 0; y < img.Height; y++ {
		if err = wp.SubmitTask(ctx, RowTask{Y: y, Pixels: img.Row(y)}); err != nil {
			break
		}
	}

	wp.Stop()
	return err
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		w.raytracer.RenderRow(task.Y, task.Pixels)
	}
}
