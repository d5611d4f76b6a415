package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// WorkerPool runs tile tasks with a bounded number of goroutines. The first
// failing task cancels the pool's context.
type WorkerPool struct {
	g          *errgroup.Group
	ctx        context.Context
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// A non-positive count uses one worker per CPU.
func NewWorkerPool(ctx context.Context, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(numWorkers)

	return &WorkerPool{
		g:          g,
		ctx:        ctx,
		numWorkers: numWorkers,
	}
}

// Submit queues a task, blocking while all workers are busy. Tasks submitted
// after cancellation are skipped.
func (wp *WorkerPool) Submit(task func(ctx context.Context) error) {
	wp.g.Go(func() error {
		if err := wp.ctx.Err(); err != nil {
			return err
		}
		return task(wp.ctx)
	})
}

// Wait blocks until all submitted tasks finish and returns the first error
func (wp *WorkerPool) Wait() error {
	return wp.g.Wait()
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}
