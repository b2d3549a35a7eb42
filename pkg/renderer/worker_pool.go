package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// WorkerPool renders tiles in parallel with a bounded number of goroutines
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers
// (0 = use CPU count)
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// Run calls render once per tile and waits for all of them. Scheduling stops
// at the first error or when ctx is cancelled; the first error is returned.
func (wp *WorkerPool) Run(ctx context.Context, tiles []*Tile, render func(ctx context.Context, tile *Tile) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(wp.numWorkers)

	for _, tile := range tiles {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return render(gctx, tile)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	// Every started tile finished but the caller may have cancelled before the rest were scheduled
	return ctx.Err()
}
