package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// WorkerPool renders tiles in parallel on a fixed number of goroutines
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool; numWorkers <= 0 means one per CPU
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

// Run feeds tiles to the workers and calls done for each finished tile on the
// calling goroutine, in completion order. The first error from work, or the
// context's error if it is cancelled, stops the remaining tiles and is returned.
func (wp *WorkerPool) Run(ctx context.Context, tiles []*Tile, work func(context.Context, *Tile) error, done func(*Tile)) error {
	g, gctx := errgroup.WithContext(ctx)

	tasks := make(chan *Tile)
	results := make(chan *Tile, len(tiles)) // Workers never block on results

	g.Go(func() error {
		defer close(tasks)
		for _, tile := range tiles {
			select {
			case tasks <- tile:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < wp.numWorkers; i++ {
		g.Go(func() error {
			for tile := range tasks {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := work(gctx, tile); err != nil {
					return err
				}
				results <- tile
			}
			return nil
		})
	}

	var runErr error
	go func() {
		runErr = g.Wait()
		close(results)
	}()

	for tile := range results {
		if done != nil {
			done(tile)
		}
	}

	if runErr != nil {
		return runErr
	}
	// Every tile can finish just as the caller cancels
	return ctx.Err()
}
