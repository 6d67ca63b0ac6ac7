// Package engine implements the resampling-based inference core: the
// permutation test, the bootstrap test, and the orchestrator that runs both
// against one reference decomposition.
package engine

import (
	"context"
	"math/rand"
	"runtime"
	"sync"

	"plsgo/ports"

	"golang.org/x/sync/semaphore"
)

// Config wires the external collaborators shared by both engines.
type Config struct {
	Decomposer ports.Decomposer
	Resampler  ports.Resampler
	RNG        ports.RNG
	Preprocess ports.Preprocess

	// Concurrency bounds the worker pool; zero means one worker per CPU.
	// Results are identical for any value because every iteration draws
	// from its own seeded stream and owns its own output slot.
	Concurrency int
}

func (c Config) workers() int {
	if c.Concurrency > 0 {
		return c.Concurrency
	}
	return runtime.NumCPU()
}

// runIterations drives fn once per iteration through a bounded worker pool.
// The first error wins; remaining in-flight iterations still drain before
// return.
func (c Config) runIterations(ctx context.Context, stream string, iterations int, fn func(i int, rng *rand.Rand) error) error {
	sem := semaphore.NewWeighted(int64(c.workers()))

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for i := 0; i < iterations; i++ {
		if err := sem.Acquire(ctx, 1); err != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
			break
		}
		mu.Lock()
		failed := firstErr != nil
		mu.Unlock()
		if failed {
			sem.Release(1)
			break
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer sem.Release(1)
			if err := fn(i, c.RNG.Stream(stream, i)); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(i)
	}

	wg.Wait()
	return firstErr
}
