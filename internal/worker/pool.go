// Package worker provides bounded concurrency for pipeline stages.
//
// Claims are independent of each other, so the scoring and evidence stages
// fan out one task per claim and join. Tasks handle their own failures; the
// pool only coordinates goroutines.
package worker

import (
	"context"
	"sync"
)

// Pool runs independent tasks with a fixed concurrency limit
type Pool struct {
	workers int
}

// NewPool creates a pool with the given number of workers
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Workers returns the configured concurrency limit
func (p *Pool) Workers() int {
	return p.workers
}

// Each runs task for every index in [0, n) using at most p.workers
// goroutines, and blocks until all started tasks return. When ctx is
// cancelled no new tasks start; running tasks are expected to observe ctx
// themselves.
func (p *Pool) Each(ctx context.Context, n int, task func(ctx context.Context, i int)) {
	if n <= 0 {
		return
	}

	sem := make(chan struct{}, p.workers)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			task(ctx, i)
		}(i)
	}

	wg.Wait()
}
