package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolRunsAllTasks(t *testing.T) {
	p := NewPool(4)

	var done [100]int32
	p.Each(context.Background(), len(done), func(_ context.Context, i int) {
		atomic.StoreInt32(&done[i], 1)
	})

	for i, v := range done {
		if v != 1 {
			t.Errorf("task %d never ran", i)
		}
	}
}

func TestPoolBoundsConcurrency(t *testing.T) {
	const workers = 3
	p := NewPool(workers)

	var mu sync.Mutex
	var running, peak int

	p.Each(context.Background(), 20, func(_ context.Context, _ int) {
		mu.Lock()
		running++
		if running > peak {
			peak = running
		}
		mu.Unlock()

		time.Sleep(5 * time.Millisecond)

		mu.Lock()
		running--
		mu.Unlock()
	})

	if peak > workers {
		t.Errorf("peak concurrency %d exceeds limit %d", peak, workers)
	}
}

func TestPoolZeroTasks(t *testing.T) {
	p := NewPool(4)
	p.Each(context.Background(), 0, func(context.Context, int) {
		t.Error("task ran for n=0")
	})
}

func TestPoolDefaultsToOneWorker(t *testing.T) {
	if got := NewPool(0).Workers(); got != 1 {
		t.Errorf("Workers() = %d, want 1", got)
	}
	if got := NewPool(-5).Workers(); got != 1 {
		t.Errorf("Workers() = %d, want 1", got)
	}
}

func TestPoolStopsOnCancel(t *testing.T) {
	p := NewPool(1)
	ctx, cancel := context.WithCancel(context.Background())

	var started int32
	p.Each(ctx, 50, func(_ context.Context, _ int) {
		atomic.AddInt32(&started, 1)
		cancel()
		time.Sleep(5 * time.Millisecond)
	})

	// With one worker and a cancel in the first task, far fewer than all
	// tasks may start.
	if n := atomic.LoadInt32(&started); n == 50 {
		t.Errorf("all %d tasks started despite cancellation", n)
	}
}
