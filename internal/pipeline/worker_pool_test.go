package pipeline

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestWorkerPool_AllTasksYieldResults(t *testing.T) {
	pool := NewWorkerPool(4, 8)
	results := pool.Run(context.Background())

	const n = 50
	var executed atomic.Int64
	for i := 0; i < n; i++ {
		i := i
		pool.Submit(func(context.Context) Result {
			executed.Add(1)
			if i%5 == 0 {
				return Result{Err: errors.New("boom")}
			}
			return Result{}
		})
	}
	pool.Close()

	var total, failed int
	for r := range results {
		total++
		if r.Err != nil {
			failed++
		}
	}

	if total != n {
		t.Fatalf("expected %d results, got %d", n, total)
	}
	if failed != 10 {
		t.Fatalf("expected 10 failures, got %d", failed)
	}
	if executed.Load() != n {
		t.Fatalf("one task's failure must not stop others: executed=%d", executed.Load())
	}
}

func TestWorkerPool_ZeroWorkersClampedToOne(t *testing.T) {
	pool := NewWorkerPool(0, 0)
	results := pool.Run(context.Background())

	pool.Submit(func(context.Context) Result { return Result{} })
	pool.Close()

	count := 0
	for range results {
		count++
	}
	if count != 1 {
		t.Fatalf("expected 1 result, got %d", count)
	}
}
