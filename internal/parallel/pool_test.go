package parallel

import (
	"sync/atomic"
	"testing"
)

func TestWorkerPoolExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	work := make([]func(), 100)
	for i := range work {
		work[i] = func() { counter.Add(1) }
	}

	pool.ExecuteAll(work)
	if got := counter.Load(); got != 100 {
		t.Errorf("executed %d items, want 100", got)
	}
}

func TestWorkerPoolExecuteAllEmpty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	pool.ExecuteAll(nil)
	pool.ExecuteAll([]func(){})
}

func TestWorkerPoolReuse(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	var counter atomic.Int64
	for round := 0; round < 5; round++ {
		work := make([]func(), 10)
		for i := range work {
			work[i] = func() { counter.Add(1) }
		}
		pool.ExecuteAll(work)
	}
	if got := counter.Load(); got != 50 {
		t.Errorf("executed %d items over 5 rounds, want 50", got)
	}
}

func TestWorkerPoolDefaultWorkers(t *testing.T) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	if pool.Workers() <= 0 {
		t.Errorf("Workers() = %d, want positive default", pool.Workers())
	}
}

func TestWorkerPoolClose(t *testing.T) {
	pool := NewWorkerPool(2)

	if !pool.IsRunning() {
		t.Error("new pool reports not running")
	}
	pool.Close()
	if pool.IsRunning() {
		t.Error("closed pool reports running")
	}

	// Close is idempotent and a closed pool drops new work.
	pool.Close()
	var counter atomic.Int64
	pool.ExecuteAll([]func(){func() { counter.Add(1) }})
	if counter.Load() != 0 {
		t.Error("closed pool executed work")
	}
}

func TestWorkerPoolMoreWorkThanWorkers(t *testing.T) {
	// Oversubscription forces queue reuse and stealing.
	pool := NewWorkerPool(2)
	defer pool.Close()

	var counter atomic.Int64
	work := make([]func(), 64)
	for i := range work {
		work[i] = func() { counter.Add(1) }
	}
	pool.ExecuteAll(work)
	if got := counter.Load(); got != 64 {
		t.Errorf("executed %d items, want 64", got)
	}
}
