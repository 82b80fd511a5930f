// Package parallel provides the worker pool used to fan per-company
// analysis tasks across goroutines. Company traversals share only
// read access to the immutable graph, so the pool needs no coordination
// beyond task distribution.
package parallel

import (
	"context"
	"runtime"
	"sync"
)

// WorkerPool manages a pool of worker goroutines
type WorkerPool struct {
	workers   int
	taskQueue chan func()
	wg        sync.WaitGroup
	once      sync.Once
	mu        sync.RWMutex // Protects taskQueue from concurrent close during send
	closed    bool         // Protected by mu
}

// NewWorkerPool creates a pool with the given number of workers.
// Non-positive counts default to GOMAXPROCS.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	pool := &WorkerPool{
		workers:   workers,
		taskQueue: make(chan func(), workers*2),
	}

	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}
	return pool
}

// Workers returns the configured worker count
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()
	for task := range wp.taskQueue {
		task()
	}
}

// Submit adds a task to the pool. Returns false if the pool is closed.
func (wp *WorkerPool) Submit(task func()) bool {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.closed {
		return false
	}
	wp.taskQueue <- task
	return true
}

// Close shuts down the pool and waits for in-flight tasks
func (wp *WorkerPool) Close() {
	wp.once.Do(func() {
		wp.mu.Lock()
		wp.closed = true
		close(wp.taskQueue)
		wp.mu.Unlock()
	})
	wp.wg.Wait()
}

// ForEach runs fn for every index in [0,n) across the pool and waits for
// completion. Each index gets its own result slot, so callers keep
// deterministic output ordering without any locking of their own.
// Remaining indices are skipped once ctx is cancelled; ForEach returns the
// context error in that case.
func ForEach(ctx context.Context, pool *WorkerPool, n int, fn func(i int)) error {
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		if !pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() == nil {
				fn(i)
			}
		}) {
			wg.Done()
			break
		}
	}
	wg.Wait()
	return ctx.Err()
}
