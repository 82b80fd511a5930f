package parallel

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

// TestWorkerPool_RunsAllTasks tests basic task execution
func TestWorkerPool_RunsAllTasks(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	done := make(chan struct{})
	const tasks = 100

	for i := 0; i < tasks; i++ {
		if !pool.Submit(func() {
			if counter.Add(1) == tasks {
				close(done)
			}
		}) {
			t.Fatal("Submit failed on open pool")
		}
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("Timed out, completed %d of %d tasks", counter.Load(), tasks)
	}
}

// TestWorkerPool_SubmitAfterClose tests that a closed pool rejects tasks
func TestWorkerPool_SubmitAfterClose(t *testing.T) {
	pool := NewWorkerPool(1)
	pool.Close()

	if pool.Submit(func() {}) {
		t.Error("Submit should return false after Close")
	}
}

// TestWorkerPool_DefaultWorkers tests the GOMAXPROCS default
func TestWorkerPool_DefaultWorkers(t *testing.T) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	if pool.Workers() < 1 {
		t.Errorf("Expected at least 1 worker, got %d", pool.Workers())
	}
}

// TestForEach_DeterministicSlots tests that every index runs exactly once
func TestForEach_DeterministicSlots(t *testing.T) {
	pool := NewWorkerPool(8)
	defer pool.Close()

	const n = 500
	results := make([]int, n)
	err := ForEach(context.Background(), pool, n, func(i int) {
		results[i] = i + 1
	})
	if err != nil {
		t.Fatalf("ForEach failed: %v", err)
	}

	for i, v := range results {
		if v != i+1 {
			t.Fatalf("Slot %d not filled (got %d)", i, v)
		}
	}
}

// TestForEach_Cancellation tests that cancellation stops the fan-out
func TestForEach_Cancellation(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Int64
	err := ForEach(ctx, pool, 1000, func(i int) {
		ran.Add(1)
	})
	if err == nil {
		t.Error("Expected context error")
	}
	if ran.Load() == 1000 {
		t.Error("Expected early stop after cancellation")
	}
}
