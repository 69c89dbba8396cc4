// Package parallel provides a bounded worker pool for counting many
// condition records concurrently. Each task is independent and owns its own
// state; the pool only limits how many run at once and applies backpressure
// to submitters.
package parallel

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool manages a fixed set of goroutines that execute submitted tasks.
// Submit blocks once the queue is full, which keeps memory bounded when the
// producer is faster than the workers.
type WorkerPool struct {
	maxWorkers int
	taskChan   chan func()
	workerWg   sync.WaitGroup

	mu     sync.RWMutex
	closed bool
	once   sync.Once

	completed atomic.Int64
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// If maxWorkers is 0 or negative, it defaults to the number of CPU cores.
func NewWorkerPool(maxWorkers int) *WorkerPool {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}

	pool := &WorkerPool{
		maxWorkers: maxWorkers,
		taskChan:   make(chan func(), maxWorkers*2), // Buffered channel for backpressure
	}

	for i := 0; i < maxWorkers; i++ {
		pool.workerWg.Add(1)
		go pool.worker()
	}

	return pool
}

// worker runs tasks until the queue is closed and drained.
func (wp *WorkerPool) worker() {
	defer wp.workerWg.Done()

	for task := range wp.taskChan {
		if task != nil {
			task()
		}
		wp.completed.Add(1)
	}
}

// Submit queues a task for execution.
// If the queue is full, this call blocks until a worker takes a task or ctx
// is cancelled. Returns ErrPoolShutdown after Shutdown.
func (wp *WorkerPool) Submit(ctx context.Context, task func()) error {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.closed {
		return ErrPoolShutdown
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case wp.taskChan <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops accepting tasks, lets the workers finish everything already
// queued and waits for them to exit. It is safe to call more than once.
func (wp *WorkerPool) Shutdown() {
	wp.once.Do(func() {
		wp.mu.Lock()
		wp.closed = true
		close(wp.taskChan)
		wp.mu.Unlock()

		wp.workerWg.Wait()
	})
}

// Workers returns the number of worker goroutines.
func (wp *WorkerPool) Workers() int {
	return wp.maxWorkers
}

// Completed returns the number of tasks executed so far.
func (wp *WorkerPool) Completed() int64 {
	return wp.completed.Load()
}

// ErrPoolShutdown is returned when trying to submit tasks to a shutdown pool.
var ErrPoolShutdown = fmt.Errorf("worker pool has been shutdown")
