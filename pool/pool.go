// ABOUTME: Simple worker pool for parallelizing batch I/O tasks
// ABOUTME: Provides submit-and-wait plus an Each helper used to read audio metadata

// Package pool runs batches of independent tasks on a fixed set of goroutines.
package pool

import (
	"runtime"
	"sync"
)

// WorkerPool manages a pool of worker goroutines for parallel task execution
type WorkerPool struct {
	workers  int
	taskChan chan func()
	workerWg sync.WaitGroup // tracks worker goroutines lifetime
	taskWg   sync.WaitGroup // tracks submitted tasks completion
}

// NewWorkerPool creates a worker pool with the given number of workers.
// A non-positive count sizes the pool to available CPUs.
func NewWorkerPool(workers, bufferSize int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	pool := &WorkerPool{
		workers:  workers,
		taskChan: make(chan func(), bufferSize),
	}

	for range workers {
		pool.workerWg.Add(1)

		go func() {
			defer pool.workerWg.Done()

			for task := range pool.taskChan {
				task()
				pool.taskWg.Done()
			}
		}()
	}

	return pool
}

// Workers returns the number of worker goroutines
func (p *WorkerPool) Workers() int {
	return p.workers
}

// Submit adds a task to the pool
// Blocks if the task channel is full
func (p *WorkerPool) Submit(task func()) {
	p.taskWg.Add(1)
	p.taskChan <- task
}

// Wait blocks until all submitted tasks have completed
func (p *WorkerPool) Wait() {
	p.taskWg.Wait()
}

// Close shuts down the worker pool and waits for all workers to exit
func (p *WorkerPool) Close() {
	close(p.taskChan)
	p.workerWg.Wait()
}

// Each calls fn(i) for every i in [0, n) on a temporary pool and waits for completion.
// Calls for different indexes run concurrently; fn must only touch index-owned state.
func Each(workers, n int, fn func(i int)) {
	if n == 0 {
		return
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	p := NewWorkerPool(min(workers, n), n)
	defer p.Close()

	for i := range n {
		p.Submit(func() { fn(i) })
	}

	p.Wait()
}
