// Package parallel provides the worker pool used for concurrent tile
// rendering.
//
// Tile renders are coarse units of work (a full plugin invocation plus
// bitmap normalization), and a composition has at most the grid cell
// count of them, so the pool is a plain shared-queue design: no work
// stealing, no per-worker queues.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed-size pool of worker goroutines.
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	workers int
	queue   chan func()
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewPool creates a pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// Workers start immediately and wait for work.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		workers: workers,
		queue:   make(chan func(), workers*2),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}

	return p
}

// worker is the main loop for each worker goroutine. It exits when the
// queue is closed and drained.
func (p *Pool) worker() {
	defer p.wg.Done()
	for work := range p.queue {
		if work != nil {
			work()
		}
	}
}

// ExecuteAll distributes work across the workers and waits for all items
// to complete. If the pool is closed, this is a no-op.
func (p *Pool) ExecuteAll(work []func()) {
	if len(work) == 0 || !p.running.Load() {
		return
	}

	var done sync.WaitGroup
	done.Add(len(work))

	for _, fn := range work {
		fn := fn
		p.queue <- func() {
			defer done.Done()
			fn()
		}
	}

	done.Wait()
}

// Close gracefully shuts down the pool: it stops accepting work, lets
// queued work finish, and waits for all workers to exit.
// Close is safe to call multiple times.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.queue)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return p.workers
}
