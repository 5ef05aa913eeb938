package scanner

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/shirou/gopsutil/v3/cpu"
)

var cpuCounts = cpu.Counts

// scanUnit scans one subtree and stores the result in its parent's slot.
type scanUnit func()

// workerPool runs scan units on a fixed number of goroutines.
type workerPool struct {
	workers int
	units   chan scanUnit
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	closed  atomic.Bool
}

// defaultWorkers is the number of logical CPUs.
func defaultWorkers() int {
	if n, err := cpuCounts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// newWorkerPool starts a pool; workers <= 0 means defaultWorkers().
func newWorkerPool(ctx context.Context, workers int) *workerPool {
	if workers <= 0 {
		workers = defaultWorkers()
	}

	ctx, cancel := context.WithCancel(ctx)
	pool := &workerPool{
		workers: workers,
		// Unbuffered: a unit is only accepted by a worker that is idle right now.
		units:  make(chan scanUnit),
		ctx:    ctx,
		cancel: cancel,
	}

	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}

	return pool
}

func (p *workerPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case unit := <-p.units:
			unit()
		}
	}
}

// Submit hands the unit to an idle worker. It returns false when every
// worker is busy or the pool is closed; the caller must then run the unit
// itself. Units never wait in a queue, so a worker blocked on a join can
// not starve the units it waits for.
func (p *workerPool) Submit(unit scanUnit) bool {
	select {
	case <-p.ctx.Done():
		return false
	default:
	}

	select {
	case p.units <- unit:
		return true
	default:
		return false
	}
}

// Close stops the workers and waits for them. Safe to call more than once.
func (p *workerPool) Close() {
	if p.closed.Swap(true) {
		return
	}
	p.cancel()
	p.wg.Wait()
}
