// Package parallel provides the fixed-size worker pool and viewport
// partitioning used by the render coordinator.
//
// Work units within a render pass are independent: no unit reads another's
// output, so completion order is irrelevant. The pool therefore only has to
// guarantee that ExecuteAll returns after every unit has run; the caller
// (the coordinator) owns all merging.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed-size pool of worker goroutines.
//
// Each worker owns a queue and steals from its siblings when idle, which
// keeps cores busy when some units (deep zooms, interior-heavy bands) run
// much longer than others.
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewPool creates a pool with the given number of workers and starts them.
// If workers <= 0, GOMAXPROCS is used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &Pool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range p.queues {
		p.queues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker(i)
	}
	return p
}

// worker is the main loop for each worker goroutine.
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	mine := p.queues[id]
	for {
		select {
		case <-p.done:
			drain(mine)
			return
		case job := <-mine:
			if job != nil {
				job()
			}
		default:
			if job := p.steal(id); job != nil {
				job()
				continue
			}
			// Nothing to steal; block on own queue.
			select {
			case <-p.done:
				drain(mine)
				return
			case job := <-mine:
				if job != nil {
					job()
				}
			}
		}
	}
}

// drain runs all jobs still queued so ExecuteAll callers are not left
// waiting on a closing pool.
func drain(queue chan func()) {
	for {
		select {
		case job := <-queue:
			if job != nil {
				job()
			}
		default:
			return
		}
	}
}

// steal takes one job from another worker's queue, or returns nil.
func (p *Pool) steal(myID int) func() {
	for i := 0; i < p.workers; i++ {
		if i == myID {
			continue
		}
		select {
		case job := <-p.queues[i]:
			return job
		default:
		}
	}
	return nil
}

// ExecuteAll distributes the jobs round-robin across the workers and blocks
// until every job has run. It is the pass barrier: when it returns, all work
// units of the pass have completed. A no-op on a closed pool.
func (p *Pool) ExecuteAll(jobs []func()) {
	if len(jobs) == 0 || !p.running.Load() {
		return
	}

	var pending sync.WaitGroup
	pending.Add(len(jobs))

	for i, job := range jobs {
		job := job
		wrapped := func() {
			defer pending.Done()
			job()
		}
		select {
		case p.queues[i%p.workers] <- wrapped:
		case <-p.done:
			pending.Done()
		}
	}

	pending.Wait()
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// Close stops the pool after finishing queued work.
// Safe to call multiple times.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}
