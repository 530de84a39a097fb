// Package parallel provides the worker pools that execute strip tasks for the
// Mandelbrot engine.
//
// A WorkerPool owns a fixed set of goroutines, each with its own queue.
// Workers steal from other queues when their own runs dry, so a strip that
// happens to cover the slow interior of the set does not leave the other
// workers idle.
//
// Pools are never resized in place. A Manager holds the current pool behind
// an atomic pointer and replaces it on reconfiguration; callers pin a pool
// with a Lease for the duration of one render, and a retired pool shuts down
// only after its last lease is released.
package parallel

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// ErrPoolClosed is reported by futures whose work was submitted to a pool
// that no longer accepts work.
var ErrPoolClosed = errors.New("parallel: pool closed")

// job is one queued unit of work together with the future it completes.
type job struct {
	run    func() error
	future *Future
}

// WorkerPool is a pool of goroutines for parallel strip computation.
//
// The pool distributes work items across multiple workers, each with their own
// queue. Workers can steal work from other workers when their own queue is empty.
// This helps balance load when some tasks are slower than others.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	// workers is the number of worker goroutines.
	workers int

	// workQueues holds per-worker work queues.
	// Each worker primarily pulls from its own queue but can steal from others.
	workQueues []chan *job

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	// running indicates whether the pool is accepting work.
	running atomic.Bool

	// closeMu orders enqueues against Close: submitters hold the read lock
	// while enqueuing, Close takes the write lock before signalling workers.
	closeMu sync.RWMutex

	// leaseMu guards leases and retired.
	leaseMu sync.Mutex
	leases  int
	retired bool

	metrics *Metrics
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// The pool starts immediately and workers begin waiting for work.
func NewWorkerPool(workers int) *WorkerPool {
	return newWorkerPool(workers, nil)
}

func newWorkerPool(workers int, metrics *Metrics) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Buffer size: 2-4x workers helps hide latency
	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan *job, workers),
		done:       make(chan struct{}),
		metrics:    metrics,
	}

	for i := range workers {
		p.workQueues[i] = make(chan *job, queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

// worker is the main loop for each worker goroutine.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	myQueue := p.workQueues[id]

	for {
		select {
		case <-p.done:
			p.drainQueue(myQueue)
			return

		case j := <-myQueue:
			p.execute(j)

		default:
			if stolen := p.steal(id); stolen != nil {
				p.execute(stolen)
				continue
			}
			// No work available anywhere, block on own queue
			select {
			case <-p.done:
				p.drainQueue(myQueue)
				return
			case j := <-myQueue:
				p.execute(j)
			}
		}
	}
}

// execute runs a job and completes its future.
func (p *WorkerPool) execute(j *job) {
	if j == nil {
		return
	}
	start := time.Now()
	err := safeCall(j.run)
	p.metrics.observeTask(time.Since(start), err)
	j.future.complete(err)
}

// drainQueue executes all remaining work in a queue.
func (p *WorkerPool) drainQueue(queue chan *job) {
	for {
		select {
		case j := <-queue:
			p.execute(j)
		default:
			return
		}
	}
}

// steal attempts to take work from another worker's queue.
// Returns nil if no work is available.
func (p *WorkerPool) steal(myID int) *job {
	for i := range p.workers {
		if i == myID {
			continue
		}

		select {
		case j := <-p.workQueues[i]:
			return j
		default:
		}
	}
	return nil
}

// enqueue places fn on the given worker's queue. The returned future is
// already completed with ErrPoolClosed if the pool is not running.
func (p *WorkerPool) enqueue(workerID int, fn func() error) *Future {
	f := newFuture()
	if fn == nil {
		f.complete(nil)
		return f
	}

	p.closeMu.RLock()
	defer p.closeMu.RUnlock()

	if !p.running.Load() {
		f.complete(ErrPoolClosed)
		return f
	}

	p.metrics.taskSubmitted()
	// May block if the queue is full; workers keep draining until Close,
	// which cannot proceed while we hold the read lock.
	p.workQueues[workerID] <- &job{run: fn, future: f}
	return f
}

// Submit sends a single work item to the pool and returns a future for its
// result. The work is distributed to the worker with the shortest queue.
// A nil fn yields an already successful future.
func (p *WorkerPool) Submit(fn func() error) *Future {
	// Find worker with shortest queue (simple load balancing)
	minLen := len(p.workQueues[0])
	minIdx := 0

	for i := 1; i < p.workers; i++ {
		qLen := len(p.workQueues[i])
		if qLen < minLen {
			minLen = qLen
			minIdx = i
		}
	}

	return p.enqueue(minIdx, fn)
}

// ExecuteAll distributes work round-robin across workers and waits for every
// item to complete, whether it succeeds or fails. It returns the first error
// reported, in completion order, or nil when all items succeeded.
//
// ExecuteAll must not be called from a task running on the same pool.
func (p *WorkerPool) ExecuteAll(work []func() error) error {
	if len(work) == 0 {
		return nil
	}

	var first firstError
	futures := make([]*Future, len(work))

	for i, fn := range work {
		if fn == nil {
			futures[i] = p.enqueue(i%p.workers, nil)
			continue
		}
		workFn := fn
		futures[i] = p.enqueue(i%p.workers, func() error {
			err := safeCall(workFn)
			first.set(err)
			return err
		})
	}

	// Rejected submissions never ran, so they are recorded here.
	for _, f := range futures {
		first.set(f.Wait())
	}

	return first.get()
}

// Close gracefully shuts down the pool.
// It stops accepting new work, waits for all queued work to complete,
// and then stops all workers.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	p.closeMu.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.closeMu.Unlock()
		return
	}
	p.closeMu.Unlock()

	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}

// QueuedWork returns the total number of work items currently queued.
// This is an approximation as queues can change while iterating.
func (p *WorkerPool) QueuedWork() int {
	total := 0
	for _, q := range p.workQueues {
		total += len(q)
	}
	return total
}

// acquire registers a lease. It fails once the pool is retired or closed.
func (p *WorkerPool) acquire() bool {
	p.leaseMu.Lock()
	defer p.leaseMu.Unlock()

	if p.retired || !p.running.Load() {
		return false
	}
	p.leases++
	return true
}

// release drops a lease and closes a retired pool when it was the last one.
func (p *WorkerPool) release() {
	p.leaseMu.Lock()
	p.leases--
	closeNow := p.retired && p.leases == 0
	p.leaseMu.Unlock()

	if closeNow {
		p.Close()
	}
}

// retire stops new leases. The pool closes now if idle, otherwise when the
// last outstanding lease is released.
func (p *WorkerPool) retire() {
	p.leaseMu.Lock()
	p.retired = true
	closeNow := p.leases == 0
	p.leaseMu.Unlock()

	if closeNow {
		p.Close()
	}
}

// safeCall runs fn and turns a panic into an error.
func safeCall(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("parallel: task panicked: %w", e)
				return
			}
			err = fmt.Errorf("parallel: task panicked: %v", r)
		}
	}()
	return fn()
}

// firstError keeps the first non-nil error it is given.
type firstError struct {
	mu  sync.Mutex
	err error
}

func (f *firstError) set(err error) {
	if err == nil {
		return
	}
	f.mu.Lock()
	if f.err == nil {
		f.err = err
	}
	f.mu.Unlock()
}

func (f *firstError) get() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}
