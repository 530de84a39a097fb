package parallel

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
)

// Lease pins a pool for the duration of one render.
//
// While a lease is held the pool keeps accepting work even if the Manager has
// already replaced it. Release must be called exactly once; extra calls are
// ignored. Release must not be called from a task running on the leased pool.
type Lease struct {
	pool *WorkerPool
	once sync.Once
}

// Workers returns the number of workers in the leased pool.
func (l *Lease) Workers() int {
	return l.pool.Workers()
}

// Submit sends fn to the leased pool.
func (l *Lease) Submit(fn func() error) *Future {
	return l.pool.Submit(fn)
}

// ExecuteAll runs work on the leased pool and waits for all of it.
// See WorkerPool.ExecuteAll.
func (l *Lease) ExecuteAll(work []func() error) error {
	return l.pool.ExecuteAll(work)
}

// Release returns the lease. A retired pool closes when its last lease is
// released.
func (l *Lease) Release() {
	l.once.Do(l.pool.release)
}

// ManagerOption configures a Manager during creation.
type ManagerOption func(*Manager)

// WithLogger sets the logger used for pool lifecycle events.
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.SetLogger(l)
	}
}

// WithMetrics attaches Prometheus collectors to every pool the Manager creates.
func WithMetrics(metrics *Metrics) ManagerOption {
	return func(m *Manager) {
		m.metrics = metrics
	}
}

// Manager owns the single live WorkerPool and replaces it on demand.
//
// The current pool is published through an atomic pointer, so a replacement
// is visible to the next Acquire or Submit on any goroutine. Replaced pools
// are retired rather than closed, which lets in-flight renders finish on the
// pool they started with.
//
// Thread safety: Manager is safe for concurrent use.
type Manager struct {
	current atomic.Pointer[WorkerPool]

	// mu serializes Reconfigure and Close.
	mu     sync.Mutex
	closed bool

	logger  atomic.Pointer[slog.Logger]
	metrics *Metrics
}

// NewManager creates a manager whose initial pool has the given number of
// workers. If workers is 0 or negative, GOMAXPROCS is used.
func NewManager(workers int, opts ...ManagerOption) *Manager {
	m := &Manager{}
	m.logger.Store(slog.New(discardHandler{}))
	for _, opt := range opts {
		opt(m)
	}

	p := newWorkerPool(workers, m.metrics)
	m.current.Store(p)
	m.metrics.poolReplaced(p.Workers(), true)
	m.log().Info("parallel: pool created", "workers", p.Workers())
	return m
}

// SetLogger replaces the lifecycle logger. Nil silences the manager.
func (m *Manager) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(discardHandler{})
	}
	m.logger.Store(l)
}

func (m *Manager) log() *slog.Logger {
	return m.logger.Load()
}

// Acquire leases the current pool. It fails with ErrPoolClosed after Close.
func (m *Manager) Acquire() (*Lease, error) {
	for {
		p := m.current.Load()
		if p == nil {
			return nil, ErrPoolClosed
		}
		if p.acquire() {
			return &Lease{pool: p}, nil
		}
		// p was retired after we loaded it; the swap that retired it has
		// already published its successor (or nil), so reload.
	}
}

// Submit sends fn to the current pool. The pool stays alive until fn has
// finished even if it is replaced in the meantime.
func (m *Manager) Submit(fn func() error) *Future {
	lease, err := m.Acquire()
	if err != nil {
		f := newFuture()
		f.complete(err)
		return f
	}
	f := lease.Submit(fn)
	go func() {
		<-f.Done()
		lease.Release()
	}()
	return f
}

// Reconfigure replaces the current pool with a new one of the given size and
// retires the old one. Renders holding a lease on the old pool are not
// affected. Reconfigure after Close is a no-op.
func (m *Manager) Reconfigure(workers int) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}

	next := newWorkerPool(workers, m.metrics)
	prev := m.current.Swap(next)
	m.metrics.poolReplaced(next.Workers(), false)
	m.log().Info("parallel: pool reconfigured", "from", prev.Workers(), "to", next.Workers())

	prev.retire()
}

// Workers returns the size of the current pool, or 0 after Close.
func (m *Manager) Workers() int {
	p := m.current.Load()
	if p == nil {
		return 0
	}
	return p.Workers()
}

// Close retires the current pool and rejects further work. Outstanding
// leases keep their pool running until released. Close is safe to call
// multiple times.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.closed = true

	if p := m.current.Swap(nil); p != nil {
		p.retire()
		m.log().Info("parallel: pool manager closed", "workers", p.Workers())
	}
}

// discardHandler drops every record.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }
