package mandelbrot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/LuisGonzalez2002/EjercicioMandelbrotLuisGonzalezGonzalez/internal/parallel"
)

// ErrClosed is returned by Render after Close.
var ErrClosed = errors.New("mandelbrot: engine closed")

// RenderRequest is the immutable description of one render.
type RenderRequest struct {
	Width   int
	Height  int
	Workers int
}

// Validate checks the request dimensions and worker count.
func (r RenderRequest) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidConfiguration, r.Width, r.Height)
	}
	return validateWorkers(r.Workers)
}

func validateWorkers(n int) error {
	if n < MinWorkers || n > MaxWorkers {
		return fmt.Errorf("%w: worker count %d outside [%d, %d]", ErrInvalidConfiguration, n, MinWorkers, MaxWorkers)
	}
	return nil
}

// Engine renders the Mandelbrot set by splitting the image into horizontal
// strips and filling them on a worker pool.
//
// Render blocks its caller until every strip has reported, so it should be
// called from a background goroutine when the caller drives a UI. The worker
// count can be changed at any time with SetWorkers; renders already running
// finish on the pool they started with.
//
// Thread safety: Engine is safe for concurrent use.
type Engine struct {
	manager *parallel.Manager
	colorer PixelColorer
	metrics *renderMetrics

	// mu orders SetWorkers calls so the setting and the pool agree.
	mu      sync.Mutex
	workers atomic.Int64
	closed  atomic.Bool
}

// NewEngine creates an engine and its initial worker pool.
//
// Example:
//
//	e, err := mandelbrot.NewEngine(mandelbrot.WithWorkers(8))
//	if err != nil {
//	    return err
//	}
//	defer e.Close()
//
//	img, err := e.Render(ctx, 800, 600)
func NewEngine(opts ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := validateWorkers(o.workers); err != nil {
		return nil, err
	}

	managerOpts := []parallel.ManagerOption{parallel.WithLogger(Logger())}
	if o.registerer != nil {
		managerOpts = append(managerOpts, parallel.WithMetrics(parallel.NewMetrics(o.registerer, MetricsNamespace)))
	}

	e := &Engine{
		manager: parallel.NewManager(o.workers, managerOpts...),
		colorer: o.colorer,
		metrics: newRenderMetrics(o.registerer),
	}
	e.workers.Store(int64(o.workers))
	engines.Store(e, struct{}{})
	return e, nil
}

// Workers returns the current worker count setting.
func (e *Engine) Workers() int {
	return int(e.workers.Load())
}

// SetWorkers changes the worker count. The worker pool is replaced; renders
// in flight are not affected and the new count applies from the next render.
func (e *Engine) SetWorkers(n int) error {
	if err := validateWorkers(n); err != nil {
		return err
	}
	if e.closed.Load() {
		return ErrClosed
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.workers.Store(int64(n))
	e.manager.Reconfigure(n)
	return nil
}

// Render renders a width x height image with the current worker count.
func (e *Engine) Render(ctx context.Context, width, height int) (*Image, error) {
	return e.RenderWith(ctx, RenderRequest{
		Width:   width,
		Height:  height,
		Workers: e.Workers(),
	})
}

// RenderWith renders the image described by req.
//
// The image is planned into req.Workers strips and one task per non-empty
// strip is submitted to the current pool. RenderWith returns only after
// every task has finished. If any strip fails, or ctx is canceled before all
// strips are filled, the image is discarded and a *RenderFailure carrying the
// first reported cause is returned. Failed renders are not retried.
func (e *Engine) RenderWith(ctx context.Context, req RenderRequest) (*Image, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, &RenderFailure{Cause: err}
	}

	lease, err := e.manager.Acquire()
	if err != nil {
		return nil, ErrClosed
	}
	defer lease.Release()

	img := NewImage(req.Width, req.Height)
	plan := Plan(req.Height, req.Workers)
	strips, err := img.Strips(plan)
	if err != nil {
		return nil, err
	}

	var failed atomic.Int64
	work := make([]func() error, 0, len(strips))
	for _, s := range strips {
		if s.Range().Empty() {
			continue
		}
		strip := s
		work = append(work, func() error {
			err := strip.Fill(ctx, e.colorer, req.Height)
			if err != nil {
				failed.Add(1)
			}
			return err
		})
	}

	log := Logger()
	start := time.Now()
	err = lease.ExecuteAll(work)
	elapsed := time.Since(start)
	e.metrics.observe(elapsed, err)

	if err != nil {
		failure := &RenderFailure{
			Failed: max(int(failed.Load()), 1),
			Total:  len(work),
			Cause:  err,
		}
		log.Warn("mandelbrot: render failed",
			"width", req.Width, "height", req.Height, "workers", req.Workers,
			"failed", failure.Failed, "strips", failure.Total, "err", err)
		return nil, failure
	}

	log.Debug("mandelbrot: render complete",
		"width", req.Width, "height", req.Height, "workers", req.Workers,
		"strips", len(work), "pool_workers", lease.Workers(), "elapsed", elapsed)
	return img, nil
}

// Close shuts down the worker pool. Renders in flight complete; later
// renders fail with ErrClosed. Close is safe to call multiple times.
func (e *Engine) Close() {
	if !e.closed.CompareAndSwap(false, true) {
		return
	}
	engines.Delete(e)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.manager.Close()
}
