package main

import (
	"context"
	"sync"
	"time"

	"github.com/LuisGonzalez2002/EjercicioMandelbrotLuisGonzalezGonzalez"
)

// flashDelay is how long the window stays black after a repaint request.
const flashDelay = time.Second

// renderer is the part of *mandelbrot.Engine the controller drives.
type renderer interface {
	Render(ctx context.Context, width, height int) (*mandelbrot.Image, error)
	SetWorkers(n int) error
	Workers() int
}

// result is a finished background render.
type result struct {
	img *mandelbrot.Image
	err error
}

// controller holds the viewer state that does not touch SDL. All methods
// are called from the event loop goroutine except where noted.
type controller struct {
	engine        renderer
	width, height int

	results chan result
	repaint chan struct{}

	rendering bool // a render goroutine is running
	pending   bool // another render was requested while rendering
	flashing  bool // the window is black and the repaint trigger is disabled

	// afterFunc schedules the end of a flash; replaced in tests.
	afterFunc func(time.Duration, func()) *time.Timer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newController(e renderer, width, height int) *controller {
	ctx, cancel := context.WithCancel(context.Background())
	return &controller{
		engine:    e,
		width:     width,
		height:    height,
		results:   make(chan result, 1),
		repaint:   make(chan struct{}, 1),
		afterFunc: time.AfterFunc,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// requestRender starts a background render, or queues one if a render is
// already running.
func (c *controller) requestRender() {
	if c.rendering {
		c.pending = true
		return
	}
	c.rendering = true
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		img, err := c.engine.Render(c.ctx, c.width, c.height)
		c.results <- result{img: img, err: err}
	}()
}

// finished records the end of a render and starts the queued one, if any.
func (c *controller) finished() {
	c.rendering = false
	if c.pending {
		c.pending = false
		c.requestRender()
	}
}

// changeWorkers moves the worker count by delta within the engine limits and
// re-renders. It reports whether the count changed.
func (c *controller) changeWorkers(delta int) bool {
	n := min(max(c.engine.Workers()+delta, mandelbrot.MinWorkers), mandelbrot.MaxWorkers)
	if n == c.engine.Workers() {
		return false
	}
	if err := c.engine.SetWorkers(n); err != nil {
		return false
	}
	c.requestRender()
	return true
}

// flash blanks the window and schedules a re-render after flashDelay. It is
// ignored while a flash is already in progress.
func (c *controller) flash() bool {
	if c.flashing {
		return false
	}
	c.flashing = true
	c.afterFunc(flashDelay, func() {
		select {
		case c.repaint <- struct{}{}:
		default:
		}
	})
	return true
}

// flashDone ends the flash and requests the repaint.
func (c *controller) flashDone() {
	c.flashing = false
	c.requestRender()
}

// close cancels any running render and waits for it.
func (c *controller) close() {
	c.cancel()
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	for {
		select {
		case <-c.results:
		case <-done:
			return
		}
	}
}
