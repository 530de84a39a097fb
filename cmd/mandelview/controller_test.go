package main

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuisGonzalez2002/EjercicioMandelbrotLuisGonzalezGonzalez"
)

// fakeEngine records calls and blocks Render until gate is closed.
type fakeEngine struct {
	mu      sync.Mutex
	workers int
	renders int
	gate    chan struct{}
	err     error
}

func (f *fakeEngine) Render(ctx context.Context, width, height int) (*mandelbrot.Image, error) {
	f.mu.Lock()
	f.renders++
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return mandelbrot.NewImage(width, height), nil
}

func (f *fakeEngine) SetWorkers(n int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.workers = n
	return nil
}

func (f *fakeEngine) Workers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.workers
}

func (f *fakeEngine) renderCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.renders
}

func recv(t *testing.T, c *controller) result {
	t.Helper()
	select {
	case r := <-c.results:
		c.finished()
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("no render result")
		return result{}
	}
}

func TestController_RenderDelivered(t *testing.T) {
	f := &fakeEngine{workers: 5}
	c := newController(f, 8, 6)
	defer c.close()

	c.requestRender()
	r := recv(t, c)

	require.NoError(t, r.err)
	assert.Equal(t, 8, r.img.Width())
	assert.False(t, c.rendering)
}

func TestController_CoalescesRequests(t *testing.T) {
	f := &fakeEngine{workers: 5, gate: make(chan struct{})}
	c := newController(f, 4, 4)
	defer c.close()

	c.requestRender()
	c.requestRender()
	c.requestRender()
	assert.True(t, c.pending)

	close(f.gate)
	recv(t, c) // starts the queued render
	recv(t, c)

	assert.Equal(t, 2, f.renderCount(), "queued requests collapse into one render")
	assert.False(t, c.rendering)
}

func TestController_ChangeWorkersClamped(t *testing.T) {
	f := &fakeEngine{workers: mandelbrot.MaxWorkers}
	c := newController(f, 4, 4)
	defer c.close()

	assert.False(t, c.changeWorkers(1), "already at the maximum")
	assert.True(t, c.changeWorkers(-1))
	assert.Equal(t, mandelbrot.MaxWorkers-1, f.Workers())
	recv(t, c)

	f.workers = mandelbrot.MinWorkers
	assert.False(t, c.changeWorkers(-1), "already at the minimum")
	assert.Equal(t, 1, f.renderCount())
}

func TestController_FailedRenderReported(t *testing.T) {
	boom := errors.New("boom")
	f := &fakeEngine{workers: 2, err: boom}
	c := newController(f, 4, 4)
	defer c.close()

	c.requestRender()
	r := recv(t, c)
	assert.ErrorIs(t, r.err, boom)
	assert.Nil(t, r.img)
}

func TestController_Flash(t *testing.T) {
	f := &fakeEngine{workers: 5}
	c := newController(f, 4, 4)
	defer c.close()

	var delay time.Duration
	var fire func()
	c.afterFunc = func(d time.Duration, fn func()) *time.Timer {
		delay, fire = d, fn
		return nil
	}

	require.True(t, c.flash())
	assert.True(t, c.flashing)
	assert.Equal(t, flashDelay, delay)
	assert.False(t, c.flash(), "trigger disabled during a flash")
	assert.Equal(t, 0, f.renderCount(), "no render before the delay")

	fire()
	<-c.repaint
	c.flashDone()

	assert.False(t, c.flashing)
	recv(t, c)
	assert.Equal(t, 1, f.renderCount())
	assert.True(t, c.flash(), "trigger enabled again")
}

func TestController_CloseCancelsRender(t *testing.T) {
	f := &fakeEngine{workers: 5, gate: make(chan struct{})}
	c := newController(f, 4, 4)

	c.requestRender()
	done := make(chan struct{})
	go func() {
		c.close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("close did not return")
	}
}
