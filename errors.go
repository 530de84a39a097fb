package mandelbrot

import (
	"errors"
	"fmt"
)

// Configuration errors.
var (
	// ErrInvalidConfiguration is returned when a worker count is outside
	// [MinWorkers, MaxWorkers] or an image dimension is not positive.
	ErrInvalidConfiguration = errors.New("mandelbrot: invalid configuration")

	// ErrInvalidPlan is returned when strip ranges do not partition the image.
	ErrInvalidPlan = errors.New("mandelbrot: invalid strip plan")
)

// RenderFailure reports a render that did not produce a complete image.
//
// It is returned when at least one strip failed or the render was canceled.
// The partial image is discarded; the caller has to request the whole render
// again.
type RenderFailure struct {
	// Failed is the number of strips that reported an error.
	Failed int

	// Total is the number of strips submitted.
	Total int

	// Cause is the first failure reported, in completion order.
	Cause error
}

// Error implements the error interface.
func (e *RenderFailure) Error() string {
	return fmt.Sprintf("mandelbrot: render failed (%d of %d strips): %v", e.Failed, e.Total, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *RenderFailure) Unwrap() error {
	return e.Cause
}
