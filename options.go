package mandelbrot

import "github.com/prometheus/client_golang/prometheus"

// Worker count limits and canvas defaults.
const (
	// MinWorkers is the smallest accepted worker count.
	MinWorkers = 1

	// MaxWorkers is the largest accepted worker count.
	MaxWorkers = 16

	// DefaultWorkers is the worker count of a new Engine.
	DefaultWorkers = 5

	// DefaultWidth is the width of the reference canvas.
	DefaultWidth = 800

	// DefaultHeight is the height of the reference canvas.
	DefaultHeight = 600

	// MetricsNamespace prefixes every exported metric.
	MetricsNamespace = "mandelbrot"
)

// Option configures an Engine during creation.
// Use functional options to customize Engine behavior.
//
// Example:
//
//	// Reference image, 5 workers
//	e, err := mandelbrot.NewEngine()
//
//	// 8 workers, full-spectrum palette, metrics on the default registry
//	e, err := mandelbrot.NewEngine(
//	    mandelbrot.WithWorkers(8),
//	    mandelbrot.WithPalette(mandelbrot.SpectrumPalette),
//	    mandelbrot.WithMetrics(prometheus.DefaultRegisterer),
//	)
type Option func(*options)

// options holds optional configuration for Engine creation.
type options struct {
	workers    int
	colorer    PixelColorer
	registerer prometheus.Registerer
}

// defaultOptions returns the default engine options.
func defaultOptions() options {
	return options{
		workers: DefaultWorkers,
		colorer: ReferenceColorer(),
	}
}

// WithWorkers sets the initial worker count. NewEngine rejects values
// outside [MinWorkers, MaxWorkers].
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithColorer replaces the pixel colorer. The colorer is called concurrently
// from every strip and must be pure.
func WithColorer(c PixelColorer) Option {
	return func(o *options) {
		if c != nil {
			o.colorer = c
		}
	}
}

// WithPalette sets the palette of the escape-time colorer. It has no effect
// when a custom PixelColorer was installed with WithColorer.
func WithPalette(p Palette) Option {
	return func(o *options) {
		if c, ok := o.colorer.(Colorer); ok {
			c.Palette = p
			o.colorer = c
		}
	}
}

// WithCentered centers the complex-plane origin on the canvas instead of the
// reference pixel (400, 300). It has no effect on a custom PixelColorer.
func WithCentered() Option {
	return func(o *options) {
		if c, ok := o.colorer.(Colorer); ok {
			c.Centered = true
			o.colorer = c
		}
	}
}

// WithMetrics registers pool and render metrics with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}
