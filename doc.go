// Package mandelbrot renders the Mandelbrot set in parallel horizontal strips.
//
// # Overview
//
// An Engine splits the output image into one strip of rows per worker,
// fills every strip concurrently on a worker pool and returns the image
// only once all strips have reported. The result never depends on the
// worker count: rendering with 1 or 16 workers yields byte-identical images.
//
// # Quick Start
//
//	import "github.com/LuisGonzalez2002/EjercicioMandelbrotLuisGonzalezGonzalez"
//
//	e, err := mandelbrot.NewEngine(mandelbrot.WithWorkers(8))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer e.Close()
//
//	img, err := e.Render(ctx, 800, 600)
//	if err != nil {
//	    log.Fatal(err) // *mandelbrot.RenderFailure
//	}
//	_ = png.Encode(f, img)
//
// # Architecture
//
// The package is organized into:
//   - Coloring: PixelColorer, Colorer, Palette (escape-time iteration)
//   - Planning: Plan, StripRange (contiguous row partition)
//   - Buffers: Image, Strip (disjoint writable row views)
//   - Coordination: Engine, RenderRequest, RenderFailure
//   - Internal: parallel (worker pools, pool manager, metrics)
//
// # Coordinate System
//
// The reference transform maps pixel (x, y) to c = ((x-400)/200, (y-300)/200),
// which centers the set on an 800x600 canvas:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down, so Im(c) grows downward
//
// # Concurrency
//
// Strips never share rows; each worker writes through a Strip whose slice
// covers only its own rows, so the image needs no locks. Changing the worker
// count replaces the pool: renders in flight finish on the old pool, the next
// render uses the new one.
package mandelbrot

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
