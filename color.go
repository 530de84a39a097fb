package mandelbrot

import (
	"image/color"

	lincolor "github.com/LuisGonzalez2002/EjercicioMandelbrotLuisGonzalezGonzalez/internal/color"
)

// Reference transform and iteration constants. The transform is calibrated
// to an 800x600 canvas: 200 pixels per unit, origin at pixel (400, 300).
const (
	// MaxIterations is the iteration cap; points that reach it are interior.
	MaxIterations = 570

	// Scale is the number of pixels per unit of the complex plane.
	Scale = 200.0

	// OffsetX is the pixel column mapped to Re(c) = 0.
	OffsetX = 400

	// OffsetY is the pixel row mapped to Im(c) = 0.
	OffsetY = 300
)

// RGB is an opaque 24-bit color.
type RGB struct {
	R, G, B uint8
}

// Black is the color of interior points.
var Black = RGB{}

// Packed returns the color as 0xRRGGBB.
func (c RGB) Packed() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// FromPacked builds an RGB from a 0xRRGGBB value. Bits above 24 are ignored.
func FromPacked(v uint32) RGB {
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// RGBA implements the color.Color interface.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}.RGBA()
}

// PixelColorer maps a pixel of a width x height canvas to a color.
// Implementations must be pure: the same arguments always yield the same
// color, and they are called concurrently from several strips.
type PixelColorer interface {
	Color(x, y, width, height int) RGB
}

// Palette maps an escape iteration count below maxIter to a color.
type Palette func(iter, maxIter int) RGB

// ReferencePalette is the default palette: a linear ramp 0x10000*iter/maxIter
// computed in integer arithmetic and read as a packed 0xRRGGBB value. Since
// the ramp stays below 0x10000 it only ever reaches the green and blue bytes.
func ReferencePalette(iter, maxIter int) RGB {
	if maxIter <= 0 {
		return Black
	}
	return FromPacked(uint32(0x10000 * iter / maxIter))
}

// SpectrumPalette spreads the escape count over the full hue circle. It is an
// alternative to the narrow reference ramp and is never used by default.
func SpectrumPalette(iter, maxIter int) RGB {
	if maxIter <= 0 {
		return Black
	}
	// Hue in [0, 6) on the six edges of the RGB cube.
	h := 6 * iter % (6 * maxIter)
	sector := h / maxIter
	frac := uint8(255 * (h % maxIter) / maxIter)
	switch sector {
	case 0:
		return RGB{255, frac, 0}
	case 1:
		return RGB{255 - frac, 255, 0}
	case 2:
		return RGB{0, 255, frac}
	case 3:
		return RGB{0, 255 - frac, 255}
	case 4:
		return RGB{frac, 0, 255}
	default:
		return RGB{255, 0, 255 - frac}
	}
}

// GradientPalette returns a palette that runs through colors from the first
// escape step to the last, blending neighbours in linear light. It panics
// if fewer than two colors are given.
func GradientPalette(colors ...RGB) Palette {
	stops := make([][3]uint8, len(colors))
	for i, c := range colors {
		stops[i] = [3]uint8{c.R, c.G, c.B}
	}
	g, err := lincolor.NewGradient(stops...)
	if err != nil {
		panic("mandelbrot: " + err.Error())
	}
	return func(iter, maxIter int) RGB {
		if maxIter <= 0 {
			return Black
		}
		r, gr, b := g.At(float64(iter) / float64(maxIter))
		return RGB{R: r, G: gr, B: b}
	}
}

// FirePalette runs from dark red through orange and yellow to pale white.
var FirePalette = GradientPalette(
	RGB{R: 40},
	RGB{R: 200, G: 30},
	RGB{R: 255, G: 170},
	RGB{R: 255, G: 255, B: 210},
)

// EscapeIterations iterates z = z*z + c from z = 0 and returns the number of
// steps taken before |z|^2 reaches 4, or maxIter if it never does.
func EscapeIterations(cx, cy float64, maxIter int) int {
	var zx, zy float64
	iter := 0
	// The conversions keep the compiler from fusing multiply-adds, so the
	// result is the same on every architecture.
	for float64(zx*zx)+float64(zy*zy) < 4 && iter < maxIter {
		zx, zy = float64(zx*zx)-float64(zy*zy)+cx, float64(2*zx*zy)+cy
		iter++
	}
	return iter
}

// Colorer is the escape-time PixelColorer.
//
// The zero value is not useful; start from ReferenceColorer.
type Colorer struct {
	// MaxIterations is the iteration cap.
	MaxIterations int

	// Scale is the number of pixels per unit.
	Scale float64

	// Centered places the origin at (width/2, height/2) instead of the
	// reference (OffsetX, OffsetY). The reference mapping ignores the canvas
	// size, which keeps images bit-identical to the 800x600 reference render.
	Centered bool

	// Palette colors escaped points. Nil means ReferencePalette.
	Palette Palette
}

// ReferenceColorer returns the colorer that reproduces the reference image.
func ReferenceColorer() Colorer {
	return Colorer{
		MaxIterations: MaxIterations,
		Scale:         Scale,
		Palette:       ReferencePalette,
	}
}

// Point returns the complex-plane coordinate of pixel (x, y).
func (c Colorer) Point(x, y, width, height int) (cx, cy float64) {
	ox, oy := OffsetX, OffsetY
	if c.Centered {
		ox, oy = width/2, height/2
	}
	return float64(x-ox) / c.Scale, float64(y-oy) / c.Scale
}

// Color implements PixelColorer.
func (c Colorer) Color(x, y, width, height int) RGB {
	cx, cy := c.Point(x, y, width, height)
	iter := EscapeIterations(cx, cy, c.MaxIterations)
	if iter >= c.MaxIterations {
		return Black
	}
	if c.Palette == nil {
		return ReferencePalette(iter, c.MaxIterations)
	}
	return c.Palette(iter, c.MaxIterations)
}
