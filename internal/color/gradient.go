package color

import "errors"

// ErrTooFewStops is returned by NewGradient with fewer than two colors.
var ErrTooFewStops = errors.New("color: gradient needs at least two stops")

// Linear is a color in linear light.
type Linear struct {
	R, G, B float32
}

// FromSRGB converts sRGB bytes to linear light.
func FromSRGB(r, g, b uint8) Linear {
	return Linear{ToLinear(r), ToLinear(g), ToLinear(b)}
}

// SRGB converts the color back to sRGB bytes.
func (c Linear) SRGB() (r, g, b uint8) {
	return ToSRGB(c.R), ToSRGB(c.G), ToSRGB(c.B)
}

// Lerp blends a and b: t = 0 gives a, t = 1 gives b.
func Lerp(a, b Linear, t float32) Linear {
	return Linear{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
	}
}

// Gradient interpolates between evenly spaced color stops in linear light.
// A Gradient is immutable and safe for concurrent use.
type Gradient struct {
	stops []Linear
}

// NewGradient creates a gradient through the given sRGB colors, the first
// at position 0 and the last at position 1.
func NewGradient(colors ...[3]uint8) (*Gradient, error) {
	if len(colors) < 2 {
		return nil, ErrTooFewStops
	}
	stops := make([]Linear, len(colors))
	for i, c := range colors {
		stops[i] = FromSRGB(c[0], c[1], c[2])
	}
	return &Gradient{stops: stops}, nil
}

// At returns the sRGB color at position t. t is clamped to [0, 1].
func (gr *Gradient) At(t float64) (r, g, b uint8) {
	t = min(max(t, 0), 1)
	span := t * float64(len(gr.stops)-1)
	i := min(int(span), len(gr.stops)-2)
	return Lerp(gr.stops[i], gr.stops[i+1], float32(span-float64(i))).SRGB()
}

// Len returns the number of stops.
func (gr *Gradient) Len() int {
	return len(gr.stops)
}
