// Package color converts between sRGB bytes and linear light and builds
// gradients that interpolate in linear light.
//
// Interpolating sRGB bytes directly darkens the midpoints of a gradient;
// blending in linear space and encoding back gives even ramps. The
// conversions use lookup tables so palettes stay cheap per pixel.
package color

import "math"

// toLinearLUT maps an sRGB byte to linear light in [0, 1].
var toLinearLUT [256]float32

// toSRGBLUT maps linear light quantized to 12 bits to an sRGB byte.
var toSRGBLUT [4096]uint8

func init() {
	for i := range 256 {
		toLinearLUT[i] = float32(decode(float64(i) / 255))
	}
	for i := range 4096 {
		toSRGBLUT[i] = quantize(encode(float64(i) / 4095))
	}
}

// decode is the sRGB transfer function inverse.
func decode(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// encode is the sRGB transfer function.
func encode(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1/2.4) - 0.055
}

func quantize(s float64) uint8 {
	//nolint:gosec // G115: clamped to [0,255]
	return uint8(min(max(int(s*255+0.5), 0), 255))
}

// ToLinear converts an sRGB byte to linear light.
func ToLinear(s uint8) float32 {
	return toLinearLUT[s]
}

// ToSRGB converts linear light to an sRGB byte. Input outside [0, 1] is
// clamped.
func ToSRGB(l float32) uint8 {
	l = min(max(l, 0), 1)
	return toSRGBLUT[int(l*4095+0.5)]
}

// toSRGBExact is the reference conversion without tables.
func toSRGBExact(l float32) uint8 {
	return quantize(encode(float64(min(max(l, 0), 1))))
}
