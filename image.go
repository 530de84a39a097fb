package mandelbrot

import (
	"image"
	"image/color"
)

// bytesPerPixel is the RGBA layout of Image data; alpha is always 255.
const bytesPerPixel = 4

// Image is a rendered Mandelbrot raster.
//
// Pixels are stored in one contiguous row-major RGBA slice. During a render
// the slice is only reachable through the disjoint Strip views returned by
// Strips; once Render returns the image is complete and must be treated as
// read-only.
//
// Image implements image.Image.
type Image struct {
	width  int
	height int
	data   []uint8
}

// NewImage creates an opaque black image with the given dimensions.
// Negative dimensions are treated as zero.
func NewImage(width, height int) *Image {
	width = max(width, 0)
	height = max(height, 0)
	m := &Image{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*bytesPerPixel),
	}
	for i := 3; i < len(m.data); i += bytesPerPixel {
		m.data[i] = 255
	}
	return m
}

// Width returns the width of the image.
func (m *Image) Width() int {
	return m.width
}

// Height returns the height of the image.
func (m *Image) Height() int {
	return m.height
}

// Stride returns the number of bytes per row.
func (m *Image) Stride() int {
	return m.width * bytesPerPixel
}

// Data returns the raw pixel data (RGBA format, opaque).
func (m *Image) Data() []uint8 {
	return m.data
}

// Pixel returns the color at (x, y), or Black outside the image.
func (m *Image) Pixel(x, y int) RGB {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return Black
	}
	i := y*m.Stride() + x*bytesPerPixel
	return RGB{R: m.data[i], G: m.data[i+1], B: m.data[i+2]}
}

// Row returns the pixel bytes of row y, or nil outside the image.
func (m *Image) Row(y int) []uint8 {
	if y < 0 || y >= m.height {
		return nil
	}
	stride := m.Stride()
	return m.data[y*stride : (y+1)*stride]
}

// Strips splits the image into one writable view per range of plan.
//
// The plan must partition [0, Height) in increasing order; otherwise Strips
// returns an error wrapping ErrInvalidPlan. Each view's slice is capped at
// its last row, so no strip can reach a row owned by another.
func (m *Image) Strips(plan []StripRange) ([]Strip, error) {
	if err := validatePlan(plan, m.height); err != nil {
		return nil, err
	}
	stride := m.Stride()
	strips := make([]Strip, len(plan))
	for i, r := range plan {
		lo, hi := r.Start*stride, r.End*stride
		strips[i] = Strip{
			rows:  r,
			width: m.width,
			pix:   m.data[lo:hi:hi],
		}
	}
	return strips, nil
}

// ToRGBA copies the image into a new *image.RGBA.
func (m *Image) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, m.width, m.height))
	copy(img.Pix, m.data)
	return img
}

// Equal reports whether two images have the same size and pixels.
func (m *Image) Equal(other *Image) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.width != other.width || m.height != other.height {
		return false
	}
	return string(m.data) == string(other.data)
}

// At implements the image.Image interface.
func (m *Image) At(x, y int) color.Color {
	return m.Pixel(x, y)
}

// Bounds implements the image.Image interface.
func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// ColorModel implements the image.Image interface.
func (m *Image) ColorModel() color.Model {
	return color.RGBAModel
}
