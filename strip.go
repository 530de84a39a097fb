package mandelbrot

import (
	"context"
	"fmt"
)

// Strip is a writable view of the rows of one StripRange.
//
// A Strip holds only the slice of pixel data for its own rows; writes aimed
// at any other row are dropped. Strips obtained from one Image.Strips call
// never share memory, so they can be filled concurrently without locking.
type Strip struct {
	rows  StripRange
	width int
	pix   []uint8
}

// Range returns the rows owned by the strip.
func (s Strip) Range() StripRange {
	return s.rows
}

// Width returns the width of the strip in pixels.
func (s Strip) Width() int {
	return s.width
}

// Set writes c at column x of absolute row y. Coordinates outside the strip
// are ignored.
func (s Strip) Set(x, y int, c RGB) {
	if x < 0 || x >= s.width || !s.rows.Contains(y) {
		return
	}
	i := ((y-s.rows.Start)*s.width + x) * bytesPerPixel
	s.pix[i] = c.R
	s.pix[i+1] = c.G
	s.pix[i+2] = c.B
	s.pix[i+3] = 255
}

// Fill colors every pixel of the strip with colorer, for a canvas of
// s.Width() x height pixels.
//
// The context is checked before each row; on cancellation Fill stops and
// returns the context error, leaving the remaining rows of the strip
// unwritten. A panic in colorer is returned as an error. Rows outside the
// strip are never touched.
func (s Strip) Fill(ctx context.Context, colorer PixelColorer, height int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("strip %v: colorer panicked: %v", s.rows, r)
		}
	}()

	for y := s.rows.Start; y < s.rows.End; y++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("strip %v: %w", s.rows, err)
		}
		for x := range s.width {
			s.Set(x, y, colorer.Color(x, y, s.width, height))
		}
	}
	return nil
}
