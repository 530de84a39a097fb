package image

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// Fit returns the largest size with the aspect ratio of w x h that fits in
// maxW x maxH. Images that already fit are returned unchanged. A
// non-positive bound leaves that axis unconstrained.
func Fit(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	if maxW <= 0 {
		maxW = w
	}
	if maxH <= 0 {
		maxH = h
	}
	if w <= maxW && h <= maxH {
		return w, h
	}

	// Compare w/maxW with h/maxH without floating point.
	if w*maxH >= h*maxW {
		return maxW, max(1, h*maxW/w)
	}
	return max(1, w*maxH/h), maxH
}

// Thumbnail scales src to fit in maxW x maxH, keeping the aspect ratio.
// It uses Catmull-Rom resampling.
func Thumbnail(src image.Image, maxW, maxH int) *image.RGBA {
	b := src.Bounds()
	w, h := Fit(b.Dx(), b.Dy(), maxW, maxH)
	return Scale(src, w, h)
}

// Scale resamples src to exactly w x h.
func Scale(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
	if w <= 0 || h <= 0 || src.Bounds().Empty() {
		return dst
	}
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
