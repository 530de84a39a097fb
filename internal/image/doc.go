// Package image provides output helpers for rendered fractal images.
//
// It encodes images as PNG, JPEG, BMP or TIFF, scales them down to
// thumbnails and stamps a text caption onto them. Everything here works on
// the standard image.Image interfaces, so any rendered buffer can be passed
// in directly.
package image
