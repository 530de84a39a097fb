package image

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Caption text defaults.
const (
	// CaptionSize is the font size in points at 72 DPI.
	CaptionSize = 14

	// captionPad is the padding around the text in pixels.
	captionPad = 4
)

var (
	captionFont     *opentype.Font
	captionFontErr  error
	captionFontOnce sync.Once
)

func loadCaptionFont() (*opentype.Font, error) {
	captionFontOnce.Do(func() {
		captionFont, captionFontErr = opentype.Parse(goregular.TTF)
	})
	return captionFont, captionFontErr
}

// Caption draws text in white on a translucent black band along the bottom
// edge of dst. Empty text leaves dst unchanged.
func Caption(dst draw.Image, text string) error {
	if text == "" {
		return nil
	}

	f, err := loadCaptionFont()
	if err != nil {
		return err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    CaptionSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = face.Close()
	}()

	m := face.Metrics()
	lineHeight := (m.Ascent + m.Descent).Ceil()

	b := dst.Bounds()
	band := image.Rect(b.Min.X, b.Max.Y-lineHeight-2*captionPad, b.Max.X, b.Max.Y).Intersect(b)
	draw.Draw(dst, band, image.NewUniform(color.NRGBA{A: 160}), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(b.Min.X + captionPad),
			Y: fixed.I(b.Max.Y-captionPad) - m.Descent,
		},
	}
	d.DrawString(text)
	return nil
}

// CaptionWidth returns the advance width of text in pixels.
func CaptionWidth(text string) (int, error) {
	f, err := loadCaptionFont()
	if err != nil {
		return 0, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: CaptionSize, DPI: 72})
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = face.Close()
	}()
	return font.MeasureString(face, text).Ceil(), nil
}
