package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: uint8(x * 20), G: uint8(y * 20), B: 100, A: 255})
		}
	}
	return img
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"png", FormatPNG},
		{"PNG", FormatPNG},
		{"jpg", FormatJPEG},
		{"jpeg", FormatJPEG},
		{"bmp", FormatBMP},
		{"tif", FormatTIFF},
		{"TIFF", FormatTIFF},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.name)
		if err != nil {
			t.Errorf("ParseFormat(%q) error = %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}

	if _, err := ParseFormat("gif"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("ParseFormat(gif) = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("out/mandelbrot.BMP")
	if err != nil || f != FormatBMP {
		t.Errorf("FormatFromPath() = %v, %v, want bmp", f, err)
	}
	if _, err := FormatFromPath("mandelbrot"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("FormatFromPath(no ext) = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFormat_String(t *testing.T) {
	if FormatTIFF.String() != "tiff" {
		t.Errorf("String() = %q", FormatTIFF.String())
	}
	if FormatJPEG.ContentType() != "image/jpeg" || FormatPNG.ContentType() != "image/png" {
		t.Error("unexpected content types")
	}
}

// TestEncode_LosslessRoundTrip checks that lossless formats reproduce every
// pixel exactly.
func TestEncode_LosslessRoundTrip(t *testing.T) {
	src := testImage(8, 6)

	for _, f := range []Format{FormatPNG, FormatBMP, FormatTIFF} {
		t.Run(f.String(), func(t *testing.T) {
			data, err := EncodeToBytes(src, f)
			if err != nil {
				t.Fatalf("EncodeToBytes() error = %v", err)
			}

			got, format, err := DecodeBytes(data)
			if err != nil {
				t.Fatalf("DecodeBytes() error = %v", err)
			}
			if format != f.String() {
				t.Errorf("decoded format = %q, want %q", format, f.String())
			}
			if got.Bounds() != src.Bounds() {
				t.Fatalf("bounds = %v, want %v", got.Bounds(), src.Bounds())
			}
			for y := range 6 {
				for x := range 8 {
					r1, g1, b1, _ := src.At(x, y).RGBA()
					r2, g2, b2, _ := got.At(x, y).RGBA()
					if r1 != r2 || g1 != g2 || b1 != b2 {
						t.Fatalf("pixel (%d, %d) differs", x, y)
					}
				}
			}
		})
	}
}

func TestEncode_JPEG(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, testImage(16, 16), FormatJPEG); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	_, format, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if format != "jpeg" {
		t.Errorf("format = %q, want jpeg", format)
	}
}

func TestEncode_Unsupported(t *testing.T) {
	err := Encode(&bytes.Buffer{}, testImage(1, 1), Format(42))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Encode(Format(42)) = %v, want ErrUnsupportedFormat", err)
	}
}

func TestDecodeBytes_Empty(t *testing.T) {
	if _, _, err := DecodeBytes(nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("DecodeBytes(nil) = %v, want ErrEmptyData", err)
	}
}

func TestDecode_InvalidData(t *testing.T) {
	if _, _, err := DecodeBytes([]byte("not an image")); err == nil {
		t.Error("DecodeBytes(garbage) should fail")
	}
}

func TestSave_Load(t *testing.T) {
	dir := t.TempDir()
	src := testImage(5, 4)

	for _, name := range []string{"out.png", "out.jpg", "out.bmp", "out.tiff"} {
		path := filepath.Join(dir, name)
		if err := Save(path, src); err != nil {
			t.Fatalf("Save(%s) error = %v", name, err)
		}
		got, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s) error = %v", name, err)
		}
		if got.Bounds() != src.Bounds() {
			t.Errorf("%s: bounds = %v, want %v", name, got.Bounds(), src.Bounds())
		}
	}
}

func TestSave_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gif")
	if err := Save(path, testImage(1, 1)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save(.gif) = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Save created a file for an unsupported format")
	}
}

func TestLoad_NotFound(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Load(missing) should fail")
	}
}

func BenchmarkEncodePNG(b *testing.B) {
	img := testImage(800, 600)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var buf bytes.Buffer
		_ = Encode(&buf, img, FormatPNG)
	}
}
