package color

import (
	"errors"
	"testing"
)

func TestToLinear_Endpoints(t *testing.T) {
	if ToLinear(0) != 0 {
		t.Errorf("ToLinear(0) = %v, want 0", ToLinear(0))
	}
	if ToLinear(255) != 1 {
		t.Errorf("ToLinear(255) = %v, want 1", ToLinear(255))
	}
	// Mid-grey is much darker than 0.5 in linear light.
	if l := ToLinear(128); l < 0.21 || l > 0.22 {
		t.Errorf("ToLinear(128) = %v, want ~0.2159", l)
	}
}

func TestRoundTrip(t *testing.T) {
	for i := range 256 {
		s := uint8(i)
		if got := ToSRGB(ToLinear(s)); got != s {
			t.Errorf("ToSRGB(ToLinear(%d)) = %d", s, got)
		}
	}
}

func TestToSRGB_MatchesExact(t *testing.T) {
	for i := range 1001 {
		l := float32(i) / 1000
		fast, exact := ToSRGB(l), toSRGBExact(l)
		if diff := int(fast) - int(exact); diff < -1 || diff > 1 {
			t.Errorf("ToSRGB(%v) = %d, exact %d", l, fast, exact)
		}
	}
}

func TestToSRGB_Clamps(t *testing.T) {
	if ToSRGB(-0.5) != 0 {
		t.Errorf("ToSRGB(-0.5) = %d, want 0", ToSRGB(-0.5))
	}
	if ToSRGB(2) != 255 {
		t.Errorf("ToSRGB(2) = %d, want 255", ToSRGB(2))
	}
}

// =============================================================================
// Gradient Tests
// =============================================================================

func TestNewGradient_TooFewStops(t *testing.T) {
	if _, err := NewGradient([3]uint8{1, 2, 3}); !errors.Is(err, ErrTooFewStops) {
		t.Errorf("NewGradient(one stop) = %v, want ErrTooFewStops", err)
	}
}

func TestGradient_Endpoints(t *testing.T) {
	g, err := NewGradient([3]uint8{0, 0, 0}, [3]uint8{255, 0, 0}, [3]uint8{255, 255, 255})
	if err != nil {
		t.Fatal(err)
	}
	if g.Len() != 3 {
		t.Errorf("Len() = %d, want 3", g.Len())
	}

	tests := []struct {
		t       float64
		r, g, b uint8
	}{
		{0, 0, 0, 0},
		{0.5, 255, 0, 0},
		{1, 255, 255, 255},
		{-1, 0, 0, 0},
		{7, 255, 255, 255},
	}
	for _, tt := range tests {
		r, gr, b := g.At(tt.t)
		if r != tt.r || gr != tt.g || b != tt.b {
			t.Errorf("At(%v) = (%d, %d, %d), want (%d, %d, %d)", tt.t, r, gr, b, tt.r, tt.g, tt.b)
		}
	}
}

func TestGradient_LinearMidpoint(t *testing.T) {
	g, err := NewGradient([3]uint8{0, 0, 0}, [3]uint8{255, 255, 255})
	if err != nil {
		t.Fatal(err)
	}
	// Half of the light is sRGB 188, not 128.
	r, _, _ := g.At(0.5)
	if r < 187 || r > 189 {
		t.Errorf("At(0.5).R = %d, want ~188", r)
	}
}

func TestGradient_Monotonic(t *testing.T) {
	g, err := NewGradient([3]uint8{0, 0, 0}, [3]uint8{0, 0, 255})
	if err != nil {
		t.Fatal(err)
	}
	var prev uint8
	for i := range 101 {
		_, _, b := g.At(float64(i) / 100)
		if b < prev {
			t.Fatalf("blue decreased at step %d: %d < %d", i, b, prev)
		}
		prev = b
	}
}

func TestLerp(t *testing.T) {
	a := Linear{0, 0.5, 1}
	b := Linear{1, 0.5, 0}
	if got := Lerp(a, b, 0.25); got != (Linear{0.25, 0.5, 0.75}) {
		t.Errorf("Lerp() = %+v", got)
	}
}

func BenchmarkGradient_At(b *testing.B) {
	g, _ := NewGradient([3]uint8{0, 0, 0}, [3]uint8{255, 0, 0}, [3]uint8{255, 255, 0}, [3]uint8{255, 255, 255})
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _, _ = g.At(float64(i%1000) / 1000)
	}
}
