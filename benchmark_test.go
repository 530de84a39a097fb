package mandelbrot

import (
	"context"
	"fmt"
	"testing"
)

// BenchmarkEngine_Render benchmarks the reference render across worker counts.
func BenchmarkEngine_Render(b *testing.B) {
	for _, workers := range []int{1, 2, 5, 8, 16} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			e, err := NewEngine(WithWorkers(workers))
			if err != nil {
				b.Fatal(err)
			}
			defer e.Close()

			ctx := context.Background()
			b.SetBytes(DefaultWidth * DefaultHeight * bytesPerPixel)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := e.Render(ctx, DefaultWidth, DefaultHeight); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkColorer_Color benchmarks single-pixel coloring at interior and
// exterior points.
func BenchmarkColorer_Color(b *testing.B) {
	points := []struct {
		name string
		x, y int
	}{
		{"interior", 400, 300},
		{"boundary", 250, 300},
		{"exterior", 799, 0},
	}

	c := ReferenceColorer()
	for _, p := range points {
		b.Run(p.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = c.Color(p.x, p.y, DefaultWidth, DefaultHeight)
			}
		})
	}
}

// BenchmarkPlan benchmarks strip planning.
func BenchmarkPlan(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Plan(DefaultHeight, MaxWorkers)
	}
}

// BenchmarkImage_Strips benchmarks splitting an image into strip views.
func BenchmarkImage_Strips(b *testing.B) {
	m := NewImage(DefaultWidth, DefaultHeight)
	plan := Plan(DefaultHeight, MaxWorkers)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.Strips(plan); err != nil {
			b.Fatal(err)
		}
	}
}
