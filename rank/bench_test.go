package rank_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/rankmorph/matrix"
	"github.com/katalvlaran/rankmorph/pattern"
	"github.com/katalvlaran/rankmorph/rank"
)

// benchmarkPercentile is a helper that runs a median-style percentile over a
// side×side byte matrix with a box pattern of the given radius.
func benchmarkPercentile(b *testing.B, side, radius int) {
	rng := rand.New(rand.NewSource(1))
	src, err := matrix.NewDense(matrix.Byte, side, side)
	if err != nil {
		b.Fatalf("NewDense failed: %v", err)
	}
	for i := 0; i < src.Len(); i++ {
		src.SetLong(i, int64(rng.Intn(256)))
	}
	box, err := pattern.Box([]int{-radius, -radius}, []int{radius, radius})
	if err != nil {
		b.Fatalf("Box failed: %v", err)
	}
	idx := float64(box.PointCount() / 2)
	eng := rank.Default()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := eng.Percentile(nil, src, rank.Scalar(idx), box); err != nil {
			b.Fatalf("Percentile failed: %v", err)
		}
	}
}

// BenchmarkPercentile_Median3x3 measures a 3×3 median on a 128×128 source.
func BenchmarkPercentile_Median3x3(b *testing.B) {
	benchmarkPercentile(b, 128, 1)
}

// BenchmarkPercentile_Median9x9 measures a 9×9 median on a 128×128 source.
func BenchmarkPercentile_Median9x9(b *testing.B) {
	benchmarkPercentile(b, 128, 4)
}

// BenchmarkMean_5x5 measures the aperture-sum path, which skips the histogram.
func BenchmarkMean_5x5(b *testing.B) {
	rng := rand.New(rand.NewSource(2))
	src, err := matrix.NewDense(matrix.Byte, 128, 128)
	if err != nil {
		b.Fatalf("NewDense failed: %v", err)
	}
	for i := 0; i < src.Len(); i++ {
		src.SetLong(i, int64(rng.Intn(256)))
	}
	box, err := pattern.Box([]int{-2, -2}, []int{2, 2})
	if err != nil {
		b.Fatalf("Box failed: %v", err)
	}
	eng := rank.Default()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := eng.Mean(nil, src, box); err != nil {
			b.Fatalf("Mean failed: %v", err)
		}
	}
}
