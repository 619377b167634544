package histogram_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/rankmorph/histogram"
)

// benchmarkChurn is a helper that slides a synthetic window of the given size
// through random values, measuring Add/Remove plus one query per step.
func benchmarkChurn(b *testing.B, bits int, levels []int, window int) {
	rng := rand.New(rand.NewSource(1))
	h, err := histogram.New(bits, levels)
	if err != nil {
		b.Fatalf("New failed: %v", err)
	}
	size := h.Size()
	vals := make([]int, window)
	for i := range vals {
		vals[i] = rng.Intn(size)
		h.Add(vals[i])
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		j := i % window
		h.Remove(vals[j])
		vals[j] = (vals[j] + i) % size
		h.Add(vals[j])
		_ = h.Value(int64(window / 2))
	}
}

// BenchmarkChurn_FlatByte measures a flat 256-bin histogram.
func BenchmarkChurn_FlatByte(b *testing.B) {
	benchmarkChurn(b, 8, nil, 81)
}

// BenchmarkChurn_TreeByte measures the same workload with a level-4 tree.
func BenchmarkChurn_TreeByte(b *testing.B) {
	benchmarkChurn(b, 8, []int{4}, 81)
}

// BenchmarkChurn_Tree16 measures a 65536-bin histogram with a two-level tree.
func BenchmarkChurn_Tree16(b *testing.B) {
	benchmarkChurn(b, 16, []int{4, 8}, 729)
}

// BenchmarkPreciseIntegral measures the piecewise-linear integral query.
func BenchmarkPreciseIntegral(b *testing.B) {
	rng := rand.New(rand.NewSource(2))
	h, err := histogram.New(16, []int{4, 8})
	if err != nil {
		b.Fatalf("New failed: %v", err)
	}
	for i := 0; i < 4096; i++ {
		h.Add(rng.Intn(h.Size()))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = h.PreciseIntegral(float64(i % 4096))
	}
}
