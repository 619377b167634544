package rank_test

import (
	"math"
	"sort"
	"testing"

	"github.com/katalvlaran/rankmorph/matrix"
	"github.com/katalvlaran/rankmorph/pattern"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

// Test oracles: per-position recomputation from scratch against the glossary
// aperture {src[x+p] : p ∈ P}, with integer-valued sources whose quantization
// is the identity (σ = 1). The streaming engine must agree byte-for-byte.

// byteMatrix builds an n-D byte matrix from row-major values (axis 0 fastest).
func byteMatrix(t *testing.T, vals []int64, dims ...int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(matrix.Byte, dims...)
	require.NoError(t, err)
	require.Equal(t, m.Len(), len(vals))
	for i, v := range vals {
		m.SetLong(i, v)
	}

	return m
}

// mustPattern wraps pattern.New.
func mustPattern(t *testing.T, pts [][]int) *pattern.Pattern {
	t.Helper()
	p, err := pattern.New(pts)
	require.NoError(t, err)

	return p
}

// coordsOf unflattens a linear index against dims (axis 0 fastest).
func coordsOf(i int, dims []int) []int {
	c := make([]int, len(dims))
	for k, d := range dims {
		c[k] = i % d
		i /= d
	}

	return c
}

// apertureAt collects the aperture values {src[x+p]} under a continuation.
func apertureAt(t *testing.T, src *matrix.Dense, mode matrix.Continuation, fill float64, x []int, pat *pattern.Pattern) []float64 {
	t.Helper()
	view, err := matrix.Continue(src, mode, fill)
	require.NoError(t, err)
	buf := make([]int, len(x))
	var vals []float64
	for _, p := range pat.Points() {
		for k := range buf {
			buf[k] = x[k] + p[k]
		}
		vals = append(vals, view.GetDouble(buf))
	}

	return vals
}

// naivePercentile is the simple-model order statistic of integer-valued
// samples: sorted[clamp(⌊r⌋, 0, N−1)].
func naivePercentile(vals []float64, r float64) float64 {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	k := int(math.Floor(r))
	if k < 0 {
		k = 0
	} else if k >= len(sorted) {
		k = len(sorted) - 1
	}

	return sorted[k]
}

// naiveMax and naiveMin are the classical morphology references.
func naiveMax(vals []float64) float64 { return floats.Max(vals) }
func naiveMin(vals []float64) float64 { return floats.Min(vals) }

// naiveRank is the simple-model rank of an integer value: samples below v
// plus the fractional share of the bin ⌊v⌋.
func naiveRank(vals []float64, v float64) float64 {
	j := math.Floor(v)
	r := 0.0
	for _, s := range vals {
		if s < j {
			r++
		} else if s == j {
			r += v - j
		}
	}
	if v <= 0 {
		return 0
	}

	return r
}

// forEachPosition runs fn over every linear index / coordinate pair of dims.
func forEachPosition(dims []int, fn func(i int, x []int)) {
	total := 1
	for _, d := range dims {
		total *= d
	}
	for i := 0; i < total; i++ {
		fn(i, coordsOf(i, dims))
	}
}
