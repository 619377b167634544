package matrix_test

import (
	"testing"

	"github.com/katalvlaran/rankmorph/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ramp1D builds a 1-D byte matrix [0, 1, ..., n-1].
func ramp1D(t *testing.T, n int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(matrix.Byte, n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		m.SetLong(i, int64(i))
	}

	return m
}

// TestContinue_Validation verifies nil and mode validation.
func TestContinue_Validation(t *testing.T) {
	_, err := matrix.Continue(nil, matrix.Cyclic, 0)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)

	m := ramp1D(t, 3)
	_, err = matrix.Continue(m, matrix.Continuation(42), 0)
	assert.ErrorIs(t, err, matrix.ErrBadContinuation)
}

// TestContinued_Cyclic verifies per-axis modulo wrapping in both directions.
func TestContinued_Cyclic(t *testing.T) {
	v, err := matrix.Continue(ramp1D(t, 5), matrix.Cyclic, 0)
	require.NoError(t, err)

	assert.Equal(t, 2.0, v.GetDouble([]int{2}), "in-range is identity")
	assert.Equal(t, 0.0, v.GetDouble([]int{5}))
	assert.Equal(t, 1.0, v.GetDouble([]int{6}))
	assert.Equal(t, 4.0, v.GetDouble([]int{-1}))
	assert.Equal(t, 3.0, v.GetDouble([]int{-7}))
}

// TestContinued_Mirror verifies boundary reflection: ...2 1 0 | 0 1 2 3 4 | 4 3 2...
func TestContinued_Mirror(t *testing.T) {
	v, err := matrix.Continue(ramp1D(t, 5), matrix.Mirror, 0)
	require.NoError(t, err)

	assert.Equal(t, 0.0, v.GetDouble([]int{-1}))
	assert.Equal(t, 1.0, v.GetDouble([]int{-2}))
	assert.Equal(t, 4.0, v.GetDouble([]int{5}))
	assert.Equal(t, 3.0, v.GetDouble([]int{6}))
	// Period 2d: index 10 maps back to 0.
	assert.Equal(t, 0.0, v.GetDouble([]int{10}))
}

// TestContinued_Nearest verifies clamping to the boundary values.
func TestContinued_Nearest(t *testing.T) {
	v, err := matrix.Continue(ramp1D(t, 5), matrix.Nearest, 0)
	require.NoError(t, err)

	assert.Equal(t, 0.0, v.GetDouble([]int{-100}))
	assert.Equal(t, 4.0, v.GetDouble([]int{99}))
}

// TestContinued_Constant verifies fill substitution and Resolve's ok flag.
func TestContinued_Constant(t *testing.T) {
	v, err := matrix.Continue(ramp1D(t, 5), matrix.Constant, 7.5)
	require.NoError(t, err)

	assert.Equal(t, 7.5, v.GetDouble([]int{-1}))
	assert.Equal(t, 3.0, v.GetDouble([]int{3}))

	_, ok := v.Resolve([]int{5})
	assert.False(t, ok, "out-of-range must report the fill path")
	idx, ok := v.Resolve([]int{4})
	assert.True(t, ok)
	assert.Equal(t, 4, idx)
}

// TestContinued_PseudoCyclic verifies the flattened wrap: stepping past a row
// end continues into the next row of the linear storage.
func TestContinued_PseudoCyclic(t *testing.T) {
	m, err := matrix.NewDense(matrix.Byte, 3, 2)
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		m.SetLong(i, int64(10*i))
	}
	v, err := matrix.Continue(m, matrix.PseudoCyclic, 0)
	require.NoError(t, err)

	// (3,0) is linear 3: the first cell of row 1.
	assert.Equal(t, 30.0, v.GetDouble([]int{3, 0}))
	// (−1,0) is linear −1 → 5: the last cell.
	assert.Equal(t, 50.0, v.GetDouble([]int{-1, 0}))
	// (0,2) is linear 6 → 0.
	assert.Equal(t, 0.0, v.GetDouble([]int{0, 2}))
}

// TestContinued_Mirror2D spot-checks reflection on a rectangular matrix.
func TestContinued_Mirror2D(t *testing.T) {
	m, err := matrix.NewDense(matrix.Byte, 3, 2)
	require.NoError(t, err)
	// values: row y holds 10y + x
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			idx, err := m.Index(x, y)
			require.NoError(t, err)
			m.SetLong(idx, int64(10*y+x))
		}
	}
	v, err := matrix.Continue(m, matrix.Mirror, 0)
	require.NoError(t, err)

	assert.Equal(t, 0.0, v.GetDouble([]int{-1, 0}))
	assert.Equal(t, 2.0, v.GetDouble([]int{3, 0}))
	assert.Equal(t, 10.0, v.GetDouble([]int{0, -1}))
	assert.Equal(t, 12.0, v.GetDouble([]int{-4, 2}))
}
