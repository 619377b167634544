package matrix_test

import (
	"testing"

	"github.com/katalvlaran/rankmorph/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewDense_Validation verifies shape and element-type validation.
func TestNewDense_Validation(t *testing.T) {
	_, err := matrix.NewDense(matrix.Byte)
	assert.ErrorIs(t, err, matrix.ErrBadDimensions, "no axes must error")

	_, err = matrix.NewDense(matrix.Byte, 3, 0)
	assert.ErrorIs(t, err, matrix.ErrBadDimensions, "zero axis must error")

	_, err = matrix.NewDense(matrix.Byte, -1)
	assert.ErrorIs(t, err, matrix.ErrBadDimensions, "negative axis must error")

	_, err = matrix.NewDense(matrix.ElemType(99), 3)
	assert.ErrorIs(t, err, matrix.ErrBadElemType, "unknown element type must error")
}

// TestDense_Shape verifies dims, strides and length for a 3-D matrix.
func TestDense_Shape(t *testing.T) {
	m, err := matrix.NewDense(matrix.Short, 4, 3, 2)
	require.NoError(t, err)

	assert.Equal(t, 3, m.DimCount())
	assert.Equal(t, []int{4, 3, 2}, m.Dims())
	assert.Equal(t, []int{1, 4, 12}, m.Strides(), "axis 0 must be fastest")
	assert.Equal(t, 24, m.Len())
	assert.Equal(t, matrix.Short, m.ElemType())
}

// TestDense_Index verifies linear index computation and its validation.
func TestDense_Index(t *testing.T) {
	m, err := matrix.NewDense(matrix.Byte, 4, 3)
	require.NoError(t, err)

	idx, err := m.Index(2, 1)
	require.NoError(t, err)
	assert.Equal(t, 6, idx)

	_, err = m.Index(2)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch, "wrong arity must error")

	_, err = m.Index(4, 0)
	assert.ErrorIs(t, err, matrix.ErrIndexOutOfRange)
	_, err = m.Index(0, -1)
	assert.ErrorIs(t, err, matrix.ErrIndexOutOfRange)
}

// TestDense_PseudoCyclicIndex verifies flattened wrap-around, including
// negative coordinates.
func TestDense_PseudoCyclicIndex(t *testing.T) {
	m, err := matrix.NewDense(matrix.Byte, 3, 3)
	require.NoError(t, err)

	assert.Equal(t, 4, m.PseudoCyclicIndex(1, 1))
	// (−1,−1) → −4 mod 9 = 5.
	assert.Equal(t, 5, m.PseudoCyclicIndex(-1, -1))
	// (3,0) runs past the row end into the next row: 3 mod 9 = 3.
	assert.Equal(t, 3, m.PseudoCyclicIndex(3, 0))
	// A full extra period along axis 1 is a no-op.
	assert.Equal(t, m.PseudoCyclicIndex(2, 1), m.PseudoCyclicIndex(2, 4))
}

// TestDense_RoundTrip verifies Set/Get on every element type.
func TestDense_RoundTrip(t *testing.T) {
	cases := []struct {
		elem matrix.ElemType
		in   int64
		want int64
	}{
		{matrix.Bit, 1, 1},
		{matrix.Bit, 0, 0},
		{matrix.Byte, 200, 200},
		{matrix.Char, 40000, 40000},
		{matrix.Short, 65535, 65535},
		{matrix.Int, 1 << 31, 1 << 31},
		{matrix.Long, 1 << 60, 1 << 60},
	}
	for _, tc := range cases {
		m, err := matrix.NewDense(tc.elem, 5)
		require.NoError(t, err)
		m.SetLong(3, tc.in)
		assert.Equal(t, tc.want, m.GetLong(3), "%s", tc.elem)
		assert.Zero(t, m.GetLong(2), "%s: neighbours untouched", tc.elem)
	}

	f, err := matrix.NewDense(matrix.Double, 4)
	require.NoError(t, err)
	f.SetDouble(1, 0.25)
	assert.Equal(t, 0.25, f.GetDouble(1))
}

// TestDense_BitPacking verifies bit elements across a word boundary.
func TestDense_BitPacking(t *testing.T) {
	m, err := matrix.NewDense(matrix.Bit, 130)
	require.NoError(t, err)
	for _, i := range []int{0, 63, 64, 129} {
		m.SetLong(i, 1)
	}
	m.SetLong(63, 0)

	assert.Equal(t, int64(1), m.GetLong(0))
	assert.Equal(t, int64(0), m.GetLong(63))
	assert.Equal(t, int64(1), m.GetLong(64))
	assert.Equal(t, int64(1), m.GetLong(129))
	assert.Equal(t, int64(0), m.GetLong(1))
}

// TestDense_SetLong_Saturation verifies saturation of out-of-range integers.
func TestDense_SetLong_Saturation(t *testing.T) {
	m, err := matrix.NewDense(matrix.Byte, 2)
	require.NoError(t, err)
	m.SetLong(0, 300)
	m.SetLong(1, -7)

	assert.Equal(t, int64(255), m.GetLong(0))
	assert.Equal(t, int64(0), m.GetLong(1))
}

// TestCastValue covers the saturating truncation rules: clamp at 0 and
// V_max, truncate toward zero in between, 0/1 for bit destinations.
func TestCastValue(t *testing.T) {
	assert.Equal(t, 255.0, matrix.CastValue(matrix.Byte, 300.5))
	assert.Equal(t, 0.0, matrix.CastValue(matrix.Byte, -4.2))
	assert.Equal(t, 12.0, matrix.CastValue(matrix.Byte, 12.9))
	assert.Equal(t, 0.0, matrix.CastValue(matrix.Byte, 0.999))
	assert.Equal(t, 65535.0, matrix.CastValue(matrix.Short, 1e9))
	assert.Equal(t, 1.0, matrix.CastValue(matrix.Bit, 0.25), "any non-zero is 1 for bit")
	assert.Equal(t, 0.0, matrix.CastValue(matrix.Bit, 0))
	assert.Equal(t, 2.5, matrix.CastValue(matrix.Double, 2.5), "float destinations keep the value")
}

// TestDense_SetDouble_Cast verifies the destination write path applies the
// same rules as CastValue.
func TestDense_SetDouble_Cast(t *testing.T) {
	m, err := matrix.NewDense(matrix.Byte, 3)
	require.NoError(t, err)
	m.SetDouble(0, 300.7)
	m.SetDouble(1, -1)
	m.SetDouble(2, 99.99)

	assert.Equal(t, int64(255), m.GetLong(0))
	assert.Equal(t, int64(0), m.GetLong(1))
	assert.Equal(t, int64(99), m.GetLong(2))
}

// TestDense_Clone verifies the copy is deep.
func TestDense_Clone(t *testing.T) {
	m, err := matrix.NewDense(matrix.Int, 2, 2)
	require.NoError(t, err)
	m.SetLong(3, 42)

	cp := m.Clone()
	cp.SetLong(3, 7)

	assert.Equal(t, int64(42), m.GetLong(3), "original must be untouched")
	assert.Equal(t, int64(7), cp.GetLong(3))
}

// TestElemType_Metadata pins the bit widths and nominal maxima.
func TestElemType_Metadata(t *testing.T) {
	assert.Equal(t, 1, matrix.Bit.BitWidth())
	assert.Equal(t, 8, matrix.Byte.BitWidth())
	assert.Equal(t, 16, matrix.Char.BitWidth())
	assert.Equal(t, 16, matrix.Short.BitWidth())
	assert.Equal(t, 32, matrix.Int.BitWidth())
	assert.Equal(t, 63, matrix.Long.BitWidth())
	assert.Equal(t, 0, matrix.Float.BitWidth())
	assert.Equal(t, 0, matrix.Double.BitWidth())

	assert.Equal(t, 255.0, matrix.Byte.MaxValue())
	assert.Equal(t, 1.0, matrix.Double.MaxValue())
	assert.True(t, matrix.Float.IsFloat())
	assert.False(t, matrix.Long.IsFloat())
}
