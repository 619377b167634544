// Dense is a concrete n-dimensional dense array over the closed element-type
// set, storing elements in a flat slice for performance and cache
// friendliness. Axis 0 is the fastest-varying axis: the linear index of a
// coordinate tuple is Σ coords[k]·strides[k] with strides[0] = 1.
package matrix

import (
	"fmt"
	"math"
)

// Dense is an n-D dense matrix of a fixed element type.
// dims holds per-axis lengths; strides holds the row-major stride schedule.
// Exactly one of the storage slices is non-nil, selected by elem.
type Dense struct {
	elem    ElemType
	dims    []int
	strides []int
	length  int

	bits  []uint64 // Bit, packed 64 elements per word
	bytes []uint8  // Byte
	words []uint16 // Char, Short
	ints  []uint32 // Int
	longs []int64  // Long
	f32   []float32
	f64   []float64
}

// NewDense creates a zero-filled n-D matrix with the given element type and
// per-axis lengths (axis 0 first, fastest-varying).
// Stage 1 (Validate): element type and dimensions.
// Stage 2 (Prepare): stride schedule and total length.
// Stage 3 (Finalize): allocate backing storage.
// Complexity: O(len) time and memory.
func NewDense(elem ElemType, dims ...int) (*Dense, error) {
	// Stage 1: validate inputs.
	if !elem.Valid() {
		return nil, fmt.Errorf("NewDense: %w", ErrBadElemType)
	}
	if len(dims) == 0 {
		return nil, fmt.Errorf("NewDense: %w", ErrBadDimensions)
	}
	for _, d := range dims {
		if d <= 0 {
			return nil, fmt.Errorf("NewDense: axis length %d: %w", d, ErrBadDimensions)
		}
	}

	// Stage 2: compute strides and total length, guarding against overflow.
	strides := make([]int, len(dims))
	length := 1
	for k, d := range dims {
		strides[k] = length
		if length > math.MaxInt/d {
			return nil, fmt.Errorf("NewDense: total size overflows: %w", ErrBadDimensions)
		}
		length *= d
	}

	// Stage 3: allocate typed storage.
	m := &Dense{
		elem:    elem,
		dims:    append([]int(nil), dims...),
		strides: strides,
		length:  length,
	}
	switch elem {
	case Bit:
		m.bits = make([]uint64, (length+63)/64)
	case Byte:
		m.bytes = make([]uint8, length)
	case Char, Short:
		m.words = make([]uint16, length)
	case Int:
		m.ints = make([]uint32, length)
	case Long:
		m.longs = make([]int64, length)
	case Float:
		m.f32 = make([]float32, length)
	case Double:
		m.f64 = make([]float64, length)
	}

	return m, nil
}

// ElemType returns the element type of the matrix. Complexity: O(1).
func (m *Dense) ElemType() ElemType { return m.elem }

// DimCount returns the number of axes n. Complexity: O(1).
func (m *Dense) DimCount() int { return len(m.dims) }

// Dim returns the length of axis k. Complexity: O(1).
func (m *Dense) Dim(k int) int { return m.dims[k] }

// Dims returns a copy of the per-axis lengths. Complexity: O(n).
func (m *Dense) Dims() []int { return append([]int(nil), m.dims...) }

// Strides returns a copy of the row-major stride schedule. Complexity: O(n).
func (m *Dense) Strides() []int { return append([]int(nil), m.strides...) }

// Len returns the total element count. Complexity: O(1).
func (m *Dense) Len() int { return m.length }

// Index converts a coordinate tuple to the linear index, validating both the
// tuple arity and every coordinate.
// Complexity: O(n).
func (m *Dense) Index(coords ...int) (int, error) {
	if len(coords) != len(m.dims) {
		return 0, fmt.Errorf("Dense.Index: %d coords for %d axes: %w",
			len(coords), len(m.dims), ErrDimensionMismatch)
	}
	idx := 0
	for k, c := range coords {
		if c < 0 || c >= m.dims[k] {
			return 0, fmt.Errorf("Dense.Index: axis %d coord %d: %w", k, c, ErrIndexOutOfRange)
		}
		idx += c * m.strides[k]
	}

	return idx, nil
}

// PseudoCyclicIndex converts an unbounded coordinate tuple to a linear index
// as if the flattened matrix were repeated cyclically: the row-major linear
// combination is taken modulo the total length (floored modulo, so negative
// coordinates wrap backwards). The tuple arity must equal DimCount.
// Complexity: O(n).
func (m *Dense) PseudoCyclicIndex(coords ...int) int {
	var idx int64
	for k, c := range coords {
		idx += int64(c) * int64(m.strides[k])
	}
	idx %= int64(m.length)
	if idx < 0 {
		idx += int64(m.length)
	}

	return int(idx)
}

// GetLong reads element i as a non-negative integer. Floating elements are
// truncated toward zero after clamping at 0; NaN reads as 0.
// i must be a valid linear index. Complexity: O(1).
func (m *Dense) GetLong(i int) int64 {
	switch m.elem {
	case Bit:
		return int64(m.bits[i>>6]>>(uint(i)&63)) & 1
	case Byte:
		return int64(m.bytes[i])
	case Char, Short:
		return int64(m.words[i])
	case Int:
		return int64(m.ints[i])
	case Long:
		return m.longs[i]
	case Float:
		return truncLong(float64(m.f32[i]))
	default:
		return truncLong(m.f64[i])
	}
}

// GetDouble reads element i as a float64. Fixed-point elements yield their
// integer value; floating elements yield the raw value.
// i must be a valid linear index. Complexity: O(1).
func (m *Dense) GetDouble(i int) float64 {
	switch m.elem {
	case Bit:
		return float64(int64(m.bits[i>>6]>>(uint(i)&63)) & 1)
	case Byte:
		return float64(m.bytes[i])
	case Char, Short:
		return float64(m.words[i])
	case Int:
		return float64(m.ints[i])
	case Long:
		return float64(m.longs[i])
	case Float:
		return float64(m.f32[i])
	default:
		return m.f64[i]
	}
}

// SetLong stores a non-negative integer into element i, saturating at the
// type's range. Floating elements store the exact float image.
// i must be a valid linear index. Complexity: O(1).
func (m *Dense) SetLong(i int, v int64) {
	switch m.elem {
	case Float:
		m.f32[i] = float32(v)
		return
	case Double:
		m.f64[i] = float64(v)
		return
	}
	if v < 0 {
		v = 0
	} else if max := m.elem.maxLong(); v > max {
		v = max
	}
	m.storeLong(i, v)
}

// SetDouble stores a real value into element i with the saturating cast rules
// of fixed-point destinations: clamp to [0, V_max], truncate toward zero.
// One-bit destinations store 1 for any non-zero value. Floating destinations
// store the (possibly narrowed) value as-is.
// i must be a valid linear index. Complexity: O(1).
func (m *Dense) SetDouble(i int, v float64) {
	switch m.elem {
	case Float:
		m.f32[i] = float32(v)
		return
	case Double:
		m.f64[i] = v
		return
	case Bit:
		if v != 0 {
			m.storeLong(i, 1)
		} else {
			m.storeLong(i, 0)
		}
		return
	}
	m.storeLong(i, castLong(m.elem, v))
}

// storeLong writes an already range-checked integer into typed storage.
func (m *Dense) storeLong(i int, v int64) {
	switch m.elem {
	case Bit:
		word, bit := i>>6, uint(i)&63
		if v != 0 {
			m.bits[word] |= 1 << bit
		} else {
			m.bits[word] &^= 1 << bit
		}
	case Byte:
		m.bytes[i] = uint8(v)
	case Char, Short:
		m.words[i] = uint16(v)
	case Int:
		m.ints[i] = uint32(v)
	case Long:
		m.longs[i] = v
	}
}

// Clone returns a deep copy of the matrix. Complexity: O(len).
func (m *Dense) Clone() *Dense {
	cp := *m
	cp.dims = append([]int(nil), m.dims...)
	cp.strides = append([]int(nil), m.strides...)
	switch m.elem {
	case Bit:
		cp.bits = append([]uint64(nil), m.bits...)
	case Byte:
		cp.bytes = append([]uint8(nil), m.bytes...)
	case Char, Short:
		cp.words = append([]uint16(nil), m.words...)
	case Int:
		cp.ints = append([]uint32(nil), m.ints...)
	case Long:
		cp.longs = append([]int64(nil), m.longs...)
	case Float:
		cp.f32 = append([]float32(nil), m.f32...)
	case Double:
		cp.f64 = append([]float64(nil), m.f64...)
	}

	return &cp
}

// String implements fmt.Stringer for easy debugging.
func (m *Dense) String() string {
	return fmt.Sprintf("Dense[%s %v]", m.elem, m.dims)
}

// CastValue returns the value y would hold after being stored into an element
// of type t: clamp to [0, V_max] and truncate toward zero for fixed-point
// types, 0/1 for Bit, float32 narrowing for Float, identity for Double.
// Complexity: O(1).
func CastValue(t ElemType, y float64) float64 {
	switch t {
	case Float:
		return float64(float32(y))
	case Double:
		return y
	case Bit:
		if y != 0 {
			return 1
		}
		return 0
	default:
		return float64(castLong(t, y))
	}
}

// castLong clamps y to [0, 2^β−1] and truncates toward zero. NaN casts to 0.
func castLong(t ElemType, y float64) int64 {
	if math.IsNaN(y) || y <= 0 {
		return 0
	}
	max := t.maxLong()
	// float64(max) rounds up to 2^β for β > 52, so >= catches the overflow edge.
	if y >= float64(max) {
		return max
	}

	return int64(y)
}

// truncLong truncates a float64 read toward zero with a floor at 0; NaN reads 0.
func truncLong(v float64) int64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= math.MaxInt64 {
		return math.MaxInt64
	}

	return int64(v)
}
