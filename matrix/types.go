// Package matrix defines element types, continuation modes, and sentinel
// errors for the n-dimensional dense matrices of rankmorph.
package matrix

import (
	"errors"
	"math"
)

// Sentinel errors for matrix operations.
var (
	// ErrNilMatrix indicates a nil *Dense was passed where a matrix is required.
	ErrNilMatrix = errors.New("matrix: nil matrix")
	// ErrBadDimensions indicates a requested shape with no axes or a non-positive axis.
	ErrBadDimensions = errors.New("matrix: dimensions must be positive")
	// ErrDimensionMismatch indicates two matrices (or a matrix and a coordinate
	// tuple) disagree in dimension count or per-axis lengths.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")
	// ErrIndexOutOfRange indicates a coordinate outside the matrix bounds.
	ErrIndexOutOfRange = errors.New("matrix: index out of range")
	// ErrBadElemType indicates an element type outside the supported set.
	ErrBadElemType = errors.New("matrix: unsupported element type")
	// ErrBadContinuation indicates a continuation mode outside the supported set.
	ErrBadContinuation = errors.New("matrix: unsupported continuation mode")
)

// ElemType enumerates the closed set of element types a Dense can store.
// Fixed-point types are treated as unsigned; Long uses a 63-bit non-negative
// view over int64 storage so integer reads stay exact.
type ElemType int

const (
	// Bit stores one-bit 0/1 elements packed into uint64 words.
	Bit ElemType = iota
	// Byte stores 8-bit unsigned elements.
	Byte
	// Char stores 16-bit unsigned code-unit elements.
	Char
	// Short stores 16-bit unsigned elements.
	Short
	// Int stores 32-bit unsigned elements.
	Int
	// Long stores 63-bit non-negative elements in int64 words.
	Long
	// Float stores 32-bit floating-point elements; nominal range [0, 1].
	Float
	// Double stores 64-bit floating-point elements; nominal range [0, 1].
	Double
)

// elemTypeCount bounds the ElemType enumeration for validation.
const elemTypeCount = 8

// BitWidth returns the fixed-point bit width β of t, or 0 for floating types.
// Complexity: O(1).
func (t ElemType) BitWidth() int {
	switch t {
	case Bit:
		return 1
	case Byte:
		return 8
	case Char, Short:
		return 16
	case Int:
		return 32
	case Long:
		return 63
	default:
		return 0 // Float, Double
	}
}

// IsFloat reports whether t is a floating-point element type.
// Complexity: O(1).
func (t ElemType) IsFloat() bool {
	return t == Float || t == Double
}

// MaxValue returns the nominal maximum V_max of t: 2^β−1 for β-bit
// fixed-point types, 1.0 for floating types.
// Complexity: O(1).
func (t ElemType) MaxValue() float64 {
	if t.IsFloat() {
		return 1.0
	}

	// 2^β−1 computed in float64; exact for β ≤ 52, intentional rounding for Long.
	return maxLongValue(t)
}

// maxLong returns 2^β−1 as int64 for fixed-point types.
func (t ElemType) maxLong() int64 {
	if t == Long {
		// 2^63−1 directly: the shift form would wrap.
		return math.MaxInt64
	}

	return int64(1)<<uint(t.BitWidth()) - 1
}

// maxLongValue is the float64 image of maxLong.
func maxLongValue(t ElemType) float64 {
	return float64(t.maxLong())
}

// Valid reports whether t belongs to the supported element-type set.
func (t ElemType) Valid() bool {
	return t >= Bit && t < elemTypeCount
}

// String implements fmt.Stringer.
func (t ElemType) String() string {
	switch t {
	case Bit:
		return "bit"
	case Byte:
		return "byte"
	case Char:
		return "char"
	case Short:
		return "short"
	case Int:
		return "int"
	case Long:
		return "long"
	case Float:
		return "float"
	case Double:
		return "double"
	default:
		return "elemtype(?)"
	}
}

// Continuation selects how reads outside the matrix bounds are resolved.
type Continuation int

const (
	// PseudoCyclic flattens the coordinate tuple to the row-major index space
	// and wraps modulo the total length. The default for non-tiled rank
	// operations.
	PseudoCyclic Continuation = iota
	// Cyclic wraps each axis independently (per-axis modulo).
	Cyclic
	// Mirror reflects coordinates at the boundaries.
	Mirror
	// Constant substitutes a fixed fill value for every out-of-range read.
	Constant
	// Nearest clamps each coordinate to the nearest in-range index.
	Nearest
)

// continuationCount bounds the Continuation enumeration for validation.
const continuationCount = 5

// Valid reports whether c belongs to the supported continuation set.
func (c Continuation) Valid() bool {
	return c >= PseudoCyclic && c < continuationCount
}

// String implements fmt.Stringer.
func (c Continuation) String() string {
	switch c {
	case PseudoCyclic:
		return "pseudo-cyclic"
	case Cyclic:
		return "cyclic"
	case Mirror:
		return "mirror"
	case Constant:
		return "constant"
	case Nearest:
		return "nearest"
	default:
		return "continuation(?)"
	}
}
