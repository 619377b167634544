package matrix

import "fmt"

// Continued is a read-only view of a Dense that resolves arbitrary
// (out-of-range) coordinate tuples according to a Continuation mode.
// It is the boundary layer between the streaming engine and a finite matrix:
// in-range reads short-circuit to the plain linear index, so wrapping a
// matrix whose reads never leave the bounds costs a bounds check per axis.
type Continued struct {
	m    *Dense
	mode Continuation
	fill float64

	dims    []int
	strides []int
}

// Continue wraps m into a continued view under the given mode. fill is only
// consulted for Constant mode.
// Complexity: O(n).
func Continue(m *Dense, mode Continuation, fill float64) (*Continued, error) {
	if m == nil {
		return nil, fmt.Errorf("Continue: %w", ErrNilMatrix)
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("Continue: mode %d: %w", int(mode), ErrBadContinuation)
	}

	return &Continued{
		m:       m,
		mode:    mode,
		fill:    fill,
		dims:    m.dims,
		strides: m.strides,
	}, nil
}

// Matrix returns the underlying matrix. Complexity: O(1).
func (v *Continued) Matrix() *Dense { return v.m }

// Mode returns the continuation mode. Complexity: O(1).
func (v *Continued) Mode() Continuation { return v.mode }

// Fill returns the Constant-mode fill value. Complexity: O(1).
func (v *Continued) Fill() float64 { return v.fill }

// Resolve maps a coordinate tuple (arity = DimCount, any integer values) to a
// linear index in the underlying matrix. ok is false only under Constant mode
// when the tuple is out of range; the caller then substitutes Fill().
// Complexity: O(n).
func (v *Continued) Resolve(coords []int) (idx int, ok bool) {
	idx = 0
	for k, c := range coords {
		if c < 0 || c >= v.dims[k] {
			return v.resolveSlow(coords)
		}
		idx += c * v.strides[k]
	}

	return idx, true
}

// resolveSlow handles the out-of-range cases per mode.
func (v *Continued) resolveSlow(coords []int) (int, bool) {
	switch v.mode {
	case PseudoCyclic:
		return v.m.PseudoCyclicIndex(coords...), true
	case Constant:
		return 0, false
	}

	// Per-axis wrapping for Cyclic, Mirror, Nearest.
	idx := 0
	for k, c := range coords {
		d := v.dims[k]
		if c < 0 || c >= d {
			switch v.mode {
			case Cyclic:
				c = floorMod(c, d)
			case Mirror:
				c = mirrorCoord(c, d)
			case Nearest:
				if c < 0 {
					c = 0
				} else {
					c = d - 1
				}
			}
		}
		idx += c * v.strides[k]
	}

	return idx, true
}

// GetDouble reads the continued value at an arbitrary coordinate tuple.
// Complexity: O(n).
func (v *Continued) GetDouble(coords []int) float64 {
	idx, ok := v.Resolve(coords)
	if !ok {
		return v.fill
	}

	return v.m.GetDouble(idx)
}

// floorMod returns c mod d with the sign of the divisor (floored division).
func floorMod(c, d int) int {
	c %= d
	if c < 0 {
		c += d
	}

	return c
}

// mirrorCoord reflects c into [0, d): the continuation has period 2d, with
// the second half reversed.
func mirrorCoord(c, d int) int {
	c = floorMod(c, 2*d)
	if c >= d {
		c = 2*d - 1 - c
	}

	return c
}
