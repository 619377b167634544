// Package pattern defines sentinel errors and limits for structuring
// elements.
package pattern

import "errors"

// MaxPoints caps the number of points a pattern may enumerate.
const MaxPoints = 1<<31 - 1

// Sentinel errors for pattern construction.
var (
	// ErrNoPoints indicates an attempt to build a pattern with no points.
	ErrNoPoints = errors.New("pattern: pattern must contain at least one point")
	// ErrMixedDimensions indicates points of differing arity.
	ErrMixedDimensions = errors.New("pattern: all points must share one dimension count")
	// ErrTooManyPoints indicates a pattern too large to enumerate.
	ErrTooManyPoints = errors.New("pattern: too many points to enumerate")
	// ErrBadBox indicates a box whose max is below its min on some axis.
	ErrBadBox = errors.New("pattern: box max must be >= min on every axis")
	// ErrBadAxis indicates an axis index outside [0, n).
	ErrBadAxis = errors.New("pattern: axis index out of range")
)
