// Package histogram defines sentinel errors and limits for the multi-level
// histogram core.
package histogram

import "errors"

// MaxBits is the largest supported histogram resolution μ: bin counts are
// 2^μ with μ ≤ 30.
const MaxBits = 30

// Sentinel errors for histogram construction.
var (
	// ErrBadBits indicates a resolution μ outside [0, MaxBits].
	ErrBadBits = errors.New("histogram: bit count out of range")
	// ErrBadLevels indicates tree levels that are not strictly increasing
	// values inside (0, μ).
	ErrBadLevels = errors.New("histogram: invalid tree levels")
)
