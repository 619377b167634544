// Package rank defines configuration options, argument carriers, and sentinel
// errors for the rank characteristic engine.
package rank

import (
	"errors"
	"math"

	"github.com/katalvlaran/rankmorph/matrix"
)

// Sentinel errors for rank operations.
var (
	// ErrNilArgument indicates a nil matrix, pattern, or function argument.
	ErrNilArgument = errors.New("rank: nil argument")
	// ErrDimensionMismatch indicates a matrix–pattern or matrix–matrix
	// dimension disagreement.
	ErrDimensionMismatch = errors.New("rank: dimension mismatch")
	// ErrBadPrecision indicates an invalid precision descriptor: empty bit
	// levels, more than 31 entries, a level outside 1..30, or a
	// non-monotonic list.
	ErrBadPrecision = errors.New("rank: invalid precision descriptor")
	// ErrBadLevel indicates a dilation/erosion level outside [0, 1].
	ErrBadLevel = errors.New("rank: dilation level outside [0, 1]")
	// ErrInvalidNumericArgument indicates NaN in a required real argument.
	ErrInvalidNumericArgument = errors.New("rank: NaN in a required numeric argument")
	// ErrCancelled indicates the caller's context reported cancellation; the
	// destination is partially written and must be discarded.
	ErrCancelled = errors.New("rank: computation cancelled")
)

// Fill sentinels selecting the corner mode of MeanBetweenValues when the
// requested value range is empty. Any other (finite) filler is returned
// verbatim in that case.
var (
	// FillMinValue makes the empty-range result the lower bound v₁.
	FillMinValue = math.Inf(-1)
	// FillMaxValue makes the empty-range result the upper bound v₂.
	FillMaxValue = math.Inf(1)
	// FillNearestValue makes the empty-range result the nearest of the two
	// bounds (their mean when the bounds are inverted, v₁ ≥ v₂, or when
	// samples lie on both sides).
	FillNearestValue = math.NaN()
)

// Context carries cooperative cancellation and optional progress reporting
// into a computation. The engine polls IsCancelled at coarse-grain
// checkpoints (at least once per output row and at tile boundaries) and calls
// Report with a completion fraction in [0, 1].
type Context interface {
	// IsCancelled reports whether the caller requested cancellation.
	IsCancelled() bool
	// Report receives monotonically non-decreasing completion fractions.
	Report(done float64)
}

// nopContext is the no-op Context used when the caller passes nil.
type nopContext struct{}

func (nopContext) IsCancelled() bool { return false }
func (nopContext) Report(float64)    {}

// Background returns a Context that is never cancelled and discards progress.
func Background() Context { return nopContext{} }

// Func is a real function of the aperture sum.
type Func func(x float64) float64

// PairFunc is a real function of a source value and two of its percentiles.
type PairFunc func(v, v1, v2 float64) float64

// Arg supplies a per-point real argument to a characteristic: either one
// scalar applied at every position, or a matrix of the source's shape read
// per position. A scalar Arg behaves identically to a constant matrix of that
// scalar.
type Arg struct {
	m *matrix.Dense
	v float64
}

// Scalar wraps a constant argument value.
func Scalar(v float64) Arg { return Arg{v: v} }

// PerPoint wraps a per-position argument matrix; it must share the source's
// shape.
func PerPoint(m *matrix.Dense) Arg { return Arg{m: m} }

// perPoint reports whether the Arg reads from a matrix.
func (a Arg) perPoint() bool { return a.m != nil }

// Precision describes the histogram resolution: an ordered, strictly
// increasing list of bit levels (each in 1..30, at most 31 entries) and the
// interpolation model flag. The effective resolution μ is the last level,
// capped at the source's fixed-point bit width; levels below μ drive the
// histogram's multi-level count tree.
type Precision struct {
	// BitLevels is the strictly increasing level list.
	BitLevels []int
	// Interpolated selects the precise (piecewise-linear) model; false keeps
	// the simple model.
	Interpolated bool
}

// DefaultPrecision returns the default descriptor: levels 4/8/16, simple
// model. Byte sources then run a 256-bin histogram with a 16-block tree.
func DefaultPrecision() Precision {
	return Precision{BitLevels: []int{4, 8, 16}}
}

// Validate checks the descriptor shape.
// Complexity: O(levels).
func (p Precision) Validate() error {
	if len(p.BitLevels) == 0 || len(p.BitLevels) > 31 {
		return ErrBadPrecision
	}
	prev := 0
	for _, lv := range p.BitLevels {
		if lv < 1 || lv > 30 || lv <= prev {
			return ErrBadPrecision
		}
		prev = lv
	}

	return nil
}

// params resolves the descriptor against a source element type: the
// effective μ, the tree levels strictly below μ, and the scale factor σ
// (2^(μ−β) for fixed-point sources, 2^μ for floating sources).
func (p Precision) params(elem matrix.ElemType) (mu int, levels []int, sigma float64) {
	last := p.BitLevels[len(p.BitLevels)-1]
	mu = last
	if beta := elem.BitWidth(); beta != 0 && beta < mu {
		mu = beta
	}
	for _, lv := range p.BitLevels {
		if lv < mu {
			levels = append(levels, lv)
		}
	}
	if elem.IsFloat() {
		sigma = float64(int64(1) << uint(mu))
	} else {
		sigma = math.Ldexp(1, mu-elem.BitWidth())
	}

	return mu, levels, sigma
}

// Options configures an Engine.
type Options struct {
	// Precision is the histogram resolution descriptor.
	Precision Precision
	// Continuation resolves aperture reads outside the source matrix.
	Continuation matrix.Continuation
	// Fill is the Constant-continuation fill value; ignored by other modes.
	Fill float64
}

// DefaultOptions returns the default engine configuration: default precision,
// pseudo-cyclic continuation (the default for non-tiled rank operations),
// zero fill.
func DefaultOptions() Options {
	return Options{
		Precision:    DefaultPrecision(),
		Continuation: matrix.PseudoCyclic,
	}
}
