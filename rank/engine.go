package rank

import (
	"fmt"
	"math"

	"github.com/katalvlaran/rankmorph/matrix"
	"github.com/katalvlaran/rankmorph/pattern"
)

// Engine is the rank characteristic facade: it validates inputs, allocates
// destinations of the source's element type, runs the streaming aperture
// scan, and casts characteristic outputs with the saturating rules of
// matrix.CastValue. An Engine is immutable and safe for concurrent use.
type Engine struct {
	opts Options
}

// New creates an Engine from the given options.
// Complexity: O(levels) validation.
func New(opts Options) (*Engine, error) {
	if err := opts.Precision.Validate(); err != nil {
		return nil, fmt.Errorf("rank.New: %w", err)
	}
	if !opts.Continuation.Valid() {
		return nil, fmt.Errorf("rank.New: %w", matrix.ErrBadContinuation)
	}

	return &Engine{opts: opts}, nil
}

// Default returns an Engine with DefaultOptions.
func Default() *Engine {
	e, err := New(DefaultOptions())
	if err != nil {
		// DefaultOptions always validates.
		panic(err)
	}

	return e
}

// Options returns a copy of the engine configuration.
func (e *Engine) Options() Options {
	o := e.opts
	o.Precision.BitLevels = append([]int(nil), e.opts.Precision.BitLevels...)

	return o
}

// Run executes a bound Proc over a whole source matrix, allocating and
// returning the destination. All validation happens before the destination
// is allocated; a cancelled run returns ErrCancelled and no matrix.
// Complexity: O(len(src) · (|enters|+|leaves|) · log M).
func (e *Engine) Run(ctx Context, p *Proc, src *matrix.Dense) (*matrix.Dense, error) {
	if ctx == nil {
		ctx = Background()
	}
	if p == nil {
		return nil, fmt.Errorf("rank.Run: proc: %w", ErrNilArgument)
	}
	if err := p.Validate(src); err != nil {
		return nil, err
	}

	// Destination allocation strictly after validation.
	dst, err := matrix.NewDense(src.ElemType(), src.Dims()...)
	if err != nil {
		return nil, fmt.Errorf("rank.Run: %w", err)
	}
	view, err := matrix.Continue(src, e.opts.Continuation, e.opts.Fill)
	if err != nil {
		return nil, fmt.Errorf("rank.Run: %w", err)
	}

	zeros := make([]int, src.DimCount())
	if err := p.runView(ctx, view, zeros, zeros, src.Dims(), dst); err != nil {
		return nil, err
	}
	ctx.Report(1)

	return dst, nil
}

// Percentile returns, per position, the value of real rank index inside the
// aperture {src[x+p] : p ∈ pat}. The simple model floors the index; the
// precise model interpolates the piecewise-linear CDF.
func (e *Engine) Percentile(ctx Context, src *matrix.Dense, index Arg, pat *pattern.Pattern) (*matrix.Dense, error) {
	p, err := e.PercentileProc(index, pat)
	if err != nil {
		return nil, err
	}

	return e.Run(ctx, p, src)
}

// Rank returns, per position, the rank of a real value inside the aperture.
// For fixed-point sources under the simple model the result is an exact
// integer count.
func (e *Engine) Rank(ctx Context, src *matrix.Dense, value Arg, pat *pattern.Pattern) (*matrix.Dense, error) {
	p, err := e.RankProc(value, pat)
	if err != nil {
		return nil, err
	}

	return e.Run(ctx, p, src)
}

// MeanBetweenPercentiles returns, per position, the mean of the sorted
// aperture slice between rank indices from and to; positions where
// from ≥ to receive filler.
func (e *Engine) MeanBetweenPercentiles(ctx Context, src *matrix.Dense, from, to Arg, pat *pattern.Pattern, filler float64) (*matrix.Dense, error) {
	p, err := e.MeanBetweenPercentilesProc(from, to, pat, filler)
	if err != nil {
		return nil, err
	}

	return e.Run(ctx, p, src)
}

// MeanBetweenValues returns, per position, the mean of the aperture values
// between the bounds low and high; empty ranges resolve through the filler
// sentinel (see FillMinValue, FillMaxValue, FillNearestValue).
func (e *Engine) MeanBetweenValues(ctx Context, src *matrix.Dense, low, high Arg, pat *pattern.Pattern, filler float64) (*matrix.Dense, error) {
	p, err := e.MeanBetweenValuesProc(low, high, pat, filler)
	if err != nil {
		return nil, err
	}

	return e.Run(ctx, p, src)
}

// FunctionOfPercentilePair returns, per position, fn(v, v(from), v(to)) where
// v is the source value at the position and v(r) the aperture percentile.
func (e *Engine) FunctionOfPercentilePair(ctx Context, src *matrix.Dense, from, to Arg, pat *pattern.Pattern, fn PairFunc) (*matrix.Dense, error) {
	p, err := e.FunctionOfPercentilePairProc(from, to, pat, fn)
	if err != nil {
		return nil, err
	}

	return e.Run(ctx, p, src)
}

// Mean returns, per position, the aperture mean: sum/N, plus 0.5 for
// fixed-point sources so the truncating destination cast rounds to nearest.
func (e *Engine) Mean(ctx Context, src *matrix.Dense, pat *pattern.Pattern) (*matrix.Dense, error) {
	p, err := e.MeanProc(pat)
	if err != nil {
		return nil, err
	}

	return e.Run(ctx, p, src)
}

// FunctionOfSum returns, per position, fn(aperture sum).
func (e *Engine) FunctionOfSum(ctx Context, src *matrix.Dense, pat *pattern.Pattern, fn Func) (*matrix.Dense, error) {
	p, err := e.FunctionOfSumProc(pat, fn)
	if err != nil {
		return nil, err
	}

	return e.Run(ctx, p, src)
}

// Dilation is the percentile adapter with index level·(N−1) over pat:
// level 1 is the classical dilation (aperture maximum). For fixed-point
// sources under the simple model the index is rounded half-up before the
// call, which keeps dilation and erosion symmetric; float and precise paths
// pass the real index through.
func (e *Engine) Dilation(ctx Context, src *matrix.Dense, pat *pattern.Pattern, level float64) (*matrix.Dense, error) {
	if src == nil {
		return nil, fmt.Errorf("rank: source: %w", ErrNilArgument)
	}
	idx, err := e.DilationIndex(src.ElemType(), pat, level)
	if err != nil {
		return nil, err
	}

	return e.Percentile(ctx, src, Scalar(idx), pat)
}

// Erosion is the percentile adapter over the symmetric pattern: level 0 is
// the classical erosion (aperture minimum).
func (e *Engine) Erosion(ctx Context, src *matrix.Dense, pat *pattern.Pattern, level float64) (*matrix.Dense, error) {
	if src == nil {
		return nil, fmt.Errorf("rank: source: %w", ErrNilArgument)
	}
	idx, err := e.DilationIndex(src.ElemType(), pat, level)
	if err != nil {
		return nil, err
	}

	return e.Percentile(ctx, src, Scalar(idx), pat.Symmetric())
}

// DilationIndex validates a dilation/erosion level against [0, 1] and
// resolves the percentile index level·(N−1), applying the half-up rounding
// of the fixed-point simple path. Tiling drivers use it to build their own
// percentile procs.
func (e *Engine) DilationIndex(elem matrix.ElemType, pat *pattern.Pattern, level float64) (float64, error) {
	if pat == nil {
		return 0, fmt.Errorf("rank: pattern: %w", ErrNilArgument)
	}
	if math.IsNaN(level) || level < 0 || level > 1 {
		return 0, fmt.Errorf("rank: level %v: %w", level, ErrBadLevel)
	}
	idx := level * float64(pat.PointCount()-1)
	if !elem.IsFloat() && !e.opts.Precision.Interpolated {
		idx = math.Floor(idx + 0.5)
	}

	return idx, nil
}
