package rank

import (
	"fmt"
	"math"

	"github.com/katalvlaran/rankmorph/matrix"
	"github.com/katalvlaran/rankmorph/pattern"
)

// procKind enumerates the bound characteristic of a Proc.
type procKind int

const (
	opPercentile procKind = iota
	opRank
	opMeanBetweenPercentiles
	opMeanBetweenValues
	opFunctionOfPercentilePair
	opMean
	opFunctionOfSum
)

// Proc is one rank operation bound to a pattern and its per-point arguments,
// ready to run over a source matrix — either whole (Engine.Run) or per tile
// through RunWindow. A Proc is immutable and re-entrant: every run builds its
// own histogram and scan state, so tiles may share one Proc across
// goroutines.
type Proc struct {
	eng  *Engine
	kind procKind
	pat  *pattern.Pattern // facade pattern P: the aperture is {src[x+p]}
	scan *pattern.Pattern // engine pattern Q = P.Symmetric(): the scanner keeps {src[x−q]}
	args []Arg
	fill float64
	fn   Func
	pfn  PairFunc
}

// newProc validates the operation-independent inputs.
func (e *Engine) newProc(kind procKind, pat *pattern.Pattern, args []Arg, fill float64) (*Proc, error) {
	if pat == nil {
		return nil, fmt.Errorf("rank: pattern: %w", ErrNilArgument)
	}
	for _, a := range args {
		if !a.perPoint() && math.IsNaN(a.v) {
			return nil, fmt.Errorf("rank: scalar argument: %w", ErrInvalidNumericArgument)
		}
		if a.perPoint() && a.m == nil {
			return nil, fmt.Errorf("rank: argument matrix: %w", ErrNilArgument)
		}
	}

	return &Proc{
		eng:  e,
		kind: kind,
		pat:  pat,
		scan: pat.Symmetric(),
		args: args,
		fill: fill,
	}, nil
}

// PercentileProc binds the percentile characteristic: the value of real rank
// index ∈ [0, N] inside each aperture.
func (e *Engine) PercentileProc(index Arg, pat *pattern.Pattern) (*Proc, error) {
	return e.newProc(opPercentile, pat, []Arg{index}, 0)
}

// RankProc binds the rank characteristic: the rank of a real value inside
// each aperture.
func (e *Engine) RankProc(value Arg, pat *pattern.Pattern) (*Proc, error) {
	return e.newProc(opRank, pat, []Arg{value}, 0)
}

// MeanBetweenPercentilesProc binds the mean of the sorted aperture slice
// between two rank indices; filler is returned where from ≥ to.
func (e *Engine) MeanBetweenPercentilesProc(from, to Arg, pat *pattern.Pattern, filler float64) (*Proc, error) {
	return e.newProc(opMeanBetweenPercentiles, pat, []Arg{from, to}, filler)
}

// MeanBetweenValuesProc binds the mean of the aperture values between two
// bounds; filler (possibly a Fill* sentinel) selects the empty-range corner
// mode.
func (e *Engine) MeanBetweenValuesProc(low, high Arg, pat *pattern.Pattern, filler float64) (*Proc, error) {
	return e.newProc(opMeanBetweenValues, pat, []Arg{low, high}, filler)
}

// FunctionOfPercentilePairProc binds f(v, v(r₁), v(r₂)) where v is the
// source value at the output position.
func (e *Engine) FunctionOfPercentilePairProc(from, to Arg, pat *pattern.Pattern, fn PairFunc) (*Proc, error) {
	if fn == nil {
		return nil, fmt.Errorf("rank: pair function: %w", ErrNilArgument)
	}
	p, err := e.newProc(opFunctionOfPercentilePair, pat, []Arg{from, to}, 0)
	if err != nil {
		return nil, err
	}
	p.pfn = fn

	return p, nil
}

// MeanProc binds the aperture mean: sum/N plus 0.5 for fixed-point sources
// (round-to-nearest on fixed-point destinations).
func (e *Engine) MeanProc(pat *pattern.Pattern) (*Proc, error) {
	return e.newProc(opMean, pat, nil, 0)
}

// FunctionOfSumProc binds f(aperture sum).
func (e *Engine) FunctionOfSumProc(pat *pattern.Pattern, fn Func) (*Proc, error) {
	if fn == nil {
		return nil, fmt.Errorf("rank: sum function: %w", ErrNilArgument)
	}
	p, err := e.newProc(opFunctionOfSum, pat, nil, 0)
	if err != nil {
		return nil, err
	}
	p.fn = fn

	return p, nil
}

// Pattern returns the facade pattern the Proc is bound to.
func (p *Proc) Pattern() *pattern.Pattern { return p.pat }

// Dependence returns the per-axis offset box of source positions one output
// position depends on: the engine pattern's read offsets extended to include
// the output position itself.
// Complexity: O(n).
func (p *Proc) Dependence() (lo, hi []int) {
	qmin, qmax := p.scan.BoundingBox()
	n := p.scan.DimCount()
	lo = make([]int, n)
	hi = make([]int, n)
	for k := 0; k < n; k++ {
		// Reads happen at x − q, so offsets span [−qmax, −qmin]; keep 0 inside.
		lo[k] = min(-qmax[k], 0)
		hi[k] = max(-qmin[k], 0)
	}

	return lo, hi
}

// ArgMatrices returns the per-point argument matrices of the Proc (empty for
// scalar-only operations). They have single-point dependence: tiling drivers
// read them at the output position itself.
func (p *Proc) ArgMatrices() []*matrix.Dense {
	var out []*matrix.Dense
	for _, a := range p.args {
		if a.perPoint() {
			out = append(out, a.m)
		}
	}

	return out
}

// Validate checks the Proc against a concrete source matrix: dimension
// agreement with the pattern and with every per-point argument matrix.
func (p *Proc) Validate(src *matrix.Dense) error {
	if src == nil {
		return fmt.Errorf("rank: source: %w", ErrNilArgument)
	}
	if p.pat.DimCount() != src.DimCount() {
		return fmt.Errorf("rank: pattern %dD vs source %dD: %w",
			p.pat.DimCount(), src.DimCount(), ErrDimensionMismatch)
	}
	for _, a := range p.args {
		if !a.perPoint() {
			continue
		}
		if err := matrix.ValidateSameShape(a.m, src); err != nil {
			return fmt.Errorf("rank: argument matrix: %v: %w", err, ErrDimensionMismatch)
		}
	}

	return nil
}

// RunWindow computes the outputs of an outDims-sized tile against a source
// window. The aperture anchor of tile position u is u+rel in window
// coordinates; u+outFrom addresses the logical (full) index space for
// per-point arguments and for the destination write. dst must be the full
// logical destination. This is the building block tiling drivers use; plain
// callers want Engine.Run or the facade operations.
// Complexity: O(tile · (|enters|+|leaves|) · log M).
func (p *Proc) RunWindow(ctx Context, win *matrix.Dense, rel, outFrom, outDims []int, dst *matrix.Dense) error {
	if ctx == nil {
		ctx = Background()
	}
	view, err := matrix.Continue(win, p.eng.opts.Continuation, p.eng.opts.Fill)
	if err != nil {
		return fmt.Errorf("rank: window: %w", err)
	}

	return p.runView(ctx, view, rel, outFrom, outDims, dst)
}

// runView is the shared scan driver behind Run and RunWindow.
func (p *Proc) runView(ctx Context, view *matrix.Continued, rel, outFrom, outDims []int, dst *matrix.Dense) error {
	elem := view.Matrix().ElemType()
	fixed := !elem.IsFloat()

	st, err := p.newSinkState(elem)
	if err != nil {
		return err
	}
	sc := newScanner(view, outDims, rel, p.scan, st.acc, fixed)
	st.sc = sc

	n := len(outDims)
	dstStrides := dst.Strides()
	gbuf := make([]int, n)
	emit := func() error {
		for k := 0; k < n; k++ {
			gbuf[k] = sc.pos[k] + outFrom[k]
		}
		gl := dot(gbuf, dstStrides)
		out, serr := st.sink(gl)
		if serr != nil {
			return serr
		}
		dst.SetDouble(gl, out)

		return nil
	}

	return sc.run(ctx, emit)
}
