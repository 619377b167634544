package tiling

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/rankmorph/matrix"
	"github.com/katalvlaran/rankmorph/pattern"
	"github.com/katalvlaran/rankmorph/rank"
)

// Driver composes a rank.Engine with a tiler configuration: the destination
// is partitioned into non-overlapping rectangular tiles, each tile's read
// halo is derived from the proc's dependence aperture, the halo'd source
// window is assembled through the engine's continuation, and the engine runs
// per tile with fresh scratch state. Tiled and non-tiled computations with
// the same continuation produce identical destinations.
type Driver struct {
	eng     *rank.Engine
	tile    []int
	workers int
}

// New creates a tiled driver around an engine.
// Complexity: O(len(options)).
func New(eng *rank.Engine, opts ...Option) (*Driver, error) {
	if eng == nil {
		return nil, fmt.Errorf("tiling.New: %w", ErrNilEngine)
	}
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}
	for _, d := range o.TileDims {
		if d <= 0 {
			return nil, fmt.Errorf("tiling.New: side %d: %w", d, ErrBadTileDims)
		}
	}
	if o.Workers < 0 {
		return nil, fmt.Errorf("tiling.New: %w", ErrBadWorkers)
	}

	return &Driver{eng: eng, tile: o.TileDims, workers: o.Workers}, nil
}

// Engine returns the composed rank engine.
func (d *Driver) Engine() *rank.Engine { return d.eng }

// tileRect is one output tile: the inclusive-from/exclusive-to box.
type tileRect struct {
	from []int
	dims []int
}

// quietCtx forwards cancellation but swallows the per-tile row progress, so
// the caller only sees the monotone whole-run fractions the driver reports.
type quietCtx struct {
	inner rank.Context
}

func (q quietCtx) IsCancelled() bool { return q.inner.IsCancelled() }
func (q quietCtx) Report(float64)    {}

// Run executes a bound proc tile by tile over src, allocating and returning
// the destination. With Workers > 1, tiles run concurrently and Context
// methods may be called from multiple goroutines.
func (d *Driver) Run(ctx rank.Context, p *rank.Proc, src *matrix.Dense) (*matrix.Dense, error) {
	if ctx == nil {
		ctx = rank.Background()
	}
	if p == nil {
		return nil, fmt.Errorf("tiling.Run: %w", ErrNilProc)
	}
	if err := p.Validate(src); err != nil {
		return nil, err
	}
	n := src.DimCount()
	tile, err := d.tileFor(n)
	if err != nil {
		return nil, err
	}
	depLo, depHi := p.Dependence()

	// Every tile halo must stay representable before anything is allocated.
	dims := src.Dims()
	for k := 0; k < n; k++ {
		if err := checkHalo(dims[k], depLo[k], depHi[k]); err != nil {
			return nil, err
		}
	}

	dst, err := matrix.NewDense(src.ElemType(), dims...)
	if err != nil {
		return nil, fmt.Errorf("tiling.Run: %w", err)
	}
	opts := d.eng.Options()
	view, err := matrix.Continue(src, opts.Continuation, opts.Fill)
	if err != nil {
		return nil, fmt.Errorf("tiling.Run: %w", err)
	}

	tiles := splitTiles(dims, tile)
	var done atomic.Int64
	total := int64(len(tiles))
	runTile := func(t tileRect) error {
		if ctx.IsCancelled() {
			return rank.ErrCancelled
		}
		if err := d.runTile(quietCtx{inner: ctx}, p, view, t, depLo, depHi, dst); err != nil {
			return errors.Wrapf(err, "tiling: tile at %v", t.from)
		}
		ctx.Report(float64(done.Add(1)) / float64(total))

		return nil
	}

	if d.workers <= 1 {
		// Sequential: tiles in row-major order.
		for _, t := range tiles {
			if err := runTile(t); err != nil {
				return nil, err
			}
		}

		return dst, nil
	}

	g := new(errgroup.Group)
	g.SetLimit(d.workers)
	for _, t := range tiles {
		t := t
		g.Go(func() error { return runTile(t) })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return dst, nil
}

// runTile assembles the halo'd window for one tile and runs the proc on it.
func (d *Driver) runTile(ctx rank.Context, p *rank.Proc, view *matrix.Continued, t tileRect, depLo, depHi []int, dst *matrix.Dense) error {
	n := len(t.from)
	winLo := make([]int, n)
	winDims := make([]int, n)
	rel := make([]int, n)
	for k := 0; k < n; k++ {
		winLo[k] = t.from[k] + depLo[k]
		winDims[k] = t.dims[k] + depHi[k] - depLo[k]
		rel[k] = -depLo[k]
	}

	src := view.Matrix()
	win, err := matrix.NewDense(src.ElemType(), winDims...)
	if err != nil {
		return err
	}
	fillWindow(win, view, winLo)

	return p.RunWindow(ctx, win, rel, t.from, t.dims, dst)
}

// fillWindow copies the continued source region starting at winLo into win,
// keeping fixed-point values exact through the integer path.
func fillWindow(win *matrix.Dense, view *matrix.Continued, winLo []int) {
	src := view.Matrix()
	fixed := !src.ElemType().IsFloat()
	// A constant fill enters a fixed-point window through the same floor the
	// histogram quantization applies, keeping tiled and non-tiled identical.
	fill := view.Fill()
	fillLong := int64(0)
	if fixed && !math.IsNaN(fill) && fill > 0 {
		fillLong = int64(math.Floor(fill))
	}
	dims := win.Dims()
	n := len(dims)
	coords := make([]int, n) // window-local
	abs := make([]int, n)    // source-space
	for i := 0; i < win.Len(); i++ {
		for k := 0; k < n; k++ {
			abs[k] = winLo[k] + coords[k]
		}
		if idx, ok := view.Resolve(abs); !ok {
			if fixed {
				win.SetLong(i, fillLong)
			} else {
				win.SetDouble(i, fill)
			}
		} else if fixed {
			win.SetLong(i, src.GetLong(idx))
		} else {
			win.SetDouble(i, src.GetDouble(idx))
		}

		// Row-major odometer, axis 0 fastest — matches the linear index i.
		for k := 0; k < n; k++ {
			coords[k]++
			if coords[k] < dims[k] {
				break
			}
			coords[k] = 0
		}
	}
}

// splitTiles partitions dims into row-major tiles of at most the given size.
func splitTiles(dims, tile []int) []tileRect {
	n := len(dims)
	var out []tileRect
	from := make([]int, n)
	for {
		t := tileRect{from: append([]int(nil), from...), dims: make([]int, n)}
		for k := 0; k < n; k++ {
			t.dims[k] = min(tile[k], dims[k]-from[k])
		}
		out = append(out, t)

		k := 0
		for k < n {
			from[k] += tile[k]
			if from[k] < dims[k] {
				break
			}
			from[k] = 0
			k++
		}
		if k == n {
			return out
		}
	}
}

// tileFor resolves the configured tile dims against an n-D source.
func (d *Driver) tileFor(n int) ([]int, error) {
	switch len(d.tile) {
	case 0:
		tile := make([]int, n)
		for k := range tile {
			tile[k] = DefaultTileSide
		}

		return tile, nil
	case 1:
		tile := make([]int, n)
		for k := range tile {
			tile[k] = d.tile[0]
		}

		return tile, nil
	case n:
		return append([]int(nil), d.tile...), nil
	default:
		return nil, fmt.Errorf("tiling: %d tile dims for %dD source: %w", len(d.tile), n, ErrBadTileDims)
	}
}

// checkHalo rejects dependence offsets that would push any tile's window
// outside the representable index range. Dependence boxes satisfy lo ≤ 0 ≤ hi.
func checkHalo(dim, lo, hi int) error {
	if lo < 0 && hi > math.MaxInt+lo {
		// hi − lo itself overflows.
		return fmt.Errorf("tiling: halo %d..%d: %w", lo, hi, ErrOutOfRange)
	}
	if span := hi - lo; dim > math.MaxInt-span {
		return fmt.Errorf("tiling: halo %d..%d beyond axis of %d: %w", lo, hi, dim, ErrOutOfRange)
	}

	return nil
}

// Percentile runs the percentile characteristic tiled. See rank.Engine.
func (d *Driver) Percentile(ctx rank.Context, src *matrix.Dense, index rank.Arg, pat *pattern.Pattern) (*matrix.Dense, error) {
	p, err := d.eng.PercentileProc(index, pat)
	if err != nil {
		return nil, err
	}

	return d.Run(ctx, p, src)
}

// Rank runs the rank characteristic tiled. See rank.Engine.
func (d *Driver) Rank(ctx rank.Context, src *matrix.Dense, value rank.Arg, pat *pattern.Pattern) (*matrix.Dense, error) {
	p, err := d.eng.RankProc(value, pat)
	if err != nil {
		return nil, err
	}

	return d.Run(ctx, p, src)
}

// MeanBetweenPercentiles runs tiled. See rank.Engine.
func (d *Driver) MeanBetweenPercentiles(ctx rank.Context, src *matrix.Dense, from, to rank.Arg, pat *pattern.Pattern, filler float64) (*matrix.Dense, error) {
	p, err := d.eng.MeanBetweenPercentilesProc(from, to, pat, filler)
	if err != nil {
		return nil, err
	}

	return d.Run(ctx, p, src)
}

// MeanBetweenValues runs tiled. See rank.Engine.
func (d *Driver) MeanBetweenValues(ctx rank.Context, src *matrix.Dense, low, high rank.Arg, pat *pattern.Pattern, filler float64) (*matrix.Dense, error) {
	p, err := d.eng.MeanBetweenValuesProc(low, high, pat, filler)
	if err != nil {
		return nil, err
	}

	return d.Run(ctx, p, src)
}

// FunctionOfPercentilePair runs tiled. See rank.Engine.
func (d *Driver) FunctionOfPercentilePair(ctx rank.Context, src *matrix.Dense, from, to rank.Arg, pat *pattern.Pattern, fn rank.PairFunc) (*matrix.Dense, error) {
	p, err := d.eng.FunctionOfPercentilePairProc(from, to, pat, fn)
	if err != nil {
		return nil, err
	}

	return d.Run(ctx, p, src)
}

// Mean runs the aperture mean tiled. See rank.Engine.
func (d *Driver) Mean(ctx rank.Context, src *matrix.Dense, pat *pattern.Pattern) (*matrix.Dense, error) {
	p, err := d.eng.MeanProc(pat)
	if err != nil {
		return nil, err
	}

	return d.Run(ctx, p, src)
}

// FunctionOfSum runs tiled. See rank.Engine.
func (d *Driver) FunctionOfSum(ctx rank.Context, src *matrix.Dense, pat *pattern.Pattern, fn rank.Func) (*matrix.Dense, error) {
	p, err := d.eng.FunctionOfSumProc(pat, fn)
	if err != nil {
		return nil, err
	}

	return d.Run(ctx, p, src)
}

// Dilation runs the dilation adapter tiled. See rank.Engine.
func (d *Driver) Dilation(ctx rank.Context, src *matrix.Dense, pat *pattern.Pattern, level float64) (*matrix.Dense, error) {
	if src == nil {
		return nil, fmt.Errorf("tiling: source: %w", rank.ErrNilArgument)
	}
	idx, err := d.eng.DilationIndex(src.ElemType(), pat, level)
	if err != nil {
		return nil, err
	}

	return d.Percentile(ctx, src, rank.Scalar(idx), pat)
}

// Erosion runs the erosion adapter tiled. See rank.Engine.
func (d *Driver) Erosion(ctx rank.Context, src *matrix.Dense, pat *pattern.Pattern, level float64) (*matrix.Dense, error) {
	if src == nil {
		return nil, fmt.Errorf("tiling: source: %w", rank.ErrNilArgument)
	}
	idx, err := d.eng.DilationIndex(src.ElemType(), pat, level)
	if err != nil {
		return nil, err
	}

	return d.Percentile(ctx, src, rank.Scalar(idx), pat.Symmetric())
}
