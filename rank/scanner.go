package rank

import (
	"math"

	"github.com/katalvlaran/rankmorph/histogram"
	"github.com/katalvlaran/rankmorph/matrix"
	"github.com/katalvlaran/rankmorph/pattern"
)

// accum consumes aperture values as the sliding window advances. Fixed-point
// in-range reads arrive through the exact integer path; continuation fills
// and floating reads arrive as float64.
type accum interface {
	addLong(v int64)
	removeLong(v int64)
	addDouble(v float64)
	removeDouble(v float64)
}

// histAccum maintains the quantized-value histogram of the current aperture.
type histAccum struct {
	h      *histogram.Hist
	shift  uint    // β − μ for fixed-point sources
	sigma  float64 // scale factor σ
	maxBin int     // M − 1
}

func (a *histAccum) addLong(v int64)    { a.h.Add(int(v >> a.shift)) }
func (a *histAccum) removeLong(v int64) { a.h.Remove(int(v >> a.shift)) }

// quantize maps a real value to its bin: clamp(⌊max(0,v)·σ⌋, 0, M−1).
// NaN quantizes to 0 by convention.
func (a *histAccum) quantize(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	q := int(v * a.sigma)
	if q > a.maxBin {
		q = a.maxBin
	}

	return q
}

func (a *histAccum) addDouble(v float64)    { a.h.Add(a.quantize(v)) }
func (a *histAccum) removeDouble(v float64) { a.h.Remove(a.quantize(v)) }

// sumAccum maintains the running aperture sum for the aperture-sum
// characteristics: an exact int64 part for fixed-point reads plus a float64
// part for floating reads and continuation fills.
type sumAccum struct {
	li int64
	fl float64
}

func (a *sumAccum) addLong(v int64)         { a.li += v }
func (a *sumAccum) removeLong(v int64)      { a.li -= v }
func (a *sumAccum) addDouble(v float64)     { a.fl += v }
func (a *sumAccum) removeDouble(v float64)  { a.fl -= v }
func (a *sumAccum) value() float64          { return float64(a.li) + a.fl }

// scanner slides an aperture over an output index space in row-major order
// (axis 0 innermost), keeping an accumulator in sync so that after every step
// it holds exactly the values {win[anchor − q] : q ∈ Q} for the engine
// pattern Q, with out-of-window reads resolved by the view's continuation.
//
// Per-axis enters/leaves sets are the exact multiset differences
// ent = {q : q − e ∉ Q} and lea = {q : q + e ∉ Q}, which stay correct for
// patterns with gaps along the axis. Row wraps carry the accumulator by
// rewinding the exhausted axes with backward slides and stepping the next
// axis once.
type scanner struct {
	view  *matrix.Continued
	win   *matrix.Dense
	fixed bool
	acc   accum

	n       int
	outDims []int
	pos     []int // current output position, in [0, outDims)
	anchor  []int // pos + rel: the aperture anchor in window coordinates

	pts    [][]int // engine pattern points q
	ptsLin []int   // window-linear offsets of pts
	ent    [][][]int
	entLin [][]int
	lea    [][][]int
	leaLin [][]int

	winDims    []int
	winStrides []int
	loIn, hiIn []int // anchor range with the whole aperture inside the window
	buf        []int // scratch coordinate tuple
}

// newScanner prepares a scan of outDims output positions whose aperture
// anchors start at rel in window coordinates.
func newScanner(view *matrix.Continued, outDims, rel []int, eng *pattern.Pattern, acc accum, fixed bool) *scanner {
	win := view.Matrix()
	s := &scanner{
		view:       view,
		win:        win,
		fixed:      fixed,
		acc:        acc,
		n:          eng.DimCount(),
		outDims:    outDims,
		pos:        make([]int, len(outDims)),
		anchor:     append([]int(nil), rel...),
		pts:        eng.Points(),
		winDims:    win.Dims(),
		winStrides: win.Strides(),
		buf:        make([]int, eng.DimCount()),
	}

	// Window-linear offsets of every pattern point.
	s.ptsLin = make([]int, len(s.pts))
	for i, q := range s.pts {
		s.ptsLin[i] = dot(q, s.winStrides)
	}

	// Per-axis enters/leaves via exact membership differences.
	s.ent = make([][][]int, s.n)
	s.entLin = make([][]int, s.n)
	s.lea = make([][][]int, s.n)
	s.leaLin = make([][]int, s.n)
	probe := make([]int, s.n)
	for axis := 0; axis < s.n; axis++ {
		for i, q := range s.pts {
			copy(probe, q)
			probe[axis] = q[axis] - 1
			if !eng.Contains(probe) {
				s.ent[axis] = append(s.ent[axis], q)
				s.entLin[axis] = append(s.entLin[axis], s.ptsLin[i])
			}
			probe[axis] = q[axis] + 1
			if !eng.Contains(probe) {
				s.lea[axis] = append(s.lea[axis], q)
				s.leaLin[axis] = append(s.leaLin[axis], s.ptsLin[i])
			}
		}
	}

	// Interior anchor range: every read anchor − q lands inside the window.
	qmin, qmax := eng.BoundingBox()
	s.loIn = make([]int, s.n)
	s.hiIn = make([]int, s.n)
	for k := 0; k < s.n; k++ {
		s.loIn[k] = qmax[k]
		s.hiIn[k] = s.winDims[k] - 1 + qmin[k]
	}

	return s
}

// interior reports whether the whole aperture at the current anchor reads
// inside the window, enabling the direct linear-offset path.
func (s *scanner) interior() bool {
	for k := 0; k < s.n; k++ {
		if s.anchor[k] < s.loIn[k] || s.anchor[k] > s.hiIn[k] {
			return false
		}
	}

	return true
}

// feedSet pushes (or pulls) the values read at anchor − q for every q in pts.
func (s *scanner) feedSet(pts [][]int, lins []int, add bool) {
	if s.interior() {
		// Direct fast path: constant linear offsets from the anchor.
		base := dot(s.anchor, s.winStrides)
		if s.fixed {
			for _, l := range lins {
				if v := s.win.GetLong(base - l); add {
					s.acc.addLong(v)
				} else {
					s.acc.removeLong(v)
				}
			}
		} else {
			for _, l := range lins {
				if v := s.win.GetDouble(base - l); add {
					s.acc.addDouble(v)
				} else {
					s.acc.removeDouble(v)
				}
			}
		}

		return
	}

	// Generic path through the continuation view.
	for _, q := range pts {
		for k := 0; k < s.n; k++ {
			s.buf[k] = s.anchor[k] - q[k]
		}
		idx, ok := s.view.Resolve(s.buf)
		switch {
		case !ok:
			if add {
				s.acc.addDouble(s.view.Fill())
			} else {
				s.acc.removeDouble(s.view.Fill())
			}
		case s.fixed:
			if add {
				s.acc.addLong(s.win.GetLong(idx))
			} else {
				s.acc.removeLong(s.win.GetLong(idx))
			}
		default:
			if add {
				s.acc.addDouble(s.win.GetDouble(idx))
			} else {
				s.acc.removeDouble(s.win.GetDouble(idx))
			}
		}
	}
}

// slideFwd advances the anchor one step along axis: aperture values leaving
// at the old position are removed, values entering at the new one are added.
func (s *scanner) slideFwd(axis int) {
	s.feedSet(s.lea[axis], s.leaLin[axis], false)
	s.anchor[axis]++
	s.pos[axis]++
	s.feedSet(s.ent[axis], s.entLin[axis], true)
}

// slideBack is the mirror of slideFwd.
func (s *scanner) slideBack(axis int) {
	s.feedSet(s.ent[axis], s.entLin[axis], false)
	s.anchor[axis]--
	s.pos[axis]--
	s.feedSet(s.lea[axis], s.leaLin[axis], true)
}

// centerValue reads the source value at the aperture anchor.
func (s *scanner) centerValue() float64 {
	return s.view.GetDouble(s.anchor)
}

// run traverses the output space in row-major order, calling emit once per
// position. Cancellation and progress are checked at every row boundary.
func (s *scanner) run(ctx Context, emit func() error) error {
	total := 1
	for _, d := range s.outDims {
		total *= d
	}

	s.feedSet(s.pts, s.ptsLin, true)
	if err := emit(); err != nil {
		return err
	}
	for i := 1; i < total; i++ {
		axis := 0
		for s.pos[axis] == s.outDims[axis]-1 {
			axis++
		}
		if axis > 0 {
			// Row boundary: checkpoint, then carry the accumulator.
			if ctx.IsCancelled() {
				return ErrCancelled
			}
			ctx.Report(float64(i) / float64(total))
			for a := 0; a < axis; a++ {
				for s.pos[a] > 0 {
					s.slideBack(a)
				}
			}
		}
		s.slideFwd(axis)
		if err := emit(); err != nil {
			return err
		}
	}

	return nil
}

// dot is the linear combination of a coordinate tuple with a stride schedule.
func dot(coords, strides []int) int {
	idx := 0
	for k, c := range coords {
		idx += c * strides[k]
	}

	return idx
}
