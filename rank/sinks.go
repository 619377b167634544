package rank

import (
	"fmt"
	"math"

	"github.com/katalvlaran/rankmorph/histogram"
	"github.com/katalvlaran/rankmorph/matrix"
)

// The five rank characteristic sinks plus the two aperture-sum wrappers.
// Every sink is a closure over the live accumulator state: given the global
// linear index of the current output position (for per-point arguments), it
// returns the real characteristic value. The facade casts that value into
// the destination element type.

// sinkState couples an accumulator with the characteristic computed from it.
type sinkState struct {
	acc  accum
	sc   *scanner // set by runView after the scanner exists
	sink func(gl int) (float64, error)
}

// argReader compiles an Arg into a per-position reader. Scalars were
// NaN-checked at Proc construction; per-point reads are NaN-checked here.
func argReader(a Arg) func(gl int) (float64, error) {
	if !a.perPoint() {
		v := a.v

		return func(int) (float64, error) { return v, nil }
	}
	m := a.m

	return func(gl int) (float64, error) {
		v := m.GetDouble(gl)
		if math.IsNaN(v) {
			return 0, fmt.Errorf("rank: per-point argument at index %d: %w", gl, ErrInvalidNumericArgument)
		}

		return v, nil
	}
}

// newSinkState builds the accumulator and the sink closure for the Proc's
// characteristic against a source element type.
func (p *Proc) newSinkState(elem matrix.ElemType) (*sinkState, error) {
	mu, levels, sigma := p.eng.opts.Precision.params(elem)
	interp := p.eng.opts.Precision.Interpolated
	fixed := !elem.IsFloat()
	n := float64(p.pat.PointCount())
	st := &sinkState{}

	// Aperture-sum family: no histogram, just the running sum.
	if p.kind == opMean || p.kind == opFunctionOfSum {
		sum := &sumAccum{}
		st.acc = sum
		switch p.kind {
		case opMean:
			delta := 0.0
			if fixed {
				delta = 0.5 // round-to-nearest on fixed-point destinations
			}
			st.sink = func(int) (float64, error) { return sum.value()/n + delta, nil }
		case opFunctionOfSum:
			fn := p.fn
			st.sink = func(int) (float64, error) { return fn(sum.value()), nil }
		}

		return st, nil
	}

	h, err := histogram.New(mu, levels)
	if err != nil {
		return nil, fmt.Errorf("rank: %v: %w", err, ErrBadPrecision)
	}
	shift := 0
	if fixed {
		shift = elem.BitWidth() - mu
	}
	st.acc = &histAccum{h: h, shift: uint(shift), sigma: sigma, maxBin: h.Size() - 1}

	// Model-resolved histogram queries.
	value := func(r float64) float64 {
		if interp {
			return h.PreciseValue(r)
		}

		return float64(h.Value(int64(math.Floor(r))))
	}
	rankOf := func(q float64) float64 {
		if interp {
			return h.PreciseRank(q)
		}

		return h.Rank(q)
	}
	integral := func(r float64) float64 {
		if interp {
			return h.PreciseIntegral(r)
		}

		return h.Integral(r)
	}
	integralUpTo := func(q float64) float64 {
		if interp {
			return h.PreciseIntegralUpTo(q)
		}

		return h.IntegralUpTo(q)
	}

	switch p.kind {
	case opPercentile:
		idx := argReader(p.args[0])
		st.sink = func(gl int) (float64, error) {
			r, err := idx(gl)
			if err != nil {
				return 0, err
			}

			return value(r) / sigma, nil
		}

	case opRank:
		val := argReader(p.args[0])
		st.sink = func(gl int) (float64, error) {
			v, err := val(gl)
			if err != nil {
				return 0, err
			}

			return rankOf(v * sigma), nil
		}

	case opMeanBetweenPercentiles:
		from, to := argReader(p.args[0]), argReader(p.args[1])
		fill := p.fill
		st.sink = func(gl int) (float64, error) {
			r1, err := from(gl)
			if err != nil {
				return 0, err
			}
			r2, err := to(gl)
			if err != nil {
				return 0, err
			}
			if !(r1 < r2) {
				return fill, nil
			}

			return (integral(r2) - integral(r1)) / ((r2 - r1) * sigma), nil
		}

	case opMeanBetweenValues:
		low, high := argReader(p.args[0]), argReader(p.args[1])
		fill := p.fill
		st.sink = func(gl int) (float64, error) {
			v1, err := low(gl)
			if err != nil {
				return 0, err
			}
			v2, err := high(gl)
			if err != nil {
				return 0, err
			}
			q1, q2 := v1*sigma, v2*sigma
			rho1, rho2 := rankOf(q1), rankOf(q2)
			if v1 < v2 && rho1 < rho2 {
				return (integralUpTo(q2) - integralUpTo(q1)) / ((rho2 - rho1) * sigma), nil
			}

			return meanBetweenValuesCorner(fill, v1, v2, rho1, rho2, float64(h.Total())), nil
		}

	case opFunctionOfPercentilePair:
		from, to := argReader(p.args[0]), argReader(p.args[1])
		fn := p.pfn
		st.sink = func(gl int) (float64, error) {
			r1, err := from(gl)
			if err != nil {
				return 0, err
			}
			r2, err := to(gl)
			if err != nil {
				return 0, err
			}

			return fn(st.sc.centerValue(), value(r1)/sigma, value(r2)/sigma), nil
		}
	}

	return st, nil
}

// meanBetweenValuesCorner resolves the empty-range result by filler sentinel:
// a finite filler is returned verbatim; FillMinValue yields v₁, FillMaxValue
// yields v₂; FillNearestValue yields the midpoint for inverted bounds
// (v₁ ≥ v₂), else the bound all samples sit beyond, or the midpoint when
// neither side is one-sided.
func meanBetweenValuesCorner(fill, v1, v2, rho1, rho2, total float64) float64 {
	switch {
	case math.IsInf(fill, -1):
		return v1
	case math.IsInf(fill, 1):
		return v2
	case !math.IsNaN(fill):
		return fill
	}

	// FillNearestValue.
	switch {
	case v1 >= v2:
		return (v1 + v2) / 2
	case rho1 == rho2 && rho1 == 0:
		return v2
	case rho1 == rho2 && rho1 == total:
		return v1
	default:
		return (v1 + v2) / 2
	}
}
