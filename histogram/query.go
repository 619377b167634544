package histogram

// Queries over the current bin state, in two interpolation models.
//
// Simple model: samples are atoms; the value of rank r is the bin of the
// ⌊r⌋-th sorted sample, and the sorted-sequence integral prices every sample
// at its bin centroid j+0.5.
//
// Precise model: each bin's mass is distributed uniformly across the unit
// interval centred on its value, giving a continuous piecewise-linear CDF
// R(v) = C(⌊u⌋) + frac(u)·b[⌊u⌋] with u = v + 0.5. Rank queries evaluate R,
// value queries invert it (smallest w ≥ 0 with R(w) ≥ r), and integrals run
// along the piecewise-linear inverse.

// Value returns the simple-model value of integer rank r: the least bin w
// whose cumulative count exceeds r. r is clamped into [0, N−1]; an empty
// histogram yields 0.
// Complexity: O(levels · branching).
func (h *Hist) Value(r int64) int {
	if h.total == 0 {
		return 0
	}
	if r < 0 {
		r = 0
	} else if r >= h.total {
		r = h.total - 1
	}
	bin, _ := h.findCountingBin(r)

	return bin
}

// PreciseValue returns the precise-model value of real rank r: the smallest
// w ≥ 0 with R(w) ≥ r. r is clamped into [0, N]; an empty histogram yields 0.
// Complexity: O(levels · branching).
func (h *Hist) PreciseValue(r float64) float64 {
	if h.total == 0 || r <= 0 {
		return 0
	}
	if r > float64(h.total) {
		r = float64(h.total)
	}
	bin, below, _ := h.findRankBin(r)

	// Inside bin `bin` the CDF ramps from C over b[bin]; u is the ramp point.
	u := float64(bin) + (r-float64(below))/float64(h.bins[bin])
	w := u - 0.5
	if w < 0 {
		w = 0
	}

	return w
}

// Rank returns the simple-model rank of real value v: the count of samples
// in bins below ⌊v⌋ plus the fractional share of bin ⌊v⌋.
// Complexity: O(levels · branching).
func (h *Hist) Rank(v float64) float64 {
	if v <= 0 || h.total == 0 {
		return 0
	}
	if v >= float64(h.size) {
		return float64(h.total)
	}
	j := int(v)

	return float64(h.CountBelow(j)) + (v-float64(j))*float64(h.bins[j])
}

// PreciseRank returns the precise-model rank R(v).
// Complexity: O(levels · branching).
func (h *Hist) PreciseRank(v float64) float64 {
	if h.total == 0 {
		return 0
	}
	u := v + 0.5
	if u <= 0 {
		return 0
	}
	if u >= float64(h.size) {
		return float64(h.total)
	}
	j := int(u)

	return float64(h.CountBelow(j)) + (u-float64(j))*float64(h.bins[j])
}

// Integral returns the simple-model S(r): the integral of the sorted-sample
// value sequence from rank 0 to rank r, pricing samples at bin centroids.
// r is clamped into [0, N].
// Complexity: O(levels · branching); S(N) is O(1) via running totals.
func (h *Hist) Integral(r float64) float64 {
	if h.total == 0 || r <= 0 {
		return 0
	}
	if r >= float64(h.total) {
		// Σ (j+0.5)·b[j] from the running totals.
		return float64(h.wsum) + 0.5*float64(h.total)
	}
	bin, below, wbelow := h.findRankBin(r)
	t := r - float64(below) // partial mass inside `bin`

	return float64(wbelow) + 0.5*float64(below) + t*(float64(bin)+0.5)
}

// PreciseIntegral returns the precise-model S(r): the integral of the
// piecewise-linear inverse CDF from rank 0 to rank r. A whole bin j
// contributes exactly j·b[j]. r is clamped into [0, N].
// Complexity: O(levels · branching); S(N) is O(1) via running totals.
func (h *Hist) PreciseIntegral(r float64) float64 {
	if h.total == 0 || r <= 0 {
		return 0
	}
	if r >= float64(h.total) {
		return float64(h.wsum)
	}
	bin, below, wbelow := h.findRankBin(r)
	t := r - float64(below)
	if t == 0 || h.bins[bin] == 0 {
		return float64(wbelow)
	}
	b := float64(h.bins[bin])

	// ∫₀ᵗ (bin − ½ + u/b) du over the ramp of bin `bin`.
	return float64(wbelow) + t*(float64(bin)-0.5) + t*t/(2*b)
}

// IntegralUpTo returns the simple-model s(v) = S(r(v)).
// Complexity: O(levels · branching).
func (h *Hist) IntegralUpTo(v float64) float64 {
	return h.Integral(h.Rank(v))
}

// PreciseIntegralUpTo returns the precise-model s(v) = S(R(v)).
// Complexity: O(levels · branching).
func (h *Hist) PreciseIntegralUpTo(v float64) float64 {
	return h.PreciseIntegral(h.PreciseRank(v))
}
