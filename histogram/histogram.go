package histogram

import (
	"fmt"
)

// level is one resolution of the multi-level count tree. Blocks of
// 2^shift adjacent bins share a counter and a value-weighted sum, so rank
// queries can skip whole blocks instead of scanning bins.
type level struct {
	shift uint    // bins per block = 1 << shift
	cnt   []int64 // per-block sample counts
	wsum  []int64 // per-block Σ j·b[j]
}

// Hist is a fixed-length histogram of quantized sample values with O(levels)
// add/remove and rank/value/integral queries in both interpolation models.
//
// The invariant maintained by the streaming scan: Total() equals the aperture
// point count, and bin j counts the aperture points whose quantized value is j.
type Hist struct {
	bits   int     // resolution μ
	size   int     // bin count M = 1 << μ
	bins   []int64 // b[0..M)
	levels []level // coarse to fine (ascending level bits)
	total  int64   // Σ b[j]
	wsum   int64   // Σ j·b[j], kept for O(1) full integrals
}

// New creates an empty histogram with 2^bits bins and the given acceleration
// tree levels. Each tree level λ must satisfy 0 < λ < bits and the list must
// be strictly increasing; an empty list yields a plain flat histogram.
// Complexity: O(M) memory.
func New(bits int, treeLevels []int) (*Hist, error) {
	if bits < 0 || bits > MaxBits {
		return nil, fmt.Errorf("histogram.New: μ=%d: %w", bits, ErrBadBits)
	}
	prev := 0
	for _, lv := range treeLevels {
		if lv <= prev || lv >= bits {
			return nil, fmt.Errorf("histogram.New: level %d for μ=%d: %w", lv, bits, ErrBadLevels)
		}
		prev = lv
	}

	h := &Hist{
		bits:   bits,
		size:   1 << uint(bits),
		levels: make([]level, 0, len(treeLevels)),
	}
	h.bins = make([]int64, h.size)
	for _, lv := range treeLevels {
		h.levels = append(h.levels, level{
			shift: uint(bits - lv),
			cnt:   make([]int64, 1<<uint(lv)),
			wsum:  make([]int64, 1<<uint(lv)),
		})
	}

	return h, nil
}

// Bits returns the resolution μ. Complexity: O(1).
func (h *Hist) Bits() int { return h.bits }

// Size returns the bin count M = 2^μ. Complexity: O(1).
func (h *Hist) Size() int { return h.size }

// Total returns the current sample count N. Complexity: O(1).
func (h *Hist) Total() int64 { return h.total }

// Count returns the count of bin a. Complexity: O(1).
func (h *Hist) Count(a int) int64 { return h.bins[a] }

// Add inserts one sample with quantized value a ∈ [0, M).
// Complexity: O(levels).
func (h *Hist) Add(a int) {
	h.bins[a]++
	h.total++
	h.wsum += int64(a)
	for i := range h.levels {
		b := a >> h.levels[i].shift
		h.levels[i].cnt[b]++
		h.levels[i].wsum[b] += int64(a)
	}
}

// Remove deletes one sample with quantized value a ∈ [0, M). Removing from an
// empty bin is an invariant violation and panics.
// Complexity: O(levels).
func (h *Hist) Remove(a int) {
	if h.bins[a] == 0 {
		panic(fmt.Sprintf("histogram: remove from empty bin %d", a))
	}
	h.bins[a]--
	h.total--
	h.wsum -= int64(a)
	for i := range h.levels {
		b := a >> h.levels[i].shift
		h.levels[i].cnt[b]--
		h.levels[i].wsum[b] -= int64(a)
	}
}

// CountBelow returns C(j): the number of samples in bins 0..j−1.
// Complexity: O(levels · branching).
func (h *Hist) CountBelow(j int) int64 {
	if j <= 0 {
		return 0
	}
	if j >= h.size {
		return h.total
	}
	cnt, _ := h.prefix(j)

	return cnt
}

// prefix returns the count and value-weighted sum of bins 0..j−1 using the
// tree: whole blocks below j are consumed per level, then the remaining bins
// of the finest partial block are scanned.
func (h *Hist) prefix(j int) (cnt, w int64) {
	lo := 0
	for _, lv := range h.levels {
		hi := j >> lv.shift
		for b := lo >> lv.shift; b < hi; b++ {
			cnt += lv.cnt[b]
			w += lv.wsum[b]
		}
		lo = hi << lv.shift
	}
	for k := lo; k < j; k++ {
		cnt += h.bins[k]
		w += int64(k) * h.bins[k]
	}

	return cnt, w
}

// findCountingBin locates the bin of the sample with zero-based rank t:
// the least bin w whose cumulative count through w exceeds t. below is C(w).
// Requires 0 ≤ t < Total.
func (h *Hist) findCountingBin(t int64) (bin int, below int64) {
	lo := 0
	for _, lv := range h.levels {
		b := lo >> lv.shift
		for below+lv.cnt[b] <= t {
			below += lv.cnt[b]
			b++
		}
		lo = b << int(lv.shift)
	}
	for below+h.bins[lo] <= t {
		below += h.bins[lo]
		lo++
	}

	return lo, below
}

// findRankBin locates the least bin j whose cumulative count through j
// reaches the real rank r: C(j) < r ≤ C(j)+b[j] for r > 0, j = 0 for r ≤ 0.
// It also returns C(j) and the value-weighted sum below j.
// Requires r ≤ Total.
func (h *Hist) findRankBin(r float64) (bin int, below, wbelow int64) {
	lo := 0
	for _, lv := range h.levels {
		b := lo >> lv.shift
		for float64(below+lv.cnt[b]) < r {
			below += lv.cnt[b]
			wbelow += lv.wsum[b]
			b++
		}
		lo = b << int(lv.shift)
	}
	for float64(below+h.bins[lo]) < r {
		below += h.bins[lo]
		wbelow += int64(lo) * h.bins[lo]
		lo++
	}

	return lo, below, wbelow
}
