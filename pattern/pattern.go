package pattern

import (
	"encoding/binary"
	"fmt"
)

// Pattern is a finite, non-empty set of integer displacement vectors in n
// dimensions. It is immutable once built; Points returns deep copies.
type Pattern struct {
	n      int
	points [][]int
	min    []int // per-axis bounding-box minimum
	max    []int // per-axis bounding-box maximum
	member map[string]struct{}
}

// New builds a pattern from a set of displacement vectors. Duplicate points
// collapse to one. The input slices are copied.
// Stage 1 (Validate): non-empty input, uniform arity, point cap.
// Stage 2 (Prepare): deduplicate and copy points.
// Stage 3 (Finalize): bounding box and membership index.
// Complexity: O(N·n) time and memory.
func New(points [][]int) (*Pattern, error) {
	// Stage 1: validate.
	if len(points) == 0 {
		return nil, fmt.Errorf("pattern.New: %w", ErrNoPoints)
	}
	if len(points) > MaxPoints {
		return nil, fmt.Errorf("pattern.New: %d points: %w", len(points), ErrTooManyPoints)
	}
	n := len(points[0])
	if n == 0 {
		return nil, fmt.Errorf("pattern.New: zero-dimensional point: %w", ErrMixedDimensions)
	}
	for _, pt := range points {
		if len(pt) != n {
			return nil, fmt.Errorf("pattern.New: point arity %d vs %d: %w", len(pt), n, ErrMixedDimensions)
		}
	}

	// Stage 2: deduplicate while copying.
	p := &Pattern{
		n:      n,
		points: make([][]int, 0, len(points)),
		min:    make([]int, n),
		max:    make([]int, n),
		member: make(map[string]struct{}, len(points)),
	}
	for _, pt := range points {
		k := key(pt)
		if _, dup := p.member[k]; dup {
			continue
		}
		p.member[k] = struct{}{}
		p.points = append(p.points, append([]int(nil), pt...))
	}

	// Stage 3: bounding box over the deduplicated set.
	copy(p.min, p.points[0])
	copy(p.max, p.points[0])
	for _, pt := range p.points[1:] {
		for k, c := range pt {
			if c < p.min[k] {
				p.min[k] = c
			}
			if c > p.max[k] {
				p.max[k] = c
			}
		}
	}

	return p, nil
}

// DimCount returns the dimension count n. Complexity: O(1).
func (p *Pattern) DimCount() int { return p.n }

// PointCount returns the number of distinct points N. Complexity: O(1).
func (p *Pattern) PointCount() int { return len(p.points) }

// Points returns a deep copy of the point set (order unspecified but stable
// per instance). Complexity: O(N·n).
func (p *Pattern) Points() [][]int {
	out := make([][]int, len(p.points))
	for i, pt := range p.points {
		out[i] = append([]int(nil), pt...)
	}

	return out
}

// Contains reports whether the displacement vector pt belongs to the pattern.
// Complexity: O(n).
func (p *Pattern) Contains(pt []int) bool {
	if len(pt) != p.n {
		return false
	}
	_, ok := p.member[key(pt)]

	return ok
}

// Symmetric returns the point-reflected pattern {−p : p ∈ P}.
// Complexity: O(N·n).
func (p *Pattern) Symmetric() *Pattern {
	pts := make([][]int, len(p.points))
	for i, pt := range p.points {
		neg := make([]int, p.n)
		for k, c := range pt {
			neg[k] = -c
		}
		pts[i] = neg
	}
	sym, err := New(pts)
	if err != nil {
		// New cannot fail on a reflection of a valid pattern.
		panic(err)
	}

	return sym
}

// BoundingBox returns copies of the per-axis minimum and maximum offsets.
// Complexity: O(n).
func (p *Pattern) BoundingBox() (min, max []int) {
	return append([]int(nil), p.min...), append([]int(nil), p.max...)
}

// String implements fmt.Stringer.
func (p *Pattern) String() string {
	return fmt.Sprintf("Pattern[%d points, %dD, box %v..%v]", len(p.points), p.n, p.min, p.max)
}

// Box builds the full rectangular parallelepiped of points with
// min[k] ≤ p[k] ≤ max[k] on every axis.
// Complexity: O(V·n) where V is the box volume.
func Box(min, max []int) (*Pattern, error) {
	if len(min) == 0 || len(min) != len(max) {
		return nil, fmt.Errorf("pattern.Box: arity %d vs %d: %w", len(min), len(max), ErrMixedDimensions)
	}
	n := len(min)
	volume := 1
	for k := 0; k < n; k++ {
		if max[k] < min[k] {
			return nil, fmt.Errorf("pattern.Box: axis %d: %w", k, ErrBadBox)
		}
		side := max[k] - min[k] + 1
		if volume > MaxPoints/side {
			return nil, fmt.Errorf("pattern.Box: %w", ErrTooManyPoints)
		}
		volume *= side
	}

	// Enumerate the box in row-major order (axis 0 fastest).
	pts := make([][]int, 0, volume)
	cur := append([]int(nil), min...)
	for {
		pts = append(pts, append([]int(nil), cur...))
		axis := 0
		for axis < n {
			cur[axis]++
			if cur[axis] <= max[axis] {
				break
			}
			cur[axis] = min[axis]
			axis++
		}
		if axis == n {
			break
		}
	}

	return New(pts)
}

// Line builds a 1-point-thick segment along the given axis of an n-D space,
// covering offsets from..to inclusive on that axis and 0 elsewhere.
// Complexity: O(|to−from|·n).
func Line(n, axis, from, to int) (*Pattern, error) {
	if axis < 0 || axis >= n {
		return nil, fmt.Errorf("pattern.Line: axis %d of %d: %w", axis, n, ErrBadAxis)
	}
	if to < from {
		from, to = to, from
	}
	if to-from+1 > MaxPoints {
		return nil, fmt.Errorf("pattern.Line: %w", ErrTooManyPoints)
	}
	pts := make([][]int, 0, to-from+1)
	for c := from; c <= to; c++ {
		pt := make([]int, n)
		pt[axis] = c
		pts = append(pts, pt)
	}

	return New(pts)
}

// key packs a point into a map key.
func key(pt []int) string {
	buf := make([]byte, 8*len(pt))
	for k, c := range pt {
		binary.LittleEndian.PutUint64(buf[8*k:], uint64(int64(c)))
	}

	return string(buf)
}
