// Package rank is the streaming rank characteristic engine: it slides a
// structuring element across an n-D matrix, maintains the aperture histogram
// incrementally, and computes one characteristic per position.
//
// What:
//
//   - Engine — the validated facade: Percentile, Rank,
//     MeanBetweenPercentiles, MeanBetweenValues, FunctionOfPercentilePair,
//     Mean, FunctionOfSum, plus Dilation/Erosion as percentile adapters with
//     index level·(N−1).
//   - Proc — one operation bound to its pattern and arguments, re-entrant
//     across tiles; RunWindow is the hook tiling drivers call.
//   - Arg — a scalar or a per-position matrix argument; the two behave
//     identically (a scalar is a constant matrix).
//   - Precision — histogram resolution descriptor: bit levels plus the
//     simple/precise model flag.
//   - Context — cooperative cancellation and progress, polled at least once
//     per output row.
//
// Why:
//
//   - Recomputing a histogram per position costs O(N) per pixel; the
//     streaming scan pays only for the aperture boundary that enters and
//     leaves on each step, with a direct-offset fast path away from matrix
//     edges.
//
// Aperture convention:
//
//   - The aperture of position x is {src[x+p] : p ∈ P}. Internally the
//     scanner keeps {src[x−q] : q ∈ P.Symmetric()}, the same multiset.
//     Out-of-range reads follow the engine's continuation mode.
//
// Complexity:
//
//   - O(len · (|enters|+|leaves|) · levels) per run; scratch is
//     O(M + Σ bins-at-level + |pattern|), no per-pixel allocation.
//
// Errors:
//
//   - ErrNilArgument, ErrDimensionMismatch, ErrBadPrecision, ErrBadLevel,
//     ErrInvalidNumericArgument, ErrCancelled; pattern construction errors
//     surface from package pattern.
package rank
