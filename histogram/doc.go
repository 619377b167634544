// Package histogram implements the fixed-length, multi-level histogram at
// the core of the rank characteristic engine.
//
// What:
//
//   - Hist — 2^μ bins of quantized sample values with O(levels) Add/Remove,
//     kept in sync with a sliding aperture by the streaming scan.
//   - A multi-level count tree: level λ groups bins into blocks of 2^(μ−λ)
//     with per-block counts and value-weighted sums, so rank and integral
//     queries skip whole blocks instead of scanning bins.
//   - Dual queries in two interpolation models:
//     Value/Rank/Integral (simple, piecewise-constant) and
//     PreciseValue/PreciseRank/PreciseIntegral (piecewise-linear CDF).
//
// Why:
//
//   - Percentile and rank are dual views of the sorted aperture; mean-between
//     characteristics are differences of the sorted-sequence integral S(r).
//     All of them reduce to the queries here.
//
// Complexity:
//
//   - Add/Remove: O(levels). Queries: O(Σ per-level branching), effectively
//     O(log M) for evenly spaced levels. S(N) − S(0): O(1) via running totals.
//
// Determinism:
//
//   - Integer queries of the simple model are bit-exact; precise-model
//     queries are deterministic up to floating-point round-off in the last
//     place, identically on every platform.
//
// Errors:
//
//   - ErrBadBits, ErrBadLevels.
package histogram
