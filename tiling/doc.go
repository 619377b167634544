// Package tiling runs rank operations over arbitrarily large matrices by
// splitting the destination into rectangular tiles with halo'd source
// windows.
//
// What:
//
//   - Driver — composes a rank.Engine with a tiler configuration and mirrors
//     the engine's operation set (Percentile, Rank, MeanBetween*,
//     FunctionOf*, Mean, Dilation, Erosion) plus a generic Run for custom
//     procs.
//   - Each tile's read halo is the Minkowski sum of the tile box with the
//     proc's dependence aperture; out-of-matrix parts of the window are
//     materialized through the engine's continuation mode, so tiled and
//     non-tiled runs produce identical destinations.
//   - Tiles run sequentially in row-major order, or concurrently on up to
//     Workers goroutines (per-tile output stays deterministic; tile order is
//     then unspecified).
//
// Why:
//
//   - The streaming engine needs O(M) scratch per scan; tiling caps peak
//     memory by window size and enables parallelism without locking: tiles
//     write disjoint destination rectangles.
//
// Errors:
//
//   - ErrNilEngine, ErrNilProc, ErrBadTileDims, ErrBadWorkers, ErrOutOfRange
//     (halo overflow, raised before allocation); validation and cancellation
//     errors surface from package rank. Per-tile failures abort the whole
//     call wrapped with the tile origin.
package tiling
