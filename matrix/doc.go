// Package matrix provides the n-dimensional dense numeric arrays underlying
// every rankmorph layer, together with the quantization model, the saturating
// result casts, and the boundary continuation views.
//
// What:
//
//   - Dense — a flat row-major n-D array over a closed element-type set:
//     bit, byte, char (16-bit unit), short, int, long, float, double.
//     Fixed-point types are read as non-negative integers; axis 0 is the
//     fastest-varying axis.
//   - ElemType — per-type metadata: bit width β, nominal maximum V_max,
//     floating-point flag.
//   - SetDouble / CastValue — saturating result casts: clamp to [0, V_max],
//     truncate toward zero, 0/1 for one-bit destinations.
//   - Continued — a read-only view resolving arbitrary coordinates under a
//     Continuation mode: pseudo-cyclic, cyclic, mirror, constant(c), nearest.
//
// Why:
//
//   - The rank engine treats every source uniformly through GetLong/GetDouble
//     plus the scale factor σ, regardless of storage width.
//   - Continuations decide what an aperture reads beyond the matrix edge; the
//     tiling driver uses the same views to assemble halo'd source windows.
//
// Complexity:
//
//   - Element access: O(1). Index/Resolve: O(n) in the dimension count.
//   - NewDense/Clone: O(len).
//
// Errors:
//
//   - ErrNilMatrix, ErrBadDimensions, ErrDimensionMismatch,
//     ErrIndexOutOfRange, ErrBadElemType, ErrBadContinuation.
package matrix
