// Package pattern models structuring elements: finite sets of integer
// displacement vectors that define the aperture shape of a rank operation.
//
// What:
//
//   - Pattern — an immutable, deduplicated point set with DimCount,
//     PointCount, Points, Contains, Symmetric and BoundingBox.
//   - Box — the full rectangular parallelepiped between two corners.
//   - Line — a segment along one axis.
//
// Why:
//
//   - The streaming engine derives its per-axis enters/leaves sets from the
//     point set, and the tiling driver derives read halos from the bounding
//     box; nothing else about pattern geometry is assumed here.
//
// Errors:
//
//   - ErrNoPoints, ErrMixedDimensions, ErrTooManyPoints, ErrBadBox, ErrBadAxis.
package pattern
