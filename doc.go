// Package rankmorph is rank-based mathematical morphology for n-dimensional
// numeric matrices in Go.
//
// 🚀 What is rankmorph?
//
//	A pure computational engine that slides an arbitrary-shape structuring
//	element (a "pattern") across an n-D matrix and, for every position,
//	computes a rank characteristic of the covered value multiset:
//
//	  • Percentile              — value of a real rank index (generalizes dilation & erosion)
//	  • Rank                    — rank of a real value inside the aperture
//	  • MeanBetweenPercentiles  — mean of the sorted slice between two rank indices
//	  • MeanBetweenValues       — mean of the values between two bounds, with corner modes
//	  • FunctionOfPercentilePair, Mean, FunctionOfSum
//
// ✨ Why choose rankmorph?
//
//   - Streaming              — an incremental sliding-window histogram, never per-pixel sorting
//   - Two models             — simple (piecewise-constant) and precise (piecewise-linear) interpolation
//   - Boundary aware         — pseudo-cyclic, cyclic, mirror, constant and nearest continuations
//   - Scales                 — a tiling driver splits huge matrices into halo'd tiles, optionally in parallel
//
// Under the hood, everything is organized under five subpackages:
//
//	matrix/    — n-D dense matrices over bit/byte/char/short/int/long/float/double, casts, continuations
//	pattern/   — structuring elements: point sets, symmetric reflection, bounding boxes
//	histogram/ — multi-level histogram with rank/value/integral queries in both models
//	rank/      — the streaming aperture engine and the public operation facade
//	tiling/    — tile partitioning with dependence-aperture halos and parallel execution
//
// Quick ASCII example:
//
//	    source            3×3 pattern        percentile(idx N−1)
//	  ┌ 0 9 0 ┐             ■ ■ ■              ┌ 9 9 9 ┐
//	  │ 0 0 0 │      ⊕      ■ ■ ■      =       │ 9 9 9 │
//	  └ 0 0 0 ┘             ■ ■ ■              └ 9 9 9 ┘
//
// Runnable walkthroughs are the Example functions in each package's
// example_test.go: median filtering and dilation in rank/, a tiled dilation
// in tiling/, histogram queries in histogram/, and pattern reflection in
// pattern/.
//
//	go get github.com/katalvlaran/rankmorph
package rankmorph
