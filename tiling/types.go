// Package tiling defines options and sentinel errors for the tiled driver.
package tiling

import "errors"

// DefaultTileSide is the per-axis tile length used when no tile dimensions
// are configured.
const DefaultTileSide = 64

// Sentinel errors for tiled computations.
var (
	// ErrNilEngine indicates a nil *rank.Engine passed to New.
	ErrNilEngine = errors.New("tiling: nil engine")
	// ErrNilProc indicates a nil *rank.Proc passed to Run.
	ErrNilProc = errors.New("tiling: nil proc")
	// ErrBadTileDims indicates a non-positive tile side or a tile dimension
	// count that matches neither 1 nor the source dimension count.
	ErrBadTileDims = errors.New("tiling: invalid tile dimensions")
	// ErrBadWorkers indicates a negative worker count.
	ErrBadWorkers = errors.New("tiling: worker count must be >= 0")
	// ErrOutOfRange indicates a tile halo that exceeds the representable
	// index range; it is raised before any window is allocated.
	ErrOutOfRange = errors.New("tiling: tile halo out of representable range")
)

// Options contains tunable parameters for the tiled driver.
type Options struct {
	// TileDims is the per-axis tile size. A single entry broadcasts to every
	// axis; an empty list means DefaultTileSide on every axis.
	TileDims []int
	// Workers caps concurrent tiles: 0 or 1 keeps the driver sequential in
	// row-major tile order; higher values fan tiles onto that many
	// goroutines (tile completion order then unspecified).
	Workers int
}

// Option configures an Options instance.
type Option func(*Options)

// WithTileDims sets explicit per-axis tile sizes.
func WithTileDims(dims ...int) Option {
	return func(o *Options) { o.TileDims = append([]int(nil), dims...) }
}

// WithTileSide sets one tile side applied to every axis.
func WithTileSide(side int) Option {
	return func(o *Options) { o.TileDims = []int{side} }
}

// WithWorkers sets the concurrent tile cap.
func WithWorkers(w int) Option {
	return func(o *Options) { o.Workers = w }
}
