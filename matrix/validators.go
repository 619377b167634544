// Package matrix provides shape validators to ensure matrices meet required
// constraints before computation. Validators return wrapped sentinel errors
// and never touch matrix state.
package matrix

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures m is non-nil.
// Returns ErrNilMatrix if m == nil.
// Complexity: O(1).
func ValidateNotNil(m *Dense) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape checks that a and b have identical dimension counts and
// per-axis lengths.
// Stage 1 (Validate): nil-checks via ValidateNotNil.
// Stage 2 (Execute): compare dimension counts, then each axis.
// Complexity: O(n).
func ValidateSameShape(a, b *Dense) error {
	// Stage 1: non-nil.
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateSameShape", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateSameShape", err)
	}

	// Stage 2: compare shapes.
	if a.DimCount() != b.DimCount() {
		return validatorErrorf(
			"ValidateSameShape",
			fmt.Errorf("dimension count mismatch %d != %d: %w", a.DimCount(), b.DimCount(), ErrDimensionMismatch),
		)
	}
	for k := 0; k < a.DimCount(); k++ {
		if a.Dim(k) != b.Dim(k) {
			return validatorErrorf(
				"ValidateSameShape",
				fmt.Errorf("axis %d length mismatch %d != %d: %w", k, a.Dim(k), b.Dim(k), ErrDimensionMismatch),
			)
		}
	}

	return nil
}

// ValidateDimCount checks that m has exactly n axes.
// Complexity: O(1).
func ValidateDimCount(m *Dense, n int) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateDimCount", err)
	}
	if m.DimCount() != n {
		return validatorErrorf(
			"ValidateDimCount",
			fmt.Errorf("%d axes, want %d: %w", m.DimCount(), n, ErrDimensionMismatch),
		)
	}

	return nil
}
