package systems

import (
	"errors"
	"fmt"
)

// Grid construction errors. The core itself never returns errors; callers
// check sizes with ValidateGridSize before building or rebuilding a grid.
var (
	ErrInvalidDimensions = errors.New("systems: grid dimensions must be positive")
	ErrInvalidResolution = errors.New("systems: resolution must be at least 1")
	ErrGridTooLarge      = errors.New("systems: field grid exceeds subcell limit")
)

// SubcellCount returns the number of field samples a w×h grid needs at the
// given resolution.
func SubcellCount(w, h, resolution int) int64 {
	r := int64(ratioFor(resolution))
	return int64(w) * int64(h) * r * r
}

// ValidateGridSize checks grid arguments at the boundary. maxSubcells <= 0
// disables the size limit.
func ValidateGridSize(w, h, resolution int, maxSubcells int64) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, w, h)
	}
	if resolution < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidResolution, resolution)
	}
	if maxSubcells > 0 {
		if n := SubcellCount(w, h, resolution); n > maxSubcells {
			return fmt.Errorf("%w: %dx%d at resolution %d needs %d subcells (limit %d)",
				ErrGridTooLarge, w, h, resolution, n, maxSubcells)
		}
	}
	return nil
}
