package keys

import "errors"

var (
	// ErrInvalidDimension indicates a key dimension below 2.
	ErrInvalidDimension = errors.New("keys: dimension must be >= 2")

	// ErrInvalidAxes indicates rotation axes that are out of range or equal.
	ErrInvalidAxes = errors.New("keys: rotation axes must be distinct and in range")

	// ErrInvalidCount indicates a negative key count.
	ErrInvalidCount = errors.New("keys: key count must be >= 0")

	// ErrMixedDimensions indicates a series built from keys of different sizes.
	ErrMixedDimensions = errors.New("keys: keys in a series must share one dimension")
)
