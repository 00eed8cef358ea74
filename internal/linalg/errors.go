package linalg

import "errors"

var (
	// ErrInvalidDimensions indicates a requested shape with rows or cols below one.
	ErrInvalidDimensions = errors.New("linalg: dimensions must be > 0")

	// ErrDimensionMismatch indicates operands whose shapes cannot be combined.
	ErrDimensionMismatch = errors.New("linalg: dimension mismatch")

	// ErrNotSquare indicates a square matrix was required.
	ErrNotSquare = errors.New("linalg: matrix is not square")

	// ErrSingular indicates no usable pivot was found during inversion.
	ErrSingular = errors.New("linalg: matrix is singular")
)
