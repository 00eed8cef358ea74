package linalg

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Mul returns the product a·b.
func Mul(a, b *Matrix) (*Matrix, error) {
	if a.Cols() != b.Rows() {
		return nil, fmt.Errorf("Mul: %dx%d by %dx%d: %w", a.Rows(), a.Cols(), b.Rows(), b.Cols(), ErrDimensionMismatch)
	}
	var out mat.Dense
	out.Mul(a.d, b.d)
	return wrap(&out), nil
}

// Transpose returns mᵀ.
func Transpose(m *Matrix) *Matrix { return wrap(mat.DenseCopyOf(m.d.T())) }

// Inverse returns m⁻¹ through gonum's LU inversion. m is left unchanged.
// Singular and ill-conditioned inputs fail with ErrSingular wrapping the
// mat.Condition gonum reports.
func Inverse(m *Matrix) (*Matrix, error) {
	if m.Rows() != m.Cols() {
		return nil, fmt.Errorf("Inverse: %dx%d: %w", m.Rows(), m.Cols(), ErrNotSquare)
	}
	var inv mat.Dense
	if err := inv.Inverse(m.d); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			return nil, fmt.Errorf("Inverse: condition %g: %w: %w", float64(cond), ErrSingular, err)
		}
		return nil, fmt.Errorf("Inverse: %w: %w", ErrSingular, err)
	}
	return wrap(&inv), nil
}

// EqualApprox reports whether a and b share a shape and every pair of entries
// is equal within tol, absolutely or relatively.
func EqualApprox(a, b *Matrix, tol float64) bool {
	return mat.EqualApprox(a.d, b.d, tol)
}

// MaxAbsDiff returns the largest |a[i]-b[i]|. A shape mismatch yields +Inf
// and a non-finite entry yields NaN.
func MaxAbsDiff(a, b *Matrix) float64 {
	if !a.SameShape(b) {
		return math.Inf(1)
	}
	if !a.IsValid() || !b.IsValid() {
		return math.NaN()
	}
	return floats.Distance(a.Data(), b.Data(), math.Inf(1))
}
