package linalg

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a rows×cols matrix of float64 values stored row-major in a flat slice.
type Matrix struct {
	d *mat.Dense
}

// New returns a zero-filled rows×cols matrix.
func New(rows, cols int) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("New(%d,%d): %w", rows, cols, ErrInvalidDimensions)
	}
	return &Matrix{d: mat.NewDense(rows, cols, nil)}, nil
}

// Identity returns the n×n identity matrix.
func Identity(n int) (*Matrix, error) {
	m, err := New(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.d.Set(i, i, 1)
	}
	return m, nil
}

// FromRows copies a rectangular [][]float64 into a new matrix.
func FromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("FromRows: %w", ErrInvalidDimensions)
	}
	cols := len(rows[0])
	data := make([]float64, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("FromRows: row %d has %d values, want %d: %w", i, len(row), cols, ErrDimensionMismatch)
		}
		copy(data[i*cols:], row)
	}
	return &Matrix{d: mat.NewDense(len(rows), cols, data)}, nil
}

// wrap takes ownership of a dense produced by a gonum operation.
func wrap(d *mat.Dense) *Matrix { return &Matrix{d: d} }

func (m *Matrix) Rows() int {
	r, _ := m.d.Dims()
	return r
}

func (m *Matrix) Cols() int {
	_, c := m.d.Dims()
	return c
}

// At returns the value at (i, j). It panics when the index is outside the matrix.
func (m *Matrix) At(i, j int) float64 { return m.d.At(i, j) }

// Set assigns v at (i, j). It panics when the index is outside the matrix.
func (m *Matrix) Set(i, j int, v float64) { m.d.Set(i, j, v) }

// Data exposes the row-major backing slice. Callers must not resize it.
func (m *Matrix) Data() []float64 { return m.d.RawMatrix().Data }

// SameShape reports whether m and other have identical dimensions.
func (m *Matrix) SameShape(other *Matrix) bool {
	r, c := m.d.Dims()
	or, oc := other.d.Dims()
	return r == or && c == oc
}

func (m *Matrix) Clone() *Matrix { return wrap(mat.DenseCopyOf(m.d)) }

// CopyFrom overwrites m with the contents of src, which must have the same shape.
func (m *Matrix) CopyFrom(src *Matrix) error {
	if !m.SameShape(src) {
		return fmt.Errorf("CopyFrom: %dx%d into %dx%d: %w", src.Rows(), src.Cols(), m.Rows(), m.Cols(), ErrDimensionMismatch)
	}
	m.d.Copy(src.d)
	return nil
}

// IsValid reports whether every value is finite.
func (m *Matrix) IsValid() bool {
	for _, v := range m.Data() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// FrobeniusNorm returns sqrt of the sum of squared entries.
func (m *Matrix) FrobeniusNorm() float64 { return mat.Norm(m.d, 2) }

func (m *Matrix) String() string {
	return fmt.Sprintf("%.4f", mat.Formatted(m.d, mat.Squeeze()))
}
