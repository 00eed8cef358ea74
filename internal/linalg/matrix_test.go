package linalg

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNew_InvalidDimensions(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
	}{
		{"zero rows", 0, 3},
		{"zero cols", 3, 0},
		{"negative", -1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.rows, tt.cols)
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("expected ErrInvalidDimensions, got %v", err)
			}
		})
	}
}

func TestFromRows(t *testing.T) {
	m, err := FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, m.Data())
	assert.Equal(t, 6.0, m.At(1, 2))

	_, err = FromRows([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestClone_Independent(t *testing.T) {
	m, _ := FromRows([][]float64{{1, 2}, {3, 4}})
	c := m.Clone()
	c.Set(0, 0, 9)
	if m.At(0, 0) != 1 {
		t.Errorf("clone aliased original: got %v", m.At(0, 0))
	}
}

func TestMul(t *testing.T) {
	a, _ := FromRows([][]float64{{1, 2}, {3, 4}, {5, 6}})
	b, _ := FromRows([][]float64{{7, 8, 9}, {10, 11, 12}})

	p, err := Mul(a, b)
	require.NoError(t, err)
	want, _ := FromRows([][]float64{
		{27, 30, 33},
		{61, 68, 75},
		{95, 106, 117},
	})
	assert.True(t, EqualApprox(p, want, 1e-12), "got\n%v", p)

	_, err = Mul(a, a)
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestMul_IdentityIsNeutral(t *testing.T) {
	a, _ := FromRows([][]float64{{1.5, -2}, {0.25, 4}, {3, 3}})
	id, _ := Identity(3)
	p, err := Mul(id, a)
	require.NoError(t, err)
	assert.True(t, EqualApprox(p, a, 0))
}

func TestTranspose(t *testing.T) {
	a, _ := FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	tr := Transpose(a)
	assert.Equal(t, 3, tr.Rows())
	assert.Equal(t, 2, tr.Cols())
	assert.Equal(t, 4.0, tr.At(0, 1))
	assert.Equal(t, 3.0, tr.At(2, 0))
}

func TestInverse(t *testing.T) {
	tests := []struct {
		name string
		rows [][]float64
	}{
		{"diagonal", [][]float64{{2, 0}, {0, 4}}},
		{"needs pivot", [][]float64{{0, 1}, {1, 0}}},
		{"dense 3x3", [][]float64{{4, 7, 2}, {3, 6, 1}, {2, 5, 3}}},
		{"rotation", [][]float64{{math.Cos(0.7), -math.Sin(0.7)}, {math.Sin(0.7), math.Cos(0.7)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := FromRows(tt.rows)
			require.NoError(t, err)
			inv, err := Inverse(m)
			require.NoError(t, err)

			p, err := Mul(inv, m)
			require.NoError(t, err)
			id, _ := Identity(m.Rows())
			assert.True(t, EqualApprox(p, id, 1e-9), "inv*m =\n%v", p)
		})
	}
}

func TestInverse_LeavesInputUntouched(t *testing.T) {
	m, _ := FromRows([][]float64{{0, 2}, {3, 0}})
	before := m.Clone()
	_, err := Inverse(m)
	require.NoError(t, err)
	assert.True(t, EqualApprox(m, before, 0))
}

func TestInverse_Errors(t *testing.T) {
	singular, _ := FromRows([][]float64{{1, 2}, {2, 4}})
	_, err := Inverse(singular)
	require.ErrorIs(t, err, ErrSingular)

	var cond mat.Condition
	require.True(t, errors.As(err, &cond))
	assert.True(t, math.IsInf(float64(cond), 1))

	rect, _ := New(2, 3)
	_, err = Inverse(rect)
	require.ErrorIs(t, err, ErrNotSquare)
}

func TestIsValid(t *testing.T) {
	m, _ := New(1, 3)
	assert.True(t, m.IsValid())
	m.Set(0, 1, math.NaN())
	assert.False(t, m.IsValid())
	m.Set(0, 1, math.Inf(-1))
	assert.False(t, m.IsValid())
}

func TestFrobeniusNorm(t *testing.T) {
	m, _ := FromRows([][]float64{{3, 0}, {0, 4}})
	assert.InDelta(t, 5.0, m.FrobeniusNorm(), 1e-12)
}

func TestMaxAbsDiff(t *testing.T) {
	a, _ := FromRows([][]float64{{1, 2}})
	b, _ := FromRows([][]float64{{1.5, 1}})
	assert.InDelta(t, 1.0, MaxAbsDiff(a, b), 1e-12)

	c, _ := New(2, 1)
	assert.True(t, math.IsInf(MaxAbsDiff(a, c), 1))
	assert.False(t, EqualApprox(a, c, 10))
}

func TestCopyFrom(t *testing.T) {
	a, _ := FromRows([][]float64{{1, 2}})
	b, _ := FromRows([][]float64{{5, 6}})
	require.NoError(t, a.CopyFrom(b))
	assert.Equal(t, []float64{5, 6}, a.Data())

	c, _ := New(2, 1)
	require.ErrorIs(t, a.CopyFrom(c), ErrDimensionMismatch)
}

func TestDataStaysRowMajor(t *testing.T) {
	a, _ := FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	b, _ := FromRows([][]float64{{1, 0}, {0, 1}, {1, 1}})

	p, err := Mul(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5, 10, 11}, p.Data())

	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, Transpose(a).Data())
	assert.Equal(t, a.Data(), a.Clone().Data())

	sq, _ := FromRows([][]float64{{2, 0}, {0, 4}})
	inv, err := Inverse(sq)
	require.NoError(t, err)
	got := inv.Data()
	require.Len(t, got, 4)
	assert.InDeltaSlice(t, []float64{0.5, 0, 0, 0.25}, got, 1e-12)
}

func TestSetWritesThroughData(t *testing.T) {
	m, _ := New(2, 3)
	m.Set(1, 2, 7)
	assert.Equal(t, 7.0, m.Data()[5])
	m.Data()[1] = 3
	assert.Equal(t, 3.0, m.At(0, 1))
}

func TestMaxAbsDiff_NonFinite(t *testing.T) {
	a, _ := FromRows([][]float64{{1, math.NaN()}})
	b, _ := FromRows([][]float64{{1, 2}})
	assert.True(t, math.IsNaN(MaxAbsDiff(a, b)))
}
