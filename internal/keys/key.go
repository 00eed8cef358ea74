package keys

import (
	"fmt"
	"math"

	"github.com/san-kum/rotanim/internal/linalg"
)

// Key is one invertible step of the animation.
type Key struct {
	Angle  float64
	A, B   int
	matrix *linalg.Matrix
}

// Rotation returns the dim×dim identity with a rotation by angle written into
// the (a, b) plane: (a,a)=cos, (a,b)=-sin, (b,a)=sin, (b,b)=cos.
func Rotation(dim int, angle float64, a, b int) (Key, error) {
	if dim < 2 {
		return Key{}, fmt.Errorf("Rotation(%d): %w", dim, ErrInvalidDimension)
	}
	if a < 0 || a >= dim || b < 0 || b >= dim || a == b {
		return Key{}, fmt.Errorf("Rotation axes (%d,%d) in dim %d: %w", a, b, dim, ErrInvalidAxes)
	}
	m, err := linalg.Identity(dim)
	if err != nil {
		return Key{}, err
	}
	sin, cos := math.Sincos(angle)
	m.Set(a, a, cos)
	m.Set(a, b, -sin)
	m.Set(b, a, sin)
	m.Set(b, b, cos)
	return Key{Angle: angle, A: a, B: b, matrix: m}, nil
}

// Identity returns a key that leaves every vector unchanged. It is the
// rotation by zero and keeps A, B at 0 and 1.
func Identity(dim int) (Key, error) {
	return Rotation(dim, 0, 0, 1)
}

// FromMatrix wraps an arbitrary square matrix as a key. Angle and axes are
// left at zero; the caller is responsible for the matrix being invertible.
func FromMatrix(m *linalg.Matrix) (Key, error) {
	if m.Rows() != m.Cols() {
		return Key{}, fmt.Errorf("FromMatrix %dx%d: %w", m.Rows(), m.Cols(), linalg.ErrNotSquare)
	}
	if m.Rows() < 2 {
		return Key{}, fmt.Errorf("FromMatrix(%d): %w", m.Rows(), ErrInvalidDimension)
	}
	return Key{matrix: m.Clone()}, nil
}

func (k Key) Dim() int { return k.matrix.Rows() }

// Matrix returns a copy of the key's transform.
func (k Key) Matrix() *linalg.Matrix { return k.matrix.Clone() }

// Apply returns k·m.
func (k Key) Apply(m *linalg.Matrix) (*linalg.Matrix, error) {
	return linalg.Mul(k.matrix, m)
}

// Inverse returns k⁻¹ computed by general inversion. The transpose would do
// for rotations, but keys built with FromMatrix need not be orthogonal.
func (k Key) Inverse() (*linalg.Matrix, error) {
	return linalg.Inverse(k.matrix)
}
