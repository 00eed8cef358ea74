package keys

import (
	"fmt"

	"github.com/san-kum/rotanim/internal/linalg"
)

// Series is an ordered, immutable sequence of keys of one dimension.
type Series struct {
	dim  int
	keys []Key
}

// NewSeries validates that all keys share a dimension. An empty series has
// dimension 0 and composes to nothing.
func NewSeries(ks ...Key) (Series, error) {
	if len(ks) == 0 {
		return Series{}, nil
	}
	dim := ks[0].Dim()
	for i, k := range ks {
		if k.Dim() != dim {
			return Series{}, fmt.Errorf("key %d is %dx%d, want %dx%d: %w", i, k.Dim(), k.Dim(), dim, dim, ErrMixedDimensions)
		}
	}
	out := make([]Key, len(ks))
	copy(out, ks)
	return Series{dim: dim, keys: out}, nil
}

func (s Series) Len() int { return len(s.keys) }

// Dim is the side of every key, or 0 for an empty series.
func (s Series) Dim() int { return s.dim }

func (s Series) At(i int) Key { return s.keys[i] }

// Keys returns a copy of the ordered keys.
func (s Series) Keys() []Key {
	out := make([]Key, len(s.keys))
	copy(out, s.keys)
	return out
}

// Compose returns keys[N-1]·…·keys[1]·keys[0]. An empty series yields the
// dim×dim identity, so dim must be given for that case.
func (s Series) Compose(dim int) (*linalg.Matrix, error) {
	if s.Len() > 0 && dim != s.dim {
		return nil, fmt.Errorf("Compose(%d) on series of dim %d: %w", dim, s.dim, linalg.ErrDimensionMismatch)
	}
	acc, err := linalg.Identity(dim)
	if err != nil {
		return nil, err
	}
	for _, k := range s.keys {
		acc, err = linalg.Mul(k.matrix, acc)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}
