package keys

import "fmt"

// Source is the randomness Generate consumes. *math/rand.Rand satisfies it.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// Generator produces a key series of a given dimension and length.
type Generator interface {
	Generate(dim, count int) (Series, error)
}

// RandomGenerator draws keys from a Source.
type RandomGenerator struct {
	src Source
}

func NewRandomGenerator(src Source) *RandomGenerator {
	return &RandomGenerator{src: src}
}

func (g *RandomGenerator) Generate(dim, count int) (Series, error) {
	return Generate(dim, count, g.src)
}

// Generate draws count random rotation keys of size dim×dim. Per key it draws
// the angle, then axis a, then axis b, resampling b until it differs from a.
func Generate(dim, count int, src Source) (Series, error) {
	if dim < 2 {
		return Series{}, fmt.Errorf("Generate(%d, %d): %w", dim, count, ErrInvalidDimension)
	}
	if count < 0 {
		return Series{}, fmt.Errorf("Generate(%d, %d): %w", dim, count, ErrInvalidCount)
	}
	ks := make([]Key, 0, count)
	for i := 0; i < count; i++ {
		angle := src.Float64()
		a := src.Intn(dim)
		b := src.Intn(dim)
		for b == a {
			b = src.Intn(dim)
		}
		k, err := Rotation(dim, angle, a, b)
		if err != nil {
			return Series{}, err
		}
		ks = append(ks, k)
	}
	return Series{dim: dim, keys: ks}, nil
}
