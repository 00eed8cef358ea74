package render

import (
	"errors"
	"testing"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/rotanim/internal/linalg"
)

func TestGrayMapping(t *testing.T) {
	m, err := linalg.FromRows([][]float64{
		{0, 0.5, 1},
		{-0.3, 1.7, 0.999},
	})
	require.NoError(t, err)

	r := NewRenderer(DefaultRegistry(), 2, 3, "gray")
	px, err := r.Render(m)
	require.NoError(t, err)
	require.Len(t, px, 2*3*4)

	want := []byte{0, 127, 255, 0, 255, 254}
	for i, w := range want {
		off := i * 4
		assert.Equal(t, []byte{w, w, w, 255}, px[off:off+4], "cell %d", i)
	}
}

func TestRowMajorLayout(t *testing.T) {
	// 2 rows × 3 cols, distinct gray levels per cell.
	m, err := linalg.FromRows([][]float64{
		{0 / 255.0, 10 / 255.0, 20 / 255.0},
		{30 / 255.0, 40 / 255.0, 50 / 255.0},
	})
	require.NoError(t, err)

	r := NewRenderer(DefaultRegistry(), 2, 3, "")
	assert.Equal(t, 3, r.Width())
	assert.Equal(t, 2, r.Height())

	px, err := r.Render(m)
	require.NoError(t, err)
	for row := 0; row < 2; row++ {
		for col := 0; col < 3; col++ {
			got := px[(row*3+col)*4]
			exp := byte((row*3 + col) * 10)
			assert.InDelta(t, exp, got, 1, "cell (%d,%d)", row, col)
		}
	}
}

func TestBufferReused(t *testing.T) {
	r := NewRenderer(DefaultRegistry(), 2, 2, "viridis")
	id, err := linalg.Identity(2)
	require.NoError(t, err)
	zero, err := linalg.New(2, 2)
	require.NoError(t, err)

	a, err := r.Render(id)
	require.NoError(t, err)
	b, err := r.Render(zero)
	require.NoError(t, err)
	assert.Same(t, &a[0], &b[0])
	assert.Same(t, &a[0], &r.Pixels()[0])
}

func TestRenderShapeMismatch(t *testing.T) {
	r := NewRenderer(DefaultRegistry(), 2, 2, "gray")
	m, err := linalg.New(3, 2)
	require.NoError(t, err)
	_, err = r.Render(m)
	assert.True(t, errors.Is(err, linalg.ErrDimensionMismatch))
}

func TestSetGradientFallback(t *testing.T) {
	r := NewRenderer(DefaultRegistry(), 1, 1, "plasma")
	assert.Equal(t, "plasma", r.Gradient())
	assert.Equal(t, "gray", r.SetGradient("not-a-real-name"))
	assert.Equal(t, "gray", r.Gradient())
	assert.Equal(t, "magma", r.SetGradient("magma"))

	unknown := NewRenderer(DefaultRegistry(), 1, 1, "nope")
	assert.Equal(t, DefaultGradient, unknown.Gradient())
}

func TestGradientEndpoints(t *testing.T) {
	reg := DefaultRegistry()
	v, ok := reg.Lookup("viridis")
	require.True(t, ok)

	lo := v.At(-5)
	assert.Equal(t, byte(68), channel(lo.R))
	assert.Equal(t, byte(1), channel(lo.G))
	assert.Equal(t, byte(84), channel(lo.B))

	hi := v.At(2)
	assert.InDelta(t, 253, channel(hi.R), 1)
	assert.InDelta(t, 231, channel(hi.G), 1)
	assert.InDelta(t, 37, channel(hi.B), 1)
}

func TestDefaultRegistryCatalog(t *testing.T) {
	reg := DefaultRegistry()
	assert.Same(t, reg, DefaultRegistry())
	assert.Equal(t, []string{"coolwarm", "gray", "heat", "inferno", "magma", "plasma", "viridis"}, reg.Names())
	assert.Equal(t, "gray", reg.Default().Name)
	assert.Equal(t, "gray", reg.Resolve("").Name)

	names := reg.Names()
	names[0] = "mutated"
	assert.Equal(t, "coolwarm", reg.Names()[0])
}

func TestRegistryNext(t *testing.T) {
	reg := DefaultRegistry()
	assert.Equal(t, "heat", reg.Next("gray"))
	assert.Equal(t, "coolwarm", reg.Next("viridis"))
	assert.Equal(t, "gray", reg.Next("unknown"))
}

func TestNewRegistryErrors(t *testing.T) {
	_, err := NewRegistry("gray", Gray(), Gray())
	assert.ErrorIs(t, err, ErrDuplicateGradient)

	_, err = NewRegistry("missing", Gray())
	assert.ErrorIs(t, err, ErrMissingDefault)

	custom, err := NewRegistry("mono",
		NewFuncGradient("mono", func(float64) gg.RGBA { return gg.White }),
	)
	require.NoError(t, err)
	r := NewRenderer(custom, 1, 1, "anything")
	m, err := linalg.New(1, 1)
	require.NoError(t, err)
	px, err := r.Render(m)
	require.NoError(t, err)
	assert.Equal(t, []byte{255, 255, 255, 255}, px)
}

func TestSinkFunc(t *testing.T) {
	var gotW, gotH int
	var s Sink = SinkFunc(func(_ []byte, w, h int) error {
		gotW, gotH = w, h
		return nil
	})
	require.NoError(t, s.Draw(nil, 4, 2))
	assert.Equal(t, 4, gotW)
	assert.Equal(t, 2, gotH)
}
