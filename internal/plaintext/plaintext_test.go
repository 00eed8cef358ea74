package plaintext

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandom_ShapeAndRange(t *testing.T) {
	m, err := Random(4, 7, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	assert.Equal(t, 4, m.Rows())
	assert.Equal(t, 7, m.Cols())
	for _, v := range m.Data() {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestRandom_Deterministic(t *testing.T) {
	a, _ := Random(3, 3, rand.New(rand.NewSource(11)))
	b, _ := Random(3, 3, rand.New(rand.NewSource(11)))
	assert.Equal(t, a.Data(), b.Data())
}

func TestRandom_InvalidShape(t *testing.T) {
	_, err := Random(0, 3, rand.New(rand.NewSource(1)))
	require.Error(t, err)
}

func TestParse(t *testing.T) {
	input := strings.Join([]string{
		"a,b,c",
		"1,2,3",
		"lonely",
		"4, 5, 6",
		"",
		"7,x,9",
		"10,11",
		"12,13,14",
	}, "\n")

	m, report, err := Parse(strings.NewReader(input), Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, m.Rows())
	assert.Equal(t, 3, m.Cols())
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 12, 13, 14}, m.Data())

	assert.Equal(t, 1, report.Short)
	require.Len(t, report.Skipped, 2)
	for _, s := range report.Skipped {
		assert.True(t, errors.Is(s.Err, ErrMalformedRow), "line %d: %v", s.Line, s.Err)
	}
	assert.Equal(t, 6, report.Skipped[0].Line)
	assert.Equal(t, 7, report.Skipped[1].Line)
}

func TestParse_Scale(t *testing.T) {
	m, _, err := Parse(strings.NewReader("h1,h2\n2,4\n6,8\n"), Options{Scale: 0.5})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4}, m.Data())
}

func TestParse_NoData(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"header only", "a,b,c\n"},
		{"only short rows", "a,b\n1\n2\n"},
		{"only malformed rows", "a,b\nx,y\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse(strings.NewReader(tt.input), Options{})
			if !errors.Is(err, ErrNoData) {
				t.Errorf("expected ErrNoData, got %v", err)
			}
		})
	}
}

func TestParse_RejectsNonFinite(t *testing.T) {
	m, report, err := Parse(strings.NewReader("a,b\nNaN,1\n2,3\n"), Options{})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3}, m.Data())
	assert.Len(t, report.Skipped, 1)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("x,y\n0.1,0.2\n0.3,0.4\n"), 0644))

	m, report, err := Load(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Rows)
	assert.Equal(t, 2, report.Cols)
	assert.InDelta(t, 0.4, m.At(1, 1), 1e-12)

	_, _, err = Load(filepath.Join(t.TempDir(), "missing.csv"), Options{})
	require.Error(t, err)
}
