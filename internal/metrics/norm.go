package metrics

import (
	"math"

	"github.com/san-kum/rotanim/internal/linalg"
)

// MeanNorm averages the Frobenius norm over observed frames.
type MeanNorm struct {
	name    string
	total   float64
	samples int
}

func NewMeanNorm() *MeanNorm {
	return &MeanNorm{name: "mean_norm"}
}

func (n *MeanNorm) Name() string { return n.name }

func (n *MeanNorm) Observe(_ int, m *linalg.Matrix) {
	n.total += m.FrobeniusNorm()
	n.samples++
}

func (n *MeanNorm) Value() float64 {
	if n.samples == 0 {
		return 0
	}
	return n.total / float64(n.samples)
}

func (n *MeanNorm) Reset() {
	n.total = 0
	n.samples = 0
}

// NormDrift tracks the largest relative change of the Frobenius norm from the
// first frame seen. Rotations are orthogonal, so anything above rounding
// noise points at a broken key or a bad inversion.
type NormDrift struct {
	name     string
	initial  float64
	current  float64
	maxDrift float64
	samples  int
}

func NewNormDrift() *NormDrift {
	return &NormDrift{name: "norm_drift"}
}

func (d *NormDrift) Name() string { return d.name }

func (d *NormDrift) Observe(_ int, m *linalg.Matrix) {
	norm := m.FrobeniusNorm()
	if d.samples == 0 {
		d.initial = norm
	}
	d.current = norm
	d.samples++

	if d.initial != 0 {
		drift := math.Abs(norm-d.initial) / d.initial
		d.maxDrift = math.Max(d.maxDrift, drift)
	}
}

func (d *NormDrift) Value() float64 { return d.maxDrift }

func (d *NormDrift) Current() float64 { return d.current }

func (d *NormDrift) Reset() {
	d.initial = 0
	d.current = 0
	d.maxDrift = 0
	d.samples = 0
}
