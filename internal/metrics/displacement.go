package metrics

import (
	"math"

	"github.com/san-kum/rotanim/internal/linalg"
)

// Displacement is the mean absolute per-cell change between consecutive
// frames. The first frame only primes it.
type Displacement struct {
	name    string
	prev    *linalg.Matrix
	sum     float64
	samples int
}

func NewDisplacement() *Displacement {
	return &Displacement{name: "displacement"}
}

func (d *Displacement) Name() string { return d.name }

func (d *Displacement) Observe(_ int, m *linalg.Matrix) {
	if d.prev != nil && d.prev.SameShape(m) && len(m.Data()) > 0 {
		prev := d.prev.Data()
		total := 0.0
		for i, v := range m.Data() {
			total += math.Abs(v - prev[i])
		}
		d.sum += total / float64(len(prev))
		d.samples++
	}
	d.prev = m.Clone()
}

func (d *Displacement) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return d.sum / float64(d.samples)
}

func (d *Displacement) Reset() {
	d.prev = nil
	d.sum = 0
	d.samples = 0
}
