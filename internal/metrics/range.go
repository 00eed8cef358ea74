package metrics

import "github.com/san-kum/rotanim/internal/linalg"

// InRange is the fraction of frames whose cells all lie in [lo, hi]. With the
// default [0, 1] it tells how often the gradient had to clamp.
type InRange struct {
	name       string
	lo, hi     float64
	violations int
	samples    int
}

func NewInRange(lo, hi float64) *InRange {
	return &InRange{name: "in_range", lo: lo, hi: hi}
}

func (r *InRange) Name() string { return r.name }

func (r *InRange) Observe(_ int, m *linalg.Matrix) {
	r.samples++
	for _, v := range m.Data() {
		if v < r.lo || v > r.hi {
			r.violations++
			break
		}
	}
}

func (r *InRange) Value() float64 {
	if r.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(r.violations)/float64(r.samples)
}

func (r *InRange) Reset() {
	r.violations = 0
	r.samples = 0
}
