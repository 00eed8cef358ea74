package metrics

import "github.com/san-kum/rotanim/internal/linalg"

// Metric accumulates over the frames of a walk. Wrap metrics in a Set to
// attach them to a chain.
type Metric interface {
	Name() string
	Observe(index int, m *linalg.Matrix)
	Value() float64
	Reset()
}

// Set fans one observation out to several metrics.
type Set []Metric

func (s Set) Observe(index int, m *linalg.Matrix) {
	for _, mt := range s {
		mt.Observe(index, m)
	}
}

// OnStep lets a Set be attached to a chain directly.
func (s Set) OnStep(index int, m *linalg.Matrix) { s.Observe(index, m) }

func (s Set) Reset() {
	for _, mt := range s {
		mt.Reset()
	}
}

// Values returns name→value for every metric.
func (s Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, mt := range s {
		out[mt.Name()] = mt.Value()
	}
	return out
}
