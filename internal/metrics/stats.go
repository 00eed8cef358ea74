package metrics

import (
	"math"

	"github.com/san-kum/rotanim/internal/linalg"
)

// Stats summarizes one frame.
type Stats struct {
	Index  int     `json:"index"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Norm   float64 `json:"norm"`
}

func Compute(index int, m *linalg.Matrix) Stats {
	data := m.Data()
	s := Stats{Index: index, Norm: m.FrobeniusNorm()}
	if len(data) == 0 {
		return s
	}
	s.Min, s.Max = math.Inf(1), math.Inf(-1)
	sum := 0.0
	for _, v := range data {
		sum += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Mean = sum / float64(len(data))
	variance := 0.0
	for _, v := range data {
		d := v - s.Mean
		variance += d * d
	}
	s.StdDev = math.Sqrt(variance / float64(len(data)))
	return s
}

// Trace records Stats for every observed frame, in order.
type Trace struct {
	frames []Stats
}

func NewTrace() *Trace { return &Trace{} }

func (t *Trace) OnStep(index int, m *linalg.Matrix) {
	t.frames = append(t.frames, Compute(index, m))
}

func (t *Trace) Frames() []Stats { return t.frames }

func (t *Trace) Len() int { return len(t.frames) }

// Series extracts one field across the trace, for plotting.
func (t *Trace) Series(field func(Stats) float64) []float64 {
	out := make([]float64, len(t.frames))
	for i, s := range t.frames {
		out[i] = field(s)
	}
	return out
}

func (t *Trace) Reset() { t.frames = t.frames[:0] }
