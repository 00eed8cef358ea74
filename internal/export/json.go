package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/rotanim/internal/chain"
	"github.com/san-kum/rotanim/internal/linalg"
	"github.com/san-kum/rotanim/internal/metrics"
)

type KeyData struct {
	Angle float64 `json:"angle"`
	A     int     `json:"a"`
	B     int     `json:"b"`
}

// ExportData is a full dump of one chain walk.
type ExportData struct {
	Session    string             `json:"session,omitempty"`
	Seed       int64              `json:"seed"`
	Rows       int                `json:"rows"`
	Cols       int                `json:"cols"`
	Keys       []KeyData          `json:"keys"`
	Plaintext  [][]float64        `json:"plaintext"`
	Steps      [][][]float64      `json:"steps"`
	Ciphertext [][]float64        `json:"ciphertext"`
	Stats      []metrics.Stats    `json:"stats"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Collect walks c from the plaintext to the ciphertext and records every
// intermediate matrix. The chain is left at its end.
func Collect(c *chain.Chain, session string, seed int64) ExportData {
	data := ExportData{
		Session:    session,
		Seed:       seed,
		Rows:       c.Rows(),
		Cols:       c.Cols(),
		Keys:       make([]KeyData, 0, c.Len()),
		Steps:      make([][][]float64, 0, c.Len()),
		Plaintext:  toRows(c.Plaintext()),
		Ciphertext: toRows(c.Ciphertext()),
	}
	for _, k := range c.Keys().Keys() {
		data.Keys = append(data.Keys, KeyData{Angle: k.Angle, A: k.A, B: k.B})
	}

	set := metrics.Set{metrics.NewMeanNorm(), metrics.NewNormDrift(), metrics.NewInRange(0, 1), metrics.NewDisplacement()}
	c.Reset()
	set.Observe(c.Index(), c.CurrentView())
	data.Stats = append(data.Stats, metrics.Compute(c.Index(), c.CurrentView()))
	for c.StepForward() {
		data.Steps = append(data.Steps, toRows(c.CurrentView()))
		set.Observe(c.Index(), c.CurrentView())
		data.Stats = append(data.Stats, metrics.Compute(c.Index(), c.CurrentView()))
	}
	data.Metrics = set.Values()
	return data
}

func toRows(m *linalg.Matrix) [][]float64 {
	out := make([][]float64, m.Rows())
	for i := range out {
		out[i] = make([]float64, m.Cols())
		for j := range out[i] {
			out[i][j] = m.At(i, j)
		}
	}
	return out
}

func WriteJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, data ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, data)
}
