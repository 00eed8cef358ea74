// Package plaintext supplies the initial matrix of an animation, either drawn
// at random or loaded from comma-separated text.
package plaintext

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/rotanim/internal/linalg"
)

var (
	// ErrMalformedRow marks a data row that was skipped. It is never returned
	// from Parse; it is recorded in Report.Skipped.
	ErrMalformedRow = errors.New("plaintext: malformed row")

	// ErrNoData indicates that no usable data row remained after parsing.
	ErrNoData = errors.New("plaintext: no data rows")
)

// Source is the randomness Random consumes. *math/rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Random returns a rows×cols matrix of values drawn uniformly from [0, 1).
func Random(rows, cols int, src Source) (*linalg.Matrix, error) {
	m, err := linalg.New(rows, cols)
	if err != nil {
		return nil, err
	}
	data := m.Data()
	for i := range data {
		data[i] = src.Float64()
	}
	return m, nil
}

// Options controls Parse.
type Options struct {
	// Scale multiplies every parsed value. Zero means 1.
	Scale float64
}

// SkippedRow records one malformed row.
type SkippedRow struct {
	Line int
	Err  error
}

// Report summarizes what Parse kept and dropped.
type Report struct {
	Rows    int
	Cols    int
	Short   int
	Skipped []SkippedRow
}

// Parse reads comma-separated text into a matrix. The first record is a
// header and is discarded. Records with at most one field are dropped without
// complaint. Records with a non-numeric field, or with a field count that
// differs from the first data record, are dropped and listed in the report.
func Parse(r io.Reader, opts Options) (*linalg.Matrix, Report, error) {
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	var (
		report Report
		rows   [][]float64
		header = true
	)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				report.Skipped = append(report.Skipped, SkippedRow{Line: perr.Line, Err: fmt.Errorf("%w: %v", ErrMalformedRow, perr.Err)})
				continue
			}
			return nil, report, err
		}
		if header {
			header = false
			continue
		}
		line, _ := cr.FieldPos(0)
		if len(record) <= 1 {
			report.Short++
			continue
		}
		if len(rows) > 0 && len(record) != len(rows[0]) {
			report.Skipped = append(report.Skipped, SkippedRow{
				Line: line,
				Err:  fmt.Errorf("%w: %d fields, want %d", ErrMalformedRow, len(record), len(rows[0])),
			})
			continue
		}
		values, err := parseRecord(record, scale)
		if err != nil {
			report.Skipped = append(report.Skipped, SkippedRow{Line: line, Err: err})
			continue
		}
		rows = append(rows, values)
	}

	if len(rows) == 0 {
		return nil, report, ErrNoData
	}
	m, err := linalg.FromRows(rows)
	if err != nil {
		return nil, report, err
	}
	report.Rows, report.Cols = m.Rows(), m.Cols()
	return m, report, nil
}

func parseRecord(record []string, scale float64) ([]float64, error) {
	values := make([]float64, len(record))
	for i, field := range record {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: field %d: %q", ErrMalformedRow, i, field)
		}
		values[i] = v * scale
	}
	return values, nil
}

// Load opens path and parses it with Parse.
func Load(path string, opts Options) (*linalg.Matrix, Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Report{}, err
	}
	defer f.Close()
	return Parse(f, opts)
}
