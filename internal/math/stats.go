package math

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Column summarises one column of the encoded dataset.
type Column struct {
	Name   string  `json:"name"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Matrix loads the given rows into a dense matrix.
// All rows must have the same length.
func Matrix(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("cannot create matrix from %d rows", len(rows))
	}
	c := len(rows[0])
	data := make([]float64, 0, len(rows)*c)
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("row %d has %d columns instead of %d", i, len(row), c)
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), c, data), nil
}

// Columns computes the column statistics of the given rows.
// Names are matched to columns by position.
func Columns(names []string, rows [][]float64) ([]Column, error) {
	if len(rows) == 0 {
		return []Column{}, nil
	}
	m, err := Matrix(rows)
	if err != nil {
		return nil, err
	}
	r, c := m.Dims()
	if len(names) != c {
		return nil, fmt.Errorf("got %d names for %d columns", len(names), c)
	}

	columns := make([]Column, c)
	values := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(values, j, m)
		mean, std := stat.MeanStdDev(values, nil)
		if r < 2 {
			std = 0
		}
		columns[j] = Column{
			Name:   names[j],
			Mean:   mean,
			StdDev: std,
			Min:    floats.Min(values),
			Max:    floats.Max(values),
		}
	}
	return columns, nil
}

// Classes counts the occurrences of every class code in [0, n).
func Classes(targets []int, n int) []int {
	counts := make([]int, n)
	for _, t := range targets {
		if t >= 0 && t < n {
			counts[t]++
		}
	}
	return counts
}
