package render

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Matrix is a square correlation matrix. Values[i][j] is the coefficient of
// Columns[i] against Columns[j].
type Matrix struct {
	Columns []string
	Values  [][]float64
}

// Size returns the number of columns.
func (m Matrix) Size() int { return len(m.Columns) }

// Correlation computes pairwise-complete Pearson coefficients: each pair uses
// only the rows where both values are finite. A pair with fewer than two
// such rows, or where either side has zero variance over them, is NaN. This
// also applies to the diagonal, so a constant column is NaN against itself.
func Correlation(series []Series) Matrix {
	n := len(series)
	m := Matrix{Columns: Names(series), Values: make([][]float64, n)}
	for i := range m.Values {
		m.Values[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			r := pearson(series[i].Values, series[j].Values)
			if i == j && !math.IsNaN(r) {
				r = 1
			}
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m
}

func pearson(a, b []float64) float64 {
	var x, y []float64
	for k := 0; k < len(a) && k < len(b); k++ {
		if !finite(a[k]) || !finite(b[k]) {
			continue
		}
		x = append(x, a[k])
		y = append(y, b[k])
	}
	if len(x) < 2 || constant(x) || constant(y) {
		return math.NaN()
	}
	// Pearson is scale invariant; dividing by the largest magnitude keeps
	// the sums of squares finite for values near the float64 limits.
	r := stat.Correlation(normalize(x), normalize(y), nil)
	switch {
	case math.IsNaN(r) || math.IsInf(r, 0):
		return math.NaN()
	case r > 1:
		return 1
	case r < -1:
		return -1
	}
	return r
}

func constant(v []float64) bool {
	for _, f := range v[1:] {
		if f != v[0] {
			return false
		}
	}
	return true
}

func normalize(v []float64) []float64 {
	m := 0.0
	for _, f := range v {
		m = math.Max(m, math.Abs(f))
	}
	if m == 0 || m == 1 {
		return v
	}
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = f / m
	}
	return out
}
