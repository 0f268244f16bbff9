package render

import (
	"math"

	"github.com/KaramelBytes/edareport-cli/internal/dataset"
)

// Series is one numeric column with NaN in place of missing cells. Infinite
// values are treated as missing by every plot and by Correlation.
type Series struct {
	Name   string
	Values []float64
}

// NumericSeries projects the numeric columns of ds in column order.
func NumericSeries(ds *dataset.Dataset) []Series {
	var out []Series
	for _, name := range dataset.SelectNumeric(ds.Schema()) {
		c, ok := ds.Column(name)
		if !ok {
			continue
		}
		out = append(out, Series{Name: c.Name(), Values: c.Floats()})
	}
	return out
}

// Present returns the finite values in row order.
func (s Series) Present() []float64 {
	out := make([]float64, 0, len(s.Values))
	for _, v := range s.Values {
		if finite(v) {
			out = append(out, v)
		}
	}
	return out
}

// AllMissing reports whether the series has no finite value.
func (s Series) AllMissing() bool {
	for _, v := range s.Values {
		if finite(v) {
			return false
		}
	}
	return true
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Names returns the series names in order.
func Names(series []Series) []string {
	out := make([]string, len(series))
	for i, s := range series {
		out[i] = s.Name
	}
	return out
}
