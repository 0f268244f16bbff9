package profile

import (
	"encoding/json"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/KaramelBytes/edareport-cli/internal/dataset"
)

// NumericSummary holds descriptive statistics of the finite values of a
// numeric column. Std is the sample standard deviation and is 0 when fewer
// than two values are present. A statistic that overflows is encoded as
// null in JSON.
type NumericSummary struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Min  float64 `json:"min"`
	Q25  float64 `json:"q25"`
	Q50  float64 `json:"q50"`
	Q75  float64 `json:"q75"`
	Max  float64 `json:"max"`
}

// MarshalJSON encodes non-finite statistics as null.
func (s NumericSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Mean *float64 `json:"mean"`
		Std  *float64 `json:"std"`
		Min  *float64 `json:"min"`
		Q25  *float64 `json:"q25"`
		Q50  *float64 `json:"q50"`
		Q75  *float64 `json:"q75"`
		Max  *float64 `json:"max"`
	}{
		finiteOrNil(s.Mean), finiteOrNil(s.Std), finiteOrNil(s.Min),
		finiteOrNil(s.Q25), finiteOrNil(s.Q50), finiteOrNil(s.Q75), finiteOrNil(s.Max),
	})
}

func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// ColumnProfile summarizes one column.
type ColumnProfile struct {
	Name    string       `json:"name"`
	Kind    dataset.Kind `json:"kind"`
	DType   string       `json:"dtype"`
	Count   int          `json:"count"`
	Missing int          `json:"missing"`
	Unique  int          `json:"unique"`
	// Top and Freq are the mode of non-numeric columns.
	Top     string          `json:"top,omitempty"`
	Freq    int             `json:"freq,omitempty"`
	Numeric *NumericSummary `json:"numeric,omitempty"`
}

// Profile is the descriptive summary of a dataset.
type Profile struct {
	Name    string          `json:"name"`
	Rows    int             `json:"rows"`
	Columns []ColumnProfile `json:"columns"`
}

// Build computes a Profile over every column of ds.
func Build(ds *dataset.Dataset) *Profile {
	p := &Profile{Name: ds.Name(), Rows: ds.Rows()}
	for _, c := range ds.Columns() {
		p.Columns = append(p.Columns, Column(c))
	}
	return p
}

// Column computes the profile of a single column.
func Column(c *dataset.Column) ColumnProfile {
	cp := ColumnProfile{
		Name:    c.Name(),
		Kind:    c.Kind(),
		DType:   dtype(c),
		Count:   c.Count(),
		Missing: c.MissingCount(),
	}
	if c.Kind() == dataset.KindNumeric {
		vals := c.Present()
		cp.Unique = distinctFloats(vals)
		if fin := finiteValues(vals); len(fin) > 0 {
			cp.Numeric = summarize(fin)
		}
		return cp
	}
	cp.Top, cp.Freq, cp.Unique = mode(c.Values())
	return cp
}

// MissingTotal returns the sum of missing cells over all columns.
func (p *Profile) MissingTotal() int {
	n := 0
	for _, c := range p.Columns {
		n += c.Missing
	}
	return n
}

func dtype(c *dataset.Column) string {
	switch c.Kind() {
	case dataset.KindNumeric:
		if c.Integer() && c.MissingCount() == 0 {
			return "int64"
		}
		return "float64"
	case dataset.KindBoolean:
		if c.MissingCount() > 0 {
			return "object"
		}
		return "bool"
	default:
		return "object"
	}
}

func summarize(vals []float64) *NumericSummary {
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	s := &NumericSummary{
		Min: sorted[0],
		Q25: quantile(sorted, 0.25),
		Q50: quantile(sorted, 0.5),
		Q75: quantile(sorted, 0.75),
		Max: sorted[len(sorted)-1],
	}
	if len(vals) > 1 {
		s.Mean, s.Std = stat.MeanStdDev(vals, nil)
	} else {
		s.Mean = vals[0]
	}
	return s
}

// mode returns the most frequent value, its count and the number of distinct
// values. Ties go to the value seen first.
func mode(vals []string) (string, int, int) {
	counts := make(map[string]int, len(vals))
	var order []string
	for _, v := range vals {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	top, freq := "", 0
	for _, v := range order {
		if counts[v] > freq {
			top, freq = v, counts[v]
		}
	}
	return top, freq, len(order)
}

func finiteValues(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsInf(v, 0) && !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

func distinctFloats(vals []float64) int {
	seen := make(map[float64]struct{}, len(vals))
	for _, v := range vals {
		seen[v] = struct{}{}
	}
	return len(seen)
}

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
