package render

import (
	"github.com/KaramelBytes/edareport-cli/internal/report"
)

// NonEmpty drops series that have no present value.
func NonEmpty(series []Series) []Series {
	var out []Series
	for _, s := range series {
		if !s.AllMissing() {
			out = append(out, s)
		}
	}
	return out
}

// SelectCorrelation returns the columns that qualify for the heatmap, or the
// reason it must be skipped.
func SelectCorrelation(series []Series) ([]Series, report.SkipReason) {
	if len(series) == 0 {
		return nil, report.EmptyNumericSet
	}
	cand := NonEmpty(series)
	if len(cand) < 2 {
		return nil, report.InsufficientColumnsForCorrelation
	}
	return cand, ""
}

// SelectPairplot takes the first maxCols non-empty series and keeps only the
// rows complete across all of them. The returned series hold only finite
// values.
func SelectPairplot(series []Series, maxCols int) ([]Series, report.SkipReason) {
	if len(series) == 0 {
		return nil, report.EmptyNumericSet
	}
	cand := NonEmpty(series)
	if maxCols > 0 && len(cand) > maxCols {
		cand = cand[:maxCols]
	}
	if len(cand) < 2 {
		return nil, report.InsufficientColumnsForPairplot
	}
	rows := completeRows(cand)
	if len(rows) == 0 {
		return nil, report.NoCompleteRowsForPairplot
	}
	out := make([]Series, len(cand))
	for i, s := range cand {
		vals := make([]float64, len(rows))
		for k, r := range rows {
			vals[k] = s.Values[r]
		}
		out[i] = Series{Name: s.Name, Values: vals}
	}
	return out, ""
}

func completeRows(series []Series) []int {
	n := len(series[0].Values)
	var rows []int
next:
	for r := 0; r < n; r++ {
		for _, s := range series {
			if r >= len(s.Values) || !finite(s.Values[r]) {
				continue next
			}
		}
		rows = append(rows, r)
	}
	return rows
}
