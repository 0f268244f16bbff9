package render

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"

	"github.com/KaramelBytes/edareport-cli/internal/report"
)

var nan = math.NaN()

func pngSize(t *testing.T, b []byte) (int, int) {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	r := img.Bounds()
	return r.Dx(), r.Dy()
}

func titanicSeries() []Series {
	return []Series{
		{Name: "age", Values: []float64{22, 38, nan, 35, 35, nan, 54, 2, 27, 14}},
		{Name: "fare", Values: []float64{7.25, 71.28, 7.92, 53.1, 8.05, 8.46, 51.86, 21.07, 11.13, 30.07}},
	}
}

func TestGridDims(t *testing.T) {
	cases := []struct{ n, cols, rows, wantCols int }{
		{1, 3, 1, 3},
		{3, 3, 1, 3},
		{4, 3, 2, 3},
		{7, 3, 3, 3},
		{0, 3, 1, 3},
		{2, 0, 2, 1},
	}
	for _, c := range cases {
		r, cols := GridDims(c.n, c.cols)
		assert.Equal(t, c.rows, r, "rows for n=%d cols=%d", c.n, c.cols)
		assert.Equal(t, c.wantCols, cols)
	}
}

func TestBinValues(t *testing.T) {
	bins := binValues([]float64{0, 1, 2, 3, 4, 10}, 5)
	require.Len(t, bins, 5)
	assert.Equal(t, 0.0, bins[0].Min)
	assert.Equal(t, 10.0, bins[4].Max)
	total := 0.0
	for _, b := range bins {
		total += b.Weight
	}
	assert.Equal(t, 6.0, total)
	assert.Equal(t, 2.0, bins[0].Weight)
	assert.Equal(t, 1.0, bins[4].Weight, "max value falls in the last bin")

	single := binValues([]float64{3, 3, 3}, 15)
	require.Len(t, single, 1)
	assert.Equal(t, 2.5, single[0].Min)
	assert.Equal(t, 3.5, single[0].Max)
	assert.Equal(t, 3.0, single[0].Weight)
}

func TestBinValuesNonFiniteAndExtreme(t *testing.T) {
	weight := func(bins []plotter.HistogramBin) float64 {
		total := 0.0
		for _, b := range bins {
			total += b.Weight
		}
		return total
	}
	cases := []struct {
		name string
		vals []float64
		want float64
	}{
		{"positive infinity", []float64{1, math.Inf(1)}, 1},
		{"negative infinity", []float64{math.Inf(-1), 1, 2}, 2},
		{"only infinity", []float64{math.Inf(1), math.Inf(-1)}, 0},
		{"range overflows", []float64{-1e308, 1e308}, 2},
		{"range overflows with interior", []float64{-1e308, 2, 1e308}, 3},
		{"subnormal range", []float64{0, 5e-324}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var bins []plotter.HistogramBin
			require.NotPanics(t, func() { bins = binValues(tc.vals, 15) })
			assert.Equal(t, tc.want, weight(bins))
			for _, b := range bins {
				assert.False(t, math.IsInf(b.Min, 0) || math.IsNaN(b.Min), "bin min %v", b.Min)
				assert.False(t, math.IsInf(b.Max, 0) || math.IsNaN(b.Max), "bin max %v", b.Max)
			}
		})
	}

	wide := binValues([]float64{-1e308, 2, 1e308}, 2)
	require.Len(t, wide, 2)
	assert.Equal(t, 1.0, wide[0].Weight)
	assert.Equal(t, 2.0, wide[1].Weight)
	assert.Equal(t, 1e308, wide[1].Max)
}

func TestAxisScale(t *testing.T) {
	assert.Equal(t, 1.0, axisScale(nil))
	assert.Equal(t, 1.0, axisScale([]float64{-5, 1e90}))
	assert.Equal(t, 1e308, axisScale([]float64{-1e308, 2, 1e308}))
	assert.Equal(t, []float64{-1, 1}, scaleValues([]float64{-1e308, 1e308}, 1e308))
	assert.Equal(t, "a (x1e+308)", scaleLabel("a", 1e308))
	assert.Equal(t, "a", scaleLabel("a", 1))
}

func TestCorrelationPairwiseComplete(t *testing.T) {
	m := Correlation([]Series{
		{Name: "a", Values: []float64{1, 2, 3, nan, 5}},
		{Name: "b", Values: []float64{2, 4, 6, 100, 10}},
	})
	assert.Equal(t, []string{"a", "b"}, m.Columns)
	assert.InDelta(t, 1.0, m.Values[0][1], 1e-12)
	assert.Equal(t, m.Values[0][1], m.Values[1][0])
	assert.Equal(t, 1.0, m.Values[0][0])
}

func TestCorrelationConstantColumnIsNaN(t *testing.T) {
	m := Correlation([]Series{
		{Name: "x", Values: []float64{1, 2, 3}},
		{Name: "const", Values: []float64{4, 4, 4}},
	})
	assert.True(t, math.IsNaN(m.Values[0][1]))
	assert.True(t, math.IsNaN(m.Values[1][1]), "constant column is NaN against itself")
	assert.Equal(t, 1.0, m.Values[0][0])

	b, err := CorrelationHeatmap(m)
	require.NoError(t, err)
	w, h := pngSize(t, b)
	assert.Equal(t, 960, w)
	assert.Equal(t, 576, h)
}

func TestCorrelationTooFewOverlappingRows(t *testing.T) {
	m := Correlation([]Series{
		{Name: "a", Values: []float64{1, nan, 3}},
		{Name: "b", Values: []float64{nan, 2, 5}},
	})
	assert.True(t, math.IsNaN(m.Values[0][1]))
}

func TestSelectCorrelation(t *testing.T) {
	_, reason := SelectCorrelation(nil)
	assert.Equal(t, report.EmptyNumericSet, reason)

	_, reason = SelectCorrelation(titanicSeries()[:1])
	assert.Equal(t, report.InsufficientColumnsForCorrelation, reason)

	withEmpty := append(titanicSeries()[:1], Series{Name: "cabin_no", Values: []float64{nan, nan}})
	_, reason = SelectCorrelation(withEmpty)
	assert.Equal(t, report.InsufficientColumnsForCorrelation, reason, "entirely missing columns do not qualify")

	cols, reason := SelectCorrelation(titanicSeries())
	assert.Empty(t, reason)
	assert.Equal(t, []string{"age", "fare"}, Names(cols))
}

func TestSelectPairplot(t *testing.T) {
	frame, reason := SelectPairplot(titanicSeries(), 5)
	require.Empty(t, reason)
	require.Len(t, frame, 2)
	assert.Len(t, frame[0].Values, 8)
	assert.Len(t, frame[1].Values, 8)
	for _, s := range frame {
		for _, v := range s.Values {
			assert.False(t, math.IsNaN(v))
		}
	}

	_, reason = SelectPairplot(titanicSeries(), 1)
	assert.Equal(t, report.InsufficientColumnsForPairplot, reason)

	_, reason = SelectPairplot([]Series{
		{Name: "a", Values: []float64{1, nan}},
		{Name: "b", Values: []float64{nan, 2}},
	}, 5)
	assert.Equal(t, report.NoCompleteRowsForPairplot, reason)
}

func TestSelectPairplotExcludesEmptyBeforeCap(t *testing.T) {
	series := []Series{
		{Name: "empty", Values: []float64{nan, nan, nan}},
		{Name: "a", Values: []float64{1, 2, 3}},
		{Name: "b", Values: []float64{3, 1, 2}},
		{Name: "c", Values: []float64{5, 6, 7}},
	}
	frame, reason := SelectPairplot(series, 2)
	require.Empty(t, reason)
	assert.Equal(t, []string{"a", "b"}, Names(frame))
}

func TestHistogramsAndBoxplotsSingleColumn(t *testing.T) {
	opt := DefaultOptions()
	series := titanicSeries()[:1]

	b, err := Histograms(series, opt)
	require.NoError(t, err)
	w, h := pngSize(t, b)
	assert.Equal(t, 1440, w)
	assert.Equal(t, 384, h)

	b, err = Boxplots(series, opt)
	require.NoError(t, err)
	w, h = pngSize(t, b)
	assert.Equal(t, 1440, w)
	assert.Equal(t, 384, h)
}

func TestHistogramsGridGrowsByRow(t *testing.T) {
	series := append(titanicSeries(), titanicSeries()...)
	b, err := Histograms(series, DefaultOptions())
	require.NoError(t, err)
	w, h := pngSize(t, b)
	assert.Equal(t, 1440, w)
	assert.Equal(t, 768, h)
}

func TestAllMissingColumnRendersEmptyCell(t *testing.T) {
	series := []Series{{Name: "empty", Values: []float64{nan, nan}}}
	_, err := Histograms(series, DefaultOptions())
	require.NoError(t, err)
	_, err = Boxplots(series, DefaultOptions())
	require.NoError(t, err)
}

func TestNonFiniteAndExtremeValuesRender(t *testing.T) {
	cases := map[string][]Series{
		"infinity": {
			{Name: "a", Values: []float64{1, math.Inf(1), 2}},
			{Name: "b", Values: []float64{2, 3, 5}},
		},
		"overflowing range": {
			{Name: "a", Values: []float64{-1e308, 1e308, 2}},
			{Name: "b", Values: []float64{2, 3, 5}},
		},
	}
	for name, series := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Histograms(series, DefaultOptions())
			require.NoError(t, err)
			_, err = Boxplots(series, DefaultOptions())
			require.NoError(t, err)

			m := Correlation(series)
			for _, row := range m.Values {
				for _, r := range row {
					assert.False(t, math.IsInf(r, 0))
					if !math.IsNaN(r) {
						assert.LessOrEqual(t, math.Abs(r), 1.0)
					}
				}
			}
			_, err = CorrelationHeatmap(m)
			require.NoError(t, err)

			frame, reason := SelectPairplot(series, 5)
			require.Empty(t, reason)
			_, err = Pairplot(frame, DefaultOptions())
			require.NoError(t, err)
		})
	}
}

func TestInfiniteOnlyColumnCountsAsEmpty(t *testing.T) {
	series := []Series{
		{Name: "inf", Values: []float64{math.Inf(1), math.Inf(-1), nan}},
		{Name: "x", Values: []float64{1, 2, 3}},
	}
	assert.True(t, series[0].AllMissing())
	assert.Equal(t, []string{"x"}, Names(NonEmpty(series)))
}

func TestCorrelationInfiniteRowsIgnored(t *testing.T) {
	m := Correlation([]Series{
		{Name: "a", Values: []float64{1, math.Inf(1), 2, 3}},
		{Name: "b", Values: []float64{2, 100, 4, 6}},
	})
	assert.InDelta(t, 1.0, m.Values[0][1], 1e-12)
}

func TestPairplotAndHeatmap(t *testing.T) {
	frame, reason := SelectPairplot(titanicSeries(), 5)
	require.Empty(t, reason)
	b, err := Pairplot(frame, DefaultOptions())
	require.NoError(t, err)
	w, h := pngSize(t, b)
	assert.Equal(t, 480, w)
	assert.Equal(t, 480, h)

	b, err = CorrelationHeatmap(Correlation(titanicSeries()))
	require.NoError(t, err)
	_, _ = pngSize(t, b)

	_, err = Pairplot(frame[:1], DefaultOptions())
	assert.Error(t, err)
}

func TestCellLabel(t *testing.T) {
	assert.Equal(t, "nan", cellLabel(nan))
	assert.Equal(t, "-0.54", cellLabel(-0.5432))
	assert.Equal(t, "1.00", cellLabel(1))
}
