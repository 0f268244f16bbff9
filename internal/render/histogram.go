package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
)

// Histograms renders one histogram per series in a grid. Missing and
// infinite values are excluded before binning; a series with nothing left
// gets an empty, titled cell.
func Histograms(series []Series, opt Options) ([]byte, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("histograms: no series")
	}
	opt = opt.normalized()
	rows, cols := GridDims(len(series), opt.GridCols)
	return tiledPNG(len(series), rows, cols, opt.CellWidth, opt.CellHeight, func(i int) (*plot.Plot, error) {
		s := series[i]
		p := plot.New()
		p.Title.Text = s.Name
		p.Y.Label.Text = "count"
		if vals := s.Present(); len(vals) > 0 {
			sc := axisScale(vals)
			p.X.Label.Text = scaleLabel("", sc)
			p.Add(histogram(scaleValues(vals, sc), opt.Bins))
		}
		return p, nil
	})
}

func histogram(vals []float64, bins int) *plotter.Histogram {
	b := binValues(vals, bins)
	return &plotter.Histogram{
		Bins:      b,
		Width:     b[0].Max - b[0].Min,
		FillColor: seriesColor,
		LineStyle: plotter.DefaultLineStyle,
	}
}

// binValues splits [min, max] of the finite vals into n equal bins, the last
// one closed. When every value is equal, or the range is too narrow to
// split, a single bin holds them all.
func binValues(vals []float64, n int) []plotter.HistogramBin {
	if n < 1 {
		n = 1
	}
	vals = Series{Values: vals}.Present()
	if len(vals) == 0 {
		return []plotter.HistogramBin{{Min: -0.5, Max: 0.5}}
	}
	lo, hi := bounds(vals)
	if lo == hi {
		return []plotter.HistogramBin{{Min: lo - 0.5, Max: hi + 0.5, Weight: float64(len(vals))}}
	}
	w := hi/float64(n) - lo/float64(n)
	if !finite(w) || w <= 0 {
		return []plotter.HistogramBin{{Min: lo, Max: hi, Weight: float64(len(vals))}}
	}
	// Edges interpolate between lo and hi so they stay finite when hi-lo
	// itself overflows.
	edge := func(i int) float64 {
		t := float64(i) / float64(n)
		return lo*(1-t) + hi*t
	}
	bins := make([]plotter.HistogramBin, n)
	for i := range bins {
		bins[i].Min = edge(i)
		bins[i].Max = edge(i + 1)
	}
	bins[0].Min = lo
	bins[n-1].Max = hi
	for _, v := range vals {
		pos := v/w - lo/w
		idx := 0
		switch {
		case pos >= float64(n):
			idx = n - 1
		case pos > 0:
			idx = int(pos)
		}
		bins[idx].Weight++
	}
	return bins
}
