package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const pairCell = 2.5 * vg.Inch

// Pairplot renders a k x k scatter matrix of complete series, as returned by
// SelectPairplot. Cell (i, j) plots series j against series i; diagonal cells
// show the column's histogram.
func Pairplot(series []Series, opt Options) ([]byte, error) {
	k := len(series)
	if k < 2 {
		return nil, fmt.Errorf("pairplot: need at least 2 columns, got %d", k)
	}
	opt = opt.normalized()
	scales := make([]float64, k)
	for i, s := range series {
		scales[i] = axisScale(s.Present())
	}
	return tiledPNG(k*k, k, k, pairCell, pairCell, func(idx int) (*plot.Plot, error) {
		i, j := idx/k, idx%k
		xs, ys := scales[j], scales[i]
		p := plot.New()
		if j == 0 {
			p.Y.Label.Text = scaleLabel(series[i].Name, ys)
		}
		if i == k-1 {
			p.X.Label.Text = scaleLabel(series[j].Name, xs)
		}
		if i == j {
			if vals := series[i].Present(); len(vals) > 0 {
				p.Add(histogram(scaleValues(vals, xs), opt.Bins))
			}
			return p, nil
		}
		var pts plotter.XYs
		for r := range series[i].Values {
			x, y := series[j].Values[r], series[i].Values[r]
			if !finite(x) || !finite(y) {
				continue
			}
			pts = append(pts, plotter.XY{X: x / xs, Y: y / ys})
		}
		if len(pts) == 0 {
			return p, nil
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("pairplot %s vs %s: %w", series[j].Name, series[i].Name, err)
		}
		s.GlyphStyle.Color = seriesColor
		s.GlyphStyle.Radius = vg.Points(1.5)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(s)
		return p, nil
	})
}
