package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Boxplots renders one box plot per series in a grid, computed over present
// finite values only.
func Boxplots(series []Series, opt Options) ([]byte, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("boxplots: no series")
	}
	opt = opt.normalized()
	rows, cols := GridDims(len(series), opt.GridCols)
	return tiledPNG(len(series), rows, cols, opt.CellWidth, opt.CellHeight, func(i int) (*plot.Plot, error) {
		s := series[i]
		p := plot.New()
		p.Title.Text = s.Name
		p.HideX()
		vals := s.Present()
		if len(vals) == 0 {
			return p, nil
		}
		sc := axisScale(vals)
		p.Y.Label.Text = scaleLabel("", sc)
		box, err := plotter.NewBoxPlot(vg.Points(60), 0, plotter.Values(scaleValues(vals, sc)))
		if err != nil {
			return nil, fmt.Errorf("boxplot %s: %w", s.Name, err)
		}
		box.FillColor = seriesColor
		p.Add(box)
		return p, nil
	})
}
