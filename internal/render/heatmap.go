package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	heatmapWidth     = 10 * vg.Inch
	heatmapMinHeight = 6 * vg.Inch
	colorBarWidth    = 1.2 * vg.Inch
)

// corrGrid adapts a Matrix to plotter.GridXYZ with row 0 drawn at the top.
type corrGrid struct{ m Matrix }

func (g corrGrid) Dims() (int, int) {
	n := g.m.Size()
	return n, n
}

func (g corrGrid) Z(c, r int) float64 { return g.m.Values[g.m.Size()-1-r][c] }
func (g corrGrid) X(c int) float64 { return float64(c) }
func (g corrGrid) Y(r int) float64 { return float64(r) }
func (g corrGrid) Min() float64 { return -1 }
func (g corrGrid) Max() float64 { return 1 }
func (g corrGrid) label(c, r int) string { return cellLabel(g.Z(c, r)) }

func cellLabel(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return fmt.Sprintf("%.2f", v)
}

// CorrelationHeatmap draws m on a diverging blue-red scale over [-1, 1] with
// every cell annotated. NaN cells are gray.
func CorrelationHeatmap(m Matrix) ([]byte, error) {
	n := m.Size()
	if n < 2 {
		return nil, fmt.Errorf("correlation heatmap: need at least 2 columns, got %d", n)
	}
	cm := moreland.SmoothBlueRed()
	cm.SetMax(1)
	cm.SetMin(-1)

	g := corrGrid{m: m}
	hm := plotter.NewHeatMap(g, cm.Palette(255))
	hm.Min, hm.Max = -1, 1
	hm.NaN = nanColor

	p := plot.New()
	p.Title.Text = "Correlation Heatmap"
	p.Add(hm)

	var cells plotter.XYLabels
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			cells.XYs = append(cells.XYs, plotter.XY{X: g.X(c), Y: g.Y(r)})
			cells.Labels = append(cells.Labels, g.label(c, r))
		}
	}
	labels, err := plotter.NewLabels(cells)
	if err != nil {
		return nil, fmt.Errorf("heatmap labels: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YCenter
		labels.TextStyle[i].Color = color.Black
	}
	p.Add(labels)

	rev := make([]string, n)
	for i, name := range m.Columns {
		rev[n-1-i] = name
	}
	p.NominalX(m.Columns...)
	p.NominalY(rev...)

	bar := plot.New()
	bar.HideX()
	bar.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true, Colors: 255})

	h := heatmapMinHeight
	if hh := vg.Length(n) * vg.Inch / 2; hh > h {
		h = hh
	}
	img := vgimg.New(heatmapWidth, h)
	dc := draw.New(img)
	p.Draw(draw.Crop(dc, 0, -colorBarWidth, 0, 0))
	bar.Draw(draw.Crop(dc, heatmapWidth-colorBarWidth, 0, vg.Inch/2, -vg.Inch/2))
	return encodePNG(img)
}
