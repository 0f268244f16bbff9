// Package render draws the exploratory plots of a numeric subset to PNG.
package render

import (
	"image/color"

	"gonum.org/v1/plot/vg"
)

// Options controls grid layout and plot sizes.
type Options struct {
	GridCols        int
	MaxPairplotCols int
	Bins            int
	CellWidth       vg.Length
	CellHeight      vg.Length
}

// DefaultOptions returns a 3-column grid of 5x4 inch cells, 15 histogram bins
// and a pairplot capped at 5 columns.
func DefaultOptions() Options {
	return Options{
		GridCols:        3,
		MaxPairplotCols: 5,
		Bins:            15,
		CellWidth:       5 * vg.Inch,
		CellHeight:      4 * vg.Inch,
	}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.GridCols < 1 {
		o.GridCols = d.GridCols
	}
	if o.MaxPairplotCols < 1 {
		o.MaxPairplotCols = d.MaxPairplotCols
	}
	if o.Bins < 1 {
		o.Bins = d.Bins
	}
	if o.CellWidth <= 0 {
		o.CellWidth = d.CellWidth
	}
	if o.CellHeight <= 0 {
		o.CellHeight = d.CellHeight
	}
	return o
}

var (
	seriesColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	nanColor    = color.Gray{Y: 200}
)
