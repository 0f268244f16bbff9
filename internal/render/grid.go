package render

import (
	"bytes"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// GridDims returns the rows and columns of a layout holding n cells with at
// most cols per row. The column count is kept even when n < cols, so the
// trailing cells stay blank.
func GridDims(n, cols int) (int, int) {
	if cols < 1 {
		cols = 1
	}
	rows := (n + cols - 1) / cols
	if rows < 1 {
		rows = 1
	}
	return rows, cols
}

// tiledPNG lays n plots out row-major in a rows x cols grid of equal cells and
// encodes the canvas as PNG. Cells past n are left blank.
func tiledPNG(n, rows, cols int, cellW, cellH vg.Length, cell func(i int) (*plot.Plot, error)) ([]byte, error) {
	img := vgimg.New(vg.Length(cols)*cellW, vg.Length(rows)*cellH)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      rows,
		Cols:      cols,
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter,
		PadTop:    vg.Points(2),
		PadBottom: vg.Points(2),
		PadLeft:   vg.Points(2),
		PadRight:  vg.Points(2),
	}
	for i := 0; i < n && i < rows*cols; i++ {
		p, err := cell(i)
		if err != nil {
			return nil, err
		}
		p.Draw(tiles.At(dc, i%cols, i/cols))
	}
	return encodePNG(img)
}

func encodePNG(img *vgimg.Canvas) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
