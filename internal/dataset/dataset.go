package dataset

import (
	"fmt"
	"math"
	"strings"
)

// Kind is the inferred value type of a column.
type Kind string

const (
	KindNumeric Kind = "numeric"
	KindBoolean Kind = "boolean"
	KindText    Kind = "text"
)

// ParseOptions controls how raw cells are read and interpreted.
type ParseOptions struct {
	// Delimiter for delimited text. If 0, chosen from the file extension.
	Delimiter rune
	// Numeric parsing locale. If DecimalSeparator is 0, values must be plain Go floats.
	DecimalSeparator   rune
	ThousandsSeparator rune
	// Sheet selects an XLSX worksheet by name; empty means the first sheet.
	Sheet string
}

// ColumnSchema is the name and inferred kind of a column.
type ColumnSchema struct {
	Name    string
	Kind    Kind
	Integer bool
}

// Column is a read-only named sequence of cells.
type Column struct {
	name    string
	kind    Kind
	integer bool
	cells   []string
	missing []bool
	nums    []float64
	nmiss   int
}

// Name returns the column header.
func (c *Column) Name() string { return c.name }

// Kind returns the inferred kind.
func (c *Column) Kind() Kind { return c.kind }

// Integer reports whether every present value of a numeric column is integral.
func (c *Column) Integer() bool { return c.integer }

// Len returns the number of rows.
func (c *Column) Len() int { return len(c.cells) }

// Cell returns the trimmed raw text of row i. Missing cells return "".
func (c *Column) Cell(i int) string {
	if c.missing[i] {
		return ""
	}
	return c.cells[i]
}

// IsMissing reports whether row i holds a missing marker.
func (c *Column) IsMissing(i int) bool { return c.missing[i] }

// MissingCount returns the number of missing cells.
func (c *Column) MissingCount() int { return c.nmiss }

// Count returns the number of present cells.
func (c *Column) Count() int { return len(c.cells) - c.nmiss }

// Floats returns a copy of the parsed values with NaN for missing entries.
// It returns nil for non-numeric columns.
func (c *Column) Floats() []float64 {
	if c.nums == nil {
		return nil
	}
	out := make([]float64, len(c.nums))
	copy(out, c.nums)
	return out
}

// Present returns the present values of a numeric column, in row order.
func (c *Column) Present() []float64 {
	if c.nums == nil {
		return nil
	}
	out := make([]float64, 0, c.Count())
	for _, v := range c.nums {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Values returns the present raw cells in row order.
func (c *Column) Values() []string {
	out := make([]string, 0, c.Count())
	for i, v := range c.cells {
		if !c.missing[i] {
			out = append(out, v)
		}
	}
	return out
}

// Schema returns the column's name and kind.
func (c *Column) Schema() ColumnSchema {
	return ColumnSchema{Name: c.name, Kind: c.kind, Integer: c.integer}
}

// Dataset is an immutable table of named columns loaded from a single source.
type Dataset struct {
	name  string
	rows  int
	cols  []*Column
	index map[string]int
}

// New builds a Dataset from a header and records. Short records are padded
// with missing cells and long records are truncated to the header width.
func New(name string, header []string, records [][]string, opt ParseOptions) *Dataset {
	names := uniqueHeader(header)
	ds := &Dataset{name: name, rows: len(records), index: make(map[string]int, len(names))}
	for j, n := range names {
		cells := make([]string, len(records))
		missing := make([]bool, len(records))
		nmiss := 0
		for i, rec := range records {
			v := ""
			if j < len(rec) {
				v = strings.TrimSpace(rec[j])
			}
			cells[i] = v
			if IsMissingToken(v) {
				missing[i] = true
				nmiss++
			}
		}
		col := &Column{name: n, cells: cells, missing: missing, nmiss: nmiss}
		col.kind, col.integer = classifyCells(cells, missing, opt)
		if col.kind == KindNumeric {
			col.nums = make([]float64, len(cells))
			for i, v := range cells {
				if missing[i] {
					col.nums[i] = math.NaN()
					continue
				}
				x, _ := parseNumeric(v, opt)
				col.nums[i] = x
			}
		}
		ds.index[n] = j
		ds.cols = append(ds.cols, col)
	}
	return ds
}

// Name returns the base name of the source file.
func (d *Dataset) Name() string { return d.name }

// Rows returns the number of records.
func (d *Dataset) Rows() int { return d.rows }

// NumCols returns the number of columns.
func (d *Dataset) NumCols() int { return len(d.cols) }

// Columns returns the columns in header order.
func (d *Dataset) Columns() []*Column {
	out := make([]*Column, len(d.cols))
	copy(out, d.cols)
	return out
}

// Column looks up a column by name.
func (d *Dataset) Column(name string) (*Column, bool) {
	j, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.cols[j], true
}

// Schema returns the schema of every column in header order.
func (d *Dataset) Schema() []ColumnSchema {
	out := make([]ColumnSchema, len(d.cols))
	for i, c := range d.cols {
		out[i] = c.Schema()
	}
	return out
}

// uniqueHeader names blank headers "Unnamed: <idx>" and suffixes repeated
// names with ".1", ".2", ... in order of appearance.
func uniqueHeader(header []string) []string {
	out := make([]string, len(header))
	taken := make(map[string]bool, len(header))
	next := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		name := h
		for taken[name] {
			next[h]++
			name = fmt.Sprintf("%s.%d", h, next[h])
		}
		taken[name] = true
		out[i] = name
	}
	return out
}
