package dataset

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

type xlsxLoader struct{}

func (xlsxLoader) CanLoad(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".xlsx")
}

// Load reads the sheet named by opt.Sheet, or the first sheet. The first
// non-empty row is the header.
func (xlsxLoader) Load(path string, opt ParseOptions) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrEmpty)
	}
	sheet := sheets[0]
	if opt.Sheet != "" {
		sheet = ""
		for _, s := range sheets {
			if strings.EqualFold(s, opt.Sheet) {
				sheet = s
				break
			}
		}
		if sheet == "" {
			return nil, fmt.Errorf("sheet '%s' not found in workbook '%s'; available sheets: %s",
				opt.Sheet, filepath.Base(path), strings.Join(sheets, ", "))
		}
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	start := 0
	for start < len(rows) && isBlankRecord(rows[start]) {
		start++
	}
	if start == len(rows) {
		return nil, fmt.Errorf("%s (sheet %s): %w", filepath.Base(path), sheet, ErrEmpty)
	}
	header := rows[start]
	var records [][]string
	for _, r := range rows[start+1:] {
		if isBlankRecord(r) {
			continue
		}
		records = append(records, r)
	}
	return New(filepath.Base(path), header, records, opt), nil
}
