package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type delimitedLoader struct{}

func (delimitedLoader) CanLoad(path string) bool {
	name := strings.ToLower(path)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv") || strings.HasSuffix(name, ".txt")
}

func (delimitedLoader) Load(path string, opt ParseOptions) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return ReadDelimited(f, filepath.Base(path), opt)
}

// ReadDelimited reads a header row and records from r. name is used for the
// dataset name and, when opt.Delimiter is 0, to pick the delimiter.
func ReadDelimited(r io.Reader, name string, opt ParseOptions) (*Dataset, error) {
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(name)
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comma = delim

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w", name, ErrEmpty)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	var records [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}
	return New(name, header, records, opt), nil
}

func sniffDelimiter(name string) rune {
	if strings.HasSuffix(strings.ToLower(name), ".tsv") {
		return '\t'
	}
	return ','
}

func isBlankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
