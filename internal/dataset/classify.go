package dataset

import (
	"math"
	"strconv"
	"strings"
)

// missingTokens are the cell values read as missing, matching the usual
// dataframe defaults.
var missingTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// IsMissingToken reports whether a trimmed cell denotes a missing value.
func IsMissingToken(s string) bool {
	_, ok := missingTokens[s]
	return ok
}

// Classify infers the kind of a column from its raw cells. Missing markers
// are ignored; a column with rows but no present values is numeric (all-NaN),
// while a column with no rows at all is text.
// A column is boolean when every present value is a true/false literal,
// numeric when every present value parses as a number, and text otherwise.
func Classify(cells []string, opt ParseOptions) Kind {
	missing := make([]bool, len(cells))
	for i, v := range cells {
		missing[i] = IsMissingToken(strings.TrimSpace(v))
	}
	k, _ := classifyCells(cells, missing, opt)
	return k
}

func classifyCells(cells []string, missing []bool, opt ParseOptions) (Kind, bool) {
	present := 0
	boolean, numeric, integer := true, true, true
	for i, raw := range cells {
		if missing[i] {
			continue
		}
		v := strings.TrimSpace(raw)
		present++
		if boolean {
			if _, ok := parseBool(v); !ok {
				boolean = false
			}
		}
		if numeric {
			if _, ok := parseNumeric(v, opt); !ok {
				numeric = false
				integer = false
			} else if integer && !isIntegerLiteral(v, opt) {
				integer = false
			}
		}
		if !boolean && !numeric {
			return KindText, false
		}
	}
	switch {
	case len(cells) == 0:
		return KindText, false
	case present == 0:
		return KindNumeric, false
	case boolean:
		return KindBoolean, false
	case numeric:
		return KindNumeric, integer
	default:
		return KindText, false
	}
}

// SelectNumeric returns the names of numeric columns in schema order.
func SelectNumeric(schema []ColumnSchema) []string {
	var out []string
	for _, c := range schema {
		if c.Kind == KindNumeric {
			out = append(out, c.Name)
		}
	}
	return out
}

func parseBool(s string) (bool, bool) {
	switch s {
	case "True", "TRUE", "true":
		return true, true
	case "False", "FALSE", "false":
		return false, true
	}
	return false, false
}

func isIntegerLiteral(s string, opt ParseOptions) bool {
	raw := stripThousands(s, opt)
	_, err := strconv.ParseInt(raw, 10, 64)
	return err == nil
}

func stripThousands(s string, opt ParseOptions) string {
	if opt.ThousandsSeparator != 0 && opt.ThousandsSeparator != opt.DecimalSeparator {
		return strings.ReplaceAll(s, string(opt.ThousandsSeparator), "")
	}
	return s
}

// parseNumeric parses a cell with the configured locale. Without a decimal
// separator only plain floats are accepted, so "1,234" stays text.
func parseNumeric(s string, opt ParseOptions) (float64, bool) {
	raw := strings.ReplaceAll(strings.TrimSpace(s), "\u00A0", " ")
	if raw == "" {
		return 0, false
	}
	if opt.DecimalSeparator == 0 {
		f, err := strconv.ParseFloat(raw, 64)
		return f, err == nil && !math.IsNaN(f)
	}
	raw = stripThousands(raw, opt)
	if opt.DecimalSeparator != '.' {
		if strings.Contains(raw, ".") {
			return 0, false
		}
		raw = strings.ReplaceAll(raw, string(opt.DecimalSeparator), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
