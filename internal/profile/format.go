package profile

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/KaramelBytes/edareport-cli/internal/dataset"
)

// WriteText prints the info, summary statistics and missing-value sections
// as aligned console tables.
func (p *Profile) WriteText(w io.Writer) error {
	var b strings.Builder

	b.WriteString("=== Data Info ===\n")
	fmt.Fprintf(&b, "File: %s\n", p.Name)
	fmt.Fprintf(&b, "Rows: %d, Columns: %d\n", p.Rows, len(p.Columns))
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tColumn\tNon-Null Count\tDtype")
	for i, c := range p.Columns {
		fmt.Fprintf(tw, "%d\t%s\t%d non-null\t%s\n", i, safeName(c.Name), c.Count, c.DType)
	}
	tw.Flush()

	b.WriteString("\n=== Summary Statistics ===\n")
	tw = tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "column\tcount\tunique\ttop\tfreq\tmean\tstd\tmin\t25%\t50%\t75%\tmax\t")
	for _, c := range p.Columns {
		fmt.Fprintf(tw, "%s\t%d\t", safeName(c.Name), c.Count)
		if c.Kind == dataset.KindNumeric {
			fmt.Fprint(tw, "-\t-\t-\t")
		} else {
			fmt.Fprintf(tw, "%d\t%s\t%d\t", c.Unique, clip(safeVal(c.Top), 24), c.Freq)
		}
		if s := c.Numeric; s != nil {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
				num(s.Mean), num(s.Std), num(s.Min), num(s.Q25), num(s.Q50), num(s.Q75), num(s.Max))
		} else {
			fmt.Fprint(tw, "-\t-\t-\t-\t-\t-\t-\t\n")
		}
	}
	tw.Flush()

	b.WriteString("\n=== Missing Values (per column) ===\n")
	tw = tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	for _, c := range p.Columns {
		fmt.Fprintf(tw, "%s\t%d\n", safeName(c.Name), c.Missing)
	}
	tw.Flush()

	_, err := io.WriteString(w, b.String())
	return err
}

// Markdown renders the profile as a compact Markdown document.
func (p *Profile) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if p.Name != "" {
		fmt.Fprintf(&b, "File: %s\n", p.Name)
	}
	fmt.Fprintf(&b, "Rows: %d\n", p.Rows)
	fmt.Fprintf(&b, "Columns: %d\n\n", len(p.Columns))

	b.WriteString("[SCHEMA]\n")
	for _, c := range p.Columns {
		total := c.Count + c.Missing
		missPct := 0.0
		if total > 0 {
			missPct = float64(c.Missing) * 100.0 / float64(total)
		}
		fmt.Fprintf(&b, "- %s: %s/%s (non-null %d, missing %.1f%%)", safeName(c.Name), c.Kind, c.DType, c.Count, missPct)
		switch {
		case c.Numeric != nil:
			s := c.Numeric
			fmt.Fprintf(&b, " — min %.4g, q1 %.4g, median %.4g, q3 %.4g, max %.4g, mean %.4g, std %.4g",
				s.Min, s.Q25, s.Q50, s.Q75, s.Max, s.Mean, s.Std)
		case c.Freq > 0:
			fmt.Fprintf(&b, " — top: %s(%d); unique=%d", safeVal(c.Top), c.Freq, c.Unique)
		}
		b.WriteString("\n")
	}

	if p.MissingTotal() > 0 {
		b.WriteString("\n[MISSING VALUES]\n")
		for _, c := range p.Columns {
			if c.Missing > 0 {
				fmt.Fprintf(&b, "- %s: %d\n", safeName(c.Name), c.Missing)
			}
		}
	}
	return b.String()
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
