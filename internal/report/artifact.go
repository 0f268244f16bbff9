package report

import (
	"fmt"
	"path/filepath"
)

// Artifact names one rendered output.
type Artifact string

const (
	Histograms         Artifact = "histograms"
	Boxplots           Artifact = "boxplots"
	CorrelationHeatmap Artifact = "correlation_heatmap"
	Pairplot           Artifact = "pairplot"
)

// Artifacts lists every artifact in generation order.
var Artifacts = []Artifact{Histograms, Boxplots, CorrelationHeatmap, Pairplot}

// FileName returns the artifact's fixed file name.
func (a Artifact) FileName() string { return string(a) + ".png" }

// Path returns the artifact's file path under dir.
func (a Artifact) Path(dir string) string { return filepath.Join(dir, a.FileName()) }

// Title is the human label used in console notices.
func (a Artifact) Title() string {
	switch a {
	case CorrelationHeatmap:
		return "correlation heatmap"
	default:
		return string(a)
	}
}

// SkipReason explains why an artifact was not produced.
type SkipReason string

const (
	EmptyNumericSet                   SkipReason = "EmptyNumericSet"
	InsufficientColumnsForCorrelation SkipReason = "InsufficientColumnsForCorrelation"
	InsufficientColumnsForPairplot    SkipReason = "InsufficientColumnsForPairplot"
	NoCompleteRowsForPairplot         SkipReason = "NoCompleteRowsForPairplot"
)

// Message is the console notice for a skip reason.
func (r SkipReason) Message() string {
	switch r {
	case EmptyNumericSet:
		return "no numeric columns found; skipping plot generation"
	case InsufficientColumnsForCorrelation:
		return "not enough numeric columns to compute a correlation matrix"
	case InsufficientColumnsForPairplot:
		return "not enough numeric columns for pairplot"
	case NoCompleteRowsForPairplot:
		return "no complete rows for the selected columns"
	default:
		return string(r)
	}
}

// Outcome is either Produced(Path) or Skipped(Reason) for one artifact.
type Outcome struct {
	Artifact Artifact   `json:"artifact"`
	Path     string     `json:"path,omitempty"`
	Reason   SkipReason `json:"reason,omitempty"`
}

// Produced builds an outcome for an artifact written to path.
func Produced(a Artifact, path string) Outcome { return Outcome{Artifact: a, Path: path} }

// Skipped builds an outcome for an artifact whose preconditions were unmet.
func Skipped(a Artifact, reason SkipReason) Outcome { return Outcome{Artifact: a, Reason: reason} }

// IsProduced reports whether the artifact was written.
func (o Outcome) IsProduced() bool { return o.Reason == "" && o.Path != "" }

func (o Outcome) String() string {
	if o.IsProduced() {
		return fmt.Sprintf("produced %s -> %s", o.Artifact, o.Path)
	}
	return fmt.Sprintf("skipped %s: %s", o.Artifact, o.Reason)
}
