package pipeline

import (
	"github.com/KaramelBytes/edareport-cli/internal/dataset"
	"github.com/KaramelBytes/edareport-cli/internal/render"
)

// Config is everything a run needs. It is passed in explicitly; the package
// keeps no mutable state of its own.
type Config struct {
	// CandidatePaths are tried in order; the first existing file wins.
	CandidatePaths []string
	OutputDir      string
	Parse          dataset.ParseOptions
	Render         render.Options
}

// DefaultCandidatePaths are the dataset locations tried when none are given.
var DefaultCandidatePaths = []string{"data/titanic.csv", "titanic.csv", "data/titanic.csv.zip"}

// DefaultOutputDir is where artifacts go unless configured otherwise.
const DefaultOutputDir = "outputs"

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	paths := make([]string, len(DefaultCandidatePaths))
	copy(paths, DefaultCandidatePaths)
	return Config{
		CandidatePaths: paths,
		OutputDir:      DefaultOutputDir,
		Render:         render.DefaultOptions(),
	}
}
