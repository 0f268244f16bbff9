package dataset

import (
	"errors"
	"fmt"
	"os"
)

// Loader reads one file format into a Dataset.
type Loader interface {
	CanLoad(path string) bool
	Load(path string, opt ParseOptions) (*Dataset, error)
}

var registry []Loader

// Register adds a loader implementation to the registry. Earlier
// registrations win when several loaders accept a path.
func Register(l Loader) {
	registry = append(registry, l)
}

// ErrEmpty indicates a source with no header row.
var ErrEmpty = errors.New("dataset has no header row")

// Load selects a loader based on the file name and reads the dataset.
// Unknown extensions are read as delimited text.
func Load(path string, opt ParseOptions) (*Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat dataset: %w", err)
	}
	for _, l := range registry {
		if l.CanLoad(path) {
			return l.Load(path, opt)
		}
	}
	return delimitedLoader{}.Load(path, opt)
}

func init() {
	Register(zipLoader{})
	Register(xlsxLoader{})
	Register(delimitedLoader{})
}
