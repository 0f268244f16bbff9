package dataset

import (
	"archive/zip"
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// zipLoader reads the first delimited member of a zip archive, which is how
// compressed CSV exports (for example titanic.csv.zip) are usually shipped.
type zipLoader struct{}

func (zipLoader) CanLoad(p string) bool {
	return strings.HasSuffix(strings.ToLower(p), ".zip")
}

func (zipLoader) Load(p string, opt ParseOptions) (*Dataset, error) {
	zr, err := zip.OpenReader(p)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	defer zr.Close()

	var member *zip.File
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(path.Base(f.Name), ".") {
			continue
		}
		if (delimitedLoader{}).CanLoad(f.Name) {
			member = f
			break
		}
	}
	if member == nil {
		return nil, fmt.Errorf("zip %s: no .csv, .tsv or .txt member", filepath.Base(p))
	}
	rc, err := member.Open()
	if err != nil {
		return nil, fmt.Errorf("open zip member %s: %w", member.Name, err)
	}
	defer rc.Close()
	ds, err := ReadDelimited(rc, path.Base(member.Name), opt)
	if err != nil {
		return nil, err
	}
	ds.name = filepath.Base(p)
	return ds, nil
}
