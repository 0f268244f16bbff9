package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/KaramelBytes/edareport-cli/internal/utils"
)

// ErrOutputWrite is matched by *WriteError via errors.Is.
var ErrOutputWrite = errors.New("output write failure")

// WriteError reports that an artifact could not be persisted.
type WriteError struct {
	Artifact Artifact
	Path     string
	Err      error
}

func (e *WriteError) Error() string {
	if e.Artifact == "" {
		return fmt.Sprintf("prepare output directory %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("write %s to %s: %v", e.Artifact, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func (e *WriteError) Is(target error) bool { return target == ErrOutputWrite }

// Writer persists artifacts under a single output directory.
type Writer struct {
	dir string
}

// NewWriter returns a Writer for dir. The directory is created lazily.
func NewWriter(dir string) *Writer { return &Writer{dir: dir} }

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

// EnsureDir creates the output directory if it is absent.
func (w *Writer) EnsureDir() error {
	if err := utils.EnsureDir(w.dir); err != nil {
		return &WriteError{Path: w.dir, Err: err}
	}
	return nil
}

// Write stores data as <dir>/<artifact>.png, replacing any previous file.
func (w *Writer) Write(a Artifact, data []byte) (string, error) {
	if err := w.EnsureDir(); err != nil {
		return "", err
	}
	path := a.Path(w.dir)
	if err := utils.WriteFileAtomic(path, data); err != nil {
		return "", &WriteError{Artifact: a, Path: path, Err: err}
	}
	return path, nil
}

// Remove deletes a stale artifact left by an earlier run. A missing file is
// not an error.
func (w *Writer) Remove(a Artifact) error {
	path := a.Path(w.dir)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &WriteError{Artifact: a, Path: path, Err: err}
	}
	return nil
}
