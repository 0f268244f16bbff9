package dataset

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNotFound is matched by *NotFoundError via errors.Is.
var ErrNotFound = errors.New("dataset not found")

// NotFoundError reports that none of the candidate paths exist.
type NotFoundError struct {
	Tried []string
}

func (e *NotFoundError) Error() string {
	if len(e.Tried) == 0 {
		return "could not find the dataset: no candidate paths configured; pass a path with --data or set candidate_paths"
	}
	return fmt.Sprintf("could not find the dataset; place the file at one of: %s, or pass a path with --data",
		strings.Join(e.Tried, ", "))
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// Candidate is the existence check result for one candidate path.
type Candidate struct {
	Path   string
	Exists bool
}

// Locate returns the first candidate that exists as a regular file or
// symlink to one. It stops at the first match.
func Locate(candidates []string) (string, error) {
	for _, p := range candidates {
		if isFile(p) {
			return p, nil
		}
	}
	tried := make([]string, len(candidates))
	copy(tried, candidates)
	return "", &NotFoundError{Tried: tried}
}

// CheckCandidates checks every candidate without stopping at the first match.
func CheckCandidates(candidates []string) []Candidate {
	out := make([]Candidate, len(candidates))
	for i, p := range candidates {
		out[i] = Candidate{Path: p, Exists: isFile(p)}
	}
	return out
}

func isFile(path string) bool {
	if strings.TrimSpace(path) == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
