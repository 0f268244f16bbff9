package dataset_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/edareport-cli/internal/dataset"
)

func TestLocateReturnsFirstExisting(t *testing.T) {
	dir := t.TempDir()
	second := filepath.Join(dir, "titanic.csv")
	third := filepath.Join(dir, "other.csv")
	for _, p := range []string{second, third} {
		if err := os.WriteFile(p, []byte("a\n1\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	missing := filepath.Join(dir, "data", "titanic.csv")

	got, err := dataset.Locate([]string{missing, second, third})
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if got != second {
		t.Fatalf("Locate = %q, want %q", got, second)
	}
}

func TestLocateSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "data.csv")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := dataset.Locate([]string{sub}); !errors.Is(err, dataset.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for directory candidate, got %v", err)
	}
}

func TestLocateNotFoundNamesEveryPath(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		filepath.Join(dir, "data", "titanic.csv"),
		filepath.Join(dir, "titanic.csv"),
		filepath.Join(dir, "data", "titanic.csv.zip"),
	}
	_, err := dataset.Locate(paths)
	if !errors.Is(err, dataset.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var nf *dataset.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *NotFoundError, got %T", err)
	}
	if len(nf.Tried) != len(paths) {
		t.Fatalf("tried = %v", nf.Tried)
	}
	for _, p := range paths {
		if !strings.Contains(err.Error(), p) {
			t.Fatalf("message %q does not mention %s", err.Error(), p)
		}
	}
	if !strings.Contains(err.Error(), "--data") {
		t.Fatalf("message should tell the caller how to supply a path: %q", err.Error())
	}
}

func TestLocateEmptyCandidates(t *testing.T) {
	if _, err := dataset.Locate(nil); !errors.Is(err, dataset.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCheckCandidates(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "a.csv")
	if err := os.WriteFile(present, []byte("a\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	checks := dataset.CheckCandidates([]string{filepath.Join(dir, "nope.csv"), present, ""})
	if len(checks) != 3 || checks[0].Exists || !checks[1].Exists || checks[2].Exists {
		t.Fatalf("unexpected checks: %+v", checks)
	}
}
