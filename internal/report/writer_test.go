package report_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/edareport-cli/internal/report"
)

func TestWriterCreatesDirAndOverwrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "outputs")
	w := report.NewWriter(dir)

	p, err := w.Write(report.Histograms, []byte("first"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "histograms.png"), p)

	_, err = w.Write(report.Histograms, []byte("second"))
	require.NoError(t, err)

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "second", string(b))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriterRemove(t *testing.T) {
	dir := t.TempDir()
	w := report.NewWriter(dir)
	_, err := w.Write(report.Pairplot, []byte("x"))
	require.NoError(t, err)

	require.NoError(t, w.Remove(report.Pairplot))
	require.NoError(t, w.Remove(report.Pairplot), "removing a missing artifact is not an error")
	_, err = os.Stat(report.Pairplot.Path(dir))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestWriterFailureIsOutputWriteError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file-as-directory semantics differ on windows")
	}
	base := t.TempDir()
	blocker := filepath.Join(base, "outputs")
	require.NoError(t, os.WriteFile(blocker, []byte("not a dir"), 0o644))

	_, err := report.NewWriter(blocker).Write(report.Boxplots, []byte("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, report.ErrOutputWrite)
	var we *report.WriteError
	require.True(t, errors.As(err, &we))
	assert.Equal(t, blocker, we.Path)
}

func TestOutcomes(t *testing.T) {
	p := report.Produced(report.Histograms, "/out/histograms.png")
	assert.True(t, p.IsProduced())
	s := report.Skipped(report.Pairplot, report.NoCompleteRowsForPairplot)
	assert.False(t, s.IsProduced())
	assert.Equal(t, "skipped pairplot: NoCompleteRowsForPairplot", s.String())
	assert.Equal(t, "correlation_heatmap.png", report.CorrelationHeatmap.FileName())
}
