package merge

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folha/internal/table"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeWorkbook(t *testing.T, dir, name string, columns []string, rows [][]string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, table.WriteXLSX(path, table.Sheet{Name: "Sheet1", Table: &table.Table{Columns: columns, Rows: rows}}))
	return path
}

func TestMergeAppendsProvenance(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()
	a := writeWorkbook(t, dir, "a.xlsx", []string{"REGISTRATION", "CODE"}, [][]string{{"100", "5"}, {"200", "7"}})
	b := writeWorkbook(t, dir, "b.xlsx", []string{"REGISTRATION", "CODE"}, [][]string{{"300", "9"}})

	res, err := New(quietLogger()).Merge([]string{a, b}, out)
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalRows)

	merged, err := table.ReadXLSX(res.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"REGISTRATION", "CODE", "SOURCE_FILE"}, merged.Columns)
	require.Len(t, merged.Rows, 3)
	assert.Equal(t, []string{"100", "5", "a.xlsx"}, merged.Rows[0])
	assert.Equal(t, []string{"300", "9", "b.xlsx"}, merged.Rows[2])

	info, err := os.Stat(res.LogPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestMergeSkipsUnreadable(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()
	good := writeWorkbook(t, dir, "good.xlsx", []string{"REGISTRATION"}, [][]string{{"100"}})
	missing := filepath.Join(dir, "missing.xlsx")

	res, err := New(quietLogger()).Merge([]string{missing, good}, out)
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalRows)
	assert.Equal(t, []string{"missing.xlsx"}, res.Skipped)
}

func TestMergeAllUnreadable(t *testing.T) {
	_, err := New(quietLogger()).Merge([]string{filepath.Join(t.TempDir(), "nope.xlsx")}, t.TempDir())
	assert.ErrorIs(t, err, ErrNoReadableFiles)
}
