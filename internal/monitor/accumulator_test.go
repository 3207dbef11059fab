package monitor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folha/internal/table"
)

func TestAccumulatorDeduplicates(t *testing.T) {
	acc := NewAccumulator()

	added, err := acc.AddCSV("I,100,5,,24,0\nI,200,5,,48,0\n")
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	// Second batch repeats one row exactly.
	added, err = acc.AddCSV("I,100,5,,24,0\nI,300,5,,10,0\n")
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, 3, acc.Len())
}

func TestAccumulatorClear(t *testing.T) {
	acc := NewAccumulator()
	_, err := acc.AddCSV("I,100,5,,24,0\n")
	require.NoError(t, err)
	require.False(t, acc.Empty())

	acc.Clear()
	assert.True(t, acc.Empty())

	// A cleared accumulator accepts previously seen rows again.
	added, err := acc.AddCSV("I,100,5,,24,0\n")
	require.NoError(t, err)
	assert.Equal(t, 1, added)
}

func TestAccumulatorSaveEmpty(t *testing.T) {
	acc := NewAccumulator()
	assert.ErrorIs(t, acc.SaveCSV(filepath.Join(t.TempDir(), "out.csv")), ErrEmptyAccumulator)
	assert.ErrorIs(t, acc.SaveXLSX(filepath.Join(t.TempDir(), "out.xlsx")), ErrEmptyAccumulator)
}

func TestAccumulatorSaveCSV(t *testing.T) {
	acc := NewAccumulator()
	_, err := acc.AddCSV("I,100,5,,24,0\n")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, acc.SaveCSV(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "OPERATION,REGISTRATION,CODE,VALUE,REFERENCE,DEADLINE", lines[0])
	assert.Equal(t, "I,100,5,,24,0", lines[1])
}

func TestAccumulatorSaveXLSX(t *testing.T) {
	acc := NewAccumulator()
	_, err := acc.AddCSV("I,100,5,,24,0\n")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, acc.SaveXLSX(path))

	tbl, err := table.ReadXLSX(path)
	require.NoError(t, err)
	assert.Equal(t, columns, tbl.Columns)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, []string{"I", "100", "5", "", "24", "0"}, tbl.Rows[0])
}
