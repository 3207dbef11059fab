package processor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folha/internal/domain/advantage"
	"folha/internal/table"
)

func writeInput(t *testing.T, dir, name string, columns []string, rows [][]string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	err := table.WriteXLSX(path, table.Sheet{Name: "Sheet1", Table: &table.Table{Columns: columns, Rows: rows}})
	require.NoError(t, err)
	return path
}

var militaryColumns = []string{"OPERATION", "REGISTRATION", "CODE", "VALUE", "REFERENCE", "DEADLINE"}

func TestRunMilitaryEndToEnd(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()

	fileA := writeInput(t, dir, "a.xlsx", militaryColumns, [][]string{
		{"I", "100", "5", "", "24", "0"},
	})
	fileB := writeInput(t, dir, "b.xlsx", militaryColumns, [][]string{
		{"I", "100", "5", "", "120024", "0"},
	})

	res := RunMilitary([]advantage.Source{
		{Path: fileA, FriendlyName: "file A", Kind: advantage.KindStandard, HourLimit: 192},
		{Path: fileB, FriendlyName: "file B", Kind: advantage.KindStandard, HourLimit: 200},
	}, Options{OutputDir: out, Analysis: true, Log: func(string) {}})

	require.Equal(t, StatusSuccess, res.Status, res.Message)
	assert.Equal(t, filepath.Join(out, MilitaryDeploymentFile), res.OutputPaths[KeyDeployment])
	assert.Contains(t, res.OutputPaths, KeyTrace)
	assert.Contains(t, res.OutputPaths, KeyInternal)
	assert.Contains(t, res.OutputPaths, KeyAnalysis)

	deployment, err := table.ReadXLSX(res.OutputPaths[KeyDeployment])
	require.NoError(t, err)
	require.Len(t, deployment.Rows, 1)
	// 24 + 120024 = 120048 -> 120 majorated, 48 normal, 168 total <= 200.
	assert.Equal(t, []string{"I", "100", "5", "", "120048", "0"}, deployment.Rows[0])

	trace, err := table.ReadXLSX(res.OutputPaths[KeyTrace])
	require.NoError(t, err)
	assert.Len(t, trace.Rows, 2)
}

func TestRunMilitaryMagisterioCredit(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()

	aco := writeInput(t, dir, "aco.xlsx", militaryColumns, [][]string{
		{"I", "100", "5", "", "180", "0"},
	})
	mag := writeInput(t, dir, "mag.xlsx", []string{"REGISTRATION", "REFERENCE"}, [][]string{
		{"100", "30"},
	})

	res := RunMilitary([]advantage.Source{
		{Path: aco, FriendlyName: "aco", Kind: advantage.KindStandard, HourLimit: 192},
		{Path: mag, FriendlyName: "mag", Kind: advantage.KindMagisterio},
	}, Options{OutputDir: out, Log: func(string) {}})
	require.Equal(t, StatusSuccess, res.Status, res.Message)

	// 180 aco + 30 magisterio = 210 > 192: nothing deployable.
	deployment, err := table.ReadXLSX(res.OutputPaths[KeyDeployment])
	require.NoError(t, err)
	assert.Empty(t, deployment.Rows)
}

func TestRunStandardEndToEnd(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()

	columns := []string{"OPERATION", "REGISTRATION", "CODE", "REFERENCE", "DEADLINE"}
	file := writeInput(t, dir, "in.xlsx", columns, [][]string{
		{"I", "100", "5", "24", "0"},
		{"I", "200", "5", "120500", "0"},
	})

	res := RunStandard([]advantage.Source{
		{Path: file, FriendlyName: "civil", Kind: advantage.KindStandard, HourLimit: 192},
	}, Options{OutputDir: out, Analysis: true, Log: func(string) {}})
	require.Equal(t, StatusSuccess, res.Status, res.Message)

	deployment, err := table.ReadXLSX(res.OutputPaths[KeyDeployment])
	require.NoError(t, err)
	// 120500 -> 120 majorated + 500 normal = 620 hours, over the 192 ceiling.
	require.Len(t, deployment.Rows, 1)
	assert.Equal(t, "100", deployment.Rows[0][1])

	assert.NotContains(t, res.OutputPaths, KeyTrace, "trace is a military-only artifact")
	assert.NotContains(t, res.OutputPaths, KeyInternal)
}

func TestRunStandardAnalysisFailureKeepsDeployment(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()

	// A directory squatting on the analysis file name makes its write fail.
	require.NoError(t, os.Mkdir(filepath.Join(out, StandardAnalysisFile), 0o755))

	columns := []string{"OPERATION", "REGISTRATION", "CODE", "REFERENCE", "DEADLINE"}
	file := writeInput(t, dir, "in.xlsx", columns, [][]string{
		{"I", "100", "5", "24", "0"},
	})

	res := RunStandard([]advantage.Source{
		{Path: file, FriendlyName: "civil", Kind: advantage.KindStandard, HourLimit: 192},
	}, Options{OutputDir: out, Analysis: true, Log: func(string) {}})

	require.Equal(t, StatusSuccess, res.Status, res.Message)
	require.Contains(t, res.OutputPaths, KeyDeployment)
	assert.NotContains(t, res.OutputPaths, KeyAnalysis)
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "analysis")

	deployment, err := table.ReadXLSX(res.OutputPaths[KeyDeployment])
	require.NoError(t, err)
	assert.Len(t, deployment.Rows, 1)
}

func TestRunMilitaryInternalFailureKeepsDeployment(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()

	require.NoError(t, os.Mkdir(filepath.Join(out, MilitaryInternalFile), 0o755))

	file := writeInput(t, dir, "in.xlsx", militaryColumns, [][]string{
		{"I", "100", "5", "", "24", "0"},
	})

	res := RunMilitary([]advantage.Source{
		{Path: file, FriendlyName: "mil", Kind: advantage.KindStandard, HourLimit: 192},
	}, Options{OutputDir: out, Log: func(string) {}})

	require.Equal(t, StatusSuccess, res.Status, res.Message)
	require.Contains(t, res.OutputPaths, KeyDeployment)
	assert.Contains(t, res.OutputPaths, KeyTrace)
	assert.NotContains(t, res.OutputPaths, KeyInternal)
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "internal structure")
}

func TestRunNoInput(t *testing.T) {
	res := RunMilitary(nil, Options{OutputDir: t.TempDir(), Log: func(string) {}})
	assert.Equal(t, StatusError, res.Status)
	assert.NotEmpty(t, res.Message)
}
