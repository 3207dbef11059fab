// Package merge consolidates several spreadsheet exports into a single
// workbook with per-row provenance, plus a PDF processing log.
package merge

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"folha/internal/table"
)

var ErrNoReadableFiles = errors.New("no readable input files")

// SourceFileColumn is appended to every merged row.
const SourceFileColumn = "SOURCE_FILE"

// FileCount is the per-file row tally reported in the summary.
type FileCount struct {
	Name string
	Rows int
}

// Result of one merge run.
type Result struct {
	OutputPath string
	LogPath    string
	TotalRows  int
	Files      []FileCount
	Skipped    []string
}

// Merger reads the first sheet of each input and stacks the rows under the
// first readable file's header.
type Merger struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Merger {
	if log == nil {
		log = slog.Default()
	}
	return &Merger{log: log}
}

// Merge consolidates paths into outputDir. Unreadable files are logged and
// skipped; zero readable files is an error.
func (m *Merger) Merge(paths []string, outputDir string) (*Result, error) {
	res := &Result{}
	var merged *table.Table

	for _, path := range paths {
		t, err := table.ReadXLSX(path)
		if err != nil {
			m.log.Warn("skipping unreadable file", "file", path, "err", err)
			res.Skipped = append(res.Skipped, filepath.Base(path))
			continue
		}
		if merged == nil {
			merged = &table.Table{Columns: append(append([]string{}, t.Columns...), SourceFileColumn)}
		}

		name := filepath.Base(path)
		width := len(merged.Columns) - 1
		for _, row := range t.Rows {
			out := make([]string, width+1)
			copy(out, row)
			out[width] = name
			merged.Rows = append(merged.Rows, out)
		}
		res.Files = append(res.Files, FileCount{Name: name, Rows: len(t.Rows)})
		res.TotalRows += len(t.Rows)
	}

	if merged == nil {
		return nil, ErrNoReadableFiles
	}

	stamp := time.Now().Format("20060102_150405")
	res.OutputPath = filepath.Join(outputDir, "consolidado_"+stamp+".xlsx")
	if err := table.WriteXLSX(res.OutputPath, table.Sheet{Name: "Consolidated", Table: merged}); err != nil {
		return nil, fmt.Errorf("writing consolidated file: %w", err)
	}

	res.LogPath = filepath.Join(outputDir, "log_processamento_"+stamp+".pdf")
	if err := writeLog(res); err != nil {
		return nil, fmt.Errorf("writing log pdf: %w", err)
	}

	m.log.Info("merge complete", "files", len(res.Files), "rows", res.TotalRows, "output", res.OutputPath)
	return res, nil
}

func writeLog(res *Result) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "File Merge Log")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Processed at: %s", time.Now().Format("2006-01-02 15:04:05")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Files merged: %d", len(res.Files)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total rows: %d", res.TotalRows))
	pdf.Ln(10)
	for _, fc := range res.Files {
		pdf.Cell(0, 8, fmt.Sprintf("%s: %d rows", fc.Name, fc.Rows))
		pdf.Ln(7)
	}
	for _, name := range res.Skipped {
		pdf.Cell(0, 8, fmt.Sprintf("%s: skipped (unreadable)", name))
		pdf.Ln(7)
	}
	return pdf.OutputFileAndClose(res.LogPath)
}
