package tariff

import (
	"fmt"

	"folha/internal/normalize"
	"folha/internal/table"
)

// BatchRow is one successfully priced row of an imported spreadsheet.
type BatchRow struct {
	Registration string
	CLF          string
	Code         string
	Reference    string
	Notes        string
	Calculation
}

// BatchResult collects priced rows and per-row errors; one bad row never
// aborts the batch.
type BatchResult struct {
	Rows   []BatchRow
	Errors []string
}

var batchRequired = []string{"REGISTRATION", "CLF", "REFERENCE"}

// ProcessFile prices every row of an imported spreadsheet with REGISTRATION,
// CLF and REFERENCE columns (CODE and NOTES optional). Row errors carry the
// 1-indexed spreadsheet row number.
func (r *Rates) ProcessFile(path string) (*BatchResult, error) {
	t, err := table.ReadXLSX(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}
	for _, col := range batchRequired {
		if t.ColumnIndex(col) < 0 {
			return nil, fmt.Errorf("required column %s not found", col)
		}
	}

	res := &BatchResult{}
	for i := range t.Rows {
		registration := normalize.Clean(t.Cell(i, "REGISTRATION"))
		clf := normalize.Clean(t.Cell(i, "CLF"))
		ref := normalize.Clean(t.Cell(i, "REFERENCE"))
		code := normalize.Clean(t.Cell(i, "CODE"))
		notes := t.Cell(i, "NOTES")

		if registration == "" || clf == "" || ref == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: required fields missing", i+2))
			continue
		}

		calc, err := r.Calculate(clf, ref, code)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("row %d (registration %s): %v", i+2, registration, err))
			continue
		}
		res.Rows = append(res.Rows, BatchRow{
			Registration: registration,
			CLF:          clf,
			Code:         code,
			Reference:    ref,
			Notes:        notes,
			Calculation:  calc,
		})
	}
	return res, nil
}
