package table

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ErrNoSheets is returned for workbooks with no usable sheet.
var ErrNoSheets = errors.New("workbook has no sheets")

// ReadXLSX reads the first sheet of a workbook into a Table. The first row is
// the header; short data rows are padded to the header width.
func ReadXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	return readSheet(f, sheets[0])
}

func readSheet(f *excelize.File, sheet string) (*Table, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	t := &Table{}
	if len(rows) == 0 {
		return t, nil
	}
	t.Columns = rows[0]
	for _, row := range rows[1:] {
		cells := make([]string, len(t.Columns))
		copy(cells, row)
		t.Rows = append(t.Rows, cells)
	}
	return t, nil
}

// Sheet pairs a sheet name with its contents for multi-sheet workbooks.
type Sheet struct {
	Name  string
	Table *Table
}

// WriteXLSX writes one or more sheets to a workbook at path.
func WriteXLSX(path string, sheets ...Sheet) error {
	if len(sheets) == 0 {
		return errors.New("no sheets to write")
	}
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		name := s.Name
		if i == 0 {
			// excelize seeds the workbook with a default sheet; rename it.
			defaultName := f.GetSheetName(0)
			if err := f.SetSheetName(defaultName, name); err != nil {
				return fmt.Errorf("renaming sheet to %q: %w", name, err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return fmt.Errorf("creating sheet %q: %w", name, err)
			}
		}
		if err := writeSheet(f, name, s.Table); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, t *Table) error {
	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("writing header of %q: %w", name, err)
	}
	for i, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, axis, &cells); err != nil {
			return fmt.Errorf("writing row %d of %q: %w", i+2, name, err)
		}
	}
	return nil
}
