package table

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// ReadCSVString parses CSV content without a header row into a Table using
// the supplied column names. Rows narrower than the column set are padded.
func ReadCSVString(content string, columns []string) (*Table, error) {
	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv content: %w", err)
	}
	t := &Table{Columns: append([]string(nil), columns...)}
	for _, rec := range records {
		cells := make([]string, len(columns))
		copy(cells, rec)
		t.Rows = append(t.Rows, cells)
	}
	return t, nil
}

// ReadCSVFile parses a CSV file whose first row is the header.
func ReadCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening csv file %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv file %s: %w", path, err)
	}
	t := &Table{}
	if len(records) == 0 {
		return t, nil
	}
	t.Columns = records[0]
	for _, rec := range records[1:] {
		cells := make([]string, len(t.Columns))
		copy(cells, rec)
		t.Rows = append(t.Rows, cells)
	}
	return t, nil
}

// WriteCSV writes the table with its header row to path.
func WriteCSV(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating csv file %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
