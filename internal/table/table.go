// Package table holds the in-memory tabular model handed to the processing
// core, plus spreadsheet and CSV codecs. All cells are strings; typing
// happens at the validation boundary.
package table

// Table is one parsed sheet: an ordered header row and string cells.
// Short rows read from a sheet are padded to the header width.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Empty reports whether the table has no data rows.
func (t *Table) Empty() bool {
	return len(t.Rows) == 0
}

// ColumnIndex returns the position of a column by exact name, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, column name), or "" when the column is
// missing or the row is short.
func (t *Table) Cell(row int, name string) string {
	idx := t.ColumnIndex(name)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return ""
	}
	cells := t.Rows[row]
	if idx >= len(cells) {
		return ""
	}
	return cells[idx]
}
