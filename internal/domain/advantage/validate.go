package advantage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"folha/internal/money"
	"folha/internal/normalize"
	"folha/internal/table"
)

// Result is the outcome of validating one input file. On success Err is nil
// and Records/Table carry the normalized data consumed by the engine instead
// of the raw file. On failure Err wraps one of the sentinel errors in
// errors.go and Message points at the offending row.
type Result struct {
	Err            error
	Message        string
	Warnings       []string
	Records        []RawRecord
	Table          *table.Table
	DroppedZeroRef int
}

// OK reports whether validation succeeded.
func (r *Result) OK() bool {
	return r.Err == nil
}

var (
	deadlineSuffix  = regexp.MustCompile(`\.0*$`)
	referenceSuffix = regexp.MustCompile(`,0*$`)
)

func requiredColumns(variant Variant) []string {
	if variant == VariantMilitary {
		return []string{ColOperation, ColRegistration, ColCode, ColValue, ColReference, ColDeadline}
	}
	return []string{ColOperation, ColRegistration, ColCode, ColReference, ColDeadline}
}

// Validate reads and validates the file at path for the given variant.
func Validate(path string, variant Variant) *Result {
	if _, err := os.Stat(path); err != nil {
		return &Result{
			Err:     fmt.Errorf("%w: %s", ErrFileNotFound, path),
			Message: fmt.Sprintf("file not found: %s", path),
		}
	}
	t, err := readInput(path)
	if err != nil {
		return &Result{
			Err:     err,
			Message: fmt.Sprintf("could not read %s: %v", filepath.Base(path), err),
		}
	}
	return ValidateTable(t, variant)
}

// ValidateTable validates an already-loaded table. The input table is not
// mutated; the returned Result owns a fresh normalized copy.
func ValidateTable(t *table.Table, variant Variant) *Result {
	if t.Empty() {
		return &Result{Err: ErrEmptyFile, Message: "the input file is empty"}
	}

	required := requiredColumns(variant)
	wt, warnings, err := remapColumns(t, required)
	if err != nil {
		return &Result{Err: err, Message: err.Error()}
	}

	res := &Result{Warnings: warnings}

	// Required text columns must have no empty cells. Checked in the same
	// order the operators are used to seeing errors reported.
	for _, col := range []string{ColRegistration, ColOperation, ColCode} {
		for i := range wt.Rows {
			if strings.TrimSpace(wt.Cell(i, col)) == "" {
				res.Err = fmt.Errorf("%w: %s", ErrEmptyRequiredField, col)
				res.Message = fmt.Sprintf("column %q has an empty cell; check spreadsheet row %d", col, i+2)
				return res
			}
		}
	}

	cents := make([]int64, len(wt.Rows))
	if variant == VariantMilitary {
		for i := range wt.Rows {
			raw := wt.Cell(i, ColValue)
			s := strings.TrimSpace(raw)
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
			if s != "" {
				if _, err := strconv.ParseFloat(s, 64); err != nil {
					res.Err = fmt.Errorf("%w: %s", ErrInvalidNumber, ColValue)
					res.Message = fmt.Sprintf("column %q contains %q, which is not a valid number; check spreadsheet row %d", ColValue, raw, i+2)
					return res
				}
			}
			cents[i] = money.ToCents(raw)
		}
	}

	deadlines := make([]int64, len(wt.Rows))
	for i := range wt.Rows {
		raw := wt.Cell(i, ColDeadline)
		s := deadlineSuffix.ReplaceAllString(strings.TrimSpace(raw), "")
		if s == "" {
			continue
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			res.Err = fmt.Errorf("%w: %s", ErrInvalidInteger, ColDeadline)
			res.Message = fmt.Sprintf("column %q contains %q, which is not a valid integer; check spreadsheet row %d", ColDeadline, raw, i+2)
			return res
		}
		deadlines[i] = int64(f)
	}

	refs := make([]int64, len(wt.Rows))
	for i := range wt.Rows {
		raw := wt.Cell(i, ColReference)
		s := strings.ReplaceAll(strings.TrimSpace(raw), ".", "")
		s = referenceSuffix.ReplaceAllString(s, "")
		if s == "" {
			continue
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			res.Err = fmt.Errorf("%w: %s", ErrInvalidNumber, ColReference)
			res.Message = fmt.Sprintf("column %q contains %q, which is not a valid number; check spreadsheet row %d", ColReference, raw, i+2)
			return res
		}
		refs[i] = int64(f)
	}

	// Rows with a zero reference carry nothing deployable and are dropped
	// before consolidation.
	for i := range wt.Rows {
		if refs[i] == 0 {
			res.DroppedZeroRef++
			continue
		}
		op := normalize.Clean(wt.Cell(i, ColOperation))
		if op == "" {
			op = "I"
		}
		res.Records = append(res.Records, RawRecord{
			Operation:    op,
			Registration: normalize.Clean(wt.Cell(i, ColRegistration)),
			Code:         normalize.Clean(wt.Cell(i, ColCode)),
			Reference:    refs[i],
			Deadline:     strconv.FormatInt(deadlines[i], 10),
			ValueCents:   cents[i],
		})
	}
	if res.DroppedZeroRef > 0 {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("%d row(s) with reference 0 were removed from processing", res.DroppedZeroRef))
	}

	res.Table = normalizedTable(required, res.Records)
	res.Message = "file is valid."
	if len(res.Warnings) > 0 {
		res.Message += " " + strings.Join(res.Warnings, "; ")
	}
	return res
}

// remapColumns folds accents/case on headers and, when the canonical names
// still do not line up, renames the leading columns positionally. Header
// drift in upstream exports is tolerated on purpose.
func remapColumns(t *table.Table, required []string) (*table.Table, []string, error) {
	canonical := make(map[string]string, len(required))
	for _, name := range required {
		canonical[name] = name
	}

	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		folded := normalize.FoldHeader(c)
		if name, ok := canonical[folded]; ok {
			cols[i] = name
		} else {
			cols[i] = c
		}
	}

	var warnings []string
	if !containsAll(cols, required) {
		if len(cols) < len(required) {
			return nil, nil, fmt.Errorf("%w: the file has only %d columns, %d are required",
				ErrInsufficientColumns, len(cols), len(required))
		}
		renames := make([]string, 0, len(required))
		for i, name := range required {
			if cols[i] != name {
				renames = append(renames, fmt.Sprintf("%q -> %q", cols[i], name))
			}
			cols[i] = name
		}
		if len(renames) > 0 {
			warnings = append(warnings, "columns renamed automatically: "+strings.Join(renames, ", "))
		}
	}

	return &table.Table{Columns: cols, Rows: t.Rows}, warnings, nil
}

func containsAll(cols, required []string) bool {
	have := make(map[string]bool, len(cols))
	for _, c := range cols {
		have[c] = true
	}
	for _, r := range required {
		if !have[r] {
			return false
		}
	}
	return true
}

// normalizedTable rebuilds the kept rows under the canonical column set,
// for the internal-structure dump and for callers that want the cleaned
// table rather than typed records.
func normalizedTable(columns []string, records []RawRecord) *table.Table {
	t := &table.Table{Columns: append([]string(nil), columns...)}
	for _, r := range records {
		row := make([]string, 0, len(columns))
		for _, col := range columns {
			switch col {
			case ColOperation:
				row = append(row, r.Operation)
			case ColRegistration:
				row = append(row, r.Registration)
			case ColCode:
				row = append(row, r.Code)
			case ColValue:
				row = append(row, money.FromCents(r.ValueCents))
			case ColReference:
				row = append(row, strconv.FormatInt(r.Reference, 10))
			case ColDeadline:
				row = append(row, r.Deadline)
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// readInput loads a spreadsheet or CSV export depending on the extension.
func readInput(path string) (*table.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return table.ReadCSVFile(path)
	default:
		return table.ReadXLSX(path)
	}
}
