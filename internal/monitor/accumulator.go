package monitor

import (
	"os"
	"strings"
	"sync"

	"github.com/gocarina/gocsv"

	"folha/internal/table"
)

// Row is one accumulated advantage record in canonical column order.
type Row struct {
	Operation    string `csv:"OPERATION"`
	Registration string `csv:"REGISTRATION"`
	Code         string `csv:"CODE"`
	Value        string `csv:"VALUE"`
	Reference    string `csv:"REFERENCE"`
	Deadline     string `csv:"DEADLINE"`
}

func (r Row) key() string {
	return strings.Join([]string{r.Operation, r.Registration, r.Code, r.Value, r.Reference, r.Deadline}, "\x1f")
}

func (r Row) fields() []string {
	return []string{r.Operation, r.Registration, r.Code, r.Value, r.Reference, r.Deadline}
}

var columns = []string{"OPERATION", "REGISTRATION", "CODE", "VALUE", "REFERENCE", "DEADLINE"}

// Accumulator collects rows from watched files, dropping exact duplicates.
// Safe for concurrent use; the monitor appends from its event goroutine while
// callers may save or clear at any time.
type Accumulator struct {
	mu   sync.Mutex
	rows []Row
	seen map[string]struct{}
}

func NewAccumulator() *Accumulator {
	return &Accumulator{seen: make(map[string]struct{})}
}

// AddCSV parses headerless CSV content in the canonical column order and
// appends every row not already present. Returns how many rows were new.
func (a *Accumulator) AddCSV(content string) (int, error) {
	t, err := table.ReadCSVString(content, columns)
	if err != nil {
		return 0, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	added := 0
	for i := range t.Rows {
		row := Row{
			Operation:    t.Cell(i, "OPERATION"),
			Registration: t.Cell(i, "REGISTRATION"),
			Code:         t.Cell(i, "CODE"),
			Value:        t.Cell(i, "VALUE"),
			Reference:    t.Cell(i, "REFERENCE"),
			Deadline:     t.Cell(i, "DEADLINE"),
		}
		if _, dup := a.seen[row.key()]; dup {
			continue
		}
		a.seen[row.key()] = struct{}{}
		a.rows = append(a.rows, row)
		added++
	}
	return added, nil
}

func (a *Accumulator) Rows() []Row {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Row, len(a.rows))
	copy(out, a.rows)
	return out
}

func (a *Accumulator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.rows)
}

func (a *Accumulator) Empty() bool {
	return a.Len() == 0
}

func (a *Accumulator) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rows = nil
	a.seen = make(map[string]struct{})
}

// SaveCSV writes the accumulated rows with a header row.
func (a *Accumulator) SaveCSV(path string) error {
	rows := a.Rows()
	if len(rows) == 0 {
		return ErrEmptyAccumulator
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.MarshalFile(&rows, f)
}

// SaveXLSX writes the accumulated rows as a single-sheet workbook.
func (a *Accumulator) SaveXLSX(path string) error {
	rows := a.Rows()
	if len(rows) == 0 {
		return ErrEmptyAccumulator
	}
	t := &table.Table{Columns: columns}
	for _, row := range rows {
		t.Rows = append(t.Rows, row.fields())
	}
	return table.WriteXLSX(path, table.Sheet{Name: "Accumulated", Table: t})
}
