package advantage

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"folha/internal/money"
	"folha/internal/normalize"
	"folha/internal/table"
)

// Engine aggregates validated advantage files into per-employee, per-code
// entries. One Engine value serves one run; the accumulation maps are never
// shared across runs.
type Engine struct {
	variant Variant
	log     func(string)
}

// NewEngine returns an engine for the given variant. logf receives all
// narrative progress and warnings; nil falls back to slog.
func NewEngine(variant Variant, logf func(string)) *Engine {
	if logf == nil {
		logf = func(msg string) { slog.Info(msg) }
	}
	return &Engine{variant: variant, log: logf}
}

// Consolidate merges every standard-kind source, in caller order, into a
// fresh Consolidation. A source that cannot be read is logged and skipped
// whole; its rows never reach the shared maps. Zero standard sources is a
// hard failure.
func (e *Engine) Consolidate(sources []Source) (*Consolidation, error) {
	standard := filterSources(sources, KindStandard)
	if len(standard) == 0 {
		return nil, ErrNoInput
	}

	c := &Consolidation{
		Employees: make(map[string]*Employee),
		Entries:   make(map[string]map[string]*Entry),
	}

	for _, src := range standard {
		records, err := e.sourceRecords(src)
		if err != nil {
			e.log(fmt.Sprintf("error processing source %q: %v; skipping file", src.Label(), err))
			continue
		}
		e.log(fmt.Sprintf("processing source %q (hour limit %d)", src.Label(), src.HourLimit))
		e.mergeFile(c, src, records)
	}
	return c, nil
}

// sourceRecords returns the typed rows for a source: the pre-validated set
// when the caller supplied one, otherwise a lenient parse of the file on
// disk. The whole file is parsed before any row is merged, so a read failure
// can never leave a partially-applied file behind.
func (e *Engine) sourceRecords(src Source) ([]RawRecord, error) {
	if src.Validated != nil && src.Validated.OK() {
		e.log(fmt.Sprintf("using pre-validated data for %q", src.Label()))
		return src.Validated.Records, nil
	}
	e.log(fmt.Sprintf("reading %q from disk (no validated data supplied)", src.Label()))
	t, err := readInput(src.Path)
	if err != nil {
		return nil, err
	}
	return e.parseLenient(t), nil
}

// parseLenient converts an unvalidated table row by row: fields are cleaned,
// the reference coerces to 0 on failure, and no row aborts the file.
func (e *Engine) parseLenient(t *table.Table) []RawRecord {
	records := make([]RawRecord, 0, len(t.Rows))
	for i := range t.Rows {
		op := normalize.Clean(t.Cell(i, ColOperation))
		if op == "" {
			op = "I"
		}
		deadline := normalize.Clean(t.Cell(i, ColDeadline))
		if deadline == "" {
			deadline = "0"
		}
		rec := RawRecord{
			Operation:    op,
			Registration: normalize.Clean(t.Cell(i, ColRegistration)),
			Code:         normalize.Clean(t.Cell(i, ColCode)),
			Reference:    coerceReference(t.Cell(i, ColReference)),
			Deadline:     deadline,
		}
		if e.variant == VariantMilitary {
			rec.ValueCents = money.ToCents(t.Cell(i, ColValue))
		}
		records = append(records, rec)
	}
	return records
}

func (e *Engine) mergeFile(c *Consolidation, src Source, records []RawRecord) {
	label := src.Label()
	for _, rec := range records {
		c.Trace = append(c.Trace, TraceRow{
			SourceLabel:  label,
			Registration: rec.Registration,
			Code:         rec.Code,
			Reference:    rec.Reference,
		})

		if rec.Registration == "" {
			continue
		}
		if rec.Code == "" && rec.Reference == 0 && rec.ValueCents == 0 {
			continue
		}

		emp := c.Employees[rec.Registration]
		if emp == nil {
			emp = &Employee{Registration: rec.Registration}
			c.Employees[rec.Registration] = emp
			c.Entries[rec.Registration] = make(map[string]*Entry)
		}
		emp.HourLimit = max(emp.HourLimit, src.HourLimit)
		if e.variant == VariantMilitary && rec.ValueCents > 0 {
			emp.GMRHourLimit = max(emp.GMRHourLimit, src.GMRHourLimit)
			emp.TotalValueCents += rec.ValueCents
		}

		entry := c.Entries[rec.Registration][rec.Code]
		if entry == nil {
			entry = &Entry{
				Registration: rec.Registration,
				Code:         rec.Code,
				Operation:    "I",
				Deadline:     "0",
				Origins:      make(map[string]struct{}),
			}
			c.Entries[rec.Registration][rec.Code] = entry
		}
		entry.SumReference += rec.Reference
		entry.SumValueCents += rec.ValueCents
		entry.Operation = rec.Operation
		entry.Deadline = rec.Deadline
		entry.Origins[label] = struct{}{}
	}
}

// coerceReference mirrors the validator's reference cleanup but never fails:
// anything non-numeric becomes 0.
func coerceReference(raw string) int64 {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ".", "")
	s = referenceSuffix.ReplaceAllString(s, "")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int64(f)
}

func filterSources(sources []Source, kind SourceKind) []Source {
	var out []Source
	for _, s := range sources {
		k := SourceKind(strings.ToUpper(strings.TrimSpace(string(s.Kind))))
		if k == "" {
			k = KindStandard
		}
		if k == kind {
			out = append(out, s)
		}
	}
	return out
}
