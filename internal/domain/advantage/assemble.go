package advantage

import (
	"sort"
	"strconv"
	"strings"

	"folha/internal/money"
	"folha/internal/table"
)

// Report column names shared by the output workbooks.
const (
	ColRawReferenceSum = "RAW_REFERENCE_SUM"
	ColNormalHours     = "NORMAL_HOURS"
	ColMajoratedHours  = "MAJORATED_HOURS"
	ColACOHours        = "ACO_HOURS"
	ColMagisterioHours = "MAGISTERIO_HOURS"
	ColTotalHours      = "TOTAL_HOURS"
	ColEmployeeValue   = "EMPLOYEE_VALUE_TOTAL"
	ColHourLimit       = "HOUR_LIMIT"
	ColGMRHourLimit    = "GMR_HOUR_LIMIT"
	ColSourceFiles     = "SOURCE_FILES"
	ColOverLimit       = "OVER_LIMIT"
	ColValueTotal      = "VALUE_TOTAL"
	ColEmployeeCount   = "EMPLOYEE_COUNT"
	ColSourceFile      = "SOURCE_FILE"
	ColRowValueCents   = "ROW_VALUE_CENTS"
)

// DeploymentTable keeps only deployable rows in the narrow schema consumed
// by the downstream payroll system. A zero monetary sum renders as an empty
// cell, not "0" — the legacy consumer distinguishes the two.
func (e *Engine) DeploymentTable(rows []OutputRow) *table.Table {
	t := &table.Table{Columns: []string{ColOperation, ColRegistration, ColCode, ColValue, ColReference, ColDeadline}}
	for _, r := range rows {
		if !r.Deployable {
			continue
		}
		t.Rows = append(t.Rows, []string{
			r.Operation,
			r.Registration,
			r.Code,
			deployValue(r.ValueCents),
			strconv.FormatInt(r.Reference, 10),
			r.Deadline,
		})
	}
	return t
}

func deployValue(cents int64) string {
	if cents == 0 {
		return ""
	}
	return strconv.FormatInt(cents, 10)
}

// DetailTable lists every output row with all computed columns plus the
// over-limit flag.
func (e *Engine) DetailTable(rows []OutputRow) *table.Table {
	if e.variant == VariantStandard {
		t := &table.Table{Columns: []string{
			ColRegistration, ColCode, ColOperation, ColDeadline, ColValue, ColReference,
			ColNormalHours, ColMajoratedHours, ColTotalHours, ColHourLimit, ColSourceFiles, ColOverLimit,
		}}
		for _, r := range rows {
			t.Rows = append(t.Rows, []string{
				r.Registration, r.Code, r.Operation, r.Deadline, "",
				strconv.FormatInt(r.Reference, 10),
				strconv.FormatInt(r.NormalHours, 10),
				strconv.FormatInt(r.MajoratedHours, 10),
				strconv.FormatInt(r.TotalHours, 10),
				strconv.FormatInt(r.HourLimit, 10),
				strings.Join(r.Origins, ", "),
				formatBool(r.OverLimit()),
			})
		}
		return t
	}

	t := &table.Table{Columns: []string{
		ColRegistration, ColCode, ColOperation, ColDeadline, ColValue, ColReference,
		ColRawReferenceSum, ColNormalHours, ColMajoratedHours, ColACOHours,
		ColMagisterioHours, ColTotalHours, ColEmployeeValue, ColHourLimit,
		ColGMRHourLimit, ColSourceFiles, ColOverLimit,
	}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.Registration, r.Code, r.Operation, r.Deadline,
			strconv.FormatInt(r.ValueCents, 10),
			strconv.FormatInt(r.Reference, 10),
			strconv.FormatInt(r.RawReferenceSum, 10),
			strconv.FormatInt(r.NormalHours, 10),
			strconv.FormatInt(r.MajoratedHours, 10),
			strconv.FormatInt(r.ACOHours, 10),
			strconv.FormatInt(r.MagisterioHours, 10),
			strconv.FormatInt(r.TotalHours, 10),
			strconv.FormatInt(r.EmployeeValueCents, 10),
			strconv.FormatInt(r.HourLimit, 10),
			strconv.FormatInt(r.GMRHourLimit, 10),
			strings.Join(r.Origins, ", "),
			formatBool(r.OverLimit()),
		})
	}
	return t
}

// InternalStructureTable dumps the full consolidated structure for manual
// validation, military variant only.
func (e *Engine) InternalStructureTable(rows []OutputRow) *table.Table {
	t := &table.Table{Columns: []string{
		ColRegistration, ColCode, ColSourceFiles, ColRawReferenceSum,
		ColNormalHours, ColMajoratedHours, ColACOHours, ColMagisterioHours,
		ColTotalHours, ColRowValueCents, ColEmployeeValue, ColHourLimit, ColGMRHourLimit,
	}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.Registration, r.Code, strings.Join(r.Origins, ", "),
			strconv.FormatInt(r.RawReferenceSum, 10),
			strconv.FormatInt(r.NormalHours, 10),
			strconv.FormatInt(r.MajoratedHours, 10),
			strconv.FormatInt(r.ACOHours, 10),
			strconv.FormatInt(r.MagisterioHours, 10),
			strconv.FormatInt(r.TotalHours, 10),
			strconv.FormatInt(r.ValueCents, 10),
			strconv.FormatInt(r.EmployeeValueCents, 10),
			strconv.FormatInt(r.HourLimit, 10),
			strconv.FormatInt(r.GMRHourLimit, 10),
		})
	}
	return t
}

type employeeSummary struct {
	registration    string
	valueCents      int64
	normalHours     int64
	majoratedHours  int64
	acoHours        int64
	magisterioHours int64
	totalHours      int64
	hourLimit       int64
	gmrHourLimit    int64
	anyOver         bool
}

// EmployeeSummary aggregates one row per registration. The over-limit flag
// is recomputed here from the aggregate, not taken from the per-row flags:
// an employee can be under limit on every row and still exceed the ceiling
// in total.
func (e *Engine) EmployeeSummary(rows []OutputRow) *table.Table {
	order := make([]string, 0)
	byReg := make(map[string]*employeeSummary)
	for _, r := range rows {
		s := byReg[r.Registration]
		if s == nil {
			s = &employeeSummary{
				registration:    r.Registration,
				valueCents:      r.EmployeeValueCents,
				magisterioHours: r.MagisterioHours,
				hourLimit:       r.HourLimit,
				gmrHourLimit:    r.GMRHourLimit,
			}
			byReg[r.Registration] = s
			order = append(order, r.Registration)
		}
		s.normalHours += r.NormalHours
		s.majoratedHours += r.MajoratedHours
		s.acoHours += r.ACOHours
		s.totalHours += r.TotalHours
		s.anyOver = s.anyOver || r.OverLimit()
	}
	sort.Strings(order)

	if e.variant == VariantStandard {
		t := &table.Table{Columns: []string{ColRegistration, ColTotalHours, ColHourLimit, ColOverLimit}}
		for _, registration := range order {
			s := byReg[registration]
			t.Rows = append(t.Rows, []string{
				s.registration,
				strconv.FormatInt(s.totalHours, 10),
				strconv.FormatInt(s.hourLimit, 10),
				formatBool(s.anyOver),
			})
		}
		return t
	}

	t := &table.Table{Columns: []string{
		ColRegistration, ColValueTotal, ColNormalHours, ColMajoratedHours,
		ColACOHours, ColMagisterioHours, ColTotalHours, ColHourLimit,
		ColGMRHourLimit, ColOverLimit,
	}}
	for _, registration := range order {
		s := byReg[registration]
		total := s.acoHours + s.magisterioHours
		limit := s.hourLimit
		if s.valueCents > 0 {
			limit = s.gmrHourLimit
		}
		t.Rows = append(t.Rows, []string{
			s.registration,
			money.FromCents(s.valueCents),
			strconv.FormatInt(s.normalHours, 10),
			strconv.FormatInt(s.majoratedHours, 10),
			strconv.FormatInt(s.acoHours, 10),
			strconv.FormatInt(s.magisterioHours, 10),
			strconv.FormatInt(total, 10),
			strconv.FormatInt(s.hourLimit, 10),
			strconv.FormatInt(s.gmrHourLimit, 10),
			formatBool(total > limit),
		})
	}
	return t
}

// CodeSummary aggregates by pay-code with the monetary total converted from
// cents to currency units, military variant only.
func (e *Engine) CodeSummary(rows []OutputRow) *table.Table {
	type codeSummary struct {
		valueCents     int64
		normalHours    int64
		majoratedHours int64
		registrations  map[string]struct{}
	}
	byCode := make(map[string]*codeSummary)
	codes := make([]string, 0)
	for _, r := range rows {
		s := byCode[r.Code]
		if s == nil {
			s = &codeSummary{registrations: make(map[string]struct{})}
			byCode[r.Code] = s
			codes = append(codes, r.Code)
		}
		s.valueCents += r.ValueCents
		s.normalHours += r.NormalHours
		s.majoratedHours += r.MajoratedHours
		s.registrations[r.Registration] = struct{}{}
	}
	sort.Strings(codes)

	t := &table.Table{Columns: []string{ColCode, ColValueTotal, ColNormalHours, ColMajoratedHours, ColEmployeeCount}}
	for _, code := range codes {
		s := byCode[code]
		t.Rows = append(t.Rows, []string{
			code,
			money.FromCents(s.valueCents),
			strconv.FormatInt(s.normalHours, 10),
			strconv.FormatInt(s.majoratedHours, 10),
			strconv.Itoa(len(s.registrations)),
		})
	}
	return t
}

// TraceTable renders the raw per-row processing trace.
func TraceTable(trace []TraceRow) *table.Table {
	t := &table.Table{Columns: []string{ColSourceFile, ColRegistration, ColCode, ColReference}}
	for _, row := range trace {
		t.Rows = append(t.Rows, []string{
			row.SourceLabel, row.Registration, row.Code, strconv.FormatInt(row.Reference, 10),
		})
	}
	return t
}

func formatBool(v bool) string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}
