package advantage

import (
	"sort"

	"folha/internal/reference"
)

// Classify turns one consolidated entry into its final output row. The
// military variant caps the deployed reference at the GMR ceiling whenever
// the entry carries money, and picks the applicable ceiling from the
// employee's monetary total; the standard variant has a single ceiling and
// passes the reference through unchanged.
func (e *Engine) Classify(emp *Employee, entry *Entry, magisterioHours int64) OutputRow {
	majorated, normal := reference.Decode(entry.SumReference)
	acoHours := majorated + normal

	row := OutputRow{
		Registration:    entry.Registration,
		Code:            entry.Code,
		Operation:       entry.Operation,
		Deadline:        entry.Deadline,
		Reference:       entry.SumReference,
		RawReferenceSum: entry.SumReference,
		NormalHours:     normal,
		MajoratedHours:  majorated,
		ACOHours:        acoHours,
		TotalHours:      acoHours,
		HourLimit:       emp.HourLimit,
		Origins:         sortedOrigins(entry.Origins),
	}

	if e.variant == VariantStandard {
		row.Deployable = row.TotalHours <= emp.HourLimit
		return row
	}

	row.ValueCents = entry.SumValueCents
	row.EmployeeValueCents = emp.TotalValueCents
	row.GMRHourLimit = emp.GMRHourLimit
	row.MagisterioHours = magisterioHours
	row.TotalHours = acoHours + magisterioHours

	if entry.SumValueCents > 0 {
		row.Reference = min(entry.SumReference, emp.GMRHourLimit)
	}
	if magisterioHours > 0 {
		row.Origins = append(row.Origins, MagisterioOrigin)
		sort.Strings(row.Origins)
	}

	if emp.TotalValueCents > 0 {
		row.Deployable = row.TotalHours <= emp.GMRHourLimit
	} else {
		row.Deployable = row.TotalHours <= emp.HourLimit
	}
	return row
}

// OutputRows classifies every consolidated entry, ordered by registration
// then code so that the reports come out deterministic run over run.
func (e *Engine) OutputRows(c *Consolidation, magisterio MagisterioHours) []OutputRow {
	registrations := make([]string, 0, len(c.Entries))
	for registration := range c.Entries {
		registrations = append(registrations, registration)
	}
	sort.Strings(registrations)

	var rows []OutputRow
	for _, registration := range registrations {
		emp := c.Employees[registration]
		codes := make([]string, 0, len(c.Entries[registration]))
		for code := range c.Entries[registration] {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			rows = append(rows, e.Classify(emp, c.Entries[registration][code], magisterio[registration]))
		}
	}
	return rows
}

func sortedOrigins(origins map[string]struct{}) []string {
	out := make([]string, 0, len(origins))
	for o := range origins {
		out = append(out, o)
	}
	sort.Strings(out)
	return out
}
