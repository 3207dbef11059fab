// Package advantage implements the pay-advantage consolidation core: input
// validation, multi-file aggregation keyed by employee and pay-code, the
// magisterio hour lookup, hour-ceiling classification and the standard
// report tables.
package advantage

// Variant selects between the military processor (monetary values, GMR
// ceiling) and the standard processor for the remaining categories.
type Variant int

const (
	VariantMilitary Variant = iota
	VariantStandard
)

func (v Variant) String() string {
	if v == VariantMilitary {
		return "military"
	}
	return "standard"
}

// Canonical input column names. Upstream exports that drifted from these are
// remapped positionally by the validator.
const (
	ColOperation    = "OPERATION"
	ColRegistration = "REGISTRATION"
	ColCode         = "CODE"
	ColValue        = "VALUE"
	ColReference    = "REFERENCE"
	ColDeadline     = "DEADLINE"
)

// Default ceilings applied when a source does not override them.
const (
	DefaultHourLimit    = 192
	DefaultGMRHourLimit = 48
)

// MagisterioOrigin is the provenance label attached to entries that received
// extra hours from the magisterio lookup.
const MagisterioOrigin = "Grat. Magistério (Consulta)"

// SourceKind tags an input file as a standard advantage file or a magisterio
// lookup supplement.
type SourceKind string

const (
	KindStandard   SourceKind = "ACO"
	KindMagisterio SourceKind = "MAGISTERIO"
)

// Source describes one input file for a consolidation run. Validated, when
// present, carries the typed rows produced by Validate; the engine then
// never re-reads the file from disk.
type Source struct {
	Path         string
	FriendlyName string
	Kind         SourceKind
	HourLimit    int64
	GMRHourLimit int64
	Validated    *Result
}

// Label returns the human-readable origin name for the source.
func (s Source) Label() string {
	if s.FriendlyName != "" {
		return s.FriendlyName
	}
	return s.Path
}

// RawRecord is one typed input row after the parse-and-validate boundary.
type RawRecord struct {
	Operation    string
	Registration string
	Code         string
	Reference    int64
	Deadline     string
	ValueCents   int64
}

// Entry accumulates all contributions for one (registration, pay-code) pair.
// Operation and Deadline are last-write-wins: later files correct earlier
// ones.
type Entry struct {
	Registration  string
	Code          string
	SumReference  int64
	SumValueCents int64
	Operation     string
	Deadline      string
	Origins       map[string]struct{}
}

// Employee tracks the per-registration ceilings and monetary total across
// all of that employee's entries.
type Employee struct {
	Registration    string
	HourLimit       int64
	GMRHourLimit    int64
	TotalValueCents int64
}

// TraceRow is one line of the raw per-row processing trace written to the
// detailed log workbook.
type TraceRow struct {
	SourceLabel  string
	Registration string
	Code         string
	Reference    int64
}

// Consolidation is the result of one engine run: employees and their entries
// plus the raw trace. Owned by a single run; never reused.
type Consolidation struct {
	Employees map[string]*Employee
	Entries   map[string]map[string]*Entry
	Trace     []TraceRow
}

// OutputRow is the final denormalized record per (registration, pay-code).
type OutputRow struct {
	Registration       string
	Code               string
	Operation          string
	Deadline           string
	ValueCents         int64
	Reference          int64
	RawReferenceSum    int64
	NormalHours        int64
	MajoratedHours     int64
	ACOHours           int64
	MagisterioHours    int64
	TotalHours         int64
	EmployeeValueCents int64
	HourLimit          int64
	GMRHourLimit       int64
	Origins            []string
	Deployable         bool
}

// OverLimit reports whether the row exceeded its applicable ceiling.
func (r OutputRow) OverLimit() bool {
	return !r.Deployable
}

// MagisterioHours maps registration to the extra hour credit merged in from
// lookup-kind sources.
type MagisterioHours map[string]int64
