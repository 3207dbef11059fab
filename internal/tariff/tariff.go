// Package tariff computes cost-allowance values from a CLF rate table.
package tariff

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"folha/internal/normalize"
	"folha/internal/table"
)

var (
	ErrNoRates      = errors.New("rate table not loaded")
	ErrCLFNotFound  = errors.New("CLF not found")
	ErrAmbiguousCLF = errors.New("CLF is ambiguous, a code is required")
)

// majoration applied to the majorated rate.
var majorationFactor = decimal.RequireFromString("1.3")

// Rate is one row of the rate table.
type Rate struct {
	CLF   string
	Code  string
	Value decimal.Decimal
}

// Rates answers tariff lookups by CLF, disambiguated by code when the CLF
// maps to more than one row.
type Rates struct {
	rows []Rate
	log  *slog.Logger
}

// Load reads a rate spreadsheet with CLF, CODE and VALUE columns. Rows whose
// value does not parse are logged and skipped.
func Load(path string, log *slog.Logger) (*Rates, error) {
	if log == nil {
		log = slog.Default()
	}
	t, err := table.ReadXLSX(path)
	if err != nil {
		return nil, fmt.Errorf("reading rate table: %w", err)
	}

	r := &Rates{log: log}
	for i := range t.Rows {
		raw := strings.ReplaceAll(strings.TrimSpace(t.Cell(i, "VALUE")), ",", ".")
		value, err := decimal.NewFromString(raw)
		if err != nil {
			log.Warn("skipping rate row with invalid value", "row", i+2, "value", raw)
			continue
		}
		r.rows = append(r.rows, Rate{
			CLF:   normalize.Clean(t.Cell(i, "CLF")),
			Code:  normalize.Clean(t.Cell(i, "CODE")),
			Value: value,
		})
	}
	log.Info("rate table loaded", "rates", len(r.rows))
	return r, nil
}

// NewRates builds a table from in-memory rows.
func NewRates(rows []Rate, log *slog.Logger) *Rates {
	if log == nil {
		log = slog.Default()
	}
	return &Rates{rows: rows, log: log}
}

// Lookup resolves the normal and majorated rates for a CLF. When several
// rows share the CLF the code narrows them down; with no code (or a code
// that still leaves several rows) the lookup is ambiguous.
func (r *Rates) Lookup(clf, code string) (normal, majorated decimal.Decimal, err error) {
	if len(r.rows) == 0 {
		return decimal.Zero, decimal.Zero, ErrNoRates
	}
	clf = strings.TrimSpace(clf)
	code = strings.TrimSpace(code)

	var matches []Rate
	for _, row := range r.rows {
		if row.CLF == clf {
			matches = append(matches, row)
		}
	}
	if len(matches) == 0 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: %q", ErrCLFNotFound, clf)
	}
	if len(matches) > 1 && code != "" {
		var narrowed []Rate
		for _, row := range matches {
			if row.Code == code {
				narrowed = append(narrowed, row)
			}
		}
		if len(narrowed) == 0 {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: %q with code %q", ErrCLFNotFound, clf, code)
		}
		matches = narrowed
	}
	if len(matches) > 1 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: %q", ErrAmbiguousCLF, clf)
	}

	normal = matches[0].Value
	return normal, normal.Mul(majorationFactor), nil
}

// SplitHours splits a reference-hour string: up to three digits is all
// normal hours; longer strings put the last three digits in the normal
// bucket and the rest in the majorated one. Non-numeric input yields zeros.
func SplitHours(raw string) (normal, majorated int64) {
	s := normalize.Clean(raw)
	if s == "" || !isDigits(s) {
		return 0, 0
	}
	if len(s) <= 3 {
		return mustInt(s), 0
	}
	return mustInt(s[len(s)-3:]), mustInt(s[:len(s)-3])
}

// Calculation is a fully resolved tariff computation.
type Calculation struct {
	NormalRate     decimal.Decimal
	MajoratedRate  decimal.Decimal
	NormalHours    int64
	MajoratedHours int64
	Total          decimal.Decimal
}

// Calculate resolves the rates for clf/code and prices the given hours.
func (r *Rates) Calculate(clf, hours, code string) (Calculation, error) {
	normalRate, majoratedRate, err := r.Lookup(clf, code)
	if err != nil {
		return Calculation{}, err
	}
	hn, hm := SplitHours(hours)
	total := decimal.NewFromInt(hn).Mul(normalRate).Add(decimal.NewFromInt(hm).Mul(majoratedRate))
	return Calculation{
		NormalRate:     normalRate,
		MajoratedRate:  majoratedRate,
		NormalHours:    hn,
		MajoratedHours: hm,
		Total:          total,
	}, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func mustInt(s string) int64 {
	var v int64
	for _, r := range s {
		v = v*10 + int64(r-'0')
	}
	return v
}
