// Package retiree prices the retired-teachers agreement: a fixed formula
// chain over incorporated values and weekly hour loads, emitted as payroll
// deployment rows for retirees and pensioners.
package retiree

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"folha/internal/normalize"
	"folha/internal/table"
)

// Input column names.
const (
	ColRegistration         = "REGISTRATION"
	ColDeceasedRegistration = "DECEASED_REGISTRATION"
	ColValIncorp            = "VAL_INCORP"
	ColCargaHora            = "CARGA_HORA"
)

var (
	hundred          = decimal.NewFromInt(100)
	baseDivisor      = decimal.RequireFromString("1.4")
	adjust2024       = decimal.RequireFromString("1.0362")
	adjust2025       = decimal.RequireFromString("1.0627")
	installmentFloor = decimal.RequireFromString("2500")
)

// Input is one raw agreement row. Monetary and hour fields arrive as
// integer-scaled strings (value and weekly load both carry two implied
// decimal places).
type Input struct {
	Registration         string
	DeceasedRegistration string
	ValIncorp            decimal.Decimal
	CargaHora            decimal.Decimal
}

// Calculation carries every intermediate of the formula chain, kept for the
// audit sheet.
type Calculation struct {
	Input
	Base         decimal.Decimal
	First2024    decimal.Decimal
	Second2024   decimal.Decimal
	First2025    decimal.Decimal
	Second2025   decimal.Decimal
	Arrears      decimal.Decimal
	Fee          decimal.Decimal
	Installments int64

	// Blocked-agreement extras; zero for the regular flow.
	FeeBlocked    decimal.Decimal
	FeeRemaining  decimal.Decimal
	Reimbursement decimal.Decimal
}

// Entry is one deployment row in the payroll import layout.
type Entry struct {
	Operation    string
	Registration string
	Code         string
	Value        string
	Reference    string
	Deadline     string
}

// FromTable converts a parsed sheet into inputs. Non-numeric values coerce
// to zero, matching the upstream export's blanks.
func FromTable(t *table.Table) []Input {
	inputs := make([]Input, 0, len(t.Rows))
	for i := range t.Rows {
		inputs = append(inputs, Input{
			Registration:         normalize.Clean(t.Cell(i, ColRegistration)),
			DeceasedRegistration: normalize.Clean(t.Cell(i, ColDeceasedRegistration)),
			ValIncorp:            coerceDecimal(t.Cell(i, ColValIncorp)),
			CargaHora:            coerceDecimal(t.Cell(i, ColCargaHora)),
		})
	}
	return inputs
}

func coerceDecimal(raw string) decimal.Decimal {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// retroMonths returns how many months of the 2025 second-half value are due
// as of the reference date: none before July 2025, month minus six through
// December 2025, capped at six afterwards.
func retroMonths(ref time.Time) int64 {
	switch {
	case ref.Year() > 2025:
		return 6
	case ref.Year() == 2025 && int(ref.Month()) > 6:
		return int64(ref.Month()) - 6
	default:
		return 0
	}
}

// Calculate runs the value chain for one row.
func Calculate(in Input, ref time.Time) Calculation {
	base := in.ValIncorp.Div(hundred).Div(baseDivisor).
		Mul(in.CargaHora.Div(hundred).Mul(decimal.NewFromInt(2)).Add(decimal.NewFromInt(1)))
	first2024 := base.Mul(adjust2024)
	second2024 := first2024.Add(base)
	first2025 := second2024.Mul(adjust2025)
	second2025 := first2025.Add(base)

	months := decimal.NewFromInt(retroMonths(ref))
	arrears := base.Mul(decimal.NewFromInt(8)).
		Add(first2024.Mul(decimal.NewFromInt(5))).
		Add(second2024.Mul(decimal.NewFromInt(8))).
		Add(first2025.Mul(decimal.NewFromInt(5))).
		Add(second2025.Mul(months))
	fee := base.Mul(decimal.NewFromInt(8))

	installments := int64(3)
	if arrears.Div(decimal.NewFromInt(4)).GreaterThan(installmentFloor) {
		installments = 4
	}

	return Calculation{
		Input:        in,
		Base:         base,
		First2024:    first2024,
		Second2024:   second2024,
		First2025:    first2025,
		Second2025:   second2025,
		Arrears:      arrears,
		Fee:          fee,
		Installments: installments,
	}
}

// installmentCents truncates like the legacy int(x*100) conversion.
func installmentCents(total decimal.Decimal, installments int64) int64 {
	return total.Div(decimal.NewFromInt(installments)).Mul(hundred).IntPart()
}

// ProcessNew prices fresh agreement rows and emits the deployment entries:
// retiree rows get the arrears (code 67), fee (code 898) and marker (code
// 56) entries; rows with a deceased registration route the money to the
// pensioner file instead, with the marker on the deceased registration.
func ProcessNew(inputs []Input, ref time.Time) (retirees, pensioners []Entry, calcs []Calculation) {
	for _, in := range inputs {
		calc := Calculate(in, ref)
		calcs = append(calcs, calc)

		deadline := strconv.FormatInt(calc.Installments, 10)
		arrearsValue := strconv.FormatInt(installmentCents(calc.Arrears, calc.Installments), 10)
		feeValue := strconv.FormatInt(installmentCents(calc.Fee, calc.Installments), 10)

		if in.DeceasedRegistration == "" {
			retirees = append(retirees,
				Entry{Operation: "7", Registration: in.Registration, Code: "67", Value: arrearsValue, Deadline: deadline},
				Entry{Operation: "7", Registration: in.Registration, Code: "898", Value: feeValue, Deadline: deadline},
				Entry{Operation: "7", Registration: in.Registration, Code: "56"},
			)
		} else {
			retirees = append(retirees,
				Entry{Operation: "7", Registration: in.DeceasedRegistration, Code: "56"},
			)
			pensioners = append(pensioners,
				Entry{Operation: "7", Registration: in.Registration, Code: "65", Value: arrearsValue, Deadline: deadline},
				Entry{Operation: "7", Registration: in.Registration, Code: "898", Value: feeValue, Deadline: deadline},
			)
		}
	}
	return retirees, pensioners, calcs
}

// ProcessBlocked prices agreements whose fee was partially withheld: five
// sixteenths of the fee stay blocked, the arrears chain drops the first
// seven months of 2024, and a one-shot reimbursement entry (code 663)
// returns the difference.
func ProcessBlocked(inputs []Input, ref time.Time) (retirees, pensioners []Entry, calcs []Calculation) {
	for _, in := range inputs {
		calc := Calculate(in, ref)

		feeBlocked := calc.Fee.Div(decimal.NewFromInt(16)).Mul(decimal.NewFromInt(5))
		calc.FeeBlocked = feeBlocked
		calc.FeeRemaining = calc.Fee.Sub(feeBlocked)
		calc.Reimbursement = calc.Base.Mul(decimal.NewFromInt(8)).
			Add(calc.First2024.Mul(decimal.NewFromInt(4))).
			Sub(feeBlocked)

		months := decimal.NewFromInt(retroMonths(ref))
		calc.Arrears = calc.First2024.
			Add(calc.Second2024.Mul(decimal.NewFromInt(8))).
			Add(calc.First2025.Mul(decimal.NewFromInt(5))).
			Add(calc.Second2025.Mul(months))
		if calc.Arrears.Div(decimal.NewFromInt(4)).GreaterThan(installmentFloor) {
			calc.Installments = 4
		} else {
			calc.Installments = 3
		}
		calcs = append(calcs, calc)

		deadline := strconv.FormatInt(calc.Installments, 10)
		arrearsValue := strconv.FormatInt(installmentCents(calc.Arrears, calc.Installments), 10)
		feeValue := strconv.FormatInt(installmentCents(calc.FeeRemaining, calc.Installments), 10)
		reimbursement := calc.Reimbursement.StringFixed(2)

		if in.DeceasedRegistration == "" {
			retirees = append(retirees,
				Entry{Operation: "7", Registration: in.Registration, Code: "67", Value: arrearsValue, Deadline: deadline},
				Entry{Operation: "7", Registration: in.Registration, Code: "898", Value: feeValue, Deadline: deadline},
				Entry{Operation: "7", Registration: in.Registration, Code: "56"},
				Entry{Operation: "7", Registration: in.Registration, Code: "663", Value: reimbursement, Deadline: "1"},
			)
		} else {
			retirees = append(retirees,
				Entry{Operation: "7", Registration: in.DeceasedRegistration, Code: "56"},
			)
			pensioners = append(pensioners,
				Entry{Operation: "7", Registration: in.Registration, Code: "65", Value: arrearsValue, Deadline: deadline},
				Entry{Operation: "7", Registration: in.Registration, Code: "898", Value: feeValue, Deadline: deadline},
				Entry{Operation: "7", Registration: in.Registration, Code: "663", Value: reimbursement, Deadline: "1"},
			)
		}
	}
	return retirees, pensioners, calcs
}

// EntriesTable renders entries in the deployment layout.
func EntriesTable(entries []Entry) *table.Table {
	t := &table.Table{Columns: []string{"OPERATION", "REGISTRATION", "CODE", "VALUE", "REFERENCE", "DEADLINE"}}
	for _, e := range entries {
		t.Rows = append(t.Rows, []string{e.Operation, e.Registration, e.Code, e.Value, e.Reference, e.Deadline})
	}
	return t
}
