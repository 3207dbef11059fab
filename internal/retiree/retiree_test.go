package retiree

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folha/internal/table"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRetroMonths(t *testing.T) {
	assert.Equal(t, int64(0), retroMonths(time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, int64(1), retroMonths(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, int64(6), retroMonths(time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, int64(6), retroMonths(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, int64(0), retroMonths(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)))
}

func TestCalculateChain(t *testing.T) {
	// valIncorp 14000 (140.00) over a 20.00 weekly load:
	// base = 140/1.4 * (20*2+1) = 100 * 41 = 4100.
	in := Input{Registration: "100", ValIncorp: dec("14000"), CargaHora: dec("2000")}
	calc := Calculate(in, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	assert.True(t, calc.Base.Equal(dec("4100")), calc.Base.String())
	assert.True(t, calc.First2024.Equal(dec("4248.42")), calc.First2024.String())
	assert.True(t, calc.Second2024.Equal(dec("8348.42")), calc.Second2024.String())
	assert.True(t, calc.First2025.Equal(dec("8871.865934")), calc.First2025.String())
	assert.True(t, calc.Second2025.Equal(dec("12971.865934")), calc.Second2025.String())
	assert.True(t, calc.Arrears.Equal(dec("243019.985274")), calc.Arrears.String())
	assert.True(t, calc.Fee.Equal(dec("32800")), calc.Fee.String())
	assert.Equal(t, int64(4), calc.Installments)
}

func TestProcessNewRetiree(t *testing.T) {
	in := Input{Registration: "100", ValIncorp: dec("14000"), CargaHora: dec("2000")}
	retirees, pensioners, calcs := ProcessNew([]Input{in}, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	require.Len(t, calcs, 1)
	assert.Empty(t, pensioners)
	require.Len(t, retirees, 3)

	// 243019.985274 / 4 installments = 60754.99... -> 6075499 truncated cents.
	assert.Equal(t, Entry{Operation: "7", Registration: "100", Code: "67", Value: "6075499", Deadline: "4"}, retirees[0])
	// fee 32800 / 4 = 8200.00 -> 820000 cents.
	assert.Equal(t, Entry{Operation: "7", Registration: "100", Code: "898", Value: "820000", Deadline: "4"}, retirees[1])
	assert.Equal(t, Entry{Operation: "7", Registration: "100", Code: "56"}, retirees[2])
}

func TestProcessNewPensioner(t *testing.T) {
	in := Input{
		Registration:         "200",
		DeceasedRegistration: "100",
		ValIncorp:            dec("14000"),
		CargaHora:            dec("2000"),
	}
	retirees, pensioners, _ := ProcessNew([]Input{in}, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	require.Len(t, retirees, 1)
	assert.Equal(t, Entry{Operation: "7", Registration: "100", Code: "56"}, retirees[0],
		"the marker entry lands on the deceased registration")

	require.Len(t, pensioners, 2)
	assert.Equal(t, "65", pensioners[0].Code)
	assert.Equal(t, "200", pensioners[0].Registration)
	assert.Equal(t, "898", pensioners[1].Code)
}

func TestProcessNewThreeInstallments(t *testing.T) {
	// base = 1.40/1.4 * (1*2+1) = 3; arrears stay far below the 4-installment
	// threshold.
	in := Input{Registration: "300", ValIncorp: dec("140"), CargaHora: dec("100")}
	retirees, _, calcs := ProcessNew([]Input{in}, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))

	require.Len(t, calcs, 1)
	assert.Equal(t, int64(3), calcs[0].Installments)
	require.Len(t, retirees, 3)
	assert.Equal(t, "3", retirees[0].Deadline)
	// arrears 120.8698461 / 3 -> 4028 truncated cents.
	assert.Equal(t, "4028", retirees[0].Value)
	assert.Equal(t, "800", retirees[1].Value)
}

func TestProcessBlocked(t *testing.T) {
	in := Input{Registration: "100", ValIncorp: dec("14000"), CargaHora: dec("2000")}
	retirees, pensioners, calcs := ProcessBlocked([]Input{in}, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	require.Len(t, calcs, 1)
	calc := calcs[0]
	// fee 32800: 5/16 withheld = 10250, remainder 22550.
	assert.True(t, calc.FeeBlocked.Equal(dec("10250")), calc.FeeBlocked.String())
	assert.True(t, calc.FeeRemaining.Equal(dec("22550")), calc.FeeRemaining.String())
	// reimbursement = 8*base + 4*first2024 - blocked = 32800 + 16993.68 - 10250.
	assert.True(t, calc.Reimbursement.Equal(dec("39543.68")), calc.Reimbursement.String())

	assert.Empty(t, pensioners)
	require.Len(t, retirees, 4)
	assert.Equal(t, "663", retirees[3].Code)
	assert.Equal(t, "39543.68", retirees[3].Value)
	assert.Equal(t, "1", retirees[3].Deadline)
}

func TestFromTableCoercion(t *testing.T) {
	inputs := FromTable(&table.Table{
		Columns: []string{ColRegistration, ColDeceasedRegistration, ColValIncorp, ColCargaHora},
		Rows: [][]string{
			{"100.0", "", "14000", "2000"},
			{"200", "150", "oops", "20,5"},
		},
	})
	require.Len(t, inputs, 2)
	assert.Equal(t, "100", inputs[0].Registration)
	assert.True(t, inputs[1].ValIncorp.IsZero())
	assert.True(t, inputs[1].CargaHora.Equal(dec("20.5")))
}

func TestEntriesTable(t *testing.T) {
	tbl := EntriesTable([]Entry{{Operation: "7", Registration: "100", Code: "67", Value: "500", Deadline: "3"}})
	assert.Equal(t, []string{"OPERATION", "REGISTRATION", "CODE", "VALUE", "REFERENCE", "DEADLINE"}, tbl.Columns)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, []string{"7", "100", "67", "500", "", "3"}, tbl.Rows[0])
}
