package advantage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func entryOf(registration, code string, sumRef, sumValue int64) *Entry {
	return &Entry{
		Registration: registration,
		Code:         code,
		SumReference: sumRef,
		SumValueCents: sumValue,
		Operation:    "I",
		Deadline:     "0",
		Origins:      map[string]struct{}{"file A": {}},
	}
}

func TestClassifyMilitaryBoundaryWithoutValue(t *testing.T) {
	engine := NewEngine(VariantMilitary, discard)
	emp := &Employee{Registration: "100", HourLimit: 192}

	atLimit := engine.Classify(emp, entryOf("100", "5", 192, 0), 0)
	assert.True(t, atLimit.Deployable, "boundary is inclusive")
	assert.Equal(t, int64(192), atLimit.TotalHours)

	over := engine.Classify(emp, entryOf("100", "5", 193, 0), 0)
	assert.False(t, over.Deployable)
}

func TestClassifyMilitaryWithValueUsesGMRCeiling(t *testing.T) {
	engine := NewEngine(VariantMilitary, discard)
	emp := &Employee{Registration: "100", HourLimit: 192, GMRHourLimit: 48, TotalValueCents: 5000}

	row := engine.Classify(emp, entryOf("100", "5", 48, 5000), 0)
	assert.True(t, row.Deployable, "48 total hours within GMR ceiling 48")
	assert.Equal(t, int64(48), row.Reference)

	capped := engine.Classify(emp, entryOf("100", "5", 120024, 5000), 0)
	assert.Equal(t, int64(48), capped.Reference, "deployed reference is capped at the GMR ceiling")
	assert.Equal(t, int64(120024), capped.RawReferenceSum)
	assert.False(t, capped.Deployable, "144 hours exceed the GMR ceiling")
}

func TestClassifyMilitaryMagisterioHours(t *testing.T) {
	engine := NewEngine(VariantMilitary, discard)
	emp := &Employee{Registration: "100", HourLimit: 192}

	row := engine.Classify(emp, entryOf("100", "5", 120024, 0), 30)
	assert.Equal(t, int64(144), row.ACOHours)
	assert.Equal(t, int64(174), row.TotalHours)
	assert.Contains(t, row.Origins, MagisterioOrigin)
	assert.True(t, row.Deployable)
}

func TestClassifyDecodesReference(t *testing.T) {
	engine := NewEngine(VariantMilitary, discard)
	emp := &Employee{Registration: "100", HourLimit: 192}

	row := engine.Classify(emp, entryOf("100", "5", 120024, 0), 0)
	assert.Equal(t, int64(120), row.MajoratedHours)
	assert.Equal(t, int64(24), row.NormalHours)
}

func TestClassifyStandardSingleCeiling(t *testing.T) {
	engine := NewEngine(VariantStandard, discard)
	emp := &Employee{Registration: "100", HourLimit: 200}

	row := engine.Classify(emp, entryOf("100", "5", 120048, 0), 0)
	assert.Equal(t, int64(120048), row.Reference, "standard variant never caps the reference")
	assert.Equal(t, int64(168), row.TotalHours)
	assert.True(t, row.Deployable)
	assert.Zero(t, row.MagisterioHours, "standard variant has no magisterio credit")
}

func TestOutputRowsDeterministicOrder(t *testing.T) {
	engine := NewEngine(VariantStandard, discard)
	c, err := engine.Consolidate([]Source{{
		FriendlyName: "f", Kind: KindStandard, HourLimit: 192,
		Validated: validated(
			RawRecord{Operation: "I", Registration: "200", Code: "7", Reference: 10},
			RawRecord{Operation: "I", Registration: "100", Code: "9", Reference: 10},
			RawRecord{Operation: "I", Registration: "100", Code: "5", Reference: 10},
		),
	}})
	assert.NoError(t, err)

	rows := engine.OutputRows(c, nil)
	keys := make([][2]string, 0, len(rows))
	for _, r := range rows {
		keys = append(keys, [2]string{r.Registration, r.Code})
	}
	assert.Equal(t, [][2]string{{"100", "5"}, {"100", "9"}, {"200", "7"}}, keys)
}
