// Package money converts Brazilian-locale monetary strings to integer cents.
package money

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ToCents parses a locale-formatted amount ("1.234,56") into cents (123456).
// Thousands dots are stripped and the decimal comma becomes a dot before
// parsing. Strings that end up with at most two fractional digits are scaled
// by 100; anything else is treated as an already-integer amount. Unparseable
// input yields 0 — upstream exports routinely carry junk in the VALUE column
// and the business rule is to ignore it.
func ToCents(value string) int64 {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	if idx := strings.LastIndex(s, "."); idx >= 0 && len(s)-idx-1 <= 2 {
		return int64(math.Round(f * 100))
	}
	return int64(math.Round(f))
}

// FromCents renders cents as a whole-currency decimal string ("123456" ->
// "1234.56"), used by the analysis summaries.
func FromCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
