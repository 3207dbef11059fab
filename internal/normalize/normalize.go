// Package normalize cleans raw spreadsheet field values into canonical strings.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Clean trims a raw cell value and strips the trailing ".0" that spreadsheet
// float coercion leaves on numeric-looking text. Always returns a string;
// missing or blank input becomes "".
func Clean(value string) string {
	s := strings.TrimSpace(value)
	if s == "" {
		return ""
	}
	if strings.HasSuffix(s, ".0") {
		s = s[:len(s)-2]
	}
	return strings.TrimSpace(s)
}

// FoldHeader uppercases a column header and removes accents so that
// "Operação" and "OPERACAO" compare equal. Upstream exports are not
// consistent about either.
func FoldHeader(header string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.TrimSpace(header))
	if err != nil {
		folded = strings.TrimSpace(header)
	}
	return strings.ToUpper(folded)
}
