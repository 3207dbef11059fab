// Package reference decodes the packed hour field used by the payroll
// deployment format. A reference is a decimal integer laid out as MMMNNN:
// the trailing three digits are normal hours, everything before them is
// majorated (premium-rate) hours.
package reference

import "fmt"

// Decode splits a packed reference into (majorated, normal) hours.
// Negative references carry no defined meaning in the deployment format and
// decode to (0, 0), the same as the zero-reference rows the validator drops.
func Decode(ref int64) (majorated, normal int64) {
	if ref < 0 {
		return 0, 0
	}
	s := fmt.Sprintf("%06d", ref)
	cut := len(s) - 3
	majorated = parseDigits(s[:cut])
	normal = parseDigits(s[cut:])
	return majorated, normal
}

// Total returns the unsigned sum of both hour buckets.
func Total(ref int64) int64 {
	m, n := Decode(ref)
	return m + n
}

func parseDigits(s string) int64 {
	var v int64
	for _, r := range s {
		v = v*10 + int64(r-'0')
	}
	return v
}
