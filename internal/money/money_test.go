package money

import "testing"

func TestToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"15,25", 1525},
		{"1.234,56", 123456},
		{"abc", 0},
		{"", 0},
		{"   ", 0},
		{"1525", 1525},
		{"15,2", 1520},
		{"15,253", 15},
		{"0,01", 1},
		{"-15,25", -1525},
		{"1.000.000,00", 100000000},
	}
	for _, c := range cases {
		if got := ToCents(c.in); got != c.want {
			t.Fatalf("ToCents(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestFromCents(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{123456, "1234.56"},
		{0, "0.00"},
		{5, "0.05"},
		{-150, "-1.50"},
	}
	for _, c := range cases {
		if got := FromCents(c.in); got != c.want {
			t.Fatalf("FromCents(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}
