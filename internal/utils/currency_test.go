package utils

import (
	"math"
	"testing"
)

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{100000, "RM 100,000"},
		{1200.5, "RM 1,200.50"},
		{1200, "RM 1,200"},
		{0, "RM 0"},
		{999, "RM 999"},
		{1000, "RM 1,000"},
		{1234567.89, "RM 1,234,567.89"},
		{0.05, "RM 0.05"},
		{-1500, "RM -1,500"},
		{-1200.5, "RM -1,200.50"},
		{math.NaN(), "RM 0"},
		{math.Inf(1), "RM 0"},
	}
	for _, c := range cases {
		if got := FormatCurrency(c.amount); got != c.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", c.amount, got, c.want)
		}
	}
}

func TestFormatCurrencyRoundsToCents(t *testing.T) {
	if got := FormatCurrency(10.006); got != "RM 10.01" {
		t.Errorf("FormatCurrency(10.006) = %q, want %q", got, "RM 10.01")
	}
}
