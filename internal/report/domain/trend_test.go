package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPercentChange(t *testing.T) {
	cases := []struct {
		current  string
		previous string
		want     float64
	}{
		{"150", "100", 50},
		{"80", "100", -20},
		{"100", "100", 0},
		{"500", "0", 0}, // zero baseline never divides
		{"0", "0", 0},
	}

	for _, tc := range cases {
		current, _ := decimal.NewFromString(tc.current)
		previous, _ := decimal.NewFromString(tc.previous)
		if got := PercentChange(current, previous); got != tc.want {
			t.Errorf("PercentChange(%s, %s) = %v, want %v", tc.current, tc.previous, got, tc.want)
		}
	}
}
