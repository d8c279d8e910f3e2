package http

import "testing"

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{5.25, "$5.25"},
		{1234.5, "$1,234.50"},
		{1000000, "$1,000,000.00"},
		{-42.1, "-$42.10"},
	}
	for _, tt := range tests {
		if got := formatUSD(tt.in); got != tt.want {
			t.Fatalf("formatUSD(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	if got := formatNumber(1.5); got != "1.5" {
		t.Fatalf("formatNumber(1.5) = %q", got)
	}
	if got := formatNumber(2); got != "2" {
		t.Fatalf("formatNumber(2) = %q", got)
	}
}
