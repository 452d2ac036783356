package utils

import "testing"

func TestFormatPriceJPY(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "¥0"},
		{200, "¥200"},
		{300, "¥300"},
		{1500, "¥1,500"},
		{1234567, "¥1,234,567"},
		{299.6, "¥300"},
		{-1500, "-¥1,500"},
	}

	for _, tt := range tests {
		if got := FormatPriceJPY(tt.amount); got != tt.want {
			t.Errorf("FormatPriceJPY(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}
