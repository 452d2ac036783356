package utils

import (
	"fmt"
	"math"
	"strings"
)

// FormatPriceJPY formats a price as Japanese yen for the board display.
// Yen has no minor unit, so the value is rounded to a whole number and
// grouped with commas. Example: 1500 -> "¥1,500".
func FormatPriceJPY(amount float64) string {
	whole := int64(math.Round(amount))
	negative := whole < 0
	if negative {
		whole = -whole
	}

	digits := fmt.Sprintf("%d", whole)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	out := "¥" + strings.Join(groups, ",")
	if negative {
		out = "-" + out
	}
	return out
}
