// Package utils provides formatting and rounding helpers.
package utils

import (
	"fmt"
	"math"
	"strings"
)

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}

// Round2 rounds v to two decimal places, the precision used for all
// reported price levels.
func Round2(v float64) float64 {
	return RoundTo(v, 2)
}

// Round1 rounds v to one decimal place.
func Round1(v float64) float64 {
	return RoundTo(v, 1)
}

// FormatUSD formats an amount as a dollar string with thousands
// grouping, e.g. 1234567.5 -> "$1,234,567.50".
func FormatUSD(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	whole := int64(amount)
	frac := int64(math.Round((amount - float64(whole)) * 100))
	if frac == 100 {
		whole++
		frac = 0
	}

	digits := fmt.Sprintf("%d", whole)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%s$%s.%02d", sign, b.String(), frac)
}

// FormatPercent formats a ratio value as a percentage string with two
// decimal places.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}
