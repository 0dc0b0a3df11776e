package utils

import (
	"math"
	"strconv"
	"strings"
)

// FormatCurrency renders an amount in Malaysian Ringgit with
// thousand separators. Whole amounts drop the decimal part entirely:
//
//	100000  -> "RM 100,000"
//	1200.5  -> "RM 1,200.50"
//	1200    -> "RM 1,200"
//	-1500   -> "RM -1,500"
//	NaN / 0 -> "RM 0"
//
// Formatting is idempotent under re-parsing the numeric portion.
func FormatCurrency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "RM 0"
	}
	neg := amount < 0
	// Round to 2 decimal places to avoid floating point noise.
	cents := int64(math.Round(math.Abs(amount) * 100))
	whole := cents / 100
	frac := cents % 100

	out := groupThousands(strconv.FormatInt(whole, 10))
	if frac != 0 {
		out += "." + pad2(frac)
	}
	if neg && cents != 0 {
		out = "-" + out
	}
	return "RM " + out
}

// groupThousands inserts commas every three digits from the right.
func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
