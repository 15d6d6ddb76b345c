package utils

import (
	"strconv"
	"strings"
)

// FormatVND renders an amount with thousand separators and the đ suffix,
// e.g. 150000 -> "150.000đ". Fractions are dropped; VND has no subunit.
func FormatVND(amount float64) string {
	n := int64(amount)
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return sign + formatThousand(n) + "đ"
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte('.')
		}
		out.WriteRune(c)
	}
	return out.String()
}
