package orderbuilder

import "strconv"

// maxFractionDigits bounds quantity precision (e.g. 1.250 kg).
const maxFractionDigits = 3

// ValidQuantityInput reports whether s is a non-negative decimal with at
// most one decimal point and at most three fractional digits. Invalid
// input is ignored by the caller, never coerced to zero.
func ValidQuantityInput(s string) bool {
	if s == "" {
		return false
	}
	digits := 0
	frac := -1
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
			if frac >= 0 {
				frac++
				if frac > maxFractionDigits {
					return false
				}
			}
		case r == '.':
			if frac >= 0 {
				return false
			}
			frac = 0
		default:
			return false
		}
	}
	return digits > 0
}

// ParseQuantity parses a validated quantity input.
func ParseQuantity(s string) (float64, bool) {
	if !ValidQuantityInput(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
