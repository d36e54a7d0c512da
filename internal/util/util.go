package util

import (
	"strings"
)

// MaskCardNumber hides all but the last four digits of a card number
func MaskCardNumber(number string) string {
	var digits []rune
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}

	if len(digits) <= 4 {
		return strings.Repeat("*", len(digits))
	}

	return "****" + string(digits[len(digits)-4:])
}
