package slug

import "strings"

// extractLeadingDigits splits a leading numeric token from stem when it is
// followed by a purely alphabetic token. The number is rewritten to exactly
// width digits, clamped to 10^width - 1. It returns "" and stem untouched
// when the pattern does not apply.
func extractLeadingDigits(stem string, sep byte, width int) (string, string) {
	if width <= 0 {
		return "", stem
	}

	parts := strings.Split(stem, string(sep))
	if len(parts) < 2 || !isDigits(parts[0]) || !isAlpha(parts[1]) {
		return "", stem
	}

	return FormatDigits(parts[0], width), strings.Join(parts[1:], string(sep))
}

// FormatDigits renders a decimal digit string with exactly width digits,
// zero-padded, clamped to the largest value representable in width digits.
// It works on the string form so arbitrarily long numbers never overflow.
func FormatDigits(digits string, width int) string {
	trimmed := strings.TrimLeft(digits, "0")
	if len(trimmed) > width {
		return strings.Repeat("9", width)
	}
	return strings.Repeat("0", width-len(trimmed)) + trimmed
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}
