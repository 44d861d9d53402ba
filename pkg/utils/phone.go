package utils

import "strings"

// DigitsOnly strips every character that is not an ASCII digit
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LastDigits returns the last n digits of s, or false when s holds fewer than n digits.
// "+222 37 89 28 00" with n=8 gives "37892800".
func LastDigits(s string, n int) (string, bool) {
	digits := DigitsOnly(s)
	if n <= 0 || len(digits) < n {
		return "", false
	}
	return digits[len(digits)-n:], true
}
