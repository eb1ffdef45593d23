package domain

import "regexp"

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// IsCurrencyCode reports whether code has the ISO-4217 shape: three uppercase letters.
// Lowercase input is rejected, not normalized.
func IsCurrencyCode(code string) bool {
	return currencyCodePattern.MatchString(code)
}
