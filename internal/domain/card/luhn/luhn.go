// Package luhn implements card number normalization, the Luhn (mod 10)
// checksum and display masking.
//
// All functions are pure and safe for concurrent use.
package luhn

import (
	"strings"
)

// MaskChar replaces hidden characters of a masked card number.
const MaskChar = '*'

// visibleSuffix is the number of trailing characters Mask leaves readable.
const visibleSuffix = 4

// Normalize removes spaces and dashes from raw, keeping every other
// character in its original order.
func Normalize(raw string) string {
	if !strings.ContainsAny(raw, " -") {
		return raw
	}

	// Separators are single ASCII bytes, so filtering bytes keeps any
	// other input, including invalid UTF-8, byte for byte.
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == ' ' || raw[i] == '-' {
			continue
		}
		b.WriteByte(raw[i])
	}
	return b.String()
}

// Validate reports whether raw passes the Luhn checksum.
//
// Blank input is invalid. Any character other than an ASCII digit left after
// normalization makes the number invalid; malformed and failing numbers are
// indistinguishable to the caller.
//
// A string made only of dashes normalizes to "" and is reported valid
// (sum 0). Length limits are enforced by request validation, not here.
func Validate(raw string) bool {
	if strings.TrimSpace(raw) == "" {
		return false
	}

	digits := Normalize(raw)

	sum := 0
	alternate := false
	for i := len(digits) - 1; i >= 0; i-- {
		c := digits[i]
		if c < '0' || c > '9' {
			return false
		}

		n := int(c - '0')
		if alternate {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		sum += n
		alternate = !alternate
	}

	return sum%10 == 0
}

// Mask hides all but the last four characters of the normalized number.
// Numbers of four characters or fewer are masked entirely. Digits are not
// checked, so malformed characters in the visible suffix pass through.
func Mask(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	runes := []rune(Normalize(raw))
	n := len(runes)
	if n == 0 {
		return ""
	}
	if n <= visibleSuffix {
		return strings.Repeat(string(MaskChar), n)
	}

	return strings.Repeat(string(MaskChar), n-visibleSuffix) + string(runes[n-visibleSuffix:])
}

// Service exposes the package functions as a value so callers can depend on
// an interface. The zero value is ready to use.
type Service struct{}

// NewService returns a Service
func NewService() Service {
	return Service{}
}

// Normalize implements deps.CardValidator
func (Service) Normalize(raw string) string { return Normalize(raw) }

// Validate implements deps.CardValidator
func (Service) Validate(raw string) bool { return Validate(raw) }

// Mask implements deps.CardValidator
func (Service) Mask(raw string) string { return Mask(raw) }
