package phone

import "strings"

// Invalid is the sentinel returned for unusable input. It is a syntactically
// valid E.164-looking string so downstream senders fail loudly on delivery
// instead of panicking on format, and empty numbers are never silently dropped.
const Invalid = "+270000000000"

// Normalize converts a loosely formatted local number into canonical
// international form:
//
//	0821234567   -> +27821234567
//	27821234567  -> +27821234567
//	+27821234567 -> +27821234567 (idempotent)
//	821234567    -> +27821234567
func Normalize(raw string) string {
	plus := strings.HasPrefix(strings.TrimSpace(raw), "+")
	digits := stripNonDigits(raw)
	if digits == "" {
		return Invalid
	}
	if plus {
		return "+" + digits
	}
	if strings.HasPrefix(digits, "0") {
		return "+27" + digits[1:]
	}
	if strings.HasPrefix(digits, "27") {
		return "+" + digits
	}
	return "+27" + digits
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
