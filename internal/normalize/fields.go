package normalize

import "strings"

// ServiceCode trims whitespace and uppercases a service code as received on
// the wire. Service codes are matched case-insensitively against the pricing
// tables, whose keys are upper case.
func ServiceCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// PatientType canonicalizes a patient type to title case, e.g. "EMERGENCY"
// or "emergency" become "Emergency".
func PatientType(s string) string {
	return TitleCase(s)
}

// Plan canonicalizes an insurance plan name to title case.
func Plan(s string) string {
	return TitleCase(s)
}

// TitleCase trims whitespace, uppercases the first rune, and lowercases the
// rest. Only ASCII is expected on this wire format.
func TitleCase(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
