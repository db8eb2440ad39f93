package normalize

import (
	"strings"
	"time"
)

// visitDateFormat is the only accepted visit date layout (ISO 8601 date).
const visitDateFormat = "2006-01-02"

// VisitDate validates a visit date string. It returns the trimmed canonical
// form and true when the input is a real calendar date in YYYY-MM-DD form.
func VisitDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(visitDateFormat, s)
	if err != nil {
		return "", false
	}
	// Round-trip to reject shorthand the parser tolerates, e.g. "2024-3-1".
	if t.Format(visitDateFormat) != s {
		return "", false
	}
	return s, true
}
