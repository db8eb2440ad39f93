// Package protocol implements the line-oriented billing wire format: one
// comma-separated request line in, a human-readable statement terminated by
// the END sentinel out.
package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gyeh/medibill/internal/normalize"
	"github.com/gyeh/medibill/internal/pricing"
)

// Terminator is the sentinel line closing every response stream.
const Terminator = "END"

// Request is one decoded billing request. Fields are canonical: patient type
// in title case, service code upper case, visit date in YYYY-MM-DD form.
type Request struct {
	PatientID   int
	VisitDate   string
	PatientType string
	ServiceCode string
}

// MalformedRequestError reports a request line that failed to decode or
// validate. It is local to one connection and never crashes the listener.
type MalformedRequestError struct {
	Reason string
}

func (e *MalformedRequestError) Error() string {
	return "malformed request: " + e.Reason
}

func malformed(format string, args ...any) error {
	return &MalformedRequestError{Reason: fmt.Sprintf(format, args...)}
}

// ParseRequest decodes and validates one request line of exactly four
// comma-separated fields: patientId, visitDate, patientType, serviceCode.
// The protocol boundary is what is trusted, not the client, so every field
// is validated here regardless of client-side checks.
func ParseRequest(line string) (Request, error) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return Request{}, malformed("empty request line")
	}

	parts := strings.Split(line, ",")
	if len(parts) != 4 {
		return Request{}, malformed("expected 4 comma-separated fields, got %d", len(parts))
	}

	id, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Request{}, malformed("patient ID %q is not an integer", strings.TrimSpace(parts[0]))
	}
	if id <= 0 {
		return Request{}, malformed("patient ID must be positive, got %d", id)
	}

	visitDate, ok := normalize.VisitDate(parts[1])
	if !ok {
		return Request{}, malformed("visit date %q is not a valid YYYY-MM-DD date", strings.TrimSpace(parts[1]))
	}

	patientType, ok := pricing.CanonicalPatientType(parts[2])
	if !ok {
		return Request{}, malformed("unknown patient type %q", strings.TrimSpace(parts[2]))
	}

	serviceCode, ok := pricing.CanonicalServiceCode(parts[3])
	if !ok {
		return Request{}, malformed("unknown service code %q", strings.TrimSpace(parts[3]))
	}

	return Request{
		PatientID:   id,
		VisitDate:   visitDate,
		PatientType: patientType,
		ServiceCode: serviceCode,
	}, nil
}

// Encode renders the request as a wire line, without the trailing newline.
func (r Request) Encode() string {
	return fmt.Sprintf("%d,%s,%s,%s", r.PatientID, r.VisitDate, r.PatientType, r.ServiceCode)
}
