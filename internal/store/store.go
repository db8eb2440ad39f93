// Package store defines the narrow gateway through which the billing core
// reads patient records and appends bill records. The core issues independent
// point lookups and writes; it never updates or deletes.
package store

import (
	"context"
	"errors"
)

// ErrPatientNotFound reports a lookup for a patient ID with no record. It is
// a normal, expected outcome driving the user-visible not-found response,
// not a store fault.
var ErrPatientNotFound = errors.New("patient not found")

// Gateway is the persistent store contract: exactly one read and, on
// success, one write per billing request.
type Gateway interface {
	// LookupInsurancePlan returns the insurance plan for the patient, or
	// ErrPatientNotFound when no record exists.
	LookupInsurancePlan(ctx context.Context, patientID int) (string, error)

	// RecordBill appends one bill record and returns its store-assigned ID.
	RecordBill(ctx context.Context, patientID int, visitDate string, amount float64) (int64, error)
}
