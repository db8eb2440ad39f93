// Package ledger keeps an in-memory collection of patient bills with a
// per-patient index, backing the interactive collection utility.
package ledger

import (
	"github.com/google/uuid"
)

// Bill is one ledger entry.
type Bill struct {
	ID          string
	PatientID   int
	PatientName string
	VisitDate   string
	Amount      float64
}

// Ledger holds bills in insertion order plus a per-patient index. Not safe
// for concurrent use; the menu loop is single-threaded.
type Ledger struct {
	bills     []Bill
	byPatient map[int][]int // patient ID -> indexes into bills
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{byPatient: make(map[int][]int)}
}

// Add appends a bill and returns it with its assigned ID.
func (l *Ledger) Add(patientID int, patientName, visitDate string, amount float64) Bill {
	b := Bill{
		ID:          uuid.NewString(),
		PatientID:   patientID,
		PatientName: patientName,
		VisitDate:   visitDate,
		Amount:      amount,
	}
	l.byPatient[patientID] = append(l.byPatient[patientID], len(l.bills))
	l.bills = append(l.bills, b)
	return b
}

// BillsFor returns the bills for one patient in insertion order.
func (l *Ledger) BillsFor(patientID int) []Bill {
	idxs := l.byPatient[patientID]
	out := make([]Bill, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, l.bills[i])
	}
	return out
}

// Remove deletes every bill for the patient and returns how many were
// removed.
func (l *Ledger) Remove(patientID int) int {
	removed := len(l.byPatient[patientID])
	if removed == 0 {
		return 0
	}

	kept := l.bills[:0]
	for _, b := range l.bills {
		if b.PatientID != patientID {
			kept = append(kept, b)
		}
	}
	l.bills = kept

	// Rebuild the index; positions shifted.
	l.byPatient = make(map[int][]int, len(l.byPatient))
	for i, b := range l.bills {
		l.byPatient[b.PatientID] = append(l.byPatient[b.PatientID], i)
	}
	return removed
}

// All returns every bill in insertion order.
func (l *Ledger) All() []Bill {
	out := make([]Bill, len(l.bills))
	copy(out, l.bills)
	return out
}

// Count returns the number of bills held.
func (l *Ledger) Count() int {
	return len(l.bills)
}

// Total returns the sum of all bill amounts.
func (l *Ledger) Total() float64 {
	var total float64
	for _, b := range l.bills {
		total += b.Amount
	}
	return total
}
