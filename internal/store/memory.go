package store

import (
	"context"
	"sync"
)

// RecordedBill is one bill held by the in-memory store.
type RecordedBill struct {
	BillID    int64
	PatientID int
	VisitDate string
	Amount    float64
}

// Memory is an in-memory Gateway for tests and demos. LookupErr and WriteErr,
// when set, force the corresponding operation to fail.
type Memory struct {
	mu     sync.Mutex
	plans  map[int]string
	bills  []RecordedBill
	nextID int64

	LookupErr error
	WriteErr  error
}

// NewMemory creates an in-memory store seeded with patientID -> plan entries.
func NewMemory(plans map[int]string) *Memory {
	m := &Memory{plans: make(map[int]string, len(plans))}
	for id, plan := range plans {
		m.plans[id] = plan
	}
	return m
}

func (m *Memory) LookupInsurancePlan(ctx context.Context, patientID int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LookupErr != nil {
		return "", m.LookupErr
	}
	plan, ok := m.plans[patientID]
	if !ok {
		return "", ErrPatientNotFound
	}
	return plan, nil
}

func (m *Memory) RecordBill(ctx context.Context, patientID int, visitDate string, amount float64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return 0, m.WriteErr
	}
	m.nextID++
	m.bills = append(m.bills, RecordedBill{
		BillID:    m.nextID,
		PatientID: patientID,
		VisitDate: visitDate,
		Amount:    amount,
	})
	return m.nextID, nil
}

// Bills returns a copy of all recorded bills.
func (m *Memory) Bills() []RecordedBill {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RecordedBill, len(m.bills))
	copy(out, m.bills)
	return out
}
