package pricing

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gyeh/medibill/internal/normalize"
)

// ServiceCodes lists the billable service codes in canonical order.
var ServiceCodes = []string{"CONS100", "LAB210", "IMG330", "US400", "MRI700"}

// Plans lists the supported insurance plans.
var Plans = []string{"Premium", "Standard", "Basic"}

// PatientTypes lists the supported visit categories.
var PatientTypes = []string{"Outpatient", "Inpatient", "Emergency"}

// CanonicalServiceCode canonicalizes s and reports whether it is a known
// service code.
func CanonicalServiceCode(s string) (string, bool) {
	c := normalize.ServiceCode(s)
	return c, contains(ServiceCodes, c)
}

// CanonicalPlan canonicalizes s and reports whether it is a known plan.
func CanonicalPlan(s string) (string, bool) {
	c := normalize.Plan(s)
	return c, contains(Plans, c)
}

// CanonicalPatientType canonicalizes s and reports whether it is a known
// patient type.
func CanonicalPatientType(s string) (string, bool) {
	c := normalize.PatientType(s)
	return c, contains(PatientTypes, c)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Tables holds the four pricing mappings. Loaded once at startup and shared
// read-only across all connection handlers.
type Tables struct {
	ServicePrices  map[string]float64 `yaml:"service_prices"`
	PlanDiscounts  map[string]float64 `yaml:"plan_discounts"`
	PerVisitFees   map[string]float64 `yaml:"per_visit_fees"`
	TypeSurcharges map[string]float64 `yaml:"type_surcharges"`
}

// Default returns the built-in reference pricing tables.
func Default() *Tables {
	return &Tables{
		ServicePrices: map[string]float64{
			"CONS100": 12.00,
			"LAB210":  8.50,
			"IMG330":  25.00,
			"US400":   35.00,
			"MRI700":  180.00,
		},
		PlanDiscounts: map[string]float64{
			"Premium":  0.15,
			"Standard": 0.10,
			"Basic":    0.00,
		},
		PerVisitFees: map[string]float64{
			"Premium":  5.00,
			"Standard": 8.00,
			"Basic":    10.00,
		},
		TypeSurcharges: map[string]float64{
			"Outpatient": 0.00,
			"Inpatient":  0.05,
			"Emergency":  0.15,
		},
	}
}

// LoadFile reads a YAML pricing table file and validates it. The file must
// cover every service code, plan, and patient type.
func LoadFile(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pricing file: %w", err)
	}
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse pricing file: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("pricing file %s: %w", path, err)
	}
	return &t, nil
}

// Validate checks that every enumeration member has an entry and that all
// rates and amounts are in range: prices and fees non-negative, discount
// rates in [0,1), surcharge rates non-negative.
func (t *Tables) Validate() error {
	for _, code := range ServiceCodes {
		p, ok := t.ServicePrices[code]
		if !ok {
			return fmt.Errorf("missing service price for %s", code)
		}
		if p < 0 {
			return fmt.Errorf("negative service price for %s", code)
		}
	}
	for _, plan := range Plans {
		d, ok := t.PlanDiscounts[plan]
		if !ok {
			return fmt.Errorf("missing discount rate for plan %s", plan)
		}
		if d < 0 || d >= 1 {
			return fmt.Errorf("discount rate for plan %s out of range [0,1): %v", plan, d)
		}
		f, ok := t.PerVisitFees[plan]
		if !ok {
			return fmt.Errorf("missing per-visit fee for plan %s", plan)
		}
		if f < 0 {
			return fmt.Errorf("negative per-visit fee for plan %s", plan)
		}
	}
	for _, pt := range PatientTypes {
		s, ok := t.TypeSurcharges[pt]
		if !ok {
			return fmt.Errorf("missing surcharge rate for patient type %s", pt)
		}
		if s < 0 {
			return fmt.Errorf("negative surcharge rate for patient type %s", pt)
		}
	}
	return nil
}
