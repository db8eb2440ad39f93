// Package pricing implements the fixed pricing and discount model: service
// prices, plan discounts, per-visit fees, and patient type surcharges, plus
// the pure bill computation over them.
package pricing

import (
	"errors"
	"fmt"
)

// Sentinel errors for keys absent from the pricing tables. Callers validate
// request fields against the closed enumerations before computing, so hitting
// one of these means an internal invariant was broken, not bad user input.
var (
	ErrUnknownServiceCode = errors.New("unknown service code")
	ErrUnknownPlan        = errors.New("unknown insurance plan")
	ErrUnknownPatientType = errors.New("unknown patient type")
)

// Computation is one itemized bill, derived deterministically from a request
// and the patient's insurance plan. All amounts are non-negative.
type Computation struct {
	ServiceAmount     float64
	InsuranceDiscount float64
	DiscountedAmount  float64
	PerVisitFee       float64
	Subtotal          float64
	ExtraCharge       float64
	FinalAmount       float64

	// Rates echoed from the tables, for the percentage annotations on the
	// formatted statement.
	DiscountRate  float64
	SurchargeRate float64
}

// Compute derives an itemized bill. The step order is fixed:
//
//  1. service amount from the service price table
//  2. insurance discount = discount rate * service amount
//  3. discounted amount = service amount - discount
//  4. per-visit fee from the plan fee table
//  5. subtotal = discounted amount + per-visit fee
//  6. extra charge = subtotal * patient type surcharge rate
//  7. final amount = subtotal + extra charge
func Compute(serviceCode, plan, patientType string, t *Tables) (Computation, error) {
	price, ok := t.ServicePrices[serviceCode]
	if !ok {
		return Computation{}, fmt.Errorf("%w: %q", ErrUnknownServiceCode, serviceCode)
	}
	discountRate, ok := t.PlanDiscounts[plan]
	if !ok {
		return Computation{}, fmt.Errorf("%w: %q", ErrUnknownPlan, plan)
	}
	fee, ok := t.PerVisitFees[plan]
	if !ok {
		return Computation{}, fmt.Errorf("%w: %q", ErrUnknownPlan, plan)
	}
	surchargeRate, ok := t.TypeSurcharges[patientType]
	if !ok {
		return Computation{}, fmt.Errorf("%w: %q", ErrUnknownPatientType, patientType)
	}

	c := Computation{
		ServiceAmount: price,
		DiscountRate:  discountRate,
		SurchargeRate: surchargeRate,
	}
	c.InsuranceDiscount = discountRate * c.ServiceAmount
	c.DiscountedAmount = c.ServiceAmount - c.InsuranceDiscount
	c.PerVisitFee = fee
	c.Subtotal = c.DiscountedAmount + c.PerVisitFee
	c.ExtraCharge = c.Subtotal * surchargeRate
	c.FinalAmount = c.Subtotal + c.ExtraCharge
	return c, nil
}
