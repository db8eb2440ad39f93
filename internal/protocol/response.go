package protocol

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gyeh/medibill/internal/pricing"
)

// NotFoundLine is the exact error line for an unknown patient ID. Clients
// match on it verbatim.
const NotFoundLine = "ERROR: Patient ID not found in database"

// ServerErrorLine is the generic error line for a server-side failure on the
// store read path.
const ServerErrorLine = "ERROR: unable to process billing request"

const (
	bannerLine  = "====================================="
	headerLine  = "         PATIENT BILL DETAILS        "
	dividerLine = "-------------------------------------"
)

// WriteStatement streams the itemized bill statement followed by the
// terminator. The line order and formatting are fixed for client
// compatibility: amounts carry the OMR tag with two decimals, percentage
// annotations are the rate times 100.
func WriteStatement(w io.Writer, req Request, plan string, c pricing.Computation) error {
	lines := []string{
		bannerLine,
		headerLine,
		bannerLine,
		fmt.Sprintf("Patient ID: %d", req.PatientID),
		fmt.Sprintf("Visit Date: %s", req.VisitDate),
		fmt.Sprintf("Service Code: %s", req.ServiceCode),
		fmt.Sprintf("Patient Type: %s", req.PatientType),
		fmt.Sprintf("Insurance Plan: %s", plan),
		dividerLine,
		fmt.Sprintf("Service Amount: OMR %.2f", c.ServiceAmount),
		fmt.Sprintf("Insurance Discount (%s%%): -OMR %.2f", formatPercent(c.DiscountRate), c.InsuranceDiscount),
		fmt.Sprintf("Discounted Amount: OMR %.2f", c.DiscountedAmount),
		fmt.Sprintf("Per-Visit Fee: OMR %.2f", c.PerVisitFee),
		fmt.Sprintf("Subtotal: OMR %.2f", c.Subtotal),
		fmt.Sprintf("Extra Charge (%s%%): OMR %.2f", formatPercent(c.SurchargeRate), c.ExtraCharge),
		bannerLine,
		fmt.Sprintf("FINAL BILL AMOUNT: OMR %.2f", c.FinalAmount),
		bannerLine,
		Terminator,
	}
	return writeLines(w, lines)
}

// WriteNotFound streams the two-line unknown-patient response.
func WriteNotFound(w io.Writer) error {
	return writeLines(w, []string{NotFoundLine, Terminator})
}

// WriteServerError streams the generic server-side error response.
func WriteServerError(w io.Writer) error {
	return writeLines(w, []string{ServerErrorLine, Terminator})
}

// WriteMalformed streams an error line for a request that failed to decode,
// so a waiting client's read loop still terminates.
func WriteMalformed(w io.Writer, reason string) error {
	return writeLines(w, []string{"ERROR: " + reason, Terminator})
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// formatPercent renders a rate as a percentage with the rate's own
// precision, e.g. 0.15 as "15" and 0.125 as "12.5".
func formatPercent(rate float64) string {
	return strconv.FormatFloat(rate*100, 'g', -1, 64)
}
