package client

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gyeh/medibill/internal/normalize"
	"github.com/gyeh/medibill/internal/pricing"
	"github.com/gyeh/medibill/internal/protocol"
)

// CollectRequest interactively collects the four billing fields from r,
// prompting on w and re-asking until each field is valid. The server
// validates again on decode; this loop just spares the user a round trip.
func CollectRequest(r io.Reader, w io.Writer) (protocol.Request, error) {
	sc := bufio.NewScanner(r)

	fmt.Fprintln(w, "--- Enter Patient Billing Information ---")

	id, err := promptPatientID(sc, w)
	if err != nil {
		return protocol.Request{}, err
	}
	date, err := promptVisitDate(sc, w)
	if err != nil {
		return protocol.Request{}, err
	}
	ptype, err := promptPatientType(sc, w)
	if err != nil {
		return protocol.Request{}, err
	}
	code, err := promptServiceCode(sc, w)
	if err != nil {
		return protocol.Request{}, err
	}

	return protocol.Request{
		PatientID:   id,
		VisitDate:   date,
		PatientType: ptype,
		ServiceCode: code,
	}, nil
}

func readLine(sc *bufio.Scanner) (string, error) {
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(sc.Text()), nil
}

func promptPatientID(sc *bufio.Scanner, w io.Writer) (int, error) {
	for {
		fmt.Fprint(w, "Enter Patient ID: ")
		in, err := readLine(sc)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(in)
		if err != nil {
			fmt.Fprintln(w, "Invalid input. Please enter a valid number")
			continue
		}
		if v <= 0 {
			fmt.Fprintln(w, "Please enter a positive number")
			continue
		}
		return v, nil
	}
}

func promptVisitDate(sc *bufio.Scanner, w io.Writer) (string, error) {
	for {
		fmt.Fprint(w, "Enter Visit Date (YYYY-MM-DD): ")
		in, err := readLine(sc)
		if err != nil {
			return "", err
		}
		if date, ok := normalize.VisitDate(in); ok {
			return date, nil
		}
		fmt.Fprintln(w, "Invalid date format. Use YYYY-MM-DD")
	}
}

func promptPatientType(sc *bufio.Scanner, w io.Writer) (string, error) {
	choices := strings.Join(pricing.PatientTypes, "/")
	for {
		fmt.Fprintf(w, "Enter Patient Type (%s): ", choices)
		in, err := readLine(sc)
		if err != nil {
			return "", err
		}
		if t, ok := pricing.CanonicalPatientType(in); ok {
			return t, nil
		}
		fmt.Fprintf(w, "Invalid type. Choose: %s\n", strings.Join(pricing.PatientTypes, ", "))
	}
}

func promptServiceCode(sc *bufio.Scanner, w io.Writer) (string, error) {
	choices := strings.Join(pricing.ServiceCodes, "/")
	for {
		fmt.Fprintf(w, "Enter Service Code (%s): ", choices)
		in, err := readLine(sc)
		if err != nil {
			return "", err
		}
		if c, ok := pricing.CanonicalServiceCode(in); ok {
			return c, nil
		}
		fmt.Fprintf(w, "Invalid service code. Valid codes: %s\n", strings.Join(pricing.ServiceCodes, ", "))
	}
}
