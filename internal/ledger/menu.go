package ledger

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gyeh/medibill/internal/normalize"
)

// Run drives the menu loop over r/w until the user exits or input ends.
func Run(r io.Reader, w io.Writer) {
	l := New()
	sc := bufio.NewScanner(r)

	for {
		fmt.Fprintln(w, "\n====== PATIENT BILL COLLECTION MENU ======")
		fmt.Fprintln(w, "1. Add Bill")
		fmt.Fprintln(w, "2. Display Bills (by Patient ID)")
		fmt.Fprintln(w, "3. Remove Bills (by Patient ID)")
		fmt.Fprintln(w, "4. Display All Bills")
		fmt.Fprintln(w, "5. Exit")
		fmt.Fprint(w, "Enter your choice (1-5): ")

		choice, ok := scanLine(sc)
		if !ok {
			return
		}

		switch choice {
		case "1":
			addBill(l, sc, w)
		case "2":
			displayBills(l, sc, w)
		case "3":
			removeBills(l, sc, w)
		case "4":
			displayAll(l, w)
		case "5":
			fmt.Fprintln(w, "Thank you for using the system!")
			return
		default:
			fmt.Fprintln(w, "Invalid choice. Please try again")
		}
	}
}

func scanLine(sc *bufio.Scanner) (string, bool) {
	if !sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(sc.Text()), true
}

func scanPatientID(sc *bufio.Scanner, w io.Writer) (int, bool) {
	for {
		fmt.Fprint(w, "Enter Patient ID: ")
		in, ok := scanLine(sc)
		if !ok {
			return 0, false
		}
		id, err := strconv.Atoi(in)
		if err != nil || id <= 0 {
			fmt.Fprintln(w, "Please enter a positive number")
			continue
		}
		return id, true
	}
}

func addBill(l *Ledger, sc *bufio.Scanner, w io.Writer) {
	fmt.Fprintln(w, "\n--- Add New Bill ---")

	id, ok := scanPatientID(sc, w)
	if !ok {
		return
	}

	fmt.Fprint(w, "Enter Patient Name: ")
	name, ok := scanLine(sc)
	if !ok {
		return
	}

	var date string
	for {
		fmt.Fprint(w, "Enter Visit Date (YYYY-MM-DD): ")
		in, ok := scanLine(sc)
		if !ok {
			return
		}
		if d, valid := normalize.VisitDate(in); valid {
			date = d
			break
		}
		fmt.Fprintln(w, "Invalid date format. Use YYYY-MM-DD")
	}

	var amount float64
	for {
		fmt.Fprint(w, "Enter Bill Amount (OMR): ")
		in, ok := scanLine(sc)
		if !ok {
			return
		}
		v, err := strconv.ParseFloat(in, 64)
		if err != nil || v < 0 {
			fmt.Fprintln(w, "Please enter a non-negative amount")
			continue
		}
		amount = v
		break
	}

	l.Add(id, name, date, amount)
	fmt.Fprintln(w, "Bill added successfully")
}

func displayBills(l *Ledger, sc *bufio.Scanner, w io.Writer) {
	fmt.Fprintln(w, "\n--- Display Bills ---")
	id, ok := scanPatientID(sc, w)
	if !ok {
		return
	}

	bills := l.BillsFor(id)
	if len(bills) == 0 {
		fmt.Fprintf(w, "No bills found for Patient ID: %d\n", id)
		return
	}

	fmt.Fprintf(w, "\nBills for Patient ID %d:\n", id)
	fmt.Fprintln(w, "=====================================")
	for _, b := range bills {
		printBill(w, b)
	}
	fmt.Fprintln(w, "=====================================")
}

func removeBills(l *Ledger, sc *bufio.Scanner, w io.Writer) {
	fmt.Fprintln(w, "\n--- Remove Bills ---")
	id, ok := scanPatientID(sc, w)
	if !ok {
		return
	}

	if n := l.Remove(id); n > 0 {
		fmt.Fprintf(w, "Removed %d bill(s) for Patient ID %d\n", n, id)
	} else {
		fmt.Fprintf(w, "No bills found for Patient ID: %d\n", id)
	}
}

func displayAll(l *Ledger, w io.Writer) {
	fmt.Fprintln(w, "\n--- All Bills in System ---")
	bills := l.All()
	if len(bills) == 0 {
		fmt.Fprintln(w, "No bills in the system")
		return
	}

	fmt.Fprintln(w, "=====================================")
	for _, b := range bills {
		printBill(w, b)
	}
	fmt.Fprintln(w, "=====================================")
	fmt.Fprintf(w, "Total Bills: %d\n", l.Count())
	fmt.Fprintf(w, "Total Amount: OMR %.2f\n", l.Total())
	fmt.Fprintln(w, "=====================================")
}

func printBill(w io.Writer, b Bill) {
	fmt.Fprintf(w, "Bill %s | Patient ID: %d | Name: %s | Date: %s | Amount: OMR %.2f\n",
		b.ID, b.PatientID, b.PatientName, b.VisitDate, b.Amount)
}
