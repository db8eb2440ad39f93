package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/medibill/internal/client"
	"github.com/gyeh/medibill/internal/exitcode"
	"github.com/gyeh/medibill/internal/logging"
	"github.com/gyeh/medibill/internal/protocol"
)

var billFlags struct {
	patientID   int
	visitDate   string
	patientType string
	serviceCode string
	interactive bool
}

var billCmd = &cobra.Command{
	Use:   "bill",
	Short: "Send one billing request and print the returned statement",
	RunE:  runBill,
}

func init() {
	f := billCmd.Flags()
	f.StringVar(&cfg.ServerAddr, "server", "localhost:5000", "Billing server address (or set MEDIBILL_SERVER)")
	f.IntVar(&billFlags.patientID, "patient-id", 0, "Patient ID (positive integer)")
	f.StringVar(&billFlags.visitDate, "visit-date", "", "Visit date, YYYY-MM-DD")
	f.StringVar(&billFlags.patientType, "patient-type", "", "Patient type: Outpatient, Inpatient, or Emergency")
	f.StringVar(&billFlags.serviceCode, "service-code", "", "Service code, e.g. CONS100")
	f.BoolVar(&billFlags.interactive, "interactive", false, "Prompt for the request fields instead of using flags")
	rootCmd.AddCommand(billCmd)
}

func runBill(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	var (
		req protocol.Request
		err error
	)
	if billFlags.interactive || billFlags.patientID == 0 {
		req, err = client.CollectRequest(os.Stdin, os.Stdout)
		if err != nil {
			log.Error().Err(err).Msg("input collection failed")
			return exitWith(exitcode.UsageError, err)
		}
	} else {
		// Reuse the wire codec so flag input passes the exact validation the
		// server applies.
		line := fmt.Sprintf("%d,%s,%s,%s",
			billFlags.patientID, billFlags.visitDate, billFlags.patientType, billFlags.serviceCode)
		req, err = protocol.ParseRequest(line)
		if err != nil {
			log.Error().Err(err).Msg("invalid request fields")
			return exitWith(exitcode.UsageError, err)
		}
	}

	fmt.Printf("Sending request to %s: %s\n\n", cfg.ServerAddr, req.Encode())
	if err := client.Send(cfg.ServerAddr, req, os.Stdout); err != nil {
		log.Error().Err(err).Msg("billing request failed")
		return exitWith(exitcode.ClientError, err)
	}
	return nil
}
