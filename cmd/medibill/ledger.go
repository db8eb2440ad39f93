package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/medibill/internal/ledger"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Interactive in-memory bill collection demo",
	Run: func(cmd *cobra.Command, args []string) {
		ledger.Run(os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(ledgerCmd)
}
