package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/gyeh/medibill/internal/db"
	"github.com/gyeh/medibill/internal/exitcode"
	"github.com/gyeh/medibill/internal/logging"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the sample patient records",
	Long:  "Inserts the five sample patient records. Does nothing if the patient table already has rows.",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		return exitWith(exitcode.UsageError, err)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		return exitWith(exitcode.DBConnError, err)
	}
	defer pool.Close()

	inserted, err := db.SeedPatients(ctx, pool, log)
	if err != nil {
		log.Error().Err(err).Msg("seed failed")
		return exitWith(exitcode.MigrateError, err)
	}

	if inserted == 0 {
		log.Info().Msg("patient table already populated, nothing inserted")
	}
	return nil
}
