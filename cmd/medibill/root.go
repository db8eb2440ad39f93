package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gyeh/medibill/internal/config"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:              "medibill",
	Short:            "MediCare patient billing system",
	Long:             "Concurrent billing protocol server, billing client, and store provisioning for the MediCare billing system.",
	PersistentPreRun: loadEnv,
	SilenceUsage:     true,
	SilenceErrors:    true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", "", "Postgres connection string (or set DATABASE_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
}

// loadEnv runs before every subcommand: it reads .env and applies
// environment fallbacks to flags the user left unset. Fallbacks are
// resolved here rather than in flag defaults, which are computed at package
// init in file order, before .env can be loaded.
func loadEnv(cmd *cobra.Command, _ []string) {
	_ = godotenv.Load()

	for _, f := range []struct {
		flag string
		env  string
		dest *string
	}{
		{"dsn", "DATABASE_URL", &cfg.DSN},
		{"addr", "MEDIBILL_ADDR", &cfg.ListenAddr},
		{"server", "MEDIBILL_SERVER", &cfg.ServerAddr},
	} {
		fl := cmd.Flags().Lookup(f.flag)
		if fl == nil || fl.Changed {
			continue
		}
		if v := os.Getenv(f.env); v != "" {
			*f.dest = v
		}
	}
}
