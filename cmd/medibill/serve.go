package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/gyeh/medibill/internal/db"
	"github.com/gyeh/medibill/internal/exitcode"
	"github.com/gyeh/medibill/internal/logging"
	"github.com/gyeh/medibill/internal/metrics"
	"github.com/gyeh/medibill/internal/server"
	"github.com/gyeh/medibill/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the billing protocol server",
	RunE:  runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&cfg.ListenAddr, "addr", ":5000", "Billing listener address (or set MEDIBILL_ADDR)")
	f.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Ops HTTP listener for /metrics and health probes (empty disables)")
	f.StringVar(&cfg.PricingPath, "pricing", "", "YAML pricing table override file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := cfg.ValidateServe(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		return exitWith(exitcode.UsageError, err)
	}

	tables, err := cfg.LoadTables()
	if err != nil {
		log.Error().Err(err).Msg("pricing table load failed")
		return exitWith(exitcode.ConfigError, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		return exitWith(exitcode.DBConnError, err)
	}
	defer pool.Close()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	gateway := store.NewPostgres(pool, log)
	srv := server.New(gateway, tables, log, m)

	if err := srv.Listen(cfg.ListenAddr); err != nil {
		log.Error().Err(err).Msg("listener bind failed")
		return exitWith(exitcode.BindError, err)
	}

	if cfg.MetricsAddr != "" {
		ops := &http.Server{
			Addr:    cfg.MetricsAddr,
			Handler: metrics.Router(reg, pool.Ping),
		}
		go func() {
			log.Info().Str("addr", cfg.MetricsAddr).Msg("ops listener starting")
			if err := ops.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("ops listener failed")
			}
		}()
		go func() {
			<-ctx.Done()
			shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = ops.Shutdown(shCtx)
		}()
	}

	if err := srv.Serve(ctx); err != nil {
		log.Error().Err(err).Msg("accept loop failed")
		return exitWith(exitcode.UsageError, err)
	}

	shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		log.Warn().Err(err).Msg("handlers still in flight at shutdown deadline")
	}

	log.Info().Msg("server stopped")
	return nil
}
