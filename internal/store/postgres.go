package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	embedsql "github.com/gyeh/medibill/internal/sql"
)

// Postgres implements Gateway against a pgx connection pool. A circuit
// breaker sits in front of the pool so that a dead database fails requests
// fast instead of stacking up handler goroutines on a broken connection.
type Postgres struct {
	pool    *pgxpool.Pool
	breaker *gobreaker.CircuitBreaker
	log     zerolog.Logger
}

// NewPostgres creates a gateway backed by pool.
func NewPostgres(pool *pgxpool.Pool, log zerolog.Logger) *Postgres {
	p := &Postgres{pool: pool, log: log}
	p.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "patient-store",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A missing patient is a normal outcome, not a store fault.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrPatientNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			p.log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("store circuit breaker state change")
		},
	})
	return p
}

// LookupInsurancePlan reads the insurance plan for one patient record.
func (p *Postgres) LookupInsurancePlan(ctx context.Context, patientID int) (string, error) {
	res, err := p.breaker.Execute(func() (any, error) {
		var plan string
		err := p.pool.QueryRow(ctx, embedsql.LookupInsurancePlan, patientID).Scan(&plan)
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrPatientNotFound
		}
		if err != nil {
			return "", fmt.Errorf("lookup insurance plan: %w", err)
		}
		return plan, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("patient store unavailable: %w", err)
		}
		return "", err
	}
	return res.(string), nil
}

// RecordBill appends one bill record and returns the assigned bill ID.
func (p *Postgres) RecordBill(ctx context.Context, patientID int, visitDate string, amount float64) (int64, error) {
	res, err := p.breaker.Execute(func() (any, error) {
		var billID int64
		err := p.pool.QueryRow(ctx, embedsql.InsertBill, patientID, visitDate, amount).Scan(&billID)
		if err != nil {
			return int64(0), fmt.Errorf("insert bill: %w", err)
		}
		return billID, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return 0, fmt.Errorf("patient store unavailable: %w", err)
		}
		return 0, err
	}
	return res.(int64), nil
}
