package store_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gyeh/medibill/internal/db"
	"github.com/gyeh/medibill/internal/logging"
	"github.com/gyeh/medibill/internal/store"
)

const (
	testPort     = 15433
	testDB       = "medibilltest"
	testUser     = "postgres"
	testPassword = "postgres"
)

var (
	testDSN string
	pg      *embeddedpostgres.EmbeddedPostgres
)

func TestMain(m *testing.M) {
	testDSN = fmt.Sprintf("postgresql://%s:%s@localhost:%d/%s?sslmode=disable",
		testUser, testPassword, testPort, testDB)

	pg = embeddedpostgres.NewDatabase(
		embeddedpostgres.DefaultConfig().
			Port(uint32(testPort)).
			Database(testDB).
			Username(testUser).
			Password(testPassword).
			Version(embeddedpostgres.V16).
			StartTimeout(30 * time.Second),
	)

	if err := pg.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start embedded postgres: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := pg.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop embedded postgres: %v\n", err)
	}

	os.Exit(code)
}

// setupDB creates a pool, resets the schema, applies migrations, and seeds
// the sample patients.
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, testDSN)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	for _, table := range []string{"patient_bill", "patient"} {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			t.Fatalf("drop table %s: %v", table, err)
		}
	}

	log := logging.Nop()
	if err := db.ApplyMigrations(ctx, pool, log); err != nil {
		pool.Close()
		t.Fatalf("migrations: %v", err)
	}
	if _, err := db.SeedPatients(ctx, pool, log); err != nil {
		pool.Close()
		t.Fatalf("seed: %v", err)
	}

	t.Cleanup(func() { pool.Close() })
	return pool
}

func TestSeedPatients_Idempotent(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()

	inserted, err := db.SeedPatients(ctx, pool, logging.Nop())
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if inserted != 0 {
		t.Errorf("second seed inserted %d rows, want 0", inserted)
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT count(*) FROM patient").Scan(&count); err != nil {
		t.Fatalf("count patients: %v", err)
	}
	if count != 5 {
		t.Errorf("patient count: got %d, want 5", count)
	}
}

func TestLookupInsurancePlan(t *testing.T) {
	pool := setupDB(t)
	gw := store.NewPostgres(pool, logging.Nop())
	ctx := context.Background()

	plan, err := gw.LookupInsurancePlan(ctx, 1)
	if err != nil {
		t.Fatalf("lookup patient 1: %v", err)
	}
	if plan != "Premium" {
		t.Errorf("patient 1 plan: got %q, want Premium", plan)
	}

	plan, err = gw.LookupInsurancePlan(ctx, 3)
	if err != nil {
		t.Fatalf("lookup patient 3: %v", err)
	}
	if plan != "Basic" {
		t.Errorf("patient 3 plan: got %q, want Basic", plan)
	}
}

func TestLookupInsurancePlan_NotFound(t *testing.T) {
	pool := setupDB(t)
	gw := store.NewPostgres(pool, logging.Nop())

	_, err := gw.LookupInsurancePlan(context.Background(), 999999)
	if !errors.Is(err, store.ErrPatientNotFound) {
		t.Errorf("expected ErrPatientNotFound, got %v", err)
	}
}

func TestRecordBill(t *testing.T) {
	pool := setupDB(t)
	gw := store.NewPostgres(pool, logging.Nop())
	ctx := context.Background()

	billID, err := gw.RecordBill(ctx, 1, "2024-03-01", 15.20)
	if err != nil {
		t.Fatalf("record bill: %v", err)
	}
	if billID <= 0 {
		t.Errorf("bill ID: got %d, want > 0", billID)
	}

	var (
		patientID int
		amount    float64
	)
	err = pool.QueryRow(ctx,
		"SELECT patient_id, bill_amount::float8 FROM patient_bill WHERE bill_id = $1", billID).
		Scan(&patientID, &amount)
	if err != nil {
		t.Fatalf("read back bill: %v", err)
	}
	if patientID != 1 {
		t.Errorf("patient_id: got %d, want 1", patientID)
	}
	if amount != 15.20 {
		t.Errorf("bill_amount: got %v, want 15.20", amount)
	}
}

func TestRecordBill_UnknownPatientRejected(t *testing.T) {
	pool := setupDB(t)
	gw := store.NewPostgres(pool, logging.Nop())

	// The FK constraint rejects bills for patients that do not exist.
	if _, err := gw.RecordBill(context.Background(), 424242, "2024-03-01", 10.00); err == nil {
		t.Error("expected FK violation for unknown patient")
	}
}
