package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate_LogFormat(t *testing.T) {
	c := Config{LogFormat: "text"}
	if err := c.Validate(); err != nil {
		t.Fatalf("text format: %v", err)
	}
	c.LogFormat = "json"
	if err := c.Validate(); err != nil {
		t.Fatalf("json format: %v", err)
	}
	c.LogFormat = "xml"
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for unknown log format")
	}
}

func TestValidateWithDSN(t *testing.T) {
	c := Config{LogFormat: "text"}
	if err := c.ValidateWithDSN(); err == nil {
		t.Fatal("expected error for missing DSN")
	}
	c.DSN = "postgres://localhost/medibill"
	if err := c.ValidateWithDSN(); err != nil {
		t.Fatalf("ValidateWithDSN: %v", err)
	}
}

func TestValidateServe(t *testing.T) {
	c := Config{LogFormat: "text", DSN: "postgres://localhost/medibill"}
	if err := c.ValidateServe(); err == nil {
		t.Fatal("expected error for missing listen address")
	}
	c.ListenAddr = ":5000"
	if err := c.ValidateServe(); err != nil {
		t.Fatalf("ValidateServe: %v", err)
	}
}

func TestLoadTables_Default(t *testing.T) {
	c := Config{}
	tables, err := c.LoadTables()
	if err != nil {
		t.Fatalf("LoadTables: %v", err)
	}
	if tables.ServicePrices["CONS100"] != 12.00 {
		t.Errorf("CONS100 price: got %v, want 12.00", tables.ServicePrices["CONS100"])
	}
}

func TestLoadTables_Override(t *testing.T) {
	content := `service_prices:
  CONS100: 20.00
  LAB210: 8.50
  IMG330: 25.00
  US400: 35.00
  MRI700: 180.00
plan_discounts:
  Premium: 0.15
  Standard: 0.10
  Basic: 0.00
per_visit_fees:
  Premium: 5.00
  Standard: 8.00
  Basic: 10.00
type_surcharges:
  Outpatient: 0.00
  Inpatient: 0.05
  Emergency: 0.15
`
	path := filepath.Join(t.TempDir(), "pricing.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write pricing file: %v", err)
	}

	c := Config{PricingPath: path}
	tables, err := c.LoadTables()
	if err != nil {
		t.Fatalf("LoadTables: %v", err)
	}
	if tables.ServicePrices["CONS100"] != 20.00 {
		t.Errorf("override not applied: got %v, want 20.00", tables.ServicePrices["CONS100"])
	}
}

func TestLoadTables_IncompleteOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.yaml")
	if err := os.WriteFile(path, []byte("service_prices:\n  CONS100: 20.00\n"), 0644); err != nil {
		t.Fatalf("write pricing file: %v", err)
	}

	c := Config{PricingPath: path}
	if _, err := c.LoadTables(); err == nil {
		t.Fatal("expected validation error for incomplete pricing file")
	}
}
