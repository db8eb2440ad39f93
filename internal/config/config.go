package config

import (
	"fmt"

	"github.com/gyeh/medibill/internal/pricing"
)

// Config holds all runtime configuration for a medibill run. Values are
// populated once at startup from flags and the environment, then treated as
// immutable.
type Config struct {
	DSN         string
	ListenAddr  string // billing protocol listener, e.g. ":5000"
	MetricsAddr string // ops HTTP listener; empty disables it
	LogFormat   string // "text" or "json"
	PricingPath string // optional YAML pricing table override
	ServerAddr  string // client target, e.g. "localhost:5000"
}

// LoadTables returns the pricing tables for this run: the built-in reference
// tables, or the validated contents of PricingPath when set.
func (c *Config) LoadTables() (*pricing.Tables, error) {
	if c.PricingPath == "" {
		return pricing.Default(), nil
	}
	return pricing.LoadFile(c.PricingPath)
}

// Validate checks fields every subcommand needs.
func (c *Config) Validate() error {
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("log format must be \"text\" or \"json\", got %q", c.LogFormat)
	}
	return nil
}

// ValidateWithDSN checks fields needed by commands that touch the database.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or DATABASE_URL is required")
	}
	return nil
}

// ValidateServe checks fields needed by the serve command.
func (c *Config) ValidateServe() error {
	if err := c.ValidateWithDSN(); err != nil {
		return err
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("--addr is required")
	}
	return nil
}
