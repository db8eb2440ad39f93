package main

import (
	"os"
	"testing"

	"github.com/spf13/cobra"

	"github.com/gyeh/medibill/internal/config"
)

// unset clears an environment variable for the test's duration. t.Setenv
// registers the restore; Unsetenv removes the value it just set.
func unset(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

// chdir changes into dir for the test's duration, restoring the previous
// working directory on cleanup. (t.Chdir requires Go 1.24+.)
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(old) })
}

// saveCfg snapshots the package config global and restores it on cleanup.
func saveCfg(t *testing.T) {
	t.Helper()
	old := cfg
	t.Cleanup(func() { cfg = old })
	cfg = config.Config{}
}

func TestLoadEnv_DotEnvFallback(t *testing.T) {
	unset(t, "MEDIBILL_SERVER")
	chdir(t, t.TempDir())
	if err := os.WriteFile(".env", []byte("MEDIBILL_SERVER=127.0.0.1:59999\n"), 0644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	saveCfg(t)

	cmd := &cobra.Command{Use: "bill"}
	cmd.Flags().StringVar(&cfg.ServerAddr, "server", "localhost:5000", "")
	loadEnv(cmd, nil)

	if cfg.ServerAddr != "127.0.0.1:59999" {
		t.Errorf("server addr: got %q, want the .env value", cfg.ServerAddr)
	}
}

func TestLoadEnv_FlagBeatsEnvironment(t *testing.T) {
	t.Setenv("MEDIBILL_SERVER", "env.example:5000")
	saveCfg(t)

	cmd := &cobra.Command{Use: "bill"}
	cmd.Flags().StringVar(&cfg.ServerAddr, "server", "localhost:5000", "")
	if err := cmd.Flags().Set("server", "flag.example:5000"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	loadEnv(cmd, nil)

	if cfg.ServerAddr != "flag.example:5000" {
		t.Errorf("server addr: got %q, want the explicit flag value", cfg.ServerAddr)
	}
}

func TestLoadEnv_EnvironmentFallback(t *testing.T) {
	chdir(t, t.TempDir()) // no .env here
	t.Setenv("DATABASE_URL", "postgres://localhost/medibill")
	saveCfg(t)

	cmd := &cobra.Command{Use: "migrate"}
	cmd.Flags().StringVar(&cfg.DSN, "dsn", "", "")
	loadEnv(cmd, nil)

	if cfg.DSN != "postgres://localhost/medibill" {
		t.Errorf("dsn: got %q, want the environment value", cfg.DSN)
	}
}

func TestLoadEnv_DefaultSurvivesEmptyEnvironment(t *testing.T) {
	unset(t, "MEDIBILL_SERVER")
	chdir(t, t.TempDir()) // no .env here
	saveCfg(t)

	cmd := &cobra.Command{Use: "bill"}
	cmd.Flags().StringVar(&cfg.ServerAddr, "server", "localhost:5000", "")
	loadEnv(cmd, nil)

	if cfg.ServerAddr != "localhost:5000" {
		t.Errorf("server addr: got %q, want the flag default", cfg.ServerAddr)
	}
}
