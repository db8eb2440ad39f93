package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/gyeh/medibill/internal/exitcode"
)

// exitError carries the process exit code for a failed subcommand. Commands
// return it instead of calling os.Exit so deferred cleanup still runs.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func exitWith(code int, err error) error {
	return &exitError{code: code, err: err}
}

func codeFor(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitcode.UsageError
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var ee *exitError
		if !errors.As(err, &ee) {
			// Flag and usage errors from cobra; command failures are
			// already logged where they happen.
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(codeFor(err))
	}
}
