package main

import (
	"errors"
	"os"

	url2pdf "github.com/alnah/go-url2pdf"
	"github.com/alnah/go-url2pdf/internal/config"
	"github.com/alnah/go-url2pdf/internal/logging"
)

// Exit codes for url2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Every URL captured, or no URL given
	ExitGeneral = 1 // Some URLs failed, or an unexpected error
	ExitUsage   = 2 // Invalid flags, config or environment
	ExitIO      = 3 // Output directory missing or not writable
	ExitBrowser = 4 // Browser could not be started or driven
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	// No URL to capture is reported but does not fail the run.
	if err == nil || errors.Is(err, url2pdf.ErrNoURLs) {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, url2pdf.ErrBrowserConnect) ||
		errors.Is(err, url2pdf.ErrPageCreate) ||
		errors.Is(err, url2pdf.ErrViewport) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, url2pdf.ErrOutputDir) ||
		errors.Is(err, url2pdf.ErrWritePDF) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrEnvConfig) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, logging.ErrInvalidFormat) {
		return ExitUsage
	}

	return ExitGeneral
}
