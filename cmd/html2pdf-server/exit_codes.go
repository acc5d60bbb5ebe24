package main

import (
	"errors"
	"os"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/config"
	"github.com/alnah/go-html2pdf/internal/session"
)

// Exit codes for the html2pdf server.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Clean shutdown
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Storage roots or stylesheet unavailable
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, html2pdf.ErrBrowserConnect) ||
		errors.Is(err, html2pdf.ErrPageCreate) ||
		errors.Is(err, html2pdf.ErrPageLoad) ||
		errors.Is(err, html2pdf.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, session.ErrStorage) ||
		errors.Is(err, html2pdf.ErrReadStylesheet) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigPath) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, html2pdf.ErrInvalidPageSize) ||
		errors.Is(err, html2pdf.ErrInvalidOrientation) ||
		errors.Is(err, html2pdf.ErrInvalidMargin) ||
		errors.Is(err, html2pdf.ErrStyleNotFound) ||
		errors.Is(err, html2pdf.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}
