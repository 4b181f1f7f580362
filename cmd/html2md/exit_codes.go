package main

import (
	"errors"
	"os"

	html2md "github.com/ebooklib/go-html2md"
	"github.com/ebooklib/go-html2md/internal/config"
)

// Exit codes for html2md CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitPandoc  = 4 // Pandoc subprocess errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Pandoc errors (exit 4)
	if errors.Is(err, html2md.ErrParse) ||
		errors.Is(err, html2md.ErrRender) ||
		errors.Is(err, html2md.ErrReparse) {
		return ExitPandoc
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, html2md.ErrEmptyInput) ||
		errors.Is(err, html2md.ErrInvalidWorkers) ||
		errors.Is(err, html2md.ErrInvalidSplitPattern) {
		return ExitUsage
	}

	return ExitGeneral
}
