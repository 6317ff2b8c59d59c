package main

import (
	"errors"
	"os"

	docmerge "github.com/alnah/go-docmerge"
	"github.com/alnah/go-docmerge/internal/config"
)

// Exit codes for the docmerge CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Successful merge
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or merge options
	ExitIO       = 3 // File not found, permission denied, write failure
	ExitDocument = 4 // Unusable input documents or missing renderer
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Document errors (exit 4)
	if errors.Is(err, docmerge.ErrMalformedDocument) ||
		errors.Is(err, docmerge.ErrDecryptFailed) ||
		errors.Is(err, docmerge.ErrMergeAborted) ||
		errors.Is(err, docmerge.ErrNoPages) ||
		errors.Is(err, docmerge.ErrRendererNotFound) ||
		errors.Is(err, docmerge.ErrRenderFailed) {
		return ExitDocument
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigInvalid) ||
		errors.Is(err, docmerge.ErrNoInputs) ||
		errors.Is(err, docmerge.ErrInvalidStartPage) ||
		errors.Is(err, docmerge.ErrInvalidNumberFormat) ||
		errors.Is(err, docmerge.ErrInvalidPolicy) ||
		errors.Is(err, ErrNoInputFiles) ||
		errors.Is(err, ErrTitleCount) {
		return ExitUsage
	}

	return ExitGeneral
}
