package main

import (
	"errors"
	"os"

	gamebook "github.com/alnah/go-gamebook"
	"github.com/alnah/go-gamebook/internal/config"
	"github.com/alnah/go-gamebook/internal/logging"
)

// Exit codes for the gamebook CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess    = 0 // Successful conversion
	ExitGeneral    = 1 // General/unexpected error
	ExitUsage      = 2 // Invalid flags, config, or validation
	ExitIO         = 3 // File not found, permission denied
	ExitBrowser    = 4 // Browser/Chrome errors
	ExitManuscript = 5 // Inconsistent manuscript
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if gamebook.IsManuscriptError(err) {
		return ExitManuscript
	}

	// Browser errors (exit 4)
	if errors.Is(err, gamebook.ErrBrowserConnect) ||
		errors.Is(err, gamebook.ErrPageCreate) ||
		errors.Is(err, gamebook.ErrPageLoad) ||
		errors.Is(err, gamebook.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadManuscript) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, logging.ErrInvalidLevel) ||
		errors.Is(err, gamebook.ErrInvalidSyntax) ||
		errors.Is(err, gamebook.ErrInvalidFirstPosition) ||
		errors.Is(err, gamebook.ErrInvalidFormat) ||
		errors.Is(err, gamebook.ErrInvalidPageSize) ||
		errors.Is(err, gamebook.ErrStyleNotFound) ||
		errors.Is(err, gamebook.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidEnv) ||
		errors.Is(err, ErrConflictingFlags) ||
		errors.Is(err, ErrOutputRequired) ||
		errors.Is(err, ErrStdinInBatch) ||
		errors.Is(err, ErrDuplicateOutput) ||
		errors.Is(err, ErrOverwriteInput) ||
		errors.Is(err, ErrUnknownCommand) {
		return ExitUsage
	}

	return ExitGeneral
}
