package main

import (
	"context"
	"errors"
	"os"

	md2slides "github.com/alnah/go-md2slides"
	"github.com/alnah/go-md2slides/internal/assets"
	"github.com/alnah/go-md2slides/internal/config"
	"github.com/alnah/go-md2slides/internal/designsync"
	"github.com/alnah/go-md2slides/internal/vault"
)

// Exit codes for the md2slides CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
// Browser failures of preview --pdf fall under the general code.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or note validation
	ExitIO      = 3 // File not found, permission denied
	ExitAborted = 4 // User cancelled a prompt or interrupted the run
	ExitSync    = 5 // Remote design table unreachable or rejected the request
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Aborts (exit 4)
	if errors.Is(err, md2slides.ErrAborted) ||
		errors.Is(err, md2slides.ErrPromptAborted) ||
		errors.Is(err, context.Canceled) {
		return ExitAborted
	}

	// Remote sync errors (exit 5)
	if errors.Is(err, designsync.ErrAuth) ||
		errors.Is(err, designsync.ErrRemote) ||
		errors.Is(err, designsync.ErrDecode) {
		return ExitSync
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, md2slides.ErrNoteNotFound) ||
		errors.Is(err, vault.ErrNotFound) ||
		errors.Is(err, vault.ErrInvalidVault) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, md2slides.ErrMissingTitle) ||
		errors.Is(err, md2slides.ErrAlreadyConverted) ||
		errors.Is(err, md2slides.ErrDesignNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, md2slides.ErrUnknownSyntax) ||
		errors.Is(err, md2slides.ErrUnknownLayout) ||
		errors.Is(err, md2slides.ErrInvalidLocation) ||
		errors.Is(err, designsync.ErrUnknownService) ||
		errors.Is(err, designsync.ErrMissingSetting) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
