package main

import (
	"context"
	"errors"
	"os"

	playbook "github.com/RodolfoDavidAlvarez/orchardprogram"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/config"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/hints"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/server"
)

// Exit codes for the playbook CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Source not found, output not writable
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, playbook.ErrBrowserConnect) ||
		errors.Is(err, playbook.ErrPageCreate) ||
		errors.Is(err, playbook.ErrPageLoad) ||
		errors.Is(err, playbook.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, playbook.ErrSourceUnavailable) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, server.ErrListen) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidRule) ||
		errors.Is(err, playbook.ErrEmptySource) ||
		errors.Is(err, playbook.ErrInvalidPageSize) ||
		errors.Is(err, playbook.ErrInvalidOrientation) ||
		errors.Is(err, playbook.ErrInvalidMargin) ||
		errors.Is(err, playbook.ErrInvalidRules) ||
		errors.Is(err, playbook.ErrInvalidTemplate) ||
		errors.Is(err, playbook.ErrInvalidAssetPath) ||
		errors.Is(err, playbook.ErrStyleNotFound) ||
		errors.Is(err, playbook.ErrTemplateSetNotFound) ||
		errors.Is(err, playbook.ErrIncompleteTemplateSet) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
// configName is the --config value used for the run.
func hintFor(err error, configName string) string {
	switch {
	case errors.Is(err, playbook.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths(configName))
	case errors.Is(err, playbook.ErrSourceUnavailable), errors.Is(err, ErrNoInput):
		return hints.ForSourceUnavailable()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	case errors.Is(err, server.ErrListen):
		return hints.ForAddressInUse()
	}
	return ""
}
